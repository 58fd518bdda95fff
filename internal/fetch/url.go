package fetch

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL standardizes a source URL before fetching. It upgrades plain
// http to https, lowercases scheme and host, removes default ports and
// fragments, and sorts query parameters so equal sources compare equal.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	// Outbound requests always use secure transport.
	if u.Scheme == "" || u.Scheme == "http" {
		u.Scheme = "https"
	}
	if u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	u.Host = strings.TrimSuffix(u.Host, ":80")
	u.Host = strings.TrimSuffix(u.Host, ":443")
	u.Fragment = ""

	q := u.Query()
	u.RawQuery = q.Encode()

	return u.String(), nil
}

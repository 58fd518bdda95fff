// Package fetch retrieves source documents over HTTPS with a bounded
// per-attempt timeout, a single retry on transient failures, and a
// classified failure result instead of raised errors.
package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
)

// Config controls fetcher behavior.
type Config struct {
	UserAgent    string
	Timeout      time.Duration
	RetryBackoff time.Duration
}

// Client implements awards.Fetcher using a colly collector per attempt.
type Client struct {
	cfg    Config
	base   *colly.Collector
	logger *zap.Logger
}

// New builds a Client. Zero config fields fall back to defaults suited for
// announcement pages (10s timeout, 500ms retry backoff).
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "oscar-nominee-importer/1.0"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true
	c.WithTransport(newHTTPTransport())

	return &Client{cfg: cfg, base: c, logger: logger}
}

var _ awards.Fetcher = (*Client)(nil)

// Fetch retrieves one source document. On timeout or transient network
// error it retries exactly once after a fixed backoff. The returned failure
// is already classified for the import summary.
func (c *Client) Fetch(ctx context.Context, src awards.Source) (awards.RawDocument, *awards.FetchFailure) {
	target, err := NormalizeURL(src.URL)
	if err != nil {
		return awards.RawDocument{}, &awards.FetchFailure{
			URL:    src.URL,
			Reason: awards.ReasonUnreachable,
			Err:    err,
		}
	}

	doc, failure := c.attempt(ctx, target, src.Kind)
	if failure != nil && retryable(failure.Reason) {
		c.logger.Debug("retrying source after transient failure",
			zap.String("url", target),
			zap.String("reason", string(failure.Reason)))
		select {
		case <-ctx.Done():
			return awards.RawDocument{}, failure
		case <-time.After(c.cfg.RetryBackoff):
		}
		doc, failure = c.attempt(ctx, target, src.Kind)
	}
	return doc, failure
}

func (c *Client) attempt(ctx context.Context, target string, kind awards.SourceKind) (awards.RawDocument, *awards.FetchFailure) {
	var (
		doc        awards.RawDocument
		fetchErr   error
		errStatus  int
		haveResult bool
	)

	collector := c.base.Clone()
	collector.UserAgent = c.cfg.UserAgent
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(c.cfg.Timeout)

	collector.OnResponse(func(r *colly.Response) {
		doc = awards.RawDocument{
			URL:         target,
			Kind:        kind,
			Body:        append([]byte(nil), r.Body...),
			StatusCode:  r.StatusCode,
			ContentType: r.Headers.Get("Content-Type"),
			FetchedAt:   time.Now().UTC(),
		}
		haveResult = true
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			errStatus = r.StatusCode
		}
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(target)
	}()

	select {
	case <-ctx.Done():
		return awards.RawDocument{}, &awards.FetchFailure{
			URL:    target,
			Reason: awards.ReasonTimeout,
			Err:    ctx.Err(),
		}
	case visitErr := <-done:
		if fetchErr == nil && visitErr != nil {
			fetchErr = visitErr
		}
	}

	if fetchErr != nil || !haveResult {
		return awards.RawDocument{}, &awards.FetchFailure{
			URL:    target,
			Reason: classify(fetchErr, errStatus),
			Err:    fetchErr,
		}
	}
	return doc, nil
}

// classify maps a transport error and, when present, the response status to
// the summary's failure taxonomy.
func classify(err error, status int) awards.FailureReason {
	if status >= 100 && (status < 200 || status >= 300) {
		return awards.HTTPStatusReason(status)
	}
	if err == nil {
		return awards.ReasonUnreachable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return awards.ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return awards.ReasonTimeout
	}
	return awards.ReasonUnreachable
}

// retryable reports whether a second attempt could plausibly succeed.
// HTTP status failures are answered by the server and never retried.
func retryable(reason awards.FailureReason) bool {
	return reason == awards.ReasonTimeout || reason == awards.ReasonUnreachable
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
	}
}

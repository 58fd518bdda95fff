package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "http upgraded", in: "http://example.com/nominees", want: "https://example.com/nominees"},
		{name: "host lowercased", in: "https://Example.COM/Path", want: "https://example.com/Path"},
		{name: "default port stripped", in: "https://example.com:443/a", want: "https://example.com/a"},
		{name: "fragment removed", in: "https://example.com/a#winners", want: "https://example.com/a"},
		{name: "query sorted", in: "https://example.com/a?b=2&a=1", want: "https://example.com/a?a=1&b=2"},
		{name: "no host", in: "nominees.html", wantErr: true},
		{name: "ftp rejected", in: "ftp://example.com/a", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

type fakeTimeoutError struct{}

func (fakeTimeoutError) Error() string   { return "i/o timeout" }
func (fakeTimeoutError) Timeout() bool   { return true }
func (fakeTimeoutError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   awards.FailureReason
	}{
		{name: "server status wins", err: errors.New("Internal Server Error"), status: 500, want: "http_status:500"},
		{name: "not found", err: errors.New("Not Found"), status: 404, want: "http_status:404"},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: awards.ReasonTimeout},
		{name: "net timeout", err: fakeTimeoutError{}, want: awards.ReasonTimeout},
		{name: "wrapped net timeout", err: fmt.Errorf("visit: %w", fakeTimeoutError{}), want: awards.ReasonTimeout},
		{name: "connection refused", err: errors.New("connection refused"), want: awards.ReasonUnreachable},
		{name: "no error no response", err: nil, want: awards.ReasonUnreachable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err, tt.status); got != tt.want {
				t.Fatalf("classify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	if !retryable(awards.ReasonTimeout) || !retryable(awards.ReasonUnreachable) {
		t.Fatalf("transient reasons must be retryable")
	}
	if retryable(awards.HTTPStatusReason(500)) || retryable(awards.ReasonParseError) {
		t.Fatalf("classified server and parse failures must not be retried")
	}
}

func TestFetchRejectsBadURLWithoutNetwork(t *testing.T) {
	c := New(Config{Timeout: time.Second}, nil)
	_, failure := c.Fetch(context.Background(), awards.Source{URL: "::not a url::", Kind: awards.SourceHTML})
	if failure == nil {
		t.Fatalf("expected classified failure")
	}
	if failure.Reason != awards.ReasonUnreachable {
		t.Fatalf("reason = %q, want unreachable", failure.Reason)
	}
}

// Package fetcher retrieves HTML documents to convert.
// Implement the Fetcher interface to add authentication or other transport
// requirements.
package fetcher

import (
	"context"
	"errors"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources.
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static").
	Type() string
}

// Options controls fetching behavior.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Content represents a fetched document.
type Content struct {
	URL         string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// Error types for distinguishing failure reasons.
// Check with errors.Is(err, fetcher.ErrNotHTML).
var (
	// ErrNotHTML indicates the response is not an HTML document.
	ErrNotHTML = errors.New("response is not html")
	// ErrStatus indicates a non-2xx response.
	ErrStatus = errors.New("unexpected status")
)

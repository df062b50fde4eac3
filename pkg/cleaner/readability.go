package cleaner

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
)

// ReadabilityCleaner keeps only the main content of a web page using
// go-readability. Navigation, sidebars and footers are dropped before the
// page is converted; mail bodies do not need it.
type ReadabilityCleaner struct {
	baseURL *url.URL
	parser  readability.Parser
}

// ReadabilityOption configures the readability cleaner.
type ReadabilityOption func(*ReadabilityCleaner)

// WithBaseURL resolves relative link and image targets against u. An
// unparsable URL is ignored.
func WithBaseURL(u string) ReadabilityOption {
	return func(c *ReadabilityCleaner) {
		if parsed, err := url.Parse(u); err == nil && parsed.IsAbs() {
			c.baseURL = parsed
		}
	}
}

// WithCharThreshold sets the minimum number of characters an article needs.
func WithCharThreshold(n int) ReadabilityOption {
	return func(c *ReadabilityCleaner) {
		if n > 0 {
			c.parser.CharThresholds = n
		}
	}
}

// NewReadability creates a new readability cleaner.
func NewReadability(opts ...ReadabilityOption) *ReadabilityCleaner {
	c := &ReadabilityCleaner{parser: readability.NewParser()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean returns the markup of the main content. When no article is found
// the input is returned unchanged.
func (c *ReadabilityCleaner) Clean(html string) (string, error) {
	article, err := c.parser.Parse(strings.NewReader(html), c.baseURL)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}
	if article.Node == nil {
		return html, nil
	}

	var buf bytes.Buffer
	if err := article.RenderHTML(&buf); err != nil {
		return "", fmt.Errorf("readability: render: %w", err)
	}
	if strings.TrimSpace(buf.String()) == "" {
		return html, nil
	}
	return buf.String(), nil
}

// Name returns the cleaner type.
func (c *ReadabilityCleaner) Name() string {
	return "readability"
}

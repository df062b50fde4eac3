package cleaner

import (
	"fmt"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

var brNewlines = regexp.MustCompile(`(<br ?/?>)\n+`)

// PreCleaner strips comments and redundant whitespace from raw markup
// before it is parsed. Newlines directly after a <br> are dropped first so
// they do not turn into a space at the start of the next line.
type PreCleaner struct {
	m *minify.M
}

// NewPreCleaner creates a pre-cleaner that keeps document, end and quote
// structure intact.
func NewPreCleaner() *PreCleaner {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepDefaultAttrVals: true,
	})
	return &PreCleaner{m: m}
}

// Clean returns the minified markup.
func (c *PreCleaner) Clean(content string) (string, error) {
	content = brNewlines.ReplaceAllString(content, "$1")
	out, err := c.m.String("text/html", content)
	if err != nil {
		return "", fmt.Errorf("precleanup: %w", err)
	}
	return out, nil
}

// Name returns the cleaner type.
func (c *PreCleaner) Name() string {
	return "precleanup"
}

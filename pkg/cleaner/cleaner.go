// Package cleaner provides the text transformation stages of the converter.
// Stages take markup in and hand text (or cleaner markup) on, so they can be
// chained: pre-cleanup, then a final converter such as pmrt or Markdown.
package cleaner

// Cleaner transforms HTML content into another textual form.
type Cleaner interface {
	// Clean transforms the input HTML.
	// The output format depends on the implementation (minified HTML, plain text, Markdown).
	Clean(html string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

package transform

import "github.com/jmylchreest/pmrt/pkg/pmrt/dom"

// linearizeQuote marks the first line of a blockquote and every line that
// starts inside it. Inner quotes are handled first, so nesting accumulates
// one marker per level.
func (l *linearizer) linearizeQuote(id dom.NodeID) {
	t := l.t
	mark := l.opts.QuoteMarker
	for _, d := range t.Descendants(id) {
		if !t.IsText(d) {
			t.Node(d).Prefix = mark + t.Node(d).Prefix
		}
	}
	t.PrependChild(id, t.NewText(mark))
	t.MergeText(id)
}

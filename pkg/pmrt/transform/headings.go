package transform

import (
	"strings"

	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

// linearizeHeading bolds the heading text and puts one '#' per level in
// front of it.
func (l *linearizer) linearizeHeading(id dom.NodeID) {
	t := l.t
	if t.NumChildren(id) == 0 {
		return
	}
	for _, d := range t.Descendants(id) {
		if t.IsElement(d, dom.KindB) {
			t.Unwrap(d)
		}
	}
	t.MergeAllText(id)
	t.WrapChildren(id, t.NewElement(dom.KindB))
	t.PrependChild(id, t.NewText(strings.Repeat("#", t.Kind(id).HeadingLevel())+" "))
}

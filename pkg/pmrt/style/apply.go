package style

import "github.com/jmylchreest/pmrt/pkg/pmrt/dom"

// Apply turns style facts into markup. Emphasis wraps the element's children
// in b, i, u and s elements, outermost first. A top or bottom border becomes
// a horizontal rule before or after the element. It returns the number of
// nodes inserted.
func Apply(t *dom.Tree) int {
	inserted := 0
	for _, id := range t.Descendants(t.Root()) {
		n := t.Node(id)
		if n.Type != dom.ElementNode || n.Style == nil || t.Parent(id) == dom.Nil {
			continue
		}
		s := *n.Style
		if t.NumChildren(id) > 0 {
			for _, w := range []struct {
				on   bool
				kind dom.Kind
			}{
				{s.Strike, dom.KindS},
				{s.Underline, dom.KindU},
				{s.Italic, dom.KindI},
				{s.Bold, dom.KindB},
			} {
				if w.on {
					t.WrapChildren(id, t.NewElement(w.kind))
					inserted++
				}
			}
		}
		if s.BorderTop {
			t.InsertBefore(id, t.NewElement(dom.KindHr))
			inserted++
		}
		if s.BorderBottom {
			t.InsertAfter(id, t.NewElement(dom.KindHr))
			inserted++
		}
	}
	return inserted
}

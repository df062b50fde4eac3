package transform

import (
	"strings"
	"unicode"

	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

// Sweepable reports whether edge whitespace and breaks are hoisted out of
// elements of kind k.
func Sweepable(k dom.Kind) bool {
	switch k {
	case dom.KindA, dom.KindB, dom.KindI, dom.KindU, dom.KindS:
		return true
	default:
		return false
	}
}

// Sweep moves edge breaks and edge whitespace out of sweepable elements
// until a pass changes nothing. It returns the number of moves. Any Unicode
// space counts, so no-break spaces leave the markup too.
//
// Every move takes a whitespace run or a break out of one sweepable element
// into its parent, so the sum over all whitespace characters and breaks of
// their sweepable-ancestor count strictly decreases.
func Sweep(t *dom.Tree) int {
	moves := 0
	for range t.Len() + 1 {
		n := 0
		for _, id := range t.Descendants(t.Root()) {
			if t.IsText(id) || !Sweepable(t.Kind(id)) || t.Parent(id) == dom.Nil {
				continue
			}
			n += sweepEdges(t, id)
		}
		if n == 0 {
			break
		}
		moves += n
		t.MergeAllText(t.Root())
	}
	return moves
}

func sweepEdges(t *dom.Tree, id dom.NodeID) int {
	n := 0
	if first := t.FirstChild(id); first != dom.Nil {
		switch {
		case t.IsBreak(first):
			t.Detach(first)
			t.InsertBefore(id, first)
			n++
		case t.IsText(first):
			text := t.Node(first).Text
			trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
			if len(trimmed) < len(text) {
				t.Node(first).Text = trimmed
				t.InsertBefore(id, t.NewText(text[:len(text)-len(trimmed)]))
				n++
			}
		}
	}
	if last := t.LastChild(id); last != dom.Nil {
		switch {
		case t.IsBreak(last):
			t.Detach(last)
			t.InsertAfter(id, last)
			n++
		case t.IsText(last):
			text := t.Node(last).Text
			trimmed := strings.TrimRightFunc(text, unicode.IsSpace)
			if len(trimmed) < len(text) {
				t.Node(last).Text = trimmed
				t.InsertAfter(id, t.NewText(text[len(trimmed):]))
				n++
			}
		}
	}
	return n
}

// isBlank reports whether s holds only Unicode spaces.
func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

package transform

import (
	"strings"

	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

// DefaultMarginThreshold is the collapsed vertical margin, in lines, from
// which a break between two blocks leaves an empty line.
const DefaultMarginThreshold = 0.5

// SegmentOptions configures Segment.
type SegmentOptions struct {
	MarginThreshold float64
}

// SegmentStats counts what Segment did.
type SegmentStats struct {
	BreaksInserted  int
	BreaksCollapsed int
	NodesPruned     int
}

// Segment separates sibling blocks with break markers, strips the
// whitespace between them, prunes what became empty and collapses runs of
// markers.
func Segment(t *dom.Tree, opts SegmentOptions) SegmentStats {
	var st SegmentStats

	var parents []dom.NodeID
	t.Walk(t.Root(), func(id dom.NodeID) bool {
		if t.IsText(id) {
			return false
		}
		for _, c := range t.Children(id) {
			if t.IsBlock(c) {
				parents = append(parents, id)
				break
			}
		}
		return true
	})

	for _, p := range parents {
		for _, c := range t.Children(p) {
			if t.IsText(c) && dom.IsBlank(t.Node(c).Text) && !inPre(t, c) {
				t.Remove(c)
			}
		}
	}
	for _, p := range parents {
		st.BreaksInserted += insertMarkers(t, p, opts.MarginThreshold)
	}

	trimAround(t)
	st.NodesPruned += Prune(t)

	for range t.Len() + 1 {
		c := CollapseBreaks(t)
		pr := Prune(t)
		st.BreaksCollapsed += c
		st.NodesPruned += pr
		if c == 0 && pr == 0 {
			break
		}
	}
	t.MergeAllText(t.Root())
	return st
}

func insertMarkers(t *dom.Tree, parent dom.NodeID, threshold float64) int {
	inserted := 0
	for _, c := range t.Children(parent) {
		if !t.IsBlock(c) {
			continue
		}
		if prev := t.PrevSibling(c); prev != dom.Nil {
			gap := topMargin(t, c)
			if t.IsBlock(prev) {
				gap = max(gap, bottomMargin(t, prev))
			}
			t.InsertBefore(c, t.NewBreak(dom.BreakBefore, lines(gap, threshold)))
			inserted++
		}
		if next := t.NextSibling(c); next != dom.Nil && !t.IsBlock(next) {
			t.InsertAfter(c, t.NewBreak(dom.BreakAfter, lines(bottomMargin(t, c), threshold)))
			inserted++
		}
	}
	return inserted
}

func lines(gap, threshold float64) int {
	if gap >= threshold {
		return 2
	}
	return 1
}

// topMargin is the top margin of a block collapsed with the top margin of
// its first child when that child is a block too.
func topMargin(t *dom.Tree, id dom.NodeID) float64 {
	m := ownMargins(t, id).Top
	if first := t.FirstChild(id); t.IsBlock(first) {
		m = max(m, topMargin(t, first))
	}
	return m
}

func bottomMargin(t *dom.Tree, id dom.NodeID) float64 {
	m := ownMargins(t, id).Bottom
	if last := t.LastChild(id); t.IsBlock(last) {
		m = max(m, bottomMargin(t, last))
	}
	return m
}

func ownMargins(t *dom.Tree, id dom.NodeID) dom.Margins {
	n := t.Node(id)
	m := dom.DefaultMargins(n.Kind, n.Kind.IsList() && inList(t, id))
	if s := n.Style; s != nil {
		if s.MarginTop != nil {
			m.Top = *s.MarginTop
		}
		if s.MarginBottom != nil {
			m.Bottom = *s.MarginBottom
		}
	}
	return m
}

func inList(t *dom.Tree, id dom.NodeID) bool {
	for p := t.Parent(id); p != dom.Nil; p = t.Parent(p) {
		if t.Kind(p).IsList() || t.IsElement(p, dom.KindLi) {
			return true
		}
	}
	return false
}

func inPre(t *dom.Tree, id dom.NodeID) bool {
	for p := t.Parent(id); p != dom.Nil; p = t.Parent(p) {
		if t.IsElement(p, dom.KindPre) {
			return true
		}
	}
	return false
}

// trimAround strips spaces at the edges of blocks and next to breaks.
func trimAround(t *dom.Tree) {
	t.Walk(t.Root(), func(id dom.NodeID) bool {
		if t.IsText(id) {
			return false
		}
		if t.IsElement(id, dom.KindPre) {
			return false
		}
		if t.IsBlock(id) {
			trimText(t, t.FirstChild(id), strings.TrimLeft)
			trimText(t, t.LastChild(id), strings.TrimRight)
		}
		if t.IsBreak(id) {
			trimText(t, t.PrevSibling(id), strings.TrimRight)
			trimText(t, t.NextSibling(id), strings.TrimLeft)
		}
		return true
	})
}

func trimText(t *dom.Tree, id dom.NodeID, trim func(string, string) string) {
	if t.IsText(id) && !inPre(t, id) {
		t.Node(id).Text = trim(t.Node(id).Text, " ")
	}
}

// Prune removes empty text and childless non-void elements until none are
// left. Removing a node can empty its parent, which the post-order walk
// visits afterwards; the outer loop only repeats when something changed
// and each repetition removes at least one node.
func Prune(t *dom.Tree) int {
	pruned := 0
	for range t.Len() + 1 {
		n := 0
		t.WalkPost(t.Root(), func(id dom.NodeID) {
			if id == t.Root() {
				return
			}
			node := t.Node(id)
			switch {
			case node.Type == dom.TextNode && node.Text == "":
			case node.Type == dom.ElementNode && len(node.Children) == 0 && !node.Kind.IsVoid():
			default:
				return
			}
			t.Remove(id)
			n++
		})
		if n == 0 {
			break
		}
		pruned += n
	}
	return pruned
}

// CollapseBreaks applies the break collapse rules to every parent, left to
// right, until none fires. Each rule deletes one marker, so the number of
// markers bounds the work. The rules, for markers inserted by Segment
// (structural) and <br> from the markup (source):
//
//   - edge: a structural marker that is the first or last child of its
//     parent is deleted, as is a source break ending a block element it
//     does not fill alone;
//   - pair: of two adjacent structural markers the first survives with the
//     larger line count;
//   - triple: in structural, source, structural the second structural
//     marker is deleted and the first keeps the larger line count.
func CollapseBreaks(t *dom.Tree) int {
	deleted := 0
	for _, p := range t.Descendants(t.Root()) {
		if t.IsText(p) || t.Parent(p) == dom.Nil {
			continue
		}
		deleted += collapseChildren(t, p)
	}
	deleted += collapseChildren(t, t.Root())
	return deleted
}

func structural(t *dom.Tree, id dom.NodeID) bool {
	return t.IsBreak(id) && t.Node(id).Origin.Structural()
}

func source(t *dom.Tree, id dom.NodeID) bool {
	return t.IsBreak(id) && t.Node(id).Origin == dom.BreakSource
}

func collapseChildren(t *dom.Tree, p dom.NodeID) int {
	deleted := 0
	for range t.NumChildren(p) + 1 {
		if !collapseOnce(t, p) {
			break
		}
		deleted++
	}
	return deleted
}

// collapseOnce applies the first rule that fires among the children of p.
func collapseOnce(t *dom.Tree, p dom.NodeID) bool {
	kids := t.Children(p)
	if len(kids) == 0 {
		return false
	}
	first, last := kids[0], kids[len(kids)-1]
	if structural(t, first) {
		t.Remove(first)
		return true
	}
	if structural(t, last) {
		t.Remove(last)
		return true
	}
	if source(t, last) && len(kids) > 1 && t.IsBlock(p) {
		t.Remove(last)
		return true
	}
	for i := 0; i+1 < len(kids); i++ {
		x, y := kids[i], kids[i+1]
		if structural(t, x) && structural(t, y) {
			keepMax(t, x, y)
			t.Remove(y)
			return true
		}
		if i+2 < len(kids) {
			z := kids[i+2]
			if structural(t, x) && source(t, y) && structural(t, z) {
				keepMax(t, x, z)
				t.Remove(z)
				return true
			}
		}
	}
	return false
}

func keepMax(t *dom.Tree, keep, drop dom.NodeID) {
	k := t.Node(keep)
	k.Lines = max(k.Lines, t.Node(drop).Lines)
}

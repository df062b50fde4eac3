// Package transform holds the tree-rewriting passes that run between style
// normalization and serialization.
//
// Every pass mutates the tree in place. Passes that iterate to a fixpoint
// stop at the first pass that changes nothing and never run more than
// tree.Len()+1 times.
package transform

import (
	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

// UnwrapInline replaces every inline span with its children.
func UnwrapInline(t *dom.Tree) int {
	n := 0
	t.WalkPost(t.Root(), func(id dom.NodeID) {
		if t.IsElement(id, dom.KindSpan) && !t.Node(id).Block {
			t.Unwrap(id)
			n++
		}
	})
	t.MergeAllText(t.Root())
	return n
}

// Canonicalize renames alias markup onto its canonical kind.
func Canonicalize(t *dom.Tree) int {
	n := 0
	t.Walk(t.Root(), func(id dom.NodeID) bool {
		node := t.Node(id)
		if node.Type == dom.ElementNode {
			if k := node.Kind.Canonical(); k != node.Kind {
				node.Kind = k
				n++
			}
		}
		return true
	})
	return n
}

// Dedupe unwraps emphasis nested inside an ancestor of the same kind.
func Dedupe(t *dom.Tree) int {
	n := 0
	t.WalkPost(t.Root(), func(id dom.NodeID) {
		k := t.Kind(id)
		if t.IsText(id) || !k.IsEmphasis() {
			return
		}
		for p := t.Parent(id); p != dom.Nil; p = t.Parent(p) {
			if t.IsElement(p, k) {
				t.Unwrap(id)
				n++
				return
			}
		}
	})
	t.MergeAllText(t.Root())
	return n
}

// MergeAdjacent merges sibling emphasis elements of the same kind that are
// adjacent or separated only by whitespace. The second element's children
// move into the first; separating whitespace is replaced by a single space
// inside the merged element, or stays outside when one side is empty.
//
// Each merge removes one element from the tree, which bounds the number of
// passes; merging can make the children of the merged element adjacent, so
// passes repeat until one merges nothing.
func MergeAdjacent(t *dom.Tree) int {
	total := 0
	for range t.Len() + 1 {
		n := mergePass(t)
		if n == 0 {
			break
		}
		total += n
	}
	return total
}

func mergePass(t *dom.Tree) int {
	merged := 0
	t.WalkPost(t.Root(), func(id dom.NodeID) {
		if t.IsText(id) {
			return
		}
		for i := 0; i < t.NumChildren(id); i++ {
			first := t.Children(id)[i]
			k := t.Kind(first)
			if t.IsText(first) || !k.IsEmphasis() {
				continue
			}
			for {
				next := t.NextSibling(first)
				var gap dom.NodeID = dom.Nil
				if t.IsText(next) && isBlank(t.Node(next).Text) {
					gap, next = next, t.NextSibling(next)
				}
				if !t.IsElement(next, k) {
					break
				}
				if gap != dom.Nil {
					switch {
					case t.NumChildren(first) == 0:
						t.Detach(gap)
						t.InsertBefore(first, gap)
					case t.NumChildren(next) == 0:
						t.Detach(gap)
						t.InsertAfter(next, gap)
					default:
						t.Remove(gap)
						t.AppendChild(first, t.NewText(" "))
					}
				}
				t.Detach(next)
				t.MoveChildren(first, next)
				t.MergeText(first)
				merged++
			}
		}
		t.MergeText(id)
	})
	return merged
}

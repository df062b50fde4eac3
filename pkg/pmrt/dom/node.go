// Package dom holds the arena tree the converter rewrites in place.
//
// Nodes live in one slice and refer to each other by NodeID. Splicing a node
// somewhere else only rewrites parent and child indices, so a node can never
// be reachable from two places at once.
package dom

import (
	"slices"
	"strings"
)

// NodeID addresses a node in its Tree.
type NodeID int32

// Nil is the null NodeID.
const Nil NodeID = -1

// NodeType tells elements and text apart.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// Attr is a single attribute. Keys are lower case.
type Attr struct {
	Key string
	Val string
}

// Node is either an element or a text run.
type Node struct {
	Type NodeType
	Kind Kind
	// Tag is the source tag name, kept for diagnostics.
	Tag   string
	Text  string
	Attrs []Attr

	Style *Style
	Block bool

	// Break markers (KindBr) only.
	Origin BreakOrigin
	Lines  int

	// Prefix is emitted after every newline the node produces.
	Prefix string

	Parent   NodeID
	Children []NodeID
}

// Attr returns the value of the attribute key.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the attribute key.
func (n *Node) SetAttr(key, val string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
}

// RemoveAttr deletes the attribute key if present.
func (n *Node) RemoveAttr(key string) {
	n.Attrs = slices.DeleteFunc(n.Attrs, func(a Attr) bool { return a.Key == key })
}

// Tree is an arena of nodes rooted at a KindDocument element.
type Tree struct {
	nodes []Node
	root  NodeID
}

// NewTree returns a tree holding only its document root.
func NewTree() *Tree {
	t := &Tree{}
	t.root = t.NewElement(KindDocument)
	return t
}

// Root returns the document node.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of arena slots, detached nodes included. It bounds
// every fixpoint loop over the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node stored at id. The pointer is only valid until the
// next node is allocated.
func (t *Tree) Node(id NodeID) *Node { return &t.nodes[id] }

// Kind returns the kind of an element. Text nodes report the zero Kind.
func (t *Tree) Kind(id NodeID) Kind { return t.nodes[id].Kind }

// IsText reports whether id is a text node.
func (t *Tree) IsText(id NodeID) bool {
	return id != Nil && t.nodes[id].Type == TextNode
}

// IsElement reports whether id is an element of kind k.
func (t *Tree) IsElement(id NodeID, k Kind) bool {
	return id != Nil && t.nodes[id].Type == ElementNode && t.nodes[id].Kind == k
}

// IsBreak reports whether id is a break marker.
func (t *Tree) IsBreak(id NodeID) bool { return t.IsElement(id, KindBr) }

// IsBlock reports whether id is a block-classified element.
func (t *Tree) IsBlock(id NodeID) bool {
	return id != Nil && t.nodes[id].Type == ElementNode && t.nodes[id].Block
}

// NewElement allocates a detached element of kind k. Breaks start as
// single-line source breaks.
func (t *Tree) NewElement(k Kind) NodeID {
	n := Node{
		Type:  ElementNode,
		Kind:  k,
		Tag:   k.String(),
		Block: k.DefaultBlock(),
	}
	if k == KindBr {
		n.Lines = 1
	}
	return t.alloc(n)
}

// NewText allocates a detached text node.
func (t *Tree) NewText(s string) NodeID {
	return t.alloc(Node{Type: TextNode, Text: s})
}

// NewBreak allocates a detached break marker.
func (t *Tree) NewBreak(origin BreakOrigin, lines int) NodeID {
	id := t.NewElement(KindBr)
	t.nodes[id].Origin = origin
	t.nodes[id].Lines = max(lines, 1)
	return id
}

func (t *Tree) alloc(n Node) NodeID {
	n.Parent = Nil
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// Parent returns the parent of id, or Nil.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].Parent }

// Children returns a copy of the child list of id.
func (t *Tree) Children(id NodeID) []NodeID { return slices.Clone(t.nodes[id].Children) }

// NumChildren returns the number of children of id.
func (t *Tree) NumChildren(id NodeID) int { return len(t.nodes[id].Children) }

// FirstChild returns the first child of id, or Nil.
func (t *Tree) FirstChild(id NodeID) NodeID {
	if c := t.nodes[id].Children; len(c) > 0 {
		return c[0]
	}
	return Nil
}

// LastChild returns the last child of id, or Nil.
func (t *Tree) LastChild(id NodeID) NodeID {
	if c := t.nodes[id].Children; len(c) > 0 {
		return c[len(c)-1]
	}
	return Nil
}

// Index returns the position of id among its siblings, or -1 if detached.
func (t *Tree) Index(id NodeID) int {
	p := t.nodes[id].Parent
	if p == Nil {
		return -1
	}
	return slices.Index(t.nodes[p].Children, id)
}

// PrevSibling returns the sibling before id, or Nil.
func (t *Tree) PrevSibling(id NodeID) NodeID {
	i := t.Index(id)
	if i <= 0 {
		return Nil
	}
	return t.nodes[t.nodes[id].Parent].Children[i-1]
}

// NextSibling returns the sibling after id, or Nil.
func (t *Tree) NextSibling(id NodeID) NodeID {
	i := t.Index(id)
	if i < 0 {
		return Nil
	}
	c := t.nodes[t.nodes[id].Parent].Children
	if i+1 >= len(c) {
		return Nil
	}
	return c[i+1]
}

func (t *Tree) checkDetached(op string, id NodeID) {
	if t.nodes[id].Parent != Nil || id == t.root {
		panic("dom: " + op + " called for an attached child node")
	}
}

// AppendChild adds child as the last child of parent. It panics if child
// already has a parent.
func (t *Tree) AppendChild(parent, child NodeID) {
	t.checkDetached("AppendChild", child)
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
	t.nodes[child].Parent = parent
}

// PrependChild adds child as the first child of parent.
func (t *Tree) PrependChild(parent, child NodeID) {
	t.checkDetached("PrependChild", child)
	t.nodes[parent].Children = slices.Insert(t.nodes[parent].Children, 0, child)
	t.nodes[child].Parent = parent
}

// InsertBefore inserts n as the sibling immediately before ref.
func (t *Tree) InsertBefore(ref, n NodeID) {
	t.checkDetached("InsertBefore", n)
	p := t.nodes[ref].Parent
	if p == Nil {
		panic("dom: InsertBefore called with a detached reference node")
	}
	i := slices.Index(t.nodes[p].Children, ref)
	t.nodes[p].Children = slices.Insert(t.nodes[p].Children, i, n)
	t.nodes[n].Parent = p
}

// InsertAfter inserts n as the sibling immediately after ref.
func (t *Tree) InsertAfter(ref, n NodeID) {
	t.checkDetached("InsertAfter", n)
	p := t.nodes[ref].Parent
	if p == Nil {
		panic("dom: InsertAfter called with a detached reference node")
	}
	i := slices.Index(t.nodes[p].Children, ref)
	t.nodes[p].Children = slices.Insert(t.nodes[p].Children, i+1, n)
	t.nodes[n].Parent = p
}

// Detach unlinks id from its parent. Its subtree stays intact so it can be
// inserted elsewhere.
func (t *Tree) Detach(id NodeID) {
	p := t.nodes[id].Parent
	if p == Nil {
		return
	}
	t.nodes[p].Children = slices.DeleteFunc(t.nodes[p].Children, func(c NodeID) bool { return c == id })
	t.nodes[id].Parent = Nil
}

// Remove detaches id and drops its subtree.
func (t *Tree) Remove(id NodeID) {
	t.Detach(id)
	t.WalkPost(id, func(n NodeID) {
		t.nodes[n].Children = nil
		t.nodes[n].Parent = Nil
	})
}

// Unwrap replaces id with its children.
func (t *Tree) Unwrap(id NodeID) {
	p := t.nodes[id].Parent
	if p == Nil {
		return
	}
	children := t.nodes[id].Children
	for _, c := range children {
		t.nodes[c].Parent = p
	}
	i := slices.Index(t.nodes[p].Children, id)
	t.nodes[p].Children = slices.Replace(t.nodes[p].Children, i, i+1, children...)
	t.nodes[id].Children = nil
	t.nodes[id].Parent = Nil
}

// Wrap puts wrapper where id was and moves id into it.
func (t *Tree) Wrap(id, wrapper NodeID) {
	t.InsertBefore(id, wrapper)
	t.Detach(id)
	t.AppendChild(wrapper, id)
}

// WrapChildren moves every child of id into wrapper and makes wrapper the
// only child of id.
func (t *Tree) WrapChildren(id, wrapper NodeID) {
	t.checkDetached("WrapChildren", wrapper)
	children := t.nodes[id].Children
	for _, c := range children {
		t.nodes[c].Parent = wrapper
	}
	t.nodes[wrapper].Children = append(t.nodes[wrapper].Children, children...)
	t.nodes[id].Children = nil
	t.AppendChild(id, wrapper)
}

// ReplaceWith puts n where old was and detaches old.
func (t *Tree) ReplaceWith(old, n NodeID) {
	t.InsertBefore(old, n)
	t.Detach(old)
}

// MoveChildren appends every child of src to dst.
func (t *Tree) MoveChildren(dst, src NodeID) {
	for _, c := range t.nodes[src].Children {
		t.nodes[c].Parent = dst
	}
	t.nodes[dst].Children = append(t.nodes[dst].Children, t.nodes[src].Children...)
	t.nodes[src].Children = nil
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the children of that node. Children are read after fn returns, so fn
// may rewrite them.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range t.Children(id) {
		if t.nodes[c].Parent == id {
			t.Walk(c, fn)
		}
	}
}

// WalkPost visits the descendants of id, then id itself. The child list is
// captured before descending, so fn may detach or replace the visited node.
func (t *Tree) WalkPost(id NodeID, fn func(NodeID)) {
	for _, c := range t.Children(id) {
		if t.nodes[c].Parent == id {
			t.WalkPost(c, fn)
		}
	}
	fn(id)
}

// Descendants returns every node below id in pre-order.
func (t *Tree) Descendants(id NodeID) []NodeID {
	var out []NodeID
	t.Walk(id, func(n NodeID) bool {
		if n != id {
			out = append(out, n)
		}
		return true
	})
	return out
}

// TextContent concatenates the text below id.
func (t *Tree) TextContent(id NodeID) string {
	var sb strings.Builder
	t.Walk(id, func(n NodeID) bool {
		if t.nodes[n].Type == TextNode {
			sb.WriteString(t.nodes[n].Text)
		}
		return true
	})
	return sb.String()
}

// MergeText joins adjacent text children of id and drops empty ones. It
// reports whether anything changed.
func (t *Tree) MergeText(id NodeID) bool {
	changed := false
	kept := t.nodes[id].Children[:0]
	for _, c := range t.nodes[id].Children {
		if t.nodes[c].Type != TextNode {
			kept = append(kept, c)
			continue
		}
		if t.nodes[c].Text == "" {
			t.nodes[c].Parent = Nil
			changed = true
			continue
		}
		if n := len(kept); n > 0 && t.nodes[kept[n-1]].Type == TextNode {
			t.nodes[kept[n-1]].Text += t.nodes[c].Text
			t.nodes[c].Parent = Nil
			changed = true
			continue
		}
		kept = append(kept, c)
	}
	t.nodes[id].Children = kept
	return changed
}

// MergeAllText applies MergeText to every element below and including id.
func (t *Tree) MergeAllText(id NodeID) bool {
	changed := false
	t.WalkPost(id, func(n NodeID) {
		if t.nodes[n].Type == ElementNode && t.MergeText(n) {
			changed = true
		}
	})
	return changed
}

// Count returns the number of nodes reachable from the root.
func (t *Tree) Count() int {
	n := 0
	t.Walk(t.root, func(NodeID) bool {
		n++
		return true
	})
	return n
}

package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Build converts a parsed document into a Tree. When n contains a <body>
// only the body is converted and its attributes move to the document root.
// Comments and doctypes are dropped; whitespace runs outside <pre> collapse
// to a single space.
func Build(n *html.Node) *Tree {
	t := NewTree()
	if n == nil {
		return t
	}
	src := n
	if body := findBody(n); body != nil {
		src = body
	}
	root := t.Node(t.root)
	if src.Type == html.ElementNode {
		root.Attrs = convertAttrs(src.Attr)
		for c := src.FirstChild; c != nil; c = c.NextSibling {
			t.build(t.root, c, false)
		}
	} else {
		t.build(t.root, src, false)
	}
	t.MergeAllText(t.root)
	return t
}

func (t *Tree) build(parent NodeID, n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		text := n.Data
		if !pre {
			text = CollapseSpace(text)
		}
		if text != "" {
			t.AppendChild(parent, t.NewText(text))
		}
	case html.ElementNode:
		id := t.NewElement(KindOf(n.DataAtom))
		node := t.Node(id)
		node.Tag = n.Data
		node.Attrs = convertAttrs(n.Attr)
		t.AppendChild(parent, id)
		inPre := pre || n.DataAtom == atom.Pre || n.DataAtom == atom.Listing || n.DataAtom == atom.Textarea
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			t.build(id, c, inPre)
		}
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			t.build(parent, c, pre)
		}
	}
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func convertAttrs(attrs []html.Attribute) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Namespace != "" {
			continue
		}
		out = append(out, Attr{Key: strings.ToLower(a.Key), Val: a.Val})
	}
	return out
}

// CollapseSpace replaces every run of HTML whitespace with one space.
func CollapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		if IsSpace(r) {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// IsSpace reports whether r is HTML inter-element whitespace.
func IsSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, IsSpace) == ""
}

package dom

import (
	"fmt"
	"strconv"
	"strings"
)

// Render dumps the tree as indented text, one node per line.
func Render(t *Tree) string {
	var sb strings.Builder
	t.dump(&sb, t.root, 0)
	return sb.String()
}

func (t *Tree) dump(sb *strings.Builder, id NodeID, depth int) {
	n := t.Node(id)
	sb.WriteString(strings.Repeat("  ", depth))
	if n.Type == TextNode {
		sb.WriteString(strconv.Quote(n.Text))
		sb.WriteByte('\n')
		return
	}
	sb.WriteString(n.Kind.String())
	if n.Tag != n.Kind.String() {
		fmt.Fprintf(sb, "(%s)", n.Tag)
	}
	if n.Block {
		sb.WriteString(" block")
	}
	if n.Kind == KindBr {
		fmt.Fprintf(sb, " %s lines=%d", n.Origin, n.Lines)
	}
	if n.Prefix != "" {
		fmt.Fprintf(sb, " prefix=%q", n.Prefix)
	}
	for _, a := range n.Attrs {
		fmt.Fprintf(sb, " %s=%q", a.Key, a.Val)
	}
	if s := n.Style; s != nil {
		sb.WriteString(" {")
		sb.WriteString(s.String())
		sb.WriteString("}")
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		t.dump(sb, c, depth+1)
	}
}

// String lists the facts that are set.
func (s *Style) String() string {
	var parts []string
	flag := func(on bool, name string) {
		if on {
			parts = append(parts, name)
		}
	}
	flag(s.Bold, "bold")
	flag(s.Italic, "italic")
	flag(s.Underline, "underline")
	flag(s.Strike, "strike")
	flag(s.BorderTop, "border-top")
	flag(s.BorderBottom, "border-bottom")
	if s.MarginTop != nil {
		parts = append(parts, "margin-top="+strconv.FormatFloat(*s.MarginTop, 'g', 4, 64))
	}
	if s.MarginBottom != nil {
		parts = append(parts, "margin-bottom="+strconv.FormatFloat(*s.MarginBottom, 'g', 4, 64))
	}
	if s.ListStyle != "" {
		parts = append(parts, "list-style="+s.ListStyle)
	}
	switch s.Display {
	case DisplayBlock:
		parts = append(parts, "display=block")
	case DisplayInline:
		parts = append(parts, "display=inline")
	case DisplayNone:
		parts = append(parts, "display=none")
	}
	return strings.Join(parts, " ")
}

// Package render flattens a linearized tree into text.
//
// The walk is post-order: every element first reduces its children, then
// becomes a single text node or disappears. Link-block scopes open a fresh
// LinkRegistry on entry and emit it on exit.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

// ErrStructuralInvariant is wrapped by every StructuralError.
var ErrStructuralInvariant = errors.New("structural invariant violated")

// StructuralError reports an element that an earlier pass should have
// rewritten away, or that did not reduce to a single text run.
type StructuralError struct {
	Kind   dom.Kind
	Tag    string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: <%s> (%s): %s", ErrStructuralInvariant, e.Tag, e.Kind, e.Reason)
}

func (e *StructuralError) Unwrap() error { return ErrStructuralInvariant }

// Markers are the emphasis delimiters.
type Markers struct {
	Bold      string
	Italic    string
	Underline string
	Strike    string
}

// Options configures the serializer.
type Options struct {
	Markers   Markers
	RuleWidth int
}

// DefaultRuleWidth is the length of a horizontal rule.
const DefaultRuleWidth = 79

// DefaultOptions returns the standard markers and rule width.
func DefaultOptions() Options {
	return Options{
		Markers: Markers{
			Bold:      "*",
			Italic:    "/",
			Underline: "_",
			Strike:    "~",
		},
		RuleWidth: DefaultRuleWidth,
	}
}

type serializer struct {
	t    *dom.Tree
	ctx  *Context
	opts Options
}

// Render reduces the tree to its text. On error no partial output is
// returned and the tree is left half reduced.
func Render(t *dom.Tree, ctx *Context, opts Options) (string, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	if opts.RuleWidth <= 0 {
		opts.RuleWidth = DefaultRuleWidth
	}
	s := &serializer{t: t, ctx: ctx, opts: opts}
	out, err := s.reduce(t.Root())
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// reduce serializes id and returns its text. The node is replaced by a text
// node holding the result, or removed when the result is empty.
func (s *serializer) reduce(id dom.NodeID) (string, error) {
	t := s.t
	n := t.Node(id)
	if n.Type == dom.TextNode {
		return n.Text, nil
	}
	kind := n.Kind
	scope := IsScope(kind)
	if scope {
		s.ctx.push()
		defer s.ctx.pop()
	}

	for _, c := range t.Children(id) {
		if t.IsText(c) {
			continue
		}
		if _, err := s.reduce(c); err != nil {
			return "", err
		}
	}
	t.MergeText(id)

	var content string
	switch t.NumChildren(id) {
	case 0:
	case 1:
		c := t.FirstChild(id)
		if !t.IsText(c) {
			return "", s.fail(id, "child element left after reduction")
		}
		content = t.Node(c).Text
	default:
		return "", s.fail(id, "more than one child left after reduction")
	}

	out, err := s.element(id, content)
	if err != nil {
		return "", err
	}
	if scope {
		out += linkBlock(s.ctx.Links().Entries(), t.Node(id).Prefix, "")
	}
	if kind == dom.KindDocument {
		out += linkBlock(s.ctx.Images.Entries(), "", "#")
	}
	s.replace(id, out)
	return out, nil
}

// element computes the text of one element from its reduced content.
func (s *serializer) element(id dom.NodeID, content string) (string, error) {
	n := s.t.Node(id)
	m := s.opts.Markers
	switch n.Kind {
	case dom.KindB:
		return wrap(content, m.Bold), nil
	case dom.KindI:
		return wrap(content, m.Italic), nil
	case dom.KindU:
		return wrap(content, m.Underline), nil
	case dom.KindS:
		return wrap(content, m.Strike), nil
	case dom.KindA:
		return s.ctx.link(n, content), nil
	case dom.KindBr:
		return lineBreak(n.Lines, n.Prefix), nil
	case dom.KindHr:
		return strings.Repeat("_", s.opts.RuleWidth), nil
	case dom.KindDocument, dom.KindDiv, dom.KindP, dom.KindUl, dom.KindOl,
		dom.KindSpan, dom.KindPre, dom.KindLi, dom.KindBlockquote,
		dom.KindTable, dom.KindCaption, dom.KindTr, dom.KindTd, dom.KindTh,
		dom.KindH1, dom.KindH2, dom.KindH3, dom.KindH4, dom.KindH5, dom.KindH6:
		return content, nil
	case dom.KindStrong, dom.KindEm, dom.KindIns, dom.KindDel,
		dom.KindSub, dom.KindSup, dom.KindImg,
		dom.KindCol, dom.KindColgroup,
		dom.KindThead, dom.KindTbody, dom.KindTfoot:
		return "", s.fail(id, "element should have been linearized")
	default:
		return "", s.fail(id, "unhandled element kind")
	}
}

func (s *serializer) replace(id dom.NodeID, text string) {
	t := s.t
	if id == t.Root() {
		for _, c := range t.Children(id) {
			t.Remove(c)
		}
		if text != "" {
			t.AppendChild(id, t.NewText(text))
		}
		return
	}
	if text == "" {
		t.Remove(id)
		return
	}
	t.ReplaceWith(id, t.NewText(text))
}

func (s *serializer) fail(id dom.NodeID, reason string) error {
	n := s.t.Node(id)
	return &StructuralError{Kind: n.Kind, Tag: n.Tag, Reason: reason}
}

func wrap(content, marker string) string {
	if content == "" {
		return ""
	}
	return marker + content + marker
}

// lineBreak emits lines newlines, each followed by prefix. Lines left empty
// get the prefix without trailing blanks.
func lineBreak(lines int, prefix string) string {
	lines = max(lines, 1)
	var sb strings.Builder
	for i := range lines {
		sb.WriteByte('\n')
		if i < lines-1 {
			sb.WriteString(blankPrefix(prefix))
		} else {
			sb.WriteString(prefix)
		}
	}
	return sb.String()
}

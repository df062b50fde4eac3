package style

import (
	"github.com/jmylchreest/pmrt/internal/logger"
	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

// Normalize parses the style attribute of every element into Node.Style,
// removes the attribute and reclassifies the element as block or inline.
// Subtrees styled display:none are removed; their count is returned.
func Normalize(t *dom.Tree) int {
	hidden := 0
	t.Walk(t.Root(), func(id dom.NodeID) bool {
		n := t.Node(id)
		if n.Type != dom.ElementNode {
			return false
		}
		decl, ok := n.Attr("style")
		if !ok {
			return true
		}
		n.RemoveAttr("style")
		s, err := Parse(decl)
		if err != nil {
			logger.Debug("malformed style value", "tag", n.Tag, "style", decl, "error", err)
		}
		n.Style = &s
		switch s.Display {
		case dom.DisplayBlock:
			n.Block = true
		case dom.DisplayInline:
			n.Block = false
		case dom.DisplayNone:
			if id != t.Root() {
				t.Remove(id)
				hidden++
				return false
			}
		}
		return true
	})
	return hidden
}

package transform

import "github.com/jmylchreest/pmrt/pkg/pmrt/dom"

var superscripts = map[string]string{
	"0": "⁰", "1": "¹", "2": "²", "3": "³", "4": "⁴",
	"5": "⁵", "6": "⁶", "7": "⁷", "8": "⁸", "9": "⁹",
	"+": "⁺", "-": "⁻", "=": "⁼", "(": "⁽", ")": "⁾",
}

var subscripts = map[string]string{
	"0": "₀", "1": "₁", "2": "₂", "3": "₃", "4": "₄",
	"5": "₅", "6": "₆", "7": "₇", "8": "₈", "9": "₉",
	"+": "₊", "-": "₋", "=": "₌", "(": "₍", ")": "₎",
}

// linearizeScript replaces a one-character sub or superscript by its glyph;
// anything longer gets a '_' or '^' in front and is unwrapped.
func (l *linearizer) linearizeScript(id dom.NodeID) {
	t := l.t
	table, mark := superscripts, "^"
	if t.Kind(id) == dom.KindSub {
		table, mark = subscripts, "_"
	}
	if g, ok := table[t.TextContent(id)]; ok {
		t.ReplaceWith(id, t.NewText(g))
		return
	}
	if t.NumChildren(id) == 0 {
		t.Remove(id)
		return
	}
	t.PrependChild(id, t.NewText(mark))
	t.Unwrap(id)
}

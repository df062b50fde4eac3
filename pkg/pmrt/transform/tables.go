package transform

import (
	"strings"

	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

func isCell(t *dom.Tree, id dom.NodeID) bool {
	return t.IsElement(id, dom.KindTd) || t.IsElement(id, dom.KindTh)
}

// linearizeRow separates the cells of a row with a tab.
func (l *linearizer) linearizeRow(id dom.NodeID) {
	t := l.t
	for _, c := range t.Children(id) {
		if t.IsText(c) && dom.IsBlank(t.Node(c).Text) {
			t.Remove(c)
		}
	}
	for _, c := range t.Children(id) {
		if !isCell(t, c) {
			continue
		}
		trimText(t, t.FirstChild(c), strings.TrimLeft)
		trimText(t, t.LastChild(c), strings.TrimRight)
		if next := t.NextSibling(c); isCell(t, next) {
			t.InsertAfter(c, t.NewText("\t"))
		}
	}
}

// linearizeTable drops structural markers left at the table edges.
func (l *linearizer) linearizeTable(id dom.NodeID) {
	t := l.t
	for range t.NumChildren(id) + 1 {
		switch {
		case structural(l.t, t.FirstChild(id)):
			t.Remove(t.FirstChild(id))
		case structural(l.t, t.LastChild(id)):
			t.Remove(t.LastChild(id))
		default:
			return
		}
	}
}

package transform

import (
	"strconv"
	"strings"
	"sync"

	"github.com/jmylchreest/pmrt/internal/logger"
	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

// MaxOrdinal is the largest ordinal the numbering tables cover.
const MaxOrdinal = 3999

// Numbering systems and bullet glyphs.
const (
	Decimal    = "decimal"
	LowerAlpha = "lower-alpha"
	UpperAlpha = "upper-alpha"
	LowerRoman = "lower-roman"
	UpperRoman = "upper-roman"
	Disc       = "disc"
	Circle     = "circle"
	Square     = "square"
	None       = "none"
)

var glyphs = map[string]string{
	Disc:   "•",
	Circle: "◦",
	Square: "▪",
	None:   "",
}

// schemeAliases maps list type attributes and list-style keywords onto a
// scheme.
var schemeAliases = map[string]string{
	"1":           Decimal,
	"a":           LowerAlpha,
	"A":           UpperAlpha,
	"i":           LowerRoman,
	"I":           UpperRoman,
	"decimal":     Decimal,
	"lower-alpha": LowerAlpha,
	"lower-latin": LowerAlpha,
	"upper-alpha": UpperAlpha,
	"upper-latin": UpperAlpha,
	"lower-roman": LowerRoman,
	"upper-roman": UpperRoman,
	"disc":        Disc,
	"circle":      Circle,
	"square":      Square,
	"none":        None,
}

var numberingTables = sync.OnceValue(func() map[string][]string {
	tables := map[string][]string{
		Decimal:    make([]string, MaxOrdinal+1),
		LowerAlpha: make([]string, MaxOrdinal+1),
		UpperAlpha: make([]string, MaxOrdinal+1),
		LowerRoman: make([]string, MaxOrdinal+1),
		UpperRoman: make([]string, MaxOrdinal+1),
	}
	for i := 1; i <= MaxOrdinal; i++ {
		tables[Decimal][i] = strconv.Itoa(i)
		alpha := alphabetic(i)
		tables[LowerAlpha][i] = alpha
		tables[UpperAlpha][i] = strings.ToUpper(alpha)
		roman := romanNumeral(i)
		tables[UpperRoman][i] = roman
		tables[LowerRoman][i] = strings.ToLower(roman)
	}
	return tables
})

// alphabetic is the bijective base-26 form: a..z, aa, ab, ...
func alphabetic(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

func romanNumeral(n int) string {
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var sb strings.Builder
	for i, v := range values {
		for n >= v {
			sb.WriteString(symbols[i])
			n -= v
		}
	}
	return sb.String()
}

// Ordinal renders n in the numbering system scheme. Ordinals outside the
// tables fall back to decimal; glyph schemes return their glyph.
func Ordinal(scheme string, n int) string {
	if g, ok := glyphs[scheme]; ok {
		return g
	}
	table, ok := numberingTables()[scheme]
	if !ok || n < 1 || n > MaxOrdinal {
		return strconv.Itoa(n)
	}
	return table[n]
}

// ResolveScheme picks the scheme from a type attribute, then a list-style
// hint, then def. Unknown values are skipped.
func ResolveScheme(typeAttr, hint, def string) string {
	if typeAttr != "" {
		if s, ok := schemeAliases[typeAttr]; ok {
			return s
		}
		if s, ok := schemeAliases[strings.ToLower(typeAttr)]; ok {
			return s
		}
		logger.Debug("unknown list numbering type", "type", typeAttr)
	}
	if hint != "" {
		if s, ok := schemeAliases[strings.ToLower(hint)]; ok {
			return s
		}
		logger.Debug("unknown list numbering type", "list-style", hint)
	}
	return def
}

// marker returns the item marker text without indentation.
func marker(scheme string, n int) string {
	if g, ok := glyphs[scheme]; ok {
		return g
	}
	return Ordinal(scheme, n) + "."
}

func listHint(n *dom.Node) string {
	if n.Style == nil {
		return ""
	}
	return n.Style.ListStyle
}

// linearizeList prefixes every item of a list with its marker. Lists nested
// in another list indent every line they produce by one more tab.
func (l *linearizer) linearizeList(id dom.NodeID) {
	t := l.t
	n := t.Node(id)
	def := Decimal
	if n.Kind == dom.KindUl {
		def = l.opts.DefaultBullet
	}
	typeAttr, _ := n.Attr("type")
	scheme := ResolveScheme(typeAttr, listHint(n), def)

	counter := 1
	if v, ok := n.Attr("start"); ok {
		if s, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			counter = s
		}
	}

	for _, item := range t.Children(id) {
		if !t.IsElement(item, dom.KindLi) {
			continue
		}
		li := t.Node(item)
		if v, ok := li.Attr("value"); ok {
			if s, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				counter = s
			}
		}
		itemScheme := scheme
		itemType, _ := li.Attr("type")
		if itemType != "" || listHint(li) != "" {
			itemScheme = ResolveScheme(itemType, listHint(li), scheme)
		}
		prefix := "\t" + marker(itemScheme, counter)
		if prefix != "\t" {
			prefix += " "
		}
		t.PrependChild(item, t.NewText(prefix))
		t.MergeText(item)
		if first := t.FirstChild(item); t.IsText(first) && t.IsBreak(t.NextSibling(first)) {
			t.Node(first).Text = strings.TrimRight(t.Node(first).Text, " ")
		}
		counter++
	}

	if inList(t, id) {
		for _, d := range t.Descendants(id) {
			if !t.IsText(d) {
				t.Node(d).Prefix = "\t" + t.Node(d).Prefix
			}
		}
		t.Node(id).Prefix = "\t" + t.Node(id).Prefix
		prev := t.PrevSibling(id)
		if prev == dom.Nil && !t.Kind(t.Parent(id)).IsList() {
			// first in its item: start on a line of its own
			prev = t.NewBreak(dom.BreakBefore, 1)
			t.InsertBefore(id, prev)
		}
		if t.IsBreak(prev) {
			t.Node(prev).Prefix = "\t" + t.Node(prev).Prefix
		}
	}
}

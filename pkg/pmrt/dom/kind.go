package dom

import (
	"strconv"

	"golang.org/x/net/html/atom"
)

// Kind classifies an element node.
type Kind uint8

// Element kinds. The set is closed: every parsed tag maps onto one of these.
const (
	KindDocument Kind = iota

	// Generic containers.
	KindDiv
	KindP
	KindSpan
	KindPre

	// Inline markup.
	KindA
	KindB
	KindStrong
	KindI
	KindEm
	KindU
	KindIns
	KindS
	KindDel
	KindSub
	KindSup

	// Voids.
	KindBr
	KindHr
	KindImg
	KindCol

	// Tables.
	KindColgroup
	KindTable
	KindCaption
	KindThead
	KindTbody
	KindTfoot
	KindTr
	KindTd
	KindTh

	// Lists and quotes.
	KindUl
	KindOl
	KindLi
	KindBlockquote

	// Headings.
	KindH1
	KindH2
	KindH3
	KindH4
	KindH5
	KindH6

	kindCount
)

var kindNames = [kindCount]string{
	KindDocument:   "document",
	KindDiv:        "div",
	KindP:          "p",
	KindSpan:       "span",
	KindPre:        "pre",
	KindA:          "a",
	KindB:          "b",
	KindStrong:     "strong",
	KindI:          "i",
	KindEm:         "em",
	KindU:          "u",
	KindIns:        "ins",
	KindS:          "s",
	KindDel:        "del",
	KindSub:        "sub",
	KindSup:        "sup",
	KindBr:         "br",
	KindHr:         "hr",
	KindImg:        "img",
	KindCol:        "col",
	KindColgroup:   "colgroup",
	KindTable:      "table",
	KindCaption:    "caption",
	KindThead:      "thead",
	KindTbody:      "tbody",
	KindTfoot:      "tfoot",
	KindTr:         "tr",
	KindTd:         "td",
	KindTh:         "th",
	KindUl:         "ul",
	KindOl:         "ol",
	KindLi:         "li",
	KindBlockquote: "blockquote",
	KindH1:         "h1",
	KindH2:         "h2",
	KindH3:         "h3",
	KindH4:         "h4",
	KindH5:         "h5",
	KindH6:         "h6",
}

// Kinds returns every element kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := KindDocument; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// IsVoid reports whether the kind is a content-less placeholder that is
// never pruned for being empty.
func (k Kind) IsVoid() bool {
	switch k {
	case KindBr, KindHr, KindImg, KindCol:
		return true
	default:
		return false
	}
}

// DefaultBlock reports whether the kind is block-classified when no
// display style overrides it.
func (k Kind) DefaultBlock() bool {
	switch k {
	case KindDocument, KindDiv, KindP, KindPre, KindHr,
		KindTable, KindCaption, KindThead, KindTbody, KindTfoot, KindTr,
		KindUl, KindOl, KindLi, KindBlockquote,
		KindH1, KindH2, KindH3, KindH4, KindH5, KindH6:
		return true
	default:
		return false
	}
}

// IsEmphasis reports whether the kind carries an emphasis delimiter,
// aliases included.
func (k Kind) IsEmphasis() bool {
	switch k {
	case KindB, KindStrong, KindI, KindEm, KindU, KindIns, KindS, KindDel:
		return true
	default:
		return false
	}
}

// Canonical maps alias kinds onto the kind they render as.
func (k Kind) Canonical() Kind {
	switch k {
	case KindStrong:
		return KindB
	case KindEm:
		return KindI
	case KindIns:
		return KindU
	case KindDel:
		return KindS
	default:
		return k
	}
}

// IsHeading reports whether the kind is h1..h6.
func (k Kind) IsHeading() bool {
	return k >= KindH1 && k <= KindH6
}

// HeadingLevel returns 1..6 for headings and 0 otherwise.
func (k Kind) HeadingLevel() int {
	if !k.IsHeading() {
		return 0
	}
	return int(k-KindH1) + 1
}

// IsList reports whether the kind is ul or ol.
func (k Kind) IsList() bool {
	return k == KindUl || k == KindOl
}

// IsRowGroup reports whether the kind is thead, tbody or tfoot.
func (k Kind) IsRowGroup() bool {
	return k == KindThead || k == KindTbody || k == KindTfoot
}

var atomKinds = map[atom.Atom]Kind{
	atom.Body:       KindDiv,
	atom.P:          KindP,
	atom.Span:       KindSpan,
	atom.Pre:        KindPre,
	atom.Listing:    KindPre,
	atom.A:          KindA,
	atom.B:          KindB,
	atom.Strong:     KindStrong,
	atom.I:          KindI,
	atom.Em:         KindEm,
	atom.Cite:       KindEm,
	atom.Var:        KindEm,
	atom.Dfn:        KindEm,
	atom.U:          KindU,
	atom.Ins:        KindIns,
	atom.S:          KindS,
	atom.Strike:     KindS,
	atom.Del:        KindDel,
	atom.Sub:        KindSub,
	atom.Sup:        KindSup,
	atom.Br:         KindBr,
	atom.Hr:         KindHr,
	atom.Img:        KindImg,
	atom.Col:        KindCol,
	atom.Colgroup:   KindColgroup,
	atom.Table:      KindTable,
	atom.Caption:    KindCaption,
	atom.Thead:      KindThead,
	atom.Tbody:      KindTbody,
	atom.Tfoot:      KindTfoot,
	atom.Tr:         KindTr,
	atom.Td:         KindTd,
	atom.Th:         KindTh,
	atom.Ul:         KindUl,
	atom.Menu:       KindUl,
	atom.Dir:        KindUl,
	atom.Ol:         KindOl,
	atom.Li:         KindLi,
	atom.Blockquote: KindBlockquote,
	atom.H1:         KindH1,
	atom.H2:         KindH2,
	atom.H3:         KindH3,
	atom.H4:         KindH4,
	atom.H5:         KindH5,
	atom.H6:         KindH6,
}

// blockAtoms are tags without a dedicated kind that still lay out as blocks.
var blockAtoms = map[atom.Atom]struct{}{
	atom.Address:    {},
	atom.Article:    {},
	atom.Aside:      {},
	atom.Center:     {},
	atom.Dd:         {},
	atom.Details:    {},
	atom.Dialog:     {},
	atom.Dl:         {},
	atom.Dt:         {},
	atom.Fieldset:   {},
	atom.Figcaption: {},
	atom.Figure:     {},
	atom.Footer:     {},
	atom.Header:     {},
	atom.Hgroup:     {},
	atom.Main:       {},
	atom.Nav:        {},
	atom.Section:    {},
	atom.Summary:    {},
	atom.Div:        {},
}

// KindOf maps a parser atom onto an element kind. Unknown block-level tags
// become KindDiv and everything else KindSpan.
func KindOf(a atom.Atom) Kind {
	if k, ok := atomKinds[a]; ok {
		return k
	}
	if _, ok := blockAtoms[a]; ok {
		return KindDiv
	}
	return KindSpan
}

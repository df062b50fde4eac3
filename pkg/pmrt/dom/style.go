package dom

// Display is the block/inline override carried by a style declaration.
type Display uint8

const (
	DisplayUnset Display = iota
	DisplayBlock
	DisplayInline
	DisplayNone
)

// Style is the typed record of the style facts the converter cares about.
// Margins are in line-height units; nil means the declaration was absent or
// could not be parsed.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool

	BorderTop    bool
	BorderBottom bool

	MarginTop    *float64
	MarginBottom *float64

	// ListStyle is a list-style-type keyword such as "disc" or "lower-roman".
	ListStyle string

	Display Display
}

// HasEmphasis reports whether any emphasis flag is set.
func (s *Style) HasEmphasis() bool {
	return s != nil && (s.Bold || s.Italic || s.Underline || s.Strike)
}

// BreakOrigin records why a break marker exists.
type BreakOrigin uint8

const (
	// BreakSource is a <br> present in the markup.
	BreakSource BreakOrigin = iota
	// BreakBefore was inserted in front of a block element.
	BreakBefore
	// BreakAfter was inserted behind a block element.
	BreakAfter
)

// Structural reports whether the break was inserted by block segmentation.
func (o BreakOrigin) Structural() bool {
	return o == BreakBefore || o == BreakAfter
}

func (o BreakOrigin) String() string {
	switch o {
	case BreakSource:
		return "source"
	case BreakBefore:
		return "before"
	case BreakAfter:
		return "after"
	default:
		return "unknown"
	}
}

// Margins are the vertical margins of a block in line-height units.
type Margins struct {
	Top    float64
	Bottom float64
}

// DefaultMargins returns user-agent margins for a kind. Nested lists get no
// margin; callers pass nested=true for lists inside another list.
func DefaultMargins(k Kind, nested bool) Margins {
	switch k {
	case KindP, KindPre, KindBlockquote,
		KindH1, KindH2, KindH3, KindH4, KindH5, KindH6:
		return Margins{Top: 1, Bottom: 1}
	case KindUl, KindOl:
		if nested {
			return Margins{}
		}
		return Margins{Top: 1, Bottom: 1}
	default:
		return Margins{}
	}
}

// Package style turns inline style declarations into dom.Style facts and
// the facts into markup.
package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

// borderStyles are the border-style keywords that draw a line.
var borderStyles = map[string]bool{
	"solid":  true,
	"dashed": true,
	"double": true,
	"dotted": true,
	"groove": true,
	"ridge":  true,
	"inset":  true,
	"outset": true,
}

type value struct {
	tt   css.TokenType
	data string
}

func (v value) ident() string {
	if v.tt != css.IdentToken {
		return ""
	}
	return strings.ToLower(v.data)
}

func (v value) numeric() bool {
	return v.tt == css.NumberToken || v.tt == css.DimensionToken || v.tt == css.PercentageToken
}

// Parse extracts the facts of an inline style declaration. Values that
// cannot be understood are skipped and reported together in the returned
// error, which wraps ErrMalformedValue; the returned Style is valid either
// way.
func Parse(decl string) (dom.Style, error) {
	var (
		s    dom.Style
		errs []error
	)
	p := css.NewParser(parse.NewInputString(decl), true)
	for range len(decl) + 1 {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			if p.Err() != nil {
				break
			}
			errs = append(errs, fmt.Errorf("%w: %q", ErrMalformedValue, data))
			continue
		}
		if gt != css.DeclarationGrammar {
			continue
		}
		var vals []value
		for _, tok := range p.Values() {
			switch tok.TokenType {
			case css.WhitespaceToken, css.CommentToken, css.CommaToken:
				continue
			case css.DelimToken:
				// !important
				continue
			}
			vals = append(vals, value{tt: tok.TokenType, data: string(tok.Data)})
		}
		if err := apply(&s, strings.ToLower(string(data)), vals); err != nil {
			errs = append(errs, err)
		}
	}
	return s, errors.Join(errs...)
}

func apply(s *dom.Style, prop string, vals []value) error {
	if len(vals) == 0 {
		return nil
	}
	switch prop {
	case "font-weight":
		s.Bold = bold(vals[0])
	case "font-style":
		s.Italic = italic(vals[0].ident())
	case "font":
		for _, v := range vals {
			if bold(v) {
				s.Bold = true
			}
			if italic(v.ident()) {
				s.Italic = true
			}
		}
	case "text-decoration", "text-decoration-line":
		for _, v := range vals {
			switch v.ident() {
			case "underline":
				s.Underline = true
			case "line-through":
				s.Strike = true
			}
		}
	case "border":
		on := border(vals)
		s.BorderTop, s.BorderBottom = on, on
	case "border-top", "border-top-style":
		s.BorderTop = border(vals)
	case "border-bottom", "border-bottom-style":
		s.BorderBottom = border(vals)
	case "border-style":
		top, bottom := edges(vals)
		s.BorderTop = border([]value{top})
		s.BorderBottom = border([]value{bottom})
	case "margin":
		top, bottom := edges(vals)
		var err error
		s.MarginTop, err = margin(top)
		b, err2 := margin(bottom)
		s.MarginBottom = b
		return errors.Join(err, err2)
	case "margin-top":
		var err error
		s.MarginTop, err = margin(vals[0])
		return err
	case "margin-bottom":
		var err error
		s.MarginBottom, err = margin(vals[0])
		return err
	case "list-style-type":
		s.ListStyle = vals[0].ident()
	case "list-style":
		for _, v := range vals {
			switch id := v.ident(); id {
			case "", "inside", "outside", "inherit", "initial", "unset":
			default:
				s.ListStyle = id
				return nil
			}
		}
	case "display":
		switch vals[0].ident() {
		case "none":
			s.Display = dom.DisplayNone
		case "inline", "inline-block", "inline-flex", "inline-grid", "contents":
			s.Display = dom.DisplayInline
		case "block", "list-item", "flex", "grid", "table", "table-row", "flow-root":
			s.Display = dom.DisplayBlock
		}
	}
	return nil
}

func bold(v value) bool {
	switch v.ident() {
	case "bold", "bolder":
		return true
	}
	if v.tt == css.NumberToken {
		w, err := strconv.ParseFloat(v.data, 64)
		return err == nil && w >= 600
	}
	return false
}

func italic(id string) bool {
	return id == "italic" || id == "oblique"
}

// edges picks the top and bottom values of a 1-4 value box shorthand.
func edges(vals []value) (top, bottom value) {
	top = vals[0]
	bottom = top
	if len(vals) >= 3 {
		bottom = vals[2]
	}
	return top, bottom
}

// border reports whether a border shorthand draws a line: it needs a line
// style and must not have a zero width.
func border(vals []value) bool {
	drawn := false
	for _, v := range vals {
		if v.numeric() {
			if w, err := Length(v.data); err == nil && w == 0 {
				return false
			}
			continue
		}
		switch id := v.ident(); {
		case id == "none" || id == "hidden":
			return false
		case borderStyles[id]:
			drawn = true
		}
	}
	return drawn
}

func margin(v value) (*float64, error) {
	if !v.numeric() {
		return nil, fmt.Errorf("%w: margin %q", ErrMalformedValue, v.data)
	}
	l, err := Length(v.data)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

package transform

import (
	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
	"github.com/jmylchreest/pmrt/pkg/pmrt/render"
)

// LinearizeOptions configures Linearize.
type LinearizeOptions struct {
	// DefaultBullet is the scheme of unordered lists without a hint.
	DefaultBullet     string
	QuoteMarker       string
	ImagePlaceholders []string
}

// DefaultLinearizeOptions returns a disc bullet, "> " quotes and the
// standard image placeholder.
func DefaultLinearizeOptions() LinearizeOptions {
	return LinearizeOptions{
		DefaultBullet:     Disc,
		QuoteMarker:       "> ",
		ImagePlaceholders: []string{DefaultImagePlaceholder},
	}
}

type linearizer struct {
	t    *dom.Tree
	ctx  *render.Context
	opts LinearizeOptions
}

// Linearize rewrites lists, tables, quotes, headings, sub and superscripts
// and images into text and plain markup, innermost first. Images are
// numbered in ctx.
func Linearize(t *dom.Tree, ctx *render.Context, opts LinearizeOptions) {
	if opts.DefaultBullet == "" {
		opts.DefaultBullet = Disc
	}
	if opts.QuoteMarker == "" {
		opts.QuoteMarker = "> "
	}
	l := &linearizer{t: t, ctx: ctx, opts: opts}
	t.WalkPost(t.Root(), func(id dom.NodeID) {
		if t.IsText(id) || t.Parent(id) == dom.Nil {
			return
		}
		switch k := t.Kind(id); {
		case k == dom.KindCol || k == dom.KindColgroup:
			t.Remove(id)
		case k == dom.KindTr:
			l.linearizeRow(id)
		case k.IsRowGroup():
			t.Unwrap(id)
		case k == dom.KindTable:
			l.linearizeTable(id)
		case k.IsList():
			l.linearizeList(id)
		case k == dom.KindBlockquote:
			l.linearizeQuote(id)
		case k.IsHeading():
			l.linearizeHeading(id)
		case k == dom.KindSub || k == dom.KindSup:
			l.linearizeScript(id)
		case k == dom.KindImg:
			l.linearizeImage(id)
		}
	})
	t.MergeAllText(t.Root())
}

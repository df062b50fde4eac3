package pmrt

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/pmrt/internal/logger"
	"github.com/jmylchreest/pmrt/pkg/cleaner"
	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
	"github.com/jmylchreest/pmrt/pkg/pmrt/render"
	"github.com/jmylchreest/pmrt/pkg/pmrt/style"
	"github.com/jmylchreest/pmrt/pkg/pmrt/transform"
	"github.com/jmylchreest/pmrt/pkg/undo"
)

// Converter turns HTML into poor man's rich text.
// It implements the cleaner.Cleaner interface and is safe for concurrent
// use: every conversion builds its own tree and registries.
type Converter struct {
	config *Config
	pre    *cleaner.PreCleaner
}

var _ cleaner.Cleaner = (*Converter)(nil)

// New creates a new Converter with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) *Converter {
	if config == nil {
		config = DefaultConfig()
	}
	c := &Converter{config: config}
	if config.PreCleanup {
		c.pre = cleaner.NewPreCleaner()
	}
	return c
}

// Config returns the configuration of the converter.
func (c *Converter) Config() *Config {
	return c.config
}

// Name returns the cleaner name for logging.
func (c *Converter) Name() string {
	return "pmrt"
}

// Clean converts html. It implements the cleaner.Cleaner interface.
func (c *Converter) Clean(html string) (string, error) {
	return c.Convert(html)
}

// Convert converts html and returns the text.
func (c *Converter) Convert(html string) (string, error) {
	result, err := c.ConvertWithStats(html)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// ConvertWithStats converts html and returns the text with detailed stats.
func (c *Converter) ConvertWithStats(html string) (*Result, error) {
	startTime := time.Now()
	result := &Result{Stats: NewStats()}
	result.Stats.InputBytes = len(html)

	parseStart := time.Now()
	doc, err := c.parse(html, result)
	result.Stats.ParseDuration = time.Since(parseStart)
	if err != nil {
		return nil, err
	}

	if err := c.convert(doc, result); err != nil {
		return nil, err
	}
	result.Stats.TotalDuration = time.Since(startTime)
	c.logStats(result.Stats)
	return result, nil
}

// ConvertDocument converts an already parsed document. The document is
// modified in place by sanitizing and boilerplate removal.
func (c *Converter) ConvertDocument(doc *goquery.Document) (*Result, error) {
	startTime := time.Now()
	result := &Result{Stats: NewStats()}
	if err := c.convert(doc, result); err != nil {
		return nil, err
	}
	result.Stats.TotalDuration = time.Since(startTime)
	c.logStats(result.Stats)
	return result, nil
}

// Tree returns the element tree of html after input preparation and style
// normalization, before any transformation.
func (c *Converter) Tree(html string) (*dom.Tree, error) {
	result := &Result{Stats: NewStats()}
	doc, err := c.parse(html, result)
	if err != nil {
		return nil, err
	}
	c.prepare(doc, result)
	t := build(doc)
	style.Normalize(t)
	return t, nil
}

// Prepared returns html after pre-cleanup, sanitizing and boilerplate
// removal, serialized back to markup.
func (c *Converter) Prepared(html string) (string, error) {
	result := &Result{Stats: NewStats()}
	doc, err := c.parse(html, result)
	if err != nil {
		return "", err
	}
	c.prepare(doc, result)
	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("pmrt: serialize html: %w", err)
	}
	return out, nil
}

// Preparer returns a cleaner running the input preparation of c, so that
// other output formats see the same sanitized markup.
func (c *Converter) Preparer() cleaner.Cleaner {
	return preparer{c}
}

type preparer struct {
	c *Converter
}

func (p preparer) Clean(html string) (string, error) { return p.c.Prepared(html) }

func (p preparer) Name() string { return "prepare" }

func (c *Converter) parse(html string, result *Result) (*goquery.Document, error) {
	if c.pre != nil {
		cleaned, err := c.pre.Clean(html)
		if err != nil {
			// the raw markup still parses
			result.AddWarning("prepare", "pre-cleanup failed, using raw input", err.Error())
			logger.Debug("pre-cleanup failed", "error", err)
		} else {
			html = cleaned
		}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("pmrt: parse html: %w", err)
	}
	return doc, nil
}

// prepare applies the configured document-level removals.
func (c *Converter) prepare(doc *goquery.Document, result *Result) {
	if c.config.Sanitize {
		sanitize(doc, result.Stats)
	}
	if c.config.UndoBoilerplate {
		r := undo.Apply(doc, undo.Options{
			BannerLinks:     c.config.BannerLinks,
			StyleSignatures: c.config.BannerStyleSignatures,
		})
		result.Stats.BannersRemoved += r.BannersRemoved
		result.Stats.HiddenElementRemovals += r.ElementsRemoved
		result.Stats.LinksRewritten += r.LinksRewritten
	}
}

func build(doc *goquery.Document) *dom.Tree {
	if doc == nil || len(doc.Nodes) == 0 {
		return dom.NewTree()
	}
	return dom.Build(doc.Nodes[0])
}

// convert runs the tree passes and the serializer. Order matters: styles
// become markup before whitespace is swept out of it, and blocks are
// separated before lists and tables are flattened.
func (c *Converter) convert(doc *goquery.Document, result *Result) error {
	st := result.Stats

	transformStart := time.Now()
	c.prepare(doc, result)

	t := build(doc)
	st.NodesBuilt = t.Count()

	// 1. Styles
	st.HiddenElementRemovals += style.Normalize(t)
	st.MarkupInserted = style.Apply(t)

	// 2. Inline markup
	transform.UnwrapInline(t)
	transform.Canonicalize(t)
	st.WhitespaceMoves = transform.Sweep(t)
	st.MarkupMerged = transform.Dedupe(t)
	st.MarkupMerged += transform.MergeAdjacent(t)

	// 3. Blocks
	seg := transform.Segment(t, transform.SegmentOptions{MarginThreshold: c.config.MarginThreshold})
	st.BreaksInserted = seg.BreaksInserted
	st.BreaksCollapsed = seg.BreaksCollapsed
	st.NodesPruned = seg.NodesPruned

	// 4. Structures
	ctx := render.NewContext()
	transform.Linearize(t, ctx, c.config.linearizeOptions())
	st.TransformDuration = time.Since(transformStart)

	outputStart := time.Now()
	out, err := render.Render(t, ctx, c.config.renderOptions())
	st.OutputDuration = time.Since(outputStart)
	if err != nil {
		return fmt.Errorf("pmrt: render: %w", err)
	}

	st.LinksReferenced = ctx.LinksReferenced
	st.LinksInlined = ctx.LinksInlined
	st.LinksMissing = ctx.MissingTargets
	st.Images = ctx.Images.Len()
	if ctx.MissingTargets > 0 {
		result.AddWarning("links", "links without target rendered as text", fmt.Sprintf("%d links", ctx.MissingTargets))
	}

	result.Content = out
	st.OutputBytes = len(out)
	return nil
}

func (c *Converter) logStats(s *Stats) {
	if !c.config.Debug {
		return
	}
	logger.Debug("converted",
		"input_bytes", s.InputBytes,
		"output_bytes", s.OutputBytes,
		"elements_removed", s.TotalElementsRemoved(),
		"nodes_built", s.NodesBuilt,
		"nodes_pruned", s.NodesPruned,
		"markup_inserted", s.MarkupInserted,
		"whitespace_moves", s.WhitespaceMoves,
		"markup_merged", s.MarkupMerged,
		"breaks_inserted", s.BreaksInserted,
		"breaks_collapsed", s.BreaksCollapsed,
		"links", s.LinksReferenced,
		"images", s.Images,
		"duration", s.TotalDuration,
	)
}

package pmrt

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats captures metrics about one conversion.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// Preparation
	ElementsRemoved       map[string]int `json:"elements_removed" yaml:"elements_removed"` // tag -> count
	HiddenElementRemovals int            `json:"hidden_element_removals" yaml:"hidden_element_removals"`
	BannersRemoved        int            `json:"banners_removed" yaml:"banners_removed"`
	LinksRewritten        int            `json:"links_rewritten" yaml:"links_rewritten"`

	// Tree passes
	NodesBuilt      int `json:"nodes_built" yaml:"nodes_built"`
	NodesPruned     int `json:"nodes_pruned" yaml:"nodes_pruned"`
	MarkupInserted  int `json:"markup_inserted" yaml:"markup_inserted"`
	WhitespaceMoves int `json:"whitespace_moves" yaml:"whitespace_moves"`
	MarkupMerged    int `json:"markup_merged" yaml:"markup_merged"`
	BreaksInserted  int `json:"breaks_inserted" yaml:"breaks_inserted"`
	BreaksCollapsed int `json:"breaks_collapsed" yaml:"breaks_collapsed"`

	// References
	LinksReferenced int `json:"links_referenced" yaml:"links_referenced"`
	LinksInlined    int `json:"links_inlined" yaml:"links_inlined"`
	LinksMissing    int `json:"links_missing" yaml:"links_missing"`
	Images          int `json:"images" yaml:"images"`

	// Timing
	ParseDuration     time.Duration `json:"parse_duration_ms" yaml:"parse_duration_ms"`
	TransformDuration time.Duration `json:"transform_duration_ms" yaml:"transform_duration_ms"`
	OutputDuration    time.Duration `json:"output_duration_ms" yaml:"output_duration_ms"`
	TotalDuration     time.Duration `json:"total_duration_ms" yaml:"total_duration_ms"`
}

// NewStats creates a new Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsRemoved: make(map[string]int),
	}
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// TotalElementsRemoved returns the sum of all removed elements.
func (s *Stats) TotalElementsRemoved() int {
	total := 0
	for _, count := range s.ElementsRemoved {
		total += count
	}
	return total
}

// RecordRemoval records that an element was removed.
func (s *Stats) RecordRemoval(tag string) {
	s.ElementsRemoved[strings.ToLower(tag)]++
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Size: %s -> %s (%.1f%% reduction)\n",
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes)), s.ReductionPercent())

	fmt.Fprintf(&sb, "Elements: %s removed, %s hidden, %s banners\n",
		humanize.Comma(int64(s.TotalElementsRemoved())),
		humanize.Comma(int64(s.HiddenElementRemovals)),
		humanize.Comma(int64(s.BannersRemoved)))

	if len(s.ElementsRemoved) > 0 {
		sb.WriteString("Removed by tag: ")
		tags := slices.Sorted(maps.Keys(s.ElementsRemoved))
		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			parts = append(parts, fmt.Sprintf("%s=%d", tag, s.ElementsRemoved[tag]))
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Nodes: %s built, %s pruned\n",
		humanize.Comma(int64(s.NodesBuilt)), humanize.Comma(int64(s.NodesPruned)))

	fmt.Fprintf(&sb, "Breaks: %d inserted, %d collapsed\n", s.BreaksInserted, s.BreaksCollapsed)

	if s.LinksReferenced+s.LinksInlined+s.Images > 0 {
		fmt.Fprintf(&sb, "References: %d links, %d inline links, %d images\n",
			s.LinksReferenced, s.LinksInlined, s.Images)
	}

	fmt.Fprintf(&sb, "Timing: parse=%v, transform=%v, output=%v, total=%v\n",
		s.ParseDuration.Round(time.Microsecond),
		s.TransformDuration.Round(time.Microsecond),
		s.OutputDuration.Round(time.Microsecond),
		s.TotalDuration.Round(time.Microsecond))

	return sb.String()
}

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`     // "prepare", "style", "links"
	Message string `json:"message" yaml:"message"` // Human-readable description
	Context string `json:"context" yaml:"context"` // Element or value that caused issue
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a conversion.
type Result struct {
	// Content is the converted text.
	Content string `json:"content" yaml:"content"`

	// Stats contains metrics about what was done.
	Stats *Stats `json:"stats" yaml:"stats"`

	// Warnings contains non-fatal issues encountered.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

package pmrt

import (
	"strings"
	"testing"
	"time"
)

func TestNewStats(t *testing.T) {
	s := NewStats()

	if s == nil {
		t.Fatal("expected non-nil stats")
	}
	if s.ElementsRemoved == nil {
		t.Error("expected ElementsRemoved map to be initialized")
	}
}

func TestStatsReductionPercent(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		output   int
		expected float64
	}{
		{"50% reduction", 100, 50, 50.0},
		{"no reduction", 100, 100, 0.0},
		{"full reduction", 100, 0, 100.0},
		{"zero input", 0, 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stats{InputBytes: tt.input, OutputBytes: tt.output}
			if got := s.ReductionPercent(); got != tt.expected {
				t.Errorf("expected %.1f%%, got %.1f%%", tt.expected, got)
			}
		})
	}
}

func TestStatsRecordRemoval(t *testing.T) {
	s := NewStats()
	s.RecordRemoval("script")
	s.RecordRemoval("SCRIPT")
	s.RecordRemoval("style")

	if s.ElementsRemoved["script"] != 2 {
		t.Errorf("expected 2 script removals, got %d", s.ElementsRemoved["script"])
	}
	if got := s.TotalElementsRemoved(); got != 3 {
		t.Errorf("expected 3 total removals, got %d", got)
	}
}

func TestStatsString(t *testing.T) {
	s := NewStats()
	s.InputBytes = 2048
	s.OutputBytes = 512
	s.RecordRemoval("style")
	s.RecordRemoval("script")
	s.NodesBuilt = 1200
	s.LinksReferenced = 2
	s.TotalDuration = 1500 * time.Microsecond

	out := s.String()
	for _, want := range []string{
		"2.0 kB -> 512 B (75.0% reduction)",
		"Removed by tag: script=1, style=1",
		"Nodes: 1,200 built",
		"References: 2 links",
		"total=1.5ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestResultWarnings(t *testing.T) {
	r := &Result{}
	if r.HasWarnings() {
		t.Error("expected no warnings")
	}

	r.AddWarning("links", "links without target rendered as text", "2 links")
	if !r.HasWarnings() {
		t.Fatal("expected a warning")
	}
	if got := r.Warnings[0].String(); got != "[links] links without target rendered as text (context: 2 links)" {
		t.Errorf("unexpected warning string %q", got)
	}
	if got := (Warning{Phase: "prepare", Message: "m"}).String(); got != "[prepare] m" {
		t.Errorf("unexpected warning string %q", got)
	}
}

package cleaner

import (
	"errors"
	"strings"
	"testing"
)

// --- NoopCleaner Tests ---

func TestNoopCleaner_Clean(t *testing.T) {
	c := NewNoop()

	tests := []struct {
		name  string
		input string
	}{
		{"empty_string", ""},
		{"plain_text", "Hello, World!"},
		{"html_content", "<html><body><h1>Title</h1></body></html>"},
		{"whitespace", "  \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Clean(tt.input)
			if err != nil {
				t.Errorf("Clean() error = %v, want nil", err)
			}
			if got != tt.input {
				t.Errorf("Clean() = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestNoopCleaner_Name(t *testing.T) {
	c := NewNoop()
	if got := c.Name(); got != "noop" {
		t.Errorf("Name() = %q, want %q", got, "noop")
	}
}

// --- PreCleaner Tests ---

func TestPreCleaner_Clean(t *testing.T) {
	c := NewPreCleaner()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "drops newlines after br",
			input:    "<p>one<br>\n\ntwo<br/>\nthree</p>",
			contains: []string{"one<br>two<br>three"},
		},
		{
			name:     "strips comments",
			input:    "<p>kept<!-- dropped --></p>",
			contains: []string{"kept"},
			excludes: []string{"dropped", "<!--"},
		},
		{
			name:     "collapses whitespace",
			input:    "<p>a   \n  b</p>",
			contains: []string{"a b"},
		},
		{
			name:     "keeps end tags",
			input:    "<ul><li>x</li><li>y</li></ul>",
			contains: []string{"</li>", "</ul>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Clean(tt.input)
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("expected %q in output, got %q", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("expected %q not in output, got %q", s, got)
				}
			}
		})
	}
}

func TestPreCleaner_Name(t *testing.T) {
	if got := NewPreCleaner().Name(); got != "precleanup" {
		t.Errorf("Name() = %q, want %q", got, "precleanup")
	}
}

// --- ChainCleaner Tests ---

func TestChainCleaner_Empty(t *testing.T) {
	c := NewChain()

	input := "unchanged content"
	got, err := c.Clean(input)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if got != input {
		t.Errorf("Clean() = %q, want %q", got, input)
	}
}

func TestChainCleaner_SingleCleaner(t *testing.T) {
	c := NewChain(NewNoop())

	input := "test content"
	got, err := c.Clean(input)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if got != input {
		t.Errorf("Clean() = %q, want %q", got, input)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestChainCleaner_MultipleCleaners_Order(t *testing.T) {
	c := NewChain(NewPreCleaner(), NewMarkdown())

	html := "<h1>Title</h1>\n<!-- note -->\n<p>Content</p>"
	got, err := c.Clean(html)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if !strings.Contains(got, "# Title") {
		t.Errorf("expected markdown output, got %q", got)
	}
	if strings.Contains(got, "note") {
		t.Errorf("expected comment removed before conversion, got %q", got)
	}
}

// errorCleaner is a test cleaner that always returns an error
type errorCleaner struct{}

func (c *errorCleaner) Clean(html string) (string, error) {
	return "", errors.New("test error")
}

func (c *errorCleaner) Name() string {
	return "error"
}

func TestChainCleaner_ErrorPropagation(t *testing.T) {
	c := NewChain(NewNoop(), &errorCleaner{}, NewMarkdown())

	_, err := c.Clean("test")
	if err == nil {
		t.Fatal("expected error to propagate")
	}

	if !strings.Contains(err.Error(), "error: test error") {
		t.Errorf("expected error naming the failing stage, got %v", err)
	}
}

func TestChainCleaner_Name(t *testing.T) {
	tests := []struct {
		name     string
		cleaners []Cleaner
		want     string
	}{
		{"empty", []Cleaner{}, "chain()"},
		{"single", []Cleaner{NewNoop()}, "chain(noop)"},
		{"double", []Cleaner{NewPreCleaner(), NewMarkdown()}, "chain(precleanup->markdown)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChain(tt.cleaners...)
			if got := c.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Option Tests ---

func TestWithStripLinks(t *testing.T) {
	cfg := &markdownConfig{}
	WithStripLinks(true)(cfg)

	if !cfg.StripLinks {
		t.Error("WithStripLinks(true) did not set StripLinks")
	}

	WithStripLinks(false)(cfg)
	if cfg.StripLinks {
		t.Error("WithStripLinks(false) did not unset StripLinks")
	}
}

func TestWithStripImages(t *testing.T) {
	cfg := &markdownConfig{}
	WithStripImages(true)(cfg)

	if !cfg.StripImages {
		t.Error("WithStripImages(true) did not set StripImages")
	}
}

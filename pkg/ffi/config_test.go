package main

import (
	"errors"
	"testing"

	"github.com/jmylchreest/pmrt/pkg/pmrt"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		preCleanup bool
		ruleWidth  int
		bold       string
	}{
		{"empty", "", true, 79, "*"},
		{"default preset", `{"preset":"default"}`, true, 79, "*"},
		{"plain preset", `{"preset":"plain"}`, false, 79, "*"},
		{"override", `{"rule_width":40,"markers":{"bold":"**","italic":"/","underline":"_","strike":"~","quote":"> "}}`, true, 40, "**"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseConfig(tt.input)
			if err != nil {
				t.Fatalf("parseConfig() error = %v", err)
			}
			if cfg.PreCleanup != tt.preCleanup {
				t.Errorf("PreCleanup = %v, want %v", cfg.PreCleanup, tt.preCleanup)
			}
			if cfg.RuleWidth != tt.ruleWidth {
				t.Errorf("RuleWidth = %d, want %d", cfg.RuleWidth, tt.ruleWidth)
			}
			if cfg.Markers.Bold != tt.bold {
				t.Errorf("Markers.Bold = %q, want %q", cfg.Markers.Bold, tt.bold)
			}
		})
	}
}

func TestParseConfig_Errors(t *testing.T) {
	if _, err := parseConfig(`{`); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := parseConfig(`{"preset":"fancy"}`); err == nil {
		t.Error("expected error for unknown preset")
	}
	_, err := parseConfig(`{"rule_width":0}`)
	if !errors.Is(err, pmrt.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

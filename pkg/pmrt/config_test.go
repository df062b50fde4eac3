package pmrt

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.PreCleanup || !cfg.Sanitize || !cfg.UndoBoilerplate {
		t.Error("expected every preparation step to be enabled by default")
	}
	if len(cfg.BannerLinks) != 1 || cfg.BannerLinks[0] != DefaultBannerLink {
		t.Errorf("expected default banner link, got %v", cfg.BannerLinks)
	}
	if cfg.Markers.Bold != "*" || cfg.Markers.Italic != "/" || cfg.Markers.Underline != "_" || cfg.Markers.Strike != "~" {
		t.Errorf("unexpected markers %+v", cfg.Markers)
	}
	if cfg.Markers.Quote != "> " {
		t.Errorf("expected quote marker '> ', got %q", cfg.Markers.Quote)
	}
	if cfg.RuleWidth != 79 {
		t.Errorf("expected rule width 79, got %d", cfg.RuleWidth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestPresetPlain(t *testing.T) {
	cfg := PresetPlain()

	if cfg.PreCleanup {
		t.Error("expected PreCleanup to be false")
	}
	if cfg.UndoBoilerplate {
		t.Error("expected UndoBoilerplate to be false")
	}
	if len(cfg.BannerLinks) != 0 || len(cfg.BannerStyleSignatures) != 0 {
		t.Error("expected no banner settings")
	}
	if !cfg.Sanitize {
		t.Error("expected Sanitize to stay enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected preset to be valid, got %v", err)
	}
}

func TestConfigMerge(t *testing.T) {
	t.Run("nil other returns same config", func(t *testing.T) {
		base := DefaultConfig()
		if got := base.Merge(nil); got != base {
			t.Error("expected the receiver back")
		}
	})

	t.Run("non-zero values override", func(t *testing.T) {
		base := PresetPlain()
		merged := base.Merge(&Config{
			UndoBoilerplate: true,
			RuleWidth:       40,
			DefaultBullet:   "square",
			Markers:         Markers{Bold: "**"},
		})

		if !merged.UndoBoilerplate {
			t.Error("expected UndoBoilerplate to be enabled")
		}
		if merged.RuleWidth != 40 {
			t.Errorf("expected rule width 40, got %d", merged.RuleWidth)
		}
		if merged.DefaultBullet != "square" {
			t.Errorf("expected square bullet, got %q", merged.DefaultBullet)
		}
		if merged.Markers.Bold != "**" || merged.Markers.Italic != "/" {
			t.Errorf("expected only bold marker overridden, got %+v", merged.Markers)
		}
		if base.RuleWidth != 79 {
			t.Error("expected base config to be unchanged")
		}
	})

	t.Run("lists append without duplicates", func(t *testing.T) {
		base := DefaultConfig()
		merged := base.Merge(&Config{
			BannerLinks:       []string{DefaultBannerLink, "https://example.com/banner"},
			ImagePlaceholders: []string{"Screenshot"},
		})

		if len(merged.BannerLinks) != 2 {
			t.Errorf("expected 2 banner links, got %v", merged.BannerLinks)
		}
		if len(merged.ImagePlaceholders) != 2 {
			t.Errorf("expected 2 placeholders, got %v", merged.ImagePlaceholders)
		}
		if len(base.BannerLinks) != 1 {
			t.Error("expected base banner links to be unchanged")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"negative threshold", func(c *Config) { c.MarginThreshold = -1 }, "MarginThreshold"},
		{"zero rule width", func(c *Config) { c.RuleWidth = 0 }, "RuleWidth"},
		{"huge rule width", func(c *Config) { c.RuleWidth = 1000 }, "RuleWidth"},
		{"unknown bullet", func(c *Config) { c.DefaultBullet = "star" }, "DefaultBullet"},
		{"empty bold marker", func(c *Config) { c.Markers.Bold = "" }, "Bold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to name %s, got %v", tt.field, err)
			}
		})
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Markers.Quote = "| "
	cfg.DefaultBullet = "none"

	ro := cfg.renderOptions()
	if ro.Markers.Bold != "*" || ro.RuleWidth != 79 {
		t.Errorf("unexpected render options %+v", ro)
	}
	lo := cfg.linearizeOptions()
	if lo.QuoteMarker != "| " || lo.DefaultBullet != "none" {
		t.Errorf("unexpected linearize options %+v", lo)
	}
}

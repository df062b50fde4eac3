// Package pmrt converts HTML into poor man's rich text: plain text that
// keeps emphasis, lists, quotes, tables and links through lightweight
// inline markers.
package pmrt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/pmrt/pkg/pmrt/render"
	"github.com/jmylchreest/pmrt/pkg/pmrt/transform"
)

// Markers are the delimiters written around emphasized text and in front of
// quoted lines.
type Markers struct {
	Bold      string `json:"bold" yaml:"bold" mapstructure:"bold" validate:"required"`
	Italic    string `json:"italic" yaml:"italic" mapstructure:"italic" validate:"required"`
	Underline string `json:"underline" yaml:"underline" mapstructure:"underline" validate:"required"`
	Strike    string `json:"strike" yaml:"strike" mapstructure:"strike" validate:"required"`
	Quote     string `json:"quote" yaml:"quote" mapstructure:"quote" validate:"required"`
}

// Config defines all configuration options for the converter.
type Config struct {
	// === Input preparation ===

	// PreCleanup drops newlines after <br> and minifies the markup before
	// parsing.
	PreCleanup bool `json:"pre_cleanup" yaml:"pre_cleanup" mapstructure:"pre_cleanup"`

	// Sanitize removes scripts, forms, embedded media and hidden elements.
	Sanitize bool `json:"sanitize" yaml:"sanitize" mapstructure:"sanitize"`

	// UndoBoilerplate removes mail provider banners and unwraps rewritten
	// links.
	UndoBoilerplate bool `json:"undo_boilerplate" yaml:"undo_boilerplate" mapstructure:"undo_boilerplate"`

	// BannerLinks are link targets whose parent element is an injected banner.
	BannerLinks []string `json:"banner_links" yaml:"banner_links" mapstructure:"banner_links"`

	// BannerStyleSignatures are style fragments marking injected elements.
	BannerStyleSignatures []string `json:"banner_style_signatures" yaml:"banner_style_signatures" mapstructure:"banner_style_signatures"`

	// === Layout ===

	// MarginThreshold is the collapsed margin, in lines, from which blocks
	// are separated by an empty line.
	MarginThreshold float64 `json:"margin_threshold" yaml:"margin_threshold" mapstructure:"margin_threshold" validate:"gte=0,lte=100"`

	// RuleWidth is the length of a horizontal rule.
	RuleWidth int `json:"rule_width" yaml:"rule_width" mapstructure:"rule_width" validate:"min=1,max=400"`

	// DefaultBullet is used for unordered lists without a style hint.
	DefaultBullet string `json:"default_bullet" yaml:"default_bullet" mapstructure:"default_bullet" validate:"oneof=disc circle square none"`

	// ImagePlaceholders are alt texts that are ignored in favour of a
	// caption derived from the image source.
	ImagePlaceholders []string `json:"image_placeholders" yaml:"image_placeholders" mapstructure:"image_placeholders"`

	// === Output ===

	Markers Markers `json:"markers" yaml:"markers" mapstructure:"markers"`

	// Debug logs pass statistics for every conversion.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// DefaultBannerLink is the sender identification banner Outlook injects.
const DefaultBannerLink = "https://aka.ms/LearnAboutSenderIdentification"

// DefaultBannerStyleSignature marks content Outlook hides from rendering.
const DefaultBannerStyleSignature = "mso-hide:all"

// DefaultConfig returns the configuration used for mail bodies: every
// preparation step on, "*", "/", "_", "~" emphasis and "> " quotes.
func DefaultConfig() *Config {
	return &Config{
		PreCleanup:            true,
		Sanitize:              true,
		UndoBoilerplate:       true,
		BannerLinks:           []string{DefaultBannerLink},
		BannerStyleSignatures: []string{DefaultBannerStyleSignature},

		MarginThreshold:   transform.DefaultMarginThreshold,
		RuleWidth:         render.DefaultRuleWidth,
		DefaultBullet:     transform.Disc,
		ImagePlaceholders: []string{transform.DefaultImagePlaceholder},

		Markers: Markers{
			Bold:      "*",
			Italic:    "/",
			Underline: "_",
			Strike:    "~",
			Quote:     "> ",
		},
	}
}

// PresetPlain returns a configuration for markup that did not come from a
// mail client: no pre-cleanup and no boilerplate removal.
func PresetPlain() *Config {
	cfg := DefaultConfig()
	cfg.PreCleanup = false
	cfg.UndoBoilerplate = false
	cfg.BannerLinks = nil
	cfg.BannerStyleSignatures = nil
	return cfg
}

// Merge merges another config into this one.
// Non-zero values from other override this config; lists are appended
// without duplicates.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}
	merged := *c

	if other.PreCleanup {
		merged.PreCleanup = true
	}
	if other.Sanitize {
		merged.Sanitize = true
	}
	if other.UndoBoilerplate {
		merged.UndoBoilerplate = true
	}
	if other.Debug {
		merged.Debug = true
	}
	if other.MarginThreshold > 0 {
		merged.MarginThreshold = other.MarginThreshold
	}
	if other.RuleWidth > 0 {
		merged.RuleWidth = other.RuleWidth
	}
	if other.DefaultBullet != "" {
		merged.DefaultBullet = other.DefaultBullet
	}

	m := &merged.Markers
	for _, p := range []struct {
		dst *string
		src string
	}{
		{&m.Bold, other.Markers.Bold},
		{&m.Italic, other.Markers.Italic},
		{&m.Underline, other.Markers.Underline},
		{&m.Strike, other.Markers.Strike},
		{&m.Quote, other.Markers.Quote},
	} {
		if p.src != "" {
			*p.dst = p.src
		}
	}

	merged.BannerLinks = appendUnique(merged.BannerLinks, other.BannerLinks)
	merged.BannerStyleSignatures = appendUnique(merged.BannerStyleSignatures, other.BannerStyleSignatures)
	merged.ImagePlaceholders = appendUnique(merged.ImagePlaceholders, other.ImagePlaceholders)

	return &merged
}

func appendUnique(dst, src []string) []string {
	if len(src) == 0 {
		return dst
	}
	seen := make(map[string]bool, len(dst))
	out := append([]string(nil), dst...)
	for _, s := range out {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	return out
}

// ErrInvalidConfig is wrapped by Validate errors.
var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New()

// Validate checks the configuration against its field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Namespace()+" "+formatValidationError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}

func (c *Config) renderOptions() render.Options {
	return render.Options{
		Markers: render.Markers{
			Bold:      c.Markers.Bold,
			Italic:    c.Markers.Italic,
			Underline: c.Markers.Underline,
			Strike:    c.Markers.Strike,
		},
		RuleWidth: c.RuleWidth,
	}
}

func (c *Config) linearizeOptions() transform.LinearizeOptions {
	return transform.LinearizeOptions{
		DefaultBullet:     c.DefaultBullet,
		QuoteMarker:       c.Markers.Quote,
		ImagePlaceholders: c.ImagePlaceholders,
	}
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/pmrt/pkg/pmrt"
)

// parseConfig reads the JSON configuration passed over the C boundary. The
// "preset" key selects the base ("default" or "plain"); the remaining keys
// use the json names of pmrt.Config and override the preset.
func parseConfig(s string) (*pmrt.Config, error) {
	if s == "" {
		return pmrt.DefaultConfig(), nil
	}

	var base struct {
		Preset string `json:"preset"`
	}
	if err := json.Unmarshal([]byte(s), &base); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var cfg *pmrt.Config
	switch base.Preset {
	case "", "default":
		cfg = pmrt.DefaultConfig()
	case "plain":
		cfg = pmrt.PresetPlain()
	default:
		return nil, fmt.Errorf("unknown preset: %s", base.Preset)
	}

	if err := json.Unmarshal([]byte(s), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

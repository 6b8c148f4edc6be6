package wizard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/types"
)

// Config represents the complete wizard configuration for YAML serialization.
type Config struct {
	Marker MarkerConfigYAML `yaml:"marker"`
	Output OutputConfigYAML `yaml:"output"`
}

// MarkerConfigYAML holds marker settings with YAML tags for serialization.
type MarkerConfigYAML struct {
	Kind  string  `yaml:"kind"`
	Size  int     `yaml:"size"`
	Label string  `yaml:"label,omitempty"`
	Seeds []int32 `yaml:"seeds,omitempty"`
}

// OutputConfigYAML holds output settings with YAML tags.
type OutputConfigYAML struct {
	Dir     string `yaml:"dir"`
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality,omitempty"`
	Count   int    `yaml:"count"`
	Workers int    `yaml:"workers,omitempty"`
}

// LoadFromYAML reads a configuration file and returns the wizard state.
// Missing values are defaulted and kind/format aliases are canonicalized.
func LoadFromYAML(path string) (*WizardState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	state := configToWizardState(&cfg)
	state.applyDefaults()
	if err := state.canonicalize(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return state, nil
}

// SaveToYAML writes the wizard state to a configuration file.
func SaveToYAML(state *WizardState, path string) error {
	data, err := yaml.Marshal(wizardStateToConfig(state))
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func configToWizardState(cfg *Config) *WizardState {
	return &WizardState{
		Marker: types.MarkerConfig{
			Kind:  cfg.Marker.Kind,
			Size:  cfg.Marker.Size,
			Label: cfg.Marker.Label,
			Seeds: copySeeds(cfg.Marker.Seeds),
		},
		Output: types.OutputConfig{
			Dir:     cfg.Output.Dir,
			Format:  cfg.Output.Format,
			Quality: cfg.Output.Quality,
			Count:   cfg.Output.Count,
			Workers: cfg.Output.Workers,
		},
	}
}

func wizardStateToConfig(s *WizardState) *Config {
	return &Config{
		Marker: MarkerConfigYAML{
			Kind:  s.Marker.Kind,
			Size:  s.Marker.Size,
			Label: s.Marker.Label,
			Seeds: copySeeds(s.Marker.Seeds),
		},
		Output: OutputConfigYAML{
			Dir:     s.Output.Dir,
			Format:  s.Output.Format,
			Quality: s.Output.Quality,
			Count:   s.Output.Count,
			Workers: s.Output.Workers,
		},
	}
}

// copySeeds returns a copy of seeds, preserving nil.
func copySeeds(seeds []int32) []int32 {
	if seeds == nil {
		return nil
	}
	out := make([]int32, len(seeds))
	copy(out, seeds)
	return out
}

// Package wizard provides an interactive TUI for configuring marker generation.
package wizard

import (
	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/types"
	"github.com/mrsinham/markerforge/internal/export"
	"github.com/mrsinham/markerforge/internal/marker"
)

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "markers"

// WizardState holds the complete state for the wizard interface.
type WizardState struct {
	Marker types.MarkerConfig
	Output types.OutputConfig
}

// DefaultState returns the state the wizard starts from without a config file.
func DefaultState() *WizardState {
	s := &WizardState{}
	s.applyDefaults()
	return s
}

// canonicalize rewrites kind and format aliases such as "ARToolkit", "2",
// "jpg" or "dcm" to the exact names offered by the config form. Unknown names
// are an error.
func (s *WizardState) canonicalize() error {
	kind, err := marker.ParseKind(s.Marker.Kind)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(s.Output.Format)
	if err != nil {
		return err
	}
	s.Marker.Kind = string(kind)
	s.Output.Format = string(format)
	return nil
}

// applyDefaults fills in zero values.
func (s *WizardState) applyDefaults() {
	if s.Marker.Kind == "" {
		s.Marker.Kind = string(marker.Vuforia)
	}
	if s.Marker.Size == 0 {
		s.Marker.Size = marker.DefaultSize
	}
	if s.Output.Dir == "" {
		s.Output.Dir = DefaultOutputDir
	}
	if s.Output.Format == "" {
		s.Output.Format = string(export.PNG)
	}
	if s.Output.Count == 0 {
		s.Output.Count = len(s.Marker.Seeds)
	}
	if s.Output.Count == 0 {
		s.Output.Count = 1
	}
}

package wizard

import (
	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/types"
	"github.com/mrsinham/markerforge/internal/batch"
	"github.com/mrsinham/markerforge/internal/export"
	"github.com/mrsinham/markerforge/internal/marker"
)

// ToBatchOptions converts WizardState to batch options for generation.
func ToBatchOptions(s *WizardState) (batch.Options, error) {
	kind, err := marker.ParseKind(s.Marker.Kind)
	if err != nil {
		return batch.Options{}, err
	}
	format, err := export.ParseFormat(s.Output.Format)
	if err != nil {
		return batch.Options{}, err
	}

	count := s.Output.Count
	// Explicit seeds decide how many markers are written.
	if len(s.Marker.Seeds) > 0 {
		count = 0
	}

	outputDir := s.Output.Dir
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	return batch.Options{
		Count:     count,
		Seeds:     copySeeds(s.Marker.Seeds),
		Kind:      kind,
		Size:      s.Marker.Size,
		Label:     s.Marker.Label,
		Format:    format,
		Quality:   s.Output.Quality,
		OutputDir: outputDir,
		Workers:   s.Output.Workers,
	}, nil
}

// FromBatchOptions creates a WizardState from batch options.
// Used for -save-config to export CLI options as YAML.
func FromBatchOptions(opts batch.Options) *WizardState {
	state := &WizardState{
		Marker: types.MarkerConfig{
			Kind:  string(opts.Kind),
			Size:  opts.Size,
			Label: opts.Label,
			Seeds: copySeeds(opts.Seeds),
		},
		Output: types.OutputConfig{
			Dir:     opts.OutputDir,
			Format:  string(opts.Format),
			Quality: opts.Quality,
			Count:   opts.Count,
			Workers: opts.Workers,
		},
	}
	state.applyDefaults()
	return state
}

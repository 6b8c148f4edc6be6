package wizard

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/screens"
	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/types"
	"github.com/mrsinham/markerforge/internal/batch"
	"github.com/mrsinham/markerforge/internal/export"
	"github.com/mrsinham/markerforge/internal/marker"
)

func TestToBatchOptions_BasicConversion(t *testing.T) {
	state := &WizardState{
		Marker: types.MarkerConfig{
			Kind:  "ARToolkit",
			Size:  300,
			Label: "ID: {id}",
		},
		Output: types.OutputConfig{
			Dir:     "/output/dir",
			Format:  "jpg",
			Quality: 70,
			Count:   5,
			Workers: 2,
		},
	}

	opts, err := ToBatchOptions(state)
	if err != nil {
		t.Fatalf("ToBatchOptions failed: %v", err)
	}

	if opts.Kind != marker.ARToolkit {
		t.Errorf("Expected kind artoolkit, got %s", opts.Kind)
	}
	if opts.Format != export.JPEG {
		t.Errorf("Expected format jpeg, got %s", opts.Format)
	}
	if opts.Size != 300 || opts.Label != "ID: {id}" {
		t.Errorf("Marker settings not copied: size=%d label=%q", opts.Size, opts.Label)
	}
	if opts.Count != 5 || opts.Quality != 70 || opts.Workers != 2 {
		t.Errorf("Output settings not copied: count=%d quality=%d workers=%d", opts.Count, opts.Quality, opts.Workers)
	}
	if opts.OutputDir != "/output/dir" {
		t.Errorf("Expected OutputDir /output/dir, got %s", opts.OutputDir)
	}
}

func TestToBatchOptions_SeedsOverrideCount(t *testing.T) {
	state := DefaultState()
	state.Marker.Seeds = []int32{3, 4}
	state.Output.Count = 10

	opts, err := ToBatchOptions(state)
	if err != nil {
		t.Fatalf("ToBatchOptions failed: %v", err)
	}
	if opts.Count != 0 {
		t.Errorf("Expected count 0 so the seeds decide, got %d", opts.Count)
	}
	if len(opts.Seeds) != 2 {
		t.Errorf("Expected 2 seeds, got %v", opts.Seeds)
	}
}

func TestToBatchOptions_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		state *WizardState
	}{
		{"invalid kind", &WizardState{Marker: types.MarkerConfig{Kind: "aruco"}}},
		{"invalid format", &WizardState{Output: types.OutputConfig{Format: "gif"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToBatchOptions(tt.state); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestFromBatchOptions(t *testing.T) {
	opts := batch.Options{
		Seeds:     []int32{8, 9},
		Kind:      marker.Vuforia,
		Size:      64,
		Format:    export.DICOM,
		OutputDir: "out",
	}

	state := FromBatchOptions(opts)
	if state.Marker.Kind != "vuforia" || state.Marker.Size != 64 {
		t.Errorf("Marker settings not copied: %+v", state.Marker)
	}
	if state.Output.Format != "dicom" || state.Output.Dir != "out" {
		t.Errorf("Output settings not copied: %+v", state.Output)
	}
	if state.Output.Count != 2 {
		t.Errorf("Expected count 2 from seeds, got %d", state.Output.Count)
	}

	back, err := ToBatchOptions(state)
	if err != nil {
		t.Fatalf("ToBatchOptions failed: %v", err)
	}
	if back.Kind != opts.Kind || back.Format != opts.Format || back.Size != opts.Size {
		t.Errorf("Roundtrip mismatch: %+v", back)
	}
}

func TestNewWizard_DefaultState(t *testing.T) {
	w := NewWizard(nil)

	if w.Phase() != PhaseConfig {
		t.Errorf("Expected PhaseConfig, got %d", w.Phase())
	}
	if w.state.Marker.Kind != "vuforia" {
		t.Errorf("Expected default kind vuforia, got %s", w.state.Marker.Kind)
	}
	if w.state.Marker.Size != marker.DefaultSize {
		t.Errorf("Expected default size %d, got %d", marker.DefaultSize, w.state.Marker.Size)
	}
	if w.state.Output.Dir != DefaultOutputDir {
		t.Errorf("Expected default dir %s, got %s", DefaultOutputDir, w.state.Output.Dir)
	}
	if w.configScreen == nil {
		t.Error("Expected config screen to be initialized")
	}
}

func TestNewWizard_WithExistingState(t *testing.T) {
	state := &WizardState{
		Marker: types.MarkerConfig{Kind: "artoolkit", Size: 200},
		Output: types.OutputConfig{Dir: "custom"},
	}

	w := NewWizard(state)
	if w.state.Marker.Kind != "artoolkit" || w.state.Marker.Size != 200 {
		t.Errorf("Existing marker settings were overwritten: %+v", w.state.Marker)
	}
	if w.state.Output.Dir != "custom" {
		t.Errorf("Existing output dir was overwritten: %s", w.state.Output.Dir)
	}
	if w.state.Output.Format != "png" {
		t.Errorf("Expected missing format to default to png, got %s", w.state.Output.Format)
	}
}

func TestWizard_CancelOnConfigScreen(t *testing.T) {
	w := NewWizard(nil)

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !w.cancelled {
		t.Error("Expected wizard to be cancelled")
	}
	if cmd == nil {
		t.Error("Expected a quit command")
	}
}

func TestWizard_SummaryEscGoesBack(t *testing.T) {
	w := NewWizard(nil)
	w.transitionToSummary()
	if w.Phase() != PhaseSummary {
		t.Fatalf("Expected PhaseSummary, got %d", w.Phase())
	}

	w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if w.Phase() != PhaseConfig {
		t.Errorf("Expected PhaseConfig after esc, got %d", w.Phase())
	}
}

// drive feeds command results back into the wizard until it leaves the
// progress phase.
func drive(t *testing.T, w *Wizard, cmd tea.Cmd) {
	t.Helper()
	for i := 0; i < 100 && w.Phase() == PhaseProgress; i++ {
		if cmd == nil {
			t.Fatal("Expected a command while generating")
		}
		_, cmd = w.Update(cmd())
	}
}

func TestWizard_Generation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	state := DefaultState()
	state.Marker.Size = 32
	state.Marker.Seeds = []int32{10, 20, 30}
	state.Output.Dir = dir

	w := NewWizard(state)
	_, cmd := w.startGeneration()
	if w.Phase() != PhaseProgress {
		t.Fatalf("Expected PhaseProgress, got %d", w.Phase())
	}

	drive(t, w, cmd)

	if w.Phase() != PhaseComplete {
		t.Fatalf("Expected PhaseComplete, got %d (err: %v)", w.Phase(), w.Err())
	}
	current, total := w.progressScreen.Progress()
	if current != 3 || total != 3 {
		t.Errorf("Expected progress 3/3, got %d/%d", current, total)
	}

	for _, seed := range state.Marker.Seeds {
		name := export.FileName(marker.Marker{Seed: seed, Kind: marker.Vuforia}, export.PNG)
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}

	// Enter exits the completion screen
	w.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !w.finished {
		t.Error("Expected wizard to be finished")
	}
}

func TestWizard_GenerationError(t *testing.T) {
	// A regular file where the output directory should go makes every write fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	state := DefaultState()
	state.Marker.Size = 16
	state.Marker.Seeds = []int32{1, 2}
	state.Output.Dir = filepath.Join(blocker, "out")

	w := NewWizard(state)
	_, cmd := w.startGeneration()
	drive(t, w, cmd)

	if w.Phase() != PhaseError {
		t.Fatalf("Expected PhaseError, got %d", w.Phase())
	}
	if w.Err() == nil {
		t.Error("Expected an error")
	}
}

func TestNewWizard_KeepsAliasedConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "aliases.yaml")
	content := `
marker:
  kind: ARToolkit
output:
  format: jpg
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	state, err := LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	w := NewWizard(state)
	if w.Phase() != PhaseConfig {
		t.Fatalf("Expected PhaseConfig, got %d (err: %v)", w.Phase(), w.Err())
	}

	opts, err := ToBatchOptions(w.state)
	if err != nil {
		t.Fatalf("ToBatchOptions failed: %v", err)
	}
	if opts.Kind != marker.ARToolkit {
		t.Errorf("Expected kind artoolkit after building the form, got %s", opts.Kind)
	}
	if opts.Format != export.JPEG {
		t.Errorf("Expected format jpeg after building the form, got %s", opts.Format)
	}
}

func TestNewWizard_CanonicalizesState(t *testing.T) {
	state := &WizardState{
		Marker: types.MarkerConfig{Kind: "2"},
		Output: types.OutputConfig{Format: "DCM"},
	}

	w := NewWizard(state)
	if w.state.Marker.Kind != "artoolkit" {
		t.Errorf("Expected kind artoolkit, got %q", w.state.Marker.Kind)
	}
	if w.state.Output.Format != "dicom" {
		t.Errorf("Expected format dicom, got %q", w.state.Output.Format)
	}
}

func TestNewWizard_InvalidKind(t *testing.T) {
	state := DefaultState()
	state.Marker.Kind = "unknown"

	w := NewWizard(state)
	if w.Phase() != PhaseError {
		t.Fatalf("Expected PhaseError, got %d", w.Phase())
	}
	if w.Err() == nil {
		t.Error("Expected an error")
	}
	if w.Init() != nil {
		t.Error("Expected no init command on the error screen")
	}
	if w.state.Marker.Kind != "unknown" {
		t.Errorf("Invalid kind should be reported, not replaced; got %q", w.state.Marker.Kind)
	}
}

func TestWizard_CancelDuringProgress(t *testing.T) {
	w := NewWizard(nil)
	w.phase = PhaseProgress
	w.progressScreen = screens.NewProgressScreen(10)

	w.Update(screens.ProgressMsg{Current: 3, Total: 10})
	w.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if !w.cancelled {
		t.Fatal("Expected wizard to be cancelled")
	}
	if w.exitMessage != "Generation cancelled after 3/10 markers" {
		t.Errorf("Unexpected exit message %q", w.exitMessage)
	}
}

func TestWizard_BatchErrorMessage(t *testing.T) {
	w := NewWizard(nil)
	w.phase = PhaseProgress
	w.progressScreen = screens.NewProgressScreen(1)

	w.Update(screens.ErrorMsg{Error: os.ErrPermission})
	if w.Phase() != PhaseError {
		t.Fatalf("Expected PhaseError, got %d", w.Phase())
	}
	if w.Err() != os.ErrPermission {
		t.Errorf("Expected ErrPermission, got %v", w.Err())
	}
}

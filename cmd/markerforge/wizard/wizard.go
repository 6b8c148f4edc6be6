package wizard

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/components"
	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/screens"
	"github.com/mrsinham/markerforge/internal/batch"
)

// Phase represents the current phase/screen of the wizard.
type Phase int

const (
	PhaseConfig Phase = iota
	PhaseSummary
	PhaseSaveConfig
	PhaseProgress
	PhaseComplete
	PhaseError
)

// Wizard is the main orchestrator for the wizard interface.
type Wizard struct {
	state *WizardState

	// Current phase
	phase Phase

	// Screen instances
	configScreen     *screens.ConfigScreen
	summaryScreen    *screens.SummaryScreen
	progressScreen   *screens.ProgressScreen
	completionScreen *screens.CompletionScreen
	errorScreen      *screens.ErrorScreen

	// Save config form
	saveConfigForm *huh.Form
	configPath     string
	notice         string

	// Running generation
	events <-chan tea.Msg
	cancel context.CancelFunc

	// Window size
	width  int
	height int

	// Final state
	exitMessage string
	cancelled   bool
	finished    bool
	err         error
}

// NewWizard creates a new wizard with default or loaded state.
func NewWizard(state *WizardState) *Wizard {
	if state == nil {
		state = DefaultState()
	}
	state.applyDefaults()

	w := &Wizard{
		state: state,
		phase: PhaseConfig,
	}

	// The select fields reset values they don't offer, so aliases must be
	// resolved and unknown names reported before the form is built.
	if err := state.canonicalize(); err != nil {
		w.fail(err)
		return w
	}
	w.configScreen = screens.NewConfigScreen(&w.state.Marker, &w.state.Output)

	return w
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	if w.phase != PhaseConfig {
		return nil
	}
	return w.configScreen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window size for all phases
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	switch w.phase {
	case PhaseConfig:
		return w.updateConfig(msg)
	case PhaseSummary:
		return w.updateSummary(msg)
	case PhaseSaveConfig:
		return w.updateSaveConfig(msg)
	case PhaseProgress:
		return w.updateProgress(msg)
	case PhaseComplete:
		return w.updateComplete(msg)
	case PhaseError:
		return w.updateError(msg)
	}

	return w, nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	switch w.phase {
	case PhaseConfig:
		return w.configScreen.View()
	case PhaseSummary:
		return w.summaryScreen.View()
	case PhaseSaveConfig:
		return w.viewSaveConfig()
	case PhaseProgress:
		return w.progressScreen.View()
	case PhaseComplete:
		return w.completionScreen.View()
	case PhaseError:
		return w.errorScreen.View()
	}

	return ""
}

// Phase returns the current phase.
func (w *Wizard) Phase() Phase {
	return w.phase
}

// Err returns the error that ended the wizard, if any.
func (w *Wizard) Err() error {
	return w.err
}

// transitionToConfig moves to the configuration screen.
func (w *Wizard) transitionToConfig() (tea.Model, tea.Cmd) {
	w.phase = PhaseConfig
	w.configScreen = screens.NewConfigScreen(&w.state.Marker, &w.state.Output)
	return w, w.configScreen.Init()
}

// updateConfig handles updates in the configuration phase.
func (w *Wizard) updateConfig(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.configScreen.Update(msg)
	if cs, ok := model.(*screens.ConfigScreen); ok {
		w.configScreen = cs
	}

	if w.configScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.configScreen.Done() {
		w.notice = ""
		return w.transitionToSummary()
	}

	return w, cmd
}

// transitionToSummary moves to the summary screen.
func (w *Wizard) transitionToSummary() (tea.Model, tea.Cmd) {
	w.phase = PhaseSummary
	w.summaryScreen = screens.NewSummaryScreen(&w.state.Marker, &w.state.Output, w.notice)
	return w, w.summaryScreen.Init()
}

// updateSummary handles updates in the summary phase.
func (w *Wizard) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.summaryScreen.Update(msg)
	if ss, ok := model.(*screens.SummaryScreen); ok {
		w.summaryScreen = ss
	}

	if w.summaryScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.summaryScreen.Done() {
		switch w.summaryScreen.Action() {
		case screens.SummaryActionBack:
			return w.transitionToConfig()
		case screens.SummaryActionGenerate:
			return w.startGeneration()
		case screens.SummaryActionSaveConfig:
			return w.transitionToSaveConfig()
		case screens.SummaryActionCancel:
			w.cancelled = true
			return w, tea.Quit
		}
	}

	return w, cmd
}

// transitionToSaveConfig shows the save config dialog.
func (w *Wizard) transitionToSaveConfig() (tea.Model, tea.Cmd) {
	w.phase = PhaseSaveConfig
	if w.configPath == "" {
		w.configPath = "markerforge.yaml"
	}

	w.saveConfigForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("config_path").
				Title("Save configuration to").
				Description("Enter the path for the YAML config file").
				Value(&w.configPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return w, w.saveConfigForm.Init()
}

// updateSaveConfig handles updates in the save config phase.
func (w *Wizard) updateSaveConfig(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return w.transitionToSummary()
		case "ctrl+c":
			w.cancelled = true
			return w, tea.Quit
		}
	}

	form, cmd := w.saveConfigForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.saveConfigForm = f
	}

	if w.saveConfigForm.State == huh.StateCompleted {
		if err := SaveToYAML(w.state, w.configPath); err != nil {
			return w.fail(err)
		}
		w.notice = fmt.Sprintf("Configuration saved to %s", w.configPath)
		return w.transitionToSummary()
	}

	return w, cmd
}

// viewSaveConfig renders the save config dialog.
func (w *Wizard) viewSaveConfig() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("Save Configuration"),
		"",
		w.saveConfigForm.View(),
		"",
		components.HintStyle.Render("Enter: Save | Esc: Back"),
	)
}

// startGeneration runs the batch in the background and streams its
// progress back to the program as messages.
func (w *Wizard) startGeneration() (tea.Model, tea.Cmd) {
	opts, err := ToBatchOptions(w.state)
	if err != nil {
		return w.fail(err)
	}

	total := opts.Count
	if len(opts.Seeds) > 0 {
		total = len(opts.Seeds)
	}
	total = max(total, 1)

	w.phase = PhaseProgress
	w.progressScreen = screens.NewProgressScreen(total)

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	// One slot per progress update plus the final message, so the batch
	// never blocks on the UI.
	events := make(chan tea.Msg, total+1)
	w.events = events

	opts.Quiet = true
	opts.ProgressCallback = func(current, n int) {
		events <- screens.ProgressMsg{Current: current, Total: n}
	}

	go func() {
		events <- runBatch(ctx, opts)
	}()

	return w, waitForEvent(events)
}

// runBatch generates the markers and reports the outcome as a message.
func runBatch(ctx context.Context, opts batch.Options) tea.Msg {
	start := time.Now()

	results, err := batch.Generate(ctx, opts)
	if err != nil {
		return screens.ErrorMsg{Error: err}
	}

	msg := screens.CompletionMsg{
		TotalFiles: len(results),
		Duration:   time.Since(start),
		OutputDir:  opts.OutputDir,
	}
	for _, r := range results {
		msg.TotalSize += r.Bytes
	}
	if len(results) > 0 {
		msg.FirstFile = filepath.Join(opts.OutputDir, filepath.Base(results[0].Path))
	}
	return msg
}

// waitForEvent returns a command that delivers the next generation event.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// fail moves to the error screen.
func (w *Wizard) fail(err error) (tea.Model, tea.Cmd) {
	w.phase = PhaseError
	w.err = err
	w.errorScreen = screens.NewErrorScreen(err)
	return w, nil
}

// updateProgress handles updates in the progress phase.
func (w *Wizard) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.ProgressMsg:
		w.progressScreen.SetProgress(msg.Current, msg.Total)
		return w, waitForEvent(w.events)

	case screens.CompletionMsg:
		w.stopGeneration()
		w.phase = PhaseComplete
		w.completionScreen = screens.NewCompletionScreen(msg)
		return w, nil

	case screens.ErrorMsg:
		w.stopGeneration()
		return w.fail(msg.Error)
	}

	model, cmd := w.progressScreen.Update(msg)
	if ps, ok := model.(*screens.ProgressScreen); ok {
		w.progressScreen = ps
	}

	if w.progressScreen.Cancelled() {
		w.stopGeneration()
		current, total := w.progressScreen.Progress()
		w.exitMessage = fmt.Sprintf("Generation cancelled after %d/%d markers", current, total)
		w.cancelled = true
		return w, tea.Quit
	}

	return w, cmd
}

// stopGeneration cancels the running batch, if any.
func (w *Wizard) stopGeneration() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

// updateComplete handles updates in the completion phase.
func (w *Wizard) updateComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.completionScreen.Update(msg)
	if cs, ok := model.(*screens.CompletionScreen); ok {
		w.completionScreen = cs
	}

	if w.completionScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

// updateError handles updates in the error phase.
func (w *Wizard) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.errorScreen.Update(msg)
	if es, ok := model.(*screens.ErrorScreen); ok {
		w.errorScreen = es
	}

	if w.errorScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

// Run starts the interactive wizard for marker generation.
// If fromConfig is provided, it loads the configuration from that YAML file.
func Run(fromConfig string) error {
	var state *WizardState

	if fromConfig != "" {
		absPath, err := filepath.Abs(fromConfig)
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}

		loaded, err := LoadFromYAML(absPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		state = loaded
	}

	wizard := NewWizard(state)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	if w, ok := finalModel.(*Wizard); ok {
		if w.cancelled {
			if w.exitMessage != "" {
				fmt.Println(w.exitMessage)
			}
			return nil // User cancelled, not an error
		}
		if w.err != nil {
			return w.err
		}
	}

	return nil
}

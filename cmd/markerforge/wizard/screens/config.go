package screens

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/components"
	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/help"
	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/types"
	"github.com/mrsinham/markerforge/internal/batch"
	"github.com/mrsinham/markerforge/internal/export"
	"github.com/mrsinham/markerforge/internal/marker"
)

// ConfigScreen is the wizard screen for marker and output settings
type ConfigScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	marker    *types.MarkerConfig
	output    *types.OutputConfig
	width     int
	height    int
	done      bool
	cancelled bool

	// String versions for form binding (huh binds to strings)
	sizeStr    string
	seedsStr   string
	countStr   string
	qualityStr string
	workersStr string
}

// NewConfigScreen creates a new configuration screen bound to m and o
func NewConfigScreen(m *types.MarkerConfig, o *types.OutputConfig) *ConfigScreen {
	s := &ConfigScreen{
		helpPanel:  components.NewHelpPanel(),
		marker:     m,
		output:     o,
		sizeStr:    strconv.Itoa(m.Size),
		seedsStr:   batch.FormatSeeds(m.Seeds),
		countStr:   strconv.Itoa(o.Count),
		qualityStr: strconv.Itoa(o.Quality),
		workersStr: strconv.Itoa(o.Workers),
	}

	kindOptions := make([]huh.Option[string], 0, len(marker.AllKinds()))
	for _, k := range marker.AllKinds() {
		p := marker.ProfileFor(k)
		kindOptions = append(kindOptions, huh.NewOption(
			fmt.Sprintf("%s (%dx%d base)", k, p.BaseSize, p.BaseSize), string(k)))
	}

	formatOptions := make([]huh.Option[string], 0, len(export.AllFormats()))
	for _, f := range export.AllFormats() {
		formatOptions = append(formatOptions, huh.NewOption(string(f), string(f)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("kind").
				Title("Marker Kind").
				Description(help.Texts["kind"].Description).
				Options(kindOptions...).
				Value(&m.Kind),

			huh.NewInput().
				Key("size").
				Title("Size (pixels)").
				Value(&s.sizeStr).
				Validate(ValidateSize),

			huh.NewInput().
				Key("seeds").
				Title("Seeds").
				Placeholder("empty = random, e.g. 42,-7").
				Value(&s.seedsStr).
				Validate(ValidateSeeds),

			huh.NewInput().
				Key("label").
				Title("Label").
				Placeholder("e.g. ID: {id}").
				Value(&m.Label),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("count").
				Title("Count").
				Value(&s.countStr).
				Validate(ValidatePositiveInt),

			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Description(help.Texts["format"].Description).
				Options(formatOptions...).
				Value(&o.Format),

			huh.NewInput().
				Key("quality").
				Title("JPEG Quality").
				Value(&s.qualityStr).
				Validate(ValidateQuality),

			huh.NewInput().
				Key("output").
				Title("Output Directory").
				Value(&o.Dir).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("output directory is required")
					}
					return nil
				}),

			huh.NewInput().
				Key("workers").
				Title("Workers").
				Value(&s.workersStr).
				Validate(ValidateNonNegativeInt),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

// ValidatePositiveInt accepts integers greater than zero.
func ValidatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n <= 0 {
		return fmt.Errorf("must be greater than 0")
	}
	return nil
}

// ValidateNonNegativeInt accepts zero and positive integers.
func ValidateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 0 {
		return fmt.Errorf("must be 0 or more")
	}
	return nil
}

// ValidateSize accepts output sizes between 1 and marker.MaxSize.
func ValidateSize(s string) error {
	if err := ValidatePositiveInt(s); err != nil {
		return err
	}
	if n, _ := strconv.Atoi(s); n > marker.MaxSize {
		return fmt.Errorf("must be at most %d", marker.MaxSize)
	}
	return nil
}

// ValidateQuality accepts 0 (default) or a JPEG quality between 1 and 100.
func ValidateQuality(s string) error {
	if err := ValidateNonNegativeInt(s); err != nil {
		return err
	}
	if n, _ := strconv.Atoi(s); n > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}

// ValidateSeeds accepts a comma-separated seed list without duplicates.
func ValidateSeeds(s string) error {
	seeds, err := batch.ParseSeeds(s)
	if err != nil {
		return err
	}
	seen := make(map[int32]bool, len(seeds))
	for _, seed := range seeds {
		if seen[seed] {
			return fmt.Errorf("duplicate seed %d", seed)
		}
		seen[seed] = true
	}
	return nil
}

// Init implements tea.Model
func (s *ConfigScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *ConfigScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetWidth(msg.Width / 2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.Focus(focused.GetKey(), focused.GetValue())
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
		s.syncConfigFromForm()
	}

	return s, cmd
}

// syncConfigFromForm parses form strings back into the bound config.
// Values were validated by the form, so parse errors keep the old value.
func (s *ConfigScreen) syncConfigFromForm() {
	if n, err := strconv.Atoi(s.sizeStr); err == nil {
		s.marker.Size = n
	}
	if seeds, err := batch.ParseSeeds(s.seedsStr); err == nil {
		s.marker.Seeds = seeds
	}
	if n, err := strconv.Atoi(s.countStr); err == nil {
		s.output.Count = n
	}
	if len(s.marker.Seeds) > 0 {
		s.output.Count = len(s.marker.Seeds)
	}
	if n, err := strconv.Atoi(s.qualityStr); err == nil {
		s.output.Quality = n
	}
	if n, err := strconv.Atoi(s.workersStr); err == nil {
		s.output.Workers = n
	}
}

// View implements tea.Model
func (s *ConfigScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("MARKERFORGE WIZARD - Configuration")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		components.HintStyle.Render("Tab: Next field | Enter: Submit | Esc: Cancel"),
	)
}

// Done returns true if the form was completed
func (s *ConfigScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *ConfigScreen) Cancelled() bool {
	return s.cancelled
}

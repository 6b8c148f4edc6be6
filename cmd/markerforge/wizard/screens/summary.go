package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/components"
	"github.com/mrsinham/markerforge/cmd/markerforge/wizard/types"
	"github.com/mrsinham/markerforge/internal/batch"
	"github.com/mrsinham/markerforge/internal/export"
	"github.com/mrsinham/markerforge/internal/marker"
)

// SummaryAction represents the action selected on the summary screen
type SummaryAction int

const (
	// SummaryActionBack returns to the configuration screen
	SummaryActionBack SummaryAction = iota
	// SummaryActionGenerate starts marker generation
	SummaryActionGenerate
	// SummaryActionSaveConfig saves configuration to YAML file
	SummaryActionSaveConfig
	// SummaryActionCancel exits the wizard
	SummaryActionCancel
)

const (
	actionBack       = "back"
	actionGenerate   = "generate"
	actionSaveConfig = "save_config"
	actionCancel     = "cancel"
)

// maxPreviewFiles limits the file list shown in the preview panel.
const maxPreviewFiles = 5

var (
	summaryPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(1, 2)

	summaryTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63")).
				Bold(true).
				MarginBottom(1)

	summaryLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	summaryValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true)

	treeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	treeFolderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	treeNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	cliCommandStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)

// SummaryScreen displays the configuration before generation
type SummaryScreen struct {
	form      *huh.Form
	marker    *types.MarkerConfig
	output    *types.OutputConfig
	notice    string
	action    string
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewSummaryScreen creates a new summary screen. notice, when not empty, is
// shown above the actions (e.g. after saving a config file).
func NewSummaryScreen(m *types.MarkerConfig, o *types.OutputConfig, notice string) *SummaryScreen {
	s := &SummaryScreen{
		marker: m,
		output: o,
		notice: notice,
		action: actionGenerate,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Select an action").
				Options(
					huh.NewOption("Generate markers", actionGenerate),
					huh.NewOption("Save configuration to YAML", actionSaveConfig),
					huh.NewOption("Back to edit", actionBack),
					huh.NewOption("Cancel and exit", actionCancel),
				).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *SummaryScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			// Esc goes back instead of cancelling
			s.action = actionBack
			s.done = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *SummaryScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("SUMMARY - Review Configuration")

	panelWidth := 45
	left := summaryPanelStyle.Width(panelWidth).Render(s.buildParameterSummary())
	right := summaryPanelStyle.Width(panelWidth).Render(s.buildFilePreview())
	panels := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	parts := []string{title, "", panels, "", s.buildCLICommand(), ""}
	if s.notice != "" {
		parts = append(parts, components.SubtitleStyle.Render(s.notice))
	}
	parts = append(parts, s.form.View(), "", components.HintStyle.Render("Enter: Select action | Esc: Back"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// buildParameterSummary builds the left panel showing the settings
func (s *SummaryScreen) buildParameterSummary() string {
	var sb strings.Builder

	sb.WriteString(summaryTitleStyle.Render("Configuration Summary"))
	sb.WriteString("\n\n")

	seeds := "random"
	if len(s.marker.Seeds) > 0 {
		seeds = batch.FormatSeeds(s.marker.Seeds)
	}
	label := s.marker.Label
	if label == "" {
		label = "(none)"
	}
	workers := "auto"
	if s.output.Workers > 0 {
		workers = fmt.Sprintf("%d", s.output.Workers)
	}

	params := []struct {
		label string
		value string
	}{
		{"Kind", s.marker.Kind},
		{"Size", fmt.Sprintf("%dx%d", marker.ClampSize(s.marker.Size), marker.ClampSize(s.marker.Size))},
		{"Label", label},
		{"Seeds", seeds},
		{"Count", fmt.Sprintf("%d", s.markerCount())},
		{"Format", s.output.Format},
		{"Output Directory", s.output.Dir},
		{"Workers", workers},
	}
	if f, _ := export.ParseFormat(s.output.Format); f == export.JPEG {
		quality := s.output.Quality
		if quality == 0 {
			quality = export.DefaultJPEGQuality
		}
		params = append(params, struct {
			label string
			value string
		}{"JPEG Quality", fmt.Sprintf("%d", quality)})
	}

	for _, p := range params {
		sb.WriteString(summaryLabelStyle.Render(p.label + ": "))
		sb.WriteString(summaryValueStyle.Render(p.value))
		sb.WriteString("\n")
	}

	return sb.String()
}

// buildFilePreview builds the right panel listing the files to be written
func (s *SummaryScreen) buildFilePreview() string {
	var sb strings.Builder

	sb.WriteString(summaryTitleStyle.Render("Output Preview"))
	sb.WriteString("\n\n")

	sb.WriteString(treeFolderStyle.Render("[DIR]"))
	sb.WriteString(" ")
	sb.WriteString(treeNameStyle.Render(s.output.Dir + "/"))
	sb.WriteString("\n")

	names := s.previewFileNames()
	for _, name := range names {
		sb.WriteString(treeStyle.Render(getTreePrefix(false)))
		sb.WriteString(" ")
		sb.WriteString(treeNameStyle.Render(name))
		sb.WriteString("\n")
	}
	if hidden := s.markerCount() - len(names); hidden > 0 {
		sb.WriteString(treeStyle.Render(getTreePrefix(false) + " ... and "))
		sb.WriteString(summaryValueStyle.Render(fmt.Sprintf("%d", hidden)))
		sb.WriteString(treeStyle.Render(" more markers"))
		sb.WriteString("\n")
	}
	sb.WriteString(treeStyle.Render(getTreePrefix(true)))
	sb.WriteString(" ")
	sb.WriteString(treeNameStyle.Render(batch.ManifestName))

	return sb.String()
}

// previewFileNames returns up to maxPreviewFiles file names. Random seeds are
// shown as a placeholder since they are only drawn at generation time.
func (s *SummaryScreen) previewFileNames() []string {
	kind, _ := marker.ParseKind(s.marker.Kind)
	format, _ := export.ParseFormat(s.output.Format)

	n := s.markerCount()
	if n > maxPreviewFiles {
		n = maxPreviewFiles
	}

	names := make([]string, n)
	for i := range names {
		if i < len(s.marker.Seeds) {
			names[i] = export.FileName(marker.Marker{Seed: s.marker.Seeds[i], Kind: kind}, format)
		} else {
			names[i] = fmt.Sprintf("marker_%s_<seed>%s", kind, format.Extension())
		}
	}
	return names
}

func (s *SummaryScreen) markerCount() int {
	if len(s.marker.Seeds) > 0 {
		return len(s.marker.Seeds)
	}
	return s.output.Count
}

// getTreePrefix returns the prefix for a tree node
func getTreePrefix(isLast bool) string {
	if isLast {
		return "└──"
	}
	return "├──"
}

// buildCLICommand builds the CLI command equivalent section
func (s *SummaryScreen) buildCLICommand() string {
	var sb strings.Builder

	sb.WriteString(summaryTitleStyle.Render("Equivalent CLI Command"))
	sb.WriteString("\n\n")
	sb.WriteString(cliCommandStyle.Render(s.CLICommand()))

	return sb.String()
}

// CLICommand returns the markerforge command line equivalent to the
// configured settings. Default values are omitted.
func (s *SummaryScreen) CLICommand() string {
	parts := []string{"markerforge"}

	if s.marker.Kind != "" && s.marker.Kind != string(marker.Vuforia) {
		parts = append(parts, "-kind "+s.marker.Kind)
	}
	if s.marker.Size != 0 && s.marker.Size != marker.DefaultSize {
		parts = append(parts, fmt.Sprintf("-size %d", s.marker.Size))
	}
	if s.marker.Label != "" {
		parts = append(parts, fmt.Sprintf("-label %q", s.marker.Label))
	}
	switch {
	case len(s.marker.Seeds) == 1:
		parts = append(parts, fmt.Sprintf("-seed %d", s.marker.Seeds[0]))
	case len(s.marker.Seeds) > 1:
		parts = append(parts, "-seeds "+batch.FormatSeeds(s.marker.Seeds))
	case s.output.Count > 1:
		parts = append(parts, fmt.Sprintf("-count %d", s.output.Count))
	}
	if s.output.Format != "" && s.output.Format != string(export.PNG) {
		parts = append(parts, "-format "+s.output.Format)
	}
	if s.output.Quality != 0 {
		parts = append(parts, fmt.Sprintf("-quality %d", s.output.Quality))
	}
	if s.output.Dir != "" && s.output.Dir != "markers" {
		parts = append(parts, "-output "+s.output.Dir)
	}
	if s.output.Workers > 0 {
		parts = append(parts, fmt.Sprintf("-workers %d", s.output.Workers))
	}

	return strings.Join(parts, " ")
}

// Done returns true if the form was completed
func (s *SummaryScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *SummaryScreen) Cancelled() bool {
	return s.cancelled
}

// Action returns the selected action
func (s *SummaryScreen) Action() SummaryAction {
	switch s.action {
	case actionBack:
		return SummaryActionBack
	case actionGenerate:
		return SummaryActionGenerate
	case actionSaveConfig:
		return SummaryActionSaveConfig
	case actionCancel:
		return SummaryActionCancel
	default:
		return SummaryActionGenerate
	}
}

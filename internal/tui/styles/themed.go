// Package styles holds the lipgloss palettes and styles of the gridwatch TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// ThemedStyles contains all the lipgloss styles built from a color palette.
type ThemedStyles struct {
	Palette *ColorPalette

	// Boxes
	Box      lipgloss.Style
	ErrorBox lipgloss.Style

	// Text
	Title   lipgloss.Style
	Label   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Task selector
	Option         lipgloss.Style
	OptionSelected lipgloss.Style
	Summary        lipgloss.Style

	// Retry affordance
	Button lipgloss.Style

	// Hover facts
	FactKey lipgloss.Style

	// Help bar
	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	// Replay status line
	StatusBar lipgloss.Style

	team lipgloss.Style
}

// NewThemedStyles creates a ThemedStyles from a color palette.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	s := &ThemedStyles{Palette: p}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.ErrorBox = s.Box.
		BorderForeground(p.Error)

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	s.Label = lipgloss.NewStyle().Foreground(p.Muted)
	s.Text = lipgloss.NewStyle().Foreground(p.Text)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Error = lipgloss.NewStyle().Bold(true).Foreground(p.Error)
	s.Warning = lipgloss.NewStyle().Foreground(p.Warning)

	s.Option = lipgloss.NewStyle().
		Foreground(p.Text).
		PaddingLeft(2)

	s.OptionSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Surface).
		Background(p.Secondary).
		PaddingLeft(2)

	s.Summary = lipgloss.NewStyle().
		Italic(true).
		Foreground(p.Muted).
		PaddingLeft(2)

	s.Button = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Surface).
		Background(p.Warning).
		Padding(0, 1)

	s.FactKey = lipgloss.NewStyle().Foreground(p.Secondary)

	s.HelpBar = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)

	s.HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Secondary)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface).
		Padding(0, 1)

	s.team = lipgloss.NewStyle().
		Foreground(p.TeamText).
		Padding(0, 1)

	return s
}

// Team returns the badge style for the team at index i of the sorted team
// list.
func (s *ThemedStyles) Team(i int) lipgloss.Style {
	return s.team.Background(s.Palette.TeamColor(i))
}

// Default returns styles for the default theme.
func Default() *ThemedStyles {
	return NewThemedStyles(DefaultPalette())
}

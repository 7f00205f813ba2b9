package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Built-in theme names.
const (
	ThemeDefault ThemeName = "default" // Purple/green dark theme
	ThemeNord    ThemeName = "nord"    // Nord theme - cool blue-gray
	ThemeDracula ThemeName = "dracula" // Dracula theme colors
	ThemeMonokai ThemeName = "monokai" // Classic Monokai editor colors
)

// BuiltinThemes returns the names of all built-in themes.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeNord),
		string(ThemeDracula),
		string(ThemeMonokai),
	}
}

// IsBuiltinTheme checks if a theme name is a built-in theme.
func IsBuiltinTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (titles, focused boxes)
	Primary lipgloss.Color
	// Secondary accent color (help keys, the selected task)
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	// Muted color (labels, de-emphasized text)
	Muted   lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Border  lipgloss.Color

	// Teams is the fixed-size team palette. Teams are colored by their rank
	// in the sorted team list; ranks beyond the palette wrap around.
	Teams []lipgloss.Color
	// TeamText is drawn on top of team colors.
	TeamText lipgloss.Color
}

// TeamColor returns the color for the team at index i of the sorted team
// list. Indexes wrap around the palette; an empty palette uses Primary.
func (p *ColorPalette) TeamColor(i int) lipgloss.Color {
	n := len(p.Teams)
	if n == 0 {
		return p.Primary
	}
	return p.Teams[((i%n)+n)%n]
}

// DefaultPalette returns the default purple/green dark theme palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500

		Teams: []lipgloss.Color{
			"#2563EB", // Blue
			"#DC2626", // Red
			"#059669", // Emerald
			"#D97706", // Amber
			"#7C3AED", // Violet
			"#DB2777", // Pink
			"#0891B2", // Cyan
			"#65A30D", // Lime
		},
		TeamText: lipgloss.Color("#F9FAFB"),
	}
}

// NordPalette returns the Nord theme palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#88C0D0"), // Nord frost (cyan)
		Secondary: lipgloss.Color("#A3BE8C"), // Nord aurora green
		Warning:   lipgloss.Color("#EBCB8B"), // Nord aurora yellow
		Error:     lipgloss.Color("#BF616A"), // Nord aurora red
		Muted:     lipgloss.Color("#4C566A"), // Nord polar night 3
		Surface:   lipgloss.Color("#2E3440"), // Nord polar night 0
		Text:      lipgloss.Color("#ECEFF4"), // Nord snow storm 2
		Border:    lipgloss.Color("#3B4252"), // Nord polar night 1

		Teams: []lipgloss.Color{
			"#5E81AC", // Frost deep blue
			"#BF616A", // Aurora red
			"#A3BE8C", // Aurora green
			"#D08770", // Aurora orange
			"#B48EAD", // Aurora purple
			"#EBCB8B", // Aurora yellow
			"#8FBCBB", // Frost teal
			"#81A1C1", // Frost blue
		},
		TeamText: lipgloss.Color("#2E3440"),
	}
}

// DraculaPalette returns the Dracula theme palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#BD93F9"), // Dracula purple
		Secondary: lipgloss.Color("#50FA7B"), // Dracula green
		Warning:   lipgloss.Color("#F1FA8C"), // Dracula yellow
		Error:     lipgloss.Color("#FF5555"), // Dracula red
		Muted:     lipgloss.Color("#6272A4"), // Dracula comment
		Surface:   lipgloss.Color("#282A36"), // Dracula background
		Text:      lipgloss.Color("#F8F8F2"), // Dracula foreground
		Border:    lipgloss.Color("#44475A"), // Dracula selection

		Teams: []lipgloss.Color{
			"#8BE9FD", // Cyan
			"#FF5555", // Red
			"#50FA7B", // Green
			"#FFB86C", // Orange
			"#BD93F9", // Purple
			"#FF79C6", // Pink
			"#F1FA8C", // Yellow
			"#6272A4", // Comment
		},
		TeamText: lipgloss.Color("#282A36"),
	}
}

// MonokaiPalette returns the classic Monokai editor theme palette.
func MonokaiPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#F92672"), // Monokai pink/magenta
		Secondary: lipgloss.Color("#A6E22E"), // Monokai green
		Warning:   lipgloss.Color("#E6DB74"), // Monokai yellow
		Error:     lipgloss.Color("#F92672"), // Monokai pink (same as primary)
		Muted:     lipgloss.Color("#75715E"), // Monokai comment gray
		Surface:   lipgloss.Color("#272822"), // Monokai background
		Text:      lipgloss.Color("#F8F8F2"), // Monokai foreground
		Border:    lipgloss.Color("#49483E"), // Monokai selection

		Teams: []lipgloss.Color{
			"#66D9EF", // Cyan
			"#F92672", // Pink
			"#A6E22E", // Green
			"#FD971F", // Orange
			"#AE81FF", // Purple
			"#E6DB74", // Yellow
		},
		TeamText: lipgloss.Color("#272822"),
	}
}

// GetPalette returns the color palette for the given built-in theme name.
// Returns the default palette for unknown theme names.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeNord:
		return NordPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeMonokai:
		return MonokaiPalette()
	default:
		return DefaultPalette()
	}
}

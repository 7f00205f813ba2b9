package styles

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
//
//	name: High Contrast
//	version: "1"
//	colors:
//	  primary: "#FFFFFF"
//	  teams: ["#FF0000", "#00FF00", "#0000FF"]
type ThemeFile struct {
	// Name is the theme's display name
	Name string `yaml:"name"`
	// Author is the theme creator's name (optional)
	Author string `yaml:"author,omitempty"`
	// Description provides details about the theme (optional)
	Description string `yaml:"description,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Colors defines the color palette
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors contains all color definitions for a theme. Colors are hex
// (#RRGGBB or #RGB); missing colors fall back to the default palette.
type ThemeColors struct {
	Primary   string `yaml:"primary,omitempty"`
	Secondary string `yaml:"secondary,omitempty"`
	Warning   string `yaml:"warning,omitempty"`
	Error     string `yaml:"error,omitempty"`
	Muted     string `yaml:"muted,omitempty"`
	Surface   string `yaml:"surface,omitempty"`
	Text      string `yaml:"text,omitempty"`
	Border    string `yaml:"border,omitempty"`

	// Teams replaces the whole team palette when set.
	Teams    []string `yaml:"teams,omitempty"`
	TeamText string   `yaml:"team_text,omitempty"`
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}
	if t.Version == "" {
		return errors.New("theme version is required")
	}
	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %s (supported: 1)", t.Version)
	}

	c := t.Colors
	named := []struct {
		field, value string
	}{
		{"primary", c.Primary},
		{"secondary", c.Secondary},
		{"warning", c.Warning},
		{"error", c.Error},
		{"muted", c.Muted},
		{"surface", c.Surface},
		{"text", c.Text},
		{"border", c.Border},
		{"team_text", c.TeamText},
	}
	for _, n := range named {
		if n.value != "" && !isValidHexColor(n.value) {
			return fmt.Errorf("invalid %s color: %q (expected #RRGGBB or #RGB)", n.field, n.value)
		}
	}
	for i, team := range c.Teams {
		if !isValidHexColor(team) {
			return fmt.Errorf("invalid teams[%d] color: %q (expected #RRGGBB or #RGB)", i, team)
		}
	}
	return nil
}

func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// ToPalette converts the theme file to a ColorPalette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	base := DefaultPalette()
	c := t.Colors

	p := &ColorPalette{
		Primary:   colorOrDefault(c.Primary, base.Primary),
		Secondary: colorOrDefault(c.Secondary, base.Secondary),
		Warning:   colorOrDefault(c.Warning, base.Warning),
		Error:     colorOrDefault(c.Error, base.Error),
		Muted:     colorOrDefault(c.Muted, base.Muted),
		Surface:   colorOrDefault(c.Surface, base.Surface),
		Text:      colorOrDefault(c.Text, base.Text),
		Border:    colorOrDefault(c.Border, base.Border),
		TeamText:  colorOrDefault(c.TeamText, base.TeamText),
		Teams:     base.Teams,
	}
	if len(c.Teams) > 0 {
		p.Teams = make([]lipgloss.Color, len(c.Teams))
		for i, team := range c.Teams {
			p.Teams[i] = lipgloss.Color(team)
		}
	}
	return p
}

// colorOrDefault returns the color if non-empty, otherwise returns the default.
func colorOrDefault(color string, defaultColor lipgloss.Color) lipgloss.Color {
	if color != "" {
		return lipgloss.Color(color)
	}
	return defaultColor
}

// ResolvePalette picks the palette for the TUI: a theme file wins over the
// named built-in theme.
func ResolvePalette(name, themeFile string) (*ColorPalette, error) {
	if themeFile == "" {
		return GetPalette(ThemeName(name)), nil
	}
	t, err := LoadThemeFile(themeFile)
	if err != nil {
		return nil, err
	}
	return t.ToPalette(), nil
}

// ExportTheme renders a built-in theme as a YAML theme file, a starting
// point for customization.
func ExportTheme(name ThemeName) ([]byte, error) {
	p := GetPalette(name)
	teams := make([]string, len(p.Teams))
	for i, c := range p.Teams {
		teams[i] = string(c)
	}

	return yaml.Marshal(&ThemeFile{
		Name:        string(name),
		Description: fmt.Sprintf("Exported from built-in theme '%s'", name),
		Version:     "1",
		Colors: ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
			Teams:     teams,
			TeamText:  string(p.TeamText),
		},
	})
}

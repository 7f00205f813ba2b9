package styles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadThemeFile(t *testing.T) {
	path := writeTheme(t, `name: High Contrast
version: "1"
colors:
  primary: "#FFFFFF"
  teams: ["#FF0000", "#0F0"]
  team_text: "#000000"
`)

	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile() error = %v", err)
	}
	p := theme.ToPalette()
	if p.Primary != "#FFFFFF" {
		t.Errorf("Primary = %q", p.Primary)
	}
	if len(p.Teams) != 2 || p.TeamColor(1) != "#0F0" {
		t.Errorf("Teams = %v", p.Teams)
	}
	if p.TeamText != "#000000" {
		t.Errorf("TeamText = %q", p.TeamText)
	}
	// Unset colors come from the default palette.
	if p.Border != DefaultPalette().Border {
		t.Errorf("Border = %q, want default", p.Border)
	}
}

func TestLoadThemeFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "version: \"1\"\n",
			wantErr: "name is required",
		},
		{
			name:    "missing version",
			content: "name: x\n",
			wantErr: "version is required",
		},
		{
			name:    "unsupported version",
			content: "name: x\nversion: \"2\"\n",
			wantErr: "unsupported theme version",
		},
		{
			name:    "bad base color",
			content: "name: x\nversion: \"1\"\ncolors:\n  error: red\n",
			wantErr: "invalid error color",
		},
		{
			name:    "bad team color",
			content: "name: x\nversion: \"1\"\ncolors:\n  teams: [\"#FFF\", \"#GGGGGG\"]\n",
			wantErr: "invalid teams[1] color",
		},
		{
			name:    "malformed yaml",
			content: "name: [unterminated\n",
			wantErr: "parsing theme file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadThemeFile(writeTheme(t, tt.content))
			if err == nil {
				t.Fatal("LoadThemeFile() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadThemeFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadThemeFile() on a missing file expected error")
	}
}

func TestResolvePalette(t *testing.T) {
	p, err := ResolvePalette("nord", "")
	if err != nil {
		t.Fatalf("ResolvePalette() error = %v", err)
	}
	if p.Primary != NordPalette().Primary {
		t.Error("expected the nord palette")
	}

	file := writeTheme(t, "name: x\nversion: \"1\"\ncolors:\n  primary: \"#123456\"\n")
	p, err = ResolvePalette("nord", file)
	if err != nil {
		t.Fatalf("ResolvePalette() error = %v", err)
	}
	if p.Primary != "#123456" {
		t.Error("a theme file should win over the theme name")
	}

	if _, err := ResolvePalette("default", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing theme file")
	}
}

func TestExportThemeRoundTrip(t *testing.T) {
	data, err := ExportTheme(ThemeDracula)
	if err != nil {
		t.Fatalf("ExportTheme() error = %v", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		t.Fatalf("exported theme is not valid YAML: %v", err)
	}
	if err := theme.Validate(); err != nil {
		t.Fatalf("exported theme does not validate: %v", err)
	}

	got, want := theme.ToPalette(), DraculaPalette()
	if got.Primary != want.Primary || len(got.Teams) != len(want.Teams) {
		t.Errorf("round trip changed the palette: %+v", got)
	}
}

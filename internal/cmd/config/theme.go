package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/gridwatch/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the gridwatch TUI.

gridwatch ships built-in themes and accepts a YAML theme file through
tui.theme_file. Export a built-in theme to get a starting point.

Use 'theme list' to see all built-in themes.
Use 'theme export' to create a template for a theme file.
Use 'theme check' to validate a theme file.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all built-in themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a built-in theme to YAML format for customization or sharing.

If no output file is specified, the YAML is printed to stdout.

Examples:
  gridwatch config theme export default                # Print default theme to stdout
  gridwatch config theme export dracula my-theme.yaml  # Save dracula theme to file`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show the colors of a built-in theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

var themeCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a theme file",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeCheck,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	themeCmd.AddCommand(themeCheckCmd)
	configCmd.AddCommand(themeCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Use a theme file with: gridwatch config set tui.theme_file <path>")
	return nil
}

func unknownTheme(name string) error {
	return fmt.Errorf("unknown theme: %s\n\nRun 'gridwatch config theme list' to see available themes", name)
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	themeName := args[0]
	if !styles.IsBuiltinTheme(themeName) {
		return unknownTheme(themeName)
	}

	data, err := styles.ExportTheme(styles.ThemeName(themeName))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", outputPath)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	themeName := args[0]
	if !styles.IsBuiltinTheme(themeName) {
		return unknownTheme(themeName)
	}
	printPalette(cmd, themeName, styles.GetPalette(styles.ThemeName(themeName)))
	return nil
}

func runThemeCheck(cmd *cobra.Command, args []string) error {
	theme, err := styles.LoadThemeFile(args[0])
	if err != nil {
		return err
	}
	if theme.Author != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Author: %s\n", theme.Author)
	}
	printPalette(cmd, theme.Name, theme.ToPalette())
	return nil
}

func printPalette(cmd *cobra.Command, name string, palette *styles.ColorPalette) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme: %s\n", name)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Base Colors:")
	fmt.Fprintf(out, "  Primary:   %s\n", palette.Primary)
	fmt.Fprintf(out, "  Secondary: %s\n", palette.Secondary)
	fmt.Fprintf(out, "  Warning:   %s\n", palette.Warning)
	fmt.Fprintf(out, "  Error:     %s\n", palette.Error)
	fmt.Fprintf(out, "  Muted:     %s\n", palette.Muted)
	fmt.Fprintf(out, "  Surface:   %s\n", palette.Surface)
	fmt.Fprintf(out, "  Text:      %s\n", palette.Text)
	fmt.Fprintf(out, "  Border:    %s\n", palette.Border)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Team Colors:")
	for i, c := range palette.Teams {
		fmt.Fprintf(out, "  %d. %s\n", i+1, c)
	}
}

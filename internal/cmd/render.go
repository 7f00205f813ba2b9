package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/protocol"
	"github.com/Iron-Ham/gridwatch/internal/raster"
	"github.com/Iron-Ham/gridwatch/internal/session"
	"github.com/Iron-Ham/gridwatch/internal/tui/view"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

const defaultRenderWidth = 80

var (
	renderStatic string
	renderStep   string
	renderTask   string
	renderHover  string
	renderWidth  int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the overlay for one step and exit",
	Long: `Render the overlay once from a static snapshot and a step snapshot on
disk, without connecting to a server. Both files hold the content of the
corresponding feed frame as JSON.

Examples:
  gridwatch render --static static.json --step step.json
  gridwatch render --static static.json --step step.json --task task3 --hover 4,7`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderStatic, "static", "", "static snapshot JSON file (required)")
	renderCmd.Flags().StringVar(&renderStep, "step", "", "step snapshot JSON file (required)")
	renderCmd.Flags().StringVar(&renderTask, "task", "", "select a task by name")
	renderCmd.Flags().StringVar(&renderHover, "hover", "", "inspect a grid cell, as x,y")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "output width in columns (default: terminal width)")
	_ = renderCmd.MarkFlagRequired("static")
	_ = renderCmd.MarkFlagRequired("step")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var validator *protocol.Validator
	if cfg.Server.Validate {
		if validator, err = protocol.NewValidator(); err != nil {
			return err
		}
	}
	static, err := readStaticFile(renderStatic, validator)
	if err != nil {
		return err
	}
	dynamic, err := readStepFile(renderStep, validator)
	if err != nil {
		return err
	}

	sel := overlay.Selection{}
	if renderTask != "" {
		sel = sel.WithTask(renderTask)
	}
	if renderHover != "" {
		pos, err := parsePos(renderHover)
		if err != nil {
			return err
		}
		sel = sel.WithHover(pos)
	}

	s, err := loadStyles(cfg)
	if err != nil {
		return err
	}

	snap := session.Snapshot{Conn: overlay.ConnConnected, Static: static, Dynamic: dynamic}
	v := overlay.NewComposer(cfg.Overlay.LayoutOptions()).Render(snap.State(sel))
	out := view.RenderOverlay(v, view.RenderOptions{
		Width:          outputWidth(),
		PatternColumns: cfg.TUI.PatternColumns,
		Styles:         s,
		Surface:        raster.NewSurface(),
		Static:         static,
	})
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func readStaticFile(path string, v *protocol.Validator) (*world.StaticWorld, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading static snapshot: %w", err)
	}
	if v != nil {
		if err := v.Validate(protocol.TypeStatic, data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return protocol.DecodeStatic(data)
}

func readStepFile(path string, v *protocol.Validator) (*world.DynamicWorld, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading step snapshot: %w", err)
	}
	if v != nil {
		if err := v.Validate(protocol.TypeStep, data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return protocol.DecodeDynamic(data)
}

// parsePos parses "x,y".
func parsePos(s string) (world.Pos, error) {
	var p world.Pos
	var rest string
	n, _ := fmt.Sscanf(s, "%d,%d%s", &p.X, &p.Y, &rest)
	if n != 2 {
		return world.Pos{}, fmt.Errorf("invalid --hover %q: expected x,y", s)
	}
	if p.X < 0 || p.Y < 0 {
		return world.Pos{}, fmt.Errorf("invalid --hover %q: coordinates must not be negative", s)
	}
	return p, nil
}

func outputWidth() int {
	if renderWidth > 0 {
		return renderWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultRenderWidth
}

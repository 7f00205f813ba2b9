package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/raster"
	"github.com/Iron-Ham/gridwatch/internal/tui/styles"
	"github.com/Iron-Ham/gridwatch/internal/util"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

// DefaultPatternColumns bounds the width of the rasterized task pattern.
const DefaultPatternColumns = 40

// boxChrome is the horizontal space taken by a box border and its padding.
const boxChrome = 4

// RenderOptions carries everything besides the view that affects rendering.
type RenderOptions struct {
	// Width is the terminal width in columns; 0 disables clipping.
	Width int

	// PatternColumns caps the width of the task pattern art.
	PatternColumns int

	// Styles defaults to the default theme when nil.
	Styles *styles.ThemedStyles

	// Surface and Static are needed to draw the task pattern. Without a
	// surface the detail panel shows no art.
	Surface *raster.Surface
	Static  *world.StaticWorld
	Drawer  raster.BlockDrawer

	// Status is an optional line rendered below the panels, such as the
	// replay position.
	Status string

	// Help is the pre-rendered key help line.
	Help string
}

// RenderOverlay renders v as terminal text.
func RenderOverlay(v overlay.View, opts RenderOptions) string {
	r := newRenderer(opts)

	var blocks []string
	switch v.Kind {
	case overlay.ViewLoading:
		blocks = append(blocks, r.loading(v.Loading))
	case overlay.ViewError:
		blocks = append(blocks, r.errorPanel(v.Error))
	default:
		blocks = append(blocks,
			r.header(v.Step),
			r.teams(v.Teams),
			r.tasks(v.Tasks),
		)
		if v.Detail != nil {
			blocks = append(blocks, r.detail(v.Detail))
		}
		if v.Hover != nil {
			blocks = append(blocks, r.hover(v.Hover))
		}
	}

	if opts.Status != "" {
		blocks = append(blocks, r.styles.StatusBar.Render(opts.Status))
	}
	if opts.Help != "" {
		blocks = append(blocks, r.styles.HelpBar.Render(opts.Help))
	}

	return util.ClipLines(lipgloss.JoinVertical(lipgloss.Left, blocks...), opts.Width)
}

// renderer holds the resolved options for one RenderOverlay call.
type renderer struct {
	opts   RenderOptions
	styles *styles.ThemedStyles
}

func newRenderer(opts RenderOptions) *renderer {
	s := opts.Styles
	if s == nil {
		s = styles.Default()
	}
	if opts.PatternColumns <= 0 {
		opts.PatternColumns = DefaultPatternColumns
	}
	if opts.Drawer == nil {
		opts.Drawer = raster.TypeBlockDrawer{}
	}
	return &renderer{opts: opts, styles: s}
}

// innerWidth is the text width available inside a box, or 0 when unbounded.
func (r *renderer) innerWidth() int {
	if r.opts.Width <= 0 {
		return 0
	}
	return max(r.opts.Width-boxChrome, 1)
}

// fit truncates a plain label to the box width.
func (r *renderer) fit(s string) string {
	w := r.innerWidth()
	if w == 0 {
		return s
	}
	return util.TruncateANSI(s, w)
}

func (r *renderer) box(lines ...string) string {
	return r.styles.Box.Render(strings.Join(lines, "\n"))
}

// Package tui is the Bubbletea front end of gridwatch. It renders the
// overlay for either a live session or a recorded replay.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"

	"github.com/Iron-Ham/gridwatch/internal/logging"
	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/raster"
	"github.com/Iron-Ham/gridwatch/internal/replay"
	"github.com/Iron-Ham/gridwatch/internal/session"
	"github.com/Iron-Ham/gridwatch/internal/tui/keymap"
	"github.com/Iron-Ham/gridwatch/internal/tui/msg"
	"github.com/Iron-Ham/gridwatch/internal/tui/styles"
	"github.com/Iron-Ham/gridwatch/internal/tui/view"
)

// DefaultStepInterval is the replay playback speed.
const DefaultStepInterval = 250 * time.Millisecond

// Options configures a Model.
type Options struct {
	Styles         *styles.ThemedStyles
	Layout         overlay.LayoutOptions
	PatternColumns int
	// ShowHelp shows the short key help below the overlay.
	ShowHelp bool
	Logger   *logging.Logger

	// Connect (re)starts the live session. It is called once from Init and
	// again for every retry. Nil in replay mode.
	Connect func()

	// Player drives replay mode. Nil in live mode.
	Player       *replay.Player
	Follow       bool
	StepInterval time.Duration

	// Clipboard defaults to the system clipboard.
	Clipboard msg.CopyFunc
}

// Model holds the TUI application state
type Model struct {
	keys     keymap.KeyMap
	help     help.Model
	styles   *styles.ThemedStyles
	composer *overlay.Composer
	surface  *raster.Surface
	logger   *logging.Logger

	patternColumns int
	showHelp       bool

	connect   func()
	player    *replay.Player
	follow    bool
	interval  time.Duration
	tickID    int
	clipboard msg.CopyFunc

	// UI state
	snap     session.Snapshot
	sel      overlay.Selection
	width    int
	height   int
	status   string
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	s := opts.Styles
	if s == nil {
		s = styles.Default()
	}
	layout := opts.Layout
	if layout.SurfaceWidth == 0 {
		layout = overlay.DefaultLayoutOptions()
	}
	columns := opts.PatternColumns
	if columns <= 0 {
		columns = view.DefaultPatternColumns
	}
	interval := opts.StepInterval
	if interval <= 0 {
		interval = DefaultStepInterval
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = msg.SystemClipboard
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	h := help.New()
	h.Styles.ShortKey = s.HelpKey
	h.Styles.FullKey = s.HelpKey
	h.Styles.ShortDesc = s.Muted
	h.Styles.FullDesc = s.Muted

	m := Model{
		keys:           keymap.Default(opts.Player != nil),
		help:           h,
		styles:         s,
		composer:       overlay.NewComposer(layout),
		surface:        raster.NewSurface(),
		logger:         logger.WithComponent("tui"),
		patternColumns: columns,
		showHelp:       opts.ShowHelp,
		connect:        opts.Connect,
		player:         opts.Player,
		follow:         opts.Follow,
		interval:       interval,
		clipboard:      copyFn,
		snap:           session.Snapshot{Conn: overlay.ConnConnecting},
	}
	if m.player != nil {
		m.snap = m.player.Snapshot()
	}
	return m
}

// Selection returns the current selection.
func (m Model) Selection() overlay.Selection {
	return m.sel
}

// Snapshot returns the snapshot being displayed.
func (m Model) Snapshot() session.Snapshot {
	return m.snap
}

func (m Model) replayMode() bool {
	return m.player != nil
}

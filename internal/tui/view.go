package tui

import (
	"github.com/Iron-Ham/gridwatch/internal/tui/view"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.composer.Render(m.snap.State(m.sel))
	return view.RenderOverlay(v, view.RenderOptions{
		Width:          m.width,
		PatternColumns: m.patternColumns,
		Styles:         m.styles,
		Surface:        m.surface,
		Static:         m.snap.Static,
		Status:         m.statusLine(),
		Help:           m.helpLine(),
	})
}

func (m Model) statusLine() string {
	line := ""
	if m.player != nil {
		line = view.ReplayStatus{
			Position: m.player.Position(),
			Total:    m.player.Replay().Len(),
			Playing:  m.player.Playing(),
			Follow:   m.follow,
		}.String()
	}
	if m.status != "" {
		if line != "" {
			line += "  "
		}
		line += m.status
	}
	return line
}

func (m Model) helpLine() string {
	if !m.showHelp && !m.help.ShowAll {
		return ""
	}
	return m.help.View(m.keys)
}

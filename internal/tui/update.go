package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/session"
	"github.com/Iron-Ham/gridwatch/internal/tui/msg"
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.connect != nil {
		connect := m.connect
		return func() tea.Msg {
			connect()
			return nil
		}
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.help.Width = message.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)

	case msg.SnapshotMsg:
		m.setSnapshot(message.Snapshot)
		return m, nil

	case msg.ReplayTickMsg:
		return m.handleTick(message)

	case msg.ReplayChangedMsg:
		if m.player != nil {
			m.setSnapshot(m.player.Snapshot())
		}
		return m, nil

	case msg.ClipboardMsg:
		if message.Err != nil {
			m.logger.Warn("clipboard copy failed", "error", message.Err.Error())
			m.status = "clipboard: " + message.Err.Error()
		} else {
			m.status = fmt.Sprintf("copied %s", overlay.SimplePlural(message.Lines, "line"))
		}
		return m, nil

	case msg.ErrMsg:
		m.status = message.Err.Error()
		return m, nil
	}
	return m, nil
}

func (m *Model) setSnapshot(s session.Snapshot) {
	if s.Conn == overlay.ConnError && m.snap.Conn != overlay.ConnError && s.Err != nil {
		m.logger.Error("live session failed", "error", s.Err.Error())
	}
	m.snap = s
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(k, m.keys.NextTask):
		m.cycleTask(1)
	case key.Matches(k, m.keys.PrevTask):
		m.cycleTask(-1)

	case key.Matches(k, m.keys.Up):
		m.sel = m.sel.MoveHover(0, -1)
	case key.Matches(k, m.keys.Down):
		m.sel = m.sel.MoveHover(0, 1)
	case key.Matches(k, m.keys.Left):
		m.sel = m.sel.MoveHover(-1, 0)
	case key.Matches(k, m.keys.Right):
		m.sel = m.sel.MoveHover(1, 0)
	case key.Matches(k, m.keys.ClearHover):
		m.sel = m.sel.ClearHover()

	case key.Matches(k, m.keys.CopyFacts):
		return m, m.copyFacts()

	case key.Matches(k, m.keys.Retry):
		return m, m.retry()

	case key.Matches(k, m.keys.StepBack):
		if m.player.Prev() {
			m.snap = m.player.Snapshot()
		}
	case key.Matches(k, m.keys.StepForward):
		if m.player.Next() {
			m.snap = m.player.Snapshot()
		}
	case key.Matches(k, m.keys.PlayPause):
		if m.player.Toggle() {
			m.tickID++
			return m, msg.ReplayTick(m.tickID, m.interval)
		}
	}
	return m, nil
}

func (m *Model) cycleTask(delta int) {
	if m.snap.Dynamic == nil {
		return
	}
	m.sel = m.sel.WithTask(overlay.CycleTask(m.snap.Dynamic.Tasks, m.sel.TaskName, delta))
}

func (m *Model) copyFacts() tea.Cmd {
	if m.sel.Hover == nil || m.snap.Dynamic == nil {
		return nil
	}
	facts := overlay.InspectAll(m.snap.Dynamic, *m.sel.Hover)
	if len(facts) == 0 {
		m.status = "nothing to copy"
		return nil
	}
	return msg.Copy(m.clipboard, overlay.FactTexts(facts))
}

// retry starts a new live session. Only the error state offers a retry.
func (m *Model) retry() tea.Cmd {
	if m.connect == nil || m.snap.Conn != overlay.ConnError {
		return nil
	}
	m.logger.Info("retrying live session")
	m.snap = session.Snapshot{Conn: overlay.ConnConnecting}
	m.status = ""
	connect := m.connect
	return func() tea.Msg {
		connect()
		return nil
	}
}

func (m Model) handleTick(t msg.ReplayTickMsg) (tea.Model, tea.Cmd) {
	if m.player == nil || t.ID != m.tickID {
		return m, nil
	}
	if m.player.Tick(m.follow) {
		m.snap = m.player.Snapshot()
	}
	if !m.player.Playing() {
		return m, nil
	}
	return m, msg.ReplayTick(m.tickID, m.interval)
}

// Package keymap defines the key bindings of the gridwatch TUI.
package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding. It implements help.KeyMap.
type KeyMap struct {
	NextTask key.Binding
	PrevTask key.Binding

	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	ClearHover key.Binding
	CopyFacts  key.Binding

	Retry key.Binding

	// Replay controls; disabled in live mode.
	StepBack    key.Binding
	StepForward key.Binding
	PlayPause   key.Binding

	Help key.Binding
	Quit key.Binding
}

// Default returns the default bindings. Replay controls are enabled only
// when replay is set.
func Default(replay bool) KeyMap {
	k := KeyMap{
		NextTask: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next task")),
		PrevTask: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev task")),

		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		ClearHover: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear hover")),
		CopyFacts:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy facts")),

		Retry: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),

		StepBack:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev step")),
		StepForward: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next step")),
		PlayPause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}

	k.StepBack.SetEnabled(replay)
	k.StepForward.SetEnabled(replay)
	k.PlayPause.SetEnabled(replay)
	// There is nothing to reconnect to in a replay.
	k.Retry.SetEnabled(!replay)
	return k
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTask, k.PlayPause, k.CopyFacts, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTask, k.PrevTask},
		{k.Up, k.Down, k.Left, k.Right},
		{k.ClearHover, k.CopyFacts, k.Retry},
		{k.StepBack, k.StepForward, k.PlayPause},
		{k.Help, k.Quit},
	}
}

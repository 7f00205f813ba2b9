package msg

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// ReplayTick returns a command that sends a ReplayTickMsg for loop id after
// interval.
func ReplayTick(id int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return ReplayTickMsg{ID: id}
	})
}

// CopyFunc writes text to the clipboard.
type CopyFunc func(text string) error

// SystemClipboard copies through the OS clipboard.
var SystemClipboard CopyFunc = clipboard.WriteAll

// Copy returns a command that copies lines joined by newlines and reports
// the outcome as a ClipboardMsg.
func Copy(copyFn CopyFunc, lines []string) tea.Cmd {
	return func() tea.Msg {
		if err := copyFn(strings.Join(lines, "\n")); err != nil {
			return ClipboardMsg{Err: err}
		}
		return ClipboardMsg{Lines: len(lines)}
	}
}

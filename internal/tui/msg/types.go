package msg

import "github.com/Iron-Ham/gridwatch/internal/session"

// SnapshotMsg carries a new live-session state.
type SnapshotMsg struct {
	Snapshot session.Snapshot
}

// ReplayTickMsg advances a playing replay. ID identifies the tick loop that
// scheduled it; ticks from an older loop are dropped.
type ReplayTickMsg struct {
	ID int
}

// ReplayChangedMsg signals that follow mode loaded Added new steps.
type ReplayChangedMsg struct {
	Added int
}

// ClipboardMsg reports the result of copying hover facts.
type ClipboardMsg struct {
	Lines int
	Err   error
}

// ErrMsg wraps an error to be displayed in the status line.
type ErrMsg struct {
	Err error
}

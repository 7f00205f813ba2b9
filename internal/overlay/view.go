package overlay

import (
	"fmt"

	"github.com/Iron-Ham/gridwatch/internal/world"
)

// ViewKind selects which of the three overlay shapes a View holds.
type ViewKind int

const (
	ViewLoading ViewKind = iota
	ViewError
	ViewConnected
)

// String returns the name of the view kind.
func (k ViewKind) String() string {
	switch k {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Fixed overlay texts.
const (
	LoadingText      = "Loading ..."
	DisconnectedText = "Live server not connected."
	RetryText        = "Retry now."
)

// View is the declarative overlay tree. Only the fields that belong to Kind
// are populated.
type View struct {
	Kind ViewKind

	// Loading is set for ViewLoading.
	Loading string

	// Error is set for ViewError.
	Error *ErrorPanel

	// The remaining fields are set for ViewConnected.
	Step   StepCounter
	Teams  []TeamSummary
	Tasks  TaskCatalog
	Detail *TaskDetail
	Hover  *HoverPanel
}

// ErrorPanel is shown when the live server is not connected.
type ErrorPanel struct {
	Message string
	// Retry labels the single recovery action, which reloads the session.
	Retry string
}

// StepCounter shows the current step out of the last step index.
type StepCounter struct {
	Current int
	Last    int
}

// Label renders the counter as "Step: 3 / 499".
func (s StepCounter) Label() string {
	return fmt.Sprintf("Step: %d / %d", s.Current, s.Last)
}

// TaskDetail is the panel shown for the selected task.
type TaskDetail struct {
	Task       world.Task
	Layout     PatternLayout
	BlockLabel string
}

// HoverPanel lists the facts about the hovered cell.
type HoverPanel struct {
	Pos   world.Pos
	Facts []Fact
}

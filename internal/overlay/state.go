package overlay

import "github.com/Iron-Ham/gridwatch/internal/world"

// ConnState is the connection state reported by the session layer.
type ConnState string

// Connection states.
const (
	ConnConnecting ConnState = "connecting"
	ConnError      ConnState = "error"
	ConnConnected  ConnState = "connected"
)

// Selection is the UI selection. The zero value selects nothing.
type Selection struct {
	// TaskName is the selected task; empty means no selection.
	TaskName string
	// Hover is the inspected cell, nil when nothing is hovered.
	Hover *world.Pos
}

// WithTask returns a copy of s selecting the named task.
func (s Selection) WithTask(name string) Selection {
	s.TaskName = name
	return s
}

// WithHover returns a copy of s hovering p.
func (s Selection) WithHover(p world.Pos) Selection {
	s.Hover = &p
	return s
}

// ClearHover returns a copy of s with no hovered cell.
func (s Selection) ClearHover() Selection {
	s.Hover = nil
	return s
}

// MoveHover returns a copy of s with the hover cursor moved by dx, dy.
// Without a current hover the cursor starts at the grid origin. Coordinates
// never go negative.
func (s Selection) MoveHover(dx, dy int) Selection {
	p := world.Pos{}
	if s.Hover != nil {
		p = s.Hover.Add(dx, dy)
	}
	p.X = max(p.X, 0)
	p.Y = max(p.Y, 0)
	return s.WithHover(p)
}

// State is everything the composer reads for one render.
type State struct {
	Conn      ConnState
	Static    *world.StaticWorld
	Dynamic   *world.DynamicWorld
	Selection Selection
}

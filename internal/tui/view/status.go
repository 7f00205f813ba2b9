package view

import "fmt"

// ReplayStatus describes the replay cursor for the status line.
type ReplayStatus struct {
	Position int
	Total    int
	Playing  bool
	Follow   bool
}

// String renders the status as "replay 3/40 playing, following".
func (s ReplayStatus) String() string {
	state := "paused"
	if s.Playing {
		state = "playing"
	}
	out := fmt.Sprintf("replay %d/%d %s", min(s.Position+1, s.Total), s.Total, state)
	if s.Follow {
		out += ", following"
	}
	return out
}

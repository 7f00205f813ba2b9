package replay

import (
	"sync"

	"github.com/Iron-Ham/gridwatch/internal/errors"
	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/session"
)

// Player is a cursor over a replay with play/pause state. It is safe for
// concurrent use.
type Player struct {
	r *Replay

	mu      sync.Mutex
	pos     int
	playing bool
}

// NewPlayer returns a paused player at the first step.
func NewPlayer(r *Replay) *Player {
	return &Player{r: r}
}

// Replay returns the underlying replay.
func (p *Player) Replay() *Replay {
	return p.r
}

// Position returns the cursor index.
func (p *Player) Position() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

// Playing reports whether the player advances on Tick.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Next moves to the following step. It reports false at the last step.
func (p *Player) Next() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pos+1 >= p.r.Len() {
		return false
	}
	p.pos++
	return true
}

// Prev moves to the previous step. It reports false at the first step.
func (p *Player) Prev() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pos == 0 {
		return false
	}
	p.pos--
	return true
}

// Seek moves the cursor to step index i.
func (p *Player) Seek(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= p.r.Len() {
		return errors.NewReplayError("seek", errors.ErrStepOutOfRange).WithPath(p.r.Dir()).WithStep(i)
	}
	p.pos = i
	return nil
}

// Toggle switches between playing and paused and returns the new state.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = !p.playing
	return p.playing
}

// Tick advances one step while playing. Reaching the end pauses the player
// unless follow is set, in which case it waits for new steps.
func (p *Player) Tick(follow bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return false
	}
	if p.pos+1 >= p.r.Len() {
		if !follow {
			p.playing = false
		}
		return false
	}
	p.pos++
	return true
}

// Snapshot returns the current step as a live-session snapshot. A replay
// without steps yet reports connecting.
func (p *Player) Snapshot() session.Snapshot {
	p.mu.Lock()
	pos := p.pos
	p.mu.Unlock()

	dyn, err := p.r.Step(pos)
	if err != nil {
		return session.Snapshot{Conn: overlay.ConnConnecting}
	}
	return session.Snapshot{
		Conn:    overlay.ConnConnected,
		Static:  p.r.Static(),
		Dynamic: dyn,
	}
}

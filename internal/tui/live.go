package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/gridwatch/internal/logging"
	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/session"
	"github.com/Iron-Ham/gridwatch/internal/tui/msg"
)

// Live owns the websocket session behind the TUI. Every Connect replaces the
// previous session; updates are forwarded to the program as SnapshotMsg.
type Live struct {
	opts   session.Options
	logger *logging.Logger

	mu     sync.Mutex
	parent context.Context
	cancel context.CancelFunc
	send   func(tea.Msg)
	wg     sync.WaitGroup
}

// NewLive creates a Live for the given session options. OnUpdate is
// overwritten.
func NewLive(opts session.Options) *Live {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Live{
		opts:   opts,
		logger: logger.WithComponent("live"),
		parent: context.Background(),
		send:   func(tea.Msg) {},
	}
}

// Bind sets the context sessions run under and the function that delivers
// messages to the program.
func (l *Live) Bind(ctx context.Context, send func(tea.Msg)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.parent = ctx
	l.send = send
}

// Connect stops the current session, if any, and dials a new one in the
// background.
func (l *Live) Connect() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(l.parent)
	l.cancel = cancel

	send := l.send
	opts := l.opts
	opts.OnUpdate = func(s session.Snapshot) {
		// A replaced session may still report its final state.
		if ctx.Err() == nil {
			send(msg.SnapshotMsg{Snapshot: s})
		}
	}

	sess, err := session.New(opts)
	if err != nil {
		l.logger.Error("cannot create session", "error", err.Error())
		send(msg.SnapshotMsg{Snapshot: session.Snapshot{Conn: overlay.ConnError, Err: err}})
		return
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := sess.Run(ctx); err != nil {
			l.logger.Warn("session ended", "error", err.Error())
		}
	}()
}

// Stop ends the current session and waits for it to finish.
func (l *Live) Stop() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()
	l.wg.Wait()
}

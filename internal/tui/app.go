package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/gridwatch/internal/replay"
	"github.com/Iron-Ham/gridwatch/internal/session"
	"github.com/Iron-Ham/gridwatch/internal/tui/msg"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	live    *Live
	replay  *replay.Replay
	follow  bool
}

// NewLiveApp creates a TUI application watching a live session.
func NewLiveApp(sessOpts session.Options, opts Options) *App {
	live := NewLive(sessOpts)
	opts.Connect = live.Connect
	opts.Player = nil
	return &App{
		model: NewModel(opts),
		live:  live,
	}
}

// NewReplayApp creates a TUI application playing back a replay. With
// opts.Follow set the replay directory is watched for new steps.
func NewReplayApp(r *replay.Replay, opts Options) *App {
	opts.Connect = nil
	opts.Player = replay.NewPlayer(r)
	return &App{
		model:  NewModel(opts),
		replay: r,
		follow: opts.Follow,
	}
}

// Run starts the TUI application and blocks until the user quits or ctx is
// done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	if a.live != nil {
		a.live.Bind(ctx, a.program.Send)
		defer a.live.Stop()
	}
	if a.replay != nil && a.follow {
		err := a.replay.Follow(ctx, func(added int) {
			a.program.Send(msg.ReplayChangedMsg{Added: added})
		})
		if err != nil {
			return err
		}
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			a.program.Send(tea.Quit())
		case <-ctx.Done():
			a.program.Quit()
		}
	}()

	_, err := a.program.Run()
	return err
}

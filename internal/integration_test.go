// Package internal contains integration tests that verify the live session,
// replay and overlay packages work together.
package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/protocol"
	"github.com/Iron-Ham/gridwatch/internal/raster"
	"github.com/Iron-Ham/gridwatch/internal/replay"
	"github.com/Iron-Ham/gridwatch/internal/session"
	"github.com/Iron-Ham/gridwatch/internal/testutil"
	"github.com/Iron-Ham/gridwatch/internal/tui/styles"
	"github.com/Iron-Ham/gridwatch/internal/tui/view"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

// liveSnapshot serves the sample world over a websocket and returns the
// first connected snapshot the session produces.
func liveSnapshot(t *testing.T) session.Snapshot {
	t.Helper()

	static, err := protocol.Encode(protocol.TypeStatic, testutil.SampleStatic())
	if err != nil {
		t.Fatal(err)
	}
	step, err := protocol.Encode(protocol.TypeStep, testutil.SampleDynamic())
	if err != nil {
		t.Fatal(err)
	}

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, static)
		_ = conn.WriteMessage(websocket.TextMessage, step)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	snaps := make(chan session.Snapshot, 16)
	sess, err := session.New(session.Options{
		URL:      "ws" + strings.TrimPrefix(srv.URL, "http"),
		Validate: true,
		OnUpdate: func(s session.Snapshot) {
			select {
			case snaps <- s:
			default:
			}
		},
	})
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run() error = %v", err)
		}
	}()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-snaps:
			if s.Conn == overlay.ConnConnected && s.Dynamic != nil {
				return s
			}
		case <-deadline:
			t.Fatal("no connected snapshot received")
		}
	}
}

// replaySnapshot records the sample world and reads it back through a
// Player.
func replaySnapshot(t *testing.T) session.Snapshot {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "rec")
	rec, err := replay.NewRecorder(dir, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.SetStatic(testutil.SampleStatic()); err != nil {
		t.Fatal(err)
	}
	if err := rec.Add(testutil.SampleDynamic()); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := replay.Open(dir, replay.DefaultOptions())
	if err != nil {
		t.Fatalf("replay.Open() error = %v", err)
	}
	return replay.NewPlayer(r).Snapshot()
}

func render(snap session.Snapshot, sel overlay.Selection) string {
	v := overlay.NewComposer(overlay.DefaultLayoutOptions()).Render(snap.State(sel))
	return view.RenderOverlay(v, view.RenderOptions{
		Width:   120,
		Styles:  styles.Default(),
		Surface: raster.NewSurface(),
		Static:  snap.Static,
	})
}

// TestLiveAndReplayRenderAlike checks that a step seen live and the same
// step played back from a recording produce the same overlay.
func TestLiveAndReplayRenderAlike(t *testing.T) {
	live := liveSnapshot(t)
	played := replaySnapshot(t)

	sel := overlay.Selection{}.WithTask("task0").WithHover(world.Pos{X: 0, Y: 1})
	liveOut := render(live, sel)
	playedOut := render(played, sel)

	if liveOut != playedOut {
		t.Errorf("live and replay renders differ\nlive:\n%s\nreplay:\n%s", liveOut, playedOut)
	}
	for _, want := range []string{"task0", "name = agentA1, team = A"} {
		if !strings.Contains(liveOut, want) {
			t.Errorf("render missing %q:\n%s", want, liveOut)
		}
	}
}

// TestComposerOverSessionStates renders every connection state a session
// can report.
func TestComposerOverSessionStates(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want string
	}{
		{"connecting", session.Snapshot{Conn: overlay.ConnConnecting}, overlay.LoadingText},
		{"error", session.Snapshot{Conn: overlay.ConnError}, overlay.DisconnectedText},
		{"connected", session.Snapshot{
			Conn:    overlay.ConnConnected,
			Static:  testutil.SampleStatic(),
			Dynamic: testutil.SampleDynamic(),
		}, "Step:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if out := render(tt.snap, overlay.Selection{}); !strings.Contains(out, tt.want) {
				t.Errorf("render() missing %q:\n%s", tt.want, out)
			}
		})
	}
}

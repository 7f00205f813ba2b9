package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Iron-Ham/gridwatch/internal/errors"
	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/protocol"
	"github.com/Iron-Ham/gridwatch/internal/testutil"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

// feedServer upgrades one connection, writes frames and then either holds
// the connection open until release is closed or drops it.
func feedServer(t *testing.T, frames [][]byte, hold bool) (*httptest.Server, chan struct{}) {
	t.Helper()
	release := make(chan struct{})
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, f); err != nil {
				return
			}
		}
		if hold {
			<-release
		}
	}))
	t.Cleanup(func() {
		select {
		case <-release:
		default:
			close(release)
		}
		srv.Close()
	})
	return srv, release
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func mustEncode(t *testing.T, typ string, v any) []byte {
	t.Helper()
	b, err := protocol.Encode(typ, v)
	if err != nil {
		t.Fatalf("Encode(%s) error = %v", typ, err)
	}
	return b
}

// recorder collects OnUpdate snapshots.
type recorder struct {
	mu    sync.Mutex
	snaps []Snapshot
	ch    chan Snapshot
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan Snapshot, 64)}
}

func (r *recorder) onUpdate(s Snapshot) {
	r.mu.Lock()
	r.snaps = append(r.snaps, s)
	r.mu.Unlock()
	r.ch <- s
}

func (r *recorder) waitFor(t *testing.T, pred func(Snapshot) bool) Snapshot {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-r.ch:
			if pred(s) {
				return s
			}
		case <-timeout:
			t.Fatal("timed out waiting for snapshot")
			return Snapshot{}
		}
	}
}

func (r *recorder) all() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot(nil), r.snaps...)
}

func TestNewRequiresURL(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("New() error = %v, want ErrInvalidInput", err)
	}
}

func TestSessionConnects(t *testing.T) {
	static := testutil.SampleStatic()
	dynamic := testutil.SampleDynamic()
	srv, _ := feedServer(t, [][]byte{
		mustEncode(t, protocol.TypeStatic, static),
		[]byte(`not json`),
		[]byte(`{"type":"chat","content":{}}`),
		mustEncode(t, protocol.TypeStep, dynamic),
	}, true)

	rec := newRecorder()
	s, err := New(Options{URL: wsURL(srv), Validate: true, OnUpdate: rec.onUpdate})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := s.Snapshot().Conn; got != overlay.ConnConnecting {
		t.Errorf("initial Conn = %q, want connecting", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	snap := rec.waitFor(t, func(s Snapshot) bool { return s.Conn == overlay.ConnConnected })
	if snap.Static == nil || snap.Dynamic == nil {
		t.Fatal("connected snapshot should carry both worlds")
	}
	if snap.Dynamic.Step != dynamic.Step || snap.Static.Steps != static.Steps {
		t.Errorf("snapshot = step %d of %d", snap.Dynamic.Step, snap.Static.Steps)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() after cancel = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	for i, s := range rec.all() {
		if (s.Static == nil) != (s.Dynamic == nil) {
			t.Errorf("snapshot %d has only one world: %+v", i, s)
		}
	}
}

func TestSessionSchemaViolationIsSkipped(t *testing.T) {
	srv, _ := feedServer(t, [][]byte{
		mustEncode(t, protocol.TypeStatic, testutil.SampleStatic()),
		[]byte(`{"type":"step","content":{"step":-5}}`),
		mustEncode(t, protocol.TypeStep, testutil.SampleDynamic()),
	}, true)

	rec := newRecorder()
	s, err := New(Options{URL: wsURL(srv), Validate: true, OnUpdate: rec.onUpdate})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	snap := rec.waitFor(t, func(s Snapshot) bool { return s.Conn == overlay.ConnConnected })
	if snap.Dynamic.Step != 42 {
		t.Errorf("Step = %d, want 42 (invalid step should be skipped)", snap.Dynamic.Step)
	}
}

func TestSessionDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := wsURL(srv)
	srv.Close()

	rec := newRecorder()
	s, err := New(Options{URL: url, HandshakeTimeout: time.Second, OnUpdate: rec.onUpdate})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = s.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should fail against a closed server")
	}
	var connErr *errors.ConnectionError
	if !errors.As(err, &connErr) || connErr.URL != url {
		t.Errorf("Run() error = %v, want ConnectionError for %s", err, url)
	}
	if !errors.IsRetryable(err) {
		t.Error("dial failure should be retryable")
	}

	snap := s.Snapshot()
	if snap.Conn != overlay.ConnError || snap.Err == nil {
		t.Errorf("Snapshot() = %+v, want error state", snap)
	}
	if view := overlay.Render(snap.State(overlay.Selection{})); view.Kind != overlay.ViewError {
		t.Errorf("view kind = %v, want error", view.Kind)
	}
}

func TestSessionConnectionDropped(t *testing.T) {
	srv, _ := feedServer(t, [][]byte{
		mustEncode(t, protocol.TypeStatic, testutil.SampleStatic()),
		mustEncode(t, protocol.TypeStep, testutil.SampleDynamic()),
	}, false)

	s, err := New(Options{URL: wsURL(srv)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = s.Run(context.Background())
	if !errors.Is(err, errors.ErrNotConnected) {
		t.Errorf("Run() error = %v, want ErrNotConnected", err)
	}
	snap := s.Snapshot()
	if snap.Conn != overlay.ConnError {
		t.Errorf("Conn = %q, want error", snap.Conn)
	}
	if snap.Static == nil || snap.Dynamic == nil {
		t.Error("last worlds should be kept after the connection drops")
	}
}

func TestSessionNewSimulationResetsStep(t *testing.T) {
	s, err := New(Options{URL: "ws://unused"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	first := testutil.SampleStatic()
	s.applyStatic(first)
	s.applyDynamic(testutil.SampleDynamic())
	if s.Snapshot().Conn != overlay.ConnConnected {
		t.Fatal("expected connected after both snapshots")
	}

	same := testutil.SampleStatic()
	same.Steps = 600
	s.applyStatic(same)
	if snap := s.Snapshot(); snap.Dynamic == nil || snap.Static.Steps != 600 {
		t.Errorf("static update for the same simulation should keep the step: %+v", snap)
	}

	next := &world.StaticWorld{SimID: "sim-next", Steps: 10}
	s.applyStatic(next)
	snap := s.Snapshot()
	if snap.Conn != overlay.ConnConnecting || snap.Static != nil || snap.Dynamic != nil {
		t.Errorf("new simulation should wait for a step: %+v", snap)
	}
}

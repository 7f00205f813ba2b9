// Package session maintains the live connection to the simulation server's
// monitor feed and exposes the latest static and dynamic snapshots.
//
// A Session dials once. When the connection fails or drops, the session ends
// in the error state; callers start a new Session to retry.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Iron-Ham/gridwatch/internal/errors"
	"github.com/Iron-Ham/gridwatch/internal/logging"
	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/protocol"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

// Default connection settings.
const (
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultReadLimit        = 8 << 20
)

// Snapshot is the session state handed to the renderer. Static and Dynamic
// are either both set or both nil.
type Snapshot struct {
	Conn    overlay.ConnState
	Static  *world.StaticWorld
	Dynamic *world.DynamicWorld
	// Err is the failure that put the session in the error state.
	Err error
}

// State converts the snapshot into composer input with the given selection.
func (s Snapshot) State(sel overlay.Selection) overlay.State {
	return overlay.State{
		Conn:      s.Conn,
		Static:    s.Static,
		Dynamic:   s.Dynamic,
		Selection: sel,
	}
}

// Options configures a Session.
type Options struct {
	URL              string
	HandshakeTimeout time.Duration
	// ReadLimit caps the size of a single frame in bytes.
	ReadLimit int64
	// Validate checks every frame against the embedded JSON schemas.
	Validate bool
	Header   http.Header
	Logger   *logging.Logger
	// OnUpdate is called after every state change, outside the session lock.
	OnUpdate func(Snapshot)
}

// Session is one connection attempt to the monitor feed. It is safe for
// concurrent use.
type Session struct {
	opts      Options
	logger    *logging.Logger
	validator *protocol.Validator
	dialer    *websocket.Dialer

	mu      sync.Mutex
	conn    overlay.ConnState
	static  *world.StaticWorld
	dynamic *world.DynamicWorld
	err     error
}

// New creates a Session in the connecting state. It does not dial.
func New(opts Options) (*Session, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("session url: %w", errors.ErrInvalidInput)
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = DefaultReadLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	s := &Session{
		opts:   opts,
		logger: logger.WithComponent("session").With("url", opts.URL),
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: opts.HandshakeTimeout,
		},
		conn: overlay.ConnConnecting,
	}
	if opts.Validate {
		v, err := protocol.NewValidator()
		if err != nil {
			return nil, err
		}
		s.validator = v
	}
	return s, nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{Conn: s.conn, Err: s.err}
	if s.static != nil && s.dynamic != nil {
		snap.Static = s.static
		snap.Dynamic = s.dynamic
	}
	return snap
}

// Run dials the server and reads frames until ctx is done or the connection
// fails. A canceled context ends the session without an error.
func (s *Session) Run(ctx context.Context) error {
	s.update(func() { s.conn = overlay.ConnConnecting })
	s.logger.Info("dialing live server")

	conn, resp, err := s.dialer.DialContext(ctx, s.opts.URL, s.opts.Header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return s.fail(errors.NewConnectionError("dial failed", err).WithURL(s.opts.URL))
	}
	defer conn.Close()
	conn.SetReadLimit(s.opts.ReadLimit)

	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	})
	defer stop()

	s.logger.Info("connected to live server")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("session closed")
				return nil
			}
			return s.fail(errors.NewConnectionError("connection lost", err).WithURL(s.opts.URL))
		}
		if err := s.handleFrame(data); err != nil {
			s.logger.Warn("skipping frame", "error", err.Error(), "bytes", len(data))
		}
	}
}

// handleFrame applies one frame. Returned errors are frame errors; the
// connection stays open.
func (s *Session) handleFrame(data []byte) error {
	env, err := protocol.DecodeEnvelope(data)
	if err != nil {
		return err
	}
	if s.validator != nil {
		if err := s.validator.Validate(env.Type, env.Content); err != nil {
			return err
		}
	}

	switch env.Type {
	case protocol.TypeStatic:
		static, err := protocol.DecodeStatic(env.Content)
		if err != nil {
			return err
		}
		s.applyStatic(static)
	case protocol.TypeStep:
		dynamic, err := protocol.DecodeDynamic(env.Content)
		if err != nil {
			return err
		}
		s.applyDynamic(dynamic)
	}
	return nil
}

// applyStatic stores a new static snapshot. A static frame for a different
// simulation starts a new match, so the old step is dropped.
func (s *Session) applyStatic(static *world.StaticWorld) {
	s.logger.WithSimulation(static.SimID).Info("static snapshot received",
		"teams", len(static.Teams), "steps", static.Steps)
	s.update(func() {
		if s.static != nil && s.static.SimID != static.SimID {
			s.dynamic = nil
		}
		s.static = static
		s.refreshConnLocked()
	})
}

func (s *Session) applyDynamic(dynamic *world.DynamicWorld) {
	log := s.logger.WithStep(dynamic.Step)
	for _, name := range overlay.DuplicateTaskNames(dynamic.Tasks) {
		log.Warn("duplicate task name, first entry wins", "task", name)
	}
	log.Debug("step received", "tasks", len(dynamic.Tasks), "entities", len(dynamic.Entities))
	s.update(func() {
		s.dynamic = dynamic
		s.refreshConnLocked()
	})
}

// refreshConnLocked reports connected once both snapshots are present.
func (s *Session) refreshConnLocked() {
	if s.static != nil && s.dynamic != nil {
		s.conn = overlay.ConnConnected
	} else {
		s.conn = overlay.ConnConnecting
	}
}

func (s *Session) fail(err error) error {
	s.logger.Error("live session failed", "error", err.Error())
	s.update(func() {
		s.conn = overlay.ConnError
		s.err = err
	})
	return err
}

// update mutates state under the lock and then notifies OnUpdate.
func (s *Session) update(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if s.opts.OnUpdate != nil {
		s.opts.OnUpdate(snap)
	}
}

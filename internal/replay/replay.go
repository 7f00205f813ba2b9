// Package replay reads and writes recorded monitor feeds.
//
// A replay directory holds the static snapshot as JSON and the steps as
// zstd-compressed JSON lines split over chunk files:
//
//	replays/match-1/
//	  static.json
//	  steps-000000.jsonl.zst
//	  steps-000001.jsonl.zst
//
// Chunks are read in lexical order, so their names must sort by step.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gobwas/glob"
	"github.com/klauspost/compress/zstd"

	"github.com/Iron-Ham/gridwatch/internal/errors"
	"github.com/Iron-Ham/gridwatch/internal/logging"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

// Defaults for replay directories.
const (
	DefaultStaticFile = "static.json"
	DefaultPattern    = "steps-*.jsonl.zst"
)

// maxLineSize bounds a single step line.
const maxLineSize = 16 << 20

// Options configures how a replay directory is read.
type Options struct {
	// StaticFile is the name of the static snapshot inside the directory.
	StaticFile string
	// Pattern selects chunk files by base name.
	Pattern string
	// AllowEmpty accepts a directory without steps yet, as when following a
	// recording that just started.
	AllowEmpty bool
	Logger     *logging.Logger
}

// DefaultOptions returns the standard file layout.
func DefaultOptions() Options {
	return Options{
		StaticFile: DefaultStaticFile,
		Pattern:    DefaultPattern,
	}
}

// Replay is a loaded replay directory. It is safe for concurrent use.
type Replay struct {
	dir     string
	opts    Options
	matcher glob.Glob
	logger  *logging.Logger

	mu     sync.RWMutex
	static *world.StaticWorld
	steps  []*world.DynamicWorld
}

// Open loads the static snapshot and every chunk in dir.
func Open(dir string, opts Options) (*Replay, error) {
	if opts.StaticFile == "" {
		opts.StaticFile = DefaultStaticFile
	}
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	matcher, err := glob.Compile(opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid chunk pattern %q: %w", opts.Pattern, errors.ErrInvalidInput)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.NewReplayError("open directory", errors.ErrReplayNotFound).WithPath(dir)
	}

	r := &Replay{
		dir:     dir,
		opts:    opts,
		matcher: matcher,
		logger:  logger.WithComponent("replay").With("dir", dir),
	}
	if _, err := r.Reload(); err != nil {
		return nil, err
	}
	if r.Len() == 0 && !opts.AllowEmpty {
		return nil, errors.NewReplayError("open", errors.ErrReplayEmpty).WithPath(dir)
	}
	return r, nil
}

// Dir returns the replay directory.
func (r *Replay) Dir() string {
	return r.dir
}

// Static returns the static snapshot.
func (r *Replay) Static() *world.StaticWorld {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.static
}

// Len returns the number of loaded steps.
func (r *Replay) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.steps)
}

// Step returns the i-th recorded step.
func (r *Replay) Step(i int) (*world.DynamicWorld, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.steps) {
		return nil, errors.NewReplayError("step", errors.ErrStepOutOfRange).WithPath(r.dir).WithStep(i)
	}
	return r.steps[i], nil
}

// Reload re-reads the static snapshot and all chunks, and returns how many
// steps were added since the previous load. The newest chunk may still be
// in the middle of being written; steps decoded before the truncation are
// kept.
func (r *Replay) Reload() (int, error) {
	static, err := readStatic(filepath.Join(r.dir, r.opts.StaticFile))
	if err != nil {
		return 0, err
	}

	chunks, err := r.chunkPaths()
	if err != nil {
		return 0, err
	}

	var steps []*world.DynamicWorld
	for i, path := range chunks {
		got, err := ReadChunk(path)
		steps = append(steps, got...)
		if err != nil {
			if i == len(chunks)-1 {
				r.logger.Debug("newest chunk incomplete", "chunk", filepath.Base(path), "steps", len(got), "error", err.Error())
				break
			}
			return 0, err
		}
	}

	r.mu.Lock()
	added := len(steps) - len(r.steps)
	r.static = static
	r.steps = steps
	r.mu.Unlock()

	r.logger.WithSimulation(static.SimID).Debug("replay loaded", "chunks", len(chunks), "steps", len(steps))
	return added, nil
}

// chunkPaths lists chunk files in lexical order.
func (r *Replay) chunkPaths() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, errors.NewReplayError("list chunks", err).WithPath(r.dir)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && r.matcher.Match(e.Name()) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(r.dir, name)
	}
	return paths, nil
}

// isChunk reports whether a file name is a chunk of this replay.
func (r *Replay) isChunk(name string) bool {
	return r.matcher.Match(filepath.Base(name))
}

func readStatic(path string) (*world.StaticWorld, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewReplayError("read static snapshot", errors.ErrReplayNotFound).WithPath(path)
		}
		return nil, errors.NewReplayError("read static snapshot", err).WithPath(path)
	}
	var s world.StaticWorld
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.NewReplayError("decode static snapshot", err).WithPath(path)
	}
	return &s, nil
}

// ReadChunk decodes every step in a chunk file. On error it also returns the
// steps decoded before the failure.
func ReadChunk(path string) ([]*world.DynamicWorld, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewReplayError("open chunk", err).WithPath(path)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.NewReplayError("open zstd stream", err).WithPath(path)
	}
	defer dec.Close()

	return decodeSteps(dec, path)
}

func decodeSteps(r io.Reader, path string) ([]*world.DynamicWorld, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	var steps []*world.DynamicWorld
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var d world.DynamicWorld
		if err := json.Unmarshal(b, &d); err != nil {
			return steps, errors.NewReplayError(fmt.Sprintf("decode line %d", line), err).WithPath(path)
		}
		steps = append(steps, &d)
	}
	if err := sc.Err(); err != nil {
		return steps, errors.NewReplayError("read chunk", err).WithPath(path)
	}
	return steps, nil
}

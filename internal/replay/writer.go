package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/Iron-Ham/gridwatch/internal/errors"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

// WriteChunk writes steps to path as zstd-compressed JSON lines. The file is
// written under a temporary name and renamed into place, so a follower never
// reads a half-written chunk.
func WriteChunk(path string, steps []*world.DynamicWorld) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.NewReplayError("create chunk", err).WithPath(path)
	}

	if err := encodeSteps(f, steps); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return errors.NewReplayError("write chunk", err).WithPath(path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errors.NewReplayError("close chunk", err).WithPath(path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.NewReplayError("rename chunk", err).WithPath(path)
	}
	return nil
}

func encodeSteps(f *os.File, steps []*world.DynamicWorld) error {
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)
	je := json.NewEncoder(bw)
	for _, s := range steps {
		if err := je.Encode(s); err != nil {
			_ = enc.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// WriteStatic writes the static snapshot as name inside dir.
func WriteStatic(dir, name string, static *world.StaticWorld) error {
	if name == "" {
		name = DefaultStaticFile
	}
	path := filepath.Join(dir, name)
	data, err := json.MarshalIndent(static, "", "  ")
	if err != nil {
		return errors.NewReplayError("encode static snapshot", err).WithPath(path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewReplayError("write static snapshot", err).WithPath(path)
	}
	return nil
}

// ChunkName returns the default chunk file name for a chunk index.
func ChunkName(index int) string {
	return fmt.Sprintf("steps-%06d.jsonl.zst", index)
}

// Recorder buffers live steps and writes them to a replay directory in
// chunks of a fixed size. It is not safe for concurrent use.
type Recorder struct {
	dir       string
	chunkSize int
	buf       []*world.DynamicWorld
	chunk     int
	written   int
}

// DefaultChunkSize is the number of steps per chunk written by a Recorder.
const DefaultChunkSize = 100

// NewRecorder prepares dir for recording.
func NewRecorder(dir string, chunkSize int) (*Recorder, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.NewReplayError("create directory", err).WithPath(dir)
	}
	return &Recorder{dir: dir, chunkSize: chunkSize}, nil
}

// SetStatic writes the static snapshot.
func (r *Recorder) SetStatic(static *world.StaticWorld) error {
	return WriteStatic(r.dir, DefaultStaticFile, static)
}

// Add buffers a step, flushing a full chunk to disk.
func (r *Recorder) Add(step *world.DynamicWorld) error {
	r.buf = append(r.buf, step)
	if len(r.buf) >= r.chunkSize {
		return r.Flush()
	}
	return nil
}

// Flush writes buffered steps as the next chunk.
func (r *Recorder) Flush() error {
	if len(r.buf) == 0 {
		return nil
	}
	if err := WriteChunk(filepath.Join(r.dir, ChunkName(r.chunk)), r.buf); err != nil {
		return err
	}
	r.written += len(r.buf)
	r.chunk++
	r.buf = nil
	return nil
}

// Written returns the number of steps flushed to disk.
func (r *Recorder) Written() int {
	return r.written
}

// Close flushes the remaining steps.
func (r *Recorder) Close() error {
	return r.Flush()
}

package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// RotationConfig controls size-based rotation of the log file.
type RotationConfig struct {
	// MaxSizeMB is the size limit of the live file. 0 disables rotation.
	MaxSizeMB int
	// MaxBackups is how many rotated files are kept, named <file>.1 (newest)
	// through <file>.N. With 0 the live file is simply truncated.
	MaxBackups int
	// Compress gzips rotated files in the background.
	Compress bool
}

// DefaultRotationConfig returns the rotation used when nothing is configured.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		MaxSizeMB:  10,
		MaxBackups: 3,
		Compress:   true,
	}
}

var errWriterClosed = errors.New("log file is closed")

// RotatingWriter appends to a log file and moves it aside once a write
// would take it past the size limit. It is safe for concurrent use.
type RotatingWriter struct {
	path       string
	maxSizeB   int64
	maxBackups int
	compress   bool

	mu   sync.Mutex
	file *os.File
	size int64
}

// NewRotatingWriter opens (or creates) the log file at path, creating its
// directory if needed.
func NewRotatingWriter(path string, config RotationConfig) (*RotatingWriter, error) {
	rw := &RotatingWriter{
		path:       path,
		maxSizeB:   int64(config.MaxSizeMB) << 20,
		maxBackups: config.MaxBackups,
		compress:   config.Compress,
	}
	if err := rw.open(); err != nil {
		return nil, err
	}
	return rw, nil
}

// open must be called with mu held or before rw is shared.
func (rw *RotatingWriter) open() error {
	if err := os.MkdirAll(filepath.Dir(rw.path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(rw.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	rw.file, rw.size = f, info.Size()
	return nil
}

// Write implements io.Writer.
func (rw *RotatingWriter) Write(p []byte) (int, error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.file == nil {
		return 0, errWriterClosed
	}

	if rw.maxSizeB > 0 && rw.size > 0 && rw.size+int64(len(p)) > rw.maxSizeB {
		if err := rw.rotate(); err != nil {
			// The logger cannot log its own failure; keep writing to
			// whatever file is open.
			fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
			if rw.file == nil {
				if err := rw.open(); err != nil {
					return 0, err
				}
			}
		}
	}

	n, err := rw.file.Write(p)
	rw.size += int64(n)
	return n, err
}

// rotate must be called with mu held.
func (rw *RotatingWriter) rotate() error {
	if err := rw.closeFile(); err != nil {
		return err
	}

	rw.rotateBackups()

	if rw.maxBackups <= 0 {
		if err := os.Remove(rw.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove log file: %w", err)
		}
		return rw.open()
	}

	backup := rw.backupPath(1)
	if err := os.Rename(rw.path, backup); err != nil {
		if openErr := rw.open(); openErr != nil {
			return fmt.Errorf("failed to rename log file and reopen: %w", openErr)
		}
		return fmt.Errorf("failed to rename log file: %w", err)
	}
	if rw.compress {
		go rw.compressFile(backup)
	}
	return rw.open()
}

// rotateBackups frees <file>.1 by dropping the oldest backup and shifting
// the rest up by one. Compressed and plain backups are handled alike.
func (rw *RotatingWriter) rotateBackups() {
	if rw.maxBackups <= 0 {
		removeBackup(rw.backupPath(1))
		return
	}

	removeBackup(rw.backupPath(rw.maxBackups))
	for i := rw.maxBackups - 1; i >= 1; i-- {
		from, to := rw.backupPath(i), rw.backupPath(i+1)
		switch {
		case fileExists(from + ".gz"):
			_ = os.Rename(from+".gz", to+".gz")
		case fileExists(from):
			_ = os.Rename(from, to)
		}
	}
}

func (rw *RotatingWriter) backupPath(n int) string {
	return fmt.Sprintf("%s.%d", rw.path, n)
}

func removeBackup(path string) {
	_ = os.Remove(path)
	_ = os.Remove(path + ".gz")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// compressFile replaces path with path.gz. It runs on its own goroutine, so
// failures are reported on stderr and leave the plain backup in place.
func (rw *RotatingWriter) compressFile(path string) {
	gzPath := path + ".gz"
	if err := gzipFile(path, gzPath); err != nil {
		_ = os.Remove(gzPath)
		fmt.Fprintf(os.Stderr, "Warning: failed to compress log file %s: %v\n", path, err)
		return
	}
	_ = os.Remove(path)
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	zw, err := gzip.NewWriterLevel(out, gzip.BestSpeed)
	if err != nil {
		_ = out.Close()
		return err
	}
	_, copyErr := io.Copy(zw, in)
	return errors.Join(copyErr, zw.Close(), out.Close())
}

// closeFile must be called with mu held.
func (rw *RotatingWriter) closeFile() error {
	f := rw.file
	rw.file = nil
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

// Sync flushes the log file to disk.
func (rw *RotatingWriter) Sync() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.file == nil {
		return nil
	}
	return rw.file.Sync()
}

// Close syncs and closes the log file. Closing twice is a no-op.
func (rw *RotatingWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.file == nil {
		return nil
	}
	return rw.closeFile()
}

// CurrentSize returns the size of the live log file in bytes.
func (rw *RotatingWriter) CurrentSize() int64 {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.size
}

// FilePath returns the path of the live log file.
func (rw *RotatingWriter) FilePath() string {
	return rw.path
}

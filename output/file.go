package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// backupLayout is the timestamp part of a rotated file name
const backupLayout = "2006-01-02T15-04-05"

// ErrClosed is returned by writes to a closed File
var ErrClosed = errors.New("output: file closed")

// Rotation controls when a File is rotated. The zero value never rotates.
type Rotation struct {
	// MaxSize is the size in bytes that triggers rotation (0 = no size rotation)
	MaxSize int64 `yaml:"max_size"`
	// MaxAge is how long a file is written before rotation (0 = no time rotation)
	MaxAge time.Duration `yaml:"max_age"`
	// MaxBackups is the number of rotated files to keep (0 = keep all)
	MaxBackups int `yaml:"max_backups"`
}

func (r Rotation) enabled() bool {
	return r.MaxSize > 0 || r.MaxAge > 0
}

// File is an append-only log file with size and age based rotation
type File struct {
	filename string
	rotation Rotation
	now      func() time.Time

	mu       sync.Mutex
	file     *os.File
	size     int64
	openedAt time.Time
	seq      int
}

// Open returns the writer for an output name. "stdout" and "stderr" (or an
// empty name) select the process streams and return a nil Closer; anything
// else is opened as a File.
func Open(name string, rotation Rotation) (io.Writer, io.Closer, error) {
	switch name {
	case "", "stderr":
		return os.Stderr, nil, nil
	case "stdout":
		return os.Stdout, nil, nil
	default:
		f, err := OpenFile(name, rotation)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	}
}

// OpenFile opens filename for appending, creating it and its directory when
// missing.
func OpenFile(filename string, rotation Rotation) (*File, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if rotation.MaxSize < 0 || rotation.MaxAge < 0 || rotation.MaxBackups < 0 {
		return nil, fmt.Errorf("negative rotation setting: %+v", rotation)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, err
	}

	f := &File{filename: filename, rotation: rotation, now: time.Now}
	if err := f.open(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) open() error {
	file, err := os.OpenFile(f.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return err
	}
	f.file = file
	f.size = info.Size()
	f.openedAt = f.now()
	return nil
}

// Name returns the path of the active file
func (f *File) Name() string {
	return f.filename
}

// Write appends p, rotating first when a limit has been reached
func (f *File) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return 0, ErrClosed
	}
	if f.needsRotation(int64(len(p))) {
		if err := f.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := f.file.Write(p)
	f.size += int64(n)
	return n, err
}

// needsRotation reports whether writing n more bytes should go to a new file.
// An empty file is never rotated, so a single oversized record still lands.
func (f *File) needsRotation(n int64) bool {
	if !f.rotation.enabled() || f.size == 0 {
		return false
	}
	if f.rotation.MaxSize > 0 && f.size+n > f.rotation.MaxSize {
		return true
	}
	return f.rotation.MaxAge > 0 && f.now().Sub(f.openedAt) >= f.rotation.MaxAge
}

// Rotate closes the active file, renames it with a timestamp suffix and
// opens a new one
func (f *File) Rotate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return ErrClosed
	}
	return f.rotate()
}

func (f *File) rotate() error {
	if err := f.file.Sync(); err != nil {
		return err
	}
	if err := f.file.Close(); err != nil {
		return err
	}
	f.file = nil

	if err := os.Rename(f.filename, f.backupName()); err != nil {
		// keep writing to the original file
		if openErr := f.open(); openErr != nil {
			return fmt.Errorf("rotation failed: %w, reopen failed: %w", err, openErr)
		}
		return fmt.Errorf("rotation failed: %w", err)
	}

	if f.rotation.MaxBackups > 0 {
		f.removeOldBackups()
	}
	return f.open()
}

// backupName returns an unused name for the file being rotated. Names sort
// in rotation order.
func (f *File) backupName() string {
	stamp := f.now().Format(backupLayout)
	for {
		f.seq++
		name := fmt.Sprintf("%s.%s.%06d", f.filename, stamp, f.seq)
		if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
			return name
		}
	}
}

// Backups returns the rotated files of this File, oldest first. Only names
// of the form <file>.<timestamp>.<seq> count; other files sharing the
// prefix are left alone.
func (f *File) Backups() ([]string, error) {
	dir := filepath.Dir(f.filename)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	prefix := filepath.Base(f.filename) + "."
	var backups []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if isBackupSuffix(strings.TrimPrefix(e.Name(), prefix)) {
			backups = append(backups, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(backups)
	return backups, nil
}

// isBackupSuffix reports whether s is "<backupLayout>.<seq>" with a zero
// padded sequence of at least six digits
func isBackupSuffix(s string) bool {
	stamp, seq, ok := strings.Cut(s, ".")
	if !ok || len(seq) < 6 {
		return false
	}
	if _, err := time.Parse(backupLayout, stamp); err != nil {
		return false
	}
	for _, c := range seq {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (f *File) removeOldBackups() {
	backups, err := f.Backups()
	if err != nil || len(backups) <= f.rotation.MaxBackups {
		return
	}
	for _, name := range backups[:len(backups)-f.rotation.MaxBackups] {
		if err := os.Remove(name); err != nil {
			return
		}
	}
}

// Sync commits the active file to stable storage
func (f *File) Sync() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return ErrClosed
	}
	return f.file.Sync()
}

// Close syncs and closes the active file. Further writes fail with ErrClosed.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return nil
	}
	syncErr := f.file.Sync()
	closeErr := f.file.Close()
	f.file = nil
	if syncErr != nil {
		return syncErr
	}
	return closeErr
}

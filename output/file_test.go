package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func readFile(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestFile_Append(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "app.log")
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filename, []byte("existing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenFile(filename, Rotation{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("appended\n")); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if got := readFile(t, filename); got != "existing\nappended\n" {
		t.Errorf("file content = %q", got)
	}
	if _, err := f.Write([]byte("late")); !errors.Is(err, ErrClosed) {
		t.Errorf("Write after Close error = %v, want ErrClosed", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestFile_CreatesDirectory(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "a", "b", "app.log")
	f, err := OpenFile(filename, Rotation{})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := os.Stat(filename); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestFile_MaxSize(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	f, err := OpenFile(filename, Rotation{MaxSize: 100})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	line := []byte(strings.Repeat("x", 39) + "\n")
	for i := 0; i < 10; i++ {
		if _, err := f.Write(line); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := f.Backups()
	if err != nil {
		t.Fatal(err)
	}
	// two 40 byte lines fit in 100 bytes
	if len(backups) != 4 {
		t.Fatalf("got %d backups, want 4: %v", len(backups), backups)
	}
	for _, b := range backups {
		if got := readFile(t, b); len(got) != 80 {
			t.Errorf("backup %s holds %d bytes, want 80", b, len(got))
		}
	}
	if got := readFile(t, filename); len(got) != 80 {
		t.Errorf("active file holds %d bytes, want 80", len(got))
	}
}

func TestFile_OversizedRecord(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	f, err := OpenFile(filename, Rotation{MaxSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	big := bytes.Repeat([]byte("y"), 50)
	if _, err := f.Write(big); err != nil {
		t.Fatal(err)
	}
	backups, _ := f.Backups()
	if len(backups) != 0 {
		t.Errorf("an empty file was rotated: %v", backups)
	}
}

func TestFile_MaxBackups(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	f, err := OpenFile(filename, Rotation{MaxSize: 10, MaxBackups: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	for i := 0; i < 20; i++ {
		if _, err := f.Write([]byte("record-" + string(rune('a'+i)) + "\n")); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := f.Backups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("got %d backups, want 2: %v", len(backups), backups)
	}
	// the newest backups survive
	if got := readFile(t, backups[0]); got != "record-r\n" {
		t.Errorf("oldest kept backup = %q, want record-r", got)
	}
	if got := readFile(t, backups[1]); got != "record-s\n" {
		t.Errorf("newest backup = %q, want record-s", got)
	}
	if got := readFile(t, filename); got != "record-t\n" {
		t.Errorf("active file = %q, want record-t", got)
	}
}

func TestFile_MaxAge(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	f, err := OpenFile(filename, Rotation{MaxAge: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f.now = func() time.Time { return now }
	f.openedAt = now

	f.Write([]byte("first\n"))
	now = now.Add(30 * time.Minute)
	f.Write([]byte("second\n"))
	now = now.Add(31 * time.Minute)
	f.Write([]byte("third\n"))

	backups, err := f.Backups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1: %v", len(backups), backups)
	}
	if !strings.Contains(filepath.Base(backups[0]), "2026-01-02T04-05-05") {
		t.Errorf("backup name %q lacks the rotation timestamp", backups[0])
	}
	if got := readFile(t, backups[0]); got != "first\nsecond\n" {
		t.Errorf("backup = %q", got)
	}
	if got := readFile(t, filename); got != "third\n" {
		t.Errorf("active file = %q", got)
	}
}

func TestFile_ConcurrentWrites(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	f, err := OpenFile(filename, Rotation{MaxSize: 512})
	if err != nil {
		t.Fatal(err)
	}

	line := []byte(strings.Repeat("z", 31) + "\n")
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				f.Write(line)
			}
		}()
	}
	wg.Wait()
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	backups, _ := f.Backups()
	total := len(readFile(t, filename))
	for _, b := range backups {
		content := readFile(t, b)
		if len(content)%len(line) != 0 {
			t.Errorf("backup %s holds a split record", b)
		}
		total += len(content)
	}
	if total != 8*50*len(line) {
		t.Errorf("wrote %d bytes in total, want %d", total, 8*50*len(line))
	}
}

func TestOpen(t *testing.T) {
	w, c, err := Open("stdout", Rotation{})
	if err != nil || w != os.Stdout || c != nil {
		t.Errorf("Open(stdout) = %v, %v, %v", w, c, err)
	}
	w, c, err = Open("", Rotation{})
	if err != nil || w != os.Stderr || c != nil {
		t.Errorf("Open(\"\") = %v, %v, %v", w, c, err)
	}

	filename := filepath.Join(t.TempDir(), "app.log")
	w, c, err = Open(filename, Rotation{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := w.(*File); !ok || c == nil {
		t.Fatalf("Open(file) returned %T, %v", w, c)
	}
	c.Close()

	if _, err := OpenFile("", Rotation{}); err == nil {
		t.Error("OpenFile accepted an empty name")
	}
	if _, err := OpenFile(filename, Rotation{MaxSize: -1}); err == nil {
		t.Error("OpenFile accepted a negative size")
	}
}

func TestFile_PruneKeepsUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "app.log")
	unrelated := []string{
		"app.log.keep",
		"app.log.gz",
		"app.log.2026-01-02T03-04-05",
		"app.log.2026-01-02T03-04-05.12ab56",
		"app.log.not-a-date.000001",
	}
	for _, name := range unrelated {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("mine\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	f, err := OpenFile(filename, Rotation{MaxSize: 10, MaxBackups: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	for i := 0; i < 5; i++ {
		if _, err := f.Write([]byte("record-" + string(rune('a'+i)) + "\n")); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := f.Backups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1: %v", len(backups), backups)
	}
	for _, name := range unrelated {
		if got := readFile(t, filepath.Join(dir, name)); got != "mine\n" {
			t.Errorf("%s was touched by pruning", name)
		}
	}
}

func TestFile_GlobCharactersInPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs[1]")
	filename := filepath.Join(dir, "app*.log")
	f, err := OpenFile(filename, Rotation{MaxSize: 10, MaxBackups: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	for i := 0; i < 4; i++ {
		if _, err := f.Write([]byte("record-" + string(rune('a'+i)) + "\n")); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := f.Backups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("got %d backups, want 2: %v", len(backups), backups)
	}
	if got := readFile(t, backups[1]); got != "record-c\n" {
		t.Errorf("newest backup = %q, want record-c", got)
	}
}

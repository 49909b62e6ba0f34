package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
	seen  chan string
}

func newRecorder() *recorder {
	return &recorder{seen: make(chan string, 16)}
}

func (r *recorder) handle(_ context.Context, path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	r.seen <- path
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

func startWatcher(t *testing.T, w *Watcher) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run returned error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	// Give fsnotify a moment to register the directory.
	time.Sleep(50 * time.Millisecond)
	return cancel
}

func TestMatches(t *testing.T) {
	w := New(t.TempDir(), func(context.Context, string) {})
	cases := map[string]bool{
		"movie.mkv":      true,
		"MOVIE.MP4":      true,
		"clip.m2ts":      true,
		"notes.txt":      false,
		"movie.mkv.part": false,
		"no-extension":   false,
	}
	for name, want := range cases {
		if got := w.Matches(name); got != want {
			t.Fatalf("Matches(%q) = %v, want %v", name, got, want)
		}
	}

	custom := New(t.TempDir(), func(context.Context, string) {}, WithExtensions("Y4M", ".ivf"))
	if !custom.Matches("a.y4m") || !custom.Matches("b.IVF") || custom.Matches("c.mkv") {
		t.Fatal("custom extensions not applied")
	}
}

func TestRunReportsSettledMediaFileOnce(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, New(dir, rec.handle, WithDebounce(100*time.Millisecond)))

	target := filepath.Join(dir, "episode.mkv")
	f, err := os.Create(target)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := f.WriteString("chunk"); err != nil {
			t.Fatalf("write: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	f.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	select {
	case got := <-rec.seen:
		if got != target {
			t.Fatalf("unexpected path %s", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for media file")
	}

	time.Sleep(300 * time.Millisecond)
	if n := rec.count(); n != 1 {
		t.Fatalf("expected one report, got %d", n)
	}
}

func TestRunRejectsMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), func(context.Context, string) {})
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

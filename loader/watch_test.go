package loader_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/reoring/formkit/loader"
)

func TestWatcher_ReportsWritesToWatchedFilesOnly(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "fields.yaml")
	other := filepath.Join(dir, "other.yaml")
	for _, p := range []string{watched, other} {
		if err := os.WriteFile(p, []byte("a: {type: string}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	changed := make(chan string, 16)
	w, err := loader.NewWatcher([]string{watched}, func(p string) { changed <- p }, zerolog.Nop())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("b: {type: number}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(watched, []byte("a: {type: number}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		want, _ := filepath.Abs(watched)
		if got != want {
			t.Fatalf("got change for %s, want %s", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported")
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := loader.NewWatcher([]string{filepath.Join(t.TempDir(), "fields.json")}, func(string) {}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

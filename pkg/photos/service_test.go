package photos

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeSource hands back a canned frame.
type fakeSource struct {
	frame []byte
	err   error
}

func (f *fakeSource) Frame() ([]byte, error) { return f.frame, f.err }

func TestService_Capture(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	svc := NewService(&fakeSource{frame: []byte("framedata")}, store, nil)

	name, err := svc.Capture("row3")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !strings.Contains(name, "_row3_") {
		t.Errorf("name %q missing tag", name)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	if err != nil {
		t.Fatalf("reading capture: %v", err)
	}
	if string(data) != "framedata" {
		t.Errorf("capture contents: got %q, want %q", data, "framedata")
	}
}

func TestService_CaptureCameraError(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	svc := NewService(&fakeSource{err: errors.New("sensor gone")}, store, nil)

	if _, err := svc.Capture("row1"); err == nil {
		t.Fatal("Capture: expected error")
	}

	list, err := store.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("failed capture left %d files behind", len(list))
	}
}

func TestWatcher_NewJPEG(t *testing.T) {
	dir := t.TempDir()

	seen := make(chan string, 4)
	w, err := Watch(dir, func(name string) { seen <- name })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "field.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing photo: %v", err)
	}

	select {
	case name := <-seen:
		if name != "field.jpg" {
			t.Errorf("got %q, want %q", name, "field.jpg")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never reported the new photo")
	}
}

func TestWatcher_IgnoresNonJPEG(t *testing.T) {
	dir := t.TempDir()

	seen := make(chan string, 4)
	w, err := Watch(dir, func(name string) { seen <- name })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "photos.db"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	select {
	case name := <-seen:
		t.Errorf("watcher reported %q for a non-photo", name)
	case <-time.After(300 * time.Millisecond):
	}
}

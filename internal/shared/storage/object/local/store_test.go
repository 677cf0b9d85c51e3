package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cat-resume-api/internal/shared/storage/object"
)

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	n, err := store.SaveWithKey(ctx, "audio/cat_audio_1.mp3", "audio/mpeg", strings.NewReader("ID3 data"))
	if err != nil {
		t.Fatalf("SaveWithKey: %v", err)
	}
	if n != int64(len("ID3 data")) {
		t.Fatalf("expected %d bytes, got %d", len("ID3 data"), n)
	}
	if _, err := os.Stat(filepath.Join(dir, "audio", "cat_audio_1.mp3")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	rc, err := store.Open(ctx, "audio/cat_audio_1.mp3")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != "ID3 data" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestOpenMissingObject(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Open(context.Background(), "audio/cat_audio_missing.mp3")
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"../escape.mp3", "/etc/passwd", ""} {
		if _, err := store.SaveWithKey(ctx, key, "audio/mpeg", strings.NewReader("x")); !errors.Is(err, object.ErrInvalidKey) {
			t.Fatalf("SaveWithKey(%q): expected ErrInvalidKey, got %v", key, err)
		}
	}
}

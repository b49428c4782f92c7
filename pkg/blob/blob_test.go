package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"kennel-registry/pkg/utils"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	info, err := s.Put(ctx, "dogs/abc/photo.jpg", strings.NewReader("woof"), "image/jpeg")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 4 || info.ContentType != "image/jpeg" {
		t.Fatalf("unexpected info %+v", info)
	}

	if _, err := s.Put(ctx, "dogs/abc/photo.jpg", strings.NewReader("again"), "image/jpeg"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	got, rc, err := s.Get(ctx, "dogs/abc/photo.jpg")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "woof" || got.ContentType != "image/jpeg" {
		t.Fatalf("get returned %q %+v", body, got)
	}

	existed, err := s.Delete(ctx, "dogs/abc/photo.jpg")
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	existed, err = s.Delete(ctx, "dogs/abc/photo.jpg")
	if err != nil || existed {
		t.Fatalf("second delete: existed=%v err=%v", existed, err)
	}

	if _, _, err := s.Get(ctx, "dogs/abc/photo.jpg"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFilesystemStore(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem store: %v", err)
	}
	exerciseStore(t, s)
}

func TestFilesystemRejectsTraversal(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem store: %v", err)
	}
	for _, key := range []string{"../escape", "/abs/path", "  "} {
		if _, err := s.Put(context.Background(), key, strings.NewReader("x"), ""); err == nil {
			t.Fatalf("key %q accepted", key)
		}
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), utils.BlobConfig{Driver: "memory"})
	if err != nil || s.Driver() != DriverMemory {
		t.Fatalf("open memory: %v %v", s, err)
	}

	s, err = Open(context.Background(), utils.BlobConfig{Driver: "fs", FSRoot: t.TempDir()})
	if err != nil || s.Driver() != DriverFilesystem {
		t.Fatalf("open fs: %v %v", s, err)
	}

	if _, err := Open(context.Background(), utils.BlobConfig{Driver: "tape"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
	if _, err := Open(context.Background(), utils.BlobConfig{Driver: "s3"}); err == nil {
		t.Fatalf("expected error for s3 without bucket")
	}
}

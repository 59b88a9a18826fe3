package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDispatcherRejectsDisallowedType(t *testing.T) {
	env := testEnv(t)
	d := &Dispatcher{env: env, photo: NewPhoto(env), audio: NewAudio(env), video: NewVideo(env), file: NewAnyFile(env)}

	src := filepath.Join(t.TempDir(), "archive.bin")
	// Minimal zip local file header magic.
	if err := os.WriteFile(src, []byte("PK\x03\x04rest of the archive"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	out, err := d.Upload(context.Background(), src, 0)
	if !errors.Is(err, ErrDisallowedMimeType) {
		t.Fatalf("error = %v, want ErrDisallowedMimeType", err)
	}
	if out.OK {
		t.Fatal("outcome reports OK for rejected upload")
	}
	// The gate fires before any worker touches the tree.
	if _, statErr := os.Stat(src); statErr != nil {
		t.Error("rejected source must stay in place")
	}
	if entries := dirEntries(t, env.Cfg.StorageRoot); len(entries) != 0 {
		t.Errorf("storage tree touched for rejected upload: %v", entries)
	}
}

func TestDispatcherRoutesImagesToPhoto(t *testing.T) {
	env := testEnv(t)
	d := &Dispatcher{env: env, photo: NewPhoto(env), audio: NewAudio(env), video: NewVideo(env), file: NewAnyFile(env)}

	src := filepath.Join(t.TempDir(), "upload.png")
	createTestImage(t, src, 300, 200)

	out, err := d.Upload(context.Background(), src, 0)
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if got := out.GetString("type"); got != "photos" {
		t.Errorf("routed type = %q, want photos", got)
	}
}

func TestDispatcherRoutesDocumentsToAnyFile(t *testing.T) {
	env := testEnv(t)
	d := &Dispatcher{env: env, photo: NewPhoto(env), audio: NewAudio(env), video: NewVideo(env), file: NewAnyFile(env)}

	src := filepath.Join(t.TempDir(), "doc.bin")
	if err := os.WriteFile(src, []byte("%PDF-1.4 minimal"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	out, err := d.Upload(context.Background(), src, 0)
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if got := out.GetString("type"); got != "files" {
		t.Errorf("routed type = %q, want files", got)
	}
}

func TestDispatcherMissingSource(t *testing.T) {
	env := testEnv(t)
	d := &Dispatcher{env: env}

	_, err := d.Upload(context.Background(), filepath.Join(t.TempDir(), "absent"), 0)
	if !errors.Is(err, ErrInvalidSource) {
		t.Fatalf("error = %v, want ErrInvalidSource", err)
	}
}

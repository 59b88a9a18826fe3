package worker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ajur-media/fsnews.media/pkg/schema"
)

func TestUnlinkStoredTitleImages(t *testing.T) {
	env := testEnv(t)
	d := &Dispatcher{env: env}

	dir := env.Paths.AbsolutePath(schema.MediaTypeTitle, testClock)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"cover.jpg", "resize_cover.jpg", "small_cover.jpg", "unrelated.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	out, err := d.UnlinkStoredTitleImages("cover.jpg", testClock)
	if err != nil {
		t.Fatalf("UnlinkStoredTitleImages returned error: %v", err)
	}
	if got := out.GetInt("deleted_count"); got != 3 {
		t.Errorf("deleted_count = %d, want 3", got)
	}

	entries := dirEntries(t, dir)
	if len(entries) != 1 || entries[0] != "unrelated.jpg" {
		t.Errorf("surviving files = %v, want only unrelated.jpg", entries)
	}
}

func TestUnlinkStoredTitleImagesMissingFiles(t *testing.T) {
	env := testEnv(t)
	d := &Dispatcher{env: env}

	out, err := d.UnlinkStoredTitleImages("gone.jpg", testClock)
	if err != nil {
		t.Fatalf("UnlinkStoredTitleImages returned error: %v", err)
	}
	if got := out.GetInt("deleted_count"); got != 0 {
		t.Errorf("deleted_count = %d, want 0", got)
	}
	// One per-file message per catalog prefix.
	if len(out.Messages) != 3 {
		t.Errorf("messages = %v, want 3 failure notes", out.Messages)
	}

	files, ok := out.GetData("files").([]RemovedFile)
	if !ok {
		t.Fatalf("files data has unexpected type %T", out.GetData("files"))
	}
	for _, f := range files {
		if f.Removed {
			t.Errorf("%s reported removed, nothing existed", f.File)
		}
	}
}

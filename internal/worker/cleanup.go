package worker

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ajur-media/fsnews.media/pkg/schema"
)

// RemovedFile records one deletion attempt of the cleanup batch.
type RemovedFile struct {
	File    string `json:"file"`
	Removed bool   `json:"removed"`
}

// UnlinkStoredTitleImages deletes a stored title image and every derivative
// declared for titles in the catalog. The deletion set is enumerated from
// the catalog prefixes, never swept from the directory. Individual failures
// (typically already-absent files) are recorded, not fatal to the batch.
func (d *Dispatcher) UnlinkStoredTitleImages(filename string, cdate time.Time) (*schema.Outcome, error) {
	log := d.env.Logger.With("op", "unlink_title_images", "filename", filename)
	out := schema.NewOutcome()

	dir := d.env.Paths.AbsolutePath(schema.MediaTypeTitle, cdate)

	var files []RemovedFile
	deleted := 0
	for _, prefix := range d.env.Catalog.Prefixes(schema.MediaTypeTitle) {
		fn := filepath.Join(dir, prefix+filename)
		err := os.Remove(fn)
		removed := err == nil
		if removed {
			deleted++
		} else {
			out.AddMessage("cannot remove %s: %v", fn, err)
		}
		log.Debug("removing title derivative", "file", fn, "removed", removed)
		files = append(files, RemovedFile{File: fn, Removed: removed})
	}

	out.SetData("deleted_count", deleted)
	out.SetData("files", files)
	return out, nil
}

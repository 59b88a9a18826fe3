package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajur-media/fsnews.media/internal/img"
	"github.com/ajur-media/fsnews.media/internal/remote"
	"github.com/ajur-media/fsnews.media/pkg/schema"
)

// Rutube mirrors the Youtube worker for the rutube host. Until the host
// integration lands, previews are generated from the caller's default image
// and titles fall back to the default.
type Rutube struct {
	env    *Env
	client *remote.Rutube
}

func NewRutube(env *Env) *Rutube {
	return &Rutube{env: env, client: remote.NewRutube()}
}

func (r *Rutube) Title(ctx context.Context, videoID, def string) (*schema.Outcome, error) {
	out := schema.NewOutcome()
	out.SetData("title", r.client.VideoTitle(ctx, videoID, def))
	return out, nil
}

// ImportPreview stores the derivative set for a rutube link, generated from
// defaultPreview.
func (r *Rutube) ImportPreview(ctx context.Context, rawURL, defaultPreview string) (*schema.Outcome, error) {
	log := r.env.Logger.With("worker", "rutube", "url", rawURL)
	out := schema.NewOutcome()
	out.AddMessage("accepted video URL [%s]", rawURL)

	now := r.env.Now()
	dir := r.env.Paths.AbsolutePath(schema.MediaTypeYoutube, now)
	if err := r.env.Paths.EnsureDir(dir); err != nil {
		log.Error("ensure storage directory", "dir", dir, "err", err)
		return out.Fail("storage directory: %v", err), err
	}

	filename, err := r.env.Paths.AllocateUnusedFilename(dir, r.env.Cfg.RadixLength, "jpg")
	if err != nil {
		log.Error("allocate preview filename", "err", err)
		return out.Fail("allocate preview filename: %v", err), err
	}

	specs := r.env.Catalog.SizesFor(schema.MediaTypeYoutube)
	for _, spec := range specs {
		sized := filepath.Join(dir, spec.Prefix+filename)
		w, h, err := img.Resize(defaultPreview, sized, spec)
		if err != nil {
			for _, inner := range specs {
				_ = os.Remove(filepath.Join(dir, inner.Prefix+filename))
			}
			log.Error("preview derivative failed", "size", spec.SizeKey, "err", err)
			wrapped := fmt.Errorf("%w: size %s: %v", ErrDerivativeGeneration, spec.SizeKey, err)
			return out.Fail("preview derivative [%s]: %v", spec.SizeKey, err), wrapped
		}
		out.AddThumbnail(schema.GeneratedFile{
			SizeKey: spec.SizeKey,
			Target:  sized,
			Width:   w,
			Height:  h,
			Quality: spec.Quality,
		})
	}

	out.SetData("url", rawURL)
	out.SetData("target_filename", filename)
	out.SetData("path", dir)
	out.SetData("relative_path", r.env.Paths.RelativePath(schema.MediaTypeYoutube, now))
	out.SetData("status", schema.StatusReady)
	out.SetData("type", string(schema.MediaTypeYoutube))
	return out, nil
}

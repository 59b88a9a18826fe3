package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajur-media/fsnews.media/internal/img"
	"github.com/ajur-media/fsnews.media/internal/remote"
	"github.com/ajur-media/fsnews.media/pkg/schema"
)

// Youtube imports externally hosted videos: it resolves titles and pulls the
// hosted preview image into the storage tree, generating the same derivative
// set a local video would get.
type Youtube struct {
	env    *Env
	client *remote.Youtube
}

func NewYoutube(env *Env) *Youtube {
	return &Youtube{env: env, client: remote.NewYoutube()}
}

// WithClient swaps the remote client, for tests.
func (y *Youtube) WithClient(c *remote.Youtube) *Youtube {
	y.client = c
	return y
}

// Title fetches the hosted video title, falling back to def.
func (y *Youtube) Title(ctx context.Context, videoID, def string) (*schema.Outcome, error) {
	out := schema.NewOutcome()
	title := y.client.VideoTitle(ctx, videoID, def)
	if title == def {
		out.AddMessage("title lookup fell back to default for %s", videoID)
	}
	out.SetData("title", title)
	return out, nil
}

// ImportPreview downloads the preview image for a hosted video URL and
// generates the youtube derivative set from it. defaultPreview is a local
// image used when the host has no preview for the video.
func (y *Youtube) ImportPreview(ctx context.Context, rawURL, defaultPreview string) (*schema.Outcome, error) {
	log := y.env.Logger.With("worker", "youtube", "url", rawURL)
	out := schema.NewOutcome()

	videoID, err := remote.ParseVideoID(rawURL)
	if err != nil {
		log.Warn("unrecognized video URL", "err", err)
		return out.Fail("unrecognized video URL: %v", err), fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	out.AddMessage("accepted video URL [%s]", rawURL)

	now := y.env.Now()
	dir := y.env.Paths.AbsolutePath(schema.MediaTypeYoutube, now)
	if err := y.env.Paths.EnsureDir(dir); err != nil {
		log.Error("ensure storage directory", "dir", dir, "err", err)
		return out.Fail("storage directory: %v", err), err
	}

	filename, err := y.env.Paths.AllocateUnusedFilename(dir, y.env.Cfg.RadixLength, "jpg")
	if err != nil {
		log.Error("allocate preview filename", "err", err)
		return out.Fail("allocate preview filename: %v", err), err
	}
	target := filepath.Join(dir, filename)
	out.AddMessage("allocated preview filename %s", target)

	source := target
	if err := y.client.DownloadPreview(ctx, videoID, target); err != nil {
		if !errors.Is(err, remote.ErrPreviewNotFound) {
			log.Error("preview download failed", "err", err)
			return out.Fail("download preview: %v", err), err
		}
		log.Warn("host has no preview, using default", "video_id", videoID)
		out.AddMessage("host preview missing, default used")
		source = defaultPreview
	}

	specs := y.env.Catalog.SizesFor(schema.MediaTypeYoutube)
	for _, spec := range specs {
		sized := filepath.Join(dir, spec.Prefix+filename)
		w, h, err := img.Resize(source, sized, spec)
		if err != nil {
			for _, inner := range specs {
				_ = os.Remove(filepath.Join(dir, inner.Prefix+filename))
			}
			_ = os.Remove(target)
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
		log.Debug("preview derivative generated", "size", spec.SizeKey, "target", sized)
	}

	out.SetData("url", rawURL)
	out.SetData("video_id", videoID)
	out.SetData("target_filename", filename)
	out.SetData("target_file", target)
	out.SetData("path", dir)
	out.SetData("relative_path", y.env.Paths.RelativePath(schema.MediaTypeYoutube, now))
	out.SetData("status", schema.StatusPending)
	out.SetData("type", string(schema.MediaTypeYoutube))
	return out, nil
}

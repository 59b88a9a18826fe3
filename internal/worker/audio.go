package worker

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ajur-media/fsnews.media/pkg/schema"
)

// Audio uploads a sound file. No derivatives are generated synchronously:
// transcoding belongs to an out-of-process batch job, so the resource stays
// pending until that job picks it up.
type Audio struct {
	env *Env
}

func NewAudio(env *Env) *Audio {
	return &Audio{env: env}
}

func (a *Audio) Upload(ctx context.Context, src string) (*schema.Outcome, error) {
	return moveOnlyUpload(a.env, src, schema.MediaTypeAudio, schema.StatusPending, "audio")
}

// moveOnlyUpload is the shared procedure of the derivative-free types: audio
// and unclassified files. There is nothing to roll back on failure.
func moveOnlyUpload(env *Env, src string, mediaType schema.MediaType, status, tag string) (*schema.Outcome, error) {
	log := env.Logger.With("worker", tag, "src", src)
	out := schema.NewOutcome()

	if err := checkSource(src); err != nil {
		log.Error("invalid source file", "err", err)
		return out.Fail("invalid source file: %v", err), err
	}

	now := env.Now()
	dir := env.Paths.AbsolutePath(mediaType, now)
	if err := env.Paths.EnsureDir(dir); err != nil {
		log.Error("ensure storage directory", "dir", dir, "err", err)
		return out.Fail("storage directory: %v", err), err
	}

	radix, ext, mime, err := env.allocateRadix(dir, src)
	if err != nil {
		log.Error("allocate resource name", "err", err)
		return out.Fail("allocate resource name: %v", err), err
	}

	// The single catalog entry for move-only types carries the prefix
	// (typically empty).
	prefix := ""
	if specs := env.Catalog.SizesFor(mediaType); len(specs) > 0 {
		prefix = specs[0].Prefix
	}

	target := filepath.Join(dir, prefix+radix+"."+ext)
	if err := moveFile(src, target); err != nil {
		log.Error("persist original failed", "target", target, "err", err)
		wrapped := fmt.Errorf("%w: %s: %v", ErrOriginalPersist, target, err)
		return out.Fail("persist original %s: %v", target, err), wrapped
	}
	log.Debug("stored", "target", target, "mime", mime)

	out.SetData("filename", radix+"."+ext)
	out.SetData("radix", radix)
	out.SetData("extension", ext)
	out.SetData("mime", mime)
	out.SetData("path", dir)
	out.SetData("relative_path", env.Paths.RelativePath(mediaType, now))
	out.SetData("origin", target)
	out.SetData("status", status)
	out.SetData("type", string(mediaType))
	return out, nil
}

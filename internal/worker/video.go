package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ajur-media/fsnews.media/internal/catalog"
	"github.com/ajur-media/fsnews.media/internal/img"
	"github.com/ajur-media/fsnews.media/pkg/schema"
)

// Video uploads a video file in three phases: probe the stream metadata,
// persist the original, then generate frame previews. The base preview is
// extracted from the stream at the midpoint; the smaller sizes are resized
// from that base file so the transcoder runs exactly once per upload.
type Video struct {
	env *Env
}

func NewVideo(env *Env) *Video {
	return &Video{env: env}
}

func (v *Video) Upload(ctx context.Context, src string) (*schema.Outcome, error) {
	log := v.env.Logger.With("worker", "video", "src", src)
	out := schema.NewOutcome()

	if err := checkSource(src); err != nil {
		log.Error("invalid source file", "err", err)
		return out.Fail("invalid source file: %v", err), err
	}

	info, err := v.env.Prober.Probe(ctx, src)
	if err != nil {
		log.Error("probe failed", "err", err)
		return out.Fail("probe: %v", err), err
	}
	log.Debug("video probed", "duration", info.Duration, "bitrate", info.Bitrate)

	now := v.env.Now()
	dir := v.env.Paths.AbsolutePath(schema.MediaTypeVideo, now)
	if err := v.env.Paths.EnsureDir(dir); err != nil {
		log.Error("ensure storage directory", "dir", dir, "err", err)
		return out.Fail("storage directory: %v", err), err
	}

	radix, ext, mime, err := v.env.allocateRadix(dir, src)
	if err != nil {
		log.Error("allocate resource name", "err", err)
		return out.Fail("allocate resource name: %v", err), err
	}

	original := filepath.Join(dir, radix+"."+ext)
	if err := moveFile(src, original); err != nil {
		log.Error("persist original failed", "original", original, "err", err)
		wrapped := fmt.Errorf("%w: %s: %v", ErrOriginalPersist, original, err)
		return out.Fail("persist original %s: %v", original, err), wrapped
	}
	log.Debug("original persisted", "original", original)

	specs := v.env.Catalog.SizesFor(schema.MediaTypeVideo)
	midpoint := info.Duration / 2
	if info.Duration%2 != 0 {
		midpoint++ // round, not truncate
	}

	// Previews are always JPEG regardless of the source container.
	basePreview := ""
	for i, spec := range specs {
		target := filepath.Join(dir, spec.Filename(radix, "jpg"))

		if i == 0 {
			started := time.Now()
			frame, err := v.env.Frames.ExtractFrame(ctx, original, target, midpoint, spec.MaxWidth, spec.MaxHeight)
			if err != nil {
				return v.failThumbnails(log, out, dir, original, specs, radix, err, spec.SizeKey)
			}
			basePreview = target
			out.AddThumbnail(schema.GeneratedFile{
				SizeKey:    spec.SizeKey,
				Target:     target,
				Width:      spec.MaxWidth,
				Height:     spec.MaxHeight,
				Quality:    spec.Quality,
				Command:    frame.Command,
				ElapsedSec: frame.ElapsedSec,
			})
			log.Debug("base preview extracted", "target", target, "ts", frame.Timestamp, "elapsed", time.Since(started))
			continue
		}

		started := time.Now()
		w, h, err := img.Resize(basePreview, target, spec)
		if err != nil {
			return v.failThumbnails(log, out, dir, original, specs, radix, err, spec.SizeKey)
		}
		out.AddThumbnail(schema.GeneratedFile{
			SizeKey:    spec.SizeKey,
			Target:     target,
			Width:      w,
			Height:     h,
			Quality:    spec.Quality,
			ElapsedSec: time.Since(started).Seconds(),
		})
		log.Debug("preview resized", "size", spec.SizeKey, "target", target)
	}

	log.Debug("previews generated, video stored")

	out.SetData("filename", radix+"."+ext)
	out.SetData("radix", radix)
	out.SetData("extension", ext)
	out.SetData("mime", mime)
	out.SetData("path", dir)
	out.SetData("relative_path", v.env.Paths.RelativePath(schema.MediaTypeVideo, now))
	out.SetData("origin", original)
	out.SetData("bitrate", info.Bitrate)
	out.SetData("duration", info.Duration)
	out.SetData("status", schema.StatusPending)
	out.SetData("type", string(schema.MediaTypeVideo))
	return out, nil
}

// failThumbnails finishes a failed thumbnail phase. The original stays
// persisted unless strict rollback is configured: a pending video without
// previews can still be repaired by the batch postprocessor.
func (v *Video) failThumbnails(log *slog.Logger, out *schema.Outcome, dir, original string, specs []catalog.DerivativeSpec, radix string, cause error, sizeKey string) (*schema.Outcome, error) {
	log.Error("preview generation failed", "size", sizeKey, "err", cause)

	if v.env.Cfg.StrictVideoRollback {
		removeDerivatives(dir, specs, radix, "jpg")
		_ = os.Remove(original)
		log.Warn("strict rollback: removed original and previews", "original", original)
	}

	wrapped := fmt.Errorf("%w: size %s: %v", ErrDerivativeGeneration, sizeKey, cause)
	return out.Fail("video preview [%s]: %v", sizeKey, cause), wrapped
}

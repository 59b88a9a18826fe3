package worker

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ajur-media/fsnews.media/internal/img"
	"github.com/ajur-media/fsnews.media/pkg/schema"
)

// OriginPrefix marks the stored photo original.
const OriginPrefix = "origin_"

// Photo uploads an image and synchronously produces every catalog size,
// optionally watermarked. Any failure rolls back all derivatives written for
// the radix; the source file is left untouched at its original location.
type Photo struct {
	env *Env
}

func NewPhoto(env *Env) *Photo {
	return &Photo{env: env}
}

// Upload ingests an image file. watermarkCorner 1..4 composites the
// per-size watermark into that corner; 0 disables watermarking.
func (p *Photo) Upload(ctx context.Context, src string, watermarkCorner int) (*schema.Outcome, error) {
	log := p.env.Logger.With("worker", "photo", "src", src)
	out := schema.NewOutcome()

	if err := checkSource(src); err != nil {
		log.Error("invalid source file", "err", err)
		return out.Fail("invalid source file: %v", err), err
	}

	now := p.env.Now()
	dir := p.env.Paths.AbsolutePath(schema.MediaTypePhoto, now)
	if err := p.env.Paths.EnsureDir(dir); err != nil {
		log.Error("ensure storage directory", "dir", dir, "err", err)
		return out.Fail("storage directory: %v", err), err
	}

	radix, ext, mime, err := p.env.allocateRadix(dir, src)
	if err != nil {
		log.Error("allocate resource name", "err", err)
		return out.Fail("allocate resource name: %v", err), err
	}
	log.Debug("allocated resource radix", "radix", radix, "ext", ext, "mime", mime)

	specs := p.env.Catalog.SizesFor(schema.MediaTypePhoto)

	for _, spec := range specs {
		target := filepath.Join(dir, spec.Filename(radix, ext))

		w, h, err := img.Resize(src, target, spec)
		if err != nil {
			removeDerivatives(dir, specs, radix, ext)
			log.Error("derivative generation failed", "size", spec.SizeKey, "target", target, "err", err)
			wrapped := fmt.Errorf("%w: size %s: %v", ErrDerivativeGeneration, spec.SizeKey, err)
			return out.Fail("convert to size [%s]: %v", spec.SizeKey, err), wrapped
		}
		log.Debug("derivative generated", "size", spec.SizeKey, "target", target, "width", w, "height", h)

		out.AddThumbnail(schema.GeneratedFile{
			SizeKey: spec.SizeKey,
			Target:  target,
			Width:   w,
			Height:  h,
			Quality: spec.Quality,
		})

		if spec.WatermarkFile != "" && watermarkCorner > 0 {
			wm := filepath.Join(p.env.Cfg.WatermarkDir, spec.WatermarkFile)
			if err := img.Watermark(target, wm, spec.WatermarkMargin, watermarkCorner); err != nil {
				if p.env.Cfg.WatermarkFatal {
					removeDerivatives(dir, specs, radix, ext)
					log.Error("watermark failed", "size", spec.SizeKey, "err", err)
					wrapped := fmt.Errorf("%w: watermark %s: %v", ErrDerivativeGeneration, spec.SizeKey, err)
					return out.Fail("watermark size [%s]: %v", spec.SizeKey, err), wrapped
				}
				log.Warn("watermark failed, keeping unbranded derivative", "size", spec.SizeKey, "err", err)
				out.AddMessage("watermark skipped for %s: %v", spec.SizeKey, err)
				continue
			}
			log.Debug("watermark applied", "size", spec.SizeKey, "corner", watermarkCorner)
		}
	}

	origin := filepath.Join(dir, OriginPrefix+radix+"."+ext)
	if err := moveFile(src, origin); err != nil {
		removeDerivatives(dir, specs, radix, ext)
		log.Error("persist original failed", "origin", origin, "err", err)
		wrapped := fmt.Errorf("%w: %s: %v", ErrOriginalPersist, origin, err)
		return out.Fail("persist original %s: %v", origin, err), wrapped
	}
	log.Debug("original persisted", "origin", origin)

	out.SetData("filename", radix+"."+ext)
	out.SetData("radix", radix)
	out.SetData("extension", ext)
	out.SetData("mime", mime)
	out.SetData("path", dir)
	out.SetData("relative_path", p.env.Paths.RelativePath(schema.MediaTypePhoto, now))
	out.SetData("origin", origin)
	out.SetData("status", schema.StatusReady)
	out.SetData("type", string(schema.MediaTypePhoto))
	return out, nil
}

// Package img wraps the pixel operations behind the derivative pipeline:
// strategy-driven resizing and watermark compositing on top of the imaging
// library.
package img

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ajur-media/fsnews.media/internal/catalog"
)

// Resize loads srcPath, applies the spec's strategy and writes the result to
// dstPath with the spec's JPEG quality. Returns the written dimensions.
func Resize(srcPath, dstPath string, spec catalog.DerivativeSpec) (w int, h int, _ error) {
	src, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, fmt.Errorf("open: %w", err)
	}

	var out = src
	switch spec.Strategy {
	case catalog.StrategyCropExact:
		out = imaging.Fill(src, spec.MaxWidth, spec.MaxHeight, imaging.Center, imaging.Lanczos)
	case catalog.StrategyFitAspect:
		out = imaging.Fit(src, spec.MaxWidth, spec.MaxHeight, imaging.Lanczos)
		b := src.Bounds()
		if b.Dx() < spec.MaxWidth && b.Dy() < spec.MaxHeight {
			// Fit never upscales; this strategy does.
			out = imaging.Resize(src, upscaleWidth(b.Dx(), b.Dy(), spec.MaxWidth, spec.MaxHeight), 0, imaging.Lanczos)
		}
	case catalog.StrategyFitReduce:
		out = imaging.Fit(src, spec.MaxWidth, spec.MaxHeight, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return 0, 0, fmt.Errorf("mkdir: %w", err)
	}

	opts := []imaging.EncodeOption{}
	if spec.Quality > 0 {
		opts = append(opts, imaging.JPEGQuality(spec.Quality))
	}
	if err := imaging.Save(out, dstPath, opts...); err != nil {
		return 0, 0, fmt.Errorf("save: %w", err)
	}

	b := out.Bounds()
	return b.Dx(), b.Dy(), nil
}

// upscaleWidth picks the target width that scales (sw,sh) up to touch the
// (maxW,maxH) box from inside.
func upscaleWidth(sw, sh, maxW, maxH int) int {
	if sw <= 0 || sh <= 0 {
		return maxW
	}
	byWidth := float64(maxW) / float64(sw)
	byHeight := float64(maxH) / float64(sh)
	if byWidth <= byHeight {
		return maxW
	}
	return int(float64(sw) * byHeight)
}

package img

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Watermark corners. Zero disables watermarking at the call sites.
const (
	CornerTopLeft     = 1
	CornerTopRight    = 2
	CornerBottomRight = 3
	CornerBottomLeft  = 4
)

// Watermark composites wmPath onto the image at dstPath in the given corner,
// inset by margin pixels, and saves the file in place.
func Watermark(dstPath, wmPath string, margin, corner int) error {
	if corner < CornerTopLeft || corner > CornerBottomLeft {
		return fmt.Errorf("watermark: invalid corner %d", corner)
	}

	base, err := imaging.Open(dstPath)
	if err != nil {
		return fmt.Errorf("watermark: open target: %w", err)
	}
	mark, err := imaging.Open(wmPath)
	if err != nil {
		return fmt.Errorf("watermark: open overlay: %w", err)
	}

	bb := base.Bounds()
	mb := mark.Bounds()

	var pos image.Point
	switch corner {
	case CornerTopLeft:
		pos = image.Pt(margin, margin)
	case CornerTopRight:
		pos = image.Pt(bb.Dx()-mb.Dx()-margin, margin)
	case CornerBottomRight:
		pos = image.Pt(bb.Dx()-mb.Dx()-margin, bb.Dy()-mb.Dy()-margin)
	case CornerBottomLeft:
		pos = image.Pt(margin, bb.Dy()-mb.Dy()-margin)
	}

	out := imaging.Overlay(base, mark, pos, 1.0)
	if err := imaging.Save(out, dstPath); err != nil {
		return fmt.Errorf("watermark: save: %w", err)
	}
	return nil
}

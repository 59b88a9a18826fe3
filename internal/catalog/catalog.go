// Package catalog declares every derivative size each media type must
// produce. The tables are fixed at startup and read-only afterwards; lookup
// order is significant (the video pipeline derives the small previews from
// the first, largest entry).
package catalog

import "github.com/ajur-media/fsnews.media/pkg/schema"

// ResizeStrategy selects the pixel operation for a derivative.
type ResizeStrategy int

const (
	// StrategyNone copies without resizing (move-only types: audio, files).
	StrategyNone ResizeStrategy = iota
	// StrategyCropExact fills the exact WxH box, cropping the overflow.
	StrategyCropExact
	// StrategyFitAspect fits inside the box preserving aspect ratio,
	// upscaling smaller sources.
	StrategyFitAspect
	// StrategyFitReduce fits inside the box preserving aspect ratio but
	// never upscales.
	StrategyFitReduce
)

func (s ResizeStrategy) String() string {
	switch s {
	case StrategyCropExact:
		return "crop_exact"
	case StrategyFitAspect:
		return "fit_aspect"
	case StrategyFitReduce:
		return "fit_reduce"
	default:
		return "none"
	}
}

// DerivativeSpec describes one derivative size. Prefix already carries its
// trailing separator: the target file name is Prefix + radix + "." + ext with
// plain concatenation, never an added separator.
type DerivativeSpec struct {
	SizeKey         string
	MaxWidth        int
	MaxHeight       int
	Strategy        ResizeStrategy
	Prefix          string
	Quality         int
	WatermarkFile   string
	WatermarkMargin int
}

// Filename returns the derivative file name for a resource radix with
// extension (no leading dot).
func (d DerivativeSpec) Filename(radix, ext string) string {
	return d.Prefix + radix + "." + ext
}

// Catalog is the process-wide derivative table, keyed by media type.
type Catalog struct {
	sizes map[schema.MediaType][]DerivativeSpec
}

// New returns the default catalog.
func New() *Catalog {
	return &Catalog{sizes: defaultSizes()}
}

// SizesFor returns the ordered derivative set for a media type. The returned
// slice is shared and must not be mutated.
func (c *Catalog) SizesFor(mediaType schema.MediaType) []DerivativeSpec {
	return c.sizes[mediaType]
}

// Prefixes returns the declared filename prefixes for a media type, in
// catalog order. Used by cleanup to enumerate the deletion set.
func (c *Catalog) Prefixes(mediaType schema.MediaType) []string {
	specs := c.sizes[mediaType]
	prefixes := make([]string, 0, len(specs))
	for _, s := range specs {
		prefixes = append(prefixes, s.Prefix)
	}
	return prefixes
}

func defaultSizes() map[schema.MediaType][]DerivativeSpec {
	return map[schema.MediaType][]DerivativeSpec{
		schema.MediaTypePhoto: {
			// Preview icon in photo-report listings (desktop and mobile).
			{SizeKey: "100x100", MaxWidth: 100, MaxHeight: 100, Strategy: StrategyCropExact, Prefix: "100x100_", Quality: 80},
			// Base size for photos embedded into mobile articles; 440 is
			// treated as the base mobile width.
			{SizeKey: "440x300", MaxWidth: 440, MaxHeight: 999, Strategy: StrategyFitAspect, Prefix: "440x300_", Quality: 80, WatermarkFile: "l.png", WatermarkMargin: 10},
			// Base size for photos in reports and desktop articles.
			{SizeKey: "630x465", MaxWidth: 630, MaxHeight: 465, Strategy: StrategyFitAspect, Prefix: "630x465_", Quality: 80, WatermarkFile: "l.png", WatermarkMargin: 30},
			// Full-size image behind the click-to-enlarge view.
			{SizeKey: "1280x1024", MaxWidth: 1280, MaxHeight: 1024, Strategy: StrategyFitReduce, Prefix: "1280x1024_", Quality: 90, WatermarkFile: "l.png", WatermarkMargin: 30},
		},
		schema.MediaTypeVideo: {
			// Base preview, extracted from the video stream. Must stay
			// first: the remaining sizes are resized from this file.
			{SizeKey: "640x352", MaxWidth: 640, MaxHeight: 360, Strategy: StrategyCropExact, Prefix: "640x352_", Quality: 80},
			// Admin list icon.
			{SizeKey: "100x100", MaxWidth: 100, MaxHeight: 100, Strategy: StrategyCropExact, Prefix: "100x100_", Quality: 80},
			// Article embed preview.
			{SizeKey: "440x248", MaxWidth: 440, MaxHeight: 248, Strategy: StrategyCropExact, Prefix: "440x248_", Quality: 80},
		},
		schema.MediaTypeAudio: {
			{SizeKey: "_", Prefix: ""},
		},
		schema.MediaTypeFile: {
			{SizeKey: "_", Prefix: ""},
		},
		schema.MediaTypeYoutube: {
			{SizeKey: "100x100", MaxWidth: 100, MaxHeight: 100, Strategy: StrategyCropExact, Prefix: "100x100_", Quality: 80},
			{SizeKey: "640x352", MaxWidth: 640, MaxHeight: 360, Strategy: StrategyCropExact, Prefix: "640x352_", Quality: 80},
		},
		schema.MediaTypeTitle: {
			// Main title image of an article.
			{SizeKey: "608x406", MaxWidth: 608, MaxHeight: 406, Strategy: StrategyNone, Prefix: "", Quality: 92},
			// Square previews on the front page.
			{SizeKey: "300x266", MaxWidth: 300, MaxHeight: 266, Strategy: StrategyCropExact, Prefix: "resize_", Quality: 80},
			// Small previews in the top-3 feed.
			{SizeKey: "205x150", MaxWidth: 205, MaxHeight: 150, Strategy: StrategyCropExact, Prefix: "small_", Quality: 70},
		},
	}
}

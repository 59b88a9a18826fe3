package worker

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ajur-media/fsnews.media/pkg/schema"
)

// DisplayInput is the stored-resource row display metadata is derived from.
type DisplayInput struct {
	Type  schema.MediaType
	File  string
	Href  string
	CDate time.Time
	Tags  string // serialized JSON array, may be empty
	Descr string
}

// DisplayOptions select the rendering target.
type DisplayOptions struct {
	Mobile        bool
	Report        bool
	PrependDomain bool
	DomainPrefix  string
}

// DisplayMetadata carries everything a template needs to render one media
// resource.
type DisplayMetadata struct {
	Path         string
	CDateRus     string
	Prefix       string
	ReportPrefix string
	Sizes        [2]int
	SizesFull    [2]int
	SizesPrev    [2]int
	SizesLarge   [2]int
	SizesThumb   string
	SizesVideo   [2]int
	SizesYoutube [2]int
	OrigFile     string
	Thumb        string
	YoutubeID    string
	Tags         []string
	Descr        string
}

// describer renders display metadata for one media type.
type describer interface {
	describe(in DisplayInput, opts DisplayOptions, meta *DisplayMetadata)
}

var describers = map[schema.MediaType]describer{
	schema.MediaTypePhoto:   photoDescriber{},
	schema.MediaTypeVideo:   videoDescriber{},
	schema.MediaTypeAudio:   audioDescriber{},
	schema.MediaTypeFile:    fileDescriber{},
	schema.MediaTypeYoutube: youtubeDescriber{},
}

// DescribeForDisplay assembles the display metadata for a stored resource,
// delegating the per-type rules to the type's describer.
func (d *Dispatcher) DescribeForDisplay(in DisplayInput, opts DisplayOptions) DisplayMetadata {
	domain := opts.DomainPrefix
	if domain == "" {
		domain = d.env.Cfg.StorageDomain
	}

	path := d.env.Paths.RelativePath(in.Type, in.CDate)
	if opts.PrependDomain {
		path = domain + path
	}

	meta := DisplayMetadata{
		Path:         path,
		CDateRus:     RusDate(in.CDate, false),
		ReportPrefix: "590x440",
		Tags:         deserializeTags(in.Tags),
		Descr:        in.Descr,
	}
	if opts.Report {
		meta.Prefix = "440x300"
	} else {
		meta.Prefix = "100x100"
	}

	if desc, ok := describers[in.Type]; ok {
		desc.describe(in, opts, &meta)
	}
	return meta
}

type photoDescriber struct{}

func (photoDescriber) describe(in DisplayInput, opts DisplayOptions, meta *DisplayMetadata) {
	switch {
	case opts.Report && opts.Mobile:
		meta.Sizes = [2]int{590, 440}
		meta.SizesFull = [2]int{1280, 1024}
	case opts.Report:
		meta.Sizes = [2]int{100, 100}
		meta.SizesFull = [2]int{440, 300}
	case opts.Mobile:
		meta.Sizes = [2]int{440, 300}
		meta.SizesFull = [2]int{1280, 1024}
	default:
		meta.Sizes = [2]int{630, 465}
		meta.SizesFull = [2]int{1280, 1024}
	}
	meta.SizesPrev = [2]int{150, 100}
	meta.SizesLarge = [2]int{1280, 1024}
	meta.OrigFile = "590x440_" + in.File
}

type videoDescriber struct{}

func (videoDescriber) describe(in DisplayInput, opts DisplayOptions, meta *DisplayMetadata) {
	meta.Thumb = stripExtension(in.File) + ".jpg"
	meta.Sizes = [2]int{640, 352}
	meta.SizesThumb = "640x352"
	meta.SizesVideo = [2]int{640, 352 + 25} // player chrome below the frame
	meta.OrigFile = "440x248_" + meta.Thumb
}

type audioDescriber struct{}

func (audioDescriber) describe(in DisplayInput, opts DisplayOptions, meta *DisplayMetadata) {
	meta.Sizes = [2]int{440, 24}
	meta.OrigFile = in.File
}

type fileDescriber struct{}

func (fileDescriber) describe(in DisplayInput, opts DisplayOptions, meta *DisplayMetadata) {
	meta.OrigFile = in.File
}

var youtubeIDPattern = regexp.MustCompile(`(?i)v=([A-Za-z0-9_\-]{11})`)

type youtubeDescriber struct{}

func (youtubeDescriber) describe(in DisplayInput, opts DisplayOptions, meta *DisplayMetadata) {
	meta.Thumb = in.File
	meta.OrigFile = in.Href
	meta.Sizes = [2]int{640, 352}
	// The embed box dimensions differ from the catalog key on purpose.
	meta.SizesYoutube = [2]int{640, 360}

	if u, err := url.Parse(in.Href); err == nil {
		if m := youtubeIDPattern.FindStringSubmatch(u.RawQuery); m != nil {
			meta.YoutubeID = m[1]
		}
	}
}

func stripExtension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

func deserializeTags(data string) []string {
	if data == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(data), &tags); err != nil {
		return []string{}
	}
	return tags
}

var ruMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// RusDate renders a date the editorial way: "5 марта 2024 г.", optionally
// with HH:MM appended.
func RusDate(t time.Time, withTime bool) string {
	if t.IsZero() {
		return "-"
	}
	s := fmt.Sprintf("%d %s %d г.", t.Day(), ruMonths[int(t.Month())-1], t.Year())
	if withTime {
		s += fmt.Sprintf(" %02d:%02d", t.Hour(), t.Minute())
	}
	return s
}

package worker

import (
	"testing"
	"time"

	"github.com/ajur-media/fsnews.media/pkg/schema"
)

func displayDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	env := testEnv(t)
	env.Cfg.StorageDomain = "https://cdn.example.org"
	return &Dispatcher{env: env}
}

func TestDescribePhotoSizeMatrix(t *testing.T) {
	d := displayDispatcher(t)
	in := DisplayInput{Type: schema.MediaTypePhoto, File: "20240307_abc.jpg", CDate: testClock}

	tests := []struct {
		name      string
		opts      DisplayOptions
		wantSizes [2]int
		wantFull  [2]int
	}{
		{"desktop article", DisplayOptions{}, [2]int{630, 465}, [2]int{1280, 1024}},
		{"mobile article", DisplayOptions{Mobile: true}, [2]int{440, 300}, [2]int{1280, 1024}},
		{"desktop report", DisplayOptions{Report: true}, [2]int{100, 100}, [2]int{440, 300}},
		{"mobile report", DisplayOptions{Report: true, Mobile: true}, [2]int{590, 440}, [2]int{1280, 1024}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			meta := d.DescribeForDisplay(in, tc.opts)
			if meta.Sizes != tc.wantSizes {
				t.Errorf("Sizes = %v, want %v", meta.Sizes, tc.wantSizes)
			}
			if meta.SizesFull != tc.wantFull {
				t.Errorf("SizesFull = %v, want %v", meta.SizesFull, tc.wantFull)
			}
		})
	}
}

func TestDescribePhotoPath(t *testing.T) {
	d := displayDispatcher(t)
	in := DisplayInput{Type: schema.MediaTypePhoto, File: "x.jpg", CDate: testClock}

	meta := d.DescribeForDisplay(in, DisplayOptions{})
	if meta.Path != "/photos/2024/03/" {
		t.Errorf("Path = %q", meta.Path)
	}

	meta = d.DescribeForDisplay(in, DisplayOptions{PrependDomain: true})
	if meta.Path != "https://cdn.example.org/photos/2024/03/" {
		t.Errorf("Path with domain = %q", meta.Path)
	}

	meta = d.DescribeForDisplay(in, DisplayOptions{PrependDomain: true, DomainPrefix: "https://override"})
	if meta.Path != "https://override/photos/2024/03/" {
		t.Errorf("Path with override = %q", meta.Path)
	}
}

func TestDescribeVideo(t *testing.T) {
	d := displayDispatcher(t)
	meta := d.DescribeForDisplay(DisplayInput{
		Type: schema.MediaTypeVideo, File: "20240307_clip.mp4", CDate: testClock,
	}, DisplayOptions{})

	if meta.Thumb != "20240307_clip.jpg" {
		t.Errorf("Thumb = %q, want the jpg preview name", meta.Thumb)
	}
	if meta.SizesVideo != [2]int{640, 377} {
		t.Errorf("SizesVideo = %v, want player box 640x377", meta.SizesVideo)
	}
	if meta.OrigFile != "440x248_20240307_clip.jpg" {
		t.Errorf("OrigFile = %q", meta.OrigFile)
	}
}

func TestDescribeYoutube(t *testing.T) {
	d := displayDispatcher(t)
	meta := d.DescribeForDisplay(DisplayInput{
		Type:  schema.MediaTypeYoutube,
		File:  "20240307_preview.jpg",
		Href:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		CDate: testClock,
	}, DisplayOptions{})

	if meta.YoutubeID != "dQw4w9WgXcQ" {
		t.Errorf("YoutubeID = %q", meta.YoutubeID)
	}
	if meta.SizesYoutube != [2]int{640, 360} {
		t.Errorf("SizesYoutube = %v", meta.SizesYoutube)
	}
	if meta.OrigFile != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("OrigFile = %q", meta.OrigFile)
	}
}

func TestDescribeAudio(t *testing.T) {
	d := displayDispatcher(t)
	meta := d.DescribeForDisplay(DisplayInput{
		Type: schema.MediaTypeAudio, File: "20240307_track.mp3", CDate: testClock,
	}, DisplayOptions{})

	if meta.Sizes != [2]int{440, 24} {
		t.Errorf("Sizes = %v, want the player strip", meta.Sizes)
	}
	if meta.OrigFile != "20240307_track.mp3" {
		t.Errorf("OrigFile = %q", meta.OrigFile)
	}
}

func TestDescribeTags(t *testing.T) {
	d := displayDispatcher(t)
	in := DisplayInput{Type: schema.MediaTypePhoto, File: "x.jpg", CDate: testClock}

	in.Tags = `["news","city"]`
	meta := d.DescribeForDisplay(in, DisplayOptions{})
	if len(meta.Tags) != 2 || meta.Tags[0] != "news" {
		t.Errorf("Tags = %v", meta.Tags)
	}

	in.Tags = "broken json"
	meta = d.DescribeForDisplay(in, DisplayOptions{})
	if len(meta.Tags) != 0 {
		t.Errorf("Tags from broken input = %v, want empty", meta.Tags)
	}
}

func TestRusDate(t *testing.T) {
	tests := []struct {
		t        time.Time
		withTime bool
		want     string
	}{
		{time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC), false, "5 марта 2024 г."},
		{time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC), true, "5 марта 2024 г. 09:07"},
		{time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC), false, "1 января 1999 г."},
		{time.Time{}, false, "-"},
	}
	for _, tc := range tests {
		if got := RusDate(tc.t, tc.withTime); got != tc.want {
			t.Errorf("RusDate(%v, %v) = %q, want %q", tc.t, tc.withTime, got, tc.want)
		}
	}
}

package convert

import (
	"errors"
	"testing"
)

func TestParseProbeOutput(t *testing.T) {
	data := []byte(`{
		"format": {"duration": "30.024000", "bit_rate": "1205959"},
		"streams": [
			{"codec_type": "audio", "duration": "30.024000", "bit_rate": "128000"},
			{"codec_type": "video", "duration": "29.967000", "bit_rate": "1024000"}
		]
	}`)

	info, err := ParseProbeOutput(data)
	if err != nil {
		t.Fatalf("ParseProbeOutput returned error: %v", err)
	}
	if info.Duration != 30 {
		t.Errorf("duration = %d, want 30 (video stream, rounded)", info.Duration)
	}
	if info.Bitrate != 1024000 {
		t.Errorf("bitrate = %d, want 1024000 (video stream preferred)", info.Bitrate)
	}
}

func TestParseProbeOutputFormatFallback(t *testing.T) {
	// Stream fields absent or rounding to zero fall back to the container.
	data := []byte(`{
		"format": {"duration": "12.6", "bit_rate": "900000"},
		"streams": [{"codec_type": "video"}]
	}`)

	info, err := ParseProbeOutput(data)
	if err != nil {
		t.Fatalf("ParseProbeOutput returned error: %v", err)
	}
	if info.Duration != 13 {
		t.Errorf("duration = %d, want 13 (format fallback, rounded up)", info.Duration)
	}
	if info.Bitrate != 900000 {
		t.Errorf("bitrate = %d, want 900000 (format fallback)", info.Bitrate)
	}
}

func TestParseProbeOutputRejectsNonVideo(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"format": `},
		{"missing format", `{"streams": [{"codec_type": "video", "duration": "5"}]}`},
		{"missing streams", `{"format": {"duration": "5"}}`},
		{"no video stream", `{"format": {"duration": "5"}, "streams": [{"codec_type": "audio"}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProbeOutput([]byte(tc.data))
			if !errors.Is(err, ErrNotAVideoFile) {
				t.Fatalf("error = %v, want ErrNotAVideoFile", err)
			}
		})
	}
}

func TestParseProbeOutputZeroDuration(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty fields", `{"format": {}, "streams": [{"codec_type": "video"}]}`},
		{"explicit zero", `{"format": {"duration": "0.0"}, "streams": [{"codec_type": "video", "duration": "0"}]}`},
		{"rounds to zero", `{"format": {"duration": "0.3"}, "streams": [{"codec_type": "video", "duration": "0.2"}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProbeOutput([]byte(tc.data))
			if !errors.Is(err, ErrZeroDurationVideo) {
				t.Fatalf("error = %v, want ErrZeroDurationVideo", err)
			}
		})
	}
}

func TestRoundField(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"garbage", 0},
		{"30.024000", 30},
		{"29.5", 30},
		{"29.4999", 29},
		{"1205959", 1205959},
	}
	for _, tc := range tests {
		if got := roundField(tc.in); got != tc.want {
			t.Errorf("roundField(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

// Package convert drives the external probe/transcode tools. It owns the
// process protocol: ffprobe structured output parsing and single-frame
// extraction with bounded completion polling.
package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

var (
	// ErrNotAVideoFile reports probe output without a format section, a
	// streams section, or any stream with codec_type == "video".
	ErrNotAVideoFile = errors.New("convert: not a video file")

	// ErrZeroDurationVideo reports a video whose resolved duration is not
	// positive.
	ErrZeroDurationVideo = errors.New("convert: video stream has zero duration")

	// ErrExternalTool reports a probe/transcode invocation that failed or
	// did not produce its output within the deadline.
	ErrExternalTool = errors.New("convert: external tool failure")
)

// VideoInfo is the metadata the upload pipeline needs from a probe.
type VideoInfo struct {
	// Duration in whole seconds, rounded.
	Duration int
	// Bitrate in bits per second, rounded.
	Bitrate int
}

type probeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

type probeStream struct {
	CodecType string `json:"codec_type"`
	Duration  string `json:"duration"`
	BitRate   string `json:"bit_rate"`
}

type probeDocument struct {
	Format  *probeFormat  `json:"format"`
	Streams []probeStream `json:"streams"`
}

// Prober asks ffprobe for container and stream metadata.
type Prober struct {
	Bin string
}

func NewProber(bin string) *Prober {
	if bin == "" {
		bin = "ffprobe"
	}
	return &Prober{Bin: bin}
}

// Probe runs ffprobe against src and resolves duration/bitrate, preferring
// the video stream's own fields and falling back to the container format
// when the stream value rounds to zero.
func (p *Prober) Probe(ctx context.Context, src string) (*VideoInfo, error) {
	cmd := exec.CommandContext(ctx, p.Bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		src,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExternalTool, p.Bin, err)
	}

	return ParseProbeOutput(out)
}

// ParseProbeOutput validates a raw ffprobe JSON document and resolves the
// video metadata from it.
func ParseProbeOutput(data []byte) (*VideoInfo, error) {
	var doc probeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed probe output: %v", ErrNotAVideoFile, err)
	}

	if doc.Format == nil {
		return nil, fmt.Errorf("%w: missing FORMAT section", ErrNotAVideoFile)
	}
	if doc.Streams == nil {
		return nil, fmt.Errorf("%w: missing STREAMS section", ErrNotAVideoFile)
	}

	var video *probeStream
	for i := range doc.Streams {
		if strings.EqualFold(doc.Streams[i].CodecType, "video") {
			video = &doc.Streams[i]
			break
		}
	}
	if video == nil {
		return nil, fmt.Errorf("%w: no video stream", ErrNotAVideoFile)
	}

	duration := roundField(video.Duration)
	if duration == 0 {
		duration = roundField(doc.Format.Duration)
	}
	bitrate := roundField(video.BitRate)
	if bitrate == 0 {
		bitrate = roundField(doc.Format.BitRate)
	}

	if duration <= 0 {
		return nil, ErrZeroDurationVideo
	}

	return &VideoInfo{Duration: duration, Bitrate: bitrate}, nil
}

// roundField parses an ffprobe numeric string ("30.024000") to a rounded
// int. Absent or unparseable values count as zero.
func roundField(s string) int {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(f))
}

package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Extractor pulls a single still frame out of a video file with ffmpeg.
type Extractor struct {
	Bin            string
	NoAccurateSeek bool
	// PollInterval and Timeout bound the wait for the output file to
	// appear after the tool returns.
	PollInterval time.Duration
	Timeout      time.Duration

	logger *slog.Logger
}

func NewExtractor(bin string, noAccurateSeek bool, pollInterval, timeout time.Duration, logger *slog.Logger) *Extractor {
	if bin == "" {
		bin = "ffmpeg"
	}
	if pollInterval <= 0 {
		pollInterval = 200 * time.Millisecond
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{Bin: bin, NoAccurateSeek: noAccurateSeek, PollInterval: pollInterval, Timeout: timeout, logger: logger}
}

// FrameResult records one extraction for the caller's data bag: the exact
// command line and how long the tool ran.
type FrameResult struct {
	Target     string
	Timestamp  string
	Command    string
	ElapsedSec float64
}

// FormatTimestamp renders a seconds count as zero-padded HH:MM:SS.
func FormatTimestamp(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}

// ExtractFrame writes the frame at timestamp (seconds) of src into dst as a
// JPEG letterboxed to exactly width x height. Completion is the appearance
// of dst; the wait is bounded by the extractor's timeout.
func (e *Extractor) ExtractFrame(ctx context.Context, src, dst string, timestamp, width, height int) (*FrameResult, error) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	ts := FormatTimestamp(timestamp)

	// Scale to fit, then pad to the exact requested box.
	filter := fmt.Sprintf(
		"scale=iw*min(%[1]d/iw\\,%[2]d/ih):ih*min(%[1]d/iw\\,%[2]d/ih), pad=%[1]d:%[2]d:(%[1]d-iw*min(%[1]d/iw\\,%[2]d/ih))/2:(%[2]d-ih*min(%[1]d/iw\\,%[2]d/ih))/2",
		width, height,
	)

	args := []string{"-hide_banner", "-y", "-ss", ts}
	if e.NoAccurateSeek {
		args = append(args, "-noaccurate_seek")
	}
	args = append(args,
		"-i", src,
		"-an",
		"-r", "1",
		"-vframes", "1",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-vf", filter,
		"-f", "mjpeg",
		dst,
	)

	cmdLine := e.Bin + " " + strings.Join(args, " ")
	e.logger.Debug("extracting frame", "src", src, "dst", dst, "ts", ts, "cmd", cmdLine)

	started := time.Now()
	cmd := exec.CommandContext(ctx, e.Bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrExternalTool, e.Bin, err, string(out))
	}
	elapsed := time.Since(started).Seconds()

	if err := e.waitForFile(ctx, dst); err != nil {
		return nil, err
	}

	return &FrameResult{
		Target:     dst,
		Timestamp:  ts,
		Command:    cmdLine,
		ElapsedSec: elapsed,
	}, nil
}

// waitForFile polls for path until it exists or the deadline passes. The
// transcoder signals completion only by the file appearing; there is no
// exit-code contract to rely on.
func (e *Extractor) waitForFile(ctx context.Context, path string) error {
	deadline := time.Now().Add(e.Timeout)
	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s not produced within %s", ErrExternalTool, path, e.Timeout)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrExternalTool, ctx.Err())
		case <-time.After(e.PollInterval):
		}
		e.logger.Debug("frame not ready yet", "path", path)
	}
}

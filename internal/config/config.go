// Package config carries the process-wide media settings. A Config is built
// once in main and passed by reference into the dispatcher and workers; it is
// never mutated during request handling.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// StorageRoot is the filesystem root of the media tree.
	StorageRoot string
	// WatermarkDir holds the watermark overlay images referenced by the
	// derivative catalog.
	WatermarkDir string
	// StorageDomain is prepended to relative paths when building public URLs.
	StorageDomain string

	// External tool executables.
	FFprobe string
	FFmpeg  string

	// NoAccurateSeek adds -noaccurate_seek to frame extraction, trading
	// timestamp precision for speed on long sources.
	NoAccurateSeek bool

	// FrameTimeout bounds the wait for an extracted frame to appear.
	FrameTimeout time.Duration
	// FramePollInterval is the re-check interval while waiting.
	FramePollInterval time.Duration

	// NameAttempts caps the collision-avoidance loop of the filename
	// allocator.
	NameAttempts int
	// RadixLength is the random part length of generated base names.
	RadixLength int

	// ContentDirs remaps media types to storage subdirectories. Unset types
	// use the built-in table.
	ContentDirs map[string]string

	// ExtraMimeTypes extends the upload allow-list (exact types or
	// "prefix/" entries).
	ExtraMimeTypes []string

	// WatermarkFatal makes a failed watermark composite abort the photo
	// upload instead of being logged and skipped.
	WatermarkFatal bool
	// StrictVideoRollback removes the persisted original when video
	// thumbnail generation fails, instead of leaving a pending resource.
	StrictVideoRollback bool
}

// FromEnv builds a Config from environment variables, applying defaults for
// everything optional. STORAGE_ROOT is required.
func FromEnv() (*Config, error) {
	cfg := &Config{
		StorageRoot:       os.Getenv("STORAGE_ROOT"),
		WatermarkDir:      getenv("WATERMARK_DIR", ""),
		StorageDomain:     getenv("STORAGE_DOMAIN", ""),
		FFprobe:           getenv("FFPROBE_BIN", "ffprobe"),
		FFmpeg:            getenv("FFMPEG_BIN", "ffmpeg"),
		FramePollInterval: 200 * time.Millisecond,
	}

	if cfg.StorageRoot == "" {
		return nil, fmt.Errorf("STORAGE_ROOT is required")
	}

	timeout, err := parsePositiveInt(getenv("FRAME_TIMEOUT_SEC", "30"), "FRAME_TIMEOUT_SEC")
	if err != nil {
		return nil, err
	}
	cfg.FrameTimeout = time.Duration(timeout) * time.Second

	attempts, err := parsePositiveInt(getenv("NAME_ATTEMPTS", "100"), "NAME_ATTEMPTS")
	if err != nil {
		return nil, err
	}
	cfg.NameAttempts = attempts

	radixLen, err := parsePositiveInt(getenv("RADIX_LENGTH", "20"), "RADIX_LENGTH")
	if err != nil {
		return nil, err
	}
	cfg.RadixLength = radixLen

	cfg.NoAccurateSeek = getenvBool("NO_ACCURATE_SEEK", false)
	cfg.WatermarkFatal = getenvBool("WATERMARK_FATAL", false)
	cfg.StrictVideoRollback = getenvBool("STRICT_VIDEO_ROLLBACK", false)

	if dirs := getenv("CONTENT_DIRS", ""); dirs != "" {
		parsed, err := parseContentDirs(dirs)
		if err != nil {
			return nil, fmt.Errorf("parse CONTENT_DIRS: %w", err)
		}
		cfg.ContentDirs = parsed
	}
	cfg.ExtraMimeTypes = splitList(getenv("EXTRA_MIME_TYPES", ""))

	return cfg, nil
}

// parseContentDirs reads comma-separated "type=dir" pairs. An empty dir is
// valid and maps the type directly under the storage root.
func parseContentDirs(value string) (map[string]string, error) {
	dirs := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		mediaType, dir, ok := strings.Cut(pair, "=")
		mediaType = strings.TrimSpace(mediaType)
		if !ok || mediaType == "" {
			return nil, fmt.Errorf("invalid entry %q, expected 'type=dir'", pair)
		}
		dirs[mediaType] = strings.TrimSpace(dir)
	}
	return dirs, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvBool(key string, defaultValue bool) bool {
	val := getenv(key, "")
	if val == "" {
		return defaultValue
	}
	return val == "true"
}

func parsePositiveInt(value string, name string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than zero (got %d)", name, v)
	}
	return v, nil
}

package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ajur-media/fsnews.media/internal/config"
	"github.com/ajur-media/fsnews.media/pkg/schema"
)

// Dispatcher sniffs the true content type of an uploaded blob, gates it
// against the allow-list and routes it to the matching worker.
type Dispatcher struct {
	env   *Env
	photo *Photo
	audio *Audio
	video *Video
	file  *AnyFile
}

// NewDispatcher wires the full upload pipeline from configuration.
func NewDispatcher(cfg *config.Config, logger *slog.Logger) *Dispatcher {
	env := NewEnv(cfg, logger)
	return &Dispatcher{
		env:   env,
		photo: NewPhoto(env),
		audio: NewAudio(env),
		video: NewVideo(env),
		file:  NewAnyFile(env),
	}
}

// Env exposes the shared worker environment, for cleanup and display
// composition.
func (d *Dispatcher) Env() *Env { return d.env }

// Upload classifies src by sniffed MIME type and delegates to the right
// worker. watermarkCorner is forwarded to the photo worker only. A type
// outside the allow-list fails without invoking any worker.
func (d *Dispatcher) Upload(ctx context.Context, src string, watermarkCorner int) (*schema.Outcome, error) {
	out := schema.NewOutcome()

	if err := checkSource(src); err != nil {
		d.env.Logger.Error("upload rejected: invalid source", "src", src, "err", err)
		return out.Fail("invalid source file: %v", err), err
	}

	mime, _, err := d.env.Sniffer.Detect(src)
	if err != nil {
		d.env.Logger.Error("upload rejected: sniff failed", "src", src, "err", err)
		wrapped := fmt.Errorf("%w: %v", ErrInvalidSource, err)
		return out.Fail("detect content type: %v", err), wrapped
	}

	if !d.env.Sniffer.Allowed(mime) {
		d.env.Logger.Warn("upload rejected: mime type not allowed", "src", src, "mime", mime)
		wrapped := fmt.Errorf("%w: %s", ErrDisallowedMimeType, mime)
		return out.Fail("mime type %s is not allowed", mime), wrapped
	}

	switch {
	case strings.HasPrefix(mime, "image/"):
		return d.photo.Upload(ctx, src, watermarkCorner)
	case strings.HasPrefix(mime, "audio/"):
		return d.audio.Upload(ctx, src)
	case strings.HasPrefix(mime, "video/"):
		return d.video.Upload(ctx, src)
	default:
		return d.file.Upload(ctx, src)
	}
}

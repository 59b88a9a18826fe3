// Package worker owns the per-media-type upload procedures: path allocation,
// derivative generation, rollback on partial failure, and the dispatcher
// that routes sniffed uploads to the right worker.
package worker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ajur-media/fsnews.media/internal/catalog"
	"github.com/ajur-media/fsnews.media/internal/config"
	"github.com/ajur-media/fsnews.media/internal/convert"
	"github.com/ajur-media/fsnews.media/internal/mimes"
	"github.com/ajur-media/fsnews.media/internal/storage"
)

var (
	// ErrInvalidSource reports a missing or unreadable upload source.
	ErrInvalidSource = errors.New("worker: invalid source file")

	// ErrDisallowedMimeType reports a sniffed type outside the allow-list.
	ErrDisallowedMimeType = errors.New("worker: mime type not allowed")

	// ErrDerivativeGeneration reports a failed derivative; the worker has
	// already rolled back the partial set when this surfaces.
	ErrDerivativeGeneration = errors.New("worker: derivative generation failed")

	// ErrOriginalPersist reports that the original file could not be moved
	// into the storage tree.
	ErrOriginalPersist = errors.New("worker: original file persist failed")
)

// Env bundles the collaborators every worker needs. Built once at startup,
// read-only afterwards.
type Env struct {
	Cfg     *config.Config
	Paths   *storage.Allocator
	Catalog *catalog.Catalog
	Sniffer *mimes.Sniffer
	Prober  *convert.Prober
	Frames  *convert.Extractor
	Logger  *slog.Logger

	// Now is the clock used for date partitioning; overridable in tests.
	Now func() time.Time
}

// NewEnv wires the worker environment from configuration.
func NewEnv(cfg *config.Config, logger *slog.Logger) *Env {
	if logger == nil {
		logger = slog.Default()
	}
	return &Env{
		Cfg:     cfg,
		Paths:   storage.NewAllocator(cfg.StorageRoot, cfg.ContentDirs, cfg.NameAttempts, cfg.RadixLength),
		Catalog: catalog.New(),
		Sniffer: mimes.NewSniffer(cfg.ExtraMimeTypes),
		Prober:  convert.NewProber(cfg.FFprobe),
		Frames:  convert.NewExtractor(cfg.FFmpeg, cfg.NoAccurateSeek, cfg.FramePollInterval, cfg.FrameTimeout, logger),
		Logger:  logger,
		Now:     time.Now,
	}
}

// checkSource verifies the upload source exists and is readable.
func checkSource(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidSource)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSource, path, err)
	}
	_ = f.Close()
	return nil
}

// allocateRadix sniffs the source's true type and probes the random
// namespace for an unused base name, returning the radix plus the detected
// extension and MIME type.
func (e *Env) allocateRadix(dir, src string) (radix, ext, mime string, err error) {
	mime, ext, err = e.Sniffer.Detect(src)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	name, err := e.Paths.AllocateUnusedFilename(dir, e.Cfg.RadixLength, ext)
	if err != nil {
		return "", "", "", err
	}
	if ext == "" {
		return name, ext, mime, nil
	}
	return name[:len(name)-len(ext)-1], ext, mime, nil
}

// moveFile renames src to dst, falling back to copy+remove when the upload
// lands on a different filesystem than the storage tree.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	_ = in.Close()
	if err := os.Remove(src); err != nil {
		// A move that cannot consume its source has not happened; leaving
		// dst behind would report a half-built resource as stored.
		_ = os.Remove(dst)
		return err
	}
	return nil
}

// removeDerivatives deletes every catalog-declared derivative of the radix
// in dir. Best effort: files that were never written are skipped silently.
func removeDerivatives(dir string, specs []catalog.DerivativeSpec, radix, ext string) {
	for _, spec := range specs {
		_ = os.Remove(filepath.Join(dir, spec.Filename(radix, ext)))
	}
}

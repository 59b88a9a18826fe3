// Package mimes sniffs the true content type of uploaded blobs and gates
// them against the upload allow-list. Detection is content-based; client
// supplied filenames and extensions are never trusted.
package mimes

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// defaultAllowed lists the uploadable MIME types. Entries ending in "/"
// match as prefixes, the rest match exactly.
var defaultAllowed = []string{
	"audio/",
	"image/",
	"video/",
	"application/pdf",
	"application/msword",
	"application/vnd.ms-powerpoint",
	"application/rtf",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Sniffer detects and validates content types.
type Sniffer struct {
	allowed []string
}

// NewSniffer builds a sniffer with the default allow-list plus extra entries
// configured at startup.
func NewSniffer(extra []string) *Sniffer {
	allowed := make([]string, 0, len(defaultAllowed)+len(extra))
	allowed = append(allowed, defaultAllowed...)
	allowed = append(allowed, extra...)
	return &Sniffer{allowed: allowed}
}

// Detect sniffs the MIME type of the file at path and derives the canonical
// extension (without the leading dot) for that type.
func (s *Sniffer) Detect(path string) (mime string, ext string, err error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", "", fmt.Errorf("detect mime type: %w", err)
	}
	ext = strings.TrimPrefix(mt.Extension(), ".")
	if ext == "" {
		// The detector's fallback node (application/octet-stream) carries
		// no extension; stored names always need one.
		ext = "bin"
	}
	return mt.String(), ext, nil
}

// Allowed reports whether a sniffed MIME type passes the allow-list.
func (s *Sniffer) Allowed(mime string) bool {
	// Detection may append parameters ("text/xml; charset=utf-8").
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	for _, entry := range s.allowed {
		if strings.HasSuffix(entry, "/") {
			if strings.HasPrefix(mime, entry) {
				return true
			}
		} else if mime == entry {
			return true
		}
	}
	return false
}

// Package storage computes the date-partitioned layout of the media tree and
// allocates collision-free file names inside it.
//
// Layout: {root}/{typeDir}/{YYYY}/{MM}/{prefix}{radix}.{ext}
package storage

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ajur-media/fsnews.media/pkg/schema"
)

var (
	// ErrDirectoryCreate reports a storage directory that could not be
	// created (permissions, races, read-only mounts alike).
	ErrDirectoryCreate = errors.New("storage: directory cannot be created")

	// ErrExhaustedNamespace reports that the random-name allocator ran out
	// of attempts without finding an unused file name.
	ErrExhaustedNamespace = errors.New("storage: filename namespace exhausted")
)

// Dictionary for random base names. 36 symbols keep names lowercase and
// filesystem-safe on case-insensitive volumes.
const dictionary = "0123456789abcdefghijklmnopqrstuvwxyz"

// DatePrefixFormat is the stamp prepended to every random base name.
const DatePrefixFormat = "20060102"

// defaultContentDirs maps media types to storage subdirectories. The "_"
// entry is the fallback for unknown types: directly under the root.
var defaultContentDirs = map[string]string{
	"title":   "titles",
	"titles":  "titles",
	"photos":  "photos",
	"videos":  "videos",
	"audios":  "audios",
	"youtube": "youtube",
	"files":   "files",
	"_":       "",
}

// Allocator resolves media types to dated directories under a storage root.
type Allocator struct {
	root     string
	dirs     map[string]string
	attempts int
	radixLen int
}

// NewAllocator builds an allocator over root. overrides remaps content
// directories for select types; attempts caps the unused-name probe loop and
// radixLen sets the random part length of generated names.
func NewAllocator(root string, overrides map[string]string, attempts, radixLen int) *Allocator {
	dirs := make(map[string]string, len(defaultContentDirs))
	for k, v := range defaultContentDirs {
		dirs[k] = v
	}
	for k, v := range overrides {
		dirs[k] = v
	}
	if attempts <= 0 {
		attempts = 100
	}
	if radixLen <= 0 {
		radixLen = 20
	}
	return &Allocator{root: root, dirs: dirs, attempts: attempts, radixLen: radixLen}
}

// ContentDir returns the storage subdirectory for a media type, falling back
// to the "_" mapping for unknown types.
func (a *Allocator) ContentDir(mediaType schema.MediaType) string {
	if dir, ok := a.dirs[string(mediaType)]; ok {
		return dir
	}
	return a.dirs["_"]
}

// AbsolutePath joins the storage root, the type directory, a 4-digit year and
// a zero-padded month for the given creation moment.
func (a *Allocator) AbsolutePath(mediaType schema.MediaType, at time.Time) string {
	return filepath.Join(a.root, a.ContentDir(mediaType), at.Format("2006"), at.Format("01"))
}

// RelativePath returns the same dated suffix rooted at "/", for URL
// construction by the caller. Always ends with "/".
func (a *Allocator) RelativePath(mediaType schema.MediaType, at time.Time) string {
	return "/" + filepath.ToSlash(filepath.Join(a.ContentDir(mediaType), at.Format("2006"), at.Format("01"))) + "/"
}

// EnsureDir creates the directory tree if absent. The post-condition is
// checked explicitly so permission failures and create/remove races surface
// uniformly as ErrDirectoryCreate.
func (a *Allocator) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o777); err != nil {
		if st, statErr := os.Stat(path); statErr == nil && st.IsDir() {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrDirectoryCreate, path, err)
	}
	return nil
}

// RandomBaseName generates a date-stamped random base name:
// {date}_{random}[_{suffix}]. The random part draws length symbols from the
// 36-character dictionary.
func (a *Allocator) RandomBaseName(length int, suffix string) string {
	if length <= 0 {
		length = a.radixLen
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("storage: crypto/rand unavailable: %v", err))
	}
	for i, b := range buf {
		buf[i] = dictionary[int(b)%len(dictionary)]
	}

	name := time.Now().Format(DatePrefixFormat) + "_" + string(buf)
	if suffix != "" {
		name += "_" + suffix
	}
	return name
}

// AllocateUnusedFilename generates random base names until one with the
// given extension does not yet exist under dir. Uniqueness relies on the
// probe, not on locking: concurrent uploads use independent radixes and the
// random space makes collisions negligible. Extension is passed without the
// leading dot.
func (a *Allocator) AllocateUnusedFilename(dir string, length int, extension string) (string, error) {
	if err := a.EnsureDir(dir); err != nil {
		return "", err
	}

	for i := 0; i < a.attempts; i++ {
		name := a.RandomBaseName(length, "")
		if extension != "" {
			name += "." + extension
		}
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %d attempts in %s", ErrExhaustedNamespace, a.attempts, dir)
}

// package storage resolves opaque media reference strings against backing storage.
//
// Playlist items carry their location as an opaque string (absolute path or
// URI). The core never branches on the string itself; everything that needs
// to touch the bytes goes through a Resolver.
package storage

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// Resolver answers questions about an opaque storage reference.
type Resolver interface {
	// Exists reports whether the referenced storage is still reachable.
	Exists(ref string) bool

	// Size returns the referenced storage's byte size.
	Size(ref string) (int64, error)

	// OpenForRead opens the referenced storage for reading.
	OpenForRead(ref string) (io.ReadSeekCloser, error)
}

// FileResolver resolves plain filesystem paths and file:// URIs.
// References with any other scheme resolve to not-exists.
type FileResolver struct{}

// NewFileResolver creates a FileResolver.
func NewFileResolver() *FileResolver {
	return &FileResolver{}
}

// Exists reports whether the referenced file is present on disk.
func (r *FileResolver) Exists(ref string) bool {
	path, err := r.path(ref)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Size returns the referenced file's size in bytes.
func (r *FileResolver) Size(ref string) (int64, error) {
	path, err := r.path(ref)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Size(), nil
}

// OpenForRead opens the referenced file.
func (r *FileResolver) OpenForRead(ref string) (io.ReadSeekCloser, error) {
	path, err := r.path(ref)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return file, nil
}

// path translates a reference into a filesystem path.
func (r *FileResolver) path(ref string) (string, error) {
	if !strings.Contains(ref, "://") {
		return ref, nil
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("unparseable storage reference %q: %w", ref, err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "", "file":
		if parsed.Path == "" {
			return "", fmt.Errorf("storage reference %q has no path", ref)
		}
		return parsed.Path, nil
	default:
		return "", fmt.Errorf("unsupported storage scheme %q", parsed.Scheme)
	}
}

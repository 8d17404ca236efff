// package testing contains shared testing utilities
package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cocode/playvault/internal/models"
)

// WriteMediaFile creates a fake media file of the given size under dir and
// returns its path.
func WriteMediaFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatalf("Failed to write media file %s: %v", path, err)
	}
	return path
}

// Item builds a playlist item with the fields the domain tests care about.
func Item(id, name string, order int, bytes int64) models.PlaylistItem {
	return models.PlaylistItem{
		ItemID:              id,
		ImportOrderIndex:    order,
		OriginalDisplayName: name,
		MimeType:            "video/mp4",
		LocalPath:           "/media/" + id,
		Bytes:               bytes,
		Status:              models.StatusReady,
	}
}

// Playlist builds a playlist whose count and byte totals match its items.
func Playlist(id, title string, createdAt int64, items ...models.PlaylistItem) models.Playlist {
	return models.Playlist{
		PlaylistID: id,
		Title:      title,
		CreatedAt:  createdAt,
		ItemCount:  len(items),
		TotalBytes: models.SumBytes(items),
		Items:      items,
	}
}

// AssertFileExists fails the test when path is missing.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

// MustReadFile reads a file or fails the test.
func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

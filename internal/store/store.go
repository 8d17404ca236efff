package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cocode/playvault/internal/models"
)

const indexFileName = "index.json"

// PlaylistStore is the single source of truth for the playlist collection.
//
// All public methods acquire the store's mutex for their full duration, so
// at most one load-or-mutate sequence is in flight at a time and an
// in-progress write is never partially visible.
type PlaylistStore struct {
	root      string
	indexPath string
	mu        sync.Mutex
}

// NewPlaylistStore creates a store rooted at the given library directory,
// creating the directory if needed.
func NewPlaylistStore(root string) (*PlaylistStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}
	return &PlaylistStore{
		root:      root,
		indexPath: filepath.Join(root, indexFileName),
	}, nil
}

// Load returns the persisted collection ordered by descending creation time.
// An absent or corrupt index yields an empty collection.
func (s *PlaylistStore) Load() ([]models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	playlists, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(playlists, func(i, j int) bool {
		return playlists[i].CreatedAt > playlists[j].CreatedAt
	})
	return playlists, nil
}

// Upsert replaces any playlist with the same id, or appends the playlist,
// then writes the full collection back.
func (s *PlaylistStore) Upsert(playlist models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked()
	if err != nil {
		return err
	}

	next := make([]models.Playlist, 0, len(current)+1)
	for _, existing := range current {
		if existing.PlaylistID != playlist.PlaylistID {
			next = append(next, existing)
		}
	}
	next = append(next, playlist)

	return s.saveLocked(next)
}

// Remove deletes the playlist with the given id and writes the collection
// back. Removing an unknown id is a no-op.
func (s *PlaylistStore) Remove(playlistID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked()
	if err != nil {
		return err
	}

	next := make([]models.Playlist, 0, len(current))
	for _, existing := range current {
		if existing.PlaylistID != playlistID {
			next = append(next, existing)
		}
	}

	return s.saveLocked(next)
}

// Replace overwrites the whole collection. Used after reconciliation.
func (s *PlaylistStore) Replace(playlists []models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(playlists)
}

// DirectoryFor returns a playlist-scoped storage directory, creating it if
// needed. Collaborators that copy media bytes write into it.
func (s *PlaylistStore) DirectoryFor(playlistID string) (string, error) {
	dir := filepath.Join(s.root, playlistID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create playlist directory: %w", err)
	}
	return dir, nil
}

// Root returns the library root directory.
func (s *PlaylistStore) Root() string {
	return s.root
}

func (s *PlaylistStore) loadLocked() ([]models.Playlist, error) {
	content, err := os.ReadFile(s.indexPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read playlist index: %w", err)
	}
	return Decode(string(content)), nil
}

// saveLocked writes the collection with a temp-file rename so the index is
// replaced all-or-nothing.
func (s *PlaylistStore) saveLocked(playlists []models.Playlist) error {
	encoded, err := Encode(playlists)
	if err != nil {
		return fmt.Errorf("failed to encode playlist index: %w", err)
	}

	tmp := s.indexPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(encoded), 0644); err != nil {
		return fmt.Errorf("failed to write playlist index: %w", err)
	}
	if err := os.Rename(tmp, s.indexPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace playlist index: %w", err)
	}
	return nil
}

// package watcher reacts to backing storage changes by re-running the
// repository's reconciliation pass, so playlists shed unreachable items
// without waiting for the next application start.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/cocode/playvault/internal/models"
	"github.com/cocode/playvault/internal/shared"
)

// Reconciler is the slice of the playlist repository the watcher drives.
type Reconciler interface {
	LoadPlaylists() ([]models.Playlist, error)
}

// Watcher monitors a directory tree and reconciles after changes settle.
type Watcher struct {
	repo     Reconciler
	logger   *log.Logger
	debounce time.Duration
}

// New creates a Watcher with a half-second settle window.
func New(repo Reconciler, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Watcher{repo: repo, logger: logger, debounce: 500 * time.Millisecond}
}

// Watch blocks until the context is cancelled, reconciling the playlist
// collection whenever files under dir are created, removed, or renamed.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := addDirectoryTree(fsWatcher, dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("watching library", "path", dir)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(fsWatcher, event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", "error", err)

		case <-timer.C:
			playlists, err := w.repo.LoadPlaylists()
			if err != nil {
				w.logger.Error("reconciliation failed", "error", err)
				continue
			}
			w.logger.Info("reconciled library", "playlists", len(playlists))
		}
	}
}

// handleEvent reports whether the event should schedule a reconciliation.
func (w *Watcher) handleEvent(fsWatcher *fsnotify.Watcher, event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".tmp") {
		return false
	}

	// New subdirectories need to be picked up for further events.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fsWatcher.Add(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return false
		}
	}

	return event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// addDirectoryTree recursively adds dir and its subdirectories to the watcher.
func addDirectoryTree(fsWatcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fsWatcher.Add(path)
		}
		return nil
	})
}

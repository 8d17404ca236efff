package watcher

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cocode/playvault/internal/models"
	ptest "github.com/cocode/playvault/internal/testing"
)

type countingReconciler struct {
	calls atomic.Int32
}

func (c *countingReconciler) LoadPlaylists() ([]models.Playlist, error) {
	c.calls.Add(1)
	return nil, nil
}

func waitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return condition()
}

func TestWatch(t *testing.T) {
	t.Run("reconciles after a file disappears", func(t *testing.T) {
		dir := t.TempDir()
		path := ptest.WriteMediaFile(t, dir, "clip.mp4", 10)

		reconciler := &countingReconciler{}
		w := New(reconciler, nil)
		w.debounce = 50 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- w.Watch(ctx, dir) }()

		// give the watcher a moment to install its watches
		time.Sleep(100 * time.Millisecond)

		if err := os.Remove(path); err != nil {
			t.Fatal(err)
		}

		if !waitFor(t, 2*time.Second, func() bool { return reconciler.calls.Load() > 0 }) {
			t.Error("expected a reconciliation after the remove event")
		}

		cancel()
		if err := <-done; err != nil {
			t.Errorf("Watch returned %v", err)
		}
	})

	t.Run("ignores temp files", func(t *testing.T) {
		dir := t.TempDir()

		reconciler := &countingReconciler{}
		w := New(reconciler, nil)
		w.debounce = 50 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- w.Watch(ctx, dir) }()

		time.Sleep(100 * time.Millisecond)

		ptest.WriteMediaFile(t, dir, "index.json.tmp", 10)
		ptest.WriteMediaFile(t, dir, ".hidden", 10)

		time.Sleep(300 * time.Millisecond)
		if got := reconciler.calls.Load(); got != 0 {
			t.Errorf("expected no reconciliation for ignored files, got %d", got)
		}

		cancel()
		<-done
	})

	t.Run("missing directory fails fast", func(t *testing.T) {
		w := New(&countingReconciler{}, nil)
		if err := w.Watch(context.Background(), "/no/such/directory"); err == nil {
			t.Error("expected an error")
		}
	})
}

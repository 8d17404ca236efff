package policy

import (
	"testing"

	"github.com/cocode/playvault/internal/models"
	ptest "github.com/cocode/playvault/internal/testing"
)

func TestReconcile(t *testing.T) {
	t.Run("removes missing items and reindexes", func(t *testing.T) {
		playlist := ptest.Playlist("p1", "P", 1,
			ptest.Item("a", "a.mp4", 0, 100),
			ptest.Item("b", "b.mp4", 1, 200),
			ptest.Item("c", "c.mp4", 2, 300),
		)

		adjusted := Reconcile(&playlist, func(item models.PlaylistItem) bool {
			return item.ItemID != "b"
		})

		if adjusted == nil {
			t.Fatal("expected adjusted playlist, got nil")
		}
		if got := itemIDs(adjusted.Items); got[0] != "a" || got[1] != "c" || len(got) != 2 {
			t.Errorf("expected items [a c], got %v", got)
		}
		for i, item := range adjusted.Items {
			if item.ImportOrderIndex != i {
				t.Errorf("expected index %d, got %d", i, item.ImportOrderIndex)
			}
		}
		if adjusted.ItemCount != 2 {
			t.Errorf("expected itemCount 2, got %d", adjusted.ItemCount)
		}
		if adjusted.TotalBytes != 400 {
			t.Errorf("expected totalBytes 400, got %d", adjusted.TotalBytes)
		}
		if err := adjusted.Validate(); err != nil {
			t.Errorf("adjusted playlist violates invariants: %v", err)
		}
	})

	t.Run("returns nil when all items missing", func(t *testing.T) {
		playlist := ptest.Playlist("p1", "P", 1, ptest.Item("x", "x.mp4", 0, 42))

		adjusted := Reconcile(&playlist, func(models.PlaylistItem) bool { return false })

		if adjusted != nil {
			t.Errorf("expected nil, got %+v", adjusted)
		}
	})

	t.Run("returns identical playlist instance when nothing changed", func(t *testing.T) {
		playlist := ptest.Playlist("p1", "P", 1,
			ptest.Item("a", "a.mp4", 0, 100),
			ptest.Item("b", "b.mp4", 1, 200),
		)

		adjusted := Reconcile(&playlist, func(models.PlaylistItem) bool { return true })

		if adjusted != &playlist {
			t.Error("expected the original playlist instance back")
		}
	})

	t.Run("repairs out-of-order indices even when all items survive", func(t *testing.T) {
		playlist := ptest.Playlist("p1", "P", 1,
			ptest.Item("b", "b.mp4", 5, 200),
			ptest.Item("a", "a.mp4", 2, 100),
		)

		adjusted := Reconcile(&playlist, func(models.PlaylistItem) bool { return true })

		if adjusted == &playlist {
			t.Fatal("expected a rebuilt playlist")
		}
		if got := itemIDs(adjusted.Items); got[0] != "a" || got[1] != "b" {
			t.Errorf("expected sort by prior index [a b], got %v", got)
		}
		if err := adjusted.Validate(); err != nil {
			t.Errorf("adjusted playlist violates invariants: %v", err)
		}
	})

	t.Run("does not mutate its input", func(t *testing.T) {
		playlist := ptest.Playlist("p1", "P", 1,
			ptest.Item("a", "a.mp4", 0, 100),
			ptest.Item("b", "b.mp4", 1, 200),
		)

		Reconcile(&playlist, func(item models.PlaylistItem) bool {
			return item.ItemID != "a"
		})

		if playlist.ItemCount != 2 || len(playlist.Items) != 2 {
			t.Error("input playlist was mutated")
		}
		if playlist.Items[0].ImportOrderIndex != 0 || playlist.Items[1].ImportOrderIndex != 1 {
			t.Error("input item indices were mutated")
		}
	})
}

func itemIDs(items []models.PlaylistItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ItemID
	}
	return ids
}

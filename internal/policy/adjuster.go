package policy

import (
	"sort"

	"github.com/cocode/playvault/internal/models"
)

// Reconcile repairs a playlist whose items may reference storage that no
// longer exists. Items rejected by the exists predicate are dropped, the
// survivors are re-sequenced to contiguous import order indices, and the
// count and byte totals are recomputed.
//
// Returns nil when no item survives: the caller must delete the playlist
// rather than persist it empty. When nothing changed, the original playlist
// pointer is returned unmodified so callers can skip a redundant store
// write. Reconcile never mutates its input.
//
// Single-item deletion reuses this primitive with an id-exclusion predicate,
// so explicit deletes and unreachable media share one re-sequencing path.
func Reconcile(playlist *models.Playlist, exists func(models.PlaylistItem) bool) *models.Playlist {
	kept := make([]models.PlaylistItem, 0, len(playlist.Items))
	for _, item := range playlist.Items {
		if exists(item) {
			kept = append(kept, item)
		}
	}

	if len(kept) == 0 {
		return nil
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].ImportOrderIndex < kept[j].ImportOrderIndex
	})
	for i := range kept {
		kept[i].ImportOrderIndex = i
	}

	count := len(kept)
	bytes := models.SumBytes(kept)
	if count == playlist.ItemCount && bytes == playlist.TotalBytes && models.ItemsEqual(kept, playlist.Items) {
		return playlist
	}

	adjusted := *playlist
	adjusted.ItemCount = count
	adjusted.TotalBytes = bytes
	adjusted.Items = kept
	return &adjusted
}

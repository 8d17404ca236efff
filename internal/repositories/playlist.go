package repositories

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cocode/playvault/internal/importer"
	"github.com/cocode/playvault/internal/models"
	"github.com/cocode/playvault/internal/policy"
	"github.com/cocode/playvault/internal/shared"
	"github.com/cocode/playvault/internal/storage"
	"github.com/cocode/playvault/internal/store"
)

// PlaylistRepository is the façade over the durable store, the
// reconciliation and caption merge policies, and the import pipeline.
//
// Load and the mutating operations call the store as separate locked
// sections; there is no cross-call atomicity, so two concurrent
// read-modify-write callers race with last-write-wins semantics. Callers
// needing stronger guarantees must serialize at a higher level.
type PlaylistRepository struct {
	store    *store.PlaylistStore
	importer *importer.Service
	resolver storage.Resolver
	logger   *log.Logger
	now      func() int64
}

// NewPlaylistRepository creates a PlaylistRepository.
func NewPlaylistRepository(st *store.PlaylistStore, imp *importer.Service, resolver storage.Resolver, logger *log.Logger) *PlaylistRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PlaylistRepository{
		store:    st,
		importer: imp,
		resolver: resolver,
		logger:   logger,
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// LoadPlaylists returns the stored collection after reconciling every
// playlist against backing storage. Playlists emptied by reconciliation are
// dropped, and the reconciled form is persisted only when it differs from
// what was loaded.
func (r *PlaylistRepository) LoadPlaylists() ([]models.Playlist, error) {
	current, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	reconciled := make([]models.Playlist, 0, len(current))
	changed := false
	for i := range current {
		adjusted := policy.Reconcile(&current[i], r.storageReferenceExists)
		if adjusted == nil {
			r.logger.Info("dropping playlist with no reachable items", "playlist", current[i].PlaylistID, "title", current[i].Title)
			changed = true
			continue
		}
		if adjusted != &current[i] {
			changed = true
		}
		reconciled = append(reconciled, *adjusted)
	}

	if changed {
		if err := r.store.Replace(reconciled); err != nil {
			return nil, fmt.Errorf("failed to persist reconciled playlists: %w", err)
		}
	}
	return reconciled, nil
}

// ImportPayload imports a batch of media sources. A payload carrying a
// caption merges into the existing playlist with the same caption key,
// deduplicating by filename; otherwise a standalone playlist is created.
// Nothing is written when the merge adds no new items.
func (r *PlaylistRepository) ImportPayload(payload importer.Payload) (*models.ImportResult, error) {
	createdAt := r.now()
	batchID := shared.GenerateID()

	draft, err := r.importer.ImportPayload(payload, batchID)
	if err != nil {
		return nil, err
	}

	description := payload.FirstDescription
	if description == "" {
		description = draft.FirstTagTitle
	}
	title := policy.ResolveTitle(description, payload.Caption, draft.FirstDisplayName, createdAt)

	if len(draft.Items) == 0 {
		return &models.ImportResult{
			Summary: models.ImportSummary{
				Title:            title,
				SkippedCount:     draft.SkippedCount,
				UnsupportedCount: draft.UnsupportedCount,
			},
		}, nil
	}

	if policy.CaptionKey(payload.Caption) != "" {
		existing, err := r.LoadPlaylists()
		if err != nil {
			return nil, err
		}

		merge := policy.MergeIntoCaptionPlaylist(existing, draft.Items, payload.Caption, createdAt, payload.SourceApp)
		if merge != nil {
			summary := models.ImportSummary{
				Title:            merge.Playlist.Title,
				ImportedCount:    merge.AddedCount,
				SkippedCount:     draft.SkippedCount + merge.DuplicateCount,
				UnsupportedCount: draft.UnsupportedCount,
				TotalBytes:       merge.AddedBytes,
			}

			if merge.AddedCount > 0 {
				if err := r.store.Upsert(merge.Playlist); err != nil {
					return nil, err
				}
			}

			playlist := merge.Playlist
			return &models.ImportResult{Playlist: &playlist, Summary: summary}, nil
		}
	}

	playlist := models.Playlist{
		PlaylistID: batchID,
		Title:      title,
		CreatedAt:  createdAt,
		SourceApp:  payload.SourceApp,
		ItemCount:  len(draft.Items),
		TotalBytes: draft.TotalBytes,
		Items:      draft.Items,
	}
	if err := r.store.Upsert(playlist); err != nil {
		return nil, err
	}

	return &models.ImportResult{
		Playlist: &playlist,
		Summary: models.ImportSummary{
			Title:            title,
			ImportedCount:    draft.ImportedCount,
			SkippedCount:     draft.SkippedCount,
			UnsupportedCount: draft.UnsupportedCount,
			TotalBytes:       draft.TotalBytes,
		},
	}, nil
}

// DeletePlaylist removes a playlist. Unknown ids are a no-op.
func (r *PlaylistRepository) DeletePlaylist(playlistID string) error {
	return r.store.Remove(playlistID)
}

// DeleteItem removes one item from a playlist through the reconciliation
// primitive, re-sequencing the survivors. A playlist emptied by the delete
// is removed entirely. Unknown playlist or item ids are a no-op.
func (r *PlaylistRepository) DeleteItem(playlistID, itemID string) error {
	playlists, err := r.LoadPlaylists()
	if err != nil {
		return err
	}

	target := findPlaylist(playlists, playlistID)
	if target == nil {
		return nil
	}

	adjusted := policy.Reconcile(target, func(item models.PlaylistItem) bool {
		return item.ItemID != itemID
	})
	if adjusted == nil {
		return r.store.Remove(playlistID)
	}
	if adjusted == target {
		return nil
	}
	return r.store.Upsert(*adjusted)
}

// MarkItemDecodeFailed flags an item the playback engine could not decode.
// Indices are left untouched; the item stays in place.
func (r *PlaylistRepository) MarkItemDecodeFailed(playlistID, itemID string) error {
	playlists, err := r.LoadPlaylists()
	if err != nil {
		return err
	}

	target := findPlaylist(playlists, playlistID)
	if target == nil {
		return nil
	}

	found := false
	items := make([]models.PlaylistItem, len(target.Items))
	for i, item := range target.Items {
		if item.ItemID == itemID {
			item.Status = models.StatusDecodeFailed
			found = true
		}
		items[i] = item
	}
	if !found {
		return nil
	}

	updated := *target
	updated.Items = items
	return r.store.Upsert(updated)
}

// SaveDurations stores probed durations for the given items. Items missing
// from the map are left untouched.
func (r *PlaylistRepository) SaveDurations(playlistID string, durations map[string]int64) error {
	playlists, err := r.LoadPlaylists()
	if err != nil {
		return err
	}

	target := findPlaylist(playlists, playlistID)
	if target == nil {
		return nil
	}

	found := false
	items := make([]models.PlaylistItem, len(target.Items))
	for i, item := range target.Items {
		if ms, ok := durations[item.ItemID]; ok {
			duration := ms
			item.DurationMs = &duration
			found = true
		}
		items[i] = item
	}
	if !found {
		return nil
	}

	updated := *target
	updated.Items = items
	return r.store.Upsert(updated)
}

// LocalFileExists reports whether an item's backing storage is reachable.
func (r *PlaylistRepository) LocalFileExists(item models.PlaylistItem) bool {
	return r.storageReferenceExists(item)
}

func (r *PlaylistRepository) storageReferenceExists(item models.PlaylistItem) bool {
	return r.resolver.Exists(item.LocalPath)
}

func findPlaylist(playlists []models.Playlist, playlistID string) *models.Playlist {
	for i := range playlists {
		if playlists[i].PlaylistID == playlistID {
			return &playlists[i]
		}
	}
	return nil
}

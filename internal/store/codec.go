package store

import (
	"encoding/json"

	"github.com/cocode/playvault/internal/models"
)

// The persisted record format has no version field; compatibility across
// application updates relies entirely on field-level tolerance in Decode.

type collectionRecord struct {
	Playlists []playlistRecord `json:"playlists"`
}

type playlistRecord struct {
	PlaylistID string       `json:"playlistId"`
	Title      string       `json:"title"`
	CreatedAt  int64        `json:"createdAt"`
	UpdatedAt  *int64       `json:"updatedAt,omitempty"`
	SourceApp  string       `json:"sourceApp,omitempty"`
	CaptionKey string       `json:"captionKey,omitempty"`
	ItemCount  int          `json:"itemCount"`
	TotalBytes int64        `json:"totalBytes"`
	Items      []itemRecord `json:"items"`
}

type itemRecord struct {
	ItemID              string `json:"itemId"`
	ImportOrderIndex    int    `json:"importOrderIndex"`
	OriginalDisplayName string `json:"originalDisplayName"`
	MimeType            string `json:"mimeType"`
	LocalPath           string `json:"localPath"`
	Bytes               int64  `json:"bytes"`
	DurationMs          *int64 `json:"durationMs,omitempty"`
	Status              string `json:"status"`
}

// Encode serializes the playlist collection to its persisted JSON form.
func Encode(playlists []models.Playlist) (string, error) {
	record := collectionRecord{Playlists: make([]playlistRecord, 0, len(playlists))}
	for _, playlist := range playlists {
		record.Playlists = append(record.Playlists, toPlaylistRecord(playlist))
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses persisted JSON into the entity model. It never fails:
// unparseable input yields an empty collection, a playlist record missing
// an identity field is dropped, and absent optional fields take defaults.
func Decode(raw string) []models.Playlist {
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(root["playlists"], &entries); err != nil {
		return nil
	}

	var playlists []models.Playlist
	for _, entry := range entries {
		playlist, ok := decodePlaylist(entry)
		if !ok {
			continue
		}
		playlists = append(playlists, playlist)
	}
	return playlists
}

func toPlaylistRecord(playlist models.Playlist) playlistRecord {
	items := make([]itemRecord, 0, len(playlist.Items))
	for _, item := range playlist.Items {
		items = append(items, itemRecord{
			ItemID:              item.ItemID,
			ImportOrderIndex:    item.ImportOrderIndex,
			OriginalDisplayName: item.OriginalDisplayName,
			MimeType:            item.MimeType,
			LocalPath:           item.LocalPath,
			Bytes:               item.Bytes,
			DurationMs:          item.DurationMs,
			Status:              string(item.Status),
		})
	}

	return playlistRecord{
		PlaylistID: playlist.PlaylistID,
		Title:      playlist.Title,
		CreatedAt:  playlist.CreatedAt,
		UpdatedAt:  playlist.UpdatedAt,
		SourceApp:  playlist.SourceApp,
		CaptionKey: playlist.CaptionKey,
		ItemCount:  playlist.ItemCount,
		TotalBytes: playlist.TotalBytes,
		Items:      items,
	}
}

func decodePlaylist(raw json.RawMessage) (models.Playlist, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.Playlist{}, false
	}

	playlistID := optString(fields, "playlistId", "")
	title := optString(fields, "title", "")
	if playlistID == "" || title == "" {
		return models.Playlist{}, false
	}

	var items []models.PlaylistItem
	var itemEntries []json.RawMessage
	if err := json.Unmarshal(fields["items"], &itemEntries); err == nil {
		for _, entry := range itemEntries {
			item, ok := decodeItem(entry)
			if !ok {
				continue
			}
			items = append(items, item)
		}
	}

	itemCount := len(items)
	if _, present := fields["itemCount"]; present {
		itemCount = int(optInt64(fields, "itemCount", int64(len(items))))
	}

	var updatedAt *int64
	if v := optInt64(fields, "updatedAt", 0); v > 0 {
		updatedAt = &v
	}

	return models.Playlist{
		PlaylistID: playlistID,
		Title:      title,
		CreatedAt:  optInt64(fields, "createdAt", 0),
		UpdatedAt:  updatedAt,
		SourceApp:  optString(fields, "sourceApp", ""),
		CaptionKey: optString(fields, "captionKey", ""),
		ItemCount:  itemCount,
		TotalBytes: optInt64(fields, "totalBytes", 0),
		Items:      items,
	}, true
}

func decodeItem(raw json.RawMessage) (models.PlaylistItem, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.PlaylistItem{}, false
	}

	itemID := optString(fields, "itemId", "")
	localPath := optString(fields, "localPath", "")
	if itemID == "" || localPath == "" {
		return models.PlaylistItem{}, false
	}

	var durationMs *int64
	if raw, present := fields["durationMs"]; present && string(raw) != "null" {
		var duration int64
		if err := json.Unmarshal(raw, &duration); err == nil {
			durationMs = &duration
		}
	}

	return models.PlaylistItem{
		ItemID:              itemID,
		ImportOrderIndex:    int(optInt64(fields, "importOrderIndex", 0)),
		OriginalDisplayName: optString(fields, "originalDisplayName", "Media file"),
		MimeType:            optString(fields, "mimeType", "application/octet-stream"),
		LocalPath:           localPath,
		Bytes:               optInt64(fields, "bytes", 0),
		DurationMs:          durationMs,
		Status:              models.ParseItemStatus(optString(fields, "status", "")),
	}, true
}

// optString returns the string at key, or fallback when the field is
// absent, null, or not a string.
func optString(fields map[string]json.RawMessage, key, fallback string) string {
	raw, present := fields[key]
	if !present {
		return fallback
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil || value == "" {
		return fallback
	}
	return value
}

// optInt64 returns the integer at key, or fallback when the field is
// absent, null, or not numeric.
func optInt64(fields map[string]json.RawMessage, key string, fallback int64) int64 {
	raw, present := fields[key]
	if !present {
		return fallback
	}
	var value int64
	if err := json.Unmarshal(raw, &value); err != nil {
		return fallback
	}
	return value
}

package models

import "fmt"

// ItemStatus describes the playback readiness of a single playlist item.
type ItemStatus string

const (
	StatusReady        ItemStatus = "READY"
	StatusDecodeFailed ItemStatus = "DECODE_FAILED"
	StatusDeleted      ItemStatus = "DELETED"
)

// ParseItemStatus maps a persisted status name to an [ItemStatus].
// Unknown or empty names fall back to [StatusReady] so that records written
// by newer application versions remain loadable.
func ParseItemStatus(name string) ItemStatus {
	switch ItemStatus(name) {
	case StatusReady, StatusDecodeFailed, StatusDeleted:
		return ItemStatus(name)
	default:
		return StatusReady
	}
}

// PlaylistItem is one imported media reference within a playlist.
//
// LocalPath is an opaque storage reference (absolute path or URI); the core
// never interprets it and defers existence checks to a storage resolver.
type PlaylistItem struct {
	ItemID              string
	ImportOrderIndex    int
	OriginalDisplayName string
	MimeType            string
	LocalPath           string
	Bytes               int64
	DurationMs          *int64 // nil until a duration probe fills it in
	Status              ItemStatus
}

// Equal reports whether two items carry identical field values.
func (i PlaylistItem) Equal(other PlaylistItem) bool {
	if i.ItemID != other.ItemID ||
		i.ImportOrderIndex != other.ImportOrderIndex ||
		i.OriginalDisplayName != other.OriginalDisplayName ||
		i.MimeType != other.MimeType ||
		i.LocalPath != other.LocalPath ||
		i.Bytes != other.Bytes ||
		i.Status != other.Status {
		return false
	}
	if (i.DurationMs == nil) != (other.DurationMs == nil) {
		return false
	}
	if i.DurationMs != nil && *i.DurationMs != *other.DurationMs {
		return false
	}
	return true
}

// Playlist is a named, ordered, persisted collection of media references.
//
// CreatedAt and UpdatedAt are epoch milliseconds. CaptionKey, when set, is
// the normalized caption under which successive shared imports merge; at
// most one playlist in a store snapshot may carry a given key.
type Playlist struct {
	PlaylistID string
	Title      string
	CreatedAt  int64
	UpdatedAt  *int64
	SourceApp  string
	CaptionKey string
	ItemCount  int
	TotalBytes int64
	Items      []PlaylistItem
}

// SumBytes totals the byte sizes of the given items.
func SumBytes(items []PlaylistItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Bytes
	}
	return total
}

// ItemsEqual reports whether two item slices are element-wise identical.
func ItemsEqual(a, b []PlaylistItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Validate checks the playlist's count, byte, and index invariants.
// A violation indicates a defect in whichever component produced the
// playlist, not a recoverable runtime condition.
func (p *Playlist) Validate() error {
	if p.PlaylistID == "" {
		return fmt.Errorf("playlist has no id")
	}
	if p.Title == "" {
		return fmt.Errorf("playlist %s has no title", p.PlaylistID)
	}
	if p.ItemCount != len(p.Items) {
		return fmt.Errorf("playlist %s: itemCount %d does not match %d items", p.PlaylistID, p.ItemCount, len(p.Items))
	}
	if total := SumBytes(p.Items); p.TotalBytes != total {
		return fmt.Errorf("playlist %s: totalBytes %d does not match item sum %d", p.PlaylistID, p.TotalBytes, total)
	}
	seen := make(map[int]bool, len(p.Items))
	for _, item := range p.Items {
		idx := item.ImportOrderIndex
		if idx < 0 || idx >= len(p.Items) || seen[idx] {
			return fmt.Errorf("playlist %s: import order indices are not the contiguous range 0..%d", p.PlaylistID, len(p.Items)-1)
		}
		seen[idx] = true
	}
	return nil
}

// ImportSummary reports the outcome of importing one payload.
// SkippedCount includes both pipeline skips and merge duplicate skips.
type ImportSummary struct {
	Title            string
	ImportedCount    int
	SkippedCount     int
	UnsupportedCount int
	TotalBytes       int64
}

// ImportResult pairs the persisted playlist (nil when nothing was imported)
// with the user-facing summary.
type ImportResult struct {
	Playlist *Playlist
	Summary  ImportSummary
}

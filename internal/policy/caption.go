package policy

import (
	"sort"
	"strings"

	"github.com/cocode/playvault/internal/models"
	"github.com/cocode/playvault/internal/shared"
)

// MergeResult reports the outcome of merging an imported batch into a
// caption-keyed playlist. AddedCount of zero means the returned playlist is
// the existing one unchanged and no store write is needed.
type MergeResult struct {
	Playlist       models.Playlist
	AddedCount     int
	DuplicateCount int
	AddedBytes     int64
}

// CaptionKey normalizes a share caption into a merge-grouping key: trimmed,
// internal whitespace runs collapsed to single spaces, lowercased. A blank
// caption yields the empty string, meaning "never merge".
func CaptionKey(caption string) string {
	return strings.ToLower(strings.Join(strings.Fields(caption), " "))
}

// MergeIntoCaptionPlaylist groups an incoming batch of freshly imported
// items into the existing playlist carrying the same caption key, or into a
// new playlist when none exists. Incoming items whose normalized filename is
// already present are counted as duplicates and discarded; the merged item
// set is re-sorted in natural filename order and re-sequenced.
//
// Returns nil when the caption normalizes to blank, which tells the caller
// to fall back to standalone playlist creation.
func MergeIntoCaptionPlaylist(existingPlaylists []models.Playlist, incomingItems []models.PlaylistItem, caption string, createdAt int64, sourceApp string) *MergeResult {
	key := CaptionKey(caption)
	if key == "" {
		return nil
	}

	title := strings.TrimSpace(caption)
	if title == "" {
		title = "Playlist"
	}

	var existing *models.Playlist
	for i := range existingPlaylists {
		if existingPlaylists[i].CaptionKey == key {
			existing = &existingPlaylists[i]
			break
		}
	}

	keptNames := make(map[string]bool)
	if existing != nil {
		for _, item := range existing.Items {
			keptNames[normalizedFileName(item.OriginalDisplayName)] = true
		}
	}

	var uniqueIncoming []models.PlaylistItem
	duplicates := 0
	for _, item := range incomingItems {
		name := normalizedFileName(item.OriginalDisplayName)
		if keptNames[name] {
			duplicates++
			continue
		}
		keptNames[name] = true
		uniqueIncoming = append(uniqueIncoming, item)
	}

	if existing != nil && len(uniqueIncoming) == 0 {
		return &MergeResult{
			Playlist:       *existing,
			AddedCount:     0,
			DuplicateCount: duplicates,
			AddedBytes:     0,
		}
	}

	var merged []models.PlaylistItem
	if existing != nil {
		merged = append(merged, existing.Items...)
	}
	merged = append(merged, uniqueIncoming...)
	sort.SliceStable(merged, func(i, j int) bool {
		return compareItemsNatural(merged[i], merged[j]) < 0
	})
	for i := range merged {
		merged[i].ImportOrderIndex = i
	}

	var playlist models.Playlist
	if existing != nil {
		playlist = *existing
		playlist.Title = title
		playlist.UpdatedAt = &createdAt
		if sourceApp != "" {
			playlist.SourceApp = sourceApp
		}
	} else {
		playlist = models.Playlist{
			PlaylistID: shared.GenerateID(),
			Title:      title,
			CreatedAt:  createdAt,
			SourceApp:  sourceApp,
		}
	}
	playlist.CaptionKey = key
	playlist.ItemCount = len(merged)
	playlist.TotalBytes = models.SumBytes(merged)
	playlist.Items = merged

	return &MergeResult{
		Playlist:       playlist,
		AddedCount:     len(uniqueIncoming),
		DuplicateCount: duplicates,
		AddedBytes:     models.SumBytes(uniqueIncoming),
	}
}

func normalizedFileName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// compareItemsNatural orders items by natural filename order, breaking full
// ties by pre-merge import order so identically named files keep their
// batch arrival order.
func compareItemsNatural(left, right models.PlaylistItem) int {
	byName := compareNatural(strings.ToLower(left.OriginalDisplayName), strings.ToLower(right.OriginalDisplayName))
	if byName != 0 {
		return byName
	}
	switch {
	case left.ImportOrderIndex < right.ImportOrderIndex:
		return -1
	case left.ImportOrderIndex > right.ImportOrderIndex:
		return 1
	default:
		return 0
	}
}

// compareNatural compares strings character by character, except that
// embedded decimal digit runs compare numerically: first by stripped-zero
// length, then as digit strings, then by un-stripped run length. The
// shorter string wins when it is a strict prefix of the longer one.
func compareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			iEnd := digitRunEnd(a, i)
			jEnd := digitRunEnd(b, j)
			na := strings.TrimLeft(a[i:iEnd], "0")
			nb := strings.TrimLeft(b[j:jEnd], "0")
			if byLength := compareInts(len(na), len(nb)); byLength != 0 {
				return byLength
			}
			if byNumber := strings.Compare(na, nb); byNumber != 0 {
				return byNumber
			}
			if byRunLength := compareInts(iEnd-i, jEnd-j); byRunLength != 0 {
				return byRunLength
			}
			i, j = iEnd, jEnd
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	return compareInts(len(a)-i, len(b)-j)
}

func digitRunEnd(value string, start int) int {
	end := start
	for end < len(value) && isDigit(value[end]) {
		end++
	}
	return end
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

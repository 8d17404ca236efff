package store

import (
	"reflect"
	"testing"

	"github.com/cocode/playvault/internal/models"
	ptest "github.com/cocode/playvault/internal/testing"
)

func TestDecode(t *testing.T) {
	t.Run("unparseable input yields empty collection", func(t *testing.T) {
		if got := Decode("{not json"); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
		if got := Decode(""); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("missing playlists field yields empty collection", func(t *testing.T) {
		if got := Decode(`{"somethingElse": 1}`); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("drops playlists without identity fields", func(t *testing.T) {
		raw := `{"playlists": [
			{"title": "No id", "items": []},
			{"playlistId": "p1", "items": []},
			{"playlistId": "p2", "title": "Kept", "createdAt": 5, "items": []}
		]}`

		playlists := Decode(raw)
		if len(playlists) != 1 {
			t.Fatalf("expected 1 playlist, got %d", len(playlists))
		}
		if playlists[0].PlaylistID != "p2" || playlists[0].Title != "Kept" {
			t.Errorf("unexpected survivor: %+v", playlists[0])
		}
	})

	t.Run("drops items without identity fields", func(t *testing.T) {
		raw := `{"playlists": [{"playlistId": "p1", "title": "T", "items": [
			{"itemId": "i1"},
			{"localPath": "/media/x"},
			{"itemId": "i2", "localPath": "/media/y"}
		]}]}`

		playlists := Decode(raw)
		if len(playlists) != 1 || len(playlists[0].Items) != 1 {
			t.Fatalf("expected 1 playlist with 1 item, got %+v", playlists)
		}
		if playlists[0].Items[0].ItemID != "i2" {
			t.Errorf("unexpected survivor: %+v", playlists[0].Items[0])
		}
	})

	t.Run("applies defaults for absent item fields", func(t *testing.T) {
		raw := `{"playlists": [{"playlistId": "p1", "title": "T", "items": [
			{"itemId": "i1", "localPath": "/media/a"}
		]}]}`

		item := Decode(raw)[0].Items[0]
		if item.OriginalDisplayName != "Media file" {
			t.Errorf("expected display name fallback, got %q", item.OriginalDisplayName)
		}
		if item.MimeType != "application/octet-stream" {
			t.Errorf("expected mime fallback, got %q", item.MimeType)
		}
		if item.Bytes != 0 || item.ImportOrderIndex != 0 {
			t.Errorf("expected zero numerics, got %+v", item)
		}
		if item.DurationMs != nil {
			t.Errorf("expected absent duration, got %d", *item.DurationMs)
		}
		if item.Status != models.StatusReady {
			t.Errorf("expected READY fallback, got %s", item.Status)
		}
	})

	t.Run("explicit null duration stays absent", func(t *testing.T) {
		raw := `{"playlists": [{"playlistId": "p1", "title": "T", "items": [
			{"itemId": "i1", "localPath": "/media/a", "durationMs": null}
		]}]}`

		if got := Decode(raw)[0].Items[0].DurationMs; got != nil {
			t.Errorf("expected nil duration, got %d", *got)
		}
	})

	t.Run("unknown status parses as READY", func(t *testing.T) {
		raw := `{"playlists": [{"playlistId": "p1", "title": "T", "items": [
			{"itemId": "i1", "localPath": "/media/a", "status": "EXPLODED"}
		]}]}`

		if got := Decode(raw)[0].Items[0].Status; got != models.StatusReady {
			t.Errorf("expected READY, got %s", got)
		}
	})

	t.Run("itemCount defaults to surviving item count only when absent", func(t *testing.T) {
		absent := `{"playlists": [{"playlistId": "p1", "title": "T", "items": [
			{"itemId": "i1", "localPath": "/a"}, {"itemId": "i2", "localPath": "/b"}
		]}]}`
		if got := Decode(absent)[0].ItemCount; got != 2 {
			t.Errorf("expected derived count 2, got %d", got)
		}

		present := `{"playlists": [{"playlistId": "p1", "title": "T", "itemCount": 7, "items": []}]}`
		if got := Decode(present)[0].ItemCount; got != 7 {
			t.Errorf("expected stored count 7, got %d", got)
		}
	})

	t.Run("non-positive updatedAt is treated as unset", func(t *testing.T) {
		raw := `{"playlists": [
			{"playlistId": "p1", "title": "A", "updatedAt": 0, "items": []},
			{"playlistId": "p2", "title": "B", "updatedAt": 42, "items": []}
		]}`

		playlists := Decode(raw)
		if playlists[0].UpdatedAt != nil {
			t.Error("expected zero updatedAt to decode as nil")
		}
		if playlists[1].UpdatedAt == nil || *playlists[1].UpdatedAt != 42 {
			t.Error("expected positive updatedAt to survive")
		}
	})

	t.Run("mistyped fields fall back instead of failing the record", func(t *testing.T) {
		raw := `{"playlists": [{"playlistId": "p1", "title": "T", "totalBytes": "lots", "items": [
			{"itemId": "i1", "localPath": "/a", "bytes": "big"}
		]}]}`

		playlists := Decode(raw)
		if len(playlists) != 1 {
			t.Fatalf("expected the record to survive, got %+v", playlists)
		}
		if playlists[0].TotalBytes != 0 || playlists[0].Items[0].Bytes != 0 {
			t.Errorf("expected numeric fallbacks, got %+v", playlists[0])
		}
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	duration := int64(92000)
	updated := int64(2000)

	full := ptest.Playlist("p1", "Full", 1000,
		ptest.Item("i1", "clip1.mp4", 0, 10),
		ptest.Item("i2", "clip2.mp4", 1, 20),
	)
	full.UpdatedAt = &updated
	full.SourceApp = "whatsapp"
	full.CaptionKey = "full"
	full.Items[0].DurationMs = &duration
	full.Items[1].Status = models.StatusDecodeFailed

	minimal := ptest.Playlist("p2", "Minimal", 500)

	encoded, err := Encode([]models.Playlist{full, minimal})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded := Decode(encoded)
	if len(decoded) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(decoded))
	}
	if !reflect.DeepEqual(decoded[0], full) {
		t.Errorf("round trip changed playlist:\n got %+v\nwant %+v", decoded[0], full)
	}
	if !reflect.DeepEqual(decoded[1], minimal) {
		t.Errorf("round trip changed playlist:\n got %+v\nwant %+v", decoded[1], minimal)
	}
}

package models

import "testing"

func item(id string, order int, bytes int64) PlaylistItem {
	return PlaylistItem{
		ItemID:              id,
		ImportOrderIndex:    order,
		OriginalDisplayName: id + ".mp4",
		MimeType:            "video/mp4",
		LocalPath:           "/media/" + id,
		Bytes:               bytes,
		Status:              StatusReady,
	}
}

func TestParseItemStatus(t *testing.T) {
	cases := []struct {
		in   string
		want ItemStatus
	}{
		{"READY", StatusReady},
		{"DECODE_FAILED", StatusDecodeFailed},
		{"DELETED", StatusDeleted},
		{"", StatusReady},
		{"something-new", StatusReady},
	}
	for _, tc := range cases {
		if got := ParseItemStatus(tc.in); got != tc.want {
			t.Errorf("ParseItemStatus(%q) = %s, expected %s", tc.in, got, tc.want)
		}
	}
}

func TestPlaylistItemEqual(t *testing.T) {
	base := item("a", 0, 10)

	t.Run("identical items are equal", func(t *testing.T) {
		if !base.Equal(item("a", 0, 10)) {
			t.Error("expected equal")
		}
	})

	t.Run("field differences break equality", func(t *testing.T) {
		changed := item("a", 0, 10)
		changed.Status = StatusDecodeFailed
		if base.Equal(changed) {
			t.Error("expected status change to break equality")
		}
	})

	t.Run("duration presence matters", func(t *testing.T) {
		withDuration := item("a", 0, 10)
		ms := int64(5000)
		withDuration.DurationMs = &ms
		if base.Equal(withDuration) || withDuration.Equal(base) {
			t.Error("expected duration presence to break equality")
		}

		sameValue := item("a", 0, 10)
		other := int64(5000)
		sameValue.DurationMs = &other
		if !withDuration.Equal(sameValue) {
			t.Error("expected equal durations behind distinct pointers to compare equal")
		}
	})
}

func TestSumBytes(t *testing.T) {
	if got := SumBytes(nil); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := SumBytes([]PlaylistItem{item("a", 0, 10), item("b", 1, 20)}); got != 30 {
		t.Errorf("expected 30, got %d", got)
	}
}

func TestItemsEqual(t *testing.T) {
	a := []PlaylistItem{item("a", 0, 10), item("b", 1, 20)}
	b := []PlaylistItem{item("a", 0, 10), item("b", 1, 20)}
	if !ItemsEqual(a, b) {
		t.Error("expected equal slices")
	}
	if ItemsEqual(a, b[:1]) {
		t.Error("expected length mismatch to compare unequal")
	}
	b[1].Bytes = 99
	if ItemsEqual(a, b) {
		t.Error("expected element mismatch to compare unequal")
	}
}

func TestPlaylistValidate(t *testing.T) {
	valid := func() Playlist {
		return Playlist{
			PlaylistID: "p1",
			Title:      "Mix",
			CreatedAt:  100,
			ItemCount:  2,
			TotalBytes: 30,
			Items:      []PlaylistItem{item("a", 0, 10), item("b", 1, 20)},
		}
	}

	t.Run("accepts a consistent playlist", func(t *testing.T) {
		p := valid()
		if err := p.Validate(); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})

	t.Run("rejects missing identity", func(t *testing.T) {
		p := valid()
		p.PlaylistID = ""
		if err := p.Validate(); err == nil {
			t.Error("expected an error")
		}
		p = valid()
		p.Title = ""
		if err := p.Validate(); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("rejects stale totals", func(t *testing.T) {
		p := valid()
		p.ItemCount = 3
		if err := p.Validate(); err == nil {
			t.Error("expected an itemCount error")
		}
		p = valid()
		p.TotalBytes = 1
		if err := p.Validate(); err == nil {
			t.Error("expected a totalBytes error")
		}
	})

	t.Run("rejects non-contiguous indices", func(t *testing.T) {
		p := valid()
		p.Items[1].ImportOrderIndex = 5
		if err := p.Validate(); err == nil {
			t.Error("expected an index error")
		}
		p = valid()
		p.Items[1].ImportOrderIndex = 0
		if err := p.Validate(); err == nil {
			t.Error("expected a duplicate index error")
		}
	})
}

package probe

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/cocode/playvault/internal/models"
	"github.com/cocode/playvault/internal/storage"
	ptest "github.com/cocode/playvault/internal/testing"
)

// writeWAVFile writes a minimal PCM wav file holding seconds of 8-bit mono
// audio at 8000 Hz, and returns its path.
func writeWAVFile(t *testing.T, dir, name string, seconds int) string {
	t.Helper()

	const sampleRate = 8000
	dataLen := uint32(seconds * sampleRate)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(1))          // block align
	binary.Write(&buf, binary.LittleEndian, uint16(8))          // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	buf.Write(make([]byte, dataLen))

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write wav file: %v", err)
	}
	return path
}

func wavItem(t *testing.T, dir, id, name string, seconds int) models.PlaylistItem {
	t.Helper()
	path := writeWAVFile(t, dir, name, seconds)
	item := ptest.Item(id, name, 0, int64(seconds*8000))
	item.LocalPath = path
	return item
}

func TestDurationMs(t *testing.T) {
	prober := NewProber(storage.NewFileResolver(), nil)
	dir := t.TempDir()

	t.Run("measures wav duration from the header", func(t *testing.T) {
		item := wavItem(t, dir, "w1", "tone.wav", 2)

		ms, err := prober.DurationMs(item)
		if err != nil {
			t.Fatalf("DurationMs failed: %v", err)
		}
		// the header bytes count toward the riff chunk size, so allow
		// a few ms of slack above the nominal duration
		if ms < 2000 || ms > 2100 {
			t.Errorf("expected roughly 2000 ms, got %d", ms)
		}
	})

	t.Run("unsupported extension fails", func(t *testing.T) {
		path := ptest.WriteMediaFile(t, dir, "clip.mp4", 64)
		item := ptest.Item("v1", "clip.mp4", 0, 64)
		item.LocalPath = path

		if _, err := prober.DurationMs(item); err == nil {
			t.Error("expected an error for video media")
		}
	})

	t.Run("unreachable reference fails", func(t *testing.T) {
		item := ptest.Item("m1", "gone.wav", 0, 10)
		item.LocalPath = filepath.Join(dir, "gone.wav")

		if _, err := prober.DurationMs(item); err == nil {
			t.Error("expected an error for a missing file")
		}
	})
}

func TestProbePlaylist(t *testing.T) {
	prober := NewProber(storage.NewFileResolver(), nil)
	dir := t.TempDir()

	pending := wavItem(t, dir, "pending", "a.wav", 1)

	known := wavItem(t, dir, "known", "b.wav", 1)
	ms := int64(5000)
	known.DurationMs = &ms

	failed := wavItem(t, dir, "failed", "c.wav", 1)
	failed.Status = models.StatusDecodeFailed

	broken := ptest.Item("broken", "d.wav", 3, 10)
	broken.LocalPath = filepath.Join(dir, "missing.wav")

	playlist := ptest.Playlist("p1", "Mix", 100, pending, known, failed, broken)

	durations := prober.ProbePlaylist(&playlist)

	if len(durations) != 1 {
		t.Fatalf("expected only the pending item probed, got %v", durations)
	}
	if got := durations["pending"]; got < 1000 || got > 1100 {
		t.Errorf("expected roughly 1000 ms, got %d", got)
	}
}

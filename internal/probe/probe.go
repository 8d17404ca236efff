// package probe measures playback durations of imported media.
//
// The core persists durations via the repository's SaveDurations operation;
// this package is the external probe that produces them.
package probe

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
	"github.com/tcolgate/mp3"

	"github.com/cocode/playvault/internal/mediatypes"
	"github.com/cocode/playvault/internal/models"
	"github.com/cocode/playvault/internal/shared"
	"github.com/cocode/playvault/internal/storage"
)

// fallbackBitrate is assumed when no mp3 frame decodes (bits per second).
const fallbackBitrate = 192000

// Prober measures media durations through a storage resolver.
type Prober struct {
	resolver storage.Resolver
	logger   *log.Logger
}

// NewProber creates a Prober.
func NewProber(resolver storage.Resolver, logger *log.Logger) *Prober {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Prober{resolver: resolver, logger: logger}
}

// DurationMs measures one item's duration in milliseconds.
func (p *Prober) DurationMs(item models.PlaylistItem) (int64, error) {
	reader, err := p.resolver.OpenForRead(item.LocalPath)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	switch ext := mediatypes.NormalizeExtension(item.OriginalDisplayName); ext {
	case "mp3":
		return p.durationMP3(reader, item.Bytes)
	case "wav":
		return p.durationWAV(reader)
	case "flac":
		return p.durationFLAC(reader)
	default:
		return 0, fmt.Errorf("cannot probe duration of %q media", ext)
	}
}

// ProbePlaylist measures every READY item that has no duration yet.
// Items that fail to probe are logged and left out of the result.
func (p *Prober) ProbePlaylist(playlist *models.Playlist) map[string]int64 {
	durations := make(map[string]int64)
	for _, item := range playlist.Items {
		if item.Status != models.StatusReady || item.DurationMs != nil {
			continue
		}
		ms, err := p.DurationMs(item)
		if err != nil {
			p.logger.Warn("failed to probe duration", "item", item.OriginalDisplayName, "error", err)
			continue
		}
		durations[item.ItemID] = ms
	}
	return durations
}

// MP3 duration via frame decoding; falls back to an average-bitrate
// estimate only when no frame decodes at all.
func (p *Prober) durationMP3(reader io.Reader, size int64) (int64, error) {
	dec := mp3.NewDecoder(reader)
	var total time.Duration
	var skipped int
	frames := 0
	for {
		var frame mp3.Frame
		if err := dec.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if frames == 0 {
				return size * 8 * 1000 / fallbackBitrate, nil
			}
			break // partial decode; use what we have
		}
		total += frame.Duration()
		frames++
	}
	return total.Milliseconds(), nil
}

// WAV duration from the RIFF header.
func (p *Prober) durationWAV(reader io.ReadSeeker) (int64, error) {
	dec := wav.NewDecoder(reader)
	duration, err := dec.Duration()
	if err != nil {
		return 0, fmt.Errorf("failed to read wav header: %w", err)
	}
	return duration.Milliseconds(), nil
}

// FLAC duration via the STREAMINFO metadata block.
func (p *Prober) durationFLAC(reader io.Reader) (int64, error) {
	stream, err := flac.Parse(reader)
	if err != nil {
		return 0, fmt.Errorf("failed to parse flac stream: %w", err)
	}
	info := stream.Info
	if info.NSamples > 0 && info.SampleRate > 0 {
		seconds := float64(info.NSamples) / float64(info.SampleRate)
		return int64(seconds*1000 + 0.5), nil
	}
	return 0, fmt.Errorf("flac stream missing sample info")
}

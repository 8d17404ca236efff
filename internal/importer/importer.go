// package importer turns a share/selection payload into candidate playlist
// items with resolved display name, mime type, storage reference, and size.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dhowden/tag"

	"github.com/cocode/playvault/internal/mediatypes"
	"github.com/cocode/playvault/internal/models"
	"github.com/cocode/playvault/internal/shared"
	"github.com/cocode/playvault/internal/storage"
	"github.com/cocode/playvault/internal/store"
)

// Mode selects how imported media is stored.
type Mode string

const (
	// ModeReference keeps the source reference as-is.
	ModeReference Mode = "reference"
	// ModeCopy copies the bytes into the library before referencing them.
	ModeCopy Mode = "copy"
)

// ParseMode maps a config string to a [Mode], defaulting to ModeReference.
func ParseMode(value string) Mode {
	if Mode(value) == ModeCopy {
		return ModeCopy
	}
	return ModeReference
}

// Payload is a batch of media sources handed over by a share or selection,
// together with the share metadata the title and merge policies consume.
type Payload struct {
	Sources          []string
	Caption          string
	FirstDescription string
	SourceApp        string
}

// Draft is the intermediate, not-yet-persisted result of importing a batch.
type Draft struct {
	Items            []models.PlaylistItem
	ImportedCount    int
	SkippedCount     int
	UnsupportedCount int
	TotalBytes       int64
	FirstDisplayName string
	FirstTagTitle    string
}

// Service produces import drafts from payloads.
type Service struct {
	resolver storage.Resolver
	store    *store.PlaylistStore
	mode     Mode
	logger   *log.Logger
}

// NewService creates an import Service.
func NewService(resolver storage.Resolver, st *store.PlaylistStore, mode Mode, logger *log.Logger) *Service {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Service{resolver: resolver, store: st, mode: mode, logger: logger}
}

// ImportPayload resolves each source in the payload into a candidate item.
// Unsupported or unreadable sources are counted and skipped, never fatal.
// batchID names the playlist-scoped directory that receives byte copies in
// copy mode.
func (s *Service) ImportPayload(payload Payload, batchID string) (*Draft, error) {
	draft := &Draft{}

	var copyDir string
	if s.mode == ModeCopy {
		dir, err := s.store.DirectoryFor(batchID)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare import directory: %w", err)
		}
		copyDir = dir
	}

	for _, source := range payload.Sources {
		displayName := mediatypes.ExtractDisplayName(source)
		if draft.FirstDisplayName == "" {
			draft.FirstDisplayName = displayName
		}

		validation := mediatypes.DetectSupportedMedia("", displayName)
		if !validation.IsSupported || validation.MimeType == "" {
			s.logger.Warn("skipping unsupported media", "source", source)
			draft.SkippedCount++
			draft.UnsupportedCount++
			continue
		}

		bytes, err := s.resolver.Size(source)
		if err != nil || bytes <= 0 {
			s.logger.Warn("skipping unreadable media", "source", source, "error", err)
			draft.SkippedCount++
			continue
		}

		localPath := source
		if s.mode == ModeCopy {
			copied, err := s.copyIntoLibrary(source, copyDir, len(draft.Items), displayName, validation.Extension)
			if err != nil {
				s.logger.Error("failed to copy media into library", "source", source, "error", err)
				draft.SkippedCount++
				continue
			}
			localPath = copied
		}

		if draft.FirstTagTitle == "" {
			draft.FirstTagTitle = s.tagTitle(source)
		}

		draft.TotalBytes += bytes
		draft.Items = append(draft.Items, models.PlaylistItem{
			ItemID:              shared.GenerateID(),
			ImportOrderIndex:    len(draft.Items),
			OriginalDisplayName: displayName,
			MimeType:            validation.MimeType,
			LocalPath:           localPath,
			Bytes:               bytes,
			Status:              models.StatusReady,
		})
	}

	draft.ImportedCount = len(draft.Items)
	return draft, nil
}

// copyIntoLibrary copies the source bytes into the batch directory and
// returns the new reference. A partial copy is removed before reporting
// failure so reconciliation never sees a truncated file.
func (s *Service) copyIntoLibrary(source, dir string, index int, displayName, ext string) (string, error) {
	reader, err := s.resolver.OpenForRead(source)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	target := filepath.Join(dir, mediatypes.SafeImportFileName(index, displayName, ext))
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to copy into %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to finish %s: %w", target, err)
	}

	return target, nil
}

// tagTitle reads the embedded tag title of a media file, if any. Missing or
// unreadable tags are normal and yield the empty string.
func (s *Service) tagTitle(source string) string {
	reader, err := s.resolver.OpenForRead(source)
	if err != nil {
		return ""
	}
	defer reader.Close()

	metadata, err := tag.ReadFrom(reader)
	if err != nil {
		return ""
	}
	return metadata.Title()
}

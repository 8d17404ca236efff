package mediatypes

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// SupportedExtensions maps importable file extensions (without dot) to
// whether they are supported.
var SupportedExtensions = map[string]bool{
	"mp3":  true,
	"mp4":  true,
	"mkv":  true,
	"mov":  true,
	"webm": true,
}

// MimeExtensions maps known mime types to their canonical extension.
var MimeExtensions = map[string]string{
	"audio/mpeg":       "mp3",
	"audio/mp3":        "mp3",
	"video/mp4":        "mp4",
	"video/x-matroska": "mkv",
	"video/quicktime":  "mov",
	"video/webm":       "webm",
}

// Validation is the result of checking whether a candidate file is
// importable media.
type Validation struct {
	IsSupported bool
	MimeType    string
	Extension   string
}

// DetectSupportedMedia decides whether a file is importable from its mime
// type and/or filename, resolving a canonical mime type where possible.
// Either argument may be empty.
func DetectSupportedMedia(mimeType, fileName string) Validation {
	normalizedMime := strings.ToLower(mimeType)
	extFromMime := MimeExtensions[normalizedMime]
	extFromName := NormalizeExtension(fileName)

	chosenExt := extFromMime
	if chosenExt == "" {
		chosenExt = extFromName
	}

	resolvedMime := normalizedMime
	if resolvedMime == "" && chosenExt != "" {
		for mime, ext := range MimeExtensions {
			if ext == chosenExt {
				resolvedMime = mime
				break
			}
		}
	}

	return Validation{
		IsSupported: chosenExt != "" && SupportedExtensions[chosenExt],
		MimeType:    resolvedMime,
		Extension:   chosenExt,
	}
}

// FileNameWithoutExtension strips the final extension from a file name.
// A leading dot (hidden file) is not treated as an extension separator.
func FileNameWithoutExtension(name string) string {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return name
	}
	return name[:dot]
}

// NormalizeExtension extracts the lowercased extension (without dot) from a
// file name, or returns the empty string when there is none.
func NormalizeExtension(fileName string) string {
	if fileName == "" {
		return ""
	}
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	return strings.ToLower(ext)
}

// ExtractDisplayName derives a display name from a path or URI, falling
// back to a generic placeholder.
func ExtractDisplayName(pathOrName string) string {
	name := filepath.Base(strings.TrimSuffix(pathOrName, "/"))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "Media file"
	}
	return name
}

var (
	unsafeNameChars  = regexp.MustCompile(`[\\/:*?"<>|]`)
	nonPortableChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// SanitizeFileName replaces characters that are unsafe in file names.
func SanitizeFileName(name string) string {
	clean := strings.TrimSpace(unsafeNameChars.ReplaceAllString(name, "_"))
	if clean == "" {
		return "imported-media"
	}
	return clean
}

// SafeImportFileName builds a collision-resistant, ordered file name for a
// copied import: zero-padded batch position plus the sanitized source name.
func SafeImportFileName(index int, displayName, fallbackExt string) string {
	clean := strings.Trim(nonPortableChars.ReplaceAllString(displayName, "_"), "_")
	if clean == "" {
		clean = fmt.Sprintf("part_%d", index+1)
	}

	ext := NormalizeExtension(clean)
	if ext == "" {
		ext = fallbackExt
	}

	base := clean
	if ext != "" {
		base = FileNameWithoutExtension(clean)
	}

	numbered := fmt.Sprintf("%03d_%s", index+1, base)
	if ext == "" {
		return numbered
	}
	return fmt.Sprintf("%s.%s", numbered, ext)
}

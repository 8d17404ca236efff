// package shared defines helpers used across the playvault packages
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a [log.Logger] writing to the specified [io.Writer],
// with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr].
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// ApplyLogLevel sets the logger's level from a configured level name.
// Unknown names are ignored and leave the level unchanged.
func ApplyLogLevel(l *log.Logger, name string) {
	if name == "" {
		return
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		l.Warn("unknown log level", "level", name)
		return
	}
	l.SetLevel(level)
}

// GenerateID generates a v4 [uuid.UUID] string. Playlist ids, item ids,
// import batch ids, and history row ids all come from here.
func GenerateID() string {
	return uuid.New().String()
}

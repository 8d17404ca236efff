package policy

import (
	"fmt"
	"strings"
	"time"

	"github.com/cocode/playvault/internal/mediatypes"
)

// ResolveTitle picks a human playlist title from the available hints, in
// priority order: description, caption, first filename without extension,
// then a timestamp-based generic label.
func ResolveTitle(firstDescription, caption, firstFileName string, createdAtMs int64) string {
	if desc := strings.TrimSpace(firstDescription); desc != "" {
		return desc
	}

	if cap := strings.TrimSpace(caption); cap != "" {
		return cap
	}

	if firstFileName != "" {
		if byName := strings.TrimSpace(mediatypes.FileNameWithoutExtension(firstFileName)); byName != "" {
			return byName
		}
	}

	stamp := time.UnixMilli(createdAtMs).Format("2006-01-02 15:04")
	return fmt.Sprintf("Imported playlist %s", stamp)
}

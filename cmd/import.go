package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cocode/playvault/internal/formatter"
	"github.com/cocode/playvault/internal/importer"
	"github.com/cocode/playvault/internal/models"
	"github.com/cocode/playvault/internal/shared"
)

// Import runs the import pipeline over the given paths and records the
// outcome in the history journal.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	sources := cmd.Args().Slice()
	if len(sources) == 0 {
		return fmt.Errorf("%w: at least one media path", shared.ErrMissingArgument)
	}

	payload := importer.Payload{
		Sources:          sources,
		Caption:          cmd.String("caption"),
		FirstDescription: cmd.String("description"),
		SourceApp:        cmd.String("source"),
	}

	result, err := r.repo.ImportPayload(payload)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	r.recordHistory(result, payload.SourceApp)

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	summary := result.Summary
	if result.Playlist == nil {
		r.writePlainln("%s", r.styles.Warn("Nothing imported."))
	} else {
		r.writePlainln("%s", r.styles.OK(fmt.Sprintf("✓ %s", summary.Title)))
	}
	r.writePlainln("  %d imported, %d skipped, %d unsupported, %s",
		summary.ImportedCount, summary.SkippedCount, summary.UnsupportedCount, formatter.ReadableSize(summary.TotalBytes))
	if result.Playlist != nil {
		r.writePlainln("  %s", r.styles.Help(result.Playlist.PlaylistID))
	}
	return nil
}

// recordHistory journals an import outcome. A missing or broken history
// database only costs the journal row, never the import.
func (r *Runner) recordHistory(result *models.ImportResult, sourceApp string) {
	history, closeDB, err := r.openHistory()
	if err != nil {
		r.logger.Warn("import not journaled", "error", err)
		return
	}
	defer closeDB()

	if _, err := history.Record(result, sourceApp); err != nil {
		r.logger.Warn("import not journaled", "error", err)
	}
}

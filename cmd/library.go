package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/cocode/playvault/internal/formatter"
	"github.com/cocode/playvault/internal/models"
	"github.com/cocode/playvault/internal/shared"
	"github.com/cocode/playvault/internal/watcher"
)

// Setup writes a starter config file and initializes the history database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		r.writePlainln("%s", r.styles.Warn(err.Error()))
	} else {
		r.writePlainln("%s", r.styles.OK(fmt.Sprintf("✓ Wrote %s", path)))
	}

	_, closeDB, err := r.openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	r.writePlainln("%s", r.styles.OK(fmt.Sprintf("✓ History database ready at %s", r.config.Database.Path)))
	r.writePlainln("%s", r.styles.OK(fmt.Sprintf("✓ Library at %s", r.store.Root())))
	return nil
}

// List prints the reconciled playlist collection.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	playlists, err := r.repo.LoadPlaylists()
	if err != nil {
		return fmt.Errorf("failed to load playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	if len(playlists) == 0 {
		r.writePlainln("%s", r.styles.Help("No playlists yet. Import media with `playvault import`."))
		return nil
	}

	for _, playlist := range playlists {
		r.writePlainln("%s  %s", r.styles.Title(playlist.Title), r.styles.Help(playlist.PlaylistID))
		line := fmt.Sprintf("  %d items, %s", playlist.ItemCount, formatter.ReadableSize(playlist.TotalBytes))
		if playlist.SourceApp != "" {
			line += fmt.Sprintf(", from %s", playlist.SourceApp)
		}
		r.writePlainln("%s", line)
	}
	return nil
}

// Show prints one playlist in the requested format.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	playlist, err := r.findPlaylist(cmd.String("id"))
	if err != nil {
		return err
	}

	var rendered []byte
	switch format := cmd.String("format"); format {
	case "csv":
		rendered, err = formatter.ExportToCSV(playlist)
	case "markdown", "md":
		rendered, err = formatter.ExportToMarkdown(playlist)
	case "table", "":
		rendered = []byte(renderTable(playlist))
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return fmt.Errorf("failed to render playlist: %w", err)
	}

	if output := cmd.String("output"); output != "" {
		if err := os.WriteFile(output, rendered, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		r.writePlainln("%s", r.styles.OK(fmt.Sprintf("✓ Wrote %s", output)))
		return nil
	}

	return r.writePlain("%s", string(rendered))
}

// Delete removes a whole playlist.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	if err := r.repo.DeletePlaylist(playlistID); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	r.writePlainln("%s", r.styles.OK(fmt.Sprintf("✓ Deleted playlist %s", playlistID)))
	return nil
}

// RemoveItem removes one item, deleting the playlist if it empties.
func (r *Runner) RemoveItem(ctx context.Context, cmd *cli.Command) error {
	if err := r.repo.DeleteItem(cmd.String("id"), cmd.String("item")); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	r.writePlainln("%s", r.styles.OK("✓ Item removed"))
	return nil
}

// MarkFailed flags an item the playback engine could not decode.
func (r *Runner) MarkFailed(ctx context.Context, cmd *cli.Command) error {
	if err := r.repo.MarkItemDecodeFailed(cmd.String("id"), cmd.String("item")); err != nil {
		return fmt.Errorf("failed to mark item: %w", err)
	}
	r.writePlainln("%s", r.styles.OK("✓ Item marked as decode-failed"))
	return nil
}

// Probe measures durations for a playlist's items and saves them.
func (r *Runner) Probe(ctx context.Context, cmd *cli.Command) error {
	playlist, err := r.findPlaylist(cmd.String("id"))
	if err != nil {
		return err
	}

	durations := r.prober.ProbePlaylist(playlist)
	if len(durations) == 0 {
		r.writePlainln("%s", r.styles.Help("Nothing to probe."))
		return nil
	}

	if err := r.repo.SaveDurations(playlist.PlaylistID, durations); err != nil {
		return fmt.Errorf("failed to save durations: %w", err)
	}

	r.writePlainln("%s", r.styles.OK(fmt.Sprintf("✓ Saved durations for %d items", len(durations))))
	return nil
}

// History prints the import journal.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	history, closeDB, err := r.openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	records, err := history.List(int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}

	if len(records) == 0 {
		r.writePlainln("%s", r.styles.Help("No imports recorded yet."))
		return nil
	}

	for _, record := range records {
		r.writePlainln("%s  %s", r.styles.Title(record.Title), r.styles.Help(record.CreatedAt.Local().Format("2006-01-02 15:04")))
		r.writePlainln("  %d imported, %d skipped, %d unsupported, %s",
			record.Imported, record.Skipped, record.Unsupported, formatter.ReadableSize(record.TotalBytes))
	}
	return nil
}

// Watch blocks, reconciling the library whenever files change underneath it.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watcher.New(r.repo, r.logger).Watch(ctx, r.store.Root())
}

// findPlaylist loads the reconciled collection and picks one playlist.
func (r *Runner) findPlaylist(playlistID string) (*models.Playlist, error) {
	playlists, err := r.repo.LoadPlaylists()
	if err != nil {
		return nil, fmt.Errorf("failed to load playlists: %w", err)
	}
	for i := range playlists {
		if playlists[i].PlaylistID == playlistID {
			return &playlists[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
}

// renderTable renders a playlist as aligned plain text.
func renderTable(playlist *models.Playlist) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%d items, %s)\n", playlist.Title, playlist.ItemCount, formatter.ReadableSize(playlist.TotalBytes)))
	for _, item := range playlist.Items {
		duration := "-"
		if item.DurationMs != nil {
			duration = formatter.DurationText(*item.DurationMs)
		}
		sb.WriteString(fmt.Sprintf("%3d  %-40s  %10s  %6s  %s\n",
			item.ImportOrderIndex,
			item.OriginalDisplayName,
			formatter.ReadableSize(item.Bytes),
			duration,
			item.Status,
		))
	}
	return sb.String()
}

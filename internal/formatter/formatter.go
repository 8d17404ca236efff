// package formatter provides functions to export playlist data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/cocode/playvault/internal/models"
)

// ReadableSize renders a byte count for humans (B, KB, MB, GB).
func ReadableSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	units := []string{"KB", "MB", "GB"}
	value := float64(bytes)
	unit := 0
	value /= 1024
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", value, units[unit])
}

// DurationText renders milliseconds as m:ss.
func DurationText(ms int64) string {
	totalSeconds := ms / 1000
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// ExportToCSV converts a playlist to CSV with columns: Index, Name, Mime, Size, Duration, Status
func ExportToCSV(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Index", "Name", "Mime", "Size", "Duration", "Status"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range playlist.Items {
		duration := ""
		if item.DurationMs != nil {
			duration = DurationText(*item.DurationMs)
		}
		record := []string{
			strconv.Itoa(item.ImportOrderIndex),
			item.OriginalDisplayName,
			item.MimeType,
			strconv.FormatInt(item.Bytes, 10),
			duration,
			string(item.Status),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to a Markdown item table.
func ExportToMarkdown(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Title))
	buf.WriteString(fmt.Sprintf("%d items, %s\n\n", playlist.ItemCount, ReadableSize(playlist.TotalBytes)))
	if playlist.SourceApp != "" {
		buf.WriteString(fmt.Sprintf("Imported from %s\n\n", playlist.SourceApp))
	}

	buf.WriteString("| # | Name | Size | Duration | Status |\n")
	buf.WriteString("|---|------|------|----------|--------|\n")
	for _, item := range playlist.Items {
		duration := "—"
		if item.DurationMs != nil {
			duration = DurationText(*item.DurationMs)
		}
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			item.ImportOrderIndex,
			item.OriginalDisplayName,
			ReadableSize(item.Bytes),
			duration,
			item.Status,
		))
	}

	return buf.Bytes(), nil
}

package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cocode/playvault/internal/models"
	"github.com/cocode/playvault/internal/shared"
)

// ImportRecord is one row of the import history journal.
type ImportRecord struct {
	ID          string
	Sequence    int
	Title       string
	PlaylistID  string
	Imported    int
	Skipped     int
	Unsupported int
	TotalBytes  int64
	SourceApp   string
	CreatedAt   time.Time
}

// HistoryRepository persists import outcomes for the history command.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a HistoryRepository with the given database connection.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record inserts a journal row for a finished import.
func (r *HistoryRepository) Record(result *models.ImportResult, sourceApp string) (*ImportRecord, error) {
	sequence, err := NextSequence(r.db, "import_history")
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	record := &ImportRecord{
		ID:          shared.GenerateID(),
		Sequence:    sequence,
		Title:       result.Summary.Title,
		Imported:    result.Summary.ImportedCount,
		Skipped:     result.Summary.SkippedCount,
		Unsupported: result.Summary.UnsupportedCount,
		TotalBytes:  result.Summary.TotalBytes,
		SourceApp:   sourceApp,
		CreatedAt:   time.Now().UTC(),
	}
	if result.Playlist != nil {
		record.PlaylistID = result.Playlist.PlaylistID
	}

	query := `
		INSERT INTO import_history (id, sequence, title, playlist_id, imported, skipped, unsupported, total_bytes, source_app, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		record.ID,
		record.Sequence,
		record.Title,
		nullable(record.PlaylistID),
		record.Imported,
		record.Skipped,
		record.Unsupported,
		record.TotalBytes,
		nullable(record.SourceApp),
		record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert import record: %w", err)
	}

	return record, nil
}

// List returns the most recent journal rows, newest first. A limit of zero
// or less returns everything.
func (r *HistoryRepository) List(limit int) ([]ImportRecord, error) {
	query := `
		SELECT id, sequence, title, playlist_id, imported, skipped, unsupported, total_bytes, source_app, created_at
		FROM import_history
		ORDER BY sequence DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query import history: %w", err)
	}
	defer rows.Close()

	var records []ImportRecord
	for rows.Next() {
		var record ImportRecord
		var playlistID, sourceApp sql.NullString
		err := rows.Scan(
			&record.ID,
			&record.Sequence,
			&record.Title,
			&playlistID,
			&record.Imported,
			&record.Skipped,
			&record.Unsupported,
			&record.TotalBytes,
			&sourceApp,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import record: %w", err)
		}
		record.PlaylistID = playlistID.String
		record.SourceApp = sourceApp.String
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

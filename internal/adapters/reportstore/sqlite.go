package reportstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	model "github.com/teampulse/pulse/internal/domain/model"
	"github.com/teampulse/pulse/pkg/logger"
	"github.com/teampulse/pulse/pkg/metrics"
)

// Undated reports store an empty submitted_at so they sort after every
// dated report in the DESC scan and never match a bounded date range.
const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	author TEXT NOT NULL,
	submitted_at TEXT NOT NULL,
	status TEXT NOT NULL,
	payload BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_author ON reports(author);
CREATE INDEX IF NOT EXISTS idx_reports_submitted_at ON reports(submitted_at);
CREATE INDEX IF NOT EXISTS idx_reports_status ON reports(status);
`

// SQLite stores raw report documents in a SQLite database and decodes
// them on fetch.
type SQLite struct {
	db     *sql.DB
	logger logger.Logger
}

// OpenSQLite opens the report database at path, creating it and its
// directory if needed. ":memory:" opens an in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening report store: %w", err)
	}

	if path == ":memory:" {
		// Each new pool connection to :memory: would get its own database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating report schema: %w", err)
	}

	return &SQLite{
		db:     db,
		logger: logger.Get().Named("reportstore"),
	}, nil
}

// Fetch returns the decoded reports matching filter, newest first.
// Rows whose payload no longer decodes are skipped with a warning
// rather than failing the fetch.
func (s *SQLite) Fetch(ctx context.Context, filter Filter) ([]model.Report, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreFetchLatency(float64(time.Since(start).Milliseconds()))
	}()

	query, args := buildFetchQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	reports := make([]model.Report, 0, 64)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}

		r, err := DecodeDocument(payload)
		if err != nil {
			metrics.RecordStoreRowSkipped()
			s.logger.Warn(ctx, "skipping undecodable report row", logger.Error(err))
			continue
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report rows: %w", err)
	}

	// The column index is second-precision; re-sort on the decoded
	// timestamps so ordering holds for sub-second submissions too.
	sortNewestFirst(reports)
	return reports, nil
}

func buildFetchQuery(filter Filter) (string, []any) {
	query := "SELECT payload FROM reports"
	var where []string
	var args []any

	if filter.bounded() {
		where = append(where, "submitted_at != ''")
		if !filter.From.IsZero() {
			where = append(where, "submitted_at >= ?")
			args = append(args, filter.From.UTC().Format(time.RFC3339))
		}
		if !filter.To.IsZero() {
			where = append(where, "submitted_at <= ?")
			args = append(args, filter.To.UTC().Format(time.RFC3339))
		}
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if len(filter.Authors) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.Authors)), ",")
		where = append(where, "author IN ("+placeholders+")")
		for _, a := range filter.Authors {
			args = append(args, a)
		}
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY submitted_at DESC, id ASC"
	return query, args
}

// Save decodes and upserts one raw report document. Seeding and tests
// use it; the analytics pipeline never writes.
func (s *SQLite) Save(ctx context.Context, doc []byte) error {
	r, err := DecodeDocument(doc)
	if err != nil {
		return err
	}

	submitted := ""
	if r.HasTimestamp() {
		submitted = r.SubmittedAt.UTC().Format(time.RFC3339)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO reports (id, author, submitted_at, status, payload) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Author, submitted, string(r.Status), doc,
	)
	if err != nil {
		return fmt.Errorf("inserting report %s: %w", r.ID, err)
	}
	return nil
}

// Close releases the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Package storage persists the history of snapshot loads and estimate runs
// in a SQLite database. One row per attempt: either a full snapshot on
// success or the load error on failure. History is what lets you see how the
// estimate drifted as the housing office re-published draw data.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Ammaar-Alam/draw-calculator/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
    id                      TEXT PRIMARY KEY,
    created_at              DATETIME NOT NULL,
    source                  TEXT NOT NULL,
    ok                      INTEGER NOT NULL,
    error                   TEXT NOT NULL DEFAULT '',
    user_name               TEXT NOT NULL DEFAULT '',
    puid                    TEXT NOT NULL DEFAULT '',
    draw_time               TEXT NOT NULL DEFAULT '',
    last_updated            TEXT NOT NULL DEFAULT '',
    raw_position            INTEGER NOT NULL DEFAULT 0,
    initial_ahead           INTEGER NOT NULL DEFAULT 0,
    removed_spelman         INTEGER NOT NULL DEFAULT 0,
    removed_other_res       INTEGER NOT NULL DEFAULT 0,
    spelman_capacity        INTEGER NOT NULL DEFAULT 0,
    other_res_top_n         INTEGER NOT NULL DEFAULT 0,
    final_position_estimate INTEGER NOT NULL DEFAULT 0,
    available_singles       INTEGER NOT NULL DEFAULT 0,
    probability_single      INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_records_created_at ON records (created_at DESC);
`

// Record is one persisted load or estimate attempt.
type Record struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Source    string          `json:"source"`
	OK        bool            `json:"ok"`
	Error     string          `json:"error,omitempty"`
	Snapshot  models.Snapshot `json:"snapshot"`
}

// Storage wraps the history database.
type Storage struct {
	db *sql.DB
}

// New opens (creating if needed) the history database at dbPath.
func New(dbPath string) (*Storage, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// RecordResult stores one attempt. errMsg is empty on success; on success
// the snapshot must satisfy its range invariants.
func (s *Storage) RecordResult(ctx context.Context, source string, snap models.Snapshot, errMsg string) (Record, error) {
	ok := errMsg == ""
	if ok {
		if err := snap.Validate(); err != nil {
			return Record{}, fmt.Errorf("invalid snapshot: %w", err)
		}
	}

	rec := Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
		OK:        ok,
		Error:     errMsg,
		Snapshot:  snap,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (
			id, created_at, source, ok, error,
			user_name, puid, draw_time, last_updated,
			raw_position, initial_ahead, removed_spelman, removed_other_res,
			spelman_capacity, other_res_top_n, final_position_estimate,
			available_singles, probability_single
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt, rec.Source, rec.OK, rec.Error,
		snap.UserName, snap.PUID, snap.DrawTime, snap.LastUpdated,
		snap.RawPosition, snap.InitialAhead, snap.RemovedSpelman, snap.RemovedOtherRes,
		snap.SpelmanCapacity, snap.OtherResTopN, snap.FinalPositionEstimate,
		snap.AvailableSingles, snap.ProbabilitySingle,
	)
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert record: %w", err)
	}
	return rec, nil
}

// Latest returns the most recent record, or sql.ErrNoRows when the history
// is empty.
func (s *Storage) Latest(ctx context.Context) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` ORDER BY created_at DESC, id LIMIT 1`)
	return scanRecord(row)
}

// History returns up to limit records, newest first.
func (s *Storage) History(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

const selectColumns = `
	SELECT id, created_at, source, ok, error,
	       user_name, puid, draw_time, last_updated,
	       raw_position, initial_ahead, removed_spelman, removed_other_res,
	       spelman_capacity, other_res_top_n, final_position_estimate,
	       available_singles, probability_single
	FROM records`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.CreatedAt, &rec.Source, &rec.OK, &rec.Error,
		&rec.Snapshot.UserName, &rec.Snapshot.PUID, &rec.Snapshot.DrawTime, &rec.Snapshot.LastUpdated,
		&rec.Snapshot.RawPosition, &rec.Snapshot.InitialAhead, &rec.Snapshot.RemovedSpelman,
		&rec.Snapshot.RemovedOtherRes, &rec.Snapshot.SpelmanCapacity, &rec.Snapshot.OtherResTopN,
		&rec.Snapshot.FinalPositionEstimate, &rec.Snapshot.AvailableSingles, &rec.Snapshot.ProbabilitySingle,
	)
	if err != nil {
		return Record{}, fmt.Errorf("failed to scan record: %w", err)
	}
	return rec, nil
}

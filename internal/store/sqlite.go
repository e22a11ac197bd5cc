package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/leadlist-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. It is the
// default backend for single-operator use.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS campaigns (
	street_address_key TEXT PRIMARY KEY,
	campaign           TEXT NOT NULL,
	created_at         DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at         DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS import_runs (
	id                 TEXT PRIMARY KEY,
	street_address_key TEXT NOT NULL REFERENCES campaigns(street_address_key),
	source             TEXT NOT NULL,
	input_file         TEXT NOT NULL DEFAULT '',
	total_rows         INTEGER NOT NULL DEFAULT 0,
	skipped_rows       INTEGER NOT NULL DEFAULT 0,
	contacts           INTEGER NOT NULL DEFAULT 0,
	created_at         DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS contact_archive (
	id      TEXT PRIMARY KEY,
	run_id  TEXT NOT NULL REFERENCES import_runs(id),
	row_num INTEGER NOT NULL,
	data    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_import_runs_key ON import_runs(street_address_key);
CREATE INDEX IF NOT EXISTS idx_import_runs_source ON import_runs(source);
CREATE INDEX IF NOT EXISTS idx_contact_archive_run ON contact_archive(run_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveCampaign(ctx context.Context, camp model.CampaignContext) error {
	if camp.StreetAddressKey == "" {
		return eris.New("sqlite: campaign missing street address key")
	}

	campJSON, err := json.Marshal(camp)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal campaign")
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO campaigns (street_address_key, campaign, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (street_address_key) DO UPDATE SET campaign = excluded.campaign, updated_at = excluded.updated_at`,
		camp.StreetAddressKey, string(campJSON), now, now,
	)
	return eris.Wrap(err, "sqlite: save campaign")
}

func (s *SQLiteStore) GetCampaign(ctx context.Context, streetAddressKey string) (*model.CampaignContext, error) {
	var campJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT campaign FROM campaigns WHERE street_address_key = ?`,
		streetAddressKey,
	).Scan(&campJSON)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("campaign not found: %s", streetAddressKey)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get campaign %s", streetAddressKey)
	}

	var camp model.CampaignContext
	if err := json.Unmarshal([]byte(campJSON), &camp); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal campaign")
	}
	return &camp, nil
}

func (s *SQLiteStore) ListCampaigns(ctx context.Context) ([]model.CampaignContext, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT campaign FROM campaigns ORDER BY street_address_key`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list campaigns")
	}
	defer rows.Close()

	var camps []model.CampaignContext
	for rows.Next() {
		var campJSON string
		if err := rows.Scan(&campJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan campaign")
		}
		var camp model.CampaignContext
		if err := json.Unmarshal([]byte(campJSON), &camp); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal campaign")
		}
		camps = append(camps, camp)
	}
	return camps, eris.Wrap(rows.Err(), "sqlite: list campaigns iterate")
}

func (s *SQLiteStore) RecordImportRun(ctx context.Context, run ImportRun) (*ImportRun, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO import_runs (id, street_address_key, source, input_file, total_rows, skipped_rows, contacts, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StreetAddressKey, run.Source, run.InputFile,
		run.TotalRows, run.SkippedRows, run.Contacts, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: record import run")
	}
	return &run, nil
}

func (s *SQLiteStore) ListImportRuns(ctx context.Context, filter RunFilter) ([]ImportRun, error) {
	query := `SELECT id, street_address_key, source, input_file, total_rows, skipped_rows, contacts, created_at
	          FROM import_runs WHERE 1=1`
	var args []any

	if filter.StreetAddressKey != "" {
		query += ` AND street_address_key = ?`
		args = append(args, filter.StreetAddressKey)
	}
	if filter.Source != "" {
		query += ` AND source = ?`
		args = append(args, filter.Source)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list import runs")
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(&r.ID, &r.StreetAddressKey, &r.Source, &r.InputFile,
			&r.TotalRows, &r.SkippedRows, &r.Contacts, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan import run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list import runs iterate")
}

func (s *SQLiteStore) ArchiveContacts(ctx context.Context, runID string, rows [][]string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin archive tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO contact_archive (id, run_id, row_num, data) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare archive insert")
	}
	defer stmt.Close() //nolint:errcheck

	for i, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: marshal archive row")
		}
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), runID, i, string(data)); err != nil {
			return 0, eris.Wrapf(err, "sqlite: archive row %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit archive")
	}
	return int64(len(rows)), nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leadlist-cli/internal/db"
	"github.com/sells-group/leadlist-cli/internal/model"
)

// PostgresStore implements Store using pgxpool, for teams sharing one
// campaign database.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// the hot store operations.
var preparedStatements = map[string]string{
	"save_campaign": `INSERT INTO campaigns (street_address_key, campaign, created_at, updated_at) VALUES ($1, $2, $3, $4)
	 ON CONFLICT (street_address_key) DO UPDATE SET campaign = EXCLUDED.campaign, updated_at = EXCLUDED.updated_at`,
	"get_campaign":      `SELECT campaign FROM campaigns WHERE street_address_key = $1`,
	"record_import_run": `INSERT INTO import_runs (id, street_address_key, source, input_file, total_rows, skipped_rows, contacts, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool, used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS campaigns (
	street_address_key TEXT PRIMARY KEY,
	campaign           JSONB NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS import_runs (
	id                 TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	street_address_key TEXT NOT NULL REFERENCES campaigns(street_address_key),
	source             TEXT NOT NULL,
	input_file         TEXT NOT NULL DEFAULT '',
	total_rows         INTEGER NOT NULL DEFAULT 0,
	skipped_rows       INTEGER NOT NULL DEFAULT 0,
	contacts           INTEGER NOT NULL DEFAULT 0,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS contact_archive (
	id      TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	run_id  TEXT NOT NULL REFERENCES import_runs(id),
	row_num INTEGER NOT NULL,
	data    JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_import_runs_key ON import_runs(street_address_key);
CREATE INDEX IF NOT EXISTS idx_import_runs_source ON import_runs(source);
CREATE INDEX IF NOT EXISTS idx_contact_archive_run ON contact_archive(run_id);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveCampaign(ctx context.Context, camp model.CampaignContext) error {
	if camp.StreetAddressKey == "" {
		return eris.New("postgres: campaign missing street address key")
	}

	campJSON, err := json.Marshal(camp)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal campaign")
	}

	now := time.Now().UTC()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO campaigns (street_address_key, campaign, created_at, updated_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (street_address_key) DO UPDATE SET campaign = EXCLUDED.campaign, updated_at = EXCLUDED.updated_at`,
		camp.StreetAddressKey, campJSON, now, now,
	)
	return eris.Wrap(err, "postgres: save campaign")
}

func (s *PostgresStore) GetCampaign(ctx context.Context, streetAddressKey string) (*model.CampaignContext, error) {
	var campJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT campaign FROM campaigns WHERE street_address_key = $1`,
		streetAddressKey,
	).Scan(&campJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Errorf("campaign not found: %s", streetAddressKey)
		}
		return nil, eris.Wrapf(err, "postgres: get campaign %s", streetAddressKey)
	}

	var camp model.CampaignContext
	if err := json.Unmarshal(campJSON, &camp); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal campaign")
	}
	return &camp, nil
}

func (s *PostgresStore) ListCampaigns(ctx context.Context) ([]model.CampaignContext, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT campaign FROM campaigns ORDER BY street_address_key`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list campaigns")
	}
	defer rows.Close()

	var camps []model.CampaignContext
	for rows.Next() {
		var campJSON []byte
		if err := rows.Scan(&campJSON); err != nil {
			return nil, eris.Wrap(err, "postgres: scan campaign")
		}
		var camp model.CampaignContext
		if err := json.Unmarshal(campJSON, &camp); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal campaign")
		}
		camps = append(camps, camp)
	}
	return camps, eris.Wrap(rows.Err(), "postgres: list campaigns iterate")
}

func (s *PostgresStore) RecordImportRun(ctx context.Context, run ImportRun) (*ImportRun, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO import_runs (id, street_address_key, source, input_file, total_rows, skipped_rows, contacts, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.StreetAddressKey, run.Source, run.InputFile,
		run.TotalRows, run.SkippedRows, run.Contacts, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: record import run")
	}
	return &run, nil
}

func (s *PostgresStore) ListImportRuns(ctx context.Context, filter RunFilter) ([]ImportRun, error) {
	query := `SELECT id, street_address_key, source, input_file, total_rows, skipped_rows, contacts, created_at
	          FROM import_runs WHERE true`
	args := []any{}
	argIdx := 1

	if filter.StreetAddressKey != "" {
		query += fmt.Sprintf(` AND street_address_key = $%d`, argIdx)
		args = append(args, filter.StreetAddressKey)
		argIdx++
	}
	if filter.Source != "" {
		query += fmt.Sprintf(` AND source = $%d`, argIdx)
		args = append(args, filter.Source)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list import runs")
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(&r.ID, &r.StreetAddressKey, &r.Source, &r.InputFile,
			&r.TotalRows, &r.SkippedRows, &r.Contacts, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan import run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list import runs iterate")
}

func (s *PostgresStore) ArchiveContacts(ctx context.Context, runID string, rows [][]string) (int64, error) {
	copyRows := make([][]any, 0, len(rows))
	for i, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return 0, eris.Wrap(err, "postgres: marshal archive row")
		}
		copyRows = append(copyRows, []any{uuid.New().String(), runID, i, data})
	}

	return db.CopyFrom(ctx, s.pool, "contact_archive", []string{"id", "run_id", "row_num", "data"}, copyRows)
}

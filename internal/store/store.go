// Package store persists campaign definitions, import run history, and
// normalized contact archives in SQLite or Postgres.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadlist-cli/internal/model"
)

// ImportRun records one normalization pass over an input sheet.
type ImportRun struct {
	ID               string    `json:"id"`
	StreetAddressKey string    `json:"street_address_key"`
	Source           string    `json:"source"`
	InputFile        string    `json:"input_file"`
	TotalRows        int       `json:"total_rows"`
	SkippedRows      int       `json:"skipped_rows"`
	Contacts         int       `json:"contacts"`
	CreatedAt        time.Time `json:"created_at"`
}

// RunFilter specifies criteria for listing import runs.
type RunFilter struct {
	StreetAddressKey string `json:"street_address_key,omitempty"`
	Source           string `json:"source,omitempty"`
	Limit            int    `json:"limit,omitempty"`
	Offset           int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for the import pipeline.
type Store interface {
	// Campaigns, keyed by street address key.
	SaveCampaign(ctx context.Context, camp model.CampaignContext) error
	GetCampaign(ctx context.Context, streetAddressKey string) (*model.CampaignContext, error)
	ListCampaigns(ctx context.Context) ([]model.CampaignContext, error)

	// Import run history.
	RecordImportRun(ctx context.Context, run ImportRun) (*ImportRun, error)
	ListImportRuns(ctx context.Context, filter RunFilter) ([]ImportRun, error)

	// Contact archive: the projected output rows of a run, kept for audit.
	ArchiveContacts(ctx context.Context, runID string, rows [][]string) (int64, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn, poolCfg)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadlist-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "leadlist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testStoreCampaign() model.CampaignContext {
	return model.CampaignContext{
		StreetAddressKey: "123 MAIN ST",
		CampaignTag:      "2026-08 Wake Mailer",
		PropAddress:      "123 Main St, Raleigh, NC 27601",
		PropAPN:          "0787-55-1234",
		PropCounty:       "Wake",
		PropState:        "NC",
		PropAcreage:      "2.5",
		PropPrice:        "45000",
	}
}

func TestSQLite_CampaignRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	camp := testStoreCampaign()
	require.NoError(t, s.SaveCampaign(ctx, camp))

	got, err := s.GetCampaign(ctx, camp.StreetAddressKey)
	require.NoError(t, err)
	assert.Equal(t, camp, *got)
}

func TestSQLite_SaveCampaignUpserts(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	camp := testStoreCampaign()
	require.NoError(t, s.SaveCampaign(ctx, camp))

	camp.PropPrice = "52000"
	require.NoError(t, s.SaveCampaign(ctx, camp))

	got, err := s.GetCampaign(ctx, camp.StreetAddressKey)
	require.NoError(t, err)
	assert.Equal(t, "52000", got.PropPrice)

	camps, err := s.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Len(t, camps, 1)
}

func TestSQLite_SaveCampaignRequiresKey(t *testing.T) {
	s := newTestSQLite(t)
	err := s.SaveCampaign(context.Background(), model.CampaignContext{CampaignTag: "tag"})
	require.Error(t, err)
}

func TestSQLite_GetCampaignNotFound(t *testing.T) {
	s := newTestSQLite(t)
	_, err := s.GetCampaign(context.Background(), "999 NOWHERE LN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_ImportRunsAndArchive(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	camp := testStoreCampaign()
	require.NoError(t, s.SaveCampaign(ctx, camp))

	run, err := s.RecordImportRun(ctx, ImportRun{
		StreetAddressKey: camp.StreetAddressKey,
		Source:           "realtor",
		InputFile:        "soldby.csv",
		TotalRows:        10,
		SkippedRows:      2,
		Contacts:         6,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	n, err := s.ArchiveContacts(ctx, run.ID, [][]string{
		{"Jane", "Doe", "Acme Realty"},
		{"Tom", "Reed", "Blue Pines"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	runs, err := s.ListImportRuns(ctx, RunFilter{StreetAddressKey: camp.StreetAddressKey})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "realtor", runs[0].Source)
	assert.Equal(t, 6, runs[0].Contacts)
}

func TestSQLite_ListImportRunsFilterBySource(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	camp := testStoreCampaign()
	require.NoError(t, s.SaveCampaign(ctx, camp))

	for _, src := range []string{"realtor", "neighbor", "investor"} {
		_, err := s.RecordImportRun(ctx, ImportRun{StreetAddressKey: camp.StreetAddressKey, Source: src})
		require.NoError(t, err)
	}

	runs, err := s.ListImportRuns(ctx, RunFilter{Source: "neighbor"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "neighbor", runs[0].Source)
}

func TestSQLite_ArchiveEmptyRows(t *testing.T) {
	s := newTestSQLite(t)
	n, err := s.ArchiveContacts(context.Background(), "run-1", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "dsn", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

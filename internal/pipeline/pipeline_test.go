package pipeline

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadlist-cli/internal/model"
)

func TestNormalize_RealtorEndToEnd(t *testing.T) {
	sheet := [][]string{
		realtorHeader,
		{"Jane Doe • Acme Realty", "NC", "jane@acme.com", "919-555-0100", "1 Elm St", "Raleigh", "27601"},
		{"Jane Doe • Acme Realty", "NC", "", "", "2 Oak St", "Raleigh", "27602"},
		{"Public Records", "NC", "", "", "3 Ash St", "Raleigh", "27603"},
		{"Tom Reed • Blue Pines", "SC", "tom@bp.com", "", "7 Bay St", "Charleston", "29401"},
	}

	result, err := Normalize(sheet, model.SourceRealtor, testCampaign)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Stats.TotalRows)
	assert.Equal(t, 1, result.Stats.SkippedRows)
	assert.Equal(t, 2, result.Stats.Contacts)
	require.Len(t, result.Rows, 2)

	// Every output row has exactly the 20 fixed columns.
	assert.Equal(t, model.OutputColumns, result.Header)
	for _, row := range result.Rows {
		assert.Len(t, row, 20)
	}

	jane := result.Rows[0]
	assert.Equal(t, "Jane", jane[0])
	assert.Equal(t, "Doe", jane[1])
	assert.Equal(t, "Acme Realty", jane[2])
	assert.Equal(t, "1 Elm St, Raleigh, NC 27601\n2 Oak St, Raleigh, NC 27602", jane[13])
	assert.Contains(t, jane[11], "Type: Realtor")
	assert.Contains(t, jane[11], "State: NC")
	assert.Contains(t, jane[11], "County: Wake")

	// Campaign display fields repeat on every row.
	for _, row := range result.Rows {
		assert.Equal(t, testCampaign.PropAddress, row[14])
		assert.Equal(t, testCampaign.PropAPN, row[15])
		assert.Equal(t, testCampaign.PropPrice, row[19])
	}
}

func TestNormalize_EmptySheetYieldsHeaderOnly(t *testing.T) {
	result, err := Normalize([][]string{neighborHeader}, model.SourceNeighbor, testCampaign)
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Equal(t, model.OutputColumns, result.Header)
}

func TestNormalize_NoHeaderRowIsError(t *testing.T) {
	_, err := Normalize(nil, model.SourceNeighbor, testCampaign)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestNormalize_UnknownSourceRejected(t *testing.T) {
	_, err := Normalize([][]string{{"A"}}, model.SourceType("mystery"), testCampaign)
	require.Error(t, err)
}

func TestNormalize_IncompleteCampaignRejected(t *testing.T) {
	camp := testCampaign
	camp.PropAPN = ""
	_, err := Normalize([][]string{realtorHeader}, model.SourceRealtor, camp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campaign")
}

func TestWriteCSV_RoundTripsEmbeddedNewlines(t *testing.T) {
	sheet := [][]string{
		realtorHeader,
		{"Jane Doe • Acme Realty", "NC", "jane@acme.com", "", "1 Elm St", "Raleigh", "27601"},
		{"Jane Doe • Acme Realty", "NC", "", "", "2 Oak St", "Raleigh", "27602"},
	}
	result, err := Normalize(sheet, model.SourceRealtor, testCampaign)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result))

	parsed, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, model.OutputColumns, parsed[0])
	assert.Equal(t, "1 Elm St, Raleigh, NC 27601\n2 Oak St, Raleigh, NC 27602", parsed[1][13])
}

func TestWriteXLSX(t *testing.T) {
	sheet := [][]string{
		investorHeader,
		investorRow(nil),
	}
	result, err := Normalize(sheet, model.SourceInvestor, testCampaign)
	require.NoError(t, err)

	path := t.TempDir() + "/out.xlsx"
	require.NoError(t, WriteXLSX(path, "Contacts", result))
}

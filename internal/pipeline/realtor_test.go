package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadlist-cli/internal/model"
	"github.com/sells-group/leadlist-cli/internal/resolve"
)

var testCampaign = model.CampaignContext{
	StreetAddressKey: "123 MAIN ST",
	CampaignTag:      "2026-08 Wake Mailer",
	PropAddress:      "123 Main St, Raleigh, NC 27601",
	PropAPN:          "0787-55-1234",
	PropCounty:       "Wake",
	PropState:        "NC",
	PropAcreage:      "2.5",
	PropPrice:        "45000",
}

var realtorHeader = []string{
	"Agent's Name", "STATE OR PROVINCE", "Email Address",
	"Mobile Phone Number", "ADDRESS", "CITY", "ZIP OR POSTAL CODE",
}

func realtorSource(t *testing.T) Source {
	t.Helper()
	return NewRealtorSource(resolve.ResolveHeaders(realtorHeader), testCampaign)
}

func TestRealtorSource_BuildsFromCombinedAgentField(t *testing.T) {
	agg := NewAggregator(realtorSource(t))
	agg.Add([]string{"Jane Doe • Acme Realty", "NC", "jane@acme.com", "919-555-0100", "1 Elm St", "Raleigh", "27601"})

	records := agg.Records()
	require.Len(t, records, 1)

	c := records[0]
	assert.Equal(t, "Jane", c.FirstName)
	assert.Equal(t, "Doe", c.LastName)
	assert.Equal(t, "Acme Realty", c.CompanyName)
	assert.Equal(t, "jane@acme.com", c.Email)
	assert.Equal(t, "919-555-0100", c.Phone1)
	assert.Equal(t, []string{"1 Elm St, Raleigh, NC 27601"}, c.RecentlySold)

	assert.True(t, c.Tags.Contains("2026-08 Wake Mailer"))
	assert.True(t, c.Tags.Contains("Type: Realtor"))
	assert.True(t, c.Tags.Contains("County: Wake"))
	assert.True(t, c.Tags.Contains("State: NC"))
}

func TestRealtorSource_RepeatRowsAppendSoldListings(t *testing.T) {
	agg := NewAggregator(realtorSource(t))
	agg.Add([]string{"Jane Doe • Acme Realty", "NC", "jane@acme.com", "919-555-0100", "1 Elm St", "Raleigh", "27601"})
	agg.Add([]string{"Jane Doe • Acme Realty", "NC", "ignored@other.com", "919-555-9999", "2 Oak St", "Raleigh", "27602"})

	records := agg.Records()
	require.Len(t, records, 1)

	c := records[0]
	// Identity fields keep the first row's values.
	assert.Equal(t, "jane@acme.com", c.Email)
	assert.Equal(t, []string{
		"1 Elm St, Raleigh, NC 27601",
		"2 Oak St, Raleigh, NC 27602",
	}, c.RecentlySold)
}

func TestRealtorSource_PartialSoldAddressDropped(t *testing.T) {
	agg := NewAggregator(realtorSource(t))
	agg.Add([]string{"Jane Doe • Acme Realty", "NC", "jane@acme.com", "", "1 Elm St", "Raleigh", "27601"})
	agg.Add([]string{"Jane Doe • Acme Realty", "NC", "", "", "2 Oak St", "", "27602"})

	records := agg.Records()
	require.Len(t, records, 1)
	assert.Equal(t, []string{"1 Elm St, Raleigh, NC 27601"}, records[0].RecentlySold)
}

func TestRealtorSource_PublicRecordsSkipped(t *testing.T) {
	agg := NewAggregator(realtorSource(t))
	agg.Add([]string{"Public Records", "NC", "x@y.com", "919-555-0100", "1 Elm St", "Raleigh", "27601"})
	agg.Add([]string{"", "NC", "x@y.com", "", "", "", ""})

	assert.Empty(t, agg.Records())
	assert.Equal(t, 2, agg.Skipped())
}

func TestRealtorSource_KeyIsRawAgentString(t *testing.T) {
	src := realtorSource(t)
	// Whitespace and case variants are distinct keys.
	assert.NotEqual(t,
		src.Key([]string{"Jane Doe • Acme Realty"}),
		src.Key([]string{"jane doe • acme realty"}),
	)
	assert.NotEqual(t,
		src.Key([]string{"Jane Doe • Acme Realty"}),
		src.Key([]string{" Jane Doe • Acme Realty"}),
	)
}

func TestRealtorSource_NoSeparatorMeansNoCompany(t *testing.T) {
	agg := NewAggregator(realtorSource(t))
	agg.Add([]string{"Jane Doe", "NC", "", "", "", "", ""})

	records := agg.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Jane", records[0].FirstName)
	assert.Equal(t, "Doe", records[0].LastName)
	assert.Equal(t, "", records[0].CompanyName)
	assert.Empty(t, records[0].RecentlySold)
}

func TestRealtorSource_MissingHeadersDegradeToEmpty(t *testing.T) {
	h := resolve.ResolveHeaders([]string{"Agent's Name"})
	agg := NewAggregator(NewRealtorSource(h, testCampaign))
	agg.Add([]string{"Jane Doe • Acme Realty"})

	records := agg.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Email)
	assert.Empty(t, records[0].RecentlySold)
	assert.False(t, records[0].Tags.Contains("State: NC"))
}

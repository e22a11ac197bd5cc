package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullCampaign() CampaignContext {
	return CampaignContext{
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

func TestCampaignContext_Complete(t *testing.T) {
	assert.True(t, fullCampaign().Complete())
}

func TestCampaignContext_IncompleteWhenAnyFieldBlank(t *testing.T) {
	c := fullCampaign()
	c.CampaignTag = ""
	assert.False(t, c.Complete())

	c = fullCampaign()
	c.StreetAddressKey = ""
	assert.False(t, c.Complete())

	assert.False(t, CampaignContext{}.Complete())
}

func TestSourceType_Valid(t *testing.T) {
	assert.True(t, SourceRealtor.Valid())
	assert.True(t, SourceNeighbor.Valid())
	assert.True(t, SourceInvestor.Valid())
	assert.False(t, SourceType("grata").Valid())
}

func TestContact_DisplayName(t *testing.T) {
	assert.Equal(t, "Jane Doe", (&Contact{FirstName: "Jane", LastName: "Doe"}).DisplayName())
	assert.Equal(t, "Acme LLC", (&Contact{CompanyName: "Acme LLC"}).DisplayName())
	assert.Equal(t, "Jane", (&Contact{FirstName: "Jane"}).DisplayName())
	assert.Equal(t, "Doe", (&Contact{LastName: "Doe"}).DisplayName())
}

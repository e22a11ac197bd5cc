package campaign

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campaignYAML = `
campaign:
  campaign_tag: "2026-08 Wake Mailer"
  property_address: "123 Main St, Raleigh, NC 27601"
  property_apn: "0787-55-1234"
  property_county: "Wake"
  property_state: "NC"
  property_acreage: "2.5"
  asking_price: "45000"
`

func writeCampaignFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campaign.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_DerivesKeyFromAddress(t *testing.T) {
	camp, err := LoadFile(writeCampaignFile(t, campaignYAML))
	require.NoError(t, err)

	assert.Equal(t, "123 MAIN ST", camp.StreetAddressKey)
	assert.Equal(t, "2026-08 Wake Mailer", camp.CampaignTag)
	assert.Equal(t, "Wake", camp.PropCounty)
	assert.True(t, camp.Complete())
}

func TestLoadFile_ExplicitKeyWins(t *testing.T) {
	yaml := campaignYAML + `  street_address_key: "CUSTOM KEY"` + "\n"
	camp, err := LoadFile(writeCampaignFile(t, yaml))
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM KEY", camp.StreetAddressKey)
}

func TestLoadFile_MissingFieldsRejected(t *testing.T) {
	yaml := `
campaign:
  campaign_tag: "2026-08 Wake Mailer"
  property_address: "123 Main St, Raleigh, NC 27601"
`
	_, err := LoadFile(writeCampaignFile(t, yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing fields")
	assert.Contains(t, err.Error(), "property_apn")
	assert.Contains(t, err.Error(), "asking_price")
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFile_BadYAML(t *testing.T) {
	_, err := LoadFile(writeCampaignFile(t, "campaign: [not a map"))
	require.Error(t, err)
}

func TestDeriveKey(t *testing.T) {
	assert.Equal(t, "123 MAIN ST", DeriveKey("123 Main St, Raleigh, NC 27601"))
	assert.Equal(t, "123 MAIN ST", DeriveKey("  123   main st  "))
	assert.Equal(t, "45 OAK RIDGE RD", DeriveKey("45 Oak Ridge Rd"))
	assert.Equal(t, "", DeriveKey(""))
}

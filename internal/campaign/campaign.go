// Package campaign loads campaign definition files and derives the
// street address key used to identify a campaign everywhere else.
package campaign

import (
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadlist-cli/internal/model"
)

// LoadFile reads a campaign definition from a YAML file. The file has a
// top-level "campaign" key so it can live alongside other per-deal
// config without ambiguity. A missing street_address_key is derived
// from the property address.
func LoadFile(path string) (*model.CampaignContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "campaign: read %s", path)
	}

	var wrapper struct {
		Campaign model.CampaignContext `yaml:"campaign"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrapf(err, "campaign: parse %s", path)
	}

	camp := wrapper.Campaign
	if camp.StreetAddressKey == "" {
		camp.StreetAddressKey = DeriveKey(camp.PropAddress)
	}

	if err := Validate(camp); err != nil {
		return nil, err
	}
	return &camp, nil
}

// Validate rejects campaigns with any blank field. Every output row
// carries the full campaign context, so a partial campaign would
// silently produce rows with holes in them.
func Validate(camp model.CampaignContext) error {
	if !camp.Complete() {
		var missing []string
		for field, val := range map[string]string{
			"street_address_key": camp.StreetAddressKey,
			"campaign_tag":       camp.CampaignTag,
			"property_address":   camp.PropAddress,
			"property_apn":       camp.PropAPN,
			"property_county":    camp.PropCounty,
			"property_state":     camp.PropState,
			"property_acreage":   camp.PropAcreage,
			"asking_price":       camp.PropPrice,
		} {
			if strings.TrimSpace(val) == "" {
				missing = append(missing, field)
			}
		}
		sort.Strings(missing)
		return eris.Errorf("campaign: missing fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DeriveKey turns a full property address into the campaign key: the
// street segment before the first comma, uppercased, with runs of
// whitespace collapsed. "123  Main St, Raleigh, NC 27601" and
// "123 MAIN ST" identify the same campaign.
func DeriveKey(propAddress string) string {
	street, _, _ := strings.Cut(propAddress, ",")
	return strings.ToUpper(strings.Join(strings.Fields(street), " "))
}

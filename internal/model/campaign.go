package model

// CampaignContext is the per-run bundle of property and campaign metadata
// stamped onto every output row. It is supplied once per pipeline run and
// never mutated by the pipeline.
type CampaignContext struct {
	StreetAddressKey string `yaml:"street_address_key" json:"street_address_key"`
	CampaignTag      string `yaml:"campaign_tag" json:"campaign_tag"`
	PropAddress      string `yaml:"property_address" json:"property_address"`
	PropAPN          string `yaml:"property_apn" json:"property_apn"`
	PropCounty       string `yaml:"property_county" json:"property_county"`
	PropState        string `yaml:"property_state" json:"property_state"`
	PropAcreage      string `yaml:"property_acreage" json:"property_acreage"`
	PropPrice        string `yaml:"asking_price" json:"asking_price"`
}

// Complete reports whether every campaign field is non-blank. The pipeline
// refuses to run on an incomplete context.
func (c CampaignContext) Complete() bool {
	for _, v := range []string{
		c.StreetAddressKey, c.CampaignTag,
		c.PropAddress, c.PropAPN, c.PropCounty,
		c.PropState, c.PropAcreage, c.PropPrice,
	} {
		if v == "" {
			return false
		}
	}
	return true
}

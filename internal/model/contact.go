// Package model defines the contact records, campaign context, and output
// schema shared by the list-normalization pipeline.
package model

// SourceType identifies which raw export schema a sheet uses.
type SourceType string

const (
	SourceRealtor  SourceType = "realtor"
	SourceNeighbor SourceType = "neighbor"
	SourceInvestor SourceType = "investor"
)

// Valid reports whether s is one of the three recognized source types.
func (s SourceType) Valid() bool {
	switch s {
	case SourceRealtor, SourceNeighbor, SourceInvestor:
		return true
	}
	return false
}

// Contact is one aggregate record produced by the dedup/merge pass.
// Identity fields are set once when the record's unique key is first seen
// and never overwritten. Repeated facts (sold/owned property addresses)
// are append-only and keep row encounter order.
type Contact struct {
	Source SourceType `json:"source"`
	Key    string     `json:"key"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Phone1      string `json:"phone_1"`
	Phone2      string `json:"phone_2"`
	Phone3      string `json:"phone_3"`

	MailingStreet string `json:"mailing_street"`
	MailingCity   string `json:"mailing_city"`
	MailingState  string `json:"mailing_state"`
	MailingZip    string `json:"mailing_zip"`

	Tags            TagSet   `json:"tags"`
	OwnedProperties []string `json:"owned_properties,omitempty"`
	RecentlySold    []string `json:"recently_sold,omitempty"`
}

// DisplayName returns the best human label for the contact: the company
// name for company records, otherwise "First Last".
func (c *Contact) DisplayName() string {
	if c.CompanyName != "" && c.FirstName == "" && c.LastName == "" {
		return c.CompanyName
	}
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

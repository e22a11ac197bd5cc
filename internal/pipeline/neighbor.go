package pipeline

import (
	"github.com/sells-group/leadlist-cli/internal/model"
	"github.com/sells-group/leadlist-cli/internal/resolve"
)

// neighborCols holds the resolved column indexes for a neighbor export.
type neighborCols struct {
	company  int
	name     int
	email    int
	phone1   int
	phone2   int
	mailing  int
	property int
}

func resolveNeighborCols(h resolve.Headers) neighborCols {
	return neighborCols{
		company:  h.Index("Company Name"),
		name:     h.Index("Name"),
		email:    h.Index("Email"),
		phone1:   h.Index("Phone 1"),
		phone2:   h.Index("Phone 2"),
		mailing:  h.Index("Mailing Address"),
		property: h.Index("Property Address"),
	}
}

// NewNeighborSource builds the Source for neighbor exports. The
// uniqueness key is the trimmed company name when present, otherwise the
// trimmed person name. Neighbors have no repeated-facts merge: duplicate
// keys are complete no-ops, first row wins entirely.
func NewNeighborSource(h resolve.Headers, camp model.CampaignContext) Source {
	cols := resolveNeighborCols(h)

	return Source{
		Key: func(row []string) string {
			if company := resolve.Cell(row, cols.company); company != "" {
				return company
			}
			return resolve.Cell(row, cols.name)
		},
		Build: func(key string, row []string) *model.Contact {
			company := resolve.Cell(row, cols.company)

			c := &model.Contact{
				Source: model.SourceNeighbor,
				Key:    key,
				Email:  resolve.Cell(row, cols.email),
				Phone1: resolve.Cell(row, cols.phone1),
				Phone2: resolve.Cell(row, cols.phone2),
			}

			if company != "" {
				c.CompanyName = company
			} else {
				name := resolve.SplitPersonName(resolve.Cell(row, cols.name))
				c.FirstName = name.First
				c.LastName = name.Last
			}

			mailing := resolve.SplitAddress(resolve.Cell(row, cols.mailing))
			c.MailingStreet = mailing.Street
			c.MailingCity = mailing.City
			c.MailingState = mailing.State
			c.MailingZip = mailing.Zip

			c.Tags.Add(camp.CampaignTag)
			c.Tags.Add("Type: Neighbor")
			c.Tags.Add("County: " + camp.PropCounty)
			if mailing.State != "" {
				c.Tags.Add("State: " + mailing.State)
			}
			if company != "" {
				c.Tags.Add("Type: Company")
			}

			// The adjoining parcel the neighbor owns.
			if property := resolve.Cell(row, cols.property); property != "" {
				c.OwnedProperties = append(c.OwnedProperties, property)
			}

			return c
		},
		Merge: nil,
	}
}

package pipeline

import (
	"strings"

	"github.com/sells-group/leadlist-cli/internal/model"
	"github.com/sells-group/leadlist-cli/internal/resolve"
)

// investorCols holds the resolved column indexes for a Propwire
// investor-contact export.
type investorCols struct {
	email       int
	phone1      int
	phone2      int
	phone3      int
	ownerType   int
	firstName   int
	lastName    int
	mailAddr    int
	mailCity    int
	mailState   int
	mailZip     int
	county      int
	propAddr    int
	propCity    int
	propState   int
	propZip     int
}

func resolveInvestorCols(h resolve.Headers) investorCols {
	return investorCols{
		email:     h.Index("Email"),
		phone1:    h.Index("Phone 1"),
		phone2:    h.Index("Phone 2"),
		phone3:    h.Index("Phone 3"),
		ownerType: h.Index("Owner Type"),
		firstName: h.Index("Owner 1 First Name"),
		lastName:  h.Index("Owner 1 Last Name"),
		mailAddr:  h.Index("Owner Mailing Address"),
		mailCity:  h.Index("Owner Mailing City"),
		mailState: h.Index("Owner Mailing State"),
		mailZip:   h.Index("Owner Mailing Zip"),
		county:    h.Index("County"),
		propAddr:  h.Index("Address"),
		propCity:  h.Index("City"),
		propState: h.Index("State"),
		propZip:   h.Index("Zip"),
	}
}

// NewInvestorSource builds the Source for investor-contact exports. The
// uniqueness key is the email when present, otherwise the first phone
// number; rows with neither are skipped.
func NewInvestorSource(h resolve.Headers, camp model.CampaignContext) Source {
	cols := resolveInvestorCols(h)

	appendOwned := func(c *model.Contact, row []string) {
		addr := resolve.Cell(row, cols.propAddr)
		if addr == "" {
			return
		}
		// City/state/zip may be blank and appear as empty segments.
		c.OwnedProperties = append(c.OwnedProperties, resolve.FormatProperty(
			addr,
			resolve.Cell(row, cols.propCity),
			resolve.Cell(row, cols.propState),
			resolve.Cell(row, cols.propZip),
		))
	}

	return Source{
		Key: func(row []string) string {
			if email := resolve.Cell(row, cols.email); email != "" {
				return email
			}
			return resolve.Cell(row, cols.phone1)
		},
		Build: func(key string, row []string) *model.Contact {
			c := &model.Contact{
				Source:        model.SourceInvestor,
				Key:           key,
				FirstName:     resolve.Cell(row, cols.firstName),
				LastName:      resolve.Cell(row, cols.lastName),
				Email:         resolve.Cell(row, cols.email),
				Phone1:        resolve.Cell(row, cols.phone1),
				Phone2:        resolve.Cell(row, cols.phone2),
				Phone3:        resolve.Cell(row, cols.phone3),
				MailingStreet: resolve.Cell(row, cols.mailAddr),
				MailingCity:   resolve.Cell(row, cols.mailCity),
				MailingState:  resolve.Cell(row, cols.mailState),
				MailingZip:    resolve.Cell(row, cols.mailZip),
			}

			c.Tags.Add(camp.CampaignTag)
			c.Tags.Add("Type: Investor")
			c.Tags.Add("Source: Propwire")
			c.Tags.Add("County: " + camp.PropCounty)
			// The row's own county is tagged alongside the campaign county;
			// when they differ both tags coexist.
			if county := resolve.Cell(row, cols.county); county != "" {
				c.Tags.Add("County: " + county)
			}
			if state := resolve.Cell(row, cols.propState); state != "" {
				c.Tags.Add("State: " + state)
			}
			if isCompanyOwner(resolve.Cell(row, cols.ownerType)) {
				c.Tags.Add("Type: Company")
			}

			appendOwned(c, row)
			return c
		},
		Merge: func(c *model.Contact, row []string) {
			appendOwned(c, row)
		},
	}
}

// isCompanyOwner reports whether an Owner Type value names a non-person
// owner (anything other than an individual).
func isCompanyOwner(ownerType string) bool {
	if ownerType == "" {
		return false
	}
	return !strings.EqualFold(ownerType, "Individual")
}

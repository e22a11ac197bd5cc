package pipeline

import (
	"strings"

	"github.com/sells-group/leadlist-cli/internal/model"
)

// Project maps aggregate records onto the fixed 20-column output schema.
// Every row repeats the same six campaign display fields; the tag set is
// comma-joined in insertion order and each repeated-facts list is
// newline-joined in append order.
func Project(records []*model.Contact, camp model.CampaignContext) [][]string {
	rows := make([][]string, 0, len(records))
	for _, c := range records {
		rows = append(rows, []string{
			c.FirstName,
			c.LastName,
			c.CompanyName,
			c.Email,
			c.Phone1,
			c.Phone2,
			c.Phone3,
			c.MailingStreet,
			c.MailingCity,
			c.MailingState,
			c.MailingZip,
			c.Tags.String(),
			strings.Join(c.OwnedProperties, "\n"),
			strings.Join(c.RecentlySold, "\n"),
			camp.PropAddress,
			camp.PropAPN,
			camp.PropCounty,
			camp.PropState,
			camp.PropAcreage,
			camp.PropPrice,
		})
	}
	return rows
}

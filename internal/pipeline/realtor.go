package pipeline

import (
	"strings"

	"github.com/sells-group/leadlist-cli/internal/model"
	"github.com/sells-group/leadlist-cli/internal/resolve"
)

// skipAgentName marks MLS placeholder rows that carry no real agent.
const skipAgentName = "Public Records"

// realtorCols holds the resolved column indexes for a realtor export.
// Built once per sheet; -1 means the column is absent and reads as empty.
type realtorCols struct {
	agent int
	state int
	email int
	phone int
	addr  int
	city  int
	zip   int
}

func resolveRealtorCols(h resolve.Headers) realtorCols {
	return realtorCols{
		agent: h.Index("Agent's Name"),
		state: h.Index("STATE OR PROVINCE"),
		email: h.Index("Email Address"),
		phone: h.Index("Mobile Phone Number"),
		addr:  h.Index("ADDRESS"),
		city:  h.Index("CITY"),
		zip:   h.Index("ZIP OR POSTAL CODE"),
	}
}

// NewRealtorSource builds the Source for realtor exports. The uniqueness
// key is the raw agent field exactly as exported, company suffix and
// whitespace included, so the same agent string always lands on the same
// record.
func NewRealtorSource(h resolve.Headers, camp model.CampaignContext) Source {
	cols := resolveRealtorCols(h)

	appendSold := func(c *model.Contact, row []string) {
		addr := resolve.Cell(row, cols.addr)
		city := resolve.Cell(row, cols.city)
		state := resolve.Cell(row, cols.state)
		zip := resolve.Cell(row, cols.zip)
		// A sold listing is only recorded when the full address is present;
		// partial address data on a repeat row is dropped silently.
		if addr == "" || city == "" || state == "" || zip == "" {
			return
		}
		c.RecentlySold = append(c.RecentlySold, resolve.FormatProperty(addr, city, state, zip))
	}

	return Source{
		Key: func(row []string) string {
			raw := resolve.RawCell(row, cols.agent)
			if strings.TrimSpace(raw) == skipAgentName {
				return ""
			}
			if strings.TrimSpace(raw) == "" {
				return ""
			}
			return raw
		},
		Build: func(key string, row []string) *model.Contact {
			agent := resolve.SplitAgentField(resolve.RawCell(row, cols.agent))
			name := resolve.SplitPersonName(agent.FullName)

			c := &model.Contact{
				Source:      model.SourceRealtor,
				Key:         key,
				FirstName:   name.First,
				LastName:    name.Last,
				CompanyName: agent.CompanyName,
				Email:       resolve.Cell(row, cols.email),
				Phone1:      resolve.Cell(row, cols.phone),
			}

			c.Tags.Add(camp.CampaignTag)
			c.Tags.Add("Type: Realtor")
			c.Tags.Add("County: " + camp.PropCounty)
			if state := resolve.Cell(row, cols.state); state != "" {
				c.Tags.Add("State: " + state)
			}

			appendSold(c, row)
			return c
		},
		Merge: func(c *model.Contact, row []string) {
			appendSold(c, row)
		},
	}
}

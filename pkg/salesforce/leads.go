package salesforce

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadlist-cli/internal/model"
)

// PushResult summarizes a lead push.
type PushResult struct {
	Inserted int
	Failed   int
	Errors   []string
}

// BuildLead maps one projected output row onto Salesforce Lead fields.
// Salesforce requires LastName and Company on every Lead, so blanks get
// placeholder values rather than failing the whole batch.
func BuildLead(row []string) (map[string]any, error) {
	if len(row) != len(model.OutputColumns) {
		return nil, eris.Errorf("sf: lead row has %d columns, want %d", len(row), len(model.OutputColumns))
	}

	lastName := row[model.ColLastName]
	if lastName == "" {
		lastName = "Unknown"
	}
	company := row[model.ColCompanyName]
	if company == "" {
		company = "Individual"
	}

	lead := map[string]any{
		"FirstName":  row[model.ColFirstName],
		"LastName":   lastName,
		"Company":    company,
		"LeadSource": "Land Campaign",
	}

	setIfPresent := func(field, val string) {
		if val != "" {
			lead[field] = val
		}
	}
	setIfPresent("Email", row[model.ColEmail])
	setIfPresent("Phone", row[model.ColPhone1])
	setIfPresent("MobilePhone", row[model.ColPhone2])
	setIfPresent("OtherPhone", row[model.ColPhone3])
	setIfPresent("Street", row[model.ColMailingStreet])
	setIfPresent("City", row[model.ColMailingCity])
	setIfPresent("State", row[model.ColMailingState])
	setIfPresent("PostalCode", row[model.ColMailingZip])

	var desc []string
	if tags := row[model.ColTags]; tags != "" {
		desc = append(desc, "Tags: "+tags)
	}
	if owned := row[model.ColOwnedProperties]; owned != "" {
		desc = append(desc, "Owned Properties:\n"+owned)
	}
	if sold := row[model.ColRecentlySold]; sold != "" {
		desc = append(desc, "Recently Sold:\n"+sold)
	}
	desc = append(desc,
		"Campaign Property: "+row[model.ColDispAddress]+
			" (APN "+row[model.ColDispAPN]+", "+row[model.ColDispCounty]+" County, "+row[model.ColDispState]+
			", "+row[model.ColDispAcreage]+" ac, asking "+row[model.ColDispPrice]+")")
	lead["Description"] = strings.Join(desc, "\n\n")

	return lead, nil
}

// PushLeads inserts the projected output rows as Salesforce Leads in
// collection batches. A row that fails to insert does not abort the
// push; failures are reported in the result.
func PushLeads(ctx context.Context, c Client, rows [][]string) (*PushResult, error) {
	leads := make([]map[string]any, 0, len(rows))
	for i, row := range rows {
		lead, err := BuildLead(row)
		if err != nil {
			return nil, eris.Wrapf(err, "sf: row %d", i)
		}
		leads = append(leads, lead)
	}

	result := &PushResult{}
	for start := 0; start < len(leads); start += maxBatchSize {
		end := min(start+maxBatchSize, len(leads))

		batchResults, err := c.InsertCollection(ctx, "Lead", leads[start:end])
		if err != nil {
			return nil, err
		}
		for _, r := range batchResults {
			if r.Success {
				result.Inserted++
				continue
			}
			result.Failed++
			result.Errors = append(result.Errors, strings.Join(r.Errors, "; "))
		}
	}

	zap.L().Info("sf: lead push complete",
		zap.Int("inserted", result.Inserted),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

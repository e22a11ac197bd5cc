package notion

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadlist-cli/internal/model"
)

// PushResult summarizes a contact push.
type PushResult struct {
	Created int
	Failed  int
	Errors  []string
}

// BuildContactPage maps one projected output row onto a page create
// request for the contacts database. Tags become a multi-select so the
// team can filter by campaign and contact type in Notion.
func BuildContactPage(dbID string, row []string) (*notionapi.PageCreateRequest, error) {
	if len(row) != len(model.OutputColumns) {
		return nil, eris.Errorf("notion: contact row has %d columns, want %d", len(row), len(model.OutputColumns))
	}

	name := strings.TrimSpace(row[model.ColFirstName] + " " + row[model.ColLastName])
	if name == "" {
		name = row[model.ColCompanyName]
	}
	if name == "" {
		name = "Unknown Contact"
	}

	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: richText(name),
		},
	}

	if company := row[model.ColCompanyName]; company != "" {
		props["Company"] = notionapi.RichTextProperty{RichText: richText(company)}
	}
	if email := row[model.ColEmail]; email != "" {
		props["Email"] = notionapi.EmailProperty{Email: email}
	}
	if phone := row[model.ColPhone1]; phone != "" {
		props["Phone"] = notionapi.PhoneNumberProperty{PhoneNumber: phone}
	}

	if mailing := formatMailing(row); mailing != "" {
		props["Mailing Address"] = notionapi.RichTextProperty{RichText: richText(mailing)}
	}
	if owned := row[model.ColOwnedProperties]; owned != "" {
		props["Owned Properties"] = notionapi.RichTextProperty{RichText: richText(owned)}
	}
	if sold := row[model.ColRecentlySold]; sold != "" {
		props["Recently Sold"] = notionapi.RichTextProperty{RichText: richText(sold)}
	}
	props["Campaign Property"] = notionapi.RichTextProperty{RichText: richText(row[model.ColDispAddress])}

	if tags := row[model.ColTags]; tags != "" {
		var opts []notionapi.Option
		for _, tag := range strings.Split(tags, ",") {
			opts = append(opts, notionapi.Option{Name: tag})
		}
		props["Tags"] = notionapi.MultiSelectProperty{MultiSelect: opts}
	}

	return &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: props,
	}, nil
}

// PushContacts creates one page per projected output row in the
// contacts database. Individual page failures are collected rather than
// aborting the push.
func PushContacts(ctx context.Context, c Client, dbID string, rows [][]string) (*PushResult, error) {
	result := &PushResult{}
	for i, row := range rows {
		req, err := BuildContactPage(dbID, row)
		if err != nil {
			return nil, eris.Wrapf(err, "notion: row %d", i)
		}

		if _, err := c.CreatePage(ctx, req); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			zap.L().Warn("notion: create contact failed",
				zap.Int("row", i),
				zap.Error(err),
			)
			continue
		}
		result.Created++
	}

	zap.L().Info("notion: contact push complete",
		zap.Int("created", result.Created),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func formatMailing(row []string) string {
	parts := make([]string, 0, 4)
	for _, idx := range []int{model.ColMailingStreet, model.ColMailingCity, model.ColMailingState, model.ColMailingZip} {
		if row[idx] != "" {
			parts = append(parts, row[idx])
		}
	}
	return strings.Join(parts, ", ")
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: s},
	}}
}

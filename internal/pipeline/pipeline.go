package pipeline

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadlist-cli/internal/model"
	"github.com/sells-group/leadlist-cli/internal/resolve"
)

// Stats summarizes one normalization pass.
type Stats struct {
	TotalRows   int `json:"total_rows"`
	SkippedRows int `json:"skipped_rows"`
	Contacts    int `json:"contacts"`
}

// Result is the output of one normalization pass: the fixed header, the
// projected rows in first-seen order, the aggregate records they came
// from, and the pass stats.
type Result struct {
	Source   model.SourceType `json:"source"`
	Header   []string         `json:"header"`
	Rows     [][]string       `json:"rows"`
	Contacts []*model.Contact `json:"contacts"`
	Stats    Stats            `json:"stats"`
}

// Normalize runs the full pipeline over one source sheet: the first row
// is the header, the rest are data. A sheet with no data rows yields a
// header-only result, not an error. The campaign context must be
// complete; that gate belongs to the caller's boundary but is re-checked
// here so a half-built context can never stamp output rows.
func Normalize(sheet [][]string, src model.SourceType, camp model.CampaignContext) (*Result, error) {
	if !src.Valid() {
		return nil, eris.Errorf("pipeline: unknown source type %q", src)
	}
	if !camp.Complete() {
		return nil, eris.New("pipeline: incomplete campaign context")
	}
	if len(sheet) == 0 {
		return nil, eris.Errorf("pipeline: %s sheet has no header row", src)
	}

	headers := resolve.ResolveHeaders(sheet[0])
	dataRows := sheet[1:]

	var source Source
	switch src {
	case model.SourceRealtor:
		source = NewRealtorSource(headers, camp)
	case model.SourceNeighbor:
		source = NewNeighborSource(headers, camp)
	case model.SourceInvestor:
		source = NewInvestorSource(headers, camp)
	}

	agg := NewAggregator(source)
	for _, row := range dataRows {
		agg.Add(row)
	}

	records := agg.Records()
	result := &Result{
		Source:   src,
		Header:   model.OutputColumns,
		Rows:     Project(records, camp),
		Contacts: records,
		Stats: Stats{
			TotalRows:   len(dataRows),
			SkippedRows: agg.Skipped(),
			Contacts:    len(records),
		},
	}

	zap.L().Info("pipeline: normalized",
		zap.String("source", string(src)),
		zap.Int("rows", result.Stats.TotalRows),
		zap.Int("skipped", result.Stats.SkippedRows),
		zap.Int("contacts", result.Stats.Contacts),
	)

	return result, nil
}

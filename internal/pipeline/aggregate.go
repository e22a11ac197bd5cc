// Package pipeline implements the list-normalization core: deduplicating
// raw export rows into aggregate contact records and projecting them onto
// the fixed CRM import schema.
package pipeline

import (
	"github.com/sells-group/leadlist-cli/internal/model"
)

// Source bundles the per-schema behaviors the aggregator needs: deriving
// a uniqueness key, building a record from its defining row, and merging
// a repeat row into an existing record.
type Source struct {
	// Key derives the uniqueness key for a row. An empty key means the
	// row lacks its discriminating field and is skipped entirely.
	Key func(row []string) string
	// Build constructs a new record from the first row seen for a key.
	// It performs the one-time name/address parsing and tag seeding.
	Build func(key string, row []string) *model.Contact
	// Merge folds a repeat row into an existing record. It only appends
	// repeated facts; identity fields are never overwritten. Nil means
	// repeat keys are no-ops (first-seen wins entirely).
	Merge func(c *model.Contact, row []string)
}

// Aggregator deduplicates rows into one record per unique key. Each
// aggregation pass owns its own key map; nothing is shared between runs.
type Aggregator struct {
	src     Source
	byKey   map[string]*model.Contact
	order   []string
	skipped int
}

// NewAggregator creates an Aggregator for one pass over one source sheet.
func NewAggregator(src Source) *Aggregator {
	return &Aggregator{
		src:   src,
		byKey: make(map[string]*model.Contact),
	}
}

// Add processes one raw row. Rows with a blank key are skipped with no
// side effect.
func (a *Aggregator) Add(row []string) {
	key := a.src.Key(row)
	if key == "" {
		a.skipped++
		return
	}

	if existing, ok := a.byKey[key]; ok {
		if a.src.Merge != nil {
			a.src.Merge(existing, row)
		}
		return
	}

	a.byKey[key] = a.src.Build(key, row)
	a.order = append(a.order, key)
}

// Records returns the aggregate records in first-seen key order.
func (a *Aggregator) Records() []*model.Contact {
	records := make([]*model.Contact, 0, len(a.order))
	for _, key := range a.order {
		records = append(records, a.byKey[key])
	}
	return records
}

// Skipped returns the number of rows dropped for lacking a key.
func (a *Aggregator) Skipped() int {
	return a.skipped
}

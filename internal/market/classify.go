// Package market classifies county market-summary rows into potential
// buckets using simple threshold rules and sorts them hot-first.
package market

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadlist-cli/internal/resolve"
)

// Category is a market-potential bucket.
type Category string

const (
	CategoryHot  Category = "Hot"
	CategoryWarm Category = "Warm"
	CategoryCool Category = "Cool"
	CategoryPass Category = "Pass"
)

// rank orders categories hot-first for sorting.
var rank = map[Category]int{
	CategoryHot:  0,
	CategoryWarm: 1,
	CategoryCool: 2,
	CategoryPass: 3,
}

// Thresholds holds the classification cutoffs.
type Thresholds struct {
	HotSellThrough   float64 `yaml:"hot_sell_through" mapstructure:"hot_sell_through"`
	WarmSellThrough  float64 `yaml:"warm_sell_through" mapstructure:"warm_sell_through"`
	CoolSellThrough  float64 `yaml:"cool_sell_through" mapstructure:"cool_sell_through"`
	HighPricePerAcre float64 `yaml:"high_price_per_acre" mapstructure:"high_price_per_acre"`
}

// DefaultThresholds are the cutoffs used when config leaves them unset.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HotSellThrough:   0.6,
		WarmSellThrough:  0.4,
		CoolSellThrough:  0.2,
		HighPricePerAcre: 5000,
	}
}

// Result is the classified sheet: the input header with a trailing
// "Market Potential" column, rows stable-sorted hot-first.
type Result struct {
	Header []string         `json:"header"`
	Rows   [][]string       `json:"rows"`
	Counts map[Category]int `json:"counts"`
}

// Classify reads a county market-summary sheet (header row first) and
// buckets every row. Rows whose numeric fields fail to parse fall to
// Pass; absent headers are never an error.
func Classify(sheet [][]string, th Thresholds) (*Result, error) {
	if len(sheet) == 0 {
		return nil, eris.New("market: sheet has no header row")
	}

	headers := resolve.ResolveHeaders(sheet[0])
	priceIdx := headers.Index("Avg Price/Acre")
	listingsIdx := headers.Index("Listings")
	soldIdx := headers.Index("Sold (12mo)")

	type classified struct {
		row      []string
		category Category
	}

	out := make([]classified, 0, len(sheet)-1)
	counts := make(map[Category]int)

	for _, row := range sheet[1:] {
		price := parseFloatOr(resolve.Cell(row, priceIdx), math.NaN())
		listings := parseFloatOr(resolve.Cell(row, listingsIdx), math.NaN())
		sold := parseFloatOr(resolve.Cell(row, soldIdx), math.NaN())

		category := classifyRow(price, listings, sold, th)
		counts[category]++

		withCategory := make([]string, len(row), len(row)+1)
		copy(withCategory, row)
		withCategory = append(withCategory, string(category))
		out = append(out, classified{row: withCategory, category: category})
	}

	// Stable hot-first ordering: category rank, then original position.
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].category] < rank[out[j].category]
	})

	header := make([]string, len(sheet[0]), len(sheet[0])+1)
	copy(header, sheet[0])
	header = append(header, "Market Potential")

	rows := make([][]string, len(out))
	for i, c := range out {
		rows[i] = c.row
	}

	zap.L().Info("market: classified",
		zap.Int("rows", len(rows)),
		zap.Int("hot", counts[CategoryHot]),
		zap.Int("warm", counts[CategoryWarm]),
		zap.Int("cool", counts[CategoryCool]),
		zap.Int("pass", counts[CategoryPass]),
	)

	return &Result{Header: header, Rows: rows, Counts: counts}, nil
}

// classifyRow applies the threshold rules. NaN comparisons are false, so
// unparseable rows land on Pass without special-casing.
func classifyRow(price, listings, sold float64, th Thresholds) Category {
	sellThrough := sold / listings

	switch {
	case sellThrough >= th.HotSellThrough && price >= th.HighPricePerAcre:
		return CategoryHot
	case sellThrough >= th.WarmSellThrough:
		return CategoryWarm
	case sellThrough >= th.CoolSellThrough:
		return CategoryCool
	default:
		return CategoryPass
	}
}

// parseFloatOr parses a currency-ish number, returning def when the value
// is empty or unparseable. Dollar signs and thousands separators are
// stripped first.
func parseFloatOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// Package resolve maps raw header rows to column positions and splits raw
// name and address strings into structured parts.
package resolve

import "strings"

// Headers maps trimmed header names to zero-based column indexes.
//
// Matching is exact and case-sensitive after trimming. When two columns
// share a trimmed name the later one wins, so only the last is
// addressable; raw exports occasionally repeat a column and the upstream
// sheets always read the rightmost, so the quirk is kept rather than
// rejected.
type Headers map[string]int

// ResolveHeaders builds a Headers map from a raw header row.
func ResolveHeaders(headerRow []string) Headers {
	h := make(Headers, len(headerRow))
	for i, name := range headerRow {
		h[strings.TrimSpace(name)] = i
	}
	return h
}

// Index returns the column index for name, or -1 when the header is
// absent. Callers treat -1 as "field not present", never as an error.
func (h Headers) Index(name string) int {
	idx, ok := h[name]
	if !ok {
		return -1
	}
	return idx
}

// Cell returns the trimmed value of row at column idx, or "" when idx is
// -1 (absent header) or past the end of a short row.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// RawCell is Cell without trimming, for fields whose raw form is
// significant (e.g. the realtor uniqueness key).
func RawCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

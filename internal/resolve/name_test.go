package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPersonName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		first string
		last  string
	}{
		{"simple", "Jane Doe", "Jane", "Doe"},
		{"three tokens", "Mary Jo Smith", "Mary", "Jo Smith"},
		{"single token", "Cher", "Cher", ""},
		{"empty", "", "", ""},
		{"whitespace only", "   ", "", ""},
		{"suffix not special-cased", "Bob Smith Jr", "Bob", "Smith Jr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitPersonName(tt.in)
			assert.Equal(t, tt.first, got.First)
			assert.Equal(t, tt.last, got.Last)
		})
	}
}

func TestSplitAgentField(t *testing.T) {
	got := SplitAgentField("Jane Doe • Acme Realty")
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, "Acme Realty", got.CompanyName)
}

func TestSplitAgentField_NoSeparator(t *testing.T) {
	got := SplitAgentField("  Jane Doe  ")
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, "", got.CompanyName)
}

func TestSplitAgentField_SplitsOnFirstSeparator(t *testing.T) {
	got := SplitAgentField("Jane Doe • Acme • West")
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, "Acme • West", got.CompanyName)
}

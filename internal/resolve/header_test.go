package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHeaders_TrimsNames(t *testing.T) {
	h := ResolveHeaders([]string{" Email ", "Phone 1", "  Name"})

	assert.Equal(t, 0, h.Index("Email"))
	assert.Equal(t, 1, h.Index("Phone 1"))
	assert.Equal(t, 2, h.Index("Name"))
}

func TestResolveHeaders_AbsentHeader(t *testing.T) {
	h := ResolveHeaders([]string{"Email"})

	assert.Equal(t, -1, h.Index("Phone 1"))
	assert.Equal(t, "", Cell([]string{"a@b.com"}, h.Index("Phone 1")))
}

func TestResolveHeaders_DuplicateLastWins(t *testing.T) {
	h := ResolveHeaders([]string{"County", "State", "County"})

	assert.Equal(t, 2, h.Index("County"))
}

func TestResolveHeaders_CaseSensitive(t *testing.T) {
	h := ResolveHeaders([]string{"EMAIL"})

	assert.Equal(t, -1, h.Index("Email"))
	assert.Equal(t, 0, h.Index("EMAIL"))
}

func TestCell_ShortRow(t *testing.T) {
	row := []string{"only"}

	assert.Equal(t, "only", Cell(row, 0))
	assert.Equal(t, "", Cell(row, 5))
	assert.Equal(t, "", Cell(row, -1))
}

func TestCell_Trims(t *testing.T) {
	assert.Equal(t, "x", Cell([]string{"  x  "}, 0))
	assert.Equal(t, "  x  ", RawCell([]string{"  x  "}, 0))
}

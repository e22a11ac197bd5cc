package fetcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, row := range rows {
			r := sheet.AddRow()
			for _, cell := range row {
				r.AddCell().SetString(cell)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX_FirstSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Contacts": {{"Name", "Email"}, {"Jane", "jane@x.com"}},
	})

	rows, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name", "Email"}, {"Jane", "jane@x.com"}}, rows)
}

func TestReadXLSX_ByName(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Contacts": {{"Name"}, {"Jane"}},
	})

	rows, err := ReadXLSX(path, XLSXOptions{SheetName: "Contacts"})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, err = ReadXLSX(path, XLSXOptions{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadXLSX_SkipRows(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Contacts": {{"Export generated 2026-08-01"}, {"Name"}, {"Jane"}},
	})

	rows, err := ReadXLSX(path, XLSXOptions{SkipRows: 1})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name"}, {"Jane"}}, rows)
}

func TestReadXLSX_SheetIndexOutOfRange(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{"Contacts": {{"Name"}}})

	_, err := ReadXLSX(path, XLSXOptions{SheetIndex: 3})
	require.Error(t, err)
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), XLSXOptions{})
	require.Error(t, err)
}

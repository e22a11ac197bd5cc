package pipeline

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteCSV writes the result as CSV: header row first, then every
// projected row. Newlines inside repeated-facts cells are quoted by the
// csv writer and survive round-tripping.
func WriteCSV(w io.Writer, result *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(result.Header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, row := range result.Rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteXLSX writes the result as a single-sheet XLSX workbook.
func WriteXLSX(path string, sheetName string, result *Result) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", sheetName)
	}

	addRow := func(cells []string) {
		row := sheet.AddRow()
		for _, cell := range cells {
			row.AddCell().SetString(cell)
		}
	}

	addRow(result.Header)
	for _, row := range result.Rows {
		addRow(row)
	}

	return eris.Wrapf(f.Save(path), "export: save xlsx %s", path)
}

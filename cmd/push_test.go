package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadlist-cli/internal/model"
)

func writeNormalizedCSV(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "normalized.csv")

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(header))
	require.NoError(t, w.WriteAll(rows))
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

func TestReadNormalizedCSV(t *testing.T) {
	row := make([]string, len(model.OutputColumns))
	row[model.ColFirstName] = "Jane"
	row[model.ColLastName] = "Doe"
	path := writeNormalizedCSV(t, model.OutputColumns, [][]string{row})

	rows, err := readNormalizedCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane", rows[0][model.ColFirstName])
}

func TestReadNormalizedCSV_RejectsRawExport(t *testing.T) {
	path := writeNormalizedCSV(t, []string{"Agent's Name", "Email Address"}, nil)

	_, err := readNormalizedCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is it normalized?")
}

func TestReadNormalizedCSV_RejectsRenamedColumn(t *testing.T) {
	header := make([]string, len(model.OutputColumns))
	copy(header, model.OutputColumns)
	header[model.ColEmail] = "E-Mail"
	path := writeNormalizedCSV(t, header, nil)

	_, err := readNormalizedCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E-Mail")
}

func TestReadNormalizedCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := readNormalizedCSV(path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "empty"))
}

func TestReadNormalizedCSV_MissingFile(t *testing.T) {
	_, err := readNormalizedCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestPushCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range pushCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["salesforce"])
	assert.True(t, names["notion"])
	assert.True(t, names["archive"])
}

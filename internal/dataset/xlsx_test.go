package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeXLSXFixture(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	s, err := f.AddSheet(sheet)
	require.NoError(t, err)
	for _, rowData := range rows {
		row := s.AddRow()
		for _, cell := range rowData {
			row.AddCell().SetString(cell)
		}
	}
	path := filepath.Join(t.TempDir(), "cities.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestXLSXSource(t *testing.T) {
	path := writeXLSXFixture(t, "Cities", [][]string{
		{"town", "latitude", "longitude", "pop_est"},
		{"Ghent", "51.05", "3.72", "262000"},
		{"Bruges", "51.21", "3.22", "118000"},
	})

	src, err := BuildSource(SourceSpec{Name: "xlsx", Format: FormatXLSX, Location: path}, NewFetchers(t.TempDir(), ""))
	require.NoError(t, err)

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Ghent", records[0]["town"])
	assert.Equal(t, "51.05", records[0]["latitude"])
	assert.Equal(t, "118000", records[1]["pop_est"])
}

func TestXLSXSource_NamedSheet(t *testing.T) {
	path := writeXLSXFixture(t, "Data", [][]string{
		{"name", "lat", "lng"},
		{"Ghent", "51.05", "3.72"},
	})

	src, err := BuildSource(SourceSpec{Name: "xlsx", Format: FormatXLSX, Location: path, Sheet: "Data"}, NewFetchers(t.TempDir(), ""))
	require.NoError(t, err)

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestXLSXSource_SheetNotFound(t *testing.T) {
	path := writeXLSXFixture(t, "Sheet1", [][]string{{"a"}})

	src, err := BuildSource(SourceSpec{Name: "xlsx", Format: FormatXLSX, Location: path, Sheet: "Missing"}, NewFetchers(t.TempDir(), ""))
	require.NoError(t, err)

	_, err = src.Load(context.Background())
	require.Error(t, err)
}

package dataset

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePointShapefile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "places.shp")

	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	w.SetFields([]shp.Field{
		shp.StringField("NAME", 30),
		shp.StringField("ADM0NAME", 30),
		shp.StringField("POP_MAX", 12),
	})

	points := []struct {
		x, y                  float64
		name, country, popMax string
	}{
		{2.35, 48.85, "Paris", "France", "2148000"},
		{139.69, 35.69, "Tokyo", "Japan", "8336599"},
	}
	// go-shp's writer leaves unused field bytes as NUL; real DBF files pad
	// character fields with spaces, so pad values to field width here.
	pad := func(s string, width int) string {
		return s + strings.Repeat(" ", width-len(s))
	}
	for n, p := range points {
		w.Write(&shp.Point{X: p.x, Y: p.y})
		require.NoError(t, w.WriteAttribute(n, 0, pad(p.name, 30)))
		require.NoError(t, w.WriteAttribute(n, 1, pad(p.country, 30)))
		require.NoError(t, w.WriteAttribute(n, 2, pad(p.popMax, 12)))
	}
	w.Close()
	return path
}

func TestShapefileSource(t *testing.T) {
	path := writePointShapefile(t, t.TempDir())

	src, err := BuildSource(SourceSpec{Name: "ne", Format: FormatShapefile, Location: path}, NewFetchers(t.TempDir(), ""))
	require.NoError(t, err)

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Paris", records[0]["NAME"])
	assert.Equal(t, "France", records[0]["ADM0NAME"])
	assert.Equal(t, "2148000", records[0]["POP_MAX"])
	assert.Equal(t, 48.85, records[0]["lat"])
	assert.Equal(t, 2.35, records[0]["lng"])

	assert.Equal(t, "Tokyo", records[1]["NAME"])
}

func TestShapefileSource_WrongExtension(t *testing.T) {
	path := writeFixture(t, "cities.csv", "not a shapefile")

	src, err := BuildSource(SourceSpec{Name: "bad", Format: FormatShapefile, Location: path}, NewFetchers(t.TempDir(), ""))
	require.NoError(t, err)

	_, err = src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected .shp or .zip")
}

func TestShapefileSource_MissingFile(t *testing.T) {
	src, err := BuildSource(SourceSpec{Name: "gone", Format: FormatShapefile, Location: "/nonexistent/places.shp"}, NewFetchers(t.TempDir(), ""))
	require.NoError(t, err)

	_, err = src.Load(context.Background())
	require.Error(t, err)
}

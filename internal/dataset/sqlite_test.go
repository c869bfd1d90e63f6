package dataset

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func writeSQLiteFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cities.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	_, err = db.Exec(`
		CREATE TABLE cities (name TEXT, country TEXT, lat REAL, lng REAL, population INTEGER);
		INSERT INTO cities VALUES
			('Vienna', 'AT', 48.21, 16.37, 1897000),
			('Graz', 'AT', 47.07, 15.44, 289000);
	`)
	require.NoError(t, err)
	return path
}

func TestSQLiteSource_Table(t *testing.T) {
	path := writeSQLiteFixture(t)

	src, err := BuildSource(SourceSpec{Name: "db", Format: FormatSQLite, Location: path, Table: "cities"}, nil)
	require.NoError(t, err)

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Vienna", records[0]["name"])
	assert.Equal(t, 48.21, records[0]["lat"])
	assert.EqualValues(t, 289000, records[1]["population"])
}

func TestSQLiteSource_Query(t *testing.T) {
	path := writeSQLiteFixture(t)

	src, err := BuildSource(SourceSpec{
		Name:     "db",
		Format:   FormatSQLite,
		Location: path,
		Query:    "SELECT name, lat, lng FROM cities WHERE population > 1000000",
	}, nil)
	require.NoError(t, err)

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Vienna", records[0]["name"])
	assert.NotContains(t, records[0], "population")
}

func TestSQLiteSource_NeedsTableOrQuery(t *testing.T) {
	src, err := BuildSource(SourceSpec{Name: "db", Format: FormatSQLite, Location: "x.db"}, nil)
	require.NoError(t, err)

	_, err = src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a table or query")
}

func TestSQLiteSource_BadQuery(t *testing.T) {
	path := writeSQLiteFixture(t)

	src, err := BuildSource(SourceSpec{Name: "db", Format: FormatSQLite, Location: path, Table: "missing"}, nil)
	require.NoError(t, err)

	_, err = src.Load(context.Background())
	require.Error(t, err)
}

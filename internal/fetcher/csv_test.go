package fetcher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectRows(t *testing.T, rowCh <-chan []string, errCh <-chan error) ([][]string, error) {
	t.Helper()
	var rows [][]string
	for row := range rowCh {
		rows = append(rows, row)
	}
	for err := range errCh {
		if err != nil {
			return rows, err
		}
	}
	return rows, nil
}

func TestStreamCSV_Basic(t *testing.T) {
	input := "name,lat,lng,population\nParis,48.85,2.35,2148000\nLyon,45.76,4.84,513000\n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "lat", "lng", "population"}, rows[0])
	assert.Equal(t, []string{"Paris", "48.85", "2.35", "2148000"}, rows[1])
	assert.Equal(t, []string{"Lyon", "45.76", "4.84", "513000"}, rows[2])
}

func TestStreamCSV_TabDelimited(t *testing.T) {
	input := "Tokyo\t35.69\t139.69\nOsaka\t34.69\t135.50\n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{
		Delimiter: '\t',
	})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Tokyo", "35.69", "139.69"}, rows[0])
}

func TestStreamCSV_WithHeader(t *testing.T) {
	input := "city,population\nBerlin,3645000\nHamburg,1841000\n"
	headerCh := make(chan []string, 1)

	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{
		HasHeader: true,
		HeaderCh:  headerCh,
	})

	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Berlin", "3645000"}, rows[0])

	header := <-headerCh
	assert.Equal(t, []string{"city", "population"}, header)
}

func TestStreamCSV_HasHeaderNoHeaderCh(t *testing.T) {
	input := "city,population\nBerlin,3645000\n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{
		HasHeader: true,
	})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Berlin", "3645000"}, rows[0])
}

func TestStreamCSV_TrimSpace(t *testing.T) {
	input := " name , lat \n Paris , 48.85 \n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{
		TrimSpace: true,
	})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"name", "lat"}, rows[0])
	assert.Equal(t, []string{"Paris", "48.85"}, rows[1])
}

func TestStreamCSV_Comments(t *testing.T) {
	input := "# GeoNames extract\nParis,48.85\n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{
		Comment: '#',
	})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Paris", "48.85"}, rows[0])
}

func TestStreamCSV_VariableFields(t *testing.T) {
	input := "a,b,c\n1,2\nx,y,z,w\n"
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[1], 2)
	assert.Len(t, rows[2], 4)
}

func TestStreamCSV_Empty(t *testing.T) {
	rowCh, errCh := StreamCSV(context.Background(), strings.NewReader(""), CSVOptions{})
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStreamCSV_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rowCh, errCh := StreamCSV(ctx, strings.NewReader("a,b\n1,2\n"), CSVOptions{})
	_, err := collectRows(t, rowCh, errCh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context")
}

package geonames

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDownloader records the requested URL and writes fixed bytes.
type stubDownloader struct {
	url   string
	bytes []byte
	err   error
}

func (s *stubDownloader) DownloadToFile(_ context.Context, url string, path string) (int64, error) {
	s.url = url
	if s.err != nil {
		return 0, s.err
	}
	if err := os.WriteFile(path, s.bytes, 0o644); err != nil {
		return 0, err
	}
	return int64(len(s.bytes)), nil
}

func dumpFixture() string {
	return strings.Join([]string{
		row("1850147", "Tokyo", "35.6895", "139.69171", "PPLC", "JP", "8336599"),
		row("2988507", "Paris", "48.85341", "2.3488", "PPLC", "FR", "2138551"),
		"not a valid row",
		"",
	}, "\n")
}

func TestFetchCities_UsesCachedFile(t *testing.T) {
	cacheDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(cacheDir, "cities1000.txt"), []byte(dumpFixture()), 0o644))

	dl := &stubDownloader{}
	c := New(Config{Dump: Cities1000, CacheDir: cacheDir}, dl, nil)

	cities, err := c.FetchCities(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Tokyo", cities[0].Name)
	assert.Equal(t, "Paris", cities[1].Name)
	assert.Empty(t, dl.url, "cached file must not trigger a download")
}

func TestFetchCities_DownloadsAndExtracts(t *testing.T) {
	cacheDir := t.TempDir()
	dl := &stubDownloader{bytes: []byte("zip-archive")}

	unzip := func(zipPath, fileName, destDir string) (string, error) {
		out := filepath.Join(destDir, fileName)
		return out, os.WriteFile(out, []byte(dumpFixture()), 0o644)
	}

	c := New(Config{Dump: Cities15000, CacheDir: cacheDir}, dl, unzip)
	cities, err := c.FetchCities(context.Background())
	require.NoError(t, err)
	assert.Len(t, cities, 2)
	assert.Equal(t, "https://download.geonames.org/export/dump/cities15000.zip", dl.url)

	// The intermediate archive is removed after extraction.
	_, err = os.Stat(filepath.Join(cacheDir, "cities15000.zip"))
	assert.True(t, os.IsNotExist(err))
}

func TestFetchCities_DownloadError(t *testing.T) {
	dl := &stubDownloader{err: assert.AnError}
	c := New(Config{Dump: Cities1000, CacheDir: t.TempDir()}, dl, nil)

	_, err := c.FetchCities(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geonames: download")
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{}, &stubDownloader{}, nil)
	assert.Equal(t, Cities1000, c.cfg.Dump)
	assert.NotEmpty(t, c.cfg.CacheDir)
}

// Package geonames fetches and parses GeoNames city dumps
// (download.geonames.org/export/dump). The dumps are ZIP archives holding a
// single tab-separated file with one row per populated place.
package geonames

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// BaseURL is the GeoNames dump export root.
const BaseURL = "https://download.geonames.org/export/dump"

// Dump names one of the published city extracts. The number is the minimum
// population for a city to be included.
type Dump string

const (
	Cities500   Dump = "cities500"
	Cities1000  Dump = "cities1000"
	Cities15000 Dump = "cities15000"
)

// URL returns the download URL for the dump archive.
func (d Dump) URL() string {
	return fmt.Sprintf("%s/%s.zip", BaseURL, d)
}

// Member returns the name of the TSV file inside the dump archive.
func (d Dump) Member() string {
	return string(d) + ".txt"
}

// Downloader is the slice of the fetcher used by the client. The HTTP
// fetcher satisfies it; tests substitute a stub.
type Downloader interface {
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// Unzipper extracts one named member from a ZIP archive.
type Unzipper func(zipPath, fileName, destDir string) (string, error)

// Config configures the GeoNames client.
type Config struct {
	Dump     Dump   `mapstructure:"dump"`
	CacheDir string `mapstructure:"cache_dir"`
}

// Client downloads GeoNames dumps into a local cache directory.
type Client struct {
	cfg      Config
	download Downloader
	unzip    Unzipper
	log      *zap.Logger
}

// New creates a GeoNames client. The unzip function defaults may be supplied
// by the caller (internal/fetcher.ExtractZIPFile in production).
func New(cfg Config, download Downloader, unzip Unzipper) *Client {
	if cfg.Dump == "" {
		cfg.Dump = Cities1000
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = os.TempDir()
	}
	return &Client{
		cfg:      cfg,
		download: download,
		unzip:    unzip,
		log:      zap.L().With(zap.String("component", "geonames")),
	}
}

// FetchCities downloads the configured dump, extracts the TSV member and
// parses every usable row. Rows that are not populated places, or that fail
// to parse, are skipped. An already-extracted file in the cache directory is
// reused without a download.
func (c *Client) FetchCities(ctx context.Context) ([]City, error) {
	tsvPath := filepath.Join(c.cfg.CacheDir, c.cfg.Dump.Member())
	if _, err := os.Stat(tsvPath); err != nil {
		if err := c.fetchDump(ctx, tsvPath); err != nil {
			return nil, err
		}
	} else {
		c.log.Debug("using cached dump", zap.String("path", tsvPath))
	}

	data, err := os.ReadFile(tsvPath)
	if err != nil {
		return nil, eris.Wrapf(err, "geonames: read %s", tsvPath)
	}

	var cities []City
	for _, line := range strings.Split(string(data), "\n") {
		city, ok := ParseCity(line)
		if !ok {
			continue
		}
		cities = append(cities, city)
	}
	c.log.Info("parsed geonames dump",
		zap.String("dump", string(c.cfg.Dump)),
		zap.Int("cities", len(cities)),
	)
	return cities, nil
}

func (c *Client) fetchDump(ctx context.Context, tsvPath string) error {
	if err := os.MkdirAll(c.cfg.CacheDir, 0o755); err != nil {
		return eris.Wrap(err, "geonames: create cache dir")
	}

	url := c.cfg.Dump.URL()
	zipPath := filepath.Join(c.cfg.CacheDir, string(c.cfg.Dump)+".zip")
	c.log.Info("downloading geonames dump", zap.String("url", url))

	if _, err := c.download.DownloadToFile(ctx, url, zipPath); err != nil {
		return eris.Wrapf(err, "geonames: download %s", url)
	}
	if _, err := c.unzip(zipPath, c.cfg.Dump.Member(), c.cfg.CacheDir); err != nil {
		return eris.Wrapf(err, "geonames: extract %s", c.cfg.Dump.Member())
	}
	_ = os.Remove(zipPath)

	if _, err := os.Stat(tsvPath); err != nil {
		return eris.Wrapf(err, "geonames: extracted file %s missing", tsvPath)
	}
	return nil
}

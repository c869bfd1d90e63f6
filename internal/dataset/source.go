package dataset

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/bolide-group/impact-cli/internal/fetcher"
	"github.com/bolide-group/impact-cli/pkg/geonames"
)

// Source supplies raw heterogeneous city records from one dataset location.
// Records cross the normalization boundary exactly once, in the loader.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]map[string]any, error)
}

// Fetchers bundles the download plumbing shared by remote sources.
type Fetchers struct {
	HTTP     *fetcher.HTTPFetcher
	FTP      *fetcher.FTPFetcher
	CacheDir string
}

// NewFetchers builds the default fetcher set writing into cacheDir.
func NewFetchers(cacheDir, userAgent string) *Fetchers {
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "impact-cli")
	}
	return &Fetchers{
		HTTP: fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:    userAgent,
			RateLimiters: fetcher.DefaultRateLimiters(),
		}),
		FTP:      fetcher.NewFTPFetcher(fetcher.FTPOptions{}),
		CacheDir: cacheDir,
	}
}

// Resolve makes a source location readable as a local path. Remote locations
// are downloaded into the cache directory, keyed by their base name; local
// paths pass through untouched.
func (f *Fetchers) Resolve(ctx context.Context, location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" {
		return location, nil
	}

	switch u.Scheme {
	case "http", "https", "ftp":
	default:
		return location, nil
	}

	if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
		return "", eris.Wrap(err, "dataset: create cache dir")
	}
	dest := filepath.Join(f.CacheDir, path.Base(u.Path))
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}

	if u.Scheme == "ftp" {
		if _, err := f.FTP.DownloadToFile(ctx, location, dest); err != nil {
			return "", eris.Wrapf(err, "dataset: download %s", location)
		}
		return dest, nil
	}
	if _, err := f.HTTP.DownloadToFile(ctx, location, dest); err != nil {
		return "", eris.Wrapf(err, "dataset: download %s", location)
	}
	return dest, nil
}

// BuildSource constructs the adapter for one manifest entry.
func BuildSource(spec SourceSpec, fetchers *Fetchers) (Source, error) {
	switch spec.Format {
	case FormatCSV:
		return &csvSource{spec: spec, fetchers: fetchers, delimiter: ','}, nil
	case FormatTSV:
		return &csvSource{spec: spec, fetchers: fetchers, delimiter: '\t'}, nil
	case FormatJSON:
		return &jsonSource{spec: spec, fetchers: fetchers}, nil
	case FormatGeoNames:
		client := geonames.New(
			geonames.Config{Dump: geonames.Dump(spec.Location), CacheDir: fetchers.CacheDir},
			fetchers.HTTP,
			fetcher.ExtractZIPFile,
		)
		return &geonamesSource{spec: spec, client: client}, nil
	case FormatShapefile:
		return &shapefileSource{spec: spec, fetchers: fetchers}, nil
	case FormatXLSX:
		return &xlsxSource{spec: spec, fetchers: fetchers}, nil
	case FormatSQLite:
		return &sqliteSource{spec: spec}, nil
	case FormatPostgres:
		return &postgresSource{spec: spec}, nil
	default:
		return nil, eris.Errorf("dataset: unknown format %q for source %q", spec.Format, spec.Name)
	}
}

// BuildSources constructs adapters for every manifest entry, in order.
func BuildSources(m *Manifest, fetchers *Fetchers) ([]Source, error) {
	sources := make([]Source, 0, len(m.Sources))
	for _, spec := range m.Sources {
		src, err := BuildSource(spec, fetchers)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// csvSource reads header-driven CSV or TSV files. The header row supplies
// the field names for every record.
type csvSource struct {
	spec      SourceSpec
	fetchers  *Fetchers
	delimiter rune
}

func (s *csvSource) Name() string { return s.spec.Name }

func (s *csvSource) Load(ctx context.Context) ([]map[string]any, error) {
	local, err := s.fetchers.Resolve(ctx, s.spec.Location)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(local)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", local)
	}
	defer file.Close() //nolint:errcheck

	headerCh := make(chan []string, 1)
	rowCh, errCh := fetcher.StreamCSV(ctx, file, fetcher.CSVOptions{
		Delimiter: s.delimiter,
		HasHeader: true,
		HeaderCh:  headerCh,
		TrimSpace: true,
	})

	var header []string
	var records []map[string]any
	for row := range rowCh {
		if header == nil {
			header = <-headerCh
		}
		records = append(records, rowRecord(header, row))
	}
	for err := range errCh {
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: source %s", s.spec.Name)
		}
	}
	return records, nil
}

// rowRecord zips a header with one data row. Extra cells beyond the header
// are dropped; missing cells are simply absent.
func rowRecord(header, row []string) map[string]any {
	rec := make(map[string]any, len(header))
	for i, key := range header {
		if i >= len(row) {
			break
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		rec[key] = row[i]
	}
	return rec
}

// jsonSource reads a JSON array of objects, or a GeoJSON FeatureCollection
// of point features.
type jsonSource struct {
	spec     SourceSpec
	fetchers *Fetchers
}

func (s *jsonSource) Name() string { return s.spec.Name }

func (s *jsonSource) Load(ctx context.Context) ([]map[string]any, error) {
	local, err := s.fetchers.Resolve(ctx, s.spec.Location)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(local)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", local)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		return s.loadGeoJSON(trimmed)
	}

	recCh, errCh := fetcher.DecodeJSONArray[map[string]any](ctx, strings.NewReader(trimmed))
	var records []map[string]any
	for rec := range recCh {
		records = append(records, rec)
	}
	for err := range errCh {
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: source %s", s.spec.Name)
		}
	}
	return records, nil
}

// geoJSONFeature is the slice of a GeoJSON feature the loader cares about.
type geoJSONFeature struct {
	Properties map[string]any `json:"properties"`
	Geometry   struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

func (s *jsonSource) loadGeoJSON(data string) ([]map[string]any, error) {
	doc, err := fetcher.DecodeJSONObject[struct {
		Type     string           `json:"type"`
		Features []geoJSONFeature `json:"features"`
	}](strings.NewReader(data))
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: source %s", s.spec.Name)
	}
	if doc.Type != "FeatureCollection" {
		return nil, eris.Errorf("dataset: source %s: expected FeatureCollection, got %q", s.spec.Name, doc.Type)
	}

	var records []map[string]any
	for _, feat := range doc.Features {
		if feat.Geometry.Type != "Point" || len(feat.Geometry.Coordinates) < 2 {
			continue
		}
		rec := make(map[string]any, len(feat.Properties)+2)
		for k, v := range feat.Properties {
			rec[k] = v
		}
		// GeoJSON coordinate order is [lng, lat].
		rec["lng"] = feat.Geometry.Coordinates[0]
		rec["lat"] = feat.Geometry.Coordinates[1]
		records = append(records, rec)
	}
	return records, nil
}

// geonamesSource adapts the GeoNames dump client.
type geonamesSource struct {
	spec   SourceSpec
	client *geonames.Client
}

func (s *geonamesSource) Name() string { return s.spec.Name }

func (s *geonamesSource) Load(ctx context.Context) ([]map[string]any, error) {
	cities, err := s.client.FetchCities(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]map[string]any, len(cities))
	for i, c := range cities {
		records[i] = c.Record()
	}
	return records, nil
}

package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/bolide-group/impact-cli/internal/fetcher"
)

// shapefileSource reads point shapefiles such as the Natural Earth populated
// places layer. DBF attributes become record fields; the point geometry
// supplies lat/lng, overriding any attribute columns of the same name.
type shapefileSource struct {
	spec     SourceSpec
	fetchers *Fetchers
}

func (s *shapefileSource) Name() string { return s.spec.Name }

func (s *shapefileSource) Load(ctx context.Context) ([]map[string]any, error) {
	local, err := s.fetchers.Resolve(ctx, s.spec.Location)
	if err != nil {
		return nil, err
	}
	shpPath, err := s.shpPath(local)
	if err != nil {
		return nil, err
	}

	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open shapefile %s", shpPath)
	}
	defer reader.Close() //nolint:errcheck

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	var records []map[string]any
	for reader.Next() {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "dataset: shapefile read cancelled")
		}
		_, shape := reader.Shape()
		point, ok := shape.(*shp.Point)
		if !ok {
			continue
		}

		rec := make(map[string]any, len(names)+2)
		for i, name := range names {
			if name == "" {
				continue
			}
			if v := strings.TrimSpace(reader.Attribute(i)); v != "" {
				rec[name] = v
			}
		}
		rec["lng"] = point.X
		rec["lat"] = point.Y
		records = append(records, rec)
	}
	return records, nil
}

// shpPath locates the .shp file: a .shp path passes through, a .zip bundle
// is extracted next to itself first.
func (s *shapefileSource) shpPath(local string) (string, error) {
	if strings.EqualFold(filepath.Ext(local), ".shp") {
		return local, nil
	}
	if !strings.EqualFold(filepath.Ext(local), ".zip") {
		return "", eris.Errorf("dataset: source %s: expected .shp or .zip, got %s", s.spec.Name, local)
	}

	destDir := strings.TrimSuffix(local, filepath.Ext(local))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", eris.Wrap(err, "dataset: create extract dir")
	}
	extracted, err := fetcher.ExtractZIP(local, destDir)
	if err != nil {
		return "", eris.Wrapf(err, "dataset: extract %s", local)
	}
	for _, path := range extracted {
		if strings.EqualFold(filepath.Ext(path), ".shp") {
			return path, nil
		}
	}
	return "", eris.Errorf("dataset: no .shp file in %s", local)
}

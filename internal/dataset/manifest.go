// Package dataset loads the city dataset: a manifest names the sources,
// format adapters turn each source into raw records, and a once-guarded
// loader normalizes everything into the gazetteer index.
package dataset

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Format identifies a source adapter.
type Format string

const (
	FormatCSV       Format = "csv"
	FormatTSV       Format = "tsv"
	FormatGeoNames  Format = "geonames"
	FormatJSON      Format = "json"
	FormatShapefile Format = "shapefile"
	FormatXLSX      Format = "xlsx"
	FormatSQLite    Format = "sqlite"
	FormatPostgres  Format = "postgres"
)

// SourceSpec describes one dataset source in the manifest. Location is a
// local path, an http(s)/ftp URL, a dump name (geonames), or a connection
// string (postgres). The remaining fields only apply to some formats.
type SourceSpec struct {
	Name     string `yaml:"name"`
	Format   Format `yaml:"format"`
	Location string `yaml:"location"`

	// Sheet selects the XLSX worksheet by name; empty means the first sheet.
	Sheet string `yaml:"sheet,omitempty"`

	// Table and Query drive the database formats. Query wins when both are
	// set; Table expands to SELECT * FROM table.
	Table string `yaml:"table,omitempty"`
	Query string `yaml:"query,omitempty"`
}

// Manifest is the ordered list of dataset sources. Order matters: it is the
// load order, and therefore the stable iteration order of the built index.
type Manifest struct {
	Sources []SourceSpec `yaml:"sources"`
}

// LoadManifest reads a dataset manifest from a YAML file. The YAML has a
// top-level "dataset" key.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read manifest %s", path)
	}
	return ParseManifest(data)
}

// ParseManifest parses manifest YAML bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var wrapper struct {
		Dataset Manifest `yaml:"dataset"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "dataset: parse manifest")
	}

	m := &wrapper.Dataset
	for i, src := range m.Sources {
		if src.Name == "" {
			return nil, eris.Errorf("dataset: source %d has no name", i)
		}
		if src.Format == "" {
			return nil, eris.Errorf("dataset: source %q has no format", src.Name)
		}
		if src.Location == "" {
			return nil, eris.Errorf("dataset: source %q has no location", src.Name)
		}
	}
	return m, nil
}

// DefaultManifest is used when no manifest file is configured: the GeoNames
// cities1000 dump, which covers every city with population over 1000.
func DefaultManifest() *Manifest {
	return &Manifest{
		Sources: []SourceSpec{
			{Name: "geonames", Format: FormatGeoNames, Location: "cities1000"},
		},
	}
}

package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/bolide-group/impact-cli/internal/dataset"
	"github.com/bolide-group/impact-cli/internal/gazetteer"
	"github.com/bolide-group/impact-cli/internal/impact"
	"github.com/bolide-group/impact-cli/internal/physics"
)

// buildLoader assembles the dataset loader from configuration. The manifest
// path is optional; without one the loader pulls the default GeoNames dump.
func buildLoader() (*dataset.Loader, error) {
	manifest := dataset.DefaultManifest()
	if cfg.Dataset.Manifest != "" {
		m, err := dataset.LoadManifest(cfg.Dataset.Manifest)
		if err != nil {
			return nil, err
		}
		manifest = m
	}

	fetchers := dataset.NewFetchers(cfg.Dataset.CacheDir, cfg.Dataset.UserAgent)
	sources, err := dataset.BuildSources(manifest, fetchers)
	if err != nil {
		return nil, err
	}

	var opts []dataset.LoaderOption
	if cfg.Gazetteer.CountryAffinity {
		opts = append(opts, dataset.WithIndexOptions(gazetteer.WithCountryAffinity()))
	}
	return dataset.NewLoader(sources, opts...), nil
}

// buildSimulator wires the configured physics engine to the dataset loader.
func buildSimulator() (*impact.Simulator, error) {
	loader, err := buildLoader()
	if err != nil {
		return nil, err
	}
	engine := physics.NewEngine(
		physics.WithBlastFactor(cfg.Physics.BlastFactor),
		physics.WithThermalFactor(cfg.Physics.ThermalFactor),
	)
	return impact.NewSimulator(loader, impact.WithEngine(engine)), nil
}

// datasetContext bounds dataset loads with the configured timeout.
func datasetContext(parent context.Context) (context.Context, context.CancelFunc) {
	if cfg.Dataset.TimeoutSecs <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, time.Duration(cfg.Dataset.TimeoutSecs)*time.Second)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

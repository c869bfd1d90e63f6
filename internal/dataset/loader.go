package dataset

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bolide-group/impact-cli/internal/gazetteer"
)

// ErrUnavailable marks a dataset that could not be loaded from any source.
// Callers classify with eris.Is(err, ErrUnavailable) and degrade population
// features to empty results; physics is unaffected.
var ErrUnavailable = eris.New("dataset: unavailable")

// Loader performs the one-time dataset load. The first Load call fetches
// every source, normalizes the records and builds the index; concurrent and
// subsequent callers share that single outcome, success or failure. A failed
// load stays failed for the process lifetime.
type Loader struct {
	sources []Source
	idxOpts []gazetteer.IndexOption
	log     *zap.Logger

	once sync.Once
	done atomic.Bool
	idx  *gazetteer.Index
	err  error
}

// Status is a point-in-time view of the load, safe to read while a load is
// in flight.
type Status struct {
	State  string `json:"state"` // pending, ready, failed
	Cities int    `json:"cities,omitempty"`
	Cells  int    `json:"cells,omitempty"`
	Error  string `json:"error,omitempty"`
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithIndexOptions forwards options to the index build.
func WithIndexOptions(opts ...gazetteer.IndexOption) LoaderOption {
	return func(l *Loader) { l.idxOpts = append(l.idxOpts, opts...) }
}

// NewLoader creates a Loader over the given sources.
func NewLoader(sources []Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		sources: sources,
		log:     zap.L().With(zap.String("component", "dataset")),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load runs the one-time load and returns the built index. Sources load
// concurrently; a failing source is logged and skipped, and the load fails
// with ErrUnavailable only when no source delivers records. The error, like
// the index, is cached: retrying requires a new process.
func (l *Loader) Load(ctx context.Context) (*gazetteer.Index, error) {
	l.once.Do(func() {
		l.idx, l.err = l.load(ctx)
		l.done.Store(true)
	})
	return l.idx, l.err
}

// Status reports the current load state without triggering a load.
func (l *Loader) Status() Status {
	if !l.done.Load() {
		return Status{State: "pending"}
	}
	if l.err != nil {
		return Status{State: "failed", Error: l.err.Error()}
	}
	return Status{State: "ready", Cities: l.idx.Len(), Cells: l.idx.Cells()}
}

// Index implements the simulator's index provider.
func (l *Loader) Index(ctx context.Context) (*gazetteer.Index, error) {
	return l.Load(ctx)
}

func (l *Loader) load(ctx context.Context) (*gazetteer.Index, error) {
	if len(l.sources) == 0 {
		return nil, eris.Wrap(ErrUnavailable, "no sources configured")
	}

	results := make([][]map[string]any, len(l.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range l.sources {
		g.Go(func() error {
			records, err := src.Load(gctx)
			if err != nil {
				// Per-source failures degrade, they do not abort the load.
				l.log.Warn("source failed, skipping",
					zap.String("source", src.Name()),
					zap.Error(err),
				)
				return nil
			}
			l.log.Info("source loaded",
				zap.String("source", src.Name()),
				zap.Int("records", len(records)),
			)
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(ErrUnavailable, err.Error())
	}

	cities := l.normalize(results)
	if len(cities) == 0 {
		return nil, eris.Wrap(ErrUnavailable, "every source failed or was empty")
	}

	idx := gazetteer.NewIndex(cities, l.idxOpts...)
	l.log.Info("dataset loaded",
		zap.Int("cities", idx.Len()),
		zap.Int("cells", idx.Cells()),
	)
	return idx, nil
}

// normalize converts raw records to canonical cities in source order,
// dropping unusable records and duplicates. Duplicate means same folded name
// at the same coordinates rounded to two decimals (~1 km).
func (l *Loader) normalize(results [][]map[string]any) []gazetteer.City {
	var cities []gazetteer.City
	seen := make(map[string]struct{})
	dropped, dupes := 0, 0

	for _, records := range results {
		for _, raw := range records {
			city, ok := gazetteer.Normalize(raw)
			if !ok {
				dropped++
				continue
			}
			key := fmt.Sprintf("%s|%.2f|%.2f", gazetteer.Fold(city.Name), city.Lat, city.Lng)
			if _, dup := seen[key]; dup {
				dupes++
				continue
			}
			seen[key] = struct{}{}
			cities = append(cities, city)
		}
	}

	if dropped > 0 || dupes > 0 {
		l.log.Debug("normalization discarded records",
			zap.Int("unusable", dropped),
			zap.Int("duplicates", dupes),
		)
	}
	return cities
}

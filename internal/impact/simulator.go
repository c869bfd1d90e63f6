package impact

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bolide-group/impact-cli/internal/gazetteer"
	"github.com/bolide-group/impact-cli/internal/physics"
)

// ErrNoIndex indicates that no index provider was configured.
var ErrNoIndex = eris.New("impact: no city index configured")

// IndexProvider supplies the city index for population aggregation. The
// dataset loader implements it; tests inject a StaticIndex.
type IndexProvider interface {
	Index(ctx context.Context) (*gazetteer.Index, error)
}

// StaticIndex adapts an already-built index to the IndexProvider interface.
type StaticIndex struct {
	Idx *gazetteer.Index
}

// Index implements IndexProvider.
func (s StaticIndex) Index(context.Context) (*gazetteer.Index, error) {
	return s.Idx, nil
}

// SimulationResult is the full outcome of one simulation: the physics
// fields plus, when a target was given and the dataset was available, the
// population aggregates. Constructed once per simulation and never mutated.
type SimulationResult struct {
	physics.Result

	NearestCity        *gazetteer.City  `json:"nearest_city,omitempty"`
	PopulationAffected int64            `json:"population_affected"`
	AffectedCities     []AffectedCity   `json:"affected_cities,omitempty"`
	ZonePopulations    *ZonePopulations `json:"zone_populations,omitempty"`
}

// Simulator runs the end-to-end simulation. It owns a physics engine and an
// index provider; both are safe for concurrent use, so one Simulator serves
// all requests.
type Simulator struct {
	engine   *physics.Engine
	provider IndexProvider
	log      *zap.Logger
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithEngine replaces the default physics engine.
func WithEngine(e *physics.Engine) SimulatorOption {
	return func(s *Simulator) {
		if e != nil {
			s.engine = e
		}
	}
}

// NewSimulator creates a Simulator. A nil provider disables population
// aggregation; physics results are still produced.
func NewSimulator(provider IndexProvider, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		engine:   physics.NewEngine(),
		provider: provider,
		log:      zap.L().With(zap.String("component", "simulator")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate validates the parameters, runs the physics pipeline and, when a
// target coordinate is present, enriches the result with the nearest city
// and zone population aggregates. Invalid parameters fail before any
// computation. Dataset unavailability degrades the result to physics-only
// fields; it never fails a simulation with valid parameters.
func (s *Simulator) Simulate(ctx context.Context, params physics.Parameters) (*SimulationResult, error) {
	phys, err := s.engine.Compute(params)
	if err != nil {
		return nil, err
	}

	result := &SimulationResult{Result: *phys}
	if params.Target == nil {
		return result, nil
	}

	idx, err := s.index(ctx)
	if err != nil {
		s.log.Warn("dataset unavailable; returning physics-only result",
			zap.Float64("lat", params.Target.Lat),
			zap.Float64("lng", params.Target.Lng),
			zap.Error(err),
		)
		return result, nil
	}

	target := params.Target.Clamped()
	if nearest, ok := idx.Nearest(target.Lat, target.Lng); ok {
		result.NearestCity = &nearest
	}

	craterKm, blastKm, thermalKm := phys.Radii()
	radii := ZoneRadii{CraterKm: craterKm, BlastKm: blastKm, ThermalKm: thermalKm}
	candidates := idx.Within(target, radii.MaxKm())

	affected, totals := AggregatePopulation(target, radii, candidates)
	result.AffectedCities = affected
	result.ZonePopulations = &totals
	result.PopulationAffected = TotalPopulation(affected)
	return result, nil
}

func (s *Simulator) index(ctx context.Context) (*gazetteer.Index, error) {
	if s.provider == nil {
		return nil, ErrNoIndex
	}
	return s.provider.Index(ctx)
}

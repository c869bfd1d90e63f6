package physics

import (
	"fmt"
	"math"

	"github.com/bolide-group/impact-cli/internal/diag"
	"github.com/bolide-group/impact-cli/internal/geodesy"
)

// Result is the immutable output of one pipeline pass. Both meter and
// kilometer forms are carried so consumers never re-derive them.
type Result struct {
	MassKg           float64 `json:"mass_kg"`
	EnergyJ          float64 `json:"impact_energy_j"`
	EnergyMt         float64 `json:"impact_energy_mt"`
	CraterM          float64 `json:"crater_m"`
	CraterKm         float64 `json:"crater_km"`
	BlastRadiusM     float64 `json:"blast_radius_m"`
	BlastRadiusKm    float64 `json:"blast_radius_km"`
	ThermalRadiusM   float64 `json:"thermal_radius_m"`
	ThermalRadiusKm  float64 `json:"thermal_radius_km"`
	SeismicMagnitude float64 `json:"seismic_magnitude"`

	Target *geodesy.Point `json:"target,omitempty"`
}

// Radii returns the three damage radii in kilometers. The crater zone uses
// the crater RADIUS, not its diameter.
func (r *Result) Radii() (craterKm, blastKm, thermalKm float64) {
	return r.CraterKm / 2, r.BlastRadiusKm, r.ThermalRadiusKm
}

// Engine runs the impact pipeline with configured scaling factors and an
// observer for advisory diagnostics. The zero-value factors are replaced by
// the defaults; an Engine is safe for concurrent use.
type Engine struct {
	blastFactor   float64
	thermalFactor float64
	observer      diag.Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithBlastFactor overrides the blast radius multiple of crater radius.
// Non-positive values keep the default.
func WithBlastFactor(f float64) Option {
	return func(e *Engine) {
		if f > 0 {
			e.blastFactor = f
		}
	}
}

// WithThermalFactor overrides the thermal radius multiple of crater radius.
// Non-positive values keep the default.
func WithThermalFactor(f float64) Option {
	return func(e *Engine) {
		if f > 0 {
			e.thermalFactor = f
		}
	}
}

// WithObserver routes diagnostics to the given observer instead of the
// global logger.
func WithObserver(o diag.Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// NewEngine returns an Engine with default factors and a zap-backed
// diagnostics observer.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		blastFactor:   DefaultBlastFactor,
		thermalFactor: DefaultThermalFactor,
		observer:      diag.NewZapObserver(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute validates the parameters and runs the full pipeline: mass, kinetic
// energy, crater scaling with clamps, blast/thermal radii, seismic
// magnitude. Validation failures return ErrInvalidParameters with no partial
// result. Clamps and extreme-value conditions emit advisory diagnostics and
// never fail the computation.
func (e *Engine) Compute(p Parameters) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	mass := MassKg(p.DiameterM, p.DensityKgM3)
	vMS := VelocityMS(p.VelocityKmS)
	energyJ := KineticEnergyJ(mass, vMS)
	energyMt := Megatons(energyJ)

	craterKm := CraterDiameterM(p.DiameterM, p.DensityKgM3, vMS, p.AngleDeg) / 1000
	craterKm = math.Max(0, math.Min(CraterMaxKm, craterKm))
	if p.DiameterM <= smallBodyDiameterM && craterKm > smallBodyCraterKm {
		e.observer.Observe(diag.Event{
			Code:    diag.CodeCraterCapped,
			Message: fmt.Sprintf("crater diameter capped at %.0f km for a %.0f m impactor", smallBodyCraterKm, p.DiameterM),
			Fields: map[string]any{
				"computed_km": craterKm,
				"cap_km":      smallBodyCraterKm,
				"diameter_m":  p.DiameterM,
			},
		})
		craterKm = smallBodyCraterKm
	}

	blastKm := e.capRadius("blast", e.blastFactor*craterKm/2)
	thermalKm := e.capRadius("thermal", e.thermalFactor*craterKm/2)

	if energyMt > extremeEnergyMt {
		e.observer.Observe(diag.Event{
			Code:    diag.CodeExtremeEnergy,
			Message: "impact energy exceeds global-catastrophe scale; model assumptions break down",
			Fields:  map[string]any{"energy_mt": energyMt, "threshold_mt": extremeEnergyMt},
		})
	}
	if thermalKm > globalThermalFraction*geodesy.EarthRadiusKm {
		e.observer.Observe(diag.Event{
			Code:    diag.CodeGlobalThermal,
			Message: "thermal radius exceeds 80% of Earth radius; local-geometry assumptions break down",
			Fields:  map[string]any{"thermal_km": thermalKm},
		})
	}

	res := &Result{
		MassKg:           mass,
		EnergyJ:          energyJ,
		EnergyMt:         energyMt,
		CraterM:          craterKm * 1000,
		CraterKm:         craterKm,
		BlastRadiusM:     blastKm * 1000,
		BlastRadiusKm:    blastKm,
		ThermalRadiusM:   thermalKm * 1000,
		ThermalRadiusKm:  thermalKm,
		SeismicMagnitude: SeismicMagnitude(energyJ),
	}
	if p.Target != nil {
		t := p.Target.Clamped()
		res.Target = &t
	}
	return res, nil
}

// capRadius clamps a damage radius to Earth's radius, emitting a diagnostic
// when the clamp engages.
func (e *Engine) capRadius(zone string, radiusKm float64) float64 {
	if radiusKm <= geodesy.EarthRadiusKm {
		return radiusKm
	}
	e.observer.Observe(diag.Event{
		Code:    diag.CodeRadiusCapped,
		Message: fmt.Sprintf("%s radius capped at Earth radius", zone),
		Fields:  map[string]any{"zone": zone, "computed_km": radiusKm, "cap_km": geodesy.EarthRadiusKm},
	})
	return geodesy.EarthRadiusKm
}

// Compute runs the pipeline with default factors and diagnostics routed to
// the global logger.
func Compute(p Parameters) (*Result, error) {
	return NewEngine().Compute(p)
}

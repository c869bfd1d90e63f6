package physics

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/bolide-group/impact-cli/internal/geodesy"
)

// ErrInvalidParameters marks parameter validation failures. Callers classify
// with eris.Is(err, ErrInvalidParameters).
var ErrInvalidParameters = eris.New("physics: invalid parameters")

// Parameters describes the impactor. All four numeric fields are required;
// Target is optional and only needed for population aggregation.
type Parameters struct {
	DiameterM   float64        `json:"diameter_m"`
	DensityKgM3 float64        `json:"density_kgm3"`
	VelocityKmS float64        `json:"velocity_kms"`
	AngleDeg    float64        `json:"angle_deg"`
	Target      *geodesy.Point `json:"target,omitempty"`
}

// Validate checks that all numeric parameters are finite and within range.
// Diameter, density and velocity must be strictly positive; the angle must
// lie in [0, 90] where 0 is a grazing and 90 a vertical impact. Validation
// runs before any computation so an invalid input never yields a partial
// result.
func (p Parameters) Validate() error {
	if !isPositiveFinite(p.DiameterM) {
		return eris.Wrapf(ErrInvalidParameters, "diameter_m must be positive and finite, got %v", p.DiameterM)
	}
	if !isPositiveFinite(p.DensityKgM3) {
		return eris.Wrapf(ErrInvalidParameters, "density_kgm3 must be positive and finite, got %v", p.DensityKgM3)
	}
	if !isPositiveFinite(p.VelocityKmS) {
		return eris.Wrapf(ErrInvalidParameters, "velocity_kms must be positive and finite, got %v", p.VelocityKmS)
	}
	if math.IsNaN(p.AngleDeg) || math.IsInf(p.AngleDeg, 0) || p.AngleDeg < 0 || p.AngleDeg > 90 {
		return eris.Wrapf(ErrInvalidParameters, "angle_deg must be in [0, 90], got %v", p.AngleDeg)
	}
	if p.Target != nil {
		if math.IsNaN(p.Target.Lat) || math.IsInf(p.Target.Lat, 0) ||
			math.IsNaN(p.Target.Lng) || math.IsInf(p.Target.Lng, 0) {
			return eris.Wrap(ErrInvalidParameters, "target coordinates must be finite")
		}
	}
	return nil
}

func isPositiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

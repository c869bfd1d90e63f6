// Package physics converts impactor parameters into physical effect
// estimates: mass, kinetic energy, crater diameter, blast and thermal radii,
// and an equivalent seismic magnitude. The model is a simplified empirical
// scaling (Collins-style) intended for illustrative estimation, with sanity
// clamps at planetary scale.
package physics

import "math"

const (
	// MegatonJoules is the TNT-equivalent conversion: 1 Mt = 4.184e15 J.
	MegatonJoules = 4.184e15

	// surface gravity and reference target density for the crater scaling law
	gravityMS2         = 9.81
	targetDensityKgM3  = 2700.0
	craterScalingCoeff = 1.161

	// minEffectiveVelocityMS floors the vertical velocity component so a
	// grazing impact never produces a degenerate zero-coupling crater.
	minEffectiveVelocityMS = 10.0

	// CraterMaxKm is the absolute sanity ceiling on crater diameter.
	CraterMaxKm = 12000.0

	// Impactors at or below smallBodyDiameterM cannot excavate planet-scale
	// craters under this model; their crater diameter is capped.
	smallBodyDiameterM = 15000.0
	smallBodyCraterKm  = 200.0

	// DefaultBlastFactor and DefaultThermalFactor scale crater radius into
	// blast and thermal damage radii. Recommended ranges are 2-5 and 1-3.
	DefaultBlastFactor   = 3.0
	DefaultThermalFactor = 1.8

	maxMagnitude = 12.0

	// Advisory thresholds for global-catastrophe scale results.
	extremeEnergyMt       = 1e6
	globalThermalFraction = 0.8
)

// MassKg returns the impactor mass for a sphere of the given diameter and
// density: (4/3)·pi·(d/2)^3·rho.
func MassKg(diameterM, densityKgM3 float64) float64 {
	r := diameterM / 2
	return (4.0 / 3.0) * math.Pi * r * r * r * densityKgM3
}

// VelocityMS converts an entry velocity from km/s to m/s.
func VelocityMS(velocityKmS float64) float64 {
	return velocityKmS * 1000
}

// KineticEnergyJ returns 0.5·m·v^2 using the full velocity magnitude. The
// impact angle never reduces total kinetic energy, only crater coupling.
func KineticEnergyJ(massKg, velocityMS float64) float64 {
	return 0.5 * massKg * velocityMS * velocityMS
}

// Megatons converts joules to megatons of TNT equivalent.
func Megatons(energyJ float64) float64 {
	return energyJ / MegatonJoules
}

// EffectiveVelocityMS returns the vertical velocity component used by the
// crater scaling law, floored at 10 m/s to avoid degenerate grazing cases.
func EffectiveVelocityMS(velocityMS, angleDeg float64) float64 {
	v := velocityMS * math.Sin(angleDeg*math.Pi/180)
	return math.Max(v, minEffectiveVelocityMS)
}

// CraterDiameterM returns the unclamped crater diameter in meters from the
// empirical scaling law
//
//	D = k · g^-0.22 · vEff^0.44 · (rho/rhoTarget)^(1/3) · r^0.78
//
// with k = 1.161, g = 9.81 m/s^2 and a generic rock target of 2700 kg/m^3.
func CraterDiameterM(diameterM, densityKgM3, velocityMS, angleDeg float64) float64 {
	vEff := EffectiveVelocityMS(velocityMS, angleDeg)
	return craterScalingCoeff *
		math.Pow(gravityMS2, -0.22) *
		math.Pow(vEff, 0.44) *
		math.Cbrt(densityKgM3/targetDensityKgM3) *
		math.Pow(diameterM/2, 0.78)
}

// SeismicMagnitude returns the Richter-equivalent magnitude for the TOTAL
// released energy, clamped to [0, 12]. log10 is always defined because the
// energy is floored at 1 J.
func SeismicMagnitude(energyJ float64) float64 {
	m := 0.67*math.Log10(math.Max(energyJ, 1)) - 5.87
	return math.Max(0, math.Min(maxMagnitude, m))
}

package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMassKg(t *testing.T) {
	// A 2 m sphere of unit density has volume (4/3)*pi.
	assert.InDelta(t, 4.0/3.0*math.Pi, MassKg(2, 1), 1e-12)

	// 100 m stony impactor, a common reference case.
	m := MassKg(100, 3000)
	assert.InDelta(t, 1.5708e9, m, 1e6)
}

func TestVelocityMS(t *testing.T) {
	assert.Equal(t, 17000.0, VelocityMS(17))
}

func TestKineticEnergyJ(t *testing.T) {
	assert.Equal(t, 0.5*10*400.0, KineticEnergyJ(10, 20))
}

func TestMegatons(t *testing.T) {
	assert.Equal(t, 1.0, Megatons(4.184e15))
	assert.Equal(t, 0.5, Megatons(2.092e15))
}

func TestEffectiveVelocityMS(t *testing.T) {
	// Vertical impact keeps the full velocity.
	assert.InDelta(t, 20000, EffectiveVelocityMS(20000, 90), 1e-9)

	// 30 degrees halves it.
	assert.InDelta(t, 10000, EffectiveVelocityMS(20000, 30), 1e-6)

	// Grazing impacts are floored, never zero.
	assert.Equal(t, 10.0, EffectiveVelocityMS(20000, 0))
}

func TestCraterDiameterMonotonicInDiameter(t *testing.T) {
	prev := 0.0
	for _, d := range []float64{10, 100, 1000, 10000, 100000} {
		got := CraterDiameterM(d, 3000, 20000, 45)
		assert.Greater(t, got, prev, "diameter %v", d)
		prev = got
	}
}

func TestCraterDiameterAngleSensitivity(t *testing.T) {
	shallow := CraterDiameterM(1000, 3000, 20000, 15)
	vertical := CraterDiameterM(1000, 3000, 20000, 90)
	assert.GreaterOrEqual(t, vertical, shallow)
}

func TestSeismicMagnitude(t *testing.T) {
	tests := []struct {
		name    string
		energyJ float64
		check   func(t *testing.T, m float64)
	}{
		{name: "tiny energy floors at zero", energyJ: 1, check: func(t *testing.T, m float64) {
			assert.Equal(t, 0.0, m)
		}},
		{name: "zero energy still defined", energyJ: 0, check: func(t *testing.T, m float64) {
			assert.Equal(t, 0.0, m)
		}},
		{name: "chicxulub scale", energyJ: 4.2e23, check: func(t *testing.T, m float64) {
			assert.InDelta(t, 9.96, m, 0.05)
		}},
		{name: "absurd energy caps at twelve", energyJ: 1e40, check: func(t *testing.T, m float64) {
			assert.Equal(t, 12.0, m)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := SeismicMagnitude(tt.energyJ)
			assert.False(t, math.IsNaN(m))
			assert.GreaterOrEqual(t, m, 0.0)
			assert.LessOrEqual(t, m, 12.0)
			tt.check(t, m)
		})
	}
}

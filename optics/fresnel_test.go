package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectanceNormalIncidence(t *testing.T) {
	assert := assert.New(t)

	r, err := Reflectance(0, DefaultIndices)
	require.NoError(t, err)
	assert.InDelta(0.04, r, 1e-12)

	tr, err := Transmittance(0, DefaultIndices)
	require.NoError(t, err)
	assert.InDelta(0.96, tr, 1e-12)

	// Same magnitude going from glass into air
	r, err = Reflectance(0, Indices{Incident: N_GLASS, Transmitted: N_AIR})
	require.NoError(t, err)
	assert.InDelta(0.04, r, 1e-12)
}

func TestReflectanceBounds(t *testing.T) {
	for _, slope := range []float64{-3, -1, -0.2, 0, 0.1, 0.5, 1, 2, 10} {
		r, err := Reflectance(slope, DefaultIndices)
		require.NoError(t, err, "slope=%g", slope)
		assert.GreaterOrEqual(t, r, 0.0, "slope=%g", slope)
		assert.LessOrEqual(t, r, 1.0, "slope=%g", slope)

		mirrored, err := Reflectance(-slope, DefaultIndices)
		require.NoError(t, err)
		assert.InDelta(t, r, mirrored, 1e-12, "slope=%g", slope)
	}
}

func TestReflectanceBrewster(t *testing.T) {
	// At tan(theta) = n2/n1 the reflected and transmitted rays are perpendicular
	r, err := Reflectance(N_GLASS/N_AIR, DefaultIndices)
	require.NoError(t, err)
	assert.InDelta(t, 0, r, 1e-12)
}

func TestReflectanceTotalInternalReflection(t *testing.T) {
	glass := Indices{Incident: N_GLASS, Transmitted: N_AIR}

	_, err := Reflectance(SlopeFromAngle(60), glass)
	assert.ErrorIs(t, err, ErrOpticalRegime)
	_, err = Transmittance(SlopeFromAngle(-60), glass)
	assert.ErrorIs(t, err, ErrOpticalRegime)

	_, err = Reflectance(SlopeFromAngle(40), glass)
	assert.NoError(t, err)
}

func TestCriticalAngle(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(toDeg(math.Asin(1/1.5)), DefaultIndices.CriticalAngle(), 1e-12)
	assert.InDelta(41.8103148958, DefaultIndices.CriticalAngle(), 1e-9)
	assert.Equal(90.0, Indices{Incident: 1.5, Transmitted: 1}.CriticalAngle())
	assert.Equal(90.0, Indices{Incident: 1, Transmitted: 1}.CriticalAngle())
}

func TestGaussian(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(0.3989422804, Gaussian(0), 1e-9)
	assert.InDelta(Gaussian(1.3), Gaussian(-1.3), 1e-15)
	assert.Less(Gaussian(2), Gaussian(1))
}

func TestAngleConversion(t *testing.T) {
	for _, deg := range []float64{-80, -30, 0, 10, 45, 89} {
		assert.InDelta(t, deg, AngleFromSlope(SlopeFromAngle(deg)), 1e-9)
	}
}

package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func uniformParams() Params {
	p := DefaultParams()
	p.Weighting = WeightUniform
	return p
}

func newTestPropagator(t *testing.T, ray InitialRay, params Params) *Propagator {
	t.Helper()
	p, err := NewPropagator(ray, params)
	require.NoError(t, err)
	return p
}

func TestInitialize(t *testing.T) {
	assert := assert.New(t)

	p := newTestPropagator(t, InitialRay{X: 1, Y: 0.5, Slope: 0.1}, DefaultParams())
	assert.Equal(1, p.History().Len())
	first := p.History().Last()
	assert.InDelta(Gaussian(0.5), first.Primary.Amplitude, eps)
	assert.Equal(first.Primary, first.Secondary)
	assert.Equal(PropagatorState{}, p.State())

	params := uniformParams()
	params.Secondary = SecondaryZeroed
	p = newTestPropagator(t, InitialRay{X: 1, Y: 0.5, Slope: 0.1}, params)
	first = p.History().Last()
	assert.Equal(1.0, first.Primary.Amplitude)
	assert.Equal(Branch{}, first.Secondary)

	ray := InitialRayFromAngle(0, 0, 45)
	assert.InDelta(1, ray.Slope, eps)
}

func TestInitializeProfile(t *testing.T) {
	profile, err := NewBeamProfile(map[float64]float64{-1: 0, 0: 1, 1: 0})
	require.NoError(t, err)

	params := DefaultParams()
	params.Weighting = WeightProfile
	params.Profile = profile
	p := newTestPropagator(t, InitialRay{Y: 0.25}, params)
	assert.InDelta(t, 0.75, p.History().Last().Primary.Amplitude, eps)

	params.Profile = nil
	_, err = NewPropagator(InitialRay{}, params)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestInitializeRejectsBadIndices(t *testing.T) {
	params := DefaultParams()
	params.Indices = Indices{Incident: 0, Transmitted: 1.5}
	_, err := NewPropagator(InitialRay{}, params)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestPropagateRoundTrip(t *testing.T) {
	for _, d := range []float64{0, 0.5, 3, 20, -7.25, 1e3} {
		p := newTestPropagator(t, InitialRay{X: 2, Y: -0.3, Slope: 0.07}, DefaultParams())
		before := p.History().Last()
		_, err := p.Propagate(d)
		require.NoError(t, err)
		after, err := p.Propagate(-d)
		require.NoError(t, err)

		assert.InDelta(t, before.Primary.X, after.Primary.X, eps, "d=%g", d)
		assert.InDelta(t, before.Primary.Y, after.Primary.Y, eps, "d=%g", d)
		assert.InDelta(t, before.Primary.Slope, after.Primary.Slope, eps, "d=%g", d)
	}
}

func TestLensEndToEnd(t *testing.T) {
	assert := assert.New(t)

	p := newTestPropagator(t, InitialRay{X: 0, Y: 0, Slope: 0}, DefaultParams())
	require.NoError(t, p.Run([]Element{Space{20}, ThinLens{15}, Space{15}}))

	h := p.History()
	require.Equal(t, 4, h.Len())
	xs := []float64{0, 20, 20, 35}
	for i, s := range h {
		assert.InDelta(xs[i], s.Primary.X, eps)
		assert.Equal(0.0, s.Primary.Y)
		assert.Equal(0.0, s.Primary.Slope)
	}
}

func TestLensFocusesParallelRays(t *testing.T) {
	for _, y := range []float64{-2, -1, 0.5, 2} {
		p := newTestPropagator(t, InitialRay{Y: y}, DefaultParams())
		require.NoError(t, p.Run([]Element{Space{20}, ThinLens{15}, Space{15}}))
		assert.InDelta(t, 0, p.History().Last().Primary.Y, eps, "y=%g", y)
	}
}

func TestLensPairInContact(t *testing.T) {
	assert := assert.New(t)

	pair := newTestPropagator(t, InitialRay{Y: 1}, uniformParams())
	require.NoError(t, pair.Run([]Element{ThinLens{10}, ThinLens{10}}))
	single := newTestPropagator(t, InitialRay{Y: 1}, uniformParams())
	require.NoError(t, single.Run([]Element{ThinLens{5}}))

	// The traces are different element sequences even though the ray leaves with the same slope
	assert.NotEqual(pair.History().Len(), single.History().Len())
	assert.NotEqual(pair.History()[1], single.History()[1])
	assert.InDelta(single.History().Last().Primary.Slope, pair.History().Last().Primary.Slope, eps)

	// With space between them they are not a single lens
	spaced := newTestPropagator(t, InitialRay{Y: 1}, uniformParams())
	require.NoError(t, spaced.Run([]Element{ThinLens{10}, Space{2}, ThinLens{10}, Space{-2}}))
	assert.NotEqual(single.History().Last().Primary.Slope, spaced.History().Last().Primary.Slope)
}

func TestLensZeroFocalLength(t *testing.T) {
	p := newTestPropagator(t, InitialRay{Y: 1}, DefaultParams())
	_, err := p.Lens(0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, 1, p.History().Len())
}

func TestPlaneMirror(t *testing.T) {
	assert := assert.New(t)

	p := newTestPropagator(t, InitialRay{Y: 1, Slope: 0.1}, uniformParams())
	require.NoError(t, p.Run([]Element{Space{10}, Mirror{}, Space{10}}))

	h := p.History()
	mirrored := h[2]
	assert.InDelta(10, mirrored.Primary.X, eps)
	assert.InDelta(2, mirrored.Primary.Y, eps)
	assert.InDelta(-0.1, mirrored.Primary.Slope, eps)
	assert.Equal(mirrored.Primary, mirrored.Secondary)

	last := h.Last()
	assert.InDelta(0, last.Primary.X, eps)
	assert.InDelta(3, last.Primary.Y, eps)
	assert.Equal(PropagatorState{Primary: Reflected, Secondary: Reflected}, p.State())

	_, err := p.PlaneMirror()
	require.NoError(t, err)
	assert.Equal(Forward, p.State().Primary)
}

func TestFlatInterfaceNormalIncidence(t *testing.T) {
	assert := assert.New(t)

	p := newTestPropagator(t, InitialRay{Y: 0}, DefaultParams())
	a := p.History().Last().Primary.Amplitude
	s, err := p.FlatInterface()
	require.NoError(t, err)

	assert.InDelta(0.96*a, s.Primary.Amplitude, eps)
	assert.InDelta(0.04*a, s.Secondary.Amplitude, eps)
	assert.Equal(0.0, s.Primary.Slope)
	assert.Equal(SurfaceFlat, p.State().Surface)
	assert.False(p.State().CurvedHit())
}

func TestFlatInterfaceSplit(t *testing.T) {
	assert := assert.New(t)

	p := newTestPropagator(t, InitialRay{Y: 1, Slope: 0.2}, uniformParams())
	_, err := p.Propagate(10)
	require.NoError(t, err)
	s, err := p.FlatInterface()
	require.NoError(t, err)

	r, err := Reflectance(0.2, DefaultIndices)
	require.NoError(t, err)
	assert.InDelta(1-r, s.Primary.Amplitude, eps)
	assert.InDelta(r, s.Secondary.Amplitude, eps)
	assert.InDelta(1, s.Primary.Amplitude+s.Secondary.Amplitude, eps)
	assert.InDelta(0.2/1.5, s.Primary.Slope, eps)
	assert.InDelta(-0.2, s.Secondary.Slope, eps)
	assert.Equal(PropagatorState{Primary: Forward, Secondary: Reflected, Surface: SurfaceFlat}, p.State())

	// The transmitted branch carries on, the reflected branch travels back
	s, err = p.Propagate(5)
	require.NoError(t, err)
	assert.InDelta(15, s.Primary.X, eps)
	assert.InDelta(3+5*0.2/1.5, s.Primary.Y, eps)
	assert.InDelta(5, s.Secondary.X, eps)
	assert.InDelta(4, s.Secondary.Y, eps)
}

func TestFlatInterfaceTotalInternalReflection(t *testing.T) {
	assert := assert.New(t)

	params := uniformParams()
	params.Indices = Indices{Incident: 1.5, Transmitted: 1.0}
	steep := SlopeFromAngle(60)

	p := newTestPropagator(t, InitialRay{Slope: steep}, params)
	_, err := p.FlatInterface()
	assert.ErrorIs(err, ErrOpticalRegime)
	assert.Equal(1, p.History().Len())

	params.TotalInternalReflection = true
	p = newTestPropagator(t, InitialRay{Slope: steep}, params)
	s, err := p.FlatInterface()
	require.NoError(t, err)
	assert.InDelta(-steep, s.Primary.Slope, eps)
	assert.Equal(1.0, s.Primary.Amplitude)
	assert.Equal(s.Primary, s.Secondary)
	assert.Equal(Reflected, p.State().Primary)
	assert.Equal(Reflected, p.State().Secondary)
}

func TestCurvedInterface(t *testing.T) {
	assert := assert.New(t)

	p := newTestPropagator(t, InitialRay{Y: 1}, uniformParams())
	_, err := p.Propagate(5)
	require.NoError(t, err)
	s, err := p.CurvedInterface(2)
	require.NoError(t, err)

	// The ray at height 1 meets the circle of radius 2 around (5, 0)
	assert.InDelta(5-math.Sqrt(3), s.Primary.X, eps)
	assert.InDelta(1, s.Primary.Y, eps)
	assert.InDelta(4, math.Pow(s.Primary.X-5, 2)+math.Pow(s.Primary.Y, 2), eps)
	assert.InDelta(-0.5/3, s.Primary.Slope, eps)
	assert.InDelta(s.Primary.X, s.Secondary.X, eps)
	assert.InDelta(s.Primary.Y, s.Secondary.Y, eps)
	assert.InDelta(0.96, s.Primary.Amplitude, eps)
	assert.True(p.State().CurvedHit())
}

func TestCurvedInterfaceErrors(t *testing.T) {
	tests := []struct {
		name   string
		y      float64
		radius float64
		want   error
	}{
		{"zero_radius", 0, 0, ErrInvalidParameter},
		{"negative_radius", 0, -2, ErrInvalidParameter},
		{"above_surface", 3, 2, ErrGeometry},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := newTestPropagator(t, InitialRay{Y: test.y}, DefaultParams())
			_, err := p.CurvedInterface(test.radius)
			assert.ErrorIs(t, err, test.want)
			assert.Equal(t, 1, p.History().Len())
			assert.Equal(t, SurfaceNone, p.State().Surface)
		})
	}
}

func TestCurvedInterfaceTransverseAboveSurface(t *testing.T) {
	params := DefaultParams()
	params.Convention = AxisTransverse
	p := newTestPropagator(t, InitialRay{Y: 3}, params)
	_, err := p.CurvedInterface(2)
	assert.ErrorIs(t, err, ErrGeometry)
	assert.Equal(t, 1, p.History().Len())
}

func TestRunReportsFailingElement(t *testing.T) {
	assert := assert.New(t)

	p := newTestPropagator(t, InitialRay{Y: 3}, DefaultParams())
	err := p.Run([]Element{Space{1}, CurvedSurface{2}, Space{1}})

	var traceErr *TraceError
	require.ErrorAs(t, err, &traceErr)
	assert.Equal(1, traceErr.Index)
	assert.Equal("curved_interface(r=2)", traceErr.Element)
	assert.Equal(3.0, traceErr.Ray)
	assert.ErrorIs(err, ErrGeometry)
	assert.Equal(2, p.History().Len())
}

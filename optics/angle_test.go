package optics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracer(t *testing.T, start AngleState, params AngleParams) *AngleTracer {
	t.Helper()
	tr, err := NewAngleTracer(start, params)
	require.NoError(t, err)
	return tr
}

func TestNewAngleTracerInvalid(t *testing.T) {
	params := DefaultAngleParams()
	params.MaxBounces = -1
	_, err := NewAngleTracer(AngleState{}, params)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	params = DefaultAngleParams()
	params.SingularTolerance = -0.1
	_, err = NewAngleTracer(AngleState{}, params)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestPointLens(t *testing.T) {
	assert := assert.New(t)

	tr := newTestTracer(t, AngleState{X: 0, Y: 2, Angle: 0}, DefaultAngleParams())
	s, err := tr.PointLens(10, 20)
	require.NoError(t, err)

	// Object at 2f: image at 2f behind the lens, inverted
	assert.InDelta(20, s.X, eps)
	assert.InDelta(2, s.Y, eps)
	assert.InDelta(AngleFromSlope(-0.2), s.Angle, eps)
	assert.Equal(2, tr.History().Len())
}

func TestPointLensFocalPlane(t *testing.T) {
	assert := assert.New(t)

	tr := newTestTracer(t, AngleState{X: 0, Y: 2, Angle: 0}, DefaultAngleParams())
	s, err := tr.PointLens(10, 10)
	require.NoError(t, err)
	assert.InDelta(10, s.X, eps)
	assert.InDelta(AngleFromSlope(-0.2), s.Angle, eps)

	// Within tolerance of the focal plane takes the same branch
	params := DefaultAngleParams()
	params.SingularTolerance = 1e-3
	tr = newTestTracer(t, AngleState{X: 0, Y: 2, Angle: 0}, params)
	s, err = tr.PointLens(10, 10.0005)
	require.NoError(t, err)
	assert.InDelta(AngleFromSlope(-0.2), s.Angle, eps)
}

func TestPointLensInvalid(t *testing.T) {
	tr := newTestTracer(t, AngleState{X: 5, Y: 1}, DefaultAngleParams())
	_, err := tr.PointLens(0, 10)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = tr.PointLens(10, 5)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, 1, tr.History().Len())
}

func TestMirrorAt(t *testing.T) {
	assert := assert.New(t)

	tr := newTestTracer(t, AngleState{X: 0, Y: 2, Angle: 5}, DefaultAngleParams())
	s, err := tr.MirrorAt(15)
	require.NoError(t, err)
	assert.InDelta(15, s.X, eps)
	assert.InDelta(2+15*SlopeFromAngle(5), s.Y, eps)
	assert.InDelta(175, s.Angle, eps)

	// The mirror works from the latest state, not the initial one
	s, err = tr.MirrorAt(5)
	require.NoError(t, err)
	assert.InDelta(5, s.X, eps)
	assert.InDelta(2+15*SlopeFromAngle(5)+10*SlopeFromAngle(5), s.Y, eps)
	assert.InDelta(5, s.Angle, eps)
}

func TestAngleRun(t *testing.T) {
	assert := assert.New(t)

	tr := newTestTracer(t, AngleState{X: 0, Y: 2}, DefaultAngleParams())
	err := tr.Run([]AngleElement{PointLens{F: 10, Position: 20}, PointLens{F: 0, Position: 30}})

	var traceErr *TraceError
	require.ErrorAs(t, err, &traceErr)
	assert.Equal(1, traceErr.Index)
	assert.Equal("point_lens(f=0, x=30)", traceErr.Element)
	assert.Equal(2.0, traceErr.Ray)
	assert.Equal(2, tr.History().Len())
}

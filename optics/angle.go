package optics

import (
	"math"
)

// AngleParams configures an AngleTracer
type AngleParams struct {
	// Indices of the surrounding medium (Incident) and of the prism glass (Transmitted)
	Indices Indices
	// A point lens whose object distance is within this of its focal length is treated as
	// having its object in the focal plane. Zero means only exact equality.
	SingularTolerance float64
	// Maximum number of internal reflections inside a prism before giving up
	MaxBounces int
	// Rays entering a prism below this angle in degrees are rejected
	MinAngle float64
}

func DefaultAngleParams() AngleParams {
	return AngleParams{
		Indices:           DefaultIndices,
		SingularTolerance: 0,
		MaxBounces:        8,
		MinAngle:          -2,
	}
}

// AngleTracer traces one ray in (x, y, angle) form by constructing the points where it meets
// each element
type AngleTracer struct {
	params  AngleParams
	history AngleTrace
}

func NewAngleTracer(start AngleState, params AngleParams) (*AngleTracer, error) {
	if err := params.Indices.validate(); err != nil {
		return nil, err
	}
	if params.SingularTolerance < 0 {
		return nil, invalidf("singular tolerance must be non-negative, got %g", params.SingularTolerance)
	}
	if params.MaxBounces < 0 {
		return nil, invalidf("max bounces must be non-negative, got %d", params.MaxBounces)
	}
	if !finite(start.X, start.Y, start.Angle) {
		return nil, invalidf("initial ray (%g, %g, %g) is not finite", start.X, start.Y, start.Angle)
	}
	return &AngleTracer{params: params, history: AngleTrace{start}}, nil
}

func (t *AngleTracer) History() AngleTrace {
	return t.history
}

func (t *AngleTracer) Params() AngleParams {
	return t.params
}

func (t *AngleTracer) record(states ...AngleState) (AngleState, error) {
	for _, s := range states {
		if !finite(s.X, s.Y, s.Angle) {
			return AngleState{}, geometryf("transfer produced a non-finite state %v", s.Record())
		}
	}
	t.history = append(t.history, states...)
	return t.history.Last(), nil
}

// PointLens passes the ray through a thin lens of focal length f whose plane is at x = position.
//
// The outgoing direction is the chord from the point where the ray meets the lens to the image
// of the ray's start point, found with the thin-lens equation v = u*f/(u-f).
func (t *AngleTracer) PointLens(f, position float64) (AngleState, error) {
	if f == 0 || !finite(f, position) {
		return AngleState{}, invalidf("focal length must be non-zero and finite, got %g", f)
	}
	s := t.history.Last()
	u := position - s.X
	if u == 0 {
		return AngleState{}, invalidf("ray starts on the lens plane at x = %g", position)
	}
	hit := Point{position, s.Y + SlopeFromAngle(s.Angle)*u}

	var slope float64
	if math.Abs(u-f) <= t.params.SingularTolerance {
		// Object in the focal plane: the image is at infinity along the chief ray
		slope = -s.Y / f
	} else {
		v := u * f / (u - f)
		image := Point{position + v, s.Y - s.Y/u*(u+v)}
		slope = (image.Y - hit.Y) / (image.X - hit.X)
	}
	return t.record(AngleState{X: hit.X, Y: hit.Y, Angle: AngleFromSlope(slope)})
}

// MirrorAt reflects the ray off a plane mirror standing at x = position
func (t *AngleTracer) MirrorAt(position float64) (AngleState, error) {
	if !finite(position) {
		return AngleState{}, invalidf("mirror position %g", position)
	}
	s := t.history.Last()
	dy := SlopeFromAngle(s.Angle) * (position - s.X)
	return t.record(AngleState{X: position, Y: s.Y + dy, Angle: 180 - s.Angle})
}

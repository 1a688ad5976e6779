package optics

import (
	"gonum.org/v1/gonum/mat"
)

// Params configures a Propagator. The zero value is not usable; start from DefaultParams.
type Params struct {
	Indices   Indices
	Weighting Weighting
	// Required when Weighting is WeightProfile
	Profile    *BeamProfile
	Secondary  SecondaryMode
	Convention AxisConvention
	// When set, an interface at which no transmitted ray exists reflects all of the light instead
	// of failing with ErrOpticalRegime
	TotalInternalReflection bool
}

// DefaultParams traces from air into glass with Gaussian weighting and a secondary branch that
// starts as a copy of the primary
func DefaultParams() Params {
	return Params{
		Indices:    DefaultIndices,
		Weighting:  WeightGaussian,
		Secondary:  SecondaryMirrorsPrimary,
		Convention: AxisOptical,
	}
}

// InitialRay is where a ray starts
type InitialRay struct {
	X     float64
	Y     float64
	Slope float64
}

// InitialRayFromAngle builds an InitialRay from an angle in degrees
func InitialRayFromAngle(x, y, deg float64) InitialRay {
	return InitialRay{X: x, Y: y, Slope: SlopeFromAngle(deg)}
}

// Propagator traces one ray through a sequence of slope-form elements.
//
// A Propagator owns its history and is not safe for concurrent use. Trace separate rays with
// separate propagators.
type Propagator struct {
	params  Params
	state   PropagatorState
	history Trace
}

// NewPropagator validates params and records the initial state of the ray
func NewPropagator(ray InitialRay, params Params) (*Propagator, error) {
	if err := params.Indices.validate(); err != nil {
		return nil, err
	}
	if !finite(ray.X, ray.Y, ray.Slope) {
		return nil, invalidf("initial ray (%g, %g, %g) is not finite", ray.X, ray.Y, ray.Slope)
	}

	amplitude := 1.0
	switch params.Weighting {
	case WeightGaussian:
		amplitude = Gaussian(ray.Y)
	case WeightProfile:
		if params.Profile == nil {
			return nil, invalidf("profile weighting without a beam profile")
		}
		amplitude = params.Profile.At(ray.Y)
	}

	primary := Branch{X: ray.X, Y: ray.Y, Slope: ray.Slope, Amplitude: amplitude}
	initial := RayState{Primary: primary}
	if params.Secondary == SecondaryMirrorsPrimary {
		initial.Secondary = primary
	}

	return &Propagator{
		params:  params,
		history: Trace{initial},
	}, nil
}

func (p *Propagator) History() Trace {
	return p.history
}

func (p *Propagator) State() PropagatorState {
	return p.state
}

func (p *Propagator) Params() Params {
	return p.params
}

func (p *Propagator) last() RayState {
	return p.history.Last()
}

func (p *Propagator) record(s RayState) (RayState, error) {
	if !s.finite() {
		return RayState{}, geometryf("transfer produced a non-finite state %v", s.Record())
	}
	p.history = append(p.history, s)
	return s, nil
}

// Propagate moves both branches a distance d through free space, each in its own direction
func (p *Propagator) Propagate(d float64) (RayState, error) {
	if !finite(d) {
		return RayState{}, invalidf("propagation distance %g", d)
	}
	s := p.last()
	s.Primary = advance(s.Primary, d*p.state.Primary.sign())
	s.Secondary = advance(s.Secondary, d*p.state.Secondary.sign())
	return p.record(s)
}

func advance(b Branch, d float64) Branch {
	b = transfer(translation(d), b)
	b.X += d
	return b
}

// Lens applies a thin lens of focal length f to both branches
func (p *Propagator) Lens(f float64) (RayState, error) {
	if f == 0 || !finite(f) {
		return RayState{}, invalidf("focal length must be non-zero and finite, got %g", f)
	}
	m := thinLens(f)
	s := p.last()
	s.Primary = transfer(m, s.Primary)
	s.Secondary = transfer(m, s.Secondary)
	return p.record(s)
}

// PlaneMirror reflects the ray back along the axis. Both branches follow the reflected primary.
func (p *Propagator) PlaneMirror() (RayState, error) {
	s := p.last()
	reflected := transfer(reflection(), s.Primary)
	s.Primary = reflected
	s.Secondary = reflected

	s, err := p.record(s)
	if err != nil {
		return RayState{}, err
	}
	p.state.Primary = p.state.Primary.reverse()
	p.state.Secondary = p.state.Primary
	return s, nil
}

// FlatInterface splits the ray at a plane dielectric interface into a transmitted primary
// branch and a reflected secondary branch
func (p *Propagator) FlatInterface() (RayState, error) {
	s, tir, err := p.split(flatRefraction(p.params.Indices))
	if err != nil {
		return RayState{}, err
	}
	if s, err = p.record(s); err != nil {
		return RayState{}, err
	}
	p.crossed(SurfaceFlat, tir)
	return s, nil
}

// CurvedInterface splits the ray at a spherical dielectric interface of radius r, then moves
// both branches from the paraxial reference plane onto the surface.
func (p *Propagator) CurvedInterface(r float64) (RayState, error) {
	if !(r > 0) || !finite(r) {
		return RayState{}, invalidf("curvature radius must be positive, got %g", r)
	}
	incoming := p.last().Primary
	s, tir, err := p.split(curvedRefraction(r, p.params.Indices))
	if err != nil {
		return RayState{}, err
	}

	dx, dy, err := SurfaceIntersection(incoming.Y, incoming.Slope, r, p.params.Convention)
	if err != nil {
		return RayState{}, err
	}
	s.Primary.X -= dx
	s.Primary.Y -= dy
	s.Secondary.X -= dx
	s.Secondary.Y -= dy

	if s, err = p.record(s); err != nil {
		return RayState{}, err
	}
	p.crossed(SurfaceCurved, tir)
	return s, nil
}

// split divides the primary branch into a transmitted part, weighted by T, and a reflected
// part, weighted by R. Under total internal reflection both parts are the reflected ray.
func (p *Propagator) split(refraction mat.Matrix) (s RayState, tir bool, err error) {
	incoming := p.last().Primary
	reflected := transfer(reflection(), incoming)

	r, err := Reflectance(incoming.Slope, p.params.Indices)
	if err != nil {
		if !p.params.TotalInternalReflection {
			return RayState{}, false, err
		}
		return RayState{Primary: reflected, Secondary: reflected}, true, nil
	}

	transmitted := transfer(refraction, incoming)
	transmitted.Amplitude = incoming.Amplitude * (1 - r)
	reflected.Amplitude = incoming.Amplitude * r
	return RayState{Primary: transmitted, Secondary: reflected}, false, nil
}

func (p *Propagator) crossed(kind SurfaceKind, tir bool) {
	if tir {
		p.state.Primary = p.state.Primary.reverse()
		p.state.Secondary = p.state.Primary
	} else {
		p.state.Secondary = p.state.Primary.reverse()
	}
	p.state.Surface = kind
}

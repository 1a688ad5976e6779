package optics

import (
	"fmt"
)

// Element is one slope-form optical element of a bench
type Element interface {
	Apply(p *Propagator) (RayState, error)
	Name() string
}

// Space is a stretch of free space of length D
type Space struct {
	D float64
}

func (e Space) Apply(p *Propagator) (RayState, error) { return p.Propagate(e.D) }
func (e Space) Name() string                          { return fmt.Sprintf("space(d=%g)", e.D) }

// ThinLens has focal length F. Positive F converges.
type ThinLens struct {
	F float64
}

func (e ThinLens) Apply(p *Propagator) (RayState, error) { return p.Lens(e.F) }
func (e ThinLens) Name() string                          { return fmt.Sprintf("lens(f=%g)", e.F) }

type Mirror struct{}

func (Mirror) Apply(p *Propagator) (RayState, error) { return p.PlaneMirror() }
func (Mirror) Name() string                          { return "mirror" }

type FlatSurface struct{}

func (FlatSurface) Apply(p *Propagator) (RayState, error) { return p.FlatInterface() }
func (FlatSurface) Name() string                          { return "flat_interface" }

// CurvedSurface is a spherical interface of radius R
type CurvedSurface struct {
	R float64
}

func (e CurvedSurface) Apply(p *Propagator) (RayState, error) { return p.CurvedInterface(e.R) }
func (e CurvedSurface) Name() string                          { return fmt.Sprintf("curved_interface(r=%g)", e.R) }

// AngleElement is one element of a bench traced in (x, y, angle) form
type AngleElement interface {
	ApplyAngle(t *AngleTracer) (AngleState, error)
	Name() string
}

// PointLens is a thin lens of focal length F in the plane x = Position
type PointLens struct {
	F        float64
	Position float64
}

func (e PointLens) ApplyAngle(t *AngleTracer) (AngleState, error) { return t.PointLens(e.F, e.Position) }
func (e PointLens) Name() string {
	return fmt.Sprintf("point_lens(f=%g, x=%g)", e.F, e.Position)
}

// MirrorAt is a plane mirror standing at x = Position
type MirrorAt struct {
	Position float64
}

func (e MirrorAt) ApplyAngle(t *AngleTracer) (AngleState, error) { return t.MirrorAt(e.Position) }
func (e MirrorAt) Name() string                                  { return fmt.Sprintf("mirror_at(x=%g)", e.Position) }

func (e Prism) ApplyAngle(t *AngleTracer) (AngleState, error) { return t.Prism(e) }
func (e Prism) Name() string {
	return fmt.Sprintf("prism(side=%g, center=%g)", e.SideLength, e.Center)
}

// Run applies elements in order. On failure it returns a *TraceError naming the element; the
// history keeps every state recorded before it.
func (p *Propagator) Run(elements []Element) error {
	for i, e := range elements {
		if _, err := e.Apply(p); err != nil {
			return &TraceError{Ray: p.history[0].Primary.Y, Element: e.Name(), Index: i, Err: err}
		}
	}
	return nil
}

func (t *AngleTracer) Run(elements []AngleElement) error {
	for i, e := range elements {
		if _, err := e.ApplyAngle(t); err != nil {
			return &TraceError{Ray: t.history[0].Y, Element: e.Name(), Index: i, Err: err}
		}
	}
	return nil
}

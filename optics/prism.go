package optics

import (
	"math"
)

// Prism is an equilateral triangular prism standing on its base.
//
// The apex is at (Center, SideLength/sqrt(3)) and the base at z = -SideLength/(2*sqrt(3)), so
// the centroid is on the axis. The left facet rises with slope sqrt(3) and the right facet
// falls with slope -sqrt(3).
type Prism struct {
	SideLength float64
	Center     float64
}

func (p Prism) validate() error {
	if !(p.SideLength > 0) || !finite(p.SideLength, p.Center) {
		return invalidf("prism side length must be positive, got %g", p.SideLength)
	}
	return nil
}

// Vertices returns the apex, the right base corner and the left base corner
func (p Prism) Vertices() [3]Point {
	h := p.SideLength / math.Sqrt(3)
	base := -p.SideLength / (2 * math.Sqrt(3))
	return [3]Point{
		{p.Center, h},
		{p.Center + p.SideLength/2, base},
		{p.Center - p.SideLength/2, base},
	}
}

type facet struct {
	name  string
	start Point
	edge  Point
	// Direction of the outward normal in degrees
	normal float64
}

const (
	facetLeft = iota
	facetRight
	facetBase
)

func (p Prism) facets() [3]facet {
	v := p.Vertices()
	apex, right, left := v[0], v[1], v[2]
	return [3]facet{
		facetLeft:  {"left", left, Point{apex.X - left.X, apex.Y - left.Y}, 150},
		facetRight: {"right", apex, Point{right.X - apex.X, right.Y - apex.Y}, 30},
		facetBase:  {"base", right, Point{left.X - right.X, left.Y - right.Y}, -90},
	}
}

// Slack allowed when deciding whether a line hit lies on a facet segment
const facetEpsilon = 1e-9

func direction(deg float64) Point {
	r := toRad(deg)
	return Point{math.Cos(r), math.Sin(r)}
}

// wrapAngle maps an angle in degrees to (-180, 180]
func wrapAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// Prism refracts the ray into the left facet of p, follows it through the glass, and refracts it
// out of the first facet at which it is below the critical angle.
//
// Each internal reflection adds an entry to the history; a ray that passes straight through adds
// exactly two: the entry point with the internal direction and the exit point with the outgoing
// direction.
func (t *AngleTracer) Prism(p Prism) (PrismState, error) {
	if err := p.validate(); err != nil {
		return PrismState{}, err
	}
	s := t.history.Last()
	if s.Angle < t.params.MinAngle {
		return PrismState{}, invalidf("prism input angle %g is below %g degrees", s.Angle, t.params.MinAngle)
	}
	n := t.params.Indices
	facets := p.facets()

	// Entry
	left := facets[facetLeft]
	pos := Point{s.X, s.Y}
	along, across, err := intersectLines(pos, direction(s.Angle), left.start, left.edge)
	if err != nil {
		return PrismState{}, err
	}
	if along <= 0 || across < -facetEpsilon || across > 1+facetEpsilon {
		return PrismState{}, geometryf("ray from (%g, %g) at %g degrees misses the entry facet", s.X, s.Y, s.Angle)
	}
	pos = pos.add(along*math.Cos(toRad(s.Angle)), along*math.Sin(toRad(s.Angle)))

	incident := wrapAngle(s.Angle - (left.normal - 180))
	if math.Abs(incident) >= 90 {
		return PrismState{}, geometryf("ray meets the entry facet from behind (incidence %g degrees)", incident)
	}
	sinT := n.Ratio() * math.Sin(toRad(incident))
	if math.Abs(sinT) > 1 {
		return PrismState{}, regimef("no refracted ray into the prism at incidence %g degrees for indices (%g, %g)",
			incident, n.Incident, n.Transmitted)
	}
	refracted := toDeg(math.Asin(sinT))
	alpha := wrapAngle(left.normal - 180 + refracted)
	states := []PrismState{{X: pos.X, Y: pos.Y, Angle: alpha}}

	// Exit, with internal reflections
	critical := n.CriticalAngle()
	from := facetLeft
	for bounces := 0; ; bounces++ {
		next, hit, err := nextFacet(facets, from, pos, alpha)
		if err != nil {
			return PrismState{}, err
		}
		f := facets[next]
		incident := wrapAngle(alpha - f.normal)
		if math.Abs(incident) >= 90 {
			return PrismState{}, geometryf("ray meets the %s facet from outside (incidence %g degrees)", f.name, incident)
		}
		if math.Abs(incident) < critical {
			out := toDeg(math.Asin(math.Sin(toRad(incident)) / n.Ratio()))
			states = append(states, PrismState{X: hit.X, Y: hit.Y, Angle: wrapAngle(f.normal + out)})
			break
		}
		if bounces >= t.params.MaxBounces {
			return PrismState{}, geometryf("ray is still inside the prism after %d internal reflections", bounces)
		}
		alpha = wrapAngle(2*f.normal + 180 - alpha)
		states = append(states, PrismState{X: hit.X, Y: hit.Y, Angle: alpha})
		pos, from = hit, next
	}

	return t.record(states...)
}

// nextFacet finds the nearest facet, other than the one the ray starts on, hit by a ray inside
// the prism
func nextFacet(facets [3]facet, from int, pos Point, angle float64) (int, Point, error) {
	d := direction(angle)
	best, bestT := -1, math.Inf(1)
	for i, f := range facets {
		if i == from {
			continue
		}
		along, across, err := intersectLines(pos, d, f.start, f.edge)
		if err != nil {
			continue
		}
		if along <= facetEpsilon || across < -facetEpsilon || across > 1+facetEpsilon {
			continue
		}
		if along < bestT {
			best, bestT = i, along
		}
	}
	if best < 0 {
		return 0, Point{}, geometryf("ray from (%g, %g) at %g degrees leaves the prism through no facet", pos.X, pos.Y, angle)
	}
	return best, pos.add(bestT*d.X, bestT*d.Y), nil
}

package optics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// AxisConvention fixes which angle the curved-surface chord is measured against
type AxisConvention int

const (
	// The chord angle is measured from the transverse axis (pi/2 - theta).
	// A ray along the axis at height y lands sqrt(r^2 - y^2) before the reference plane.
	AxisOptical AxisConvention = iota
	// The chord angle is theta itself and the offset is measured along the transverse axis.
	// Its discriminant stays r^2 at normal incidence, so heights above r are rejected up front.
	AxisTransverse
)

func (c AxisConvention) String() string {
	if c == AxisTransverse {
		return "transverse"
	}
	return "optical"
}

// SurfaceIntersection returns the offset from the paraxial reference plane to the point where a
// ray at height y with the given slope meets a circular surface of radius r.
//
// The recorded position is corrected by subtracting (dx, dy).
func SurfaceIntersection(y, slope, r float64, conv AxisConvention) (dx, dy float64, err error) {
	if !(r > 0) {
		return 0, 0, invalidf("curvature radius must be positive, got %g", r)
	}
	if math.Abs(y) > r {
		return 0, 0, geometryf("ray at height %g is above a surface of radius %g", y, r)
	}
	phi := math.Atan(slope)
	if conv == AxisOptical {
		phi = math.Pi/2 - phi
	}
	c := math.Cos(phi)
	disc := y*y*c*c - (y*y - r*r)
	if disc < 0 {
		return 0, 0, geometryf("ray at height %g does not reach a surface of radius %g (discriminant %g)", y, r, disc)
	}
	m := y*c + math.Sqrt(disc)
	dx = m * math.Sin(phi)
	dy = m * math.Sin(math.Pi/2-phi)
	if !finite(dx, dy) {
		return 0, 0, geometryf("surface offset is not finite for height %g, slope %g", y, slope)
	}
	return dx, dy, nil
}

type Point struct {
	X, Y float64
}

func (p Point) add(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Below this the 2x2 facet systems are treated as parallel lines
const parallelEpsilon = 1e-12

// intersectLines solves p + t*d = q + s*e for (t, s)
func intersectLines(p Point, d Point, q Point, e Point) (t, s float64, err error) {
	a := mat.NewDense(2, 2, []float64{
		d.X, -e.X,
		d.Y, -e.Y,
	})
	if det := mat.Det(a); math.Abs(det) < parallelEpsilon {
		return 0, 0, geometryf("ray is parallel to the facet (determinant %g)", det)
	}
	b := mat.NewVecDense(2, []float64{q.X - p.X, q.Y - p.Y})
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return 0, 0, geometryf("solving facet intersection: %v", err)
	}
	return x.AtVec(0), x.AtVec(1), nil
}

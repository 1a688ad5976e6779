package optics

// Branch is the position, direction and weight of one sub-ray at one axial location
type Branch struct {
	X float64
	Y float64
	// Tangent of the angle between the branch and the optical axis
	Slope     float64
	Amplitude float64
}

// RayState is one snapshot of a ray.
//
// Primary carries the transmitted light. Secondary carries the Fresnel-reflected light that
// is split off at every dielectric interface.
type RayState struct {
	Primary   Branch
	Secondary Branch
}

// Record flattens the state to (x, y, slope, amplitude, x2, y2, slope2, amplitude2)
func (s RayState) Record() [8]float64 {
	return [8]float64{
		s.Primary.X, s.Primary.Y, s.Primary.Slope, s.Primary.Amplitude,
		s.Secondary.X, s.Secondary.Y, s.Secondary.Slope, s.Secondary.Amplitude,
	}
}

func (s RayState) finite() bool {
	r := s.Record()
	return finite(r[:]...)
}

// Trace is the history of a ray: the initial state and one state per element
type Trace []RayState

func (t Trace) Len() int {
	return len(t)
}

// Last returns the most recent state. It panics on an empty trace.
func (t Trace) Last() RayState {
	return t[len(t)-1]
}

func (t Trace) Records() [][8]float64 {
	records := make([][8]float64, len(t))
	for i, s := range t {
		records[i] = s.Record()
	}
	return records
}

// Direction is the axial sense a branch travels in
type Direction int

const (
	Forward Direction = iota
	Reflected
)

func (d Direction) String() string {
	if d == Reflected {
		return "reflected"
	}
	return "forward"
}

func (d Direction) sign() float64 {
	if d == Reflected {
		return -1
	}
	return 1
}

func (d Direction) reverse() Direction {
	if d == Reflected {
		return Forward
	}
	return Reflected
}

// SurfaceKind is the kind of the last dielectric surface a ray crossed
type SurfaceKind int

const (
	SurfaceNone SurfaceKind = iota
	SurfaceFlat
	SurfaceCurved
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceFlat:
		return "flat"
	case SurfaceCurved:
		return "curved"
	default:
		return "none"
	}
}

// PropagatorState is threaded through every transfer. Propagate integrates x with the sign of
// each branch's direction.
type PropagatorState struct {
	Primary   Direction
	Secondary Direction
	Surface   SurfaceKind
}

// CurvedHit reports whether the last interface was curved, i.e. whether the last recorded
// position was moved onto the true surface
func (s PropagatorState) CurvedHit() bool {
	return s.Surface == SurfaceCurved
}

// SecondaryMode chooses how the secondary branch starts
type SecondaryMode int

const (
	// The secondary branch starts as a copy of the primary
	SecondaryMirrorsPrimary SecondaryMode = iota
	// The secondary branch starts with every field zero and carries nothing until the first split
	SecondaryZeroed
)

// Weighting chooses the amplitude of a ray from its initial height
type Weighting int

const (
	WeightUniform Weighting = iota
	WeightGaussian
	WeightProfile
)

// AngleState is the (x, y, angle) record of the point-construction and prism tracers.
// Angle is in degrees from the horizontal.
type AngleState struct {
	X     float64
	Y     float64
	Angle float64
}

// PrismState is the (x, z, angle) record threaded through a prism
type PrismState = AngleState

func (s AngleState) Record() [3]float64 {
	return [3]float64{s.X, s.Y, s.Angle}
}

type AngleTrace []AngleState

func (t AngleTrace) Len() int {
	return len(t)
}

func (t AngleTrace) Last() AngleState {
	return t[len(t)-1]
}

func (t AngleTrace) Records() [][3]float64 {
	records := make([][3]float64, len(t))
	for i, s := range t {
		records[i] = s.Record()
	}
	return records
}

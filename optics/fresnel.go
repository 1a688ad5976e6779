package optics

import (
	"math"
)

// Indices is the refractive boundary a propagator applies at every dielectric interface
type Indices struct {
	Incident    float64
	Transmitted float64
}

// DefaultIndices is air into the reference glass
var DefaultIndices = Indices{Incident: N_AIR, Transmitted: N_GLASS}

func (n Indices) validate() error {
	if !(n.Incident > 0) || !(n.Transmitted > 0) || !finite(n.Incident, n.Transmitted) {
		return invalidf("refractive indices must be positive, got (%g, %g)", n.Incident, n.Transmitted)
	}
	return nil
}

// Ratio is n1/n2
func (n Indices) Ratio() float64 {
	return n.Incident / n.Transmitted
}

// CriticalAngle returns the incidence in degrees above which light going from the transmitted
// medium back into the incident one is totally reflected
func (n Indices) CriticalAngle() float64 {
	if n.Incident >= n.Transmitted {
		return 90
	}
	return toDeg(math.Asin(n.Ratio()))
}

// Reflectance is the Fresnel reflectance of a ray with the given slope crossing from n1 into n2.
//
// It returns ErrOpticalRegime when no transmitted ray exists.
func Reflectance(slope float64, n Indices) (float64, error) {
	thetaI := math.Atan(slope)
	sinT := n.Ratio() * math.Sin(thetaI)
	if sinT*sinT > 1 {
		return 0, regimef("total internal reflection at incidence %.3f deg for indices (%g, %g)",
			toDeg(thetaI), n.Incident, n.Transmitted)
	}
	cosT := math.Sqrt(1 - sinT*sinT)
	cosI := math.Cos(thetaI)
	r := (n.Incident*cosT - n.Transmitted*cosI) / (n.Incident*cosT + n.Transmitted*cosI)
	return math.Abs(r) * math.Abs(r), nil
}

// Transmittance is 1 - Reflectance
func Transmittance(slope float64, n Indices) (float64, error) {
	r, err := Reflectance(slope, n)
	if err != nil {
		return 0, err
	}
	return 1 - r, nil
}

package optics

import (
	"math"
)

// Refractive indices of air and of the reference glass
const (
	N_AIR   = 1.0
	N_GLASS = 1.5
)

func toRad(deg float64) float64 {
	return deg / 180 * math.Pi
}

func toDeg(rad float64) float64 {
	return rad / math.Pi * 180
}

// SlopeFromAngle converts an angle from the optical axis in degrees to a slope
func SlopeFromAngle(deg float64) float64 {
	return math.Tan(toRad(deg))
}

// AngleFromSlope converts a slope to an angle from the optical axis in degrees
func AngleFromSlope(slope float64) float64 {
	return toDeg(math.Atan(slope))
}

// Gaussian is the unit normal density, used to weight the rays of a bundle by their height
func Gaussian(y float64) float64 {
	return 1 / math.Sqrt(2*math.Pi) * math.Exp(-y*y/2)
}

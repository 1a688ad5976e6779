package optics

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter is returned for element parameters no transfer can use:
	// a zero focal length, a non-positive radius, an angle below the validity floor.
	ErrInvalidParameter = errors.New("optics: invalid parameter")

	// ErrGeometry is returned when a ray cannot be placed on a surface: the ray misses a
	// curved surface, a facet system is degenerate, or internal reflection never ends.
	ErrGeometry = errors.New("optics: geometry error")

	// ErrOpticalRegime is returned when the Fresnel terms are evaluated outside their domain,
	// i.e. the incidence requires total internal reflection and the caller did not enable it.
	ErrOpticalRegime = errors.New("optics: optical regime error")
)

// TraceError records where in an element sequence a ray's trace stopped
type TraceError struct {
	// Starting height of the ray. Bundle tracing replaces it with the ray's offset in the bundle.
	Ray float64
	// Name of the element that failed
	Element string
	// Position of the element in the sequence
	Index int
	Err   error
}

func (e *TraceError) Error() string {
	return fmt.Sprintf("ray %g: element %d (%s): %v", e.Ray, e.Index, e.Element, e.Err)
}

func (e *TraceError) Unwrap() error {
	return e.Err
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func geometryf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGeometry, fmt.Sprintf(format, args...))
}

func regimef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrOpticalRegime, fmt.Sprintf(format, args...))
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

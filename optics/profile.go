package optics

import (
	"sort"

	lin "github.com/sgreben/piecewiselinear"
)

// BeamProfile is a tabulated amplitude profile across the height of a bundle
type BeamProfile struct {
	f lin.Function
}

// NewBeamProfile builds a profile from a map of ray height to amplitude.
//
// Amplitudes between samples are interpolated linearly. Heights outside the sampled range get
// the amplitude of the nearest sample.
func NewBeamProfile(samples map[float64]float64) (*BeamProfile, error) {
	if len(samples) < 2 {
		return nil, invalidf("beam profile needs at least 2 samples, got %d", len(samples))
	}
	ys := make([]float64, 0, len(samples))
	for y, w := range samples {
		if w < 0 || !finite(y, w) {
			return nil, invalidf("beam profile sample %g: amplitude %g", y, w)
		}
		ys = append(ys, y)
	}
	sort.Float64s(ys)
	ws := make([]float64, len(ys))
	for i, y := range ys {
		ws[i] = samples[y]
	}
	return &BeamProfile{f: lin.Function{X: ys, Y: ws}}, nil
}

func (p *BeamProfile) At(y float64) float64 {
	xs := p.f.X
	if y <= xs[0] {
		return p.f.Y[0]
	}
	if y >= xs[len(xs)-1] {
		return p.f.Y[len(xs)-1]
	}
	return p.f.At(y)
}

// Span returns the lowest and highest sampled heights
func (p *BeamProfile) Span() (float64, float64) {
	return p.f.X[0], p.f.X[len(p.f.X)-1]
}

package config

import (
	"fmt"

	"github.com/jdginn/go-ray-optics/optics"
)

// Defaults for the output section
const (
	DefaultWidth     = 1200
	DefaultHeight    = 600
	DefaultThickness = 3
)

// Indices returns the medium's indices, falling back to air into glass for either one left unset
func (c *BenchConfig) Indices() optics.Indices {
	n := optics.DefaultIndices
	if c.Medium.IncidentIndex != 0 {
		n.Incident = c.Medium.IncidentIndex
	}
	if c.Medium.TransmittedIndex != 0 {
		n.Transmitted = c.Medium.TransmittedIndex
	}
	return n
}

// Params builds the slope-form propagator parameters
func (c *BenchConfig) Params() (optics.Params, error) {
	params := optics.DefaultParams()
	params.Indices = c.Indices()
	params.TotalInternalReflection = c.Geometry.TotalInternalReflection

	switch c.Ray.Weighting {
	case "uniform":
		params.Weighting = optics.WeightUniform
	case "", "gaussian":
		params.Weighting = optics.WeightGaussian
	case "profile":
		profile, err := optics.NewBeamProfile(c.Ray.Profile.Inline)
		if err != nil {
			return optics.Params{}, fmt.Errorf("building beam profile: %w", err)
		}
		params.Weighting = optics.WeightProfile
		params.Profile = profile
	default:
		return optics.Params{}, fmt.Errorf("unknown weighting '%s'", c.Ray.Weighting)
	}

	switch c.Ray.Secondary {
	case "", "mirror":
		params.Secondary = optics.SecondaryMirrorsPrimary
	case "zero":
		params.Secondary = optics.SecondaryZeroed
	default:
		return optics.Params{}, fmt.Errorf("unknown secondary mode '%s'", c.Ray.Secondary)
	}

	switch c.Geometry.AxisConvention {
	case "", "optical":
		params.Convention = optics.AxisOptical
	case "transverse":
		params.Convention = optics.AxisTransverse
	default:
		return optics.Params{}, fmt.Errorf("unknown axis convention '%s'", c.Geometry.AxisConvention)
	}

	return params, nil
}

// AngleParams builds the parameters of the point-construction and prism tracers
func (c *BenchConfig) AngleParams() optics.AngleParams {
	params := optics.DefaultAngleParams()
	params.Indices = c.Indices()
	params.SingularTolerance = c.Geometry.SingularTolerance
	if c.Geometry.MaxBounces != nil {
		params.MaxBounces = *c.Geometry.MaxBounces
	}
	if c.Geometry.MinPrismAngleDeg != nil {
		params.MinAngle = *c.Geometry.MinPrismAngleDeg
	}
	return params
}

// Elements builds the slope-form element sequence
func (c *BenchConfig) Elements() ([]optics.Element, error) {
	elements := make([]optics.Element, 0, len(c.ElementList))
	for i, e := range c.ElementList {
		switch e.Type {
		case ElementSpace:
			elements = append(elements, optics.Space{D: e.D})
		case ElementLens:
			elements = append(elements, optics.ThinLens{F: e.F})
		case ElementMirror:
			elements = append(elements, optics.Mirror{})
		case ElementFlatInterface:
			elements = append(elements, optics.FlatSurface{})
		case ElementCurvedInterface:
			elements = append(elements, optics.CurvedSurface{R: e.R})
		default:
			return nil, fmt.Errorf("element %d: '%s' is not an abcd element", i, e.Type)
		}
	}
	return elements, nil
}

// AngleElements builds the angle-form element sequence
func (c *BenchConfig) AngleElements() ([]optics.AngleElement, error) {
	elements := make([]optics.AngleElement, 0, len(c.ElementList))
	for i, e := range c.ElementList {
		switch e.Type {
		case ElementPointLens:
			elements = append(elements, optics.PointLens{F: e.F, Position: e.Position})
		case ElementMirrorAt:
			elements = append(elements, optics.MirrorAt{Position: e.Position})
		case ElementPrism:
			elements = append(elements, optics.Prism{SideLength: e.SideLength, Center: e.Center})
		default:
			return nil, fmt.Errorf("element %d: '%s' is not an angle element", i, e.Type)
		}
	}
	return elements, nil
}

// BundleSpec returns the bundle to trace. A config with no rays traces the central ray alone.
func (c *BenchConfig) BundleSpec() optics.Bundle {
	if c.Bundle.Rays == 0 {
		return optics.Bundle{Rays: 1}
	}
	return optics.Bundle{HalfWidth: c.Bundle.HalfWidth, Rays: c.Bundle.Rays}
}

// Start returns the initial slope-form ray at a bundle offset. A ray given by angle_deg alone is
// converted to a slope.
func (c *BenchConfig) Start() func(offset float64) optics.InitialRay {
	return func(offset float64) optics.InitialRay {
		if c.Ray.Slope == 0 && c.Ray.AngleDeg != 0 {
			return optics.InitialRayFromAngle(c.Ray.X, c.Ray.Y+offset, c.Ray.AngleDeg)
		}
		return optics.InitialRay{X: c.Ray.X, Y: c.Ray.Y + offset, Slope: c.Ray.Slope}
	}
}

// AngleStart returns the initial angle-form ray at a bundle offset
func (c *BenchConfig) AngleStart() func(offset float64) optics.AngleState {
	return func(offset float64) optics.AngleState {
		return optics.AngleState{X: c.Ray.X, Y: c.Ray.Y + offset, Angle: c.Ray.AngleDeg}
	}
}

// OutputSize returns the image size and line thickness, with defaults for unset values
func (c *BenchConfig) OutputSize() (width, height int, thickness float64) {
	width, height, thickness = c.Output.Width, c.Output.Height, c.Output.Thickness
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if thickness == 0 {
		thickness = DefaultThickness
	}
	return width, height, thickness
}

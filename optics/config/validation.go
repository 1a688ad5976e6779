package config

import (
	"fmt"
	"sort"
	"strings"
)

func validatePositive(field string, value float64) []ValidationError {
	if value <= 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateNonZero(field string, value float64) []ValidationError {
	if value == 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-zero",
		}}
	}
	return nil
}

func validateAngleRange(field string, angle float64) []ValidationError {
	if angle < -180 || angle > 180 {
		return []ValidationError{{
			Field:   field,
			Message: "angle must be between -180 and 180 degrees",
		}}
	}
	return nil
}

func validateOneOf(field, value string, allowed ...string) []ValidationError {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return []ValidationError{{
		Field:   field,
		Message: fmt.Sprintf("must be one of %s, got '%s'", strings.Join(allowed, ", "), value),
	}}
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors groups errors by their top-level section for display
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	categories := map[string][]ValidationError{}
	var order []string
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		if _, seen := categories[category]; !seen {
			order = append(order, category)
		}
		categories[category] = append(categories[category], err)
	}
	sort.Strings(order)

	for _, category := range order {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categories[category] {
			// Remove category prefix from field for cleaner display
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration
func (c *BenchConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateOneOf("family", c.Family, FamilyABCD, FamilyAngle)...)
	errors = append(errors, c.Medium.Validate()...)
	errors = append(errors, c.Ray.Validate()...)
	if c.Family == FamilyABCD {
		errors = append(errors, c.Ray.validateSlopeForm()...)
	}
	errors = append(errors, c.Bundle.Validate()...)
	errors = append(errors, c.Geometry.Validate()...)
	errors = append(errors, c.validateElements()...)
	errors = append(errors, c.Output.Validate()...)
	return errors
}

func (m *Medium) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateNonNegative("medium.incident_index", m.IncidentIndex)...)
	errors = append(errors, validateNonNegative("medium.transmitted_index", m.TransmittedIndex)...)
	return errors
}

func (r *Ray) Validate() []ValidationError {
	var errors []ValidationError

	if r.Weighting != "" {
		errors = append(errors, validateOneOf("ray.weighting", r.Weighting, "uniform", "gaussian", "profile")...)
	}
	if r.Secondary != "" {
		errors = append(errors, validateOneOf("ray.secondary", r.Secondary, "mirror", "zero")...)
	}
	errors = append(errors, validateAngleRange("ray.angle_deg", r.AngleDeg)...)

	if r.Weighting == "profile" && len(r.Profile.Inline) < 2 && r.Profile.FromFile == "" {
		errors = append(errors, ValidationError{
			Field:   "ray.profile",
			Message: "profile weighting needs at least 2 inline samples or a from_file",
		})
	}
	for y, w := range r.Profile.Inline {
		errors = append(errors, validateNonNegative(fmt.Sprintf("ray.profile.inline.%g", y), w)...)
	}

	return errors
}

// validateSlopeForm checks that a slope-form ray gives its direction once, and as an angle the
// slope can represent
func (r *Ray) validateSlopeForm() []ValidationError {
	var errors []ValidationError
	if r.Slope != 0 && r.AngleDeg != 0 {
		errors = append(errors, ValidationError{
			Field:   "ray.angle_deg",
			Message: "set either slope or angle_deg, not both",
		})
	}
	if r.AngleDeg <= -90 || r.AngleDeg >= 90 {
		errors = append(errors, ValidationError{
			Field:   "ray.angle_deg",
			Message: "must be strictly between -90 and 90 degrees for an abcd bench",
		})
	}
	return errors
}

func (b *Bundle) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateNonNegative("bundle.rays", float64(b.Rays))...)
	errors = append(errors, validateNonNegative("bundle.half_width", b.HalfWidth)...)
	errors = append(errors, validateNonNegative("bundle.workers", float64(b.Workers))...)
	return errors
}

func (g *Geometry) Validate() []ValidationError {
	var errors []ValidationError
	if g.AxisConvention != "" {
		errors = append(errors, validateOneOf("geometry.axis_convention", g.AxisConvention, "optical", "transverse")...)
	}
	errors = append(errors, validateNonNegative("geometry.singular_tolerance", g.SingularTolerance)...)
	if g.MaxBounces != nil {
		errors = append(errors, validateNonNegative("geometry.max_bounces", float64(*g.MaxBounces))...)
	}
	if g.MinPrismAngleDeg != nil {
		errors = append(errors, validateAngleRange("geometry.min_prism_angle_deg", *g.MinPrismAngleDeg)...)
	}
	return errors
}

var familyElements = map[string][]string{
	FamilyABCD:  {ElementSpace, ElementLens, ElementMirror, ElementFlatInterface, ElementCurvedInterface},
	FamilyAngle: {ElementPointLens, ElementMirrorAt, ElementPrism},
}

func (c *BenchConfig) validateElements() []ValidationError {
	var errors []ValidationError

	if len(c.ElementList) == 0 {
		errors = append(errors, ValidationError{
			Field:   "elements",
			Message: "at least one element is required",
		})
		return errors
	}

	for i, e := range c.ElementList {
		field := fmt.Sprintf("elements.%d", i)
		if allowed, ok := familyElements[c.Family]; ok {
			if errs := validateOneOf(field+".type", e.Type, allowed...); errs != nil {
				errors = append(errors, errs...)
				continue
			}
		}
		switch e.Type {
		case ElementLens, ElementPointLens:
			errors = append(errors, validateNonZero(field+".f", e.F)...)
		case ElementCurvedInterface:
			errors = append(errors, validatePositive(field+".r", e.R)...)
		case ElementPrism:
			errors = append(errors, validatePositive(field+".side_length", e.SideLength)...)
		}
	}

	return errors
}

func (o *Output) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateNonNegative("output.width", float64(o.Width))...)
	errors = append(errors, validateNonNegative("output.height", float64(o.Height))...)
	errors = append(errors, validateNonNegative("output.thickness", o.Thickness)...)
	return errors
}

package config

// BenchConfig describes an optical bench: the ray or bundle to launch, the medium, and the
// elements it passes through
type BenchConfig struct {
	Metadata    Metadata  `yaml:"metadata"`
	Medium      Medium    `yaml:"medium"`
	Ray         Ray       `yaml:"ray"`
	Bundle      Bundle    `yaml:"bundle"`
	Geometry    Geometry  `yaml:"geometry"`
	Family      string    `yaml:"family"` // abcd or angle
	ElementList []Element `yaml:"elements"`
	Output      Output    `yaml:"output"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

// Medium holds the refractive indices at every interface. Zero means the default.
type Medium struct {
	IncidentIndex    float64 `yaml:"incident_index,omitempty"`
	TransmittedIndex float64 `yaml:"transmitted_index,omitempty"`
}

// Ray is the central ray of the bundle. Bundle offsets are added to Y.
type Ray struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Slope    float64 `yaml:"slope"`     // abcd family
	AngleDeg float64 `yaml:"angle_deg"` // angle family, or abcd when slope is unset
	// uniform, gaussian or profile
	Weighting string `yaml:"weighting,omitempty"`
	// mirror or zero
	Secondary string  `yaml:"secondary,omitempty"`
	Profile   Profile `yaml:"profile,omitempty"`
}

type Profile struct {
	Inline   map[float64]float64 `yaml:"inline,omitempty"` // height -> amplitude
	FromFile string              `yaml:"from_file,omitempty"`
}

type Bundle struct {
	HalfWidth float64 `yaml:"half_width"`
	Rays      int     `yaml:"rays"`
	Workers   int     `yaml:"workers,omitempty"`
}

type Geometry struct {
	AxisConvention          string   `yaml:"axis_convention,omitempty"` // optical or transverse
	SingularTolerance       float64  `yaml:"singular_tolerance,omitempty"`
	MaxBounces              *int     `yaml:"max_bounces,omitempty"`
	MinPrismAngleDeg        *float64 `yaml:"min_prism_angle_deg,omitempty"`
	TotalInternalReflection bool     `yaml:"total_internal_reflection,omitempty"`
}

// Element is one entry of the bench. Which fields apply depends on Type.
type Element struct {
	Type       string  `yaml:"type"`
	D          float64 `yaml:"d,omitempty"`           // space
	F          float64 `yaml:"f,omitempty"`           // lens, point_lens
	R          float64 `yaml:"r,omitempty"`           // curved_interface
	Position   float64 `yaml:"position,omitempty"`    // point_lens, mirror_at
	SideLength float64 `yaml:"side_length,omitempty"` // prism
	Center     float64 `yaml:"center,omitempty"`      // prism
}

type Output struct {
	Diagram   string  `yaml:"diagram,omitempty"` // PNG path
	Plot      string  `yaml:"plot,omitempty"`    // gonum/plot path, format from the extension
	Width     int     `yaml:"width,omitempty"`
	Height    int     `yaml:"height,omitempty"`
	Thickness float64 `yaml:"thickness,omitempty"`
}

const (
	FamilyABCD  = "abcd"
	FamilyAngle = "angle"
)

const (
	ElementSpace           = "space"
	ElementLens            = "lens"
	ElementMirror          = "mirror"
	ElementFlatInterface   = "flat_interface"
	ElementCurvedInterface = "curved_interface"
	ElementPointLens       = "point_lens"
	ElementMirrorAt        = "mirror_at"
	ElementPrism           = "prism"
)

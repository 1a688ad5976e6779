package experiment

import (
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"bright", "dim", "clear", "frosted", "polished", "coated", "tinted", "silvered",
		"oblique", "normal", "grazing", "paraxial", "marginal", "skew", "sagittal",
		"convex", "concave", "plano", "achromatic", "chromatic", "dispersive", "amber",
		"violet", "crimson", "golden", "infrared", "ultraviolet", "faint", "sharp",
		"blurred", "focused", "scattered", "glinting", "shimmering", "steady", "hazy",
		"crystal", "quartz", "flint", "crown", "thin", "thick", "bent", "straight",
	}

	nouns = []string{
		"prism", "lens", "mirror", "beam", "ray", "pupil", "aperture", "focus",
		"image", "caustic", "fringe", "rainbow", "spectrum", "photon", "halo",
		"glint", "shadow", "facet", "apex", "vertex", "axis", "plane", "wave",
		"refraction", "reflection", "meniscus", "doublet", "triplet", "retina",
		"lantern", "lighthouse", "sunbeam", "moonbeam", "starlight", "candle", "mirage",
	}
)

// GenerateExperimentName creates a memorable identifier in the format "adjective-noun"
func GenerateExperimentName() string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return adjectives[r.Intn(len(adjectives))] + "-" + nouns[r.Intn(len(nouns))]
}

// GenerateExperimentID combines the memorable name with a timestamp
func GenerateExperimentID() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return GenerateExperimentName() + "-" + timestamp
}

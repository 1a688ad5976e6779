package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// MergeProfile merges beam profile samples from a JSON file with the inline samples.
//
// The file maps heights, written as strings, to amplitudes: {"-1": 0.2, "0": 1, "1": 0.2}.
func (p *Profile) MergeProfile() error {
	if p.FromFile == "" {
		return nil
	}

	data, err := os.ReadFile(p.FromFile)
	if err != nil {
		return fmt.Errorf("reading profile file: %w", err)
	}

	var fileSamples map[string]float64
	if err := json.Unmarshal(data, &fileSamples); err != nil {
		return fmt.Errorf("parsing profile file: %w", err)
	}

	if p.Inline == nil {
		p.Inline = make(map[float64]float64)
	}

	// Inline samples take precedence
	for key, amplitude := range fileSamples {
		y, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return fmt.Errorf("parsing profile height %q: %w", key, err)
		}
		if _, exists := p.Inline[y]; !exists {
			p.Inline[y] = amplitude
		}
	}

	return nil
}

// LoadAndMerge loads all external files and merges their contents
func (c *BenchConfig) LoadAndMerge() error {
	if err := c.Ray.Profile.MergeProfile(); err != nil {
		return fmt.Errorf("merging beam profile: %w", err)
	}
	return nil
}

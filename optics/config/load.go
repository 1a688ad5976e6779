package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of config loading
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
	MergeFiles          bool
}

// LoadFromFile loads a BenchConfig from a YAML file
func LoadFromFile(path string, opts LoadOptions) (*BenchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if opts.ResolvePaths {
		resolver := NewPathResolver(filepath.Dir(path))
		if err := config.ResolvePaths(resolver); err != nil {
			return nil, fmt.Errorf("resolving paths: %w", err)
		}
	}

	if opts.MergeFiles {
		if err := config.LoadAndMerge(); err != nil {
			return nil, fmt.Errorf("merging external files: %w", err)
		}
	}

	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("validation errors: %v", errs)
		}
	}

	return config, nil
}

// Parse decodes a bench from YAML without touching the filesystem
func Parse(data []byte) (*BenchConfig, error) {
	config := &BenchConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// SaveToFile saves a BenchConfig to a YAML file, stamping it with the current time and commit
func SaveToFile(config *BenchConfig, path string) error {
	NewMetadataCollector().PopulateMetadata(config)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ResolvePaths makes every relative path in the config relative to the resolver's base directory
func (c *BenchConfig) ResolvePaths(resolver *PathResolver) error {
	if c.Ray.Profile.FromFile != "" {
		c.Ray.Profile.FromFile = resolver.ResolvePath(c.Ray.Profile.FromFile)
	}
	if c.Output.Diagram != "" {
		c.Output.Diagram = resolver.ResolvePath(c.Output.Diagram)
	}
	if c.Output.Plot != "" {
		c.Output.Plot = resolver.ResolvePath(c.Output.Plot)
	}
	return nil
}

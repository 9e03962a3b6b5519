// Package models defines data structures for configuration and run results.
package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultParallelism   = 4
	DefaultInputFile     = "test_in.txt"
	DefaultOutputFile    = "test_out.txt"
	DefaultMaxWordLength = 64
)

// CountConfig holds runtime configuration for a count run.
// Values come from an optional YAML file, then CLI flags override them.
type CountConfig struct {
	InputPath     string `yaml:"input" json:"input"`
	OutputPath    string `yaml:"output" json:"output"`
	Parallelism   int    `yaml:"parallelism" json:"parallelism"`
	MaxWordLength int    `yaml:"max_word_length" json:"max_word_length"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() *CountConfig {
	return &CountConfig{
		InputPath:     DefaultInputFile,
		OutputPath:    DefaultOutputFile,
		Parallelism:   DefaultParallelism,
		MaxWordLength: DefaultMaxWordLength,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// A missing file is not an error; the defaults are returned.
func LoadConfig(path string) (*CountConfig, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// Validate checks the values the core consumes.
func (c *CountConfig) Validate() error {
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidParallelism, c.Parallelism)
	}
	if c.MaxWordLength < 1 {
		return fmt.Errorf("max word length must be at least one: got %d", c.MaxWordLength)
	}
	if c.InputPath == "" {
		return errors.New("input path is required")
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	return nil
}

// Package config loads and validates the construction-time configuration for
// an optimization run: the objective set, directions, reference point and
// frontier bounds.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/XiaoConstantine/pareto-go/pkg/core"
	"github.com/XiaoConstantine/pareto-go/pkg/errors"
	"github.com/XiaoConstantine/pareto-go/pkg/frontier"
)

// RunConfig is the recognized option set for one optimization run.
type RunConfig struct {
	// Ordered objective names.
	Objectives []string `yaml:"objectives" validate:"required,min=1,dive,required"`

	// Per-objective optimization direction.
	ObjectiveDirections map[string]string `yaml:"objective_directions" validate:"required"`

	// Hypervolume integration boundary, one value per objective.
	ReferencePoint map[string]float64 `yaml:"reference_point" validate:"required"`

	// Frontier bounds.
	MaxSize        int `yaml:"max_size,omitempty" validate:"omitempty,min=1"`
	MaxArchiveSize int `yaml:"max_archive_size,omitempty" validate:"omitempty,min=1"`

	// Margin subtracted below the observed minimum by automatic reference
	// point selection.
	Margin float64 `yaml:"margin,omitempty" validate:"omitempty,min=0"`

	// Logging severity: DEBUG, INFO, WARN, ERROR or FATAL.
	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=DEBUG INFO WARN ERROR FATAL"`

	// Path for the SQLite archive store; empty disables persistence.
	ArchiveDBPath string `yaml:"archive_db_path,omitempty"`
}

// DefaultRunConfig returns a config with the default bounds filled in and no
// objectives; callers must supply the objective set.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		MaxSize:        frontier.DefaultMaxSize,
		MaxArchiveSize: frontier.DefaultMaxArchiveSize,
		Margin:         0.1,
		LogLevel:       "INFO",
	}
}

// Load reads a YAML run configuration from path, applies defaults for unset
// bounds and validates it.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, errors.Wrap(err, errors.InvalidInput, "failed to read config file")
	}
	return Parse(data)
}

// Parse decodes a YAML run configuration, applies defaults for unset bounds
// and validates it.
func Parse(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, errors.Wrap(err, errors.InvalidInput, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// ObjectiveSpec converts the configured objectives and directions.
func (c RunConfig) ObjectiveSpec() core.ObjectiveSpec {
	directions := make(map[string]core.Direction, len(c.ObjectiveDirections))
	for name, direction := range c.ObjectiveDirections {
		directions[name] = core.Direction(direction)
	}
	return core.ObjectiveSpec{
		Objectives: c.Objectives,
		Directions: directions,
	}
}

// Reference converts the configured reference point.
func (c RunConfig) Reference() core.ReferencePoint {
	reference := make(core.ReferencePoint, len(c.ReferencePoint))
	for name, value := range c.ReferencePoint {
		reference[name] = value
	}
	return reference
}

// FrontierOptions converts the configured frontier bounds.
func (c RunConfig) FrontierOptions() frontier.Options {
	return frontier.Options{
		MaxSize:        c.MaxSize,
		MaxArchiveSize: c.MaxArchiveSize,
	}
}

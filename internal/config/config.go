// Package config loads the knobs for a loss verification run.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the parameters of a check run.
type Config struct {
	Seed          int64   `yaml:"seed"`
	Examples      int     `yaml:"examples"`
	Dims          int     `yaml:"dims"`
	Classes       int     `yaml:"classes"`
	Reg           float64 `yaml:"reg"`
	WeightScale   float64 `yaml:"weight_scale"`
	Tolerance     float64 `yaml:"tolerance"`
	GradTolerance float64 `yaml:"grad_tolerance"`
	GradChecks    int     `yaml:"grad_checks"`
	GradStep      float64 `yaml:"grad_step"`
	DescentRate   float64 `yaml:"descent_rate"`
	LogLevel      string  `yaml:"log_level"`
	LogFormat     string  `yaml:"log_format"`
}

// Default returns a small problem with the usual check tolerances.
func Default() Config {
	return Config{
		Seed:          1,
		Examples:      50,
		Dims:          20,
		Classes:       10,
		Reg:           0.1,
		WeightScale:   0.001,
		Tolerance:     1e-7,
		GradTolerance: 1e-2,
		GradChecks:    10,
		GradStep:      1e-5,
		DescentRate:   1e-3,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Overrides captures CLI supplied values. Nil fields are left untouched.
type Overrides struct {
	Seed      *int64
	Examples  *int
	Dims      *int
	Classes   *int
	Reg       *float64
	LogLevel  *string
	LogFormat *string
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyOverrides updates c with every non-nil override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.Examples != nil {
		c.Examples = *o.Examples
	}
	if o.Dims != nil {
		c.Dims = *o.Dims
	}
	if o.Classes != nil {
		c.Classes = *o.Classes
	}
	if o.Reg != nil {
		c.Reg = *o.Reg
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogFormat != nil {
		c.LogFormat = *o.LogFormat
	}
}

// Validate verifies the config describes a runnable check.
func (c Config) Validate() error {
	var errs []error
	if c.Examples <= 0 {
		errs = append(errs, errors.New("examples must be > 0"))
	}
	if c.Dims <= 0 {
		errs = append(errs, errors.New("dims must be > 0"))
	}
	if c.Classes < 2 {
		errs = append(errs, errors.New("classes must be >= 2"))
	}
	if c.Reg < 0 {
		errs = append(errs, errors.New("reg must be >= 0"))
	}
	if c.Tolerance <= 0 || c.GradTolerance <= 0 {
		errs = append(errs, errors.New("tolerances must be > 0"))
	}
	if c.GradChecks < 0 {
		errs = append(errs, errors.New("grad_checks must be >= 0"))
	}
	if c.GradStep <= 0 {
		errs = append(errs, errors.New("grad_step must be > 0"))
	}
	if c.DescentRate <= 0 {
		errs = append(errs, errors.New("descent_rate must be > 0"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log_format %q", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

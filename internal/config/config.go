package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config captures the runtime knobs for a fitting run.
type Config struct {
	DataPath     string  `yaml:"data_path"`
	LearningRate float64 `yaml:"learning_rate"`
	Iterations   int     `yaml:"iterations"`
	InitialB     float64 `yaml:"initial_b"`
	InitialM     float64 `yaml:"initial_m"`
	LogEvery     int     `yaml:"log_every"`
	LogLevel     string  `yaml:"log_level"`
	Reference    bool    `yaml:"reference"`
}

// Overrides captures CLI supplied values. A nil field was not set.
type Overrides struct {
	DataPath     *string
	LearningRate *float64
	Iterations   *int
	InitialB     *float64
	InitialM     *float64
	LogEvery     *int
	LogLevel     *string
	Reference    *bool
}

// ErrInvalidArgument reports a config field holding an unusable value.
type ErrInvalidArgument struct {
	Name    string
	Value   interface{}
	Message string
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %v is invalid for field %q", err.Value, err.Name)
	}
	return fmt.Sprintf("value %v is invalid for field %q; %s", err.Value, err.Name, err.Message)
}

// Default returns the stock run: data.csv, starting from (0, 0) with a
// learning rate of 0.0001 for 1000 iterations.
func Default() *Config {
	return &Config{
		DataPath:     "data.csv",
		LearningRate: 0.0001,
		Iterations:   1000,
		LogEvery:     100,
		LogLevel:     "info",
	}
}

// Load reads a Config from YAML on top of Default and validates it.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg := Default()
	if err := yaml.UnmarshalStrict(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates c using every override that was set.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataPath != nil {
		c.DataPath = *o.DataPath
	}
	if o.LearningRate != nil {
		c.LearningRate = *o.LearningRate
	}
	if o.Iterations != nil {
		c.Iterations = *o.Iterations
	}
	if o.InitialB != nil {
		c.InitialB = *o.InitialB
	}
	if o.InitialM != nil {
		c.InitialM = *o.InitialM
	}
	if o.LogEvery != nil {
		c.LogEvery = *o.LogEvery
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.Reference != nil {
		c.Reference = *o.Reference
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DataPath == "" {
		return errors.WithStack(&ErrInvalidArgument{
			Name:    "data_path",
			Value:   c.DataPath,
			Message: "must not be empty",
		})
	}
	if !(c.LearningRate > 0) {
		return errors.WithStack(&ErrInvalidArgument{
			Name:    "learning_rate",
			Value:   c.LearningRate,
			Message: "must be > 0",
		})
	}
	if c.Iterations < 0 {
		return errors.WithStack(&ErrInvalidArgument{
			Name:    "iterations",
			Value:   c.Iterations,
			Message: "must be >= 0",
		})
	}
	if c.LogEvery < 0 {
		return errors.WithStack(&ErrInvalidArgument{
			Name:    "log_every",
			Value:   c.LogEvery,
			Message: "must be >= 0",
		})
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.WithStack(&ErrInvalidArgument{
			Name:    "log_level",
			Value:   c.LogLevel,
			Message: err.Error(),
		})
	}
	return nil
}

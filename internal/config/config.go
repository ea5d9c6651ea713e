// Package config handles converter configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Faultbox/vmd-vrm/internal/clipfile"
)

// ErrInvalidWorkers is returned when convert.workers is negative.
var ErrInvalidWorkers = errors.New("workers must not be negative")

// Config holds all converter settings.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig holds retargeting settings.
type ConvertConfig struct {
	Workers  int    `yaml:"workers"`   // 0 = one per CPU, 1 = sequential
	ClipName string `yaml:"clip_name"` // empty = generated
}

// OutputConfig holds clip document settings.
type OutputConfig struct {
	Format string `yaml:"format"` // yaml or json
	Path   string `yaml:"path"`   // empty = stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			Workers:  1,
			ClipName: "",
		},
		Output: OutputConfig{
			Format: string(clipfile.YAML),
			Path:   "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if c.Convert.Workers < 0 {
		return fmt.Errorf("convert.workers %d: %w", c.Convert.Workers, ErrInvalidWorkers)
	}
	if _, err := clipfile.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	return nil
}

// Workers resolves convert.workers to an effective worker count.
func (c *Config) Workers() int {
	if c.Convert.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Convert.Workers
}

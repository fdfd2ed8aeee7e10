package config

import (
	"os"

	"github.com/anrid/eventlayout/pkg/layout"
	"github.com/anrid/eventlayout/pkg/render"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FormatAuto picks the table format on a terminal and JSON otherwise.
const FormatAuto = "auto"

// Config represents the top-level configuration structure.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Render RenderConfig `yaml:"render"`
	Output OutputConfig `yaml:"output"`
}

// LayoutConfig holds settings for column assignment.
type LayoutConfig struct {
	TotalWidth float64 `yaml:"total_width"` // Width shared by the columns of a cluster
}

// RenderConfig holds settings applied after layout.
type RenderConfig struct {
	Inset     float64 `yaml:"inset"`      // Border plus padding of each box
	BorderBox bool    `yaml:"border_box"` // Width and height include the inset
}

// OutputConfig controls how results are reported.
type OutputConfig struct {
	Format  string `yaml:"format"`  // "auto", "table", "json", "yaml" or "svg"
	File    string `yaml:"file"`    // Output file, stdout when empty
	Verbose bool   `yaml:"verbose"` // Debug logging
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{TotalWidth: layout.DefaultWidth},
		Render: RenderConfig{BorderBox: true},
		Output: OutputConfig{Format: FormatAuto},
	}
}

// LoadConfig reads a YAML configuration file from the specified path.
// Settings missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file: %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file: %s", path)
	}
	return cfg, nil
}

// Validate checks value ranges and the output format.
func (c *Config) Validate() error {
	if c.Layout.TotalWidth <= 0 {
		return errors.Errorf("layout.total_width must be positive, got %v", c.Layout.TotalWidth)
	}
	if c.Render.Inset < 0 {
		return errors.Errorf("render.inset must not be negative, got %v", c.Render.Inset)
	}
	if c.Output.Format != FormatAuto {
		if _, err := render.ParseFormat(c.Output.Format); err != nil {
			return err
		}
	}
	return nil
}

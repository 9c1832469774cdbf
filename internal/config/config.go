package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldgrad/internal/grid"
	"github.com/san-kum/fieldgrad/internal/sample"
)

const (
	DefaultStep    = 0.01
	DefaultZCount  = 301
	DefaultRCount  = 121
	DefaultZOffset = 2.0
	DefaultRebin   = 2
)

// DefaultSections are the radii (m) of the reference cross-section plots.
var DefaultSections = []float64{0.1, 0.2, 0.3, 0.4, 0.5}

// Config is the full run configuration as read from YAML.
type Config struct {
	Input    InputConfig `yaml:"input"`
	ZAxis    AxisConfig  `yaml:"z_axis"`
	RAxis    AxisConfig  `yaml:"r_axis"`
	Rounding string      `yaml:"rounding"`
	Sections []float64   `yaml:"sections"`
	Rebin    int         `yaml:"rebin"` // stored with each run as its plot downsampling
}

// InputConfig describes the table: which rows to keep and where each value lives.
type InputConfig struct {
	Selector  float64      `yaml:"selector"`
	MinFields int          `yaml:"min_fields"`
	Columns   ColumnConfig `yaml:"columns"`
}

// ColumnConfig holds 0-based column indexes.
type ColumnConfig struct {
	Selector int `yaml:"selector"`
	Z        int `yaml:"z"`
	R        int `yaml:"r"`
	Value    int `yaml:"value"`
}

// AxisConfig is the binning of one axis.
type AxisConfig struct {
	Count  int     `yaml:"count"`
	Step   float64 `yaml:"step"`
	Offset float64 `yaml:"offset"`
	Origin int     `yaml:"origin"`
}

func DefaultConfig() *Config {
	cols := sample.DefaultColumns()
	return &Config{
		Input: InputConfig{
			Selector:  sample.DefaultSelector,
			MinFields: sample.DefaultMinFields,
			Columns: ColumnConfig{
				Selector: cols.Selector,
				Z:        cols.Z,
				R:        cols.R,
				Value:    cols.Value,
			},
		},
		ZAxis: AxisConfig{
			Count:  DefaultZCount,
			Step:   DefaultStep,
			Offset: DefaultZOffset,
		},
		RAxis: AxisConfig{
			Count: DefaultRCount,
			Step:  DefaultStep,
		},
		Rounding: string(grid.HalfAwayFromZero),
		Sections: append([]float64(nil), DefaultSections...),
		Rebin:    DefaultRebin,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets and defaults are never shared.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Sections = append([]float64(nil), c.Sections...)
	return &cp
}

func (c *Config) Columns() sample.Columns {
	return sample.Columns{
		Selector: c.Input.Columns.Selector,
		Z:        c.Input.Columns.Z,
		R:        c.Input.Columns.R,
		Value:    c.Input.Columns.Value,
	}
}

func (c *Config) Reader() *sample.Reader {
	return sample.NewReader(c.Columns(), c.Input.Selector, c.Input.MinFields)
}

func (c *Config) Layout() grid.Layout {
	return grid.Layout{
		Z:        c.ZAxis.axis("z"),
		R:        c.RAxis.axis("r"),
		Rounding: grid.Rounding(c.Rounding),
	}
}

func (a AxisConfig) axis(name string) grid.Axis {
	return grid.Axis{Name: name, Count: a.Count, Step: a.Step, Offset: a.Offset, Origin: a.Origin}
}

func (c *Config) Validate() error {
	if err := c.Columns().Validate(); err != nil {
		return err
	}
	if err := c.Layout().Validate(); err != nil {
		return err
	}
	if c.ZAxis.Count < 2 {
		return fmt.Errorf("config: z_axis.count %d, need at least 2 to differentiate", c.ZAxis.Count)
	}
	if c.Rebin < 1 {
		return fmt.Errorf("config: rebin %d, must be positive", c.Rebin)
	}
	return nil
}

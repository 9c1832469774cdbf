// Package batch runs a list of field map tables described in a YAML file.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldgrad/internal/config"
	"github.com/san-kum/fieldgrad/internal/pipeline"
)

// Batch is a named sequence of tables. Preset applies to every step that
// does not name its own.
type Batch struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Preset      string `yaml:"preset"`
	Steps       []Step `yaml:"steps"`
}

// Step overrides the batch configuration for one table. Unset fields keep
// the preset values.
type Step struct {
	Table    string    `yaml:"table"`
	Preset   string    `yaml:"preset"`
	Selector *float64  `yaml:"selector"`
	Rounding string    `yaml:"rounding"`
	Sections []float64 `yaml:"sections"`
}

// Saver persists a result and returns its run ID.
type Saver interface {
	Save(res *pipeline.Result) (string, error)
}

type Outcome struct {
	Step   int
	Table  string
	RunID  string
	Result *pipeline.Result
}

// Load reads a batch file. Relative table paths are resolved against the
// directory of the batch file.
func Load(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	if len(b.Steps) == 0 {
		return nil, fmt.Errorf("batch %s has no steps", path)
	}

	dir := filepath.Dir(path)
	for i := range b.Steps {
		if b.Steps[i].Table == "" {
			return nil, fmt.Errorf("batch %s: step %d has no table", path, i+1)
		}
		if !filepath.IsAbs(b.Steps[i].Table) {
			b.Steps[i].Table = filepath.Join(dir, b.Steps[i].Table)
		}
	}

	return &b, nil
}

// Config resolves the configuration of step i.
func (b *Batch) Config(i int) (*config.Config, error) {
	if i < 0 || i >= len(b.Steps) {
		return nil, fmt.Errorf("step %d out of range [1, %d]", i+1, len(b.Steps))
	}
	step := b.Steps[i]

	cfg := config.DefaultConfig()
	name := step.Preset
	if name == "" {
		name = b.Preset
	}
	if name != "" {
		if cfg = config.GetPreset(name); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", name)
		}
	}

	if step.Selector != nil {
		cfg.Input.Selector = *step.Selector
	}
	if step.Rounding != "" {
		cfg.Rounding = step.Rounding
	}
	if step.Sections != nil {
		cfg.Sections = append([]float64(nil), step.Sections...)
	}

	return cfg, cfg.Validate()
}

// Run processes the steps in order and stops at the first failure,
// returning the outcomes completed so far. A nil saver skips storage.
func Run(ctx context.Context, b *Batch, saver Saver, logger *slog.Logger) ([]Outcome, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	outcomes := make([]Outcome, 0, len(b.Steps))
	for i, step := range b.Steps {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		logger.Info("batch step", "step", i+1, "of", len(b.Steps), "table", step.Table)

		cfg, err := b.Config(i)
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}

		p, err := pipeline.New(cfg, logger)
		if err != nil {
			return outcomes, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		res, err := p.Run(ctx, step.Table)
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := Outcome{Step: i + 1, Table: step.Table, Result: res}
		if saver != nil {
			if out.RunID, err = saver.Save(res); err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

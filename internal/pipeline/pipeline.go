// Package pipeline runs the field map stages in order: read the table,
// build the field grid, differentiate it along Z and cut cross-sections.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/fieldgrad/internal/config"
	"github.com/san-kum/fieldgrad/internal/grid"
	"github.com/san-kum/fieldgrad/internal/sample"
)

type Result struct {
	Source             string
	Rows               int
	Radii              []float64
	Rebin              int
	Stats              grid.BuildStats
	Field              *grid.Grid
	Derivative         *grid.Grid
	FieldSections      []grid.Section
	DerivativeSections []grid.Section
}

type Pipeline struct {
	reader   *sample.Reader
	cols     sample.Columns
	layout   grid.Layout
	sections []float64
	rebin    int
	log      *slog.Logger
}

// New validates cfg and captures a copy of it. A nil logger discards.
func New(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		reader:   cfg.Reader(),
		cols:     cfg.Columns(),
		layout:   cfg.Layout(),
		sections: append([]float64(nil), cfg.Sections...),
		rebin:    cfg.Rebin,
		log:      logger,
	}, nil
}

func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	p.log.Debug("reading table", "path", path)
	rows, err := p.reader.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.process(ctx, path, rows)
}

// RunReader is Run for an already open source; name is only recorded.
func (p *Pipeline) RunReader(ctx context.Context, src io.Reader, name string) (*Result, error) {
	rows, err := p.reader.Read(src)
	if err != nil {
		return nil, err
	}
	return p.process(ctx, name, rows)
}

func (p *Pipeline) process(ctx context.Context, source string, rows []sample.Row) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.log.Debug("rows kept", "count", len(rows))

	field, stats, err := grid.Build(Points(rows, p.cols), p.layout)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", source, err)
	}
	p.log.Debug("grid built",
		"cells", stats.Cells, "collisions", stats.Collisions, "empty", stats.Empty)
	if stats.Collisions > 0 {
		p.log.Info("samples shared bins, last value kept", "collisions", stats.Collisions)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deriv, err := grid.Differentiate(field)
	if err != nil {
		return nil, err
	}

	fs, err := field.Sections(p.sections)
	if err != nil {
		return nil, fmt.Errorf("field sections: %w", err)
	}
	ds, err := deriv.Sections(p.sections)
	if err != nil {
		return nil, fmt.Errorf("derivative sections: %w", err)
	}

	return &Result{
		Source:             source,
		Rows:               len(rows),
		Radii:              append([]float64(nil), p.sections...),
		Rebin:              p.rebin,
		Stats:              stats,
		Field:              field,
		Derivative:         deriv,
		FieldSections:      fs,
		DerivativeSections: ds,
	}, nil
}

// Points projects kept rows onto grid samples through cols.
func Points(rows []sample.Row, cols sample.Columns) []grid.Point {
	points := make([]grid.Point, len(rows))
	for i, row := range rows {
		z, r, v := cols.Split(row)
		points[i] = grid.Point{Line: row.Line, Z: z, R: r, Value: v}
	}
	return points
}

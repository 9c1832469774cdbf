package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/fieldgrad/internal/grid"
)

// ExportData is what external renderers consume: Z bin centers for both
// grids and their cross-sections.
type ExportData struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Z          []float64      `json:"z"`
	DerivZ     []float64      `json:"deriv_z"`
	Field      []grid.Section `json:"field"`
	Derivative []grid.Section `json:"derivative"`
}

// Sections loads the named grid of a run and cuts it at radii.
func (s *Store) Sections(runID, name string, radii []float64) ([]grid.Section, *grid.Grid, error) {
	g, err := s.LoadGrid(runID, name)
	if err != nil {
		return nil, nil, err
	}
	ss, err := g.Sections(radii)
	if err != nil {
		return nil, nil, err
	}
	return ss, g, nil
}

// ExportJSON writes the cross-sections of a run. A nil radii slice uses the
// radii recorded when the run was saved.
func (s *Store) ExportJSON(w io.Writer, runID string, radii []float64) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	if radii == nil {
		radii = meta.Sections
	}

	field, fg, err := s.Sections(runID, FieldGrid, radii)
	if err != nil {
		return err
	}
	deriv, dg, err := s.Sections(runID, DerivativeGrid, radii)
	if err != nil {
		return err
	}

	data := ExportData{
		ID:         meta.ID,
		Source:     meta.Source,
		Z:          fg.Layout().Z.Centers(),
		DerivZ:     dg.Layout().Z.Centers(),
		Field:      field,
		Derivative: deriv,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

package grid

import "gonum.org/v1/gonum/mat"

// Section is a copy of one fixed-R column of a grid, in increasing Z order.
type Section struct {
	R      float64   `json:"r"`
	Index  int       `json:"index"`
	Values []float64 `json:"values"`
}

// Section extracts g[*, r].
func (g *Grid) Section(r int) (Section, error) {
	_, rc := g.Dims()
	if r < 0 || r >= rc {
		return Section{}, &IndexError{Index: r, Count: rc}
	}
	return Section{
		R:      g.layout.R.Center(r),
		Index:  r,
		Values: mat.Col(nil, r, g.data),
	}, nil
}

// SectionAt extracts the column holding physical radius r, using the same
// R mapping the grid was built with.
func (g *Grid) SectionAt(r float64) (Section, error) {
	idx, ok := g.layout.R.Bin(r, g.layout.Rounding)
	if !ok {
		return Section{}, &IndexError{Index: idx, Count: g.layout.R.Count}
	}
	return g.Section(idx)
}

// Sections calls SectionAt for each radius, stopping at the first error.
func (g *Grid) Sections(rs []float64) ([]Section, error) {
	out := make([]Section, 0, len(rs))
	for _, r := range rs {
		s, err := g.SectionAt(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

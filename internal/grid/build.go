package grid

// Point is one field sample in physical coordinates. Line is the source
// line it came from and is only used for error reporting.
type Point struct {
	Line  int
	Z     float64
	R     float64
	Value float64
}

// BuildStats summarises how samples landed on the lattice.
type BuildStats struct {
	Points     int `json:"points"`
	Cells      int `json:"cells"`
	Collisions int `json:"collisions"`
	Empty      int `json:"empty"`
}

// Build writes every point into a fresh grid for l. Points sharing a bin
// overwrite each other in order. The first point outside the lattice aborts
// the build with a *BoundaryError and no grid is returned.
func Build(points []Point, l Layout) (*Grid, BuildStats, error) {
	g, err := New(l)
	if err != nil {
		return nil, BuildStats{}, err
	}

	zc, rc := g.Dims()
	written := make([]bool, zc*rc)
	stats := BuildStats{Points: len(points)}

	for _, p := range points {
		zi, err := locate(l.Z, p.Z, p.Line, l.Rounding)
		if err != nil {
			return nil, BuildStats{}, err
		}
		ri, err := locate(l.R, p.R, p.Line, l.Rounding)
		if err != nil {
			return nil, BuildStats{}, err
		}

		k := zi*rc + ri
		if written[k] {
			stats.Collisions++
		} else {
			written[k] = true
			stats.Cells++
		}
		g.set(zi, ri, p.Value)
	}

	stats.Empty = zc*rc - stats.Cells
	return g, stats, nil
}

func locate(a Axis, x float64, line int, r Rounding) (int, error) {
	idx, ok := a.Bin(x, r)
	if !ok || !a.Contains(idx) {
		return 0, &BoundaryError{Line: line, Axis: a.Name, Coord: x, Index: idx, Count: a.Count}
	}
	return idx, nil
}

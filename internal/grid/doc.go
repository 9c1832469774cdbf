// Package grid reconstructs dense regular lattices from scattered field
// samples and differentiates them.
//
// The package covers the numeric core of a field map run:
//
//   - [Axis] and [Layout]: affine mapping from physical (Z, R) coordinates
//     to lattice indices, with an explicit [Rounding] rule
//   - [Build]: populates a zero-filled [Grid] from [Point] samples
//   - [Differentiate]: forward difference along Z
//   - [Grid.Section] and [Grid.SectionAt]: fixed-R cross-sections
//
// # Binning
//
// A coordinate x lands in bin
//
//	round((x + Offset) / Step) + Origin
//
// Two samples that land in the same bin overwrite each other in input order
// (last write wins). Collisions are counted in [BuildStats] and are not
// errors. Cells that never receive a sample stay at zero.
//
// # Example
//
//	g, stats, err := grid.Build(points, layout)
//	d, err := grid.Differentiate(g)
//	s, err := d.SectionAt(0.1)
package grid

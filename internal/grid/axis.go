package grid

import (
	"fmt"
	"math"
)

// Rounding selects how ratios exactly halfway between two bins are resolved.
type Rounding string

const (
	HalfAwayFromZero Rounding = "half-away"
	HalfToEven       Rounding = "half-even"
)

// Round applies r to x. The zero value behaves as HalfAwayFromZero.
func (r Rounding) Round(x float64) float64 {
	if r == HalfToEven {
		return math.RoundToEven(x)
	}
	return math.Round(x)
}

func (r Rounding) Valid() bool {
	switch r {
	case "", HalfAwayFromZero, HalfToEven:
		return true
	}
	return false
}

// maxBin keeps float-to-int conversion defined for absurd coordinates.
const maxBin = 1 << 31

// Axis maps one physical coordinate onto Count lattice bins.
type Axis struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Step   float64 `json:"step"`
	Offset float64 `json:"offset"`
	Origin int     `json:"origin"`
}

// Bin returns the lattice index for x without range checking. ok is false
// when x cannot be mapped at all (NaN, Inf or beyond int range).
func (a Axis) Bin(x float64, r Rounding) (idx int, ok bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return -1, false
	}
	f := r.Round((x + a.Offset) / a.Step)
	if math.Abs(f) > maxBin {
		return -1, false
	}
	return int(f) + a.Origin, true
}

func (a Axis) Contains(idx int) bool {
	return idx >= 0 && idx < a.Count
}

// Center is the physical coordinate of bin idx, the inverse of Bin.
func (a Axis) Center(idx int) float64 {
	return float64(idx-a.Origin)*a.Step - a.Offset
}

// Centers lists Center for every bin in order.
func (a Axis) Centers() []float64 {
	out := make([]float64, a.Count)
	for i := range out {
		out[i] = a.Center(i)
	}
	return out
}

// Shrink returns the axis of a forward difference: one bin fewer, same
// spacing, bin i still anchored at the lower sample.
func (a Axis) Shrink() Axis {
	a.Count--
	return a
}

func (a Axis) Validate() error {
	if a.Count < 1 {
		return fmt.Errorf("%w: axis %q count %d", ErrLayout, a.Name, a.Count)
	}
	if !(a.Step > 0) || math.IsInf(a.Step, 0) {
		return fmt.Errorf("%w: axis %q step %g", ErrLayout, a.Name, a.Step)
	}
	if math.IsNaN(a.Offset) || math.IsInf(a.Offset, 0) {
		return fmt.Errorf("%w: axis %q offset %g", ErrLayout, a.Name, a.Offset)
	}
	return nil
}

// Layout is the full geometry of a grid: rows along Z, columns along R.
type Layout struct {
	Z        Axis     `json:"z"`
	R        Axis     `json:"r"`
	Rounding Rounding `json:"rounding"`
}

func (l Layout) Validate() error {
	if err := l.Z.Validate(); err != nil {
		return err
	}
	if err := l.R.Validate(); err != nil {
		return err
	}
	if !l.Rounding.Valid() {
		return fmt.Errorf("%w: unknown rounding %q", ErrLayout, l.Rounding)
	}
	return nil
}

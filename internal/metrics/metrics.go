// Package metrics summarizes a cross-section one sample at a time.
//
// Every metric sees the same stream of (z, value) pairs in increasing z and
// reports a single number. Summarize runs the standard set over a section.
package metrics

import (
	"fmt"
	"math"
)

type Metric interface {
	Name() string
	Observe(z, v float64)
	Value() float64
	Reset()
}

// Peak tracks the value of largest magnitude and where it occurs.
type Peak struct {
	value float64
	z     float64
	seen  bool
}

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "peak" }

func (p *Peak) Observe(z, v float64) {
	if !p.seen || math.Abs(v) > math.Abs(p.value) {
		p.value, p.z, p.seen = v, z, true
	}
}

// Value is the signed peak, 0 before any sample.
func (p *Peak) Value() float64 { return p.value }

// Z is the position of the peak, NaN before any sample.
func (p *Peak) Z() float64 {
	if !p.seen {
		return math.NaN()
	}
	return p.z
}

func (p *Peak) Reset() { *p = Peak{} }

type Mean struct {
	sum float64
	n   int
}

func NewMean() *Mean { return &Mean{} }

func (m *Mean) Name() string { return "mean" }

func (m *Mean) Observe(z, v float64) {
	m.sum += v
	m.n++
}

func (m *Mean) Value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

func (m *Mean) Reset() { *m = Mean{} }

// ZeroCrossings counts sign changes. Exact zeros do not start or end a run.
type ZeroCrossings struct {
	last  float64
	count int
}

func NewZeroCrossings() *ZeroCrossings { return &ZeroCrossings{} }

func (c *ZeroCrossings) Name() string { return "zero_crossings" }

func (c *ZeroCrossings) Observe(z, v float64) {
	if v == 0 {
		return
	}
	if c.last != 0 && (v > 0) != (c.last > 0) {
		c.count++
	}
	c.last = v
}

func (c *ZeroCrossings) Value() float64 { return float64(c.count) }

func (c *ZeroCrossings) Reset() { *c = ZeroCrossings{} }

// Summary holds the standard metrics of one section.
type Summary struct {
	Peak          float64 `json:"peak"`
	PeakZ         float64 `json:"peak_z"`
	Mean          float64 `json:"mean"`
	ZeroCrossings int     `json:"zero_crossings"`
}

func (s Summary) String() string {
	return fmt.Sprintf("peak %.4g at z=%.3f, mean %.4g, %d zero crossings",
		s.Peak, s.PeakZ, s.Mean, s.ZeroCrossings)
}

// Summarize feeds values to the standard metrics. z holds the bin center of
// each value and must be at least as long as values.
func Summarize(z, values []float64) (Summary, error) {
	if len(z) < len(values) {
		return Summary{}, fmt.Errorf("metrics: %d positions for %d values", len(z), len(values))
	}

	peak, mean, zc := NewPeak(), NewMean(), NewZeroCrossings()
	observers := []Metric{peak, mean, zc}
	for i, v := range values {
		for _, m := range observers {
			m.Observe(z[i], v)
		}
	}

	return Summary{
		Peak:          peak.Value(),
		PeakZ:         peak.Z(),
		Mean:          mean.Value(),
		ZeroCrossings: int(zc.Value()),
	}, nil
}

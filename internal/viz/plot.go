package viz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fieldgrad/internal/grid"
)

// Rebin averages consecutive groups of factor values. A short trailing
// group is averaged over its own length. factor <= 1 returns a copy.
func Rebin(values []float64, factor int) []float64 {
	if factor <= 1 {
		return append([]float64(nil), values...)
	}

	out := make([]float64, 0, (len(values)+factor-1)/factor)
	for i := 0; i < len(values); i += factor {
		end := min(i+factor, len(values))
		sum := 0.0
		for _, v := range values[i:end] {
			sum += v
		}
		out = append(out, sum/float64(end-i))
	}
	return out
}

type PlotOptions struct {
	Height  int
	Width   int
	Rebin   int
	Caption string

	// Bounded pins the y range to [Lower, Upper].
	Bounded bool
	Lower   float64
	Upper   float64
}

// PlotSections overlays sections in one terminal chart followed by a legend
// naming each radius in cm.
func PlotSections(sections []grid.Section, opts PlotOptions) (string, error) {
	if len(sections) == 0 {
		return "", errors.New("viz: no sections to plot")
	}

	data := make([][]float64, len(sections))
	for i, s := range sections {
		if len(s.Values) == 0 {
			return "", fmt.Errorf("viz: section at r=%g is empty", s.R)
		}
		data[i] = Rebin(s.Values, opts.Rebin)
	}

	options := []asciigraph.Option{
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
	}
	if opts.Caption != "" {
		options = append(options, asciigraph.Caption(opts.Caption))
	}
	if opts.Bounded {
		options = append(options, asciigraph.LowerBound(opts.Lower), asciigraph.UpperBound(opts.Upper))
	}

	var sb strings.Builder
	sb.WriteString(asciigraph.PlotMany(data, options...))
	sb.WriteString("\n\n")
	for i, s := range sections {
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", i+1, Subtle.Render(Legend(s))))
	}
	return sb.String(), nil
}

// Legend names a section by its radius, e.g. "r = 10 cm".
func Legend(s grid.Section) string {
	return fmt.Sprintf("r = %.0f cm", s.R*100)
}

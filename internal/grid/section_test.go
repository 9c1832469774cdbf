package grid_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldgrad/internal/grid"
)

var _ = Describe("Section", func() {
	var g *grid.Grid

	BeforeEach(func() {
		var points []grid.Point
		for i := 0; i < 4; i++ {
			for j := 0; j < 3; j++ {
				points = append(points, grid.Point{Z: float64(i), R: float64(j), Value: float64(10*i + j)})
			}
		}
		g = mustBuild(points, smallLayout(4, 3))
	})

	It("returns the column in increasing z order", func() {
		s, err := g.Section(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Index).To(Equal(2))
		Expect(s.R).To(Equal(2.0))
		Expect(s.Values).To(Equal([]float64{2, 12, 22, 32}))
	})

	It("matches g[:, r] for every column", func() {
		zc, rc := g.Dims()
		for r := 0; r < rc; r++ {
			s, err := g.Section(r)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Values).To(HaveLen(zc))
			for z := 0; z < zc; z++ {
				Expect(s.Values[z]).To(Equal(g.At(z, r)))
			}
		}
	})

	It("hands out a copy", func() {
		s, _ := g.Section(0)
		s.Values[0] = -1
		Expect(g.At(0, 0)).To(Equal(0.0))
	})

	DescribeTable("rejects out of range indices",
		func(r int) {
			_, err := g.Section(r)
			Expect(err).To(MatchError(grid.ErrIndex))
			var ie *grid.IndexError
			Expect(errors.As(err, &ie)).To(BeTrue())
			Expect(ie.Index).To(Equal(r))
			Expect(ie.Count).To(Equal(3))
		},
		Entry("negative", -1),
		Entry("one past the end", 3),
		Entry("far past the end", 1000),
	)
})

var _ = Describe("SectionAt", func() {
	It("maps radii through the build layout", func() {
		l := referenceLayout()
		var points []grid.Point
		for _, r := range []float64{0.1, 0.2, 0.3, 0.4, 0.5} {
			points = append(points, grid.Point{Z: 0, R: r, Value: r * 10})
		}
		g := mustBuild(points, l)

		ss, err := g.Sections([]float64{0.1, 0.2, 0.3, 0.4, 0.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(ss).To(HaveLen(5))
		for k, s := range ss {
			Expect(s.Index).To(Equal(10 * (k + 1)))
			Expect(s.Values).To(HaveLen(301))
			Expect(s.Values[200]).To(BeNumerically("~", float64(k+1), 1e-12))
		}
	})

	It("follows the derivative grid as well", func() {
		g := mustBuild([]grid.Point{{Z: 0, R: 0.3, Value: 1}}, referenceLayout())
		d, err := grid.Differentiate(g)
		Expect(err).NotTo(HaveOccurred())
		s, err := d.SectionAt(0.3)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Values).To(HaveLen(300))
		Expect(s.Values[199]).To(BeNumerically("~", 100, 1e-9))
	})

	It("rejects radii outside the grid", func() {
		g := mustBuild(nil, referenceLayout())
		for _, r := range []float64{-0.02, 1.25, math.NaN()} {
			_, err := g.SectionAt(r)
			Expect(err).To(MatchError(grid.ErrIndex), "r=%g", r)
		}
		_, err := g.Sections([]float64{0.1, 2.0})
		Expect(err).To(MatchError(grid.ErrIndex))
	})
})

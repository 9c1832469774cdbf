package grid_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldgrad/internal/grid"
)

var _ = Describe("Build", func() {
	It("places each value at its affine bin", func() {
		points := []grid.Point{
			{Line: 2, Z: 0.00, R: 0.00, Value: 1.0},
			{Line: 3, Z: 0.01, R: 0.00, Value: 1.2},
			{Line: 4, Z: 0.02, R: 0.00, Value: 1.7},
			{Line: 5, Z: -2.0, R: 1.20, Value: -0.3},
			{Line: 6, Z: 1.0, R: 0.35, Value: 0.25},
		}
		g, stats, err := grid.Build(points, referenceLayout())
		Expect(err).NotTo(HaveOccurred())

		Expect(g.At(200, 0)).To(Equal(1.0))
		Expect(g.At(201, 0)).To(Equal(1.2))
		Expect(g.At(202, 0)).To(Equal(1.7))
		Expect(g.At(0, 120)).To(Equal(-0.3))
		Expect(g.At(300, 35)).To(Equal(0.25))

		Expect(stats).To(Equal(grid.BuildStats{
			Points:     5,
			Cells:      5,
			Collisions: 0,
			Empty:      301*121 - 5,
		}))
	})

	It("returns a zero-filled grid when there are no points", func() {
		g, stats, err := grid.Build(nil, smallLayout(3, 2))
		Expect(err).NotTo(HaveOccurred())
		zc, rc := g.Dims()
		Expect([]int{zc, rc}).To(Equal([]int{3, 2}))
		for i := 0; i < zc; i++ {
			Expect(g.Row(i)).To(Equal([]float64{0, 0}))
		}
		Expect(stats.Empty).To(Equal(6))
	})

	It("keeps the last write on a collision and counts it", func() {
		points := []grid.Point{
			{Line: 2, Z: 1.0, R: 0.0, Value: 5},
			{Line: 3, Z: 1.2, R: 0.1, Value: 7},
			{Line: 4, Z: 0.9, R: -0.2, Value: 9},
		}
		g, stats, err := grid.Build(points, smallLayout(3, 2))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.At(1, 0)).To(Equal(9.0))
		Expect(stats.Cells).To(Equal(1))
		Expect(stats.Collisions).To(Equal(2))
		Expect(stats.Empty).To(Equal(5))
	})

	DescribeTable("rejects coordinates outside the lattice",
		func(p grid.Point, axis string, idx int) {
			g, _, err := grid.Build([]grid.Point{{Line: 2, Value: 1}, p}, referenceLayout())
			Expect(g).To(BeNil())
			Expect(err).To(MatchError(grid.ErrBoundary))

			var be *grid.BoundaryError
			Expect(errors.As(err, &be)).To(BeTrue())
			Expect(be.Line).To(Equal(p.Line))
			Expect(be.Axis).To(Equal(axis))
			Expect(be.Index).To(Equal(idx))
		},
		Entry("below z", grid.Point{Line: 9, Z: -2.01, R: 0, Value: 1.5}, "z", -1),
		Entry("above z", grid.Point{Line: 9, Z: 1.01, R: 0, Value: 1.5}, "z", 301),
		Entry("far below z", grid.Point{Line: 9, Z: -4.0, R: 0, Value: 1.5}, "z", -200),
		Entry("negative r", grid.Point{Line: 9, Z: 0, R: -0.01, Value: 1.5}, "r", -1),
		Entry("beyond r", grid.Point{Line: 9, Z: 0, R: 1.21, Value: 1.5}, "r", 121),
		Entry("NaN z", grid.Point{Line: 9, Z: math.NaN(), R: 0, Value: 1.5}, "z", -1),
		Entry("infinite r", grid.Point{Line: 9, Z: 0, R: math.Inf(1), Value: 1.5}, "r", -1),
	)

	It("reports a readable boundary error", func() {
		_, _, err := grid.Build([]grid.Point{{Line: 4, Z: 1.01}}, referenceLayout())
		Expect(err.Error()).To(ContainSubstring("line 4"))
		Expect(err.Error()).To(ContainSubstring("bin 301"))
	})

	It("validates the layout first", func() {
		_, _, err := grid.Build(nil, smallLayout(0, 2))
		Expect(err).To(MatchError(grid.ErrLayout))
	})
})

var _ = Describe("FromDense", func() {
	It("copies the matrix", func() {
		src := mustBuild([]grid.Point{{Z: 1, R: 1, Value: 3}}, smallLayout(2, 2))
		m := src.Dense()
		g, err := grid.FromDense(smallLayout(2, 2), m)
		Expect(err).NotTo(HaveOccurred())
		m.Set(1, 1, 100)
		Expect(g.At(1, 1)).To(Equal(3.0))
		Expect(src.At(1, 1)).To(Equal(3.0))
	})

	It("rejects mismatched dimensions", func() {
		src := mustBuild(nil, smallLayout(2, 2))
		_, err := grid.FromDense(smallLayout(3, 2), src.Dense())
		Expect(err).To(MatchError(grid.ErrLayout))
	})
})

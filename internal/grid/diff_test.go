package grid_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldgrad/internal/grid"
)

var _ = Describe("Differentiate", func() {
	It("produces the forward difference of three adjacent samples", func() {
		g := mustBuild([]grid.Point{
			{Z: 0.00, R: 0, Value: 1.0},
			{Z: 0.01, R: 0, Value: 1.2},
			{Z: 0.02, R: 0, Value: 1.7},
		}, referenceLayout())

		d, err := grid.Differentiate(g)
		Expect(err).NotTo(HaveOccurred())

		zc, rc := d.Dims()
		Expect(zc).To(Equal(300))
		Expect(rc).To(Equal(121))
		Expect(d.At(200, 0)).To(BeNumerically("~", 20.0, 1e-9))
		Expect(d.At(201, 0)).To(BeNumerically("~", 50.0, 1e-9))
	})

	It("does not flag jumps from unwritten cells", func() {
		g := mustBuild([]grid.Point{{Z: 0.00, R: 0, Value: 1.0}}, referenceLayout())
		d, err := grid.Differentiate(g)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.At(199, 0)).To(BeNumerically("~", 100.0, 1e-9))
		Expect(d.At(200, 0)).To(BeNumerically("~", -100.0, 1e-9))
		Expect(d.At(10, 10)).To(BeZero())
	})

	It("satisfies d*step == g[i+1]-g[i] everywhere", func() {
		l := grid.Layout{
			Z: grid.Axis{Name: "z", Count: 7, Step: 0.25, Offset: 1},
			R: grid.Axis{Name: "r", Count: 4, Step: 0.5},
		}
		var points []grid.Point
		for i := 0; i < 7; i++ {
			for j := 0; j < 4; j++ {
				z := l.Z.Center(i)
				points = append(points, grid.Point{Z: z, R: l.R.Center(j), Value: z*z*float64(j+1) - 0.3*float64(i)})
			}
		}
		g := mustBuild(points, l)
		d, err := grid.Differentiate(g)
		Expect(err).NotTo(HaveOccurred())

		zc, rc := d.Dims()
		Expect(zc).To(Equal(6))
		for i := 0; i < zc; i++ {
			for j := 0; j < rc; j++ {
				Expect(d.At(i, j) * l.Z.Step).To(BeNumerically("~", g.At(i+1, j)-g.At(i, j), 1e-12))
			}
		}
	})

	It("leaves the input untouched and shrinks only Z", func() {
		g := mustBuild([]grid.Point{{Z: 1, R: 1, Value: 4}}, smallLayout(3, 2))
		before := g.Dense()

		d, err := grid.Differentiate(g)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Dense().RawMatrix().Data).To(Equal(before.RawMatrix().Data))
		Expect(d.Layout().Z.Count).To(Equal(2))
		Expect(d.Layout().R).To(Equal(g.Layout().R))
		Expect(d.Row(0)).To(Equal([]float64{0, 4}))
		Expect(d.Row(1)).To(Equal([]float64{0, -4}))
	})

	It("needs at least two z rows", func() {
		g := mustBuild(nil, smallLayout(1, 3))
		_, err := grid.Differentiate(g)
		Expect(err).To(MatchError(grid.ErrTooFewRows))
	})
})

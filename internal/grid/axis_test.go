package grid_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldgrad/internal/grid"
)

var _ = Describe("Axis", func() {
	z := referenceLayout().Z

	DescribeTable("Bin on the reference Z axis",
		func(x float64, want int, inside bool) {
			idx, ok := z.Bin(x, grid.HalfAwayFromZero)
			Expect(ok).To(BeTrue())
			Expect(idx).To(Equal(want))
			Expect(z.Contains(idx)).To(Equal(inside))
		},
		Entry("lower edge", -2.0, 0, true),
		Entry("first step", -1.99, 1, true),
		Entry("origin", 0.0, 200, true),
		Entry("upper edge", 1.0, 300, true),
		Entry("rounds down below half", 0.004, 200, true),
		Entry("rounds up above half", 0.006, 201, true),
		Entry("one bin below", -2.01, -1, false),
		Entry("one bin above", 1.01, 301, false),
	)

	It("applies the origin after rounding", func() {
		a := grid.Axis{Name: "z", Count: 302, Step: 0.01, Offset: 2.0, Origin: 1}
		idx, ok := a.Bin(-2.0, grid.HalfAwayFromZero)
		Expect(ok).To(BeTrue())
		Expect(idx).To(Equal(1))
		Expect(a.Center(1)).To(BeNumerically("~", -2.0, 1e-12))
	})

	DescribeTable("tie breaking",
		func(x float64, r grid.Rounding, want int) {
			a := grid.Axis{Name: "x", Count: 10, Step: 1, Offset: 5}
			idx, _ := a.Bin(x, r)
			Expect(idx).To(Equal(want))
		},
		Entry("half away, positive", -2.5, grid.HalfAwayFromZero, 3),
		Entry("half even, positive", -2.5, grid.HalfToEven, 2),
		Entry("half away, negative", -5.5, grid.HalfAwayFromZero, -1),
		Entry("half even, negative", -5.5, grid.HalfToEven, 0),
		Entry("zero value rounds half away", -2.5, grid.Rounding(""), 3),
	)

	It("refuses non-finite coordinates", func() {
		for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300} {
			_, ok := z.Bin(x, grid.HalfAwayFromZero)
			Expect(ok).To(BeFalse(), "x=%g", x)
		}
	})

	It("inverts Bin with Center", func() {
		for i := 0; i < z.Count; i += 37 {
			idx, ok := z.Bin(z.Center(i), grid.HalfAwayFromZero)
			Expect(ok).To(BeTrue())
			Expect(idx).To(Equal(i))
		}
		Expect(z.Centers()).To(HaveLen(301))
	})

	It("shrinks by one bin keeping the spacing", func() {
		s := z.Shrink()
		Expect(s.Count).To(Equal(300))
		Expect(s.Step).To(Equal(z.Step))
		Expect(s.Center(0)).To(Equal(z.Center(0)))
		Expect(z.Count).To(Equal(301))
	})
})

var _ = Describe("Layout", func() {
	It("accepts the reference layout", func() {
		Expect(referenceLayout().Validate()).To(Succeed())
	})

	DescribeTable("rejects",
		func(mutate func(*grid.Layout)) {
			l := referenceLayout()
			mutate(&l)
			Expect(l.Validate()).To(MatchError(grid.ErrLayout))
		},
		Entry("zero z count", func(l *grid.Layout) { l.Z.Count = 0 }),
		Entry("zero r step", func(l *grid.Layout) { l.R.Step = 0 }),
		Entry("negative z step", func(l *grid.Layout) { l.Z.Step = -0.01 }),
		Entry("NaN step", func(l *grid.Layout) { l.Z.Step = math.NaN() }),
		Entry("infinite offset", func(l *grid.Layout) { l.R.Offset = math.Inf(1) }),
		Entry("unknown rounding", func(l *grid.Layout) { l.Rounding = "truncate" }),
	)
})

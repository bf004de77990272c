package spiral_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/climaspiral/internal/spiral"
)

const tol = 1e-12

var _ = Describe("BuildAngleTable", func() {
	DescribeTable("evenly partitions the circle",
		func(n int) {
			table, err := spiral.BuildAngleTable(n)
			Expect(err).NotTo(HaveOccurred())
			Expect(table).To(HaveLen(n))

			step := 2 * math.Pi / float64(n)
			for i, e := range table {
				Expect(e.Angle).To(BeNumerically("~", step*float64(i), tol))
				Expect(e.UnitX).To(BeNumerically("~", math.Cos(e.Angle), tol))
				Expect(e.UnitY).To(BeNumerically("~", math.Sin(e.Angle), tol))
				Expect(e.UnitX*e.UnitX + e.UnitY*e.UnitY).To(BeNumerically("~", 1.0, tol))
			}
		},
		Entry("one segment", 1),
		Entry("quarters", 4),
		Entry("months", 12),
		Entry("odd count", 7),
		Entry("fine", 360),
	)

	It("places the quarter points of a 12-way split", func() {
		table, err := spiral.BuildAngleTable(12)
		Expect(err).NotTo(HaveOccurred())

		Expect(table[0].UnitX).To(BeNumerically("~", 1.0, tol))
		Expect(table[0].UnitY).To(BeNumerically("~", 0.0, tol))
		Expect(table[0].Angle).To(BeZero())

		Expect(table[3].UnitX).To(BeNumerically("~", 0.0, tol))
		Expect(table[3].UnitY).To(BeNumerically("~", 1.0, tol))
		Expect(table[3].Angle).To(BeNumerically("~", math.Pi/2, tol))
		Expect(table[3].Degrees()).To(BeNumerically("~", 90.0, 1e-9))
	})

	It("rejects non-positive counts", func() {
		for _, n := range []int{0, -1, -12} {
			table, err := spiral.BuildAngleTable(n)
			Expect(err).To(MatchError(spiral.ErrInvalidSegmentCount))
			Expect(table).To(BeNil())
		}
	})
})

var _ = Describe("MonthOrder", func() {
	It("maps January two slots from March", func() {
		order := spiral.DefaultMonthOrder()
		Expect(order.Label(order.Slot(0))).To(Equal("Jan"))
		Expect(order.Label(order.Slot(2))).To(Equal("Mar"))
		Expect(order.Label(order.Slot(11))).To(Equal("Dec"))
		Expect(order.Slot(12)).To(Equal(order.Slot(0)))
	})

	It("labels every calendar month exactly once", func() {
		order := spiral.DefaultMonthOrder()
		calendar := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
		for month, name := range calendar {
			Expect(order.Label(order.Slot(month))).To(Equal(name))
		}
	})

	It("rejects duplicated slots", func() {
		def := spiral.DefaultMonthOrder()
		index := def.Index
		index[1] = index[0]
		_, err := spiral.NewMonthOrder(def.Labels, index)
		Expect(err).To(MatchError(spiral.ErrInvalidMonthOrder))
	})

	It("rejects out of range slots", func() {
		def := spiral.DefaultMonthOrder()
		index := def.Index
		index[5] = 12
		_, err := spiral.NewMonthOrder(def.Labels, index)
		Expect(err).To(MatchError(spiral.ErrInvalidMonthOrder))
	})

	It("accepts a valid permutation", func() {
		def := spiral.DefaultMonthOrder()
		order, err := spiral.NewMonthOrder(def.Labels, def.Index)
		Expect(err).NotTo(HaveOccurred())
		Expect(order).To(Equal(def))
	})
})

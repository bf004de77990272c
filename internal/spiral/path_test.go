package spiral_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/climaspiral/internal/spiral"
)

var _ = Describe("Generate", func() {
	var m spiral.Mapping

	BeforeEach(func() {
		var err error
		m, err = spiral.MappingFor(12, 7.0, 1.5, 3.6)
		Expect(err).NotTo(HaveOccurred())
	})

	It("uses the configured scale", func() {
		Expect(m.Scale).To(BeNumerically("~", 7.0/3.6, tol))
		Expect(m.Radius(2.1)).To(BeNumerically("~", 7.0, 1e-9))
	})

	It("maps the minimum anomaly to the origin", func() {
		values := []float64{0, 0, -1.5}
		Expect(m.Order.Slot(2)).To(Equal(0))

		points := spiral.Generate(values, m)
		Expect(points[2].X).To(BeNumerically("~", 0.0, tol))
		Expect(points[2].Y).To(BeNumerically("~", 0.0, tol))
		Expect(points[2].Value).To(Equal(-1.5))
	})

	It("places January at sixty degrees", func() {
		points := spiral.Generate([]float64{2.1}, m)
		Expect(points[0].X).To(BeNumerically("~", 3.5, 1e-9))
		Expect(points[0].Y).To(BeNumerically("~", 7*math.Sin(math.Pi/3), 1e-9))
	})

	It("returns one point per sample in input order", func() {
		values := make([]float64, 30)
		for i := range values {
			values[i] = -0.5 + 0.05*float64(i)
		}
		points := spiral.Generate(values, m)
		Expect(points).To(HaveLen(len(values)))
		for i, p := range points {
			Expect(p.Value).To(Equal(values[i]))
			Expect(math.Hypot(p.X, p.Y)).To(BeNumerically("~", m.Radius(values[i]), 1e-9))
		}
	})

	It("repeats the angle every twelve samples", func() {
		values := make([]float64, 24)
		for i := range values {
			values[i] = 0.5
		}
		points := spiral.Generate(values, m)
		for i := 0; i < 12; i++ {
			Expect(points[i]).To(Equal(points[i+12]))
		}
	})

	It("is deterministic", func() {
		values := []float64{-0.7, -0.3, 0.1, 0.4, 1.2, 0.9, -1.1}
		Expect(spiral.Generate(values, m)).To(Equal(spiral.Generate(values, m)))
	})

	It("handles an empty series", func() {
		Expect(spiral.Generate(nil, m)).To(BeEmpty())
	})

	It("refuses a table that does not hold twelve months", func() {
		_, err := spiral.MappingFor(8, 7, 1.5, 3.6)
		Expect(err).To(MatchError(spiral.ErrInvalidMonthOrder))

		_, err = spiral.MappingFor(0, 7, 1.5, 3.6)
		Expect(err).To(MatchError(spiral.ErrInvalidSegmentCount))
	})
})

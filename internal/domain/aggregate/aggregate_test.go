package aggregate_test

import (
	"testing"

	"github.com/okian/chargesense/internal/domain/aggregate"
	"github.com/okian/chargesense/internal/domain/model"
	"github.com/okian/chargesense/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHistogram(t *testing.T) {
	Convey("Given pooled charges around the bin edges", t, func() {
		values := []float64{0, 4.99, 5, 5.01, 100, 150}

		Convey("When binning with the fixed edges", func() {
			bins := aggregate.Histogram(values, aggregate.BinEdges[:])

			Convey("Then bins are right-closed and out-of-range values are excluded", func() {
				So(bins, ShouldResemble, []types.ChargeBin{
					{Range: "(0, 5]", Count: 2},
					{Range: "(5, 10]", Count: 1},
					{Range: "(10, 15]", Count: 0},
					{Range: "(15, 20]", Count: 0},
					{Range: "(20, 25]", Count: 0},
					{Range: "(25, 50]", Count: 0},
					{Range: "(50, 100]", Count: 1},
				})
			})
		})

		Convey("When values are negative", func() {
			bins := aggregate.Histogram([]float64{-1, -0.01}, aggregate.BinEdges[:])

			Convey("Then every bin is still emitted with zero counts", func() {
				So(bins, ShouldHaveLength, 7)
				for _, b := range bins {
					So(b.Count, ShouldEqual, 0)
				}
			})
		})
	})

	Convey("Given no pooled charges", t, func() {
		Convey("Then the distribution is an empty list", func() {
			bins := aggregate.Histogram(nil, aggregate.BinEdges[:])
			So(bins, ShouldNotBeNil)
			So(bins, ShouldBeEmpty)
		})
	})

	Convey("Given fractional edges", t, func() {
		bins := aggregate.Histogram([]float64{0.3}, []float64{0, 0.5, 1})
		So(bins[0], ShouldResemble, types.ChargeBin{Range: "(0, 0.5]", Count: 1})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given processed results for the five days", t, func() {
		days := make([]model.DayResult, 0, 5)
		for i, d := range model.Days() {
			days = append(days, model.DayResult{
				Day:         d,
				TotalCharge: float64(10 * (i + 1)),
				BusUsage:    [4]int{i, 0, 1, 2},
				ChargePool:  []float64{float64(i + 1)},
			})
		}
		days[0].Rows = []model.NormalizedRow{
			{Segment: "Amy Pond", Day: model.Mon, TotalCharge: 12, BookingCount: 2, Notes: "late"},
			{Segment: "Rory Williams", Day: model.Mon, TotalCharge: 3, BookingCount: 1},
		}
		days[3].Rows = []model.NormalizedRow{
			{Segment: "Clara Oswald", Day: model.Thurs, TotalCharge: 7.5},
		}

		Convey("When summarizing", func() {
			s := aggregate.Summarize(days)

			Convey("Then customer segments are flattened in day then row order", func() {
				So(s.CustomerSegments, ShouldResemble, []types.CustomerSegment{
					{Segment: "Amy Pond", Day: "Mon", TotalCharge: 12, BookingCount: 2, Notes: "late"},
					{Segment: "Rory Williams", Day: "Mon", TotalCharge: 3, BookingCount: 1},
					{Segment: "Clara Oswald", Day: "Thurs", TotalCharge: 7.5},
				})
			})

			Convey("And weekly charges mirror the day totals as predictions", func() {
				So(s.WeeklyCharges, ShouldHaveLength, 5)
				So(s.WeeklyCharges[2], ShouldResemble, types.WeeklyCharge{Day: "Wed", TotalCharge: 30, PredictedCharge: 30})
				for _, w := range s.WeeklyCharges {
					So(w.PredictedCharge, ShouldEqual, w.TotalCharge)
				}
			})

			Convey("And bus usage has one entry per day and session", func() {
				So(s.BusUsage, ShouldHaveLength, 20)
				So(s.BusUsage[0], ShouldResemble, types.BusUsage{Day: "Mon", BusService: "AM", Usage: 0})
				So(s.BusUsage[7], ShouldResemble, types.BusUsage{Day: "Tues", BusService: "Explorers 3", Usage: 2})
				So(s.BusUsage[16], ShouldResemble, types.BusUsage{Day: "Fri", BusService: "AM", Usage: 4})
			})

			Convey("And the charge pool spans every day", func() {
				So(s.ChargeDistribution[0], ShouldResemble, types.ChargeBin{Range: "(0, 5]", Count: 5})
			})

			Convey("And the classification placeholder counts segments", func() {
				So(s.ClassificationComparison, ShouldResemble, []types.ClassificationComparison{
					{Actual: "N/A", Predicted: "N/A", Count: 3},
				})
			})
		})
	})

	Convey("Given days with no rows at all", t, func() {
		s := aggregate.Summarize([]model.DayResult{{Day: model.Mon}})

		Convey("Then lists are empty rather than nil", func() {
			So(s.CustomerSegments, ShouldNotBeNil)
			So(s.CustomerSegments, ShouldBeEmpty)
			So(s.ChargeDistribution, ShouldBeEmpty)
			So(s.ClassificationComparison[0].Count, ShouldEqual, 0)
		})
	})
}

// Package aggregate combines processed day tabs into the five summary views.
package aggregate

import (
	"strconv"

	"github.com/okian/chargesense/internal/domain/model"
	"github.com/okian/chargesense/internal/domain/types"
)

// BinEdges are the right-closed edges of the charge distribution.
var BinEdges = [...]float64{0, 5, 10, 15, 20, 25, 50, 100}

const placeholderClass = "N/A"

// Summarize builds the summary from days, which must be in day-key
// declaration order.
func Summarize(days []model.DayResult) types.Summary {
	s := types.Summary{
		CustomerSegments: []types.CustomerSegment{},
		WeeklyCharges:    make([]types.WeeklyCharge, 0, len(days)),
		BusUsage:         make([]types.BusUsage, 0, len(days)*len(model.SessionColumns)),
	}
	var pool []float64
	for _, d := range days {
		day := string(d.Day)
		for _, r := range d.Rows {
			s.CustomerSegments = append(s.CustomerSegments, types.CustomerSegment{
				Segment:      r.Segment,
				Day:          day,
				TotalCharge:  r.TotalCharge,
				BookingCount: r.BookingCount,
				Notes:        r.Notes,
			})
		}
		s.WeeklyCharges = append(s.WeeklyCharges, types.WeeklyCharge{
			Day:             day,
			TotalCharge:     d.TotalCharge,
			PredictedCharge: d.TotalCharge,
		})
		for i, session := range model.SessionColumns {
			s.BusUsage = append(s.BusUsage, types.BusUsage{
				Day:        day,
				BusService: session,
				Usage:      d.BusUsage[i],
			})
		}
		pool = append(pool, d.ChargePool...)
	}
	s.ChargeDistribution = Histogram(pool, BinEdges[:])
	s.ClassificationComparison = []types.ClassificationComparison{{
		Actual:    placeholderClass,
		Predicted: placeholderClass,
		Count:     len(s.CustomerSegments),
	}}
	return s
}

// Histogram counts values into the right-closed bins (edges[i], edges[i+1]].
// Values at or below the first edge, or above the last, fall in no bin.
// Every bin is emitted, in ascending order; an empty input yields an empty
// list.
func Histogram(values []float64, edges []float64) []types.ChargeBin {
	if len(values) == 0 || len(edges) < 2 {
		return []types.ChargeBin{}
	}
	bins := make([]types.ChargeBin, len(edges)-1)
	for i := range bins {
		bins[i].Range = label(edges[i], edges[i+1])
	}
	for _, v := range values {
		if i := binIndex(v, edges); i >= 0 {
			bins[i].Count++
		}
	}
	return bins
}

func binIndex(v float64, edges []float64) int {
	if !(v > edges[0]) || v > edges[len(edges)-1] {
		return -1
	}
	for i := 1; i < len(edges); i++ {
		if v <= edges[i] {
			return i - 1
		}
	}
	return -1
}

func label(lo, hi float64) string {
	return "(" + formatEdge(lo) + ", " + formatEdge(hi) + "]"
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

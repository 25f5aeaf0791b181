// Package daysheet normalizes one resolved day tab into customer rows and
// the day-level totals derived from it.
package daysheet

import (
	"strings"

	"github.com/okian/chargesense/internal/domain/cell"
	"github.com/okian/chargesense/internal/domain/model"
)

// columns holds the normalized view of a sheet, one slice per column,
// each with one value per data row.
type columns struct {
	numeric  [len(model.NumericColumns)][]float64
	notes    []string
	forename []string
	surname  []string
}

// Process normalizes sheet as the tab for day. Rows whose segment is empty
// are not emitted, but still count towards the day total, bus usage and
// the charge pool.
func Process(day model.DayKey, sheet *model.RawSheet) model.DayResult {
	n := sheet.Len()
	cols := normalize(sheet)
	res := model.DayResult{Day: day, Rows: make([]model.NormalizedRow, 0, n)}

	// Day total is the sum of column sums, independent of row emission.
	for _, values := range cols.numeric {
		var colSum float64
		for _, v := range values {
			colSum += v
		}
		res.TotalCharge += colSum
	}

	for s, name := range model.SessionColumns {
		cells, ok := sheet.Column(name)
		if !ok {
			continue
		}
		for _, c := range cells {
			if cell.IsBusBooking(c) {
				res.BusUsage[s]++
			}
		}
	}

	// Charge pool is ordered column by column, matching the source layout.
	res.ChargePool = make([]float64, 0, n*len(model.ChargeColumns))
	for _, name := range model.ChargeColumns {
		res.ChargePool = append(res.ChargePool, cols.numeric[numericIndex(name)]...)
	}

	for i := 0; i < n; i++ {
		segment := strings.TrimSpace(cols.forename[i] + " " + cols.surname[i])
		if segment == "" {
			res.Dropped++
			continue
		}
		row := model.NormalizedRow{
			Segment: segment,
			Day:     day,
			Notes:   cols.notes[i],
		}
		for c := range model.NumericColumns {
			row.TotalCharge += cols.numeric[c][i]
		}
		for s, name := range model.SessionColumns {
			v := cols.numeric[numericIndex(name)][i]
			row.Sessions[s] = v
			if v > 0 {
				row.BookingCount++
			}
		}
		for c, name := range model.ChargeColumns {
			row.Charges[c] = cols.numeric[numericIndex(name)][i]
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}

func normalize(sheet *model.RawSheet) columns {
	n := sheet.Len()
	var cols columns
	for c, name := range model.NumericColumns {
		values := make([]float64, n)
		if cells, ok := sheet.Column(name); ok {
			for i, v := range cells {
				values[i] = cell.ToNumber(v)
			}
		}
		cols.numeric[c] = values
	}
	cols.notes = trimmedText(sheet, model.ColNotes, n)
	cols.forename = trimmedText(sheet, model.ColForename, n)
	cols.surname = trimmedText(sheet, model.ColSurname, n)
	return cols
}

// trimmedText renders a column as trimmed strings; a missing column is all
// empty strings.
func trimmedText(sheet *model.RawSheet, name string, n int) []string {
	out := make([]string, n)
	cells, ok := sheet.Column(name)
	if !ok {
		return out
	}
	for i, c := range cells {
		out[i] = strings.TrimSpace(c.String())
	}
	return out
}

func numericIndex(name string) int {
	for i, c := range model.NumericColumns {
		if c == name {
			return i
		}
	}
	panic("daysheet: " + name + " is not a numeric column")
}

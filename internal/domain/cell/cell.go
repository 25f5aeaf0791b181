// Package cell coerces loosely typed spreadsheet cells into numbers and
// bus-booking flags. Both functions are total: malformed input yields the
// zero value, never an error.
package cell

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/chargesense/internal/domain/model"
)

const (
	currencySymbol = "£"
	busMarker      = "bus"
)

// ToNumber returns the numeric value of c. Blank cells, the literal "bus",
// empty text and anything that does not parse as a number yield 0.
// A single leading pound sign is ignored.
func ToNumber(c model.Cell) float64 {
	switch c.Kind {
	case model.CellNumber:
		return finite(c.Number)
	case model.CellText:
		s := strings.TrimSpace(c.Text)
		s = strings.TrimSpace(strings.TrimPrefix(s, currencySymbol))
		if s == "" || strings.EqualFold(s, busMarker) {
			return 0
		}
		v, ok := parse(s)
		if !ok {
			return 0
		}
		return finite(v)
	default:
		return 0
	}
}

// IsBusBooking reports whether c marks a bus booking: text mentioning
// "bus" in any case, or a value that parses as a number greater than zero.
func IsBusBooking(c model.Cell) bool {
	switch c.Kind {
	case model.CellNumber:
		return c.Number > 0
	case model.CellText:
		if strings.Contains(strings.ToLower(c.Text), busMarker) {
			return true
		}
		v, ok := parse(strings.TrimSpace(c.Text))
		return ok && v > 0
	default:
		return false
	}
}

// parse accepts decimal floats only; hex literals such as "0x1p4" are
// rejected even though strconv allows them.
func parse(s string) (float64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// finite maps NaN and ±Inf to 0 so sums stay defined and encodable.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

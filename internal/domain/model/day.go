package model

// DayKey identifies one of the five logical weekdays.
type DayKey string

// Logical day keys, in declaration order.
const (
	Mon   DayKey = "Mon"
	Tues  DayKey = "Tues"
	Wed   DayKey = "Wed"
	Thurs DayKey = "Thurs"
	Fri   DayKey = "Fri"
)

// Days returns the day keys in declaration order.
func Days() []DayKey {
	return []DayKey{Mon, Tues, Wed, Thurs, Fri}
}

// Fixed column names, matched exactly after header trimming.
const (
	ColCharge                 = "Charge"
	ColAM                     = "AM"
	ColExplorers1             = "Explorers 1"
	ColExplorers2             = "Explorers 2"
	ColExplorers3             = "Explorers 3"
	ColLateBookingCharge      = "Late booking charge"
	ColChargeForNoBooking     = "Charge for no booking"
	ColLatePickUpCharge       = "Late pick up charge"
	ColLateCancellationCharge = "Late cancellation charge"
	ColForename               = "Forename"
	ColSurname                = "Surname"
	ColNotes                  = "Notes"
)

// NumericColumns are summed into a row's total charge.
var NumericColumns = [...]string{
	ColCharge,
	ColAM,
	ColExplorers1,
	ColExplorers2,
	ColExplorers3,
	ColLateBookingCharge,
	ColChargeForNoBooking,
	ColLatePickUpCharge,
	ColLateCancellationCharge,
}

// SessionColumns are the bookable sessions, in output order.
var SessionColumns = [...]string{
	ColAM,
	ColExplorers1,
	ColExplorers2,
	ColExplorers3,
}

// ChargeColumns feed the charge distribution histogram.
var ChargeColumns = [...]string{
	ColCharge,
	ColLateBookingCharge,
	ColChargeForNoBooking,
	ColLatePickUpCharge,
	ColLateCancellationCharge,
}

// NormalizedRow is one customer row of a day tab after normalization.
// Rows with an empty segment never become a NormalizedRow.
type NormalizedRow struct {
	Segment      string
	Day          DayKey
	TotalCharge  float64
	BookingCount int
	Notes        string
	// Sessions holds the SessionColumns values in order.
	Sessions [len(SessionColumns)]float64
	// Charges holds the ChargeColumns values in order.
	Charges [len(ChargeColumns)]float64
}

// DayResult is the processed form of one resolved day tab.
type DayResult struct {
	Day  DayKey
	Rows []NormalizedRow
	// TotalCharge sums every NumericColumns value over all rows,
	// including rows without a segment.
	TotalCharge float64
	// BusUsage counts bus bookings per SessionColumns entry over all rows.
	BusUsage [len(SessionColumns)]int
	// ChargePool lists every ChargeColumns value over all rows.
	ChargePool []float64
	// Dropped is the number of rows without a segment.
	Dropped int
}

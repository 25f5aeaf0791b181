// Package types contains the result records returned to clients.
package types

// CustomerSegment is one customer row of one day.
type CustomerSegment struct {
	Segment      string  `json:"segment"`
	Day          string  `json:"day"`
	TotalCharge  float64 `json:"totalCharge"`
	BookingCount int     `json:"bookingCount"`
	Notes        string  `json:"notes"`
}

// WeeklyCharge is the charge total of one day. PredictedCharge mirrors
// TotalCharge until a forecasting model exists.
type WeeklyCharge struct {
	Day             string  `json:"day"`
	TotalCharge     float64 `json:"totalCharge"`
	PredictedCharge float64 `json:"predictedCharge"`
}

// ChargeBin is one bucket of the charge distribution.
type ChargeBin struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// ClassificationComparison compares actual and predicted classes.
type ClassificationComparison struct {
	Actual    string `json:"actual"`
	Predicted string `json:"predicted"`
	Count     int    `json:"count"`
}

// BusUsage is the number of bus bookings for one session of one day.
type BusUsage struct {
	Day        string `json:"day"`
	BusService string `json:"busService"`
	Usage      int    `json:"usage"`
}

// Summary is the full response of an upload.
type Summary struct {
	CustomerSegments         []CustomerSegment          `json:"customerSegments"`
	WeeklyCharges            []WeeklyCharge             `json:"weeklyCharges"`
	ChargeDistribution       []ChargeBin                `json:"chargeDistribution"`
	ClassificationComparison []ClassificationComparison `json:"classificationComparison"`
	BusUsage                 []BusUsage                 `json:"busUsage"`
}

package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/chargesense/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSummaryJSON(t *testing.T) {
	Convey("Given an empty summary", t, func() {
		s := types.Summary{
			CustomerSegments:         []types.CustomerSegment{},
			WeeklyCharges:            []types.WeeklyCharge{},
			ChargeDistribution:       []types.ChargeBin{},
			ClassificationComparison: []types.ClassificationComparison{},
			BusUsage:                 []types.BusUsage{},
		}

		Convey("When encoding it", func() {
			raw, err := json.Marshal(s)
			So(err, ShouldBeNil)

			var keys map[string]json.RawMessage
			So(json.Unmarshal(raw, &keys), ShouldBeNil)

			Convey("Then exactly the five view keys are present as arrays", func() {
				So(keys, ShouldHaveLength, 5)
				for _, k := range []string{"customerSegments", "weeklyCharges", "chargeDistribution", "classificationComparison", "busUsage"} {
					So(keys, ShouldContainKey, k)
					So(string(keys[k]), ShouldEqual, "[]")
				}
			})
		})
	})

	Convey("Given a customer segment", t, func() {
		raw, err := json.Marshal(types.CustomerSegment{Segment: "Amy Pond", Day: "Mon", TotalCharge: 12.5, BookingCount: 2})
		So(err, ShouldBeNil)

		Convey("Then fields use camelCase names and notes are always present", func() {
			So(string(raw), ShouldEqual, `{"segment":"Amy Pond","day":"Mon","totalCharge":12.5,"bookingCount":2,"notes":""}`)
		})
	})
}

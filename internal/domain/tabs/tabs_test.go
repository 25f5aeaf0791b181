package tabs_test

import (
	"errors"
	"testing"

	"github.com/okian/chargesense/internal/domain/model"
	"github.com/okian/chargesense/internal/domain/tabs"
	. "github.com/smartystreets/goconvey/convey"
)

func workbookOf(names ...string) model.Workbook {
	wb := model.Workbook{}
	for _, n := range names {
		wb[n] = &model.RawSheet{Columns: []string{n}}
	}
	return wb
}

func TestResolve(t *testing.T) {
	Convey("Given a workbook with mixed day spellings", t, func() {
		wb := workbookOf("Monday", "Tue", "Wed", "Thu", "Friday")

		Convey("When resolving", func() {
			resolved, err := tabs.Resolve(wb)

			Convey("Then every day is bound in declaration order", func() {
				So(err, ShouldBeNil)
				So(resolved, ShouldHaveLength, 5)
				got := map[model.DayKey]string{}
				for i, r := range resolved {
					So(r.Day, ShouldEqual, model.Days()[i])
					So(r.Sheet, ShouldPointTo, wb[r.Tab])
					got[r.Day] = r.Tab
				}
				So(got[model.Mon], ShouldEqual, "Monday")
				So(got[model.Tues], ShouldEqual, "Tue")
				So(got[model.Wed], ShouldEqual, "Wed")
				So(got[model.Thurs], ShouldEqual, "Thu")
				So(got[model.Fri], ShouldEqual, "Friday")
			})
		})
	})

	Convey("Given several spellings of the same day", t, func() {
		wb := workbookOf("Mon", "Tuesday", "Tues", "Tue", "Wed", "Thurs", "Fri")

		Convey("Then the first declared spelling wins", func() {
			resolved, err := tabs.Resolve(wb)
			So(err, ShouldBeNil)
			So(resolved[1].Tab, ShouldEqual, "Tues")
		})
	})

	Convey("Given a workbook without a Wednesday tab", t, func() {
		wb := workbookOf("Mon", "Tues", "Thurs", "Fri", "Sheet1")

		Convey("Then resolution fails naming only Wed", func() {
			resolved, err := tabs.Resolve(wb)
			So(resolved, ShouldBeNil)
			So(errors.Is(err, tabs.ErrMissingTabs), ShouldBeTrue)

			var mte *tabs.MissingTabsError
			So(errors.As(err, &mte), ShouldBeTrue)
			So(mte.Missing, ShouldResemble, []model.DayKey{model.Wed})
			So(err.Error(), ShouldEqual, "Missing required tabs: Wed")
		})
	})

	Convey("Given tab names in the wrong case", t, func() {
		wb := workbookOf("mon", "TUES", "Wed", "thursday", "Fri")

		Convey("Then matching is case-sensitive and order is preserved", func() {
			_, err := tabs.Resolve(wb)
			var mte *tabs.MissingTabsError
			So(errors.As(err, &mte), ShouldBeTrue)
			So(mte.Missing, ShouldResemble, []model.DayKey{model.Mon, model.Tues, model.Thurs})
			So(err.Error(), ShouldEqual, "Missing required tabs: Mon, Tues, Thurs")
		})
	})

	Convey("Given a single-tab CSV workbook", t, func() {
		wb := workbookOf("Sheet1")

		Convey("Then all five days are missing", func() {
			_, err := tabs.Resolve(wb)
			var mte *tabs.MissingTabsError
			So(errors.As(err, &mte), ShouldBeTrue)
			So(mte.Missing, ShouldResemble, model.Days())
		})
	})
}

func TestAlternatives(t *testing.T) {
	Convey("Given the spelling table", t, func() {
		So(tabs.Alternatives(model.Mon), ShouldResemble, []string{"Mon", "Monday"})
		So(tabs.Alternatives(model.Tues), ShouldResemble, []string{"Tues", "Tue", "Tuesday"})
		So(tabs.Alternatives(model.Wed), ShouldResemble, []string{"Wed", "Wednesday"})
		So(tabs.Alternatives(model.Thurs), ShouldResemble, []string{"Thurs", "Thu", "Thursday"})
		So(tabs.Alternatives(model.Fri), ShouldResemble, []string{"Fri", "Friday"})

		Convey("And returned slices are copies", func() {
			alt := tabs.Alternatives(model.Mon)
			alt[0] = "changed"
			So(tabs.Alternatives(model.Mon)[0], ShouldEqual, "Mon")
		})
	})
}

// Package tabs binds the five logical weekdays to the tabs of an uploaded
// workbook, tolerating the usual spelling variants of each day name.
package tabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/chargesense/internal/domain/model"
)

// ErrMissingTabs is the sentinel kind wrapped by MissingTabsError.
var ErrMissingTabs = errors.New("missing required tabs")

// MissingTabsError lists the day keys no tab could be found for, in
// declaration order.
type MissingTabsError struct {
	Missing []model.DayKey
}

func (e *MissingTabsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, d := range e.Missing {
		names[i] = string(d)
	}
	return "Missing required tabs: " + strings.Join(names, ", ")
}

// Unwrap exposes ErrMissingTabs to errors.Is.
func (e *MissingTabsError) Unwrap() error { return ErrMissingTabs }

// alternatives lists accepted tab spellings per day, in priority order.
var alternatives = map[model.DayKey][]string{
	model.Mon:   {"Mon", "Monday"},
	model.Tues:  {"Tues", "Tue", "Tuesday"},
	model.Wed:   {"Wed", "Wednesday"},
	model.Thurs: {"Thurs", "Thu", "Thursday"},
	model.Fri:   {"Fri", "Friday"},
}

// Alternatives returns a copy of the accepted spellings for day.
func Alternatives(day model.DayKey) []string {
	return append([]string(nil), alternatives[day]...)
}

// Resolved is one day bound to the tab that satisfied it.
type Resolved struct {
	Day   model.DayKey
	Tab   string
	Sheet *model.RawSheet
}

// Resolve binds every day key to the first of its spellings present in wb.
// Matching is exact and case-sensitive. The result is in declaration order.
func Resolve(wb model.Workbook) ([]Resolved, error) {
	days := model.Days()
	out := make([]Resolved, 0, len(days))
	var missing []model.DayKey
	for _, day := range days {
		r, ok := resolveDay(wb, day)
		if !ok {
			missing = append(missing, day)
			continue
		}
		out = append(out, r)
	}
	if len(missing) > 0 {
		return nil, &MissingTabsError{Missing: missing}
	}
	return out, nil
}

func resolveDay(wb model.Workbook, day model.DayKey) (Resolved, bool) {
	for _, name := range alternatives[day] {
		if sheet, ok := wb[name]; ok {
			return Resolved{Day: day, Tab: name, Sheet: sheet}, true
		}
	}
	return Resolved{}, false
}

// String implements fmt.Stringer for log fields.
func (r Resolved) String() string {
	return fmt.Sprintf("%s=%s", r.Day, r.Tab)
}

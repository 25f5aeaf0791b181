// Package testutil builds spreadsheet fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Tab is one worksheet of a fixture workbook. The first row is the header.
type Tab struct {
	Name string
	Rows [][]any
}

// XLSX renders tabs, in order, as an xlsx document.
func XLSX(tabs ...Tab) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultName := f.GetSheetName(0)
	for i, tab := range tabs {
		if i == 0 {
			if err := f.SetSheetName(defaultName, tab.Name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(tab.Name); err != nil {
			return nil, fmt.Errorf("new sheet %q: %w", tab.Name, err)
		}
		for r, row := range tab.Rows {
			ref, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			values := row
			if err := f.SetSheetRow(tab.Name, ref, &values); err != nil {
				return nil, fmt.Errorf("write row %d of %q: %w", r+1, tab.Name, err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSV renders rows as a CSV document; nil cells become empty fields.
func CSV(rows [][]any) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				record[i] = fmt.Sprint(v)
			}
		}
		_ = w.Write(record)
	}
	w.Flush()
	return buf.Bytes()
}

// Header is the column layout of Week tabs. Two names carry stray spaces.
var Header = []any{"Forename", "Surname ", " Charge", "AM", "Explorers 1", "Explorers 2", "Explorers 3", "Late booking charge", "Notes"}

// Week returns a five-day fixture using mixed tab spellings:
//
//	Monday: Amy Pond 25 (2 bookings, notes "allergy"); a nameless row of 10
//	Tue:    Rory Williams 20 (AM marked "bus")
//	Wed:    Clara Oswald 8.5 (1 booking, notes "paid")
//	Thu:    header only
//	Friday: Amy Pond 3.25 (1 booking)
func Week() []Tab {
	return []Tab{
		{Name: "Monday", Rows: [][]any{
			Header,
			{"Amy", "Pond", "£15", 5, 0, 3, nil, 2, "  allergy "},
			{nil, nil, 10, "Bus", nil, nil, nil, nil, nil},
		}},
		{Name: "Tue", Rows: [][]any{
			Header,
			{"Rory", "Williams", 20, "bus", nil, nil, nil, nil, nil},
		}},
		{Name: "Wed", Rows: [][]any{
			Header,
			{" Clara", "Oswald ", 7.5, nil, 1, nil, nil, nil, "paid"},
		}},
		{Name: "Thu", Rows: [][]any{Header}},
		{Name: "Friday", Rows: [][]any{
			Header,
			{"Amy", "Pond", 0, nil, nil, nil, 2, "£1.25", nil},
		}},
	}
}

package model

import "strings"

// RawSheet is one spreadsheet tab as read from the upload: an ordered list
// of column names and the data rows beneath them. Column names are kept
// untrimmed; rows may be shorter than the header.
type RawSheet struct {
	Columns []string
	Rows    [][]Cell
}

// Workbook maps tab name to its sheet.
type Workbook map[string]*RawSheet

// Len returns the number of data rows.
func (s *RawSheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// Cell returns the cell at row/col, or a blank cell when out of range.
func (s *RawSheet) Cell(row, col int) Cell {
	if s == nil || row < 0 || row >= len(s.Rows) || col < 0 {
		return Blank()
	}
	r := s.Rows[row]
	if col >= len(r) {
		return Blank()
	}
	return r[col]
}

// ColumnIndex returns the index of the first column whose trimmed name
// equals name exactly.
func (s *RawSheet) ColumnIndex(name string) (int, bool) {
	if s == nil {
		return -1, false
	}
	for i, c := range s.Columns {
		if strings.TrimSpace(c) == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns every cell of the named column in row order. ok is false
// when the sheet has no such column.
func (s *RawSheet) Column(name string) (cells []Cell, ok bool) {
	idx, ok := s.ColumnIndex(name)
	if !ok {
		return nil, false
	}
	cells = make([]Cell, len(s.Rows))
	for i := range s.Rows {
		cells[i] = s.Cell(i, idx)
	}
	return cells, true
}

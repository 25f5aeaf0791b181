// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strconv"
)

// CellKind discriminates the stored value of a spreadsheet cell.
type CellKind int

const (
	// CellBlank is an empty or missing cell.
	CellBlank CellKind = iota
	// CellNumber is a cell stored as a number.
	CellNumber
	// CellText is a cell stored as free text.
	CellText
)

// Cell is a single value read from a spreadsheet tab.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

// Blank returns an empty cell.
func Blank() Cell { return Cell{Kind: CellBlank} }

// Number returns a numeric cell. NaN is stored as blank.
func Number(v float64) Cell {
	if math.IsNaN(v) {
		return Blank()
	}
	return Cell{Kind: CellNumber, Number: v}
}

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: CellText, Text: s} }

// IsBlank reports whether the cell holds no value.
func (c Cell) IsBlank() bool { return c.Kind == CellBlank }

// String renders the cell the way it is shown in names and notes.
// Blank cells render as the empty string.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

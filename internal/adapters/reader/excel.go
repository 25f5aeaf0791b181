package reader

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/chargesense/internal/domain/model"
)

// ReadExcel decodes an Excel workbook. Tab names are trimmed; the first
// non-blank row of each tab is its header.
func ReadExcel(r io.Reader) (model.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()

	wb := make(model.Workbook)
	for _, name := range f.GetSheetList() {
		sheet, err := readSheet(f, name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		wb[strings.TrimSpace(name)] = sheet
	}
	return wb, nil
}

func readSheet(f *excelize.File, name string) (*model.RawSheet, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	sheet := &model.RawSheet{}
	haveHeader := false
	for ri, row := range rows {
		// Fully blank rows carry no segment and only zeros, so skipping them leaves every view unchanged.
		if blank(row) {
			continue
		}
		if !haveHeader {
			sheet.Columns = header(row)
			haveHeader = true
			continue
		}
		cells := make([]model.Cell, len(row))
		for ci, raw := range row {
			c, err := excelCell(f, name, ci, ri, raw)
			if err != nil {
				return nil, err
			}
			cells[ci] = c
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	return sheet, nil
}

// excelCell classifies a raw value by its stored cell type. col and row
// are zero-based.
func excelCell(f *excelize.File, sheet string, col, row int, raw string) (model.Cell, error) {
	if raw == "" {
		return model.Blank(), nil
	}
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return model.Cell{}, err
	}
	typ, err := f.GetCellType(sheet, ref)
	if err != nil {
		return model.Cell{}, err
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return model.Text(raw), nil
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return model.Number(1), nil
		}
		return model.Number(0), nil
	case excelize.CellTypeError:
		return model.Blank(), nil
	default:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return model.Number(v), nil
		}
		return model.Text(raw), nil
	}
}

package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/chargesense/internal/domain/model"
)

const utf8BOM = "\ufeff"

// ReadCSV decodes a CSV document into a single-tab workbook named
// CSVSheetName. Every non-empty cell is text.
func ReadCSV(r io.Reader) (model.Workbook, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	sheet := &model.RawSheet{}
	first := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if first && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], utf8BOM)
		}
		// Blank records are skipped for the same reason as in ReadExcel.
		if blank(record) {
			continue
		}
		if first {
			sheet.Columns = header(record)
			first = false
			continue
		}
		cells := make([]model.Cell, len(record))
		for i, v := range record {
			if v == "" {
				cells[i] = model.Blank()
				continue
			}
			cells[i] = model.Text(v)
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	if first {
		return nil, errors.New("no columns to parse from file")
	}
	return model.Workbook{CSVSheetName: sheet}, nil
}

// Package reader decodes uploaded CSV and Excel files into workbooks of raw
// sheets. It trusts the file extension and does no content sniffing.
package reader

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/chargesense/internal/domain/model"
)

// CSVSheetName is the single tab a CSV upload is exposed as.
const CSVSheetName = "Sheet1"

// Format is a supported upload format.
type Format int

// Supported formats.
const (
	FormatUnknown Format = iota
	FormatCSV
	FormatExcel
)

// Extensions lists the accepted file extensions.
func Extensions() []string { return []string{".xlsx", ".xls", ".csv"} }

// Detect returns the format implied by filename's extension, compared
// case-insensitively.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV
	case ".xlsx", ".xls":
		return FormatExcel
	default:
		return FormatUnknown
	}
}

// Read decodes r according to the extension of filename.
func Read(filename string, r io.Reader) (model.Workbook, error) {
	var (
		wb  model.Workbook
		err error
	)
	switch Detect(filename) {
	case FormatCSV:
		wb, err = ReadCSV(r)
	case FormatExcel:
		wb, err = ReadExcel(r)
	default:
		return nil, &UnsupportedFileTypeError{Filename: filename, Ext: filepath.Ext(filename)}
	}
	if err != nil {
		return nil, &FileReadError{Filename: filename, Err: err}
	}
	return wb, nil
}

// header names blank columns "Unnamed: <index>" and suffixes repeated names
// with ".1", ".2" and so on.
func header(raw []string) []string {
	cols := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	dups := make(map[string]int)
	for i, name := range raw {
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for used[name] {
			dups[base]++
			name = base + "." + strconv.Itoa(dups[base])
		}
		used[name] = true
		cols[i] = name
	}
	return cols
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

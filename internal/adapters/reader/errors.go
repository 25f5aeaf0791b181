package reader

import (
	"errors"
)

// Sentinel kinds for reader errors.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileRead            = errors.New("file read failed")
)

// UnsupportedFileTypeError reports an upload whose extension is not a
// tabular format.
type UnsupportedFileTypeError struct {
	Filename string
	Ext      string
}

func (e *UnsupportedFileTypeError) Error() string {
	return "Unsupported file type. Upload CSV or Excel."
}

// Unwrap exposes ErrUnsupportedFileType.
func (e *UnsupportedFileTypeError) Unwrap() error { return ErrUnsupportedFileType }

// FileReadError reports bytes that could not be decoded as the format their
// extension claims.
type FileReadError struct {
	Filename string
	Err      error
}

func (e *FileReadError) Error() string {
	if e.Err == nil {
		return "Failed to read file"
	}
	return "Failed to read file: " + e.Err.Error()
}

// Unwrap exposes both ErrFileRead and the decode failure.
func (e *FileReadError) Unwrap() []error { return []error{ErrFileRead, e.Err} }

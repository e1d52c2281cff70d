// Package csvtable provides CSV encoding backends for rendering
// exported rows: Writer with configurable quoting, delimiter,
// newline and charset, and Standard using the encoding/csv package.
package csvtable

import (
	"errors"
	"fmt"
	"strings"
)

// Format describes the charset, separator and newline
// of CSV written by a Writer created with NewWriterWithFormat.
type Format struct {
	// Encoding specifies the character encoding of the CSV data.
	// Common values: "UTF-8", "UTF-16LE", "ISO 8859-1", "Windows 1252", "Macintosh"
	Encoding string `json:"encoding" yaml:"encoding"`

	// Separator is the field delimiter character (must be single character).
	// Common values: "," (comma), ";" (semicolon), "\t" (tab)
	Separator string `json:"separator" yaml:"separator"`

	// Newline specifies the line ending sequence.
	// Valid values: "\n" (LF), "\r\n" (CRLF), "\n\r" (LFCR)
	Newline string `json:"newline" yaml:"newline"`
}

// NewFormat returns a UTF-8 Format with separator
// and "\r\n" newlines as recommended by RFC 4180.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate returns an error if the Format can't be used
// by NewWriterWithFormat. A nil Format is invalid.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csv.Format")
	case f.Encoding == "":
		return errors.New("missing csv.Format.Encoding")
	case f.Separator == "":
		return errors.New("missing csv.Format.Separator")
	case len(f.Separator) > 1:
		return fmt.Errorf("invalid csv.Format.Separator: %q", f.Separator)
	case f.Newline == "":
		return errors.New("missing csv.Format.Newline")
	case f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csv.Format.Newline: %q", f.Newline)
	}
	return nil
}

// EscapeQuotes doubles the double quotes in val
// like RFC 4180 requires within quoted fields.
func EscapeQuotes(val string) string {
	return strings.ReplaceAll(val, `"`, `""`)
}

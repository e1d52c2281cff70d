package csvtable

import (
	"encoding/csv"
	"io"
)

// Standard encodes rows with the encoding/csv package.
// The zero value uses comma as delimiter and "\n" as newline.
type Standard struct {
	// Comma is the field delimiter, ',' if zero.
	Comma rune
	// UseCRLF uses "\r\n" as newline.
	UseCRLF bool
}

// NewStandard returns a Standard backend
// with comma delimiter and "\n" newlines.
func NewStandard() Standard {
	return Standard{Comma: ','}
}

// EncodeRow writes row as one CSV line to dest.
func (s Standard) EncodeRow(dest io.Writer, row []string) error {
	w := csv.NewWriter(dest)
	if s.Comma != 0 {
		w.Comma = s.Comma
	}
	w.UseCRLF = s.UseCRLF
	err := w.Write(row)
	if err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

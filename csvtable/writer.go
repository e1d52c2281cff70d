package csvtable

import (
	"bytes"
	"io"
	"strings"
)

// Encoder is an interface to encode byte strings.
type Encoder interface {
	Bytes([]byte) ([]byte, error)
}

// EncoderFunc implements the Encoder interface for a function.
type EncoderFunc func([]byte) ([]byte, error)

func (f EncoderFunc) Bytes(data []byte) ([]byte, error) {
	return f(data)
}

// PassthroughEncoder returns an Encoder that returns the passed data unchanged.
func PassthroughEncoder() Encoder {
	return EncoderFunc(func(data []byte) ([]byte, error) {
		return data, nil
	})
}

// Writer encodes rows of strings as CSV lines.
//
// Fields containing the delimiter, a quote, a newline
// or a carriage return are quoted,
// quotes within fields are escaped.
// Every encoded line is passed through the optional Encoder.
type Writer struct {
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	delimiter        rune
	newLine          string
	encoder          Encoder
}

// NewWriter returns a Writer using comma as delimiter,
// "\r\n" as newline and RFC 4180 quote escaping.
func NewWriter() *Writer {
	return &Writer{
		escapeQuotes: `""`,
		delimiter:    ',',
		newLine:      "\r\n",
	}
}

// NewWriterWithFormat returns a Writer using the separator
// and newline of format and a charset Encoder
// if format.Encoding is not UTF-8.
func NewWriterWithFormat(format *Format) (*Writer, error) {
	err := format.Validate()
	if err != nil {
		return nil, err
	}
	w := NewWriter().
		WithDelimiter(rune(format.Separator[0])).
		WithNewLine(format.Newline)
	if !isUTF8(format.Encoding) {
		encoder, err := CharsetEncoder(format.Encoding)
		if err != nil {
			return nil, err
		}
		w = w.WithEncoder(encoder)
	}
	return w, nil
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// EncodeRow writes row as one CSV line to dest.
func (w *Writer) EncodeRow(dest io.Writer, row []string) error {
	line, err := w.Line(row)
	if err != nil {
		return err
	}
	_, err = dest.Write(line)
	return err
}

// Line returns row encoded as CSV line including the newline.
func (w *Writer) Line(row []string) ([]byte, error) {
	var rowBuf bytes.Buffer
	for col, field := range row {
		if col > 0 {
			rowBuf.WriteRune(w.delimiter)
		}
		rowBuf.WriteString(w.escapeString(field))
	}
	rowBuf.WriteString(w.newLine)
	if w.encoder == nil {
		return rowBuf.Bytes(), nil
	}
	return w.encoder.Bytes(rowBuf.Bytes())
}

func (w *Writer) escapeString(str string) string {
	switch {
	case w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsAny(str, "\"\r\n"):
		return `"` + strings.ReplaceAll(str, `"`, w.escapeQuotes) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return str
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

func (w *Writer) WithEscapeQuotes(escapeQuotes string) *Writer {
	mod := w.clone()
	mod.escapeQuotes = escapeQuotes
	return mod
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

func (w *Writer) WithEncoder(encoder Encoder) *Writer {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

func (w *Writer) QuoteAllFields() bool {
	return w.quoteAllFields
}

func (w *Writer) QuoteEmptyFields() bool {
	return w.quoteEmptyFields
}

func (w *Writer) Delimiter() rune {
	return w.delimiter
}

func (w *Writer) EscapeQuotes() string {
	return w.escapeQuotes
}

func (w *Writer) NewLine() string {
	return w.newLine
}

func (w *Writer) Encoder() Encoder {
	return w.encoder
}

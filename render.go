package comma

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"

	fs "github.com/ungerik/go-fs"
)

// Backend encodes rows of strings as CSV text.
// Quoting and escaping are the responsibility of the Backend.
//
// Implemented by csvtable.Writer and csvtable.Standard.
type Backend interface {
	// EncodeRow writes row including the line terminator to dest.
	EncodeRow(dest io.Writer, row []string) error
}

// BackendFunc implements the Backend interface with a function.
type BackendFunc func(dest io.Writer, row []string) error

func (f BackendFunc) EncodeRow(dest io.Writer, row []string) error {
	return f(dest, row)
}

// Renderer writes Views as CSV using a Backend.
//
// Cell values are converted to strings with the optional
// TypeFormatters, nil values are written as NilValue,
// []byte as string, time.Time as RFC 3339,
// and all other values with fmt.Sprint.
// Rows are written as they are without checking
// their number of cells against the header row.
type Renderer struct {
	backend    Backend
	formatters *TypeFormatters
	headerRow  bool
	nilValue   string
}

// NewRenderer returns a Renderer for backend
// that writes a header row.
func NewRenderer(backend Backend) *Renderer {
	return &Renderer{
		backend:   backend,
		headerRow: true,
	}
}

func (r *Renderer) clone() *Renderer {
	c := new(Renderer)
	*c = *r
	return c
}

func (r *Renderer) WithHeaderRow(headerRow bool) *Renderer {
	mod := r.clone()
	mod.headerRow = headerRow
	return mod
}

func (r *Renderer) WithFormatters(formatters *TypeFormatters) *Renderer {
	mod := r.clone()
	mod.formatters = formatters
	return mod
}

func (r *Renderer) WithTypeFormatter(typ reflect.Type, fmt Formatter) *Renderer {
	mod := r.clone()
	mod.formatters = r.formatters.WithTypeFormatter(typ, fmt)
	return mod
}

func (r *Renderer) WithKindFormatter(kind reflect.Kind, fmt Formatter) *Renderer {
	mod := r.clone()
	mod.formatters = r.formatters.WithKindFormatter(kind, fmt)
	return mod
}

func (r *Renderer) WithNilValue(nilValue string) *Renderer {
	mod := r.clone()
	mod.nilValue = nilValue
	return mod
}

func (r *Renderer) WithBackend(backend Backend) *Renderer {
	mod := r.clone()
	mod.backend = backend
	return mod
}

func (r *Renderer) HeaderRow() bool  { return r.headerRow }
func (r *Renderer) NilValue() string { return r.nilValue }
func (r *Renderer) Backend() Backend { return r.backend }

// RenderTo writes the header row unless disabled
// and all rows of view to dest.
func (r *Renderer) RenderTo(dest io.Writer, view View) error {
	if r.backend == nil {
		return errors.New("comma.Renderer has no Backend")
	}
	if r.headerRow {
		err := r.backend.EncodeRow(dest, view.Columns())
		if err != nil {
			return err
		}
	}
	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		fields, err := r.rowStrings(view, row)
		if err != nil {
			return err
		}
		err = r.backend.EncodeRow(dest, fields)
		if err != nil {
			return err
		}
	}
	return nil
}

// Render returns view rendered as CSV.
func (r *Renderer) Render(view View) ([]byte, error) {
	var buf bytes.Buffer
	err := r.RenderTo(&buf, view)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderString returns view rendered as CSV string.
func (r *Renderer) RenderString(view View) (string, error) {
	data, err := r.Render(view)
	return string(data), err
}

// RenderRows returns headers and rows rendered as CSV string.
func (r *Renderer) RenderRows(headers []string, rows [][]any) (string, error) {
	return r.RenderString(NewTable(headers, rows))
}

// RenderFile renders view into memory first
// and then writes it to file, so file is not
// touched in case of a formatting error.
func (r *Renderer) RenderFile(file fs.File, view View) error {
	data, err := r.Render(view)
	if err != nil {
		return err
	}
	writer, err := file.OpenWriter()
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	if err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

// CellString formats a cell value as string.
func (r *Renderer) CellString(val any) (string, error) {
	v := reflect.ValueOf(val)
	str, err := r.formatters.Format(v)
	if !errors.Is(err, errors.ErrUnsupported) {
		return str, err
	}
	if ValueIsNil(v) {
		return r.nilValue, nil
	}
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return r.nilValue, nil
		}
		v = v.Elem()
	}
	switch x := v.Interface().(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case time.Time:
		return x.Format(time.RFC3339), nil
	}
	return fmt.Sprint(v.Interface()), nil
}

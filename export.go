package comma

import (
	"io"

	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-comma/csvtable"
)

// Exporter combines a Generator with a Renderer
// to export objects as CSV.
type Exporter struct {
	Generator *Generator
	Renderer  *Renderer
}

// NewExporter returns an Exporter resolving views from registry
// and rendering with backend.
func NewExporter(registry *Registry, backend Backend) *Exporter {
	return &Exporter{
		Generator: NewGenerator(registry),
		Renderer:  NewRenderer(backend),
	}
}

// DefaultExporter returns an Exporter using the DefaultRegistry,
// the LookupAttribute accessor and the encoding/csv based
// csvtable.Standard backend.
func DefaultExporter() *Exporter {
	return NewExporter(DefaultRegistry, csvtable.NewStandard())
}

// Table returns the generated headers and rows
// of view for subject without rendering them.
func (e *Exporter) Table(subject any, view string) (*Table, error) {
	return e.Generator.Generate(subject, view)
}

// Export returns subject exported with view as CSV string.
// Nothing is rendered if the rows can't be generated.
func (e *Exporter) Export(subject any, view string) (string, error) {
	table, err := e.Generator.Generate(subject, view)
	if err != nil {
		return "", err
	}
	return e.Renderer.RenderString(table)
}

// ExportTo writes subject exported with view as CSV to dest.
// All rows are generated before anything is written to dest.
func (e *Exporter) ExportTo(dest io.Writer, subject any, view string) error {
	table, err := e.Generator.Generate(subject, view)
	if err != nil {
		return err
	}
	return e.Renderer.RenderTo(dest, table)
}

// ExportFile writes subject exported with view as CSV to file.
func (e *Exporter) ExportFile(file fs.File, subject any, view string) error {
	table, err := e.Generator.Generate(subject, view)
	if err != nil {
		return err
	}
	return e.Renderer.RenderFile(file, table)
}

// ToComma returns subject exported as CSV string
// using the DefaultExporter.
// The optional view name defaults to DefaultView.
func ToComma(subject any, view ...string) (string, error) {
	viewName := DefaultView
	if len(view) > 0 && view[0] != "" {
		viewName = view[0]
	}
	return DefaultExporter().Export(subject, viewName)
}

package comma

import (
	"fmt"
	"reflect"
	"slices"
)

// Generator resolves views from a Registry
// and extracts the rows of exported objects.
type Generator struct {
	// Registry to resolve views from.
	// DefaultRegistry is used if nil.
	Registry *Registry
	// Accessor looks up column names.
	// LookupAttribute is used if nil.
	Accessor Accessor
}

// NewGenerator returns a Generator for registry
// using the default LookupAttribute accessor.
func NewGenerator(registry *Registry) *Generator {
	return &Generator{Registry: registry}
}

// WithAccessor returns a copy of the Generator using accessor.
func (g *Generator) WithAccessor(accessor Accessor) *Generator {
	mod := *g
	mod.Accessor = accessor
	return &mod
}

// Generate returns the headers and rows of view for subject.
//
// If subject is a slice or array, then the view is resolved
// for the element type and the rows of all elements
// are concatenated in input order.
// For interface element types without a view declaration,
// the view is resolved for the dynamic type of every element
// and all elements must resolve to the same headers.
// An empty collection of such an interface type
// results in a Table without headers and rows.
func (g *Generator) Generate(subject any, view string) (*Table, error) {
	items, isCollection := collectionItems(subject)
	if !isCollection {
		if isNilObject(subject) {
			return nil, fmt.Errorf("%w of type %T", ErrNilObject, subject)
		}
		columns, err := g.registry().Resolve(TypeOf(subject), view)
		if err != nil {
			return nil, err
		}
		table, err := g.GenerateColumns(subject, columns)
		if err != nil {
			return nil, err
		}
		table.Tit = view
		return table, nil
	}

	elemType := derefType(reflect.TypeOf(subject).Elem())
	columns, err := g.registry().Resolve(elemType, view)
	if err != nil && elemType.Kind() == reflect.Interface && len(items) == 0 {
		// No element to resolve the view for
		return &Table{Tit: view}, nil
	}
	if err == nil || elemType.Kind() != reflect.Interface {
		if err != nil {
			return nil, err
		}
		table, err := g.generateCollection(items, columns)
		if err != nil {
			return nil, err
		}
		table.Tit = view
		return table, nil
	}

	table := &Table{Tit: view}
	extractor := g.extractor()
	for i, item := range items {
		columns, err := g.registry().Resolve(TypeOf(item), view)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		headers := ColumnHeaders(columns)
		if i == 0 {
			table.Headers = headers
		} else if !slices.Equal(headers, table.Headers) {
			return nil, fmt.Errorf("object %d of type %s has headers %q different from %q", i, TypeOf(item), headers, table.Headers)
		}
		rows, err := extractor.Extract(item, columns)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		table.Rows = append(table.Rows, rows...)
	}
	return table, nil
}

// GenerateColumns returns the headers and rows of
// subject for the passed columns without using the Registry.
// Slices and arrays are exported element by element.
func (g *Generator) GenerateColumns(subject any, columns []*Column) (*Table, error) {
	for _, col := range columns {
		if err := col.Validate(); err != nil {
			return nil, err
		}
	}
	if items, ok := collectionItems(subject); ok {
		return g.generateCollection(items, columns)
	}
	if isNilObject(subject) {
		return nil, fmt.Errorf("%w of type %T", ErrNilObject, subject)
	}
	rows, err := g.extractor().Extract(subject, columns)
	if err != nil {
		return nil, err
	}
	return NewTable(ColumnHeaders(columns), rows), nil
}

func (g *Generator) generateCollection(items []any, columns []*Column) (*Table, error) {
	rows, err := g.extractor().ExtractAll(items, columns)
	if err != nil {
		return nil, err
	}
	return NewTable(ColumnHeaders(columns), rows), nil
}

func (g *Generator) registry() *Registry {
	if g.Registry == nil {
		return DefaultRegistry
	}
	return g.Registry
}

func (g *Generator) extractor() *Extractor {
	return &Extractor{Accessor: g.Accessor}
}

package comma

import (
	"fmt"
	"strings"
)

// Deriver computes the value of a column from the exported object.
type Deriver func(obj any) (any, error)

// Transform converts the value looked up or derived for a column
// before it is written as cell or traversed as association.
type Transform func(val any) (any, error)

// Column describes one exported column.
//
// A Column without Children produces one cell per row.
// A Column with Children traverses into the associated
// object or collection of objects returned for the column
// and produces the cells of its children instead of a cell of its own.
//
// Columns must not be modified after they have been
// passed to a Registry.
type Column struct {
	// Name is used to look up the column value with an Accessor
	// and to derive the default header.
	Name string
	// HeaderText overrides the humanized Name as header.
	HeaderText string
	// Deriver replaces the Accessor lookup of Name if not nil.
	Deriver Deriver
	// Transform is applied to the looked up or derived value if not nil.
	Transform Transform
	// Children describe the columns of the associated object(s).
	Children []*Column

	invalid string
}

// ColumnOption configures a Column created by Col.
type ColumnOption func(*Column)

// Col returns a new Column with the passed name and options.
// Errors in the options are reported by Column.Validate.
func Col(name string, options ...ColumnOption) *Column {
	col := &Column{Name: name}
	for _, option := range options {
		option(col)
	}
	return col
}

// Cols returns a Column for every passed name.
func Cols(names ...string) []*Column {
	cols := make([]*Column, len(names))
	for i, name := range names {
		cols[i] = Col(name)
	}
	return cols
}

// Header sets an explicit header for the column.
func Header(header string) ColumnOption {
	return func(col *Column) {
		col.HeaderText = header
	}
}

// Derive sets a function that computes the column value
// from the exported object instead of looking up the column name.
func Derive(deriver Deriver) ColumnOption {
	return func(col *Column) {
		if deriver == nil {
			col.invalid = "nil Deriver"
			return
		}
		col.Deriver = deriver
	}
}

// DeriveFunc returns an option like Derive for a function
// accepting the concrete type T of the exported object.
// Deriving from an object of a different type returns an error.
func DeriveFunc[T any](f func(T) any) ColumnOption {
	if f == nil {
		return Derive(nil)
	}
	return Derive(func(obj any) (any, error) {
		t, ok := obj.(T)
		if !ok {
			return nil, fmt.Errorf("can't derive column from %T, expected %T", obj, *new(T))
		}
		return f(t), nil
	})
}

// Format sets a Transform for the value of the column.
func Format(transform Transform) ColumnOption {
	return func(col *Column) {
		if transform == nil {
			col.invalid = "nil Transform"
			return
		}
		col.Transform = transform
	}
}

// Children makes the column traverse into the object
// or collection of objects returned for the column
// and export the passed child columns of it.
func Children(children ...*Column) ColumnOption {
	return func(col *Column) {
		if len(children) == 0 {
			col.invalid = "no child columns"
			return
		}
		col.Children = append(col.Children, children...)
	}
}

// Header returns the explicit HeaderText
// or else the humanized Name of the column.
func (c *Column) Header() string {
	if c.HeaderText != "" {
		return c.HeaderText
	}
	return Humanize(c.Name)
}

// Headers returns the headers of all cells produced by the column.
// Columns with children contribute the headers of their children
// flattened left to right, depth first.
func (c *Column) Headers() []string {
	if len(c.Children) == 0 {
		return []string{c.Header()}
	}
	return ColumnHeaders(c.Children)
}

// Width returns the number of cells produced by the column.
func (c *Column) Width() int {
	if len(c.Children) == 0 {
		return 1
	}
	return ColumnsWidth(c.Children)
}

// IsNested returns if the column has child columns.
func (c *Column) IsNested() bool {
	return len(c.Children) > 0
}

// Value returns the result of the Deriver if not nil,
// or else the attribute Name of obj looked up with accessor.
// If the column has a Transform, then it is applied to the value.
func (c *Column) Value(obj any, accessor Accessor) (val any, err error) {
	if c.Deriver != nil {
		val, err = c.Deriver(obj)
	} else {
		if accessor == nil {
			accessor = LookupAttribute
		}
		val, err = accessor(obj, c.Name)
	}
	if err != nil {
		return nil, err
	}
	if c.Transform != nil {
		return c.Transform(val)
	}
	return val, nil
}

// Validate returns an InvalidColumnSpecError
// if the column or one of its children is malformed.
func (c *Column) Validate() error {
	if c == nil {
		return newInvalidColumnSpecError("", "nil Column")
	}
	if c.invalid != "" {
		return newInvalidColumnSpecError(c.Name, c.invalid)
	}
	if strings.TrimSpace(c.Name) != c.Name {
		return newInvalidColumnSpecError(c.Name, "name has leading or trailing whitespace")
	}
	if c.Name == "" && c.Deriver == nil {
		return newInvalidColumnSpecError("", "column needs a name or a Deriver")
	}
	if c.Name == "" && c.HeaderText == "" && len(c.Children) == 0 {
		return newInvalidColumnSpecError("", "column without name needs a header")
	}
	for _, child := range c.Children {
		if err := child.Validate(); err != nil {
			if e, ok := err.(*InvalidColumnSpecError); ok && c.Name != "" && e.Name != "" {
				return newInvalidColumnSpecError(c.Name+"."+e.Name, e.Reason)
			}
			return err
		}
	}
	return nil
}

func (c *Column) clone() *Column {
	clone := *c
	if len(c.Children) > 0 {
		clone.Children = cloneColumns(c.Children)
	}
	return &clone
}

func cloneColumns(columns []*Column) []*Column {
	clones := make([]*Column, len(columns))
	for i, col := range columns {
		clones[i] = col.clone()
	}
	return clones
}

// ColumnHeaders returns the flattened headers of columns.
func ColumnHeaders(columns []*Column) []string {
	headers := make([]string, 0, len(columns))
	for _, col := range columns {
		headers = append(headers, col.Headers()...)
	}
	return headers
}

// ColumnsWidth returns the number of cells produced by columns.
func ColumnsWidth(columns []*Column) (width int) {
	for _, col := range columns {
		width += col.Width()
	}
	return width
}

package comma

import (
	"fmt"
	"reflect"
)

// Extractor turns objects into row fragments using column descriptors.
//
// Columns without children add one cell to every fragment.
// A column with children traverses into the associated value:
//   - a single object yields the fragments of its children
//   - a slice or array yields the concatenated fragments of all elements,
//     an empty collection yields no fragments
//   - nil yields one fragment of nil cells
//
// Every fragment extracted so far is combined with every fragment
// of a nested column, so sibling nested columns produce the
// cross product of their fragments in declaration order,
// with the fragments of the leftmost column varying slowest.
type Extractor struct {
	// Accessor looks up column names.
	// LookupAttribute is used if nil.
	Accessor Accessor
}

// Extract returns the row fragments for obj.
// Any error aborts the whole extraction.
// A nil obj results in an error wrapping ErrNilObject.
func (e *Extractor) Extract(obj any, columns []*Column) ([][]any, error) {
	if isNilObject(obj) {
		return nil, fmt.Errorf("%w of type %T", ErrNilObject, obj)
	}
	accessor := e.accessor()
	fragments := [][]any{make([]any, 0, ColumnsWidth(columns))}
	for _, col := range columns {
		if !col.IsNested() {
			val, err := col.Value(obj, accessor)
			if err != nil {
				return nil, columnError(col, err)
			}
			for i := range fragments {
				fragments[i] = append(fragments[i], val)
			}
			continue
		}

		nested, err := e.extractNested(obj, col)
		if err != nil {
			return nil, columnError(col, err)
		}
		fragments = crossProduct(fragments, nested)
	}
	return fragments, nil
}

// ExtractAll returns the concatenated row fragments of all objects
// in input order.
func (e *Extractor) ExtractAll(objs []any, columns []*Column) ([][]any, error) {
	var rows [][]any
	for i, obj := range objs {
		fragments, err := e.Extract(obj, columns)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		rows = append(rows, fragments...)
	}
	return rows, nil
}

func (e *Extractor) extractNested(obj any, col *Column) ([][]any, error) {
	val, err := col.Value(obj, e.accessor())
	if err != nil {
		return nil, err
	}
	items, isCollection := collectionItems(val)
	if !isCollection {
		return e.extractRelated(val, col.Children)
	}
	var fragments [][]any
	for i, item := range items {
		itemFragments, err := e.extractRelated(item, col.Children)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		fragments = append(fragments, itemFragments...)
	}
	return fragments, nil
}

func (e *Extractor) extractRelated(related any, children []*Column) ([][]any, error) {
	if ValueIsNil(reflect.ValueOf(related)) {
		return [][]any{make([]any, ColumnsWidth(children))}, nil
	}
	return e.Extract(related, children)
}

func (e *Extractor) accessor() Accessor {
	if e == nil || e.Accessor == nil {
		return LookupAttribute
	}
	return e.Accessor
}

// isNilObject returns true for nil and nil pointers, interfaces and maps.
// Unlike ValueIsNil it does not treat struct{} as nil.
func isNilObject(obj any) bool {
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Ptr, reflect.Interface, reflect.Map:
		return v.IsNil()
	}
	return false
}

func crossProduct(left, right [][]any) [][]any {
	result := make([][]any, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			row := make([]any, len(l), cap(l)+len(r))
			copy(row, l)
			result = append(result, append(row, r...))
		}
	}
	return result
}

func columnError(col *Column, err error) error {
	if col.Name == "" {
		return fmt.Errorf("column %q: %w", col.Header(), err)
	}
	return fmt.Errorf("column %q: %w", col.Name, err)
}

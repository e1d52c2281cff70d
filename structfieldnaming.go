package comma

import (
	"fmt"
	"reflect"
	"strings"
)

// DefaultStructFieldNaming uses "col" as name tag
// and ignores fields tagged with "-".
var DefaultStructFieldNaming = StructFieldNaming{
	Tag:    "col",
	Ignore: "-",
}

// StructFieldNaming defines how struct fields
// are matched to column names by StructAccessor.
//
// nil is a valid value for *StructFieldNaming
// and is equal to the zero value
// which will match all exported struct fields
// by their field name.
type StructFieldNaming struct {
	// Tag is the struct field tag to be used as column name.
	// If Tag is empty, then every struct field will be treated as untagged.
	Tag string
	// Ignore is the tag value that excludes a field from matching.
	Ignore string
	// Untagged will be called with the struct field name to
	// return a column name in case the struct field has no tag named Tag.
	// If Untagged is nil, then the struct field name will be used.
	Untagged func(fieldName string) (column string)
}

// String implements the fmt.Stringer interface for StructFieldNaming.
func (n *StructFieldNaming) String() string {
	if n == nil {
		return `StructFieldNaming{Tag: "", Ignore: ""}`
	}
	return fmt.Sprintf("StructFieldNaming{Tag: %#v, Ignore: %#v}", n.Tag, n.Ignore)
}

// StructFieldColumn returns the column name for a struct field.
func (n *StructFieldNaming) StructFieldColumn(structField reflect.StructField) string {
	if n == nil {
		return structField.Name
	}
	if n.Tag != "" {
		if tag, ok := structField.Tag.Lookup(n.Tag); ok {
			if i := strings.IndexByte(tag, ','); i != -1 {
				tag = tag[:i]
			}
			if tag != "" {
				return tag
			}
		}
	}
	if n.Untagged == nil {
		return structField.Name
	}
	return n.Untagged(structField.Name)
}

// IsIgnored returns if the column name of the struct field
// equals the Ignore value.
func (n *StructFieldNaming) IsIgnored(structField reflect.StructField) bool {
	return n != nil && n.Ignore != "" && n.StructFieldColumn(structField) == n.Ignore
}

// ColumnStructFieldValue returns the value of the struct field
// with the column name or the Go field name matching column
// or its PascalCase form.
// An invalid reflect.Value is returned if no field matches.
func (n *StructFieldNaming) ColumnStructFieldValue(strct reflect.Value, column string) reflect.Value {
	for strct.Kind() == reflect.Ptr {
		if strct.IsNil() {
			return reflect.Value{}
		}
		strct = strct.Elem()
	}
	if strct.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	var (
		fields = StructFieldTypes(strct.Type())
		values = StructFieldValues(strct)
		pascal = PascalCase(column)
	)
	// Tagged names take precedence over Go field names
	for i, field := range fields {
		if !n.IsIgnored(field) && n.StructFieldColumn(field) == column {
			return values[i]
		}
	}
	for i, field := range fields {
		if !n.IsIgnored(field) && (field.Name == column || field.Name == pascal) {
			return values[i]
		}
	}
	return reflect.Value{}
}

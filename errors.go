package comma

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrViewNotFound is matched by errors.Is
	// for every *ViewNotFoundError.
	ErrViewNotFound = errors.New("view not found")

	// ErrAttributeMissing is matched by errors.Is
	// for every *AttributeMissingError.
	ErrAttributeMissing = errors.New("attribute missing")

	// ErrInvalidColumnSpec is matched by errors.Is
	// for every *InvalidColumnSpecError.
	ErrInvalidColumnSpec = errors.New("invalid column spec")

	// ErrNilObject is returned for nil objects
	// passed to be exported.
	ErrNilObject = errors.New("can't export nil object")
)

// ViewNotFoundError is returned when a view name
// is not declared for a type or any of its parent types.
type ViewNotFoundError struct {
	Type reflect.Type
	View string
}

func (e *ViewNotFoundError) Error() string {
	return fmt.Sprintf("view %q not found for type %s", e.View, typeName(e.Type))
}

func (e *ViewNotFoundError) Is(target error) bool {
	return target == ErrViewNotFound
}

// AttributeMissingError is returned when an object
// does not expose an attribute with the name of a column.
type AttributeMissingError struct {
	Name   string
	Object any
	Type   reflect.Type
}

// NewAttributeMissingError returns an AttributeMissingError
// for the attribute name of obj.
func NewAttributeMissingError(name string, obj any) *AttributeMissingError {
	return &AttributeMissingError{
		Name:   name,
		Object: obj,
		Type:   reflect.TypeOf(obj),
	}
}

func (e *AttributeMissingError) Error() string {
	return fmt.Sprintf("attribute %q missing on %s", e.Name, typeName(e.Type))
}

func (e *AttributeMissingError) Is(target error) bool {
	return target == ErrAttributeMissing
}

// InvalidColumnSpecError is returned at declaration time
// for malformed column or view declarations.
type InvalidColumnSpecError struct {
	Name   string
	Reason string
}

func newInvalidColumnSpecError(name, reason string) *InvalidColumnSpecError {
	return &InvalidColumnSpecError{Name: name, Reason: reason}
}

func (e *InvalidColumnSpecError) Error() string {
	if e.Name == "" {
		return "invalid column spec: " + e.Reason
	}
	return fmt.Sprintf("invalid column spec %q: %s", e.Name, e.Reason)
}

func (e *InvalidColumnSpecError) Is(target error) bool {
	return target == ErrInvalidColumnSpec
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

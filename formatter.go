package comma

import (
	"errors"
	"fmt"
	"reflect"
)

// Formatter converts a cell value to its CSV string representation.
//
// Formatters return errors.ErrUnsupported for values
// they don't support so that the caller can fall back
// to another formatter.
type Formatter interface {
	Format(reflect.Value) (string, error)
}

// FormatterFunc implements the Formatter interface with a function.
type FormatterFunc func(reflect.Value) (string, error)

func (f FormatterFunc) Format(v reflect.Value) (string, error) {
	return f(v)
}

// SprintFormatter formats any value with fmt.Sprint.
type SprintFormatter struct{}

func (SprintFormatter) Format(v reflect.Value) (string, error) {
	return fmt.Sprint(v.Interface()), nil
}

// PrintfFormatter formats values by calling
// fmt.Sprintf with this type's string value as format.
type PrintfFormatter string

func (format PrintfFormatter) Format(v reflect.Value) (string, error) {
	return fmt.Sprintf(string(format), v.Interface()), nil
}

// UnsupportedFormatter always returns errors.ErrUnsupported.
type UnsupportedFormatter struct{}

func (UnsupportedFormatter) Format(reflect.Value) (string, error) {
	return "", errors.ErrUnsupported
}

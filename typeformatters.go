package comma

import (
	"errors"
	"maps"
	"reflect"
	"slices"
)

var _ Formatter = new(TypeFormatters)

// TypeFormatters selects a Formatter by the type of a value.
//
// Formatters registered for the exact type are tried first,
// then formatters for implemented interface types
// in the order they were added,
// then formatters for the reflect.Kind, then Other.
// A formatter returning errors.ErrUnsupported passes
// the value on to the next matching formatter.
// nil is a valid *TypeFormatters that supports no values.
type TypeFormatters struct {
	Types          map[reflect.Type]Formatter
	InterfaceTypes []InterfaceTypeFormatter
	Kinds          map[reflect.Kind]Formatter
	Other          Formatter
}

// InterfaceTypeFormatter is used for values
// implementing the interface type Type.
type InterfaceTypeFormatter struct {
	Type      reflect.Type
	Formatter Formatter
}

func (f *TypeFormatters) Format(val reflect.Value) (string, error) {
	if f == nil || !val.IsValid() {
		return "", errors.ErrUnsupported
	}
	if tf, ok := f.Types[val.Type()]; ok {
		str, err := tf.Format(val)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, err
		}
	}
	for _, it := range f.InterfaceTypes {
		if val.Type().Implements(it.Type) {
			str, err := it.Formatter.Format(val)
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, err
			}
		}
	}
	if kf, ok := f.Kinds[val.Kind()]; ok {
		str, err := kf.Format(val)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, err
		}
	}
	if f.Other != nil {
		return f.Other.Format(val)
	}
	return "", errors.ErrUnsupported
}

func (f *TypeFormatters) cloneOrNew() *TypeFormatters {
	if f == nil {
		return new(TypeFormatters)
	}
	return &TypeFormatters{
		Types:          maps.Clone(f.Types),
		InterfaceTypes: slices.Clone(f.InterfaceTypes),
		Kinds:          maps.Clone(f.Kinds),
		Other:          f.Other,
	}
}

// WithTypeFormatter returns a copy with fmt registered for typ.
func (f *TypeFormatters) WithTypeFormatter(typ reflect.Type, fmt Formatter) *TypeFormatters {
	mod := f.cloneOrNew()
	if mod.Types == nil {
		mod.Types = make(map[reflect.Type]Formatter)
	}
	mod.Types[typ] = fmt
	return mod
}

// WithInterfaceTypeFormatter returns a copy with fmt registered
// for all types implementing the interface type typ.
// Registering typ again moves it to the end of the matching order.
func (f *TypeFormatters) WithInterfaceTypeFormatter(typ reflect.Type, fmt Formatter) *TypeFormatters {
	mod := f.cloneOrNew()
	mod.InterfaceTypes = slices.DeleteFunc(mod.InterfaceTypes, func(it InterfaceTypeFormatter) bool {
		return it.Type == typ
	})
	mod.InterfaceTypes = append(mod.InterfaceTypes, InterfaceTypeFormatter{Type: typ, Formatter: fmt})
	return mod
}

// WithKindFormatter returns a copy with fmt registered for kind.
func (f *TypeFormatters) WithKindFormatter(kind reflect.Kind, fmt Formatter) *TypeFormatters {
	mod := f.cloneOrNew()
	if mod.Kinds == nil {
		mod.Kinds = make(map[reflect.Kind]Formatter)
	}
	mod.Kinds[kind] = fmt
	return mod
}

// WithOtherFormatter returns a copy with fmt used
// for all values not matched otherwise.
func (f *TypeFormatters) WithOtherFormatter(fmt Formatter) *TypeFormatters {
	mod := f.cloneOrNew()
	mod.Other = fmt
	return mod
}

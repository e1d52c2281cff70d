package comma

import (
	"fmt"
	"reflect"
)

// StructAccessor returns an Accessor that falls back to reflection
// for objects not implementing Attributes.
//
// Names are resolved in this order:
//   - Attributes and map[string]any like LookupAttribute
//   - exported methods without arguments named like the column
//     or its PascalCase form, returning one value or a value and an error
//   - exported struct fields matched by naming, see
//     StructFieldNaming.ColumnStructFieldValue
//
// A nil naming matches fields only by their Go names.
func StructAccessor(naming *StructFieldNaming) Accessor {
	return func(obj any, name string) (any, error) {
		switch x := obj.(type) {
		case Attributes:
			if value, ok := x.Attribute(name); ok {
				return value, nil
			}
			return nil, NewAttributeMissingError(name, obj)
		case map[string]any:
			if value, ok := x[name]; ok {
				return value, nil
			}
			return nil, NewAttributeMissingError(name, obj)
		}

		v := reflect.ValueOf(obj)
		if ValueIsNil(v) {
			return nil, NewAttributeMissingError(name, obj)
		}
		if value, found, err := callMethod(v, name); found {
			return value, err
		}
		field := naming.ColumnStructFieldValue(v, name)
		if !field.IsValid() || !field.CanInterface() {
			return nil, NewAttributeMissingError(name, obj)
		}
		return field.Interface(), nil
	}
}

func callMethod(v reflect.Value, name string) (value any, found bool, err error) {
	method := v.MethodByName(name)
	if !method.IsValid() {
		method = v.MethodByName(PascalCase(name))
	}
	if !method.IsValid() && v.Kind() != reflect.Ptr && v.CanAddr() {
		method = v.Addr().MethodByName(PascalCase(name))
	}
	if !method.IsValid() {
		return nil, false, nil
	}
	t := method.Type()
	if t.NumIn() != 0 {
		return nil, false, nil
	}
	switch {
	case t.NumOut() == 1:
		return method.Call(nil)[0].Interface(), true, nil
	case t.NumOut() == 2 && t.Out(1) == typeOfError:
		results := method.Call(nil)
		if !results[1].IsNil() {
			return nil, true, fmt.Errorf("method %s.%s: %w", v.Type(), name, results[1].Interface().(error))
		}
		return results[0].Interface(), true, nil
	}
	return nil, false, nil
}

var typeOfError = reflect.TypeOf((*error)(nil)).Elem()

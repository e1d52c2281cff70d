package comma

// Attributes is implemented by objects
// exposing named readable properties for export.
type Attributes interface {
	// Attribute returns the value of the attribute name
	// and false if the object has no such attribute.
	Attribute(name string) (value any, ok bool)
}

// AttributeMap implements Attributes with a map.
type AttributeMap map[string]any

func (m AttributeMap) Attribute(name string) (any, bool) {
	value, ok := m[name]
	return value, ok
}

// Accessor looks up the attribute name of obj.
// A missing attribute must be reported as *AttributeMissingError.
type Accessor func(obj any, name string) (any, error)

var _ Accessor = LookupAttribute

// LookupAttribute is the default Accessor.
// It supports objects implementing Attributes
// and map[string]any values.
// All other objects result in an *AttributeMissingError.
func LookupAttribute(obj any, name string) (any, error) {
	switch x := obj.(type) {
	case Attributes:
		if value, ok := x.Attribute(name); ok {
			return value, nil
		}
	case map[string]any:
		if value, ok := x[name]; ok {
			return value, nil
		}
	}
	return nil, NewAttributeMissingError(name, obj)
}

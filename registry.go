package comma

import (
	"reflect"
	"slices"
	"sort"
	"sync"
)

// DefaultView is the name of the view used
// when no view name is passed to ToComma.
const DefaultView = "default"

// DefaultRegistry is used by the package level
// declaration functions and ToComma.
var DefaultRegistry = NewRegistry()

type viewKey struct {
	typ  reflect.Type
	view string
}

// Registry holds the views declared per type.
//
// Type hierarchies are modeled with an explicit parent link per type
// set with SetParent. Declaring a view on a type without an own
// declaration of that view copies the view of the nearest parent
// and appends the declared columns. Resolving a view on a type without
// an own declaration falls back to the nearest parent declaring it.
//
// Declarations have to be complete before exports
// are run to get consistent results.
type Registry struct {
	mtx     sync.RWMutex
	views   map[viewKey][]*Column
	parents map[reflect.Type]reflect.Type
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		views:   make(map[viewKey][]*Column),
		parents: make(map[reflect.Type]reflect.Type),
	}
}

// TypeOf returns the type used as registry key for v.
// Pointer types are dereferenced.
func TypeOf(v any) reflect.Type {
	return derefType(reflect.TypeOf(v))
}

// TypeFor returns the type used as registry key for T.
func TypeFor[T any]() reflect.Type {
	return derefType(reflect.TypeFor[T]())
}

// SetParent links child to parent so that child inherits
// the views of parent and its ancestors.
// Views declared on child before the link was set
// do not include the columns of parent.
func (r *Registry) SetParent(child, parent reflect.Type) error {
	child, parent = derefType(child), derefType(parent)
	if child == nil || parent == nil {
		return newInvalidColumnSpecError("", "nil type for parent link")
	}
	if child == parent {
		return newInvalidColumnSpecError("", "type "+child.String()+" can't be its own parent")
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	for t := parent; t != nil; t = r.parents[t] {
		if t == child {
			return newInvalidColumnSpecError("", "parent link from "+child.String()+" to "+parent.String()+" would create a cycle")
		}
	}
	r.parents[child] = parent
	return nil
}

// Parent returns the parent of typ or nil.
func (r *Registry) Parent(typ reflect.Type) reflect.Type {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return r.parents[derefType(typ)]
}

// Declare appends columns to the view of typ.
// If typ has no own declaration of the view yet,
// then the columns of the view inherited from the nearest parent
// are copied before appending.
// All columns are validated before anything is stored.
func (r *Registry) Declare(typ reflect.Type, view string, columns ...*Column) error {
	return r.declare(typ, view, false, columns)
}

// Redeclare replaces any own or inherited columns
// of the view of typ with the passed columns.
func (r *Registry) Redeclare(typ reflect.Type, view string, columns ...*Column) error {
	return r.declare(typ, view, true, columns)
}

func (r *Registry) declare(typ reflect.Type, view string, reset bool, columns []*Column) error {
	typ = derefType(typ)
	if typ == nil {
		return newInvalidColumnSpecError("", "can't declare view "+view+" for nil type")
	}
	if view == "" {
		return newInvalidColumnSpecError("", "empty view name for type "+typ.String())
	}
	for _, col := range columns {
		if err := col.Validate(); err != nil {
			return err
		}
	}
	columns = cloneColumns(columns)

	r.mtx.Lock()
	defer r.mtx.Unlock()

	key := viewKey{typ, view}
	existing, own := r.views[key]
	switch {
	case reset:
		existing = nil
	case !own:
		if parent := r.parents[typ]; parent != nil {
			existing, _ = r.lookup(parent, view)
		}
	}
	r.views[key] = append(slices.Clip(existing), columns...)
	return nil
}

// lookup walks the parent chain of typ.
// Must be called with the mutex held.
func (r *Registry) lookup(typ reflect.Type, view string) ([]*Column, bool) {
	for t := typ; t != nil; t = r.parents[t] {
		if columns, ok := r.views[viewKey{t, view}]; ok {
			return columns, true
		}
	}
	return nil, false
}

// Resolve returns the columns of the view declared for typ
// or inherited from its nearest parent.
// A *ViewNotFoundError is returned if no declaration exists.
// The returned columns must not be modified.
func (r *Registry) Resolve(typ reflect.Type, view string) ([]*Column, error) {
	typ = derefType(typ)

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	columns, ok := r.lookup(typ, view)
	if !ok {
		return nil, &ViewNotFoundError{Type: typ, View: view}
	}
	return slices.Clone(columns), nil
}

// HasView returns if Resolve would find the view for typ.
func (r *Registry) HasView(typ reflect.Type, view string) bool {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	_, ok := r.lookup(derefType(typ), view)
	return ok
}

// Views returns the sorted names of all views
// resolvable for typ including inherited ones.
func (r *Registry) Views(typ reflect.Type) []string {
	typ = derefType(typ)

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	chain := make(map[reflect.Type]bool)
	for t := typ; t != nil; t = r.parents[t] {
		chain[t] = true
	}
	var names []string
	for key := range r.views {
		if chain[key.typ] && !slices.Contains(names, key.view) {
			names = append(names, key.view)
		}
	}
	sort.Strings(names)
	return names
}

// Declare appends columns to the view of T in the DefaultRegistry.
func Declare[T any](view string, columns ...*Column) error {
	return DefaultRegistry.Declare(TypeFor[T](), view, columns...)
}

// MustDeclare is like Declare but panics on error.
// Useful for declarations in package init functions.
func MustDeclare[T any](view string, columns ...*Column) {
	err := Declare[T](view, columns...)
	if err != nil {
		panic(err)
	}
}

// Redeclare replaces the view of T in the DefaultRegistry.
func Redeclare[T any](view string, columns ...*Column) error {
	return DefaultRegistry.Redeclare(TypeFor[T](), view, columns...)
}

// SetParent links Child to Parent in the DefaultRegistry.
func SetParent[Child, Parent any]() error {
	return DefaultRegistry.SetParent(TypeFor[Child](), TypeFor[Parent]())
}

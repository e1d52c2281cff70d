package comma

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func columnNames(columns []*Column) []string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	return names
}

type (
	parentModel     struct{}
	childModel      struct{}
	grandchildModel struct{}
)

func TestRegistry_Inheritance(t *testing.T) {
	var (
		reg        = NewRegistry()
		parent     = TypeFor[parentModel]()
		child      = TypeFor[childModel]()
		grandchild = TypeFor[grandchildModel]()
	)
	require.NoError(t, reg.SetParent(child, parent))
	require.NoError(t, reg.SetParent(grandchild, child))

	require.NoError(t, reg.Declare(parent, DefaultView, Cols("a", "b")...))

	// Resolve falls back to the parent
	columns, err := reg.Resolve(child, DefaultView)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, columnNames(columns))
	columns, err = reg.Resolve(grandchild, DefaultView)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, columnNames(columns))

	// Declaring on the child extends the inherited view
	require.NoError(t, reg.Declare(child, DefaultView, Col("c")))
	columns, err = reg.Resolve(child, DefaultView)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, columnNames(columns))

	// Parent is unchanged
	columns, err = reg.Resolve(parent, DefaultView)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, columnNames(columns))

	// Grandchild resolves the nearest declaration
	columns, err = reg.Resolve(grandchild, DefaultView)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, columnNames(columns))

	// Pointer types resolve like their element types
	columns, err = reg.Resolve(reflect.TypeFor[*childModel](), DefaultView)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, columnNames(columns))
}

func TestRegistry_DeclareAppends(t *testing.T) {
	reg := NewRegistry()
	typ := TypeFor[parentModel]()

	require.NoError(t, reg.Declare(typ, "report", Col("a")))
	require.NoError(t, reg.Declare(typ, "report", Col("b"), Col("c")))
	columns, err := reg.Resolve(typ, "report")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, columnNames(columns))

	require.NoError(t, reg.Redeclare(typ, "report", Col("x")))
	columns, err = reg.Resolve(typ, "report")
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, columnNames(columns))
}

func TestRegistry_RedeclareIgnoresInherited(t *testing.T) {
	reg := NewRegistry()
	parent, child := TypeFor[parentModel](), TypeFor[childModel]()
	require.NoError(t, reg.SetParent(child, parent))
	require.NoError(t, reg.Declare(parent, DefaultView, Cols("a", "b")...))

	require.NoError(t, reg.Redeclare(child, DefaultView, Col("z")))
	columns, err := reg.Resolve(child, DefaultView)
	require.NoError(t, err)
	require.Equal(t, []string{"z"}, columnNames(columns))
}

func TestRegistry_ParentDeclaredAfterChild(t *testing.T) {
	reg := NewRegistry()
	parent, child := TypeFor[parentModel](), TypeFor[childModel]()
	require.NoError(t, reg.SetParent(child, parent))
	require.NoError(t, reg.Declare(child, DefaultView, Col("c")))
	require.NoError(t, reg.Declare(parent, DefaultView, Col("a")))

	columns, err := reg.Resolve(child, DefaultView)
	require.NoError(t, err)
	require.Equal(t, []string{"c"}, columnNames(columns), "declarations are merged at declaration time")
}

func TestRegistry_ViewNotFound(t *testing.T) {
	reg := NewRegistry()
	typ := TypeFor[parentModel]()
	require.NoError(t, reg.Declare(typ, DefaultView, Col("a")))

	_, err := reg.Resolve(typ, "missing")
	require.ErrorIs(t, err, ErrViewNotFound)
	var notFound *ViewNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, typ, notFound.Type)
	require.Equal(t, "missing", notFound.View)
	require.False(t, reg.HasView(typ, "missing"))
	require.True(t, reg.HasView(typ, DefaultView))

	_, err = reg.Resolve(TypeFor[childModel](), DefaultView)
	require.ErrorIs(t, err, ErrViewNotFound)
}

func TestRegistry_InvalidDeclarations(t *testing.T) {
	reg := NewRegistry()
	typ := TypeFor[parentModel]()

	err := reg.Declare(typ, DefaultView, Col("a"), Col(""))
	require.ErrorIs(t, err, ErrInvalidColumnSpec)
	require.False(t, reg.HasView(typ, DefaultView), "nothing stored for invalid declarations")

	require.ErrorIs(t, reg.Declare(typ, "", Col("a")), ErrInvalidColumnSpec)
	require.ErrorIs(t, reg.Declare(nil, DefaultView, Col("a")), ErrInvalidColumnSpec)
}

func TestRegistry_SetParentCycles(t *testing.T) {
	reg := NewRegistry()
	parent, child, grandchild := TypeFor[parentModel](), TypeFor[childModel](), TypeFor[grandchildModel]()

	require.ErrorIs(t, reg.SetParent(parent, parent), ErrInvalidColumnSpec)
	require.NoError(t, reg.SetParent(child, parent))
	require.NoError(t, reg.SetParent(grandchild, child))
	require.ErrorIs(t, reg.SetParent(parent, grandchild), ErrInvalidColumnSpec)
	require.ErrorIs(t, reg.SetParent(nil, parent), ErrInvalidColumnSpec)

	require.Equal(t, child, reg.Parent(grandchild))
	require.Nil(t, reg.Parent(parent))
}

func TestRegistry_Views(t *testing.T) {
	reg := NewRegistry()
	parent, child := TypeFor[parentModel](), TypeFor[childModel]()
	require.NoError(t, reg.SetParent(child, parent))
	require.NoError(t, reg.Declare(parent, "b", Col("a")))
	require.NoError(t, reg.Declare(child, "a", Col("a")))
	require.NoError(t, reg.Declare(child, "b", Col("c")))

	require.Equal(t, []string{"a", "b"}, reg.Views(child))
	require.Equal(t, []string{"b"}, reg.Views(parent))
	require.Empty(t, reg.Views(TypeFor[grandchildModel]()))
}

func TestRegistry_ColumnsAreCopied(t *testing.T) {
	reg := NewRegistry()
	typ := TypeFor[parentModel]()
	col := Col("a")
	require.NoError(t, reg.Declare(typ, DefaultView, col))
	col.Name = "changed"

	columns, err := reg.Resolve(typ, DefaultView)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, columnNames(columns))
}

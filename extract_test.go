package comma

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	ordersWithItems := []*order{
		{ID: 1, Items: []*item{{SKU: "A"}, {SKU: "B"}}},
		{ID: 2, Items: []*item{{SKU: "C"}}},
	}
	tests := []struct {
		name    string
		obj     any
		columns []*Column
		want    [][]any
	}{
		{
			name:    "flat",
			obj:     &customer{Name: "Erik", Email: "erik@example.com"},
			columns: Cols("name", "email"),
			want:    [][]any{{"Erik", "erik@example.com"}},
		},
		{
			name:    "no columns",
			obj:     &customer{},
			columns: nil,
			want:    [][]any{{}},
		},
		{
			name: "row multiplication",
			obj:  &customer{Name: "Erik", Orders: []*order{{ID: 1}, {ID: 2}, {ID: 3}}},
			columns: []*Column{
				Col("name"),
				Col("orders", Children(Col("id"))),
			},
			want: [][]any{
				{"Erik", 1},
				{"Erik", 2},
				{"Erik", 3},
			},
		},
		{
			name: "scalar after nested is repeated",
			obj:  &customer{Name: "Erik", Email: "e@x", Orders: []*order{{ID: 1}, {ID: 2}}},
			columns: []*Column{
				Col("orders", Children(Col("id"))),
				Col("email"),
			},
			want: [][]any{
				{1, "e@x"},
				{2, "e@x"},
			},
		},
		{
			name: "empty collection yields no rows",
			obj:  &customer{Name: "Erik", Orders: []*order{}},
			columns: []*Column{
				Col("name"),
				Col("orders", Children(Col("id"))),
			},
			want: [][]any{},
		},
		{
			name: "nil collection yields no rows",
			obj:  &customer{Name: "Erik"},
			columns: []*Column{
				Col("name"),
				Col("orders", Children(Col("id"))),
			},
			want: [][]any{},
		},
		{
			name: "single association",
			obj:  &customer{Name: "Erik", Address: &address{Street: "Main St", City: "Vienna"}},
			columns: []*Column{
				Col("name"),
				Col("address", Children(Col("street"), Col("city"))),
			},
			want: [][]any{{"Erik", "Main St", "Vienna"}},
		},
		{
			name: "nil single association yields nil cells",
			obj:  &customer{Name: "Erik"},
			columns: []*Column{
				Col("name"),
				Col("address", Children(Col("street"), Col("city"))),
			},
			want: [][]any{{"Erik", nil, nil}},
		},
		{
			name: "nested collections are concatenated per element",
			obj:  &customer{Name: "Erik", Orders: ordersWithItems},
			columns: []*Column{
				Col("name"),
				Col("orders", Children(
					Col("id"),
					Col("items", Children(Col("sku"))),
				)),
			},
			want: [][]any{
				{"Erik", 1, "A"},
				{"Erik", 1, "B"},
				{"Erik", 2, "C"},
			},
		},
		{
			name: "element with empty nested collection is dropped",
			obj:  &customer{Name: "Erik", Orders: []*order{{ID: 1}, {ID: 2, Items: []*item{{SKU: "X"}}}}},
			columns: []*Column{
				Col("name"),
				Col("orders", Children(
					Col("id"),
					Col("items", Children(Col("sku"))),
				)),
			},
			want: [][]any{
				{"Erik", 2, "X"},
			},
		},
		{
			name: "sibling nested columns cross product",
			obj: &customer{
				Name:    "Erik",
				Orders:  []*order{{ID: 1}, {ID: 2}},
				Address: &address{City: "Vienna"},
			},
			columns: []*Column{
				Col("name"),
				Col("orders", Children(Col("id"))),
				Col("tags", Derive(func(any) (any, error) {
					return []AttributeMap{{"tag": "x"}, {"tag": "y"}, {"tag": "z"}}, nil
				}), Children(Col("tag"))),
				Col("address", Children(Col("city"))),
			},
			want: [][]any{
				{"Erik", 1, "x", "Vienna"},
				{"Erik", 1, "y", "Vienna"},
				{"Erik", 1, "z", "Vienna"},
				{"Erik", 2, "x", "Vienna"},
				{"Erik", 2, "y", "Vienna"},
				{"Erik", 2, "z", "Vienna"},
			},
		},
		{
			name: "deriver selects related objects",
			obj:  &customer{Name: "Erik", Orders: []*order{{ID: 1, Total: 5}, {ID: 2, Total: 50}}},
			columns: []*Column{
				Col("name"),
				Col("big_orders", Derive(func(obj any) (any, error) {
					var big []*order
					for _, o := range obj.(*customer).Orders {
						if o.Total > 10 {
							big = append(big, o)
						}
					}
					return big, nil
				}), Children(Col("id"), Col("total"))),
			},
			want: [][]any{{"Erik", 2, 50.0}},
		},
		{
			name:    "slice cell value without children",
			obj:     &customer{Tags: []string{"a", "b"}},
			columns: Cols("tags"),
			want:    [][]any{{[]string{"a", "b"}}},
		},
		{
			name: "map objects",
			obj:  map[string]any{"name": "Map", "rows": []any{map[string]any{"v": 1}, AttributeMap{"v": 2}}},
			columns: []*Column{
				Col("name"),
				Col("rows", Children(Col("v"))),
			},
			want: [][]any{{"Map", 1}, {"Map", 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Extractor
			got, err := e.Extract(tt.obj, tt.columns)
			require.NoError(t, err)
			require.Equal(t, len(tt.want), len(got), "number of rows")
			for i := range tt.want {
				require.Equal(t, tt.want[i], got[i], "row %d", i)
			}
		})
	}
}

func TestExtractor_MissingAttribute(t *testing.T) {
	var e Extractor
	c := newCustomer()

	_, err := e.Extract(c, Cols("name", "foo"))
	require.ErrorIs(t, err, ErrAttributeMissing)
	require.ErrorContains(t, err, `"foo"`)

	_, err = e.Extract(c, []*Column{Col("orders", Children(Col("id"), Col("bar")))})
	require.ErrorIs(t, err, ErrAttributeMissing)
	require.ErrorContains(t, err, `"bar"`)

	// Reported even if an earlier nested column produced no rows
	_, err = e.Extract(&customer{}, []*Column{Col("orders", Children(Col("id"))), Col("foo")})
	require.ErrorIs(t, err, ErrAttributeMissing)

	_, err = e.Extract(struct{ Name string }{"no attributes"}, Cols("Name"))
	require.ErrorIs(t, err, ErrAttributeMissing, "LookupAttribute does not use reflection")
}

func TestExtractor_ExtractAll(t *testing.T) {
	var e Extractor
	objs := []any{
		&customer{Name: "A", Orders: []*order{{ID: 1}, {ID: 2}}},
		&customer{Name: "B"},
		&customer{Name: "C", Orders: []*order{{ID: 3}}},
	}
	rows, err := e.ExtractAll(objs, []*Column{Col("name"), Col("orders", Children(Col("id")))})
	require.NoError(t, err)
	require.Equal(t, [][]any{{"A", 1}, {"A", 2}, {"C", 3}}, rows)

	_, err = e.ExtractAll(append(objs, &order{}), Cols("name"))
	require.ErrorIs(t, err, ErrAttributeMissing)
	require.ErrorContains(t, err, "object 3")
}

func TestExtractor_CustomAccessor(t *testing.T) {
	e := Extractor{Accessor: func(obj any, name string) (any, error) {
		return name + "!", nil
	}}
	rows, err := e.Extract(struct{}{}, Cols("a", "b"))
	require.NoError(t, err)
	require.Equal(t, [][]any{{"a!", "b!"}}, rows)
}

func TestExtractor_NilObject(t *testing.T) {
	var e Extractor
	_, err := e.Extract((*customer)(nil), Cols("name"))
	require.ErrorIs(t, err, ErrNilObject)

	_, err = e.ExtractAll([]any{&customer{Name: "A"}, nil}, Cols("name"))
	require.ErrorIs(t, err, ErrNilObject)
	require.ErrorContains(t, err, "object 1")
}

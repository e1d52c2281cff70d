package comma

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_DeclareYAML(t *testing.T) {
	reg := NewRegistry()
	typ := TypeFor[customer]()
	require.NoError(t, reg.Declare(typ, "short", Col("email")))

	err := reg.DeclareYAML(typ, []byte(`
views:
  - name: default
    columns:
      - name
      - name: email
        header: E-Mail
  - name: orders
    columns:
      - name
      - name: orders
        columns:
          - id
          - name: total
            header: Sum
  - name: short
    reset: true
    columns: [name]
`))
	require.NoError(t, err)

	columns, err := reg.Resolve(typ, DefaultView)
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "E-Mail"}, ColumnHeaders(columns))

	columns, err = reg.Resolve(typ, "orders")
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "Id", "Sum"}, ColumnHeaders(columns))

	columns, err = reg.Resolve(typ, "short")
	require.NoError(t, err)
	require.Equal(t, []string{"name"}, columnNames(columns))

	table, err := NewGenerator(reg).Generate(newCustomer(), "orders")
	require.NoError(t, err)
	require.Equal(t, 3, table.NumRows())
}

func TestRegistry_DeclareYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "syntax", yaml: "views: [\n"},
		{name: "view without name", yaml: "views:\n  - columns: [a]\n"},
		{name: "column without name", yaml: "views:\n  - name: v\n    columns:\n      - header: X\n"},
		{name: "empty nested columns", yaml: "views:\n  - name: v\n    columns:\n      - name: a\n        columns: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.DeclareYAMLReader(TypeFor[customer](), strings.NewReader(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidColumnSpec)
			require.Empty(t, reg.Views(TypeFor[customer]()), "nothing declared")
		})
	}
}

package comma

import "reflect"

// View is the tabular result of an export
// that can be written by a Renderer.
type View interface {
	// Title of the view, may be empty.
	Title() string
	// Columns returns the header row.
	Columns() []string
	// NumRows returns the number of data rows.
	NumRows() int
	// AnyValue returns the value of a cell
	// or nil for cells out of range.
	AnyValue(row, col int) any
}

var _ View = new(Table)

// Table is a View implementation that holds
// the headers and rows generated for an export.
// Rows may have fewer or more cells than Headers.
type Table struct {
	Tit     string
	Headers []string
	Rows    [][]any
}

// NewTable returns a Table with the passed headers and rows.
func NewTable(headers []string, rows [][]any) *Table {
	return &Table{Headers: headers, Rows: rows}
}

// NewTableFrom reads and caches all cells
// from the source View as Table.
func NewTableFrom(source View) *Table {
	table := &Table{
		Tit:     source.Title(),
		Headers: source.Columns(),
		Rows:    make([][]any, source.NumRows()),
	}
	for row := range table.Rows {
		table.Rows[row] = make([]any, len(table.Headers))
		for col := range table.Rows[row] {
			table.Rows[row][col] = source.AnyValue(row, col)
		}
	}
	return table
}

func (t *Table) Title() string     { return t.Tit }
func (t *Table) Columns() []string { return t.Headers }
func (t *Table) NumRows() int      { return len(t.Rows) }

// NumCells returns the number of cells in row.
func (t *Table) NumCells(row int) int {
	if row < 0 || row >= len(t.Rows) {
		return 0
	}
	return len(t.Rows[row])
}

func (t *Table) AnyValue(row, col int) any {
	if row < 0 || col < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][col]
}

func (t *Table) ReflectValue(row, col int) reflect.Value {
	if row < 0 || col < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return reflect.Value{}
	}
	return reflect.ValueOf(t.Rows[row][col])
}

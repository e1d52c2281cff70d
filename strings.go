package comma

import "fmt"

// Strings returns the cells of view formatted as strings
// like RenderTo would pass them to the Backend,
// including the header row unless disabled.
func (r *Renderer) Strings(view View) (rows [][]string, err error) {
	if r.headerRow {
		rows = append(rows, view.Columns())
	}
	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		rowStrs, err := r.rowStrings(view, row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowStrs)
	}
	return rows, nil
}

func (r *Renderer) rowStrings(view View, row int) ([]string, error) {
	numCells := len(view.Columns())
	if t, ok := view.(interface{ NumCells(row int) int }); ok {
		numCells = t.NumCells(row)
	}
	rowStrs := make([]string, numCells)
	for col := range rowStrs {
		str, err := r.CellString(view.AnyValue(row, col))
		if err != nil {
			return nil, fmt.Errorf("row %d, column %d: %w", row, col, err)
		}
		rowStrs[col] = str
	}
	return rowStrs, nil
}

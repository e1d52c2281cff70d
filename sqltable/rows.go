package sqltable

import "database/sql"

var _ Rows = &sql.Rows{}

// Rows is the subset of *sql.Rows used by ScanRecords,
// so that result sets of any driver or test doubles can be scanned.
type Rows interface {
	// Columns returns the column names of the result set.
	Columns() ([]string, error)
	// Scan copies the values of the current row into dest.
	Scan(dest ...any) error
	// Close releases the result set.
	Close() error
	// Next advances to the next row and returns false
	// at the end of the result set or on error.
	Next() bool
	// Err returns the error encountered during iteration.
	Err() error
}

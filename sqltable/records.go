// Package sqltable scans database query results into records
// that can be exported with comma views.
package sqltable

import (
	"context"
	"database/sql"
	"slices"

	"github.com/domonda/go-comma"
)

var _ comma.Attributes = new(Record)

// Record is one scanned result row.
// It implements comma.Attributes with the column names of the query.
type Record struct {
	columns []string
	values  []any
}

// NewRecord returns a Record with the passed column names and values.
func NewRecord(columns []string, values []any) *Record {
	return &Record{columns: columns, values: values}
}

// Attribute implements comma.Attributes.
func (r *Record) Attribute(name string) (any, bool) {
	i := slices.Index(r.columns, name)
	if i < 0 || i >= len(r.values) {
		return nil, false
	}
	return r.values[i], true
}

// Columns returns the column names of the record.
func (r *Record) Columns() []string { return r.columns }

// Values returns the scanned values of the record.
func (r *Record) Values() []any { return r.values }

// ScanRecords reads all rows into records and closes rows.
// []byte values are copied and returned as string
// because they are not valid after scanning.
func ScanRecords(ctx context.Context, rows Rows) ([]*Record, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var records []*Record
	for rows.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		scannedValues := make([]any, len(columns))
		valueScanners := make([]any, len(columns))
		for i := range valueScanners {
			valueScanners[i] = valueScanner{&scannedValues[i]}
		}
		err = rows.Scan(valueScanners...)
		if err != nil {
			return records, err
		}
		records = append(records, NewRecord(columns, scannedValues))
	}
	return records, rows.Err()
}

// QueryRecords runs query on db and returns the scanned records.
func QueryRecords(ctx context.Context, db *sql.DB, query string, args ...any) ([]*Record, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return ScanRecords(ctx, rows)
}

var _ sql.Scanner = new(valueScanner)

type valueScanner struct {
	dest *any
}

// Scan implements the database/sql.Scanner interface.
func (s valueScanner) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		// Copy bytes because they won't be valid after this method call
		src = string(b)
	}
	*s.dest = src
	return nil
}

package models

import "errors"

// ErrDataAccess marks every failure to read the survey source: missing or unreadable
// file, unsupported format, missing sheet or table, missing column header.
var ErrDataAccess = errors.New("data access error")

// Table is a survey source projected down to the requested columns.
type Table struct {
	// Source describes where the rows came from (file path, sheet or table).
	Source string
	// Columns maps a requested header to its cell values, one per data row.
	// Blank or NULL cells are kept as "".
	Columns map[string][]string
}

// Column returns the values recorded under header.
func (t *Table) Column(header string) ([]string, bool) {
	if t == nil || t.Columns == nil {
		return nil, false
	}
	values, ok := t.Columns[header]
	return values, ok
}

// Package ledger reads and writes the per-day attendance CSV files.
//
// Historical day files are frequently malformed: 3, 4 or 5 columns per row,
// mixed header spellings (English and Indonesian), stray delimiters. Reading
// therefore runs an ordered list of recovery strategies and normalizes the
// result to the canonical Name/Time/Date/Shift/Status schema; writing is
// strictly append-only with a single canonical header.
package ledger

import "strings"

// CanonicalHeader is the schema every validated table is mapped onto and the
// header written to fresh day files.
var CanonicalHeader = []string{"Name", "Time", "Date", "Shift", "Status"}

// Table is a decoded day file: raw text cells, no type coercion. Typed
// interpretation happens after Validate so locale quirks in old rows cannot
// break a read.
type Table struct {
	Header []string
	Rows   [][]string
}

// Record is one canonical attendance row.
type Record struct {
	Name   string `json:"name"`
	Time   string `json:"time"`
	Date   string `json:"date"`
	Shift  string `json:"shift"`
	Status string `json:"status"`
}

// column returns the index of a canonical column in the header, or -1.
func (t *Table) column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// cell returns row[idx] or "" when the row is short or idx is -1.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Records maps a *validated* table onto canonical records.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	name := t.column("Name")
	tm := t.column("Time")
	date := t.column("Date")
	sh := t.column("Shift")
	st := t.column("Status")

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, Record{
			Name:   cell(row, name),
			Time:   cell(row, tm),
			Date:   cell(row, date),
			Shift:  cell(row, sh),
			Status: cell(row, st),
		})
	}
	return records
}

// HasName reports whether any row carries the given employee name.
// Used for the has-checked-in-today decision; the table must be validated.
func (t *Table) HasName(name string) bool {
	if t == nil {
		return false
	}
	idx := t.column("Name")
	if idx < 0 {
		return false
	}
	for _, row := range t.Rows {
		if strings.TrimSpace(cell(row, idx)) == name {
			return true
		}
	}
	return false
}

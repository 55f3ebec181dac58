package api

import "strings"

// Workbook is the tabular interchange form of a language folder:
// one sheet per YAML file, in export order.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// Sheet returns the sheet with the given name (case-insensitive, as
// spreadsheet applications compare them) or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	for i := range w.Sheets {
		if strings.EqualFold(w.Sheets[i].Name, name) {
			return &w.Sheets[i]
		}
	}
	return nil
}

// Sheet is a named grid of string cells. An empty string is an empty cell.
type Sheet struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows,omitempty"`
}

// Empty reports whether no cell of the sheet holds a non-blank value.
func (s Sheet) Empty() bool {
	for _, r := range s.Rows {
		if !r.Blank() {
			return false
		}
	}
	return true
}

// Row is an ordered tuple of cell values.
type Row []string

// Cell returns the i-th cell, or "" when the row is shorter.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Blank reports whether every cell is empty or whitespace.
func (r Row) Blank() bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

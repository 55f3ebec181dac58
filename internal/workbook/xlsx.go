package workbook

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/agentic-research/locedit/api"
	"github.com/xuri/excelize/v2"
)

// MaxCellChars is the most characters a spreadsheet cell holds.
const MaxCellChars = excelize.TotalCellChars

const (
	maxColumnWidth = 50
	headerFill     = "444444"
	headerFont     = "FFFFFF"
)

// WriteXLSX renders wb as an xlsx document. The first row of every sheet
// is styled as a header and columns are sized to their content. Sentinel
// payloads too long for one cell are split across the row.
func WriteXLSX(w io.Writer, wb *api.Workbook) error {
	if len(wb.Sheets) == 0 {
		return fmt.Errorf("workbook has no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: headerFont},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	first := f.GetSheetList()[0]
	for i, sheet := range wb.Sheets {
		if i == 0 {
			err = f.SetSheetName(first, sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err != nil {
			return fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, header); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
	}
	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet api.Sheet, headerStyle int) error {
	var widths []int
	for r, row := range sheet.Rows {
		cells := splitSentinel(row)
		values := make([]interface{}, len(cells))
		for c, v := range cells {
			values[c] = v
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			widths[c] = max(widths[c], utf8.RuneCountInString(v))
		}
		origin, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, origin, &values); err != nil {
			return err
		}
	}

	if len(sheet.Rows) > 0 && len(sheet.Rows[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(sheet.Rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for c, width := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, col, col, float64(min(width+2, maxColumnWidth))); err != nil {
			return err
		}
	}
	return nil
}

// splitSentinel spreads an oversized sentinel payload over the row: the
// first chunk stays in the second cell, the rest go to the fourth cell
// onward. Other rows are returned unchanged.
func splitSentinel(row api.Row) api.Row {
	tag := strings.TrimSpace(row.Cell(0))
	if tag != SentinelTag && tag != LegacySentinelTag {
		return row
	}
	chunks := chunk(row.Cell(1), MaxCellChars)
	if len(chunks) <= 1 {
		return row
	}
	out := api.Row{row.Cell(0), chunks[0], row.Cell(2)}
	return append(out, chunks[1:]...)
}

func chunk(s string, size int) []string {
	if utf8.RuneCountInString(s) <= size {
		return []string{s}
	}
	var out []string
	runes := []rune(s)
	for len(runes) > size {
		out = append(out, string(runes[:size]))
		runes = runes[size:]
	}
	return append(out, string(runes))
}

// ReadXLSX loads every sheet of an xlsx document as plain cell text.
func ReadXLSX(r io.Reader) (*api.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var wb api.Workbook
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		sheet := api.Sheet{Name: name, Rows: make([]api.Row, len(rows))}
		for i, row := range rows {
			sheet.Rows[i] = row
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return &wb, nil
}

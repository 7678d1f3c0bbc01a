package ui

import (
	"github.com/gravitrone/coursedesk/internal/table"
	"github.com/gravitrone/coursedesk/internal/ui/components"
)

const defaultColumnWidth = 12

// renderTable draws t's rows for items at width, highlighting activeRow
// (-1 for none). Cell text is sanitized here, not in the table.
func renderTable[T any](t *table.Table[T], items []T, width, activeRow int) string {
	headers := t.Headers()
	cols := make([]components.GridColumn, len(t.Columns))
	for i, c := range t.Columns {
		w := c.Width
		if w <= 0 {
			w = defaultColumnWidth
		}
		cols[i] = components.GridColumn{Header: headers[i], Width: w, Align: c.Align}
	}
	rows := t.Rows(items)
	for _, row := range rows {
		for j := range row {
			row[j] = components.SanitizeOneLine(row[j])
		}
	}
	return components.Grid(cols, rows, width, activeRow)
}

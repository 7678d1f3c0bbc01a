package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GridColumn is one column of a Grid. Width excludes separators.
type GridColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

const gridLeftOffset = 2

var (
	gridLineStyle = lipgloss.NewStyle().Foreground(colorBorder)

	gridActiveRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d7d9da")).
				Background(lipgloss.Color("#1f2530")).
				Bold(true)

	gridActiveSepStyle = lipgloss.NewStyle().
				Foreground(colorBorder).
				Background(lipgloss.Color("#1f2530"))
)

// Grid renders a header, a rule and one line per row, exactly width columns
// wide. The last column absorbs any slack. activeRow is a 0-based row index
// to highlight, or -1.
func Grid(columns []GridColumn, rows [][]string, width, activeRow int) string {
	if width <= 0 {
		return ""
	}
	if len(columns) == 0 {
		return padRight("", width)
	}

	border := lipgloss.RoundedBorder()
	cols := fitGridColumns(columns, lipgloss.Width(border.Left), width)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}

	out := make([]string, 0, len(rows)+2)
	out = append(out, renderGridRow(cols, headers, border.Left, width, true, false))
	out = append(out, renderGridRule(cols, border.Middle, border.Top, width))
	for i, row := range rows {
		out = append(out, renderGridRow(cols, row, border.Left, width, false, i == activeRow))
	}
	return strings.Join(out, "\n")
}

func fitGridColumns(columns []GridColumn, sepWidth, width int) []GridColumn {
	fitted := make([]GridColumn, len(columns))
	copy(fitted, columns)

	sepWidth = max(sepWidth, 1)
	content := max(width-gridLeftOffset, len(fitted))

	used := (len(fitted) - 1) * sepWidth
	for i := range fitted {
		fitted[i].Width = max(fitted[i].Width, 1)
		used += fitted[i].Width
	}
	last := &fitted[len(fitted)-1]
	last.Width = max(last.Width+content-used, 1)
	return fitted
}

func renderGridRow(columns []GridColumn, cells []string, sep string, width int, header, active bool) string {
	sepStyle := gridLineStyle
	if active {
		sepStyle = gridActiveSepStyle
	}
	sepStyled := sepStyle.Inline(true).Render(sep)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridLeftOffset))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(sepStyled)
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		cell := renderGridCell(text, col.Width, col.Align)
		switch {
		case header:
			cell = boxLabelStyle.Inline(true).Render(cell)
		case active:
			cell = gridActiveRowStyle.Inline(true).Render(cell)
		}
		b.WriteString(cell)
	}
	return padRight(b.String(), width)
}

func renderGridRule(columns []GridColumn, cross, horiz string, width int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridLeftOffset))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(cross)
		}
		b.WriteString(strings.Repeat(horiz, col.Width))
	}
	return gridLineStyle.Inline(true).Render(padRight(b.String(), width))
}

func renderGridCell(text string, width int, align lipgloss.Position) string {
	clamped := ClampTextWidth(text, width)
	pad := width - lipgloss.Width(clamped)
	if pad <= 0 {
		return clamped
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + clamped
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + clamped + strings.Repeat(" ", pad-left)
	default:
		return clamped + strings.Repeat(" ", pad)
	}
}

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridLinesMatchWidth(t *testing.T) {
	cols := []GridColumn{{Header: "Code", Width: 6}, {Header: "Name", Width: 10}}
	rows := [][]string{{"S001", "Ada Lovelace with a long tail"}, {"S002", "Alan"}}

	out := Grid(cols, rows, 40, 1)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 40, lipgloss.Width(line))
	}
	assert.Contains(t, lines[0], "Code")
	assert.Contains(t, lines[2], "S001")
	assert.Contains(t, lines[3], "Alan")
}

func TestGridLastColumnAbsorbsSlack(t *testing.T) {
	fitted := fitGridColumns([]GridColumn{{Width: 5}, {Width: 5}}, 1, 30)
	assert.Equal(t, 5, fitted[0].Width)
	assert.Equal(t, 30-2-5-1, fitted[1].Width)

	squeezed := fitGridColumns([]GridColumn{{Width: 20}, {Width: 20}}, 1, 12)
	assert.Equal(t, 1, squeezed[1].Width)
}

func TestGridEmptyInputs(t *testing.T) {
	assert.Empty(t, Grid(nil, nil, 0, -1))
	assert.Equal(t, "     ", Grid(nil, nil, 5, -1))
}

func TestRenderGridCellAlignment(t *testing.T) {
	assert.Equal(t, "ab  ", renderGridCell("ab", 4, lipgloss.Left))
	assert.Equal(t, "  ab", renderGridCell("ab", 4, lipgloss.Right))
	assert.Equal(t, " ab ", renderGridCell("ab", 4, lipgloss.Center))
	assert.Equal(t, "abc", renderGridCell("abcdef", 3, lipgloss.Left))
}

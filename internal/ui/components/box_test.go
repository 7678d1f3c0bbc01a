package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestBoxWidthBounds(t *testing.T) {
	assert.Equal(t, 0, boxWidth(0))
	assert.Equal(t, 40, boxWidth(10))
	assert.Equal(t, 80, boxWidth(200))
	assert.Equal(t, 70, boxWidth(100))
	assert.Equal(t, 20, safeBoxWidth(20))
}

func TestTitledBoxNarrowTerminalClampsWidth(t *testing.T) {
	out := TitledBox("Students", "line", 20)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 20)
	}
}

func TestBoxesFitTerminalWidth(t *testing.T) {
	for _, width := range []int{20, 44, 60, 120} {
		boxes := map[string]string{
			"titled": TitledBox("Keys", "q quit", width),
			"error":  ErrorBox("Error", "Failed to load students: database down", width),
		}
		for name, out := range boxes {
			for _, line := range strings.Split(out, "\n") {
				assert.LessOrEqual(t, lipgloss.Width(line), width, "%s box at width %d", name, width)
			}
		}
	}
}

func TestBoxOuterWidthMatchesBoxWidth(t *testing.T) {
	out := ErrorBox("", "x", 100)
	first := strings.Split(out, "\n")[0]
	assert.Equal(t, boxWidth(100), lipgloss.Width(first))
}

func TestTitledBoxIncludesTitle(t *testing.T) {
	out := TitledBox("Keys", "Content", 80)
	assert.Contains(t, out, "[ Keys ]")
	assert.Contains(t, out, "Content")
}

func TestTitledBoxEmptyTitleFallsBack(t *testing.T) {
	out := TitledBox("", "Content", 80)
	assert.Contains(t, out, "Content")
	assert.NotContains(t, out, "[")
}

func TestErrorBoxIncludesTitleAndMessage(t *testing.T) {
	out := ErrorBox("Error", "Failed to load students", 100)
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "Failed to load students")
}

func TestClampTextWidth(t *testing.T) {
	assert.Equal(t, "hello", ClampTextWidth("hello", 10))
	assert.Equal(t, "hel", ClampTextWidth("hello", 3))
	assert.Equal(t, "a b", ClampTextWidth("a\nb", 0))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", truncateRunes("hello", 0))
	assert.Equal(t, "he", truncateRunes("hello", 2))
	assert.Equal(t, "你", truncateRunes("你好", 1))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcd", padRight("abcd", 2))
}

package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestQuitBinding(t *testing.T) {
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit))
	assert.True(t, key.Matches(runeKey('q'), keys.Quit))
	assert.False(t, key.Matches(runeKey('a'), keys.Quit))
}

func TestNavigationBindings(t *testing.T) {
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyDown}, keys.Down))
	assert.True(t, key.Matches(runeKey('j'), keys.Down))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyUp}, keys.Up))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyUp}, keys.Down))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRight}, keys.NextPage))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, keys.PrevTab))
}

func TestBackBinding(t *testing.T) {
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, keys.Back))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, keys.Back))
}

func TestConfirmBindings(t *testing.T) {
	assert.True(t, key.Matches(runeKey('y'), keys.Confirm))
	assert.True(t, key.Matches(runeKey('n'), keys.Cancel))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, keys.Cancel))
	assert.False(t, key.Matches(runeKey('d'), keys.Confirm))
}

func TestTabIndexForKey(t *testing.T) {
	idx, ok := tabIndexForKey("1", 4)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = tabIndexForKey("4", 4)
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	_, ok = tabIndexForKey("5", 4)
	assert.False(t, ok)
	_, ok = tabIndexForKey("0", 4)
	assert.False(t, ok)
}

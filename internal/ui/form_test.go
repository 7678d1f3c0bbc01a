package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

var testFields = []fieldSpec{
	{Key: "name", Label: "Name"},
	{Key: "year", Label: "Year"},
}

func TestFormPrefillAndFocus(t *testing.T) {
	f := newForm(testFields, map[string]string{"name": "1A", "year": "1"})

	assert.Equal(t, 0, f.focus)
	assert.Equal(t, map[string]string{"name": "1A", "year": "1"}, f.Values())
}

func TestFormFocusWraps(t *testing.T) {
	f := newForm(testFields, nil)

	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, f.focus)
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, f.focus)
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, f.focus)
}

func TestFormTypesIntoFocusedFieldAndTrims(t *testing.T) {
	f := newForm(testFields, nil)

	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" 2 ")})

	assert.Equal(t, map[string]string{"name": "", "year": "2"}, f.Values())
}

func TestFormViewShowsFieldErrors(t *testing.T) {
	f := newForm(testFields, nil)

	view := f.View(map[string]string{"year": "must be a whole number"})
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "Year")
	assert.Contains(t, view, "must be a whole number")
}

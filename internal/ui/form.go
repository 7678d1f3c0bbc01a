package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/coursedesk/internal/ui/components"
)

type fieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	CharLimit   int
}

// form is a vertical list of text inputs, one per field.
type form struct {
	fields []fieldSpec
	inputs []textinput.Model
	focus  int
}

func newForm(fields []fieldSpec, values map[string]string) form {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.Placeholder
		if f.CharLimit > 0 {
			in.CharLimit = f.CharLimit
		}
		in.SetValue(values[f.Key])
		if i == 0 {
			in.Focus()
		}
		inputs[i] = in
	}
	return form{fields: fields, inputs: inputs}
}

func (f *form) Update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.NextFld):
			f.move(1)
			return nil
		case key.Matches(k, keys.PrevFld):
			f.move(-1)
			return nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) move(dir int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// Values returns trimmed input values keyed by field.
func (f form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for i, fs := range f.fields {
		out[fs.Key] = strings.TrimSpace(f.inputs[i].Value())
	}
	return out
}

func (f form) View(errs map[string]string) string {
	lines := make([]string, 0, len(f.fields)*2)
	for i, fs := range f.fields {
		label := FieldLabelStyle.Render(fs.Label)
		if i == f.focus {
			label = FieldFocusStyle.Render(fs.Label)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, f.inputs[i].View()))
		if msg, ok := errs[fs.Key]; ok {
			lines = append(lines, strings.Repeat(" ", 14)+ErrorStyle.Render(components.SanitizeOneLine(msg)))
		}
	}
	return strings.Join(lines, "\n")
}

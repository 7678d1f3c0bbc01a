package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const hintGap = "   "

var (
	hintKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
	statusBarStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

// KeyHint is one entry of the footer: a key and what it does on the
// current screen.
type KeyHint struct {
	Key  string
	Desc string
}

// BindingHint takes a hint from a binding's help text.
func BindingHint(b key.Binding) KeyHint {
	h := b.Help()
	return KeyHint{Key: h.Key, Desc: h.Desc}
}

// BindingHints maps each binding through BindingHint, skipping disabled ones.
func BindingHints(bindings ...key.Binding) []KeyHint {
	out := make([]KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if b.Enabled() {
			out = append(out, BindingHint(b))
		}
	}
	return out
}

// StatusBar renders hints as "key desc" pairs, wrapped into as many rows
// as width requires. Width 0 keeps everything on one row.
func StatusBar(hints []KeyHint, width int) string {
	if len(hints) == 0 {
		return ""
	}
	rendered := make([]string, len(hints))
	for i, h := range hints {
		rendered[i] = renderHint(h)
	}
	avail := width - statusBarStyle.GetHorizontalFrameSize()
	if width <= 0 {
		avail = 0
	}
	return statusBarStyle.Render(strings.Join(packHints(rendered, avail), "\n"))
}

func renderHint(h KeyHint) string {
	k := SanitizeOneLine(h.Key)
	d := SanitizeOneLine(h.Desc)
	if d == "" {
		return hintKeyStyle.Render(k)
	}
	return hintKeyStyle.Render(k) + " " + hintDescStyle.Render(d)
}

// packHints fills rows left to right. A hint wider than the row gets a row
// of its own rather than being cut.
func packHints(hints []string, width int) []string {
	var rows []string
	var row strings.Builder
	rowWidth := 0
	gapWidth := lipgloss.Width(hintGap)
	for _, h := range hints {
		w := lipgloss.Width(h)
		if rowWidth > 0 && width > 0 && rowWidth+gapWidth+w > width {
			rows = append(rows, row.String())
			row.Reset()
			rowWidth = 0
		}
		if rowWidth > 0 {
			row.WriteString(hintGap)
			rowWidth += gapWidth
		}
		row.WriteString(h)
		rowWidth += w
	}
	if rowWidth > 0 {
		rows = append(rows, row.String())
	}
	return rows
}

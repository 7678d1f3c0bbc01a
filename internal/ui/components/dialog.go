package components

import "github.com/charmbracelet/lipgloss"

const dialogMinWidth = 40

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	dialogBodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d7d9da"))
	dialogHintStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// ConfirmDialog renders a yes/no prompt. The box grows so the message stays
// on one line.
func ConfirmDialog(title, message string) string {
	message = SanitizeOneLine(message)
	width := max(dialogMinWidth, lipgloss.Width(message)+dialogStyle.GetHorizontalFrameSize())

	body := boxHeaderStyle.Render(SanitizeOneLine(title)) + "\n\n" +
		dialogBodyStyle.Render(message) + "\n\n" +
		dialogHintStyle.Render("y: confirm | n: cancel")
	return dialogStyle.Width(width).Render(body)
}

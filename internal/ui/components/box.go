package components

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorBorder  = lipgloss.Color("#273540")
	colorAccent  = lipgloss.Color("#7f57b4")
	colorLabel   = lipgloss.Color("#436b77")
	colorMuted   = lipgloss.Color("#9ba0bf")
	colorErrEdge = lipgloss.Color("#7a2f3a")
	colorErrHead = lipgloss.Color("#e06c75")
	colorErrBody = lipgloss.Color("#d6b5b5")
)

var (
	boxBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	boxHeaderStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	boxLabelStyle = lipgloss.NewStyle().
			Foreground(colorLabel).
			Bold(true)

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorErrEdge).
			Padding(0, 2)

	errorHeaderStyle = lipgloss.NewStyle().
				Foreground(colorErrHead).
				Bold(true)

	errorBodyStyle = lipgloss.NewStyle().
			Foreground(colorErrBody)
)

// boxWidth picks ~70% of the terminal, kept between 40 and 80 columns.
func boxWidth(width int) int {
	if width <= 0 {
		return 0
	}
	return min(max(width*70/100, 40), 80)
}

// safeBoxWidth is boxWidth but never wider than the terminal itself.
func safeBoxWidth(width int) int {
	w := boxWidth(width)
	if width > 0 && w > width {
		return width
	}
	return w
}

// styleWidth converts an outer box width into the value for style.Width,
// which lipgloss applies inside the border.
func styleWidth(style lipgloss.Style, width int) int {
	w := safeBoxWidth(width)
	if w <= 0 {
		return 0
	}
	return max(w-style.GetHorizontalBorderSize(), 1)
}

// ClampTextWidth sanitizes text to one line and cuts it to width columns.
func ClampTextWidth(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 || lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	return truncateRunes(cleaned, width)
}

// ErrorBox renders a red bordered box for failed operations.
func ErrorBox(title, message string, width int) string {
	body := errorBodyStyle.Render(message)
	if title != "" {
		body = errorHeaderStyle.Render(title) + "\n" + body
	}
	return errorBorder.Width(styleWidth(errorBorder, width)).Render(body)
}

// TitledBox renders content in a box with the title set into the top border.
func TitledBox(title, content string, width int) string {
	boxed := boxBorder.Width(styleWidth(boxBorder, width)).Render(content)
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	inner := lineWidth - 2
	label := truncateRunes(" [ "+title+" ] ", inner)
	left := max((inner-lipgloss.Width(label))/2, 0)
	right := max(inner-lipgloss.Width(label)-left, 0)

	edge := lipgloss.NewStyle().Foreground(colorBorder)
	lines[0] = edge.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		boxHeaderStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, right)+border.TopRight)
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

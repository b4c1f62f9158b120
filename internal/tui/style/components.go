package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(Snow1).
			Padding(0, 2).
			Margin(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary)

	ButtonActiveStyle = lipgloss.NewStyle().
				Foreground(Polar1).
				Background(FutureGreen).
				Padding(0, 2).
				Margin(0, 1).
				Border(lipgloss.ThickBorder()).
				BorderForeground(FutureGreen).
				Bold(true)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(Polar4).
				Padding(0, 2).
				Margin(0, 1).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Polar3)
)

// RenderButton 渲染按鈕；禁用優先於聚焦
func RenderButton(label string, focused, enabled bool) string {
	switch {
	case !enabled:
		return ButtonDisabledStyle.Render(label)
	case focused:
		return ButtonActiveStyle.Render(label)
	default:
		return ButtonStyle.Render(label)
	}
}

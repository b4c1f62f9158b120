package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Yat-Muk/crashreporter/internal/tui/state"
	"github.com/Yat-Muk/crashreporter/internal/tui/style"
)

// NavBar 導航欄的按鈕狀態
type NavBar struct {
	PrevLabel   string
	PrevIcon    string
	PrevEnabled bool
	NextLabel   string
	NextIcon    string
	NextEnabled bool
}

// RenderTitle 窗口標題
func RenderTitle(icon, title string) string {
	if icon != "" {
		title = icon + "  " + title
	}
	return style.TitleStyle.Render(title)
}

// RenderSteps 步驟指示：●●○○ 第 2 步，共 4 步
func RenderSteps(index, total int, label string) string {
	var dots strings.Builder
	for i := 0; i < total; i++ {
		if i <= index {
			dots.WriteString(style.PrimaryText("●"))
		} else {
			dots.WriteString(style.MutedText("○"))
		}
	}
	return dots.String() + " " + style.MutedText(label)
}

// RenderNavBar 右對齊的上一步與下一步按鈕
func RenderNavBar(nav NavBar, width int) string {
	prev := nav.PrevLabel
	if nav.PrevIcon != "" {
		prev = nav.PrevIcon + " " + prev
	}
	next := nav.NextLabel
	if nav.NextIcon != "" {
		next = next + " " + nav.NextIcon
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		style.RenderButton(prev, false, nav.PrevEnabled),
		style.RenderButton(next, nav.NextEnabled, nav.NextEnabled),
	)
	if width <= 0 {
		return buttons
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, buttons)
}

// RenderStatus 狀態欄，未設置時為空
func RenderStatus(st state.StatusMsg) string {
	if !st.Show || st.Message == "" {
		return ""
	}

	text := st.Message
	if st.Detail != "" {
		text += " " + style.MutedText("("+st.Detail+")")
	}

	var mark string
	switch st.Type {
	case state.StatusError:
		mark = style.ErrorStyle.Render("✖ ")
	case state.StatusWarn:
		mark = style.WarningStyle.Render("! ")
	case state.StatusSuccess:
		mark = style.SuccessStyle.Render("✔ ")
	default:
		mark = style.InfoStyle.Render("• ")
	}
	return style.StatusBarStyle.Render(mark + text)
}

// RenderFrame 組合整個對話框
func RenderFrame(title, steps, body, status, nav, help string) string {
	parts := []string{title, steps, "", body, ""}
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, nav, style.HelpStyle.Render(help))
	return lipgloss.NewStyle().Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TextColor 返回一個使用指定前景色的 Render 函數。
// 這樣上層可以寫：style.TextColor(style.Info)("複製鏈接")
func TextColor(c lipgloss.Color) func(string) string {
	s := lipgloss.NewStyle().Foreground(c)
	return func(str string) string {
		return s.Render(str)
	}
}

// 語義著色快捷函數 --------------------------------------------------

func InfoText(s string) string {
	return TextColor(Info)(s)
}

func SuccessText(s string) string {
	return TextColor(Success)(s)
}

func WarningText(s string) string {
	return TextColor(Warning)(s)
}

func ErrorText(s string) string {
	return TextColor(Error)(s)
}

func MutedText(s string) string {
	return TextColor(Muted)(s)
}

func PrimaryText(s string) string {
	return TextColor(Primary)(s)
}

func SnowText(s string) string {
	return TextColor(Snow1)(s)
}

// VisualLength 字符串在等寬終端中的可視寬度，CJK 字符計為 2
func VisualLength(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}

// Truncate 按可視寬度截斷，超出部分以 … 結尾
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ansiRegex 用於去除日誌中原有的顏色代碼
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// ColorizeLog 按級別關鍵字為日誌著色，堆棧幀弱化顯示
func ColorizeLog(text string) string {
	if text == "" {
		return ""
	}

	frameStyle := lipgloss.NewStyle().Foreground(Snow3)
	causeStyle := lipgloss.NewStyle().Foreground(StatusOrange).Bold(true)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		clean := stripANSI(line)
		trimmed := strings.TrimSpace(clean)

		switch {
		case trimmed == "":
			out = append(out, "")
		case strings.HasPrefix(trimmed, "Caused by:"):
			out = append(out, causeStyle.Render(clean))
		case strings.HasPrefix(trimmed, "at ") || strings.HasPrefix(trimmed, "goroutine ") || isGoFrame(clean):
			out = append(out, frameStyle.Render(clean))
		case strings.Contains(clean, "ERROR") || strings.Contains(clean, "FATAL") || strings.Contains(clean, "SEVERE"):
			out = append(out, ErrorText(clean))
		case strings.Contains(clean, "WARN"):
			out = append(out, WarningText(clean))
		case strings.Contains(clean, "DEBUG") || strings.Contains(clean, "TRACE"):
			out = append(out, MutedText(clean))
		default:
			out = append(out, SnowText(clean))
		}
	}
	return strings.Join(out, "\n")
}

// isGoFrame Go 堆棧中以製表符開頭的文件行
func isGoFrame(line string) bool {
	return strings.HasPrefix(line, "\t") && strings.Contains(line, ".go:")
}

// stripANSI 去除字符串中的 ANSI 轉義碼
func stripANSI(str string) string {
	return ansiRegex.ReplaceAllString(str, "")
}

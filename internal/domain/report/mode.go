package report

import (
	"fmt"
	"strings"
)

// Mode 對話框框架：崩潰、問題回報或意見回饋
// 只影響標題與圖示，不影響頁面序列
type Mode int

const (
	ModeCrash Mode = iota
	ModeIssue
	ModeFeedback
)

func (m Mode) String() string {
	switch m {
	case ModeIssue:
		return "issue"
	case ModeFeedback:
		return "feedback"
	default:
		return "crash"
	}
}

// ParseMode 解析命令行或配置中的模式名稱
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "crash", "crash_reporter":
		return ModeCrash, nil
	case "issue", "issue_reporter":
		return ModeIssue, nil
	case "feedback":
		return ModeFeedback, nil
	}
	return ModeCrash, fmt.Errorf("未知的模式: %q", s)
}

// TitleKey 窗口標題的翻譯鍵
func (m Mode) TitleKey() string {
	switch m {
	case ModeIssue:
		return "issueTitle"
	case ModeFeedback:
		return "feedbackTitle"
	default:
		return "crashTitle"
	}
}

// FirstLineKey 錯誤頁首行的翻譯鍵
func (m Mode) FirstLineKey() string {
	switch m {
	case ModeIssue:
		return "firstLineIssue"
	case ModeFeedback:
		return "firstLineFeedback"
	default:
		return "firstLineCrash"
	}
}

package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// 窗口標題
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary)

	// 頁面標題
	PageTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Snow1)

	// 頁面說明
	PageMessageStyle = lipgloss.NewStyle().
				Foreground(Snow2)

	// 日誌標籤
	TabStyle = lipgloss.NewStyle().
			Foreground(Snow3).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Polar1).
			Background(Primary).
			Padding(0, 1).
			Bold(true)

	// 狀態欄
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 2)

	// 幫助
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 2)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Info)

	LinkStyle = lipgloss.NewStyle().
			Foreground(Info).
			Underline(true)

	// 頁面內容面板
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// 編輯中的面板
	PanelActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(Success).
				Padding(0, 1)
)

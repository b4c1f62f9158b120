package style

import "github.com/charmbracelet/lipgloss"

// 配色方案
var (
	FutureGreen = lipgloss.Color("#B2FF00") // 螢光綠 - 成功
	SkyBlue     = lipgloss.Color("#1AAEFC") // 天藍 - 主要強調
	Violet      = lipgloss.Color("#DDAAFF") // 紫羅蘭 - 次要強調
	Yellow      = lipgloss.Color("#FFDC65") // 明黃 - 警告
	Orange      = lipgloss.Color("#FC7B00") // 橙色 - 異常鏈
	Red         = lipgloss.Color("#FF007F") // 紅色 - 錯誤

	White    = lipgloss.Color("#F3F3F0")
	Gray     = lipgloss.Color("#C0C0C0")
	DarkGray = lipgloss.Color("#8A8783")

	BgDark  = lipgloss.Color("#1a1a1a")
	BgLight = lipgloss.Color("#3a3a3a")
)

// 功能顏色映射
var (
	Primary   = SkyBlue
	Secondary = Violet

	StatusOrange = Orange

	// Snow 系列（文字）
	Snow1 = White
	Snow2 = Gray
	Snow3 = DarkGray

	// Polar 系列（背景與邊框）
	Polar1 = BgDark
	Polar3 = BgLight
	Polar4 = DarkGray

	Muted   = DarkGray
	Success = FutureGreen
	Error   = Red
	Warning = Yellow
	Info    = SkyBlue
)

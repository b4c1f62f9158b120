package msg

import (
	"github.com/Yat-Muk/crashreporter/internal/domain/report"
	"github.com/Yat-Muk/crashreporter/internal/infra/logs"
)

// UploadFinishedMsg 上傳工作協程的結果，由事件循環投遞到界面協程
type UploadFinishedMsg struct {
	Attempt uint64
	Result  report.UploadResult
}

// LogEventMsg 日誌目錄變化
type LogEventMsg struct {
	Event logs.Event
}

// LogWatchClosedMsg 監視通道已關閉
type LogWatchClosedMsg struct{}

// ActionResultMsg 打開鏈接、複製等桌面操作的結果
type ActionResultMsg struct {
	Action string // "open", "copy"
	Target string
	Err    error
}

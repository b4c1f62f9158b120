package report

import "strings"

// LogEntry 一個日誌文件及其可編輯內容
// 只在界面協程中讀寫
type LogEntry struct {
	Name    string
	Path    string
	Content string
}

// Append 追加新寫入的內容
func (e *LogEntry) Append(text string) {
	e.Content += text
}

// UploadResult 一次上傳嘗試的結果，產生後不再修改
type UploadResult struct {
	Backend string
	URL     string
	Err     error
}

// Succeeded 是否得到鏈接
func (r UploadResult) Succeeded() bool {
	return r.Err == nil && r.URL != ""
}

const (
	userInfoHeader = "USER-GIVEN INFO:"
	traceHeader    = "ERROR STACK TRACE:"
)

// Compose 將用戶補充說明置於日誌之前；說明為空時原樣返回日誌
func Compose(userInfo, log string) string {
	if strings.TrimSpace(userInfo) == "" {
		return log
	}
	return userInfoHeader + "\n" + userInfo + "\n\n" + traceHeader + "\n" + log
}

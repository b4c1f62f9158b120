package state

// StatusType 狀態類型
type StatusType int

const (
	StatusReady StatusType = iota
	StatusSuccess
	StatusError
	StatusInfo
	StatusWarn
)

// StatusMsg 狀態欄消息
type StatusMsg struct {
	Type    StatusType
	Message string
	Detail  string
	Show    bool
}

// 頁面以外佔用的行數：標題、步驟、狀態欄、導航欄、幫助
const chromeHeight = 10

// UIState 對話框外框狀態
type UIState struct {
	Width  int
	Height int
	Status StatusMsg
}

// NewUIState 創建 UI 狀態
func NewUIState() *UIState {
	return &UIState{
		Width:  80,
		Height: 24,
		Status: StatusMsg{Type: StatusReady},
	}
}

// SetStatus 設置狀態欄消息
func (s *UIState) SetStatus(t StatusType, msg, detail string, show bool) {
	s.Status = StatusMsg{
		Type:    t,
		Message: msg,
		Detail:  detail,
		Show:    show,
	}
}

// ClearStatus 切換頁面時重置，錯誤保留給用戶看
func (s *UIState) ClearStatus() {
	if s.Status.Type != StatusError {
		s.Status = StatusMsg{Type: StatusReady}
	}
}

// UpdateSize 更新尺寸
func (s *UIState) UpdateSize(w, h int) {
	s.Width = w
	s.Height = h
}

// PageSize 頁面內容可用的寬高
func (s *UIState) PageSize() (int, int) {
	w := s.Width - 4
	h := s.Height - chromeHeight
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	return w, h
}

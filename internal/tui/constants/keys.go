package constants

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/Yat-Muk/crashreporter/internal/i18n"
)

const (
	// 全局導航
	KeyNext      = "ctrl+n"
	KeyPrev      = "ctrl+b"
	KeyRight     = "right"
	KeyLeft      = "left"
	KeyQuit      = "q"
	KeyEsc       = "esc"
	KeyForceQuit = "ctrl+c"

	// 錯誤頁
	KeyTabNext     = "tab"
	KeyTabPrev     = "shift+tab"
	KeyEditLog     = "e"
	KeyToggleTrace = "t"

	// 補充說明頁
	KeyFocusInput = "i"

	// 上傳頁
	KeyUploadPastebin = "1"
	KeyUploadGDrive   = "2"
	KeyUploadHosted   = "3"
	KeySkipUpload     = "s"

	// 最終頁
	KeyCopyLink = "c"

	// 列表
	KeyUp    = "up"
	KeyDown  = "down"
	KeyEnter = "enter"
)

// KeyMap 對話框的按鍵綁定，說明文字隨語言變化
type KeyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Close       key.Binding
	Quit        key.Binding
	Tabs        key.Binding
	Edit        key.Binding
	Save        key.Binding
	ToggleTrace key.Binding
	Select      key.Binding
	Skip        key.Binding
	Copy        key.Binding
	Focus       key.Binding
}

// NewKeyMap 按語言構建按鍵綁定
func NewKeyMap(b *i18n.Bundle) KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys(KeyNext, KeyRight),
			key.WithHelp("→/"+KeyNext, b.T("next")),
		),
		Prev: key.NewBinding(
			key.WithKeys(KeyPrev, KeyLeft),
			key.WithHelp("←/"+KeyPrev, b.T("prev")),
		),
		Close: key.NewBinding(
			key.WithKeys(KeyNext, KeyRight),
			key.WithHelp("→/"+KeyNext, b.T("close")),
		),
		Quit: key.NewBinding(
			key.WithKeys(KeyQuit, KeyEsc, KeyForceQuit),
			key.WithHelp(KeyQuit+"/"+KeyEsc, b.T("helpQuit")),
		),
		Tabs: key.NewBinding(
			key.WithKeys(KeyTabNext, KeyTabPrev),
			key.WithHelp(KeyTabNext, b.T("helpTabs")),
		),
		Edit: key.NewBinding(
			key.WithKeys(KeyEditLog),
			key.WithHelp(KeyEditLog, b.T("editLog")),
		),
		Save: key.NewBinding(
			key.WithKeys(KeyEsc),
			key.WithHelp(KeyEsc, b.T("saveLog")),
		),
		ToggleTrace: key.NewBinding(
			key.WithKeys(KeyToggleTrace),
			key.WithHelp(KeyToggleTrace, b.T("toggleTrace")),
		),
		Select: key.NewBinding(
			key.WithKeys(KeyUp, KeyDown, KeyEnter),
			key.WithHelp("↑/↓/enter", b.T("helpSelect")),
		),
		Skip: key.NewBinding(
			key.WithKeys(KeySkipUpload),
			key.WithHelp(KeySkipUpload, b.T("skipUpload")),
		),
		Copy: key.NewBinding(
			key.WithKeys(KeyCopyLink),
			key.WithHelp(KeyCopyLink, b.T("copyToClipboard")),
		),
		Focus: key.NewBinding(
			key.WithKeys(KeyFocusInput, KeyEnter),
			key.WithHelp(KeyFocusInput, b.T("additionalInfoTitle")),
		),
	}
}

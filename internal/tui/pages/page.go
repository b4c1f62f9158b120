// Package pages 實現崩潰對話框的四個步驟
package pages

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/i18n"
	"github.com/Yat-Muk/crashreporter/internal/infra/config"
	"github.com/Yat-Muk/crashreporter/internal/tui/constants"
	"github.com/Yat-Muk/crashreporter/internal/tui/style"
	"github.com/Yat-Muk/crashreporter/internal/tui/wizard"
)

// Env 各頁面共享的依賴
type Env struct {
	// Context 對話框關閉時取消
	Context context.Context
	I18n    *i18n.Bundle
	Props   *config.Properties
	Log     *zap.Logger
	Keys    constants.KeyMap
}

// NewEnv 補全缺省依賴
func NewEnv(ctx context.Context, b *i18n.Bundle, props *config.Properties, log *zap.Logger) *Env {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if b == nil {
		b = i18n.New("", log)
	}
	if props == nil {
		props = config.Defaults(log)
	}
	return &Env{
		Context: ctx,
		I18n:    b,
		Props:   props,
		Log:     log,
		Keys:    constants.NewKeyMap(b),
	}
}

// Page 對話框中的一頁
type Page interface {
	wizard.Page

	// HandleKey 返回 false 時按鍵交由對話框處理
	HandleKey(msg tea.KeyMsg) (tea.Cmd, bool)
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	ShortHelp() []key.Binding
}

// renderHeader 頁面標題：圖標、標題與說明
func renderHeader(icon, title, message string) string {
	line := style.PageTitleStyle.Render(title)
	if icon != "" {
		line = icon + " " + line
	}
	if message == "" {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, style.PageMessageStyle.Render(message))
}

// cursorMove 處理列表中的上下移動，返回是否為移動鍵
func cursorMove(k string, cursor, n int) (int, bool) {
	if n == 0 {
		return cursor, false
	}
	switch k {
	case constants.KeyUp, constants.KeyTabPrev:
		return (cursor - 1 + n) % n, true
	case constants.KeyDown, constants.KeyTabNext:
		return (cursor + 1) % n, true
	}
	return cursor, false
}

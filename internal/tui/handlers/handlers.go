package handlers

import (
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/i18n"
	"github.com/Yat-Muk/crashreporter/internal/tui/pages"
	"github.com/Yat-Muk/crashreporter/internal/tui/state"
	"github.com/Yat-Muk/crashreporter/internal/tui/wizard"
)

// Config 用於初始化 Handlers 的配置結構體
type Config struct {
	Log        *zap.Logger
	UI         *state.UIState
	I18n       *i18n.Bundle
	Controller *wizard.Controller
	// Pages 與 Controller 中的頁面一一對應
	Pages []pages.Page
}

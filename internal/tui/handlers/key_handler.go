package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/i18n"
	"github.com/Yat-Muk/crashreporter/internal/tui/constants"
	"github.com/Yat-Muk/crashreporter/internal/tui/pages"
	"github.com/Yat-Muk/crashreporter/internal/tui/state"
	"github.com/Yat-Muk/crashreporter/internal/tui/wizard"
)

// KeyHandler 全局導航，其餘按鍵交給當前頁面
type KeyHandler struct {
	ui    *state.UIState
	i18n  *i18n.Bundle
	ctrl  *wizard.Controller
	pages []pages.Page
	log   *zap.Logger
}

func NewKeyHandler(cfg *Config) *KeyHandler {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &KeyHandler{
		ui:    cfg.UI,
		i18n:  cfg.I18n,
		ctrl:  cfg.Controller,
		pages: cfg.Pages,
		log:   log,
	}
}

// Handle 處理按鍵
// ctrl+n/ctrl+b 總是用於翻頁；方向鍵與退出鍵只在頁面未處理時生效
func (h *KeyHandler) Handle(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case constants.KeyForceQuit:
		h.log.Info("用戶中斷對話框")
		return tea.Quit
	case constants.KeyNext:
		return h.forward()
	case constants.KeyPrev:
		return h.back()
	}

	if cmd, handled := h.current().HandleKey(msg); handled {
		return cmd
	}

	switch msg.String() {
	case constants.KeyRight:
		return h.forward()
	case constants.KeyLeft:
		return h.back()
	case constants.KeyQuit, constants.KeyEsc:
		h.log.Info("用戶關閉對話框", zap.Int("page", h.ctrl.Index()))
		return tea.Quit
	}
	return nil
}

func (h *KeyHandler) current() pages.Page {
	return h.pages[h.ctrl.Index()]
}

func (h *KeyHandler) forward() tea.Cmd {
	if !h.ctrl.NextEnabled() {
		h.ui.SetStatus(state.StatusWarn, h.i18n.T("nextDisabled"), "", true)
		return nil
	}
	h.ui.ClearStatus()
	return h.ctrl.Forward()
}

func (h *KeyHandler) back() tea.Cmd {
	if !h.ctrl.PrevEnabled() {
		return nil
	}
	h.ui.ClearStatus()
	return h.ctrl.Retreat()
}

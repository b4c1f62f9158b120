package handlers

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/i18n"
	"github.com/Yat-Muk/crashreporter/internal/tui/pages"
	"github.com/Yat-Muk/crashreporter/internal/tui/state"
	"github.com/Yat-Muk/crashreporter/internal/tui/wizard"
)

// stubPage 記錄收到的按鍵，只處理 capture 中的按鍵
type stubPage struct {
	wizard.Completion
	capture map[string]bool
	keys    []string
}

func newStubPage(complete bool, capture ...string) *stubPage {
	p := &stubPage{capture: map[string]bool{}}
	p.SetComplete(complete)
	for _, k := range capture {
		p.capture[k] = true
	}
	return p
}

func (p *stubPage) OnShown() tea.Cmd { p.Emit(); return nil }
func (p *stubPage) OnHidden()        {}

func (p *stubPage) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	p.keys = append(p.keys, msg.String())
	return nil, p.capture[msg.String()]
}

func (p *stubPage) Update(tea.Msg) tea.Cmd   { return nil }
func (p *stubPage) View() string             { return "" }
func (p *stubPage) SetSize(int, int)         {}
func (p *stubPage) ShortHelp() []key.Binding { return nil }

func setupTestEnv(t *testing.T, ps ...*stubPage) (*KeyHandler, *wizard.Controller, *state.UIState) {
	t.Helper()
	wp := make([]wizard.Page, len(ps))
	pp := make([]pages.Page, len(ps))
	for i, p := range ps {
		wp[i] = p
		pp[i] = p
	}
	ctrl, err := wizard.NewController(wp, zap.NewNop())
	require.NoError(t, err)
	ctrl.Start()

	ui := state.NewUIState()
	h := NewKeyHandler(&Config{
		Log:        zap.NewNop(),
		UI:         ui,
		I18n:       i18n.New("en", zap.NewNop()),
		Controller: ctrl,
		Pages:      pp,
	})
	return h, ctrl, ui
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestKeyHandler_Navigation(t *testing.T) {
	first, second := newStubPage(true), newStubPage(true)
	h, ctrl, _ := setupTestEnv(t, first, second)

	h.Handle(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, ctrl.Index())

	h.Handle(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, ctrl.Index())

	h.Handle(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, 1, ctrl.Index())

	t.Run("最後一頁前進即關閉", func(t *testing.T) {
		cmd := h.Handle(tea.KeyMsg{Type: tea.KeyCtrlN})
		assert.True(t, isQuit(cmd))
		assert.True(t, ctrl.Closed())
	})
}

func TestKeyHandler_Gating(t *testing.T) {
	first, second := newStubPage(false), newStubPage(true)
	h, ctrl, ui := setupTestEnv(t, first, second)

	h.Handle(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, ctrl.Index())
	assert.Equal(t, state.StatusWarn, ui.Status.Type)
	assert.Equal(t, "Complete this step to continue.", ui.Status.Message)

	first.SetComplete(true)
	h.Handle(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, ctrl.Index())
	assert.Equal(t, state.StatusReady, ui.Status.Type)
}

func TestKeyHandler_PageCapturesKeys(t *testing.T) {
	editing := newStubPage(true, "right", "left", "q", "esc")
	h, ctrl, _ := setupTestEnv(t, editing, newStubPage(true))

	assert.Nil(t, h.Handle(tea.KeyMsg{Type: tea.KeyRight}))
	assert.False(t, isQuit(h.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})))
	assert.Equal(t, 0, ctrl.Index())
	assert.Equal(t, []string{"right", "q"}, editing.keys)

	t.Run("ctrl+n 不經過頁面", func(t *testing.T) {
		h.Handle(tea.KeyMsg{Type: tea.KeyCtrlN})
		assert.Equal(t, 1, ctrl.Index())
		assert.Len(t, editing.keys, 2)
	})
}

func TestKeyHandler_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := setupTestEnv(t, newStubPage(true))
			assert.True(t, isQuit(h.Handle(tt.msg)))
		})
	}

	t.Run("ctrl+c 即使頁面捕獲也退出", func(t *testing.T) {
		h, _, _ := setupTestEnv(t, newStubPage(true, "ctrl+c"))
		assert.True(t, isQuit(h.Handle(tea.KeyMsg{Type: tea.KeyCtrlC})))
	})
}

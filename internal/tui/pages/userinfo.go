package pages

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Yat-Muk/crashreporter/internal/domain/report"
	"github.com/Yat-Muk/crashreporter/internal/infra/config"
	"github.com/Yat-Muk/crashreporter/internal/pkg/inputvalidator"
	"github.com/Yat-Muk/crashreporter/internal/tui/constants"
	"github.com/Yat-Muk/crashreporter/internal/tui/style"
	"github.com/Yat-Muk/crashreporter/internal/tui/wizard"
)

// UserInfoPage 用戶補充說明，非空時完成
type UserInfoPage struct {
	wizard.Completion

	env   *Env
	crash *report.CrashContext
	// log 讀取錯誤頁當前選中的日誌
	log    func() string
	editor textarea.Model
}

func NewUserInfoPage(env *Env, crash *report.CrashContext, log func() string) *UserInfoPage {
	ed := textarea.New()
	ed.ShowLineNumbers = false
	ed.CharLimit = inputvalidator.MaxUserInfo
	ed.Placeholder = env.I18n.T("additionalInfoMessage")

	return &UserInfoPage{
		env:    env,
		crash:  crash,
		log:    log,
		editor: ed,
	}
}

func (p *UserInfoPage) OnShown() tea.Cmd {
	p.SetComplete(!p.isEmpty())
	p.Emit()
	return p.editor.Focus()
}

func (p *UserInfoPage) OnHidden() {
	p.editor.Blur()
}

func (p *UserInfoPage) isEmpty() bool {
	return p.editor.Value() == ""
}

// Text 用戶輸入的說明
func (p *UserInfoPage) Text() string {
	return p.editor.Value()
}

// SetText 替換說明並更新完成狀態
func (p *UserInfoPage) SetText(s string) {
	p.editor.SetValue(s)
	p.SetComplete(!p.isEmpty())
}

// Report 待上傳的完整文本；沒有日誌時以錯誤堆棧代替
func (p *UserInfoPage) Report() string {
	log := ""
	if p.log != nil {
		log = p.log()
	}
	if strings.TrimSpace(log) == "" {
		log = p.crash.Trace()
	}
	return report.Compose(inputvalidator.SanitizeText(p.Text()), log)
}

func (p *UserInfoPage) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !p.editor.Focused() {
		switch msg.String() {
		case constants.KeyFocusInput, constants.KeyEnter:
			return p.editor.Focus(), true
		}
		return nil, false
	}

	if msg.String() == constants.KeyEsc {
		p.editor.Blur()
		return nil, true
	}

	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	p.SetComplete(!p.isEmpty())
	return cmd, true
}

func (p *UserInfoPage) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	return cmd
}

func (p *UserInfoPage) SetSize(width, height int) {
	p.editor.SetWidth(max(width-4, 10))
	p.editor.SetHeight(max(height-8, 3))
}

func (p *UserInfoPage) ShortHelp() []key.Binding {
	if p.editor.Focused() {
		return []key.Binding{p.env.Keys.Save}
	}
	return []key.Binding{p.env.Keys.Focus}
}

func (p *UserInfoPage) View() string {
	b := p.env.I18n

	panel := style.PanelStyle
	if p.editor.Focused() {
		panel = style.PanelActiveStyle
	}

	sections := []string{
		renderHeader(p.env.Props.Icon(config.ResInfoTitleIcon), b.T("additionalInfoTitle"), b.T("additionalInfoMessage")),
		"",
		panel.Render(p.editor.View()),
	}
	if p.isEmpty() {
		sections = append(sections, style.WarningText(b.T("additionalInfoStatus")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

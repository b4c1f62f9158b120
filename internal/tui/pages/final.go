package pages

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/infra/config"
	"github.com/Yat-Muk/crashreporter/internal/infra/system"
	"github.com/Yat-Muk/crashreporter/internal/pkg/inputvalidator"
	"github.com/Yat-Muk/crashreporter/internal/pkg/sanitizer"
	"github.com/Yat-Muk/crashreporter/internal/tui/constants"
	"github.com/Yat-Muk/crashreporter/internal/tui/msg"
	"github.com/Yat-Muk/crashreporter/internal/tui/style"
	"github.com/Yat-Muk/crashreporter/internal/tui/wizard"
)

// 操作類型
const (
	ActionOpen = "open"
	ActionCopy = "copy"
)

type linkAction struct {
	label string
	link  config.Key
	icon  config.Key
}

var linkActions = []linkAction{
	{"joinDiscord", config.JoinDiscordLink, config.ResDiscordIcon},
	{"reportIssue", config.ReportIssueLink, config.ResGithubIcon},
	{"gotoForum", config.SupportForumLink, config.ResForumIcon},
}

// FinalPage 指引用戶前往社區渠道並提供上傳鏈接
type FinalPage struct {
	wizard.Completion

	env     *Env
	desktop system.Desktop
	url     func() string
	cursor  int
	notice  string
	failed  bool
}

// NewFinalPage url 返回上傳頁得到的鏈接
func NewFinalPage(env *Env, desktop system.Desktop, url func() string) *FinalPage {
	return &FinalPage{env: env, desktop: desktop, url: url}
}

func (p *FinalPage) OnShown() tea.Cmd {
	p.notice = ""
	p.SetComplete(true)
	p.Emit()
	return nil
}

func (p *FinalPage) OnHidden() {}

// UploadURL 上傳鏈接，沒有時為空
func (p *FinalPage) UploadURL() string {
	if p.url == nil {
		return ""
	}
	return p.url()
}

// options 鏈接操作之後是複製
func (p *FinalPage) options() int {
	return len(linkActions) + 1
}

func (p *FinalPage) enabled(i int) bool {
	if i < len(linkActions) {
		return inputvalidator.IsURL(p.env.Props.Get(linkActions[i].link))
	}
	return p.UploadURL() != "" && p.desktop != nil
}

// Trigger 執行第 i 個操作，最後一項為複製鏈接
func (p *FinalPage) Trigger(i int) tea.Cmd {
	if i < 0 || i >= p.options() || !p.enabled(i) {
		return nil
	}
	if i == len(linkActions) {
		return p.copyCmd(p.UploadURL())
	}
	return p.openCmd(p.env.Props.Get(linkActions[i].link))
}

func (p *FinalPage) openCmd(link string) tea.Cmd {
	if p.desktop == nil {
		return nil
	}
	ctx := p.env.Context
	desktop := p.desktop
	return func() tea.Msg {
		err := desktop.OpenURL(ctx, link)
		return msg.ActionResultMsg{Action: ActionOpen, Target: link, Err: err}
	}
}

func (p *FinalPage) copyCmd(text string) tea.Cmd {
	desktop := p.desktop
	return func() tea.Msg {
		err := desktop.CopyText(text)
		return msg.ActionResultMsg{Action: ActionCopy, Target: text, Err: err}
	}
}

// HandleAction 顯示桌面操作的結果
func (p *FinalPage) HandleAction(m msg.ActionResultMsg) {
	b := p.env.I18n
	p.failed = m.Err != nil

	switch {
	case m.Action == ActionCopy && m.Err == nil:
		p.notice = b.T("copied")
	case m.Action == ActionCopy:
		p.notice = b.TF("copyFailed", m.Err)
	case m.Err != nil:
		p.notice = b.TF("openFailed", m.Target)
	default:
		p.notice = ""
	}

	if m.Err != nil {
		p.env.Log.Warn("桌面操作失敗",
			zap.String("action", m.Action),
			zap.String("target", sanitizer.URL(m.Target)),
			zap.Error(m.Err),
		)
	}
}

func (p *FinalPage) HandleKey(m tea.KeyMsg) (tea.Cmd, bool) {
	k := m.String()
	if next, ok := cursorMove(k, p.cursor, p.options()); ok {
		p.cursor = next
		return nil, true
	}
	switch k {
	case constants.KeyEnter:
		return p.Trigger(p.cursor), true
	case constants.KeyCopyLink:
		p.cursor = len(linkActions)
		return p.Trigger(p.cursor), true
	}
	return nil, false
}

func (p *FinalPage) Update(tea.Msg) tea.Cmd { return nil }

func (p *FinalPage) SetSize(width, height int) {}

func (p *FinalPage) ShortHelp() []key.Binding {
	return []key.Binding{p.env.Keys.Select, p.env.Keys.Copy}
}

func (p *FinalPage) View() string {
	b := p.env.I18n
	props := p.env.Props

	rows := make([]string, 0, len(linkActions))
	for i, a := range linkActions {
		hint := props.Get(a.link)
		if hint == "" {
			hint = b.T("linkUnavailable")
		}
		button := style.RenderButton(withIcon(props.Icon(a.icon), b.T(a.label)), i == p.cursor, p.enabled(i))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, button, style.MutedText(hint)))
	}

	link := style.MutedText(b.T("noUploadLinkText"))
	if u := p.UploadURL(); u != "" {
		link = style.LinkStyle.Render(u)
	}
	copyIdx := len(linkActions)
	copyButton := style.RenderButton(withIcon(props.Icon(config.ResCopyIcon), b.T("copyToClipboard")), p.cursor == copyIdx, p.enabled(copyIdx))

	sections := []string{
		renderHeader(props.Icon(config.ResFinalTitleIcon), b.T("reportProblem"), ""),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		style.PageTitleStyle.Render(b.T("logFileUrl")),
		lipgloss.JoinHorizontal(lipgloss.Center, link, copyButton),
	}
	if p.notice != "" {
		if p.failed {
			sections = append(sections, style.ErrorText(p.notice))
		} else {
			sections = append(sections, style.SuccessText(p.notice))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

package pages

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/domain/report"
	"github.com/Yat-Muk/crashreporter/internal/infra/config"
	"github.com/Yat-Muk/crashreporter/internal/infra/logs"
	"github.com/Yat-Muk/crashreporter/internal/tui/constants"
	"github.com/Yat-Muk/crashreporter/internal/tui/style"
	"github.com/Yat-Muk/crashreporter/internal/tui/wizard"
)

const maxTabWidth = 24

// 頁眉、標籤、位置與提示佔用的行數
const errorLogChrome = 11

// ErrorLogPage 顯示錯誤信息並允許查看、編輯日誌
type ErrorLogPage struct {
	wizard.Completion

	env     *Env
	crash   *report.CrashContext
	entries []*report.LogEntry
	active  int

	viewport  viewport.Model
	editor    textarea.Model
	editing   bool
	showTrace bool
	notice    string
	width     int
}

// NewErrorLogPage entries 已按最新優先排序
func NewErrorLogPage(env *Env, crash *report.CrashContext, entries []*report.LogEntry) *ErrorLogPage {
	ed := textarea.New()
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.Prompt = ""

	p := &ErrorLogPage{
		env:      env,
		crash:    crash,
		entries:  entries,
		viewport: viewport.New(76, 10),
		editor:   ed,
		width:    80,
	}
	p.refresh()
	return p
}

// OnShown 沒有需要審閱的內容時同樣視為完成
func (p *ErrorLogPage) OnShown() tea.Cmd {
	p.SetComplete(true)
	p.Emit()
	p.refresh()
	return nil
}

// OnHidden 離開時提交正在編輯的內容
func (p *ErrorLogPage) OnHidden() {
	p.commitEdit()
}

// Entries 當前所有日誌
func (p *ErrorLogPage) Entries() []*report.LogEntry {
	return p.entries
}

// Active 選中標籤的下標
func (p *ErrorLogPage) Active() int {
	return p.active
}

// CurrentEntry 選中的日誌，沒有日誌時為 nil
func (p *ErrorLogPage) CurrentEntry() *report.LogEntry {
	if p.active < 0 || p.active >= len(p.entries) {
		return nil
	}
	return p.entries[p.active]
}

// CurrentLog 選中日誌的內容，編輯中時為編輯器內容
func (p *ErrorLogPage) CurrentLog() string {
	e := p.CurrentEntry()
	if e == nil {
		return ""
	}
	if p.editing {
		return p.editor.Value()
	}
	return e.Content
}

// SetCurrentLog 替換選中日誌的內容
func (p *ErrorLogPage) SetCurrentLog(text string) {
	e := p.CurrentEntry()
	if e == nil {
		return
	}
	e.Content = text
	if p.editing {
		p.editor.SetValue(text)
	}
	p.refresh()
}

// Editing 是否正在編輯日誌
func (p *ErrorLogPage) Editing() bool {
	return p.editing
}

// Select 切換到指定標籤
func (p *ErrorLogPage) Select(i int) {
	if i < 0 || i >= len(p.entries) || i == p.active {
		return
	}
	p.commitEdit()
	p.active = i
	p.refresh()
	p.viewport.GotoTop()
}

func (p *ErrorLogPage) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if p.editing {
		if msg.String() == constants.KeyEsc {
			p.commitEdit()
			return nil, true
		}
		var cmd tea.Cmd
		p.editor, cmd = p.editor.Update(msg)
		return cmd, true
	}

	switch msg.String() {
	case constants.KeyTabNext, constants.KeyTabPrev:
		if len(p.entries) < 2 {
			return nil, true
		}
		next, _ := cursorMove(msg.String(), p.active, len(p.entries))
		p.Select(next)
		return nil, true

	case constants.KeyEditLog:
		if p.CurrentEntry() == nil {
			return nil, true
		}
		p.showTrace = false
		p.editing = true
		p.editor.SetValue(p.CurrentEntry().Content)
		return p.editor.Focus(), true

	case constants.KeyToggleTrace:
		p.showTrace = !p.showTrace
		p.refresh()
		return nil, true

	case "up", "down", "pgup", "pgdown", "home", "end", "k", "j":
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return cmd, true
	}
	return nil, false
}

func (p *ErrorLogPage) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if p.editing {
		p.editor, cmd = p.editor.Update(msg)
		return cmd
	}
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// ApplyLogEvent 將監視到的變化合併到標籤中
func (p *ErrorLogPage) ApplyLogEvent(ev logs.Event) {
	idx := p.indexOf(ev.Path)

	switch {
	case idx < 0 && ev.Kind != logs.EventAppended:
		entry := &report.LogEntry{Name: ev.Name, Path: ev.Path, Content: ev.Text}
		p.entries = append([]*report.LogEntry{entry}, p.entries...)
		if len(p.entries) > 1 {
			// 保持原來的選中項
			p.active++
		}

	case idx < 0:
		p.env.Log.Debug("忽略未知日誌的追加事件", zap.String("path", ev.Path))
		return

	case ev.Kind == logs.EventAppended:
		p.entries[idx].Append(ev.Text)
		if p.editing && idx == p.active {
			p.editor.SetValue(p.editor.Value() + ev.Text)
		}

	default:
		p.entries[idx].Content = ev.Text
		if p.editing && idx == p.active {
			p.editor.SetValue(ev.Text)
		}
	}

	p.notice = p.env.I18n.TF("logUpdated", ev.Name)
	following := p.viewport.AtBottom()
	p.refresh()
	if following && idx == p.active {
		p.viewport.GotoBottom()
	}
}

func (p *ErrorLogPage) indexOf(path string) int {
	for i, e := range p.entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}

func (p *ErrorLogPage) commitEdit() {
	if !p.editing {
		return
	}
	if e := p.CurrentEntry(); e != nil {
		e.Content = p.editor.Value()
	}
	p.editing = false
	p.editor.Blur()
	p.refresh()
}

func (p *ErrorLogPage) refresh() {
	switch {
	case p.showTrace:
		p.viewport.SetContent(style.ColorizeLog(p.crash.Trace()))
	case p.CurrentEntry() != nil:
		p.viewport.SetContent(style.ColorizeLog(p.CurrentEntry().Content))
	default:
		p.viewport.SetContent("")
	}
}

func (p *ErrorLogPage) SetSize(width, height int) {
	p.width = width
	inner := max(width-4, 10)
	body := max(height-errorLogChrome, 3)

	p.viewport.Width = inner
	p.viewport.Height = body
	p.editor.SetWidth(inner)
	p.editor.SetHeight(body)
	p.refresh()
}

func (p *ErrorLogPage) ShortHelp() []key.Binding {
	k := p.env.Keys
	if p.editing {
		return []key.Binding{k.Save}
	}
	bindings := []key.Binding{k.ToggleTrace}
	if len(p.entries) > 0 {
		bindings = append(bindings, k.Edit)
	}
	if len(p.entries) > 1 {
		bindings = append(bindings, k.Tabs)
	}
	return bindings
}

func (p *ErrorLogPage) View() string {
	b := p.env.I18n
	icon := p.env.Props.Icon(config.ResErrorTitleIcon)
	if p.crash.Mode() != report.ModeCrash {
		icon = p.env.Props.Icon(config.ResInfoTitleIcon)
	}

	var sections []string
	sections = append(sections,
		renderHeader(icon, b.T(p.crash.Mode().FirstLineKey()), ""),
		style.ErrorStyle.Render(p.crash.Headline()),
		"",
	)

	switch {
	case p.showTrace:
		sections = append(sections, style.PanelStyle.Render(p.viewport.View()))
	case len(p.entries) == 0:
		placeholder := lipgloss.NewStyle().
			Bold(true).
			Width(max(p.width-6, 10)).
			Align(lipgloss.Center).
			Render(b.T("noLogFiles"))
		sections = append(sections, style.PanelStyle.Render(placeholder))
	case p.editing:
		sections = append(sections, p.renderTabs(), style.PanelActiveStyle.Render(p.editor.View()))
	default:
		sections = append(sections, p.renderTabs(), style.PanelStyle.Render(p.viewport.View()))
	}

	location := b.T("notSpecified")
	if p.crash.HasLogFolder() {
		location = p.crash.LogFolder()
	}
	sections = append(sections,
		style.MutedText(b.T("fileLocation")+": ")+location,
		"",
		emphasizeLead(b.T("editBeforeUpload")),
	)
	if p.notice != "" {
		sections = append(sections, style.InfoText(p.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p *ErrorLogPage) renderTabs() string {
	tabs := make([]string, 0, len(p.entries))
	for i, e := range p.entries {
		name := style.Truncate(e.Name, maxTabWidth)
		if i == p.active {
			tabs = append(tabs, style.ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, style.TabStyle.Render(name))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if p.width > 0 && style.VisualLength(row) > p.width {
		// 標籤過多時只保留選中項附近
		return style.ActiveTabStyle.Render(style.Truncate(p.entries[p.active].Name, maxTabWidth)) +
			style.MutedText(" ("+strconv.Itoa(p.active+1)+"/"+strconv.Itoa(len(p.entries))+")")
	}
	return row
}

// emphasizeLead 冒號前的部分加粗
func emphasizeLead(s string) string {
	idx := strings.Index(s, ":")
	if idx <= 0 {
		return s
	}
	return lipgloss.NewStyle().Bold(true).Render(s[:idx]) + s[idx:]
}

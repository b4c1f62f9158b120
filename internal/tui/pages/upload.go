package pages

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Yat-Muk/crashreporter/internal/infra/config"
	transport "github.com/Yat-Muk/crashreporter/internal/infra/upload"
	"github.com/Yat-Muk/crashreporter/internal/tui/constants"
	"github.com/Yat-Muk/crashreporter/internal/tui/msg"
	"github.com/Yat-Muk/crashreporter/internal/tui/style"
	"github.com/Yat-Muk/crashreporter/internal/tui/upload"
	"github.com/Yat-Muk/crashreporter/internal/tui/wizard"
)

// 各後端的按鈕文本、圖示與快捷鍵
var backendLabels = map[string]struct {
	key    string
	icon   config.Key
	hotkey string
}{
	transport.NamePastebin: {"uploadPastebin", config.ResPastebinIcon, constants.KeyUploadPastebin},
	transport.NameGDrive:   {"uploadGDrive", config.ResGDriveIcon, constants.KeyUploadGDrive},
	transport.NameHosted:   {"uploadHosted", config.ResHostedIcon, constants.KeyUploadHosted},
}

// 快捷鍵到後端名稱
var backendHotkeys = map[string]string{
	constants.KeyUploadPastebin: transport.NamePastebin,
	constants.KeyUploadGDrive:   transport.NameGDrive,
	constants.KeyUploadHosted:   transport.NameHosted,
}

// UploadPage 選擇上傳目標或跳過
type UploadPage struct {
	wizard.Completion

	env        *Env
	transports []transport.Transport
	content    func() string
	coord      *upload.Coordinator
	spinner    spinner.Model
	cursor     int
}

// NewUploadPage content 在觸發上傳時讀取
func NewUploadPage(env *Env, transports []transport.Transport, content func() string, timeout time.Duration) *UploadPage {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(style.Primary)

	p := &UploadPage{
		env:        env,
		transports: transports,
		content:    content,
		spinner:    sp,
	}
	p.coord = upload.NewCoordinator(upload.Config{
		Context:    env.Context,
		Timeout:    timeout,
		I18n:       env.I18n,
		Logger:     env.Log,
		OnComplete: p.SetComplete,
	})
	return p
}

// Coordinator 上傳協調器
func (p *UploadPage) Coordinator() *upload.Coordinator {
	return p.coord
}

// URL 上傳成功後的鏈接
func (p *UploadPage) URL() string {
	return p.coord.URL()
}

func (p *UploadPage) OnShown() tea.Cmd {
	p.Emit()
	if p.coord.Busy() {
		return p.spinner.Tick
	}
	return nil
}

func (p *UploadPage) OnHidden() {}

// options 上傳目標之後是跳過
func (p *UploadPage) options() int {
	return len(p.transports) + 1
}

func (p *UploadPage) enabled(i int) bool {
	if i < len(p.transports) {
		return p.coord.TriggersEnabled()
	}
	return p.coord.SkipEnabled()
}

// Trigger 觸發第 i 個選項，最後一項為跳過
func (p *UploadPage) Trigger(i int) tea.Cmd {
	if i < 0 || i >= p.options() || !p.enabled(i) {
		return nil
	}
	if i == len(p.transports) {
		p.coord.Skip()
		return nil
	}

	content := ""
	if p.content != nil {
		content = p.content()
	}
	cmd := p.coord.Start(p.transports[i], content)
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, p.spinner.Tick)
}

// HandleResult 應用上傳結果
func (p *UploadPage) HandleResult(m msg.UploadFinishedMsg) {
	p.coord.Handle(m)
}

func (p *UploadPage) HandleKey(m tea.KeyMsg) (tea.Cmd, bool) {
	k := m.String()
	if next, ok := cursorMove(k, p.cursor, p.options()); ok {
		p.cursor = next
		return nil, true
	}

	switch k {
	case constants.KeyEnter:
		return p.Trigger(p.cursor), true
	case constants.KeyUploadPastebin, constants.KeyUploadGDrive, constants.KeyUploadHosted:
		i := p.indexOf(backendHotkeys[k])
		if i < 0 {
			return nil, false
		}
		p.cursor = i
		return p.Trigger(i), true
	case constants.KeySkipUpload:
		p.cursor = len(p.transports)
		return p.Trigger(p.cursor), true
	case constants.KeyEsc:
		if p.coord.Busy() {
			p.coord.Cancel()
			return nil, true
		}
	}
	return nil, false
}

// indexOf 按名稱查找已配置的後端，沒有時返回 -1
func (p *UploadPage) indexOf(name string) int {
	for i, t := range p.transports {
		if t.Name() == name {
			return i
		}
	}
	return -1
}

func (p *UploadPage) Update(m tea.Msg) tea.Cmd {
	if tick, ok := m.(spinner.TickMsg); ok {
		if !p.coord.Busy() {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(tick)
		return cmd
	}
	return nil
}

func (p *UploadPage) SetSize(width, height int) {}

func (p *UploadPage) ShortHelp() []key.Binding {
	return []key.Binding{p.env.Keys.Select, p.env.Keys.Skip}
}

func (p *UploadPage) label(i int) string {
	b := p.env.I18n
	props := p.env.Props
	if i == len(p.transports) {
		return withIcon(props.Icon(config.ResSkipUploadIcon), b.T("skipUpload"))
	}
	name := p.transports[i].Name()
	meta, ok := backendLabels[name]
	if !ok {
		return name
	}
	return "[" + meta.hotkey + "] " + withIcon(props.Icon(meta.icon), b.T(meta.key))
}

func (p *UploadPage) View() string {
	b := p.env.I18n

	buttons := make([]string, 0, p.options())
	for i := 0; i < p.options(); i++ {
		buttons = append(buttons, style.RenderButton(p.label(i), i == p.cursor, p.enabled(i)))
	}

	status := p.coord.StatusText()
	switch p.coord.Status().Kind {
	case upload.StatusInProgress:
		status = p.spinner.View() + " " + status
	case upload.StatusSuccess:
		status = style.SuccessText(b.TF("uploadComplete", "")) + style.LinkStyle.Render(p.coord.URL())
	case upload.StatusFailure:
		status = style.ErrorText(status)
	case upload.StatusSkipped:
		status = style.MutedText(status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(p.env.Props.Icon(config.ResUploadTitleIcon), b.T("uploadTitle"), b.T("uploadMessage")),
		"",
		lipgloss.JoinVertical(lipgloss.Left, buttons...),
		"",
		status,
	)
}

func withIcon(icon, label string) string {
	if icon == "" {
		return label
	}
	return icon + " " + label
}

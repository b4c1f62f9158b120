package model

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/domain/report"
	"github.com/Yat-Muk/crashreporter/internal/infra/config"
	"github.com/Yat-Muk/crashreporter/internal/infra/logs"
	"github.com/Yat-Muk/crashreporter/internal/infra/system"
	transport "github.com/Yat-Muk/crashreporter/internal/infra/upload"
	"github.com/Yat-Muk/crashreporter/internal/pkg/version"
	"github.com/Yat-Muk/crashreporter/internal/tui/handlers"
	"github.com/Yat-Muk/crashreporter/internal/tui/msg"
	"github.com/Yat-Muk/crashreporter/internal/tui/pages"
	"github.com/Yat-Muk/crashreporter/internal/tui/state"
	"github.com/Yat-Muk/crashreporter/internal/tui/view"
	"github.com/Yat-Muk/crashreporter/internal/tui/wizard"
)

// Config 對話框的依賴
type Config struct {
	Env        *pages.Env
	Crash      *report.CrashContext
	Transports []transport.Transport
	Desktop    system.Desktop
	// Scanner 為 nil 時不發現也不監視日誌
	Scanner       *logs.Scanner
	UploadTimeout time.Duration
	PollInterval  time.Duration
}

// Router 事件路由器
type Router struct {
	env        *pages.Env
	crash      *report.CrashContext
	ui         *state.UIState
	ctrl       *wizard.Controller
	keyHandler *handlers.KeyHandler
	cmdBuilder *handlers.CommandBuilder
	help       help.Model
	log        *zap.Logger

	errorPage  *pages.ErrorLogPage
	infoPage   *pages.UserInfoPage
	uploadPage *pages.UploadPage
	finalPage  *pages.FinalPage
	pages      []pages.Page

	scanner      *logs.Scanner
	pollInterval time.Duration
	events       <-chan logs.Event
}

// NewRouter 發現日誌並構建四個頁面
func NewRouter(cfg Config) (*Router, error) {
	env := cfg.Env
	log := env.Log

	var entries []*report.LogEntry
	if cfg.Scanner != nil {
		found, err := cfg.Scanner.Discover()
		if err != nil {
			log.Warn("掃描日誌目錄失敗", zap.String("root", cfg.Scanner.Root()), zap.Error(err))
		}
		entries = found
		log.Info("發現日誌文件", zap.Int("count", len(entries)))
	}

	r := &Router{
		env:          env,
		crash:        cfg.Crash,
		ui:           state.NewUIState(),
		cmdBuilder:   handlers.NewCommandBuilder(log),
		help:         help.New(),
		log:          log,
		scanner:      cfg.Scanner,
		pollInterval: cfg.PollInterval,
	}

	// 數據沿頁面順序流動：日誌 → 補充說明 → 上傳內容 → 鏈接
	r.errorPage = pages.NewErrorLogPage(env, cfg.Crash, entries)
	r.infoPage = pages.NewUserInfoPage(env, cfg.Crash, r.errorPage.CurrentLog)
	r.uploadPage = pages.NewUploadPage(env, cfg.Transports, r.infoPage.Report, cfg.UploadTimeout)
	r.finalPage = pages.NewFinalPage(env, cfg.Desktop, r.uploadPage.URL)
	r.pages = []pages.Page{r.errorPage, r.infoPage, r.uploadPage, r.finalPage}

	wp := make([]wizard.Page, len(r.pages))
	for i, p := range r.pages {
		wp[i] = p
	}
	ctrl, err := wizard.NewController(wp, log)
	if err != nil {
		return nil, err
	}
	r.ctrl = ctrl

	r.keyHandler = handlers.NewKeyHandler(&handlers.Config{
		Log:        log,
		UI:         r.ui,
		I18n:       env.I18n,
		Controller: ctrl,
		Pages:      r.pages,
	})
	return r, nil
}

// InitModel 用於 Model.Init 調用
func (r *Router) InitModel() tea.Cmd {
	cmds := []tea.Cmd{r.ctrl.Start()}
	if r.scanner != nil && r.scanner.Root() != "" {
		r.events = r.scanner.Watch(r.env.Context, r.pollInterval)
		cmds = append(cmds, r.cmdBuilder.WatchLogsCmd(r.events))
	}
	return tea.Batch(cmds...)
}

// Update 適配 bubbletea 的 Update 簽名
func (r *Router) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	return nil, r.routeMessage(message)
}

// routeMessage 內部路由邏輯
func (r *Router) routeMessage(message tea.Msg) tea.Cmd {
	switch m := message.(type) {
	case tea.WindowSizeMsg:
		r.ui.UpdateSize(m.Width, m.Height)
		w, h := r.ui.PageSize()
		for _, p := range r.pages {
			p.SetSize(w, h)
		}
		r.help.Width = w
		return nil

	case tea.KeyMsg:
		return r.keyHandler.Handle(m)

	case msg.UploadFinishedMsg:
		r.uploadPage.HandleResult(m)
		return nil

	case msg.LogEventMsg:
		r.errorPage.ApplyLogEvent(m.Event)
		return r.cmdBuilder.WatchLogsCmd(r.events)

	case msg.LogWatchClosedMsg:
		return nil

	case msg.ActionResultMsg:
		r.finalPage.HandleAction(m)
		return nil

	case spinner.TickMsg:
		return r.uploadPage.Update(m)
	}

	return r.pages[r.ctrl.Index()].Update(message)
}

// Controller 頁面流程
func (r *Router) Controller() *wizard.Controller {
	return r.ctrl
}

// UploadURL 上傳得到的鏈接
func (r *Router) UploadURL() string {
	return r.uploadPage.URL()
}

// View 適配 bubbletea 的 View 簽名
func (r *Router) View() string {
	b := r.env.I18n
	props := r.env.Props
	page := r.pages[r.ctrl.Index()]

	titleIcon := props.Icon(config.ResErrorTitleIcon)
	if r.crash.Mode() != report.ModeCrash {
		titleIcon = props.Icon(config.ResInfoTitleIcon)
	}

	nav := view.NavBar{
		PrevLabel:   b.T("prev"),
		PrevIcon:    props.Icon(config.ResArrowPrev),
		PrevEnabled: r.ctrl.PrevEnabled(),
		NextLabel:   b.T("next"),
		NextIcon:    props.Icon(config.ResArrowNext),
		NextEnabled: r.ctrl.NextEnabled(),
	}
	if r.ctrl.ForwardLabel() == wizard.LabelClose {
		nav.NextLabel = b.T("close")
		nav.NextIcon = props.Icon(config.ResExitIcon)
	}

	return view.RenderFrame(
		view.RenderTitle(titleIcon, version.Title(b.T(r.crash.Mode().TitleKey()))),
		view.RenderSteps(r.ctrl.Index(), r.ctrl.Len(), b.TF("step", r.ctrl.Index()+1, r.ctrl.Len())),
		page.View(),
		view.RenderStatus(r.ui.Status),
		view.RenderNavBar(nav, r.ui.Width-2),
		r.help.ShortHelpView(r.bindings(page)),
	)
}

// bindings 當前可用的按鍵說明
func (r *Router) bindings(page pages.Page) []key.Binding {
	k := r.env.Keys
	out := append([]key.Binding{}, page.ShortHelp()...)
	if r.ctrl.PrevEnabled() {
		out = append(out, k.Prev)
	}
	if r.ctrl.NextEnabled() {
		if r.ctrl.ForwardLabel() == wizard.LabelClose {
			out = append(out, k.Close)
		} else {
			out = append(out, k.Next)
		}
	}
	return append(out, k.Quit)
}

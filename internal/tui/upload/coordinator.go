// Package upload 協調上傳頁面中唯一的在途上傳
package upload

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/domain/report"
	"github.com/Yat-Muk/crashreporter/internal/i18n"
	transport "github.com/Yat-Muk/crashreporter/internal/infra/upload"
	apperrors "github.com/Yat-Muk/crashreporter/internal/pkg/errors"
	"github.com/Yat-Muk/crashreporter/internal/tui/msg"
)

// DefaultTimeout 單次上傳的默認超時
const DefaultTimeout = 2 * time.Minute

// StatusKind 上傳狀態
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusInProgress
	StatusSuccess
	StatusFailure
	StatusSkipped
)

// Status 展示給用戶的狀態
type Status struct {
	Kind    StatusKind
	Backend string
	Detail  string
}

// Config 協調器參數
type Config struct {
	// Context 對話框關閉時取消，所有在途上傳隨之取消
	Context context.Context
	Timeout time.Duration
	I18n    *i18n.Bundle
	Logger  *zap.Logger
	// OnComplete 設置宿主頁面的完成狀態
	OnComplete func(bool)
}

// Coordinator 同一時刻至多一個在途上傳
//
// 所有字段只在界面協程中讀寫。工作協程只運行傳輸並返回不可變的
// UploadFinishedMsg，由事件循環投遞回界面協程後才修改狀態。
type Coordinator struct {
	ctx        context.Context
	timeout    time.Duration
	i18n       *i18n.Bundle
	log        *zap.Logger
	onComplete func(bool)

	busy     bool
	attempt  uint64
	cancel   context.CancelFunc
	status   Status
	url      string
	complete bool
	// 本次嘗試之前成功得到的鏈接，失敗時恢復
	prevURL string

	triggersEnabled bool
	skipEnabled     bool
	skipped         bool
}

// NewCoordinator 創建協調器
func NewCoordinator(cfg Config) *Coordinator {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.I18n == nil {
		cfg.I18n = i18n.New("en", cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Coordinator{
		ctx:             cfg.Context,
		timeout:         cfg.Timeout,
		i18n:            cfg.I18n,
		log:             cfg.Logger,
		onComplete:      cfg.OnComplete,
		triggersEnabled: true,
		skipEnabled:     true,
	}
}

// Start 開始一次上傳；已有在途上傳時直接忽略並返回 nil
//
// 觸發控件在返回命令之前同步禁用，工作協程只可能在此之後啟動。
func (c *Coordinator) Start(t transport.Transport, content string) tea.Cmd {
	if c.busy {
		c.log.Debug("已有上傳進行中，忽略重複觸發", zap.String("backend", t.Name()))
		return nil
	}

	c.busy = true
	c.attempt++
	c.triggersEnabled = false
	c.prevURL = c.url
	c.url = ""
	c.status = Status{Kind: StatusInProgress, Backend: t.Name()}
	// 重試期間撤銷之前的完成狀態，結果返回後再決定
	c.setComplete(false)

	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	c.cancel = cancel
	attempt := c.attempt
	payload := transport.Payload{Content: content}

	c.log.Info("開始上傳", zap.String("backend", t.Name()), zap.Uint64("attempt", attempt), zap.Int("bytes", len(content)))

	return func() (result tea.Msg) {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("上傳協程異常", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				result = msg.UploadFinishedMsg{
					Attempt: attempt,
					Result: report.UploadResult{
						Backend: t.Name(),
						Err:     apperrors.New(apperrors.CodeUpload, fmt.Sprint(r)),
					},
				}
			}
		}()

		url, err := t.Upload(ctx, payload)
		return msg.UploadFinishedMsg{
			Attempt: attempt,
			Result:  report.UploadResult{Backend: t.Name(), URL: url, Err: err},
		}
	}
}

// Handle 在界面協程中應用上傳結果，過期的結果被丟棄
func (c *Coordinator) Handle(m msg.UploadFinishedMsg) bool {
	if !c.busy || m.Attempt != c.attempt {
		c.log.Debug("丟棄過期的上傳結果", zap.Uint64("attempt", m.Attempt))
		return false
	}

	c.busy = false
	c.triggersEnabled = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	r := m.Result
	if r.Succeeded() {
		c.url = r.URL
		c.prevURL = ""
		c.status = Status{Kind: StatusSuccess, Backend: r.Backend, Detail: r.URL}
		c.setComplete(true)
		c.log.Info("上傳完成", zap.String("backend", r.Backend), zap.String("url", r.URL))
		return true
	}

	err := r.Err
	if err == nil {
		err = apperrors.Wrap(apperrors.ErrUploadEmpty, apperrors.CodeUpload, r.Backend)
	}
	c.status = Status{Kind: StatusFailure, Backend: r.Backend, Detail: transport.Reason(err)}
	c.log.Warn("上傳失敗",
		zap.String("backend", r.Backend),
		zap.Bool("transport_error", transport.IsTransportError(err)),
		zap.Bool("kept_previous_link", c.prevURL != ""),
		zap.Error(err),
	)

	// 失敗不覆蓋之前的結果：恢復已有的鏈接或跳過帶來的完成狀態
	c.url, c.prevURL = c.prevURL, ""
	if c.url != "" || c.skipped {
		c.setComplete(true)
	}
	return true
}

// Skip 不上傳直接完成；上傳進行中時忽略
func (c *Coordinator) Skip() {
	if c.busy || !c.skipEnabled {
		return
	}
	c.skipped = true
	c.skipEnabled = false
	c.status = Status{Kind: StatusSkipped}
	c.setComplete(true)
	c.log.Info("用戶跳過上傳")
}

// Cancel 取消在途上傳，結果仍經由 Handle 以失敗形式返回
func (c *Coordinator) Cancel() {
	if c.busy && c.cancel != nil {
		c.log.Info("取消上傳", zap.Uint64("attempt", c.attempt))
		c.cancel()
	}
}

func (c *Coordinator) setComplete(v bool) {
	if c.complete == v {
		return
	}
	c.complete = v
	if c.onComplete != nil {
		c.onComplete(v)
	}
}

func (c *Coordinator) Busy() bool            { return c.busy }
func (c *Coordinator) Complete() bool        { return c.complete }
func (c *Coordinator) URL() string           { return c.url }
func (c *Coordinator) Status() Status        { return c.status }
func (c *Coordinator) TriggersEnabled() bool { return c.triggersEnabled }
func (c *Coordinator) SkipEnabled() bool     { return c.skipEnabled && !c.busy }
func (c *Coordinator) Skipped() bool         { return c.skipped }

// StatusText 本地化的狀態文本
func (c *Coordinator) StatusText() string {
	switch c.status.Kind {
	case StatusInProgress:
		return c.i18n.TF("waitForUpload", c.status.Backend)
	case StatusSuccess:
		return c.i18n.TF("uploadComplete", c.status.Detail)
	case StatusFailure:
		return c.i18n.TF("uploadFailed", c.status.Detail)
	case StatusSkipped:
		return c.i18n.T("uploadSkipped")
	default:
		return c.i18n.T("uploadIdle")
	}
}

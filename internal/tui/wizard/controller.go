package wizard

import (
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	apperrors "github.com/Yat-Muk/crashreporter/internal/pkg/errors"
)

// ForwardLabel 前進按鈕的形態
type ForwardLabel int

const (
	LabelNext ForwardLabel = iota
	LabelClose
)

// Controller 固定頁面序列上的線性導航
//
// 前進按鈕的可用狀態跟隨當前頁面的完成通知；
// 回退總是讓前進立即可用，頁面在顯示時可以再次發出未完成。
type Controller struct {
	pages       []Page
	index       int
	nextEnabled bool
	closed      bool
	log         *zap.Logger
}

// NewController 註冊每個頁面的完成回調
func NewController(pages []Page, log *zap.Logger) (*Controller, error) {
	if len(pages) == 0 {
		return nil, apperrors.New(apperrors.CodeDialog, "嚮導至少需要一個頁面")
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Controller{pages: pages, log: log}
	for i, p := range pages {
		i := i
		p.SetCompletionListener(func(complete bool) {
			// 只有當前頁面的通知影響按鈕
			if c.index == i {
				c.nextEnabled = complete
			}
		})
	}
	return c, nil
}

// Start 顯示第一個頁面
func (c *Controller) Start() tea.Cmd {
	c.index = 0
	c.nextEnabled = c.isComplete(0)
	return c.show(0)
}

// Advance 當前頁完成且存在下一頁時前進，否則不做任何事
func (c *Controller) Advance() tea.Cmd {
	if c.closed || c.IsLast() || !c.isComplete(c.index) {
		return nil
	}

	c.hide(c.index)
	c.index++
	c.nextEnabled = c.isComplete(c.index)
	return c.show(c.index)
}

// Retreat 第一頁時不做任何事
func (c *Controller) Retreat() tea.Cmd {
	if c.closed || c.index == 0 {
		return nil
	}

	c.hide(c.index)
	c.index--
	// 先啟用，頁面顯示時可以再次關閉
	c.nextEnabled = true
	return c.show(c.index)
}

// RequestClose 只在最後一頁生效，返回退出命令
func (c *Controller) RequestClose() tea.Cmd {
	if c.closed || !c.IsLast() {
		return nil
	}
	c.hide(c.index)
	c.closed = true
	c.log.Debug("嚮導關閉")
	return tea.Quit
}

// Forward 前進按鈕的動作：最後一頁為關閉，其他頁為前進
func (c *Controller) Forward() tea.Cmd {
	if !c.nextEnabled {
		return nil
	}
	if c.IsLast() {
		return c.RequestClose()
	}
	return c.Advance()
}

func (c *Controller) Index() int    { return c.index }
func (c *Controller) Len() int      { return len(c.pages) }
func (c *Controller) Current() Page { return c.pages[c.index] }
func (c *Controller) IsLast() bool  { return c.index == len(c.pages)-1 }
func (c *Controller) Closed() bool  { return c.closed }

// NextEnabled 前進按鈕是否可用
func (c *Controller) NextEnabled() bool {
	return c.nextEnabled && !c.closed
}

// PrevEnabled 回退按鈕是否可用
func (c *Controller) PrevEnabled() bool {
	return c.index > 0 && !c.closed
}

// ForwardLabel 最後一頁時前進按鈕變為關閉
func (c *Controller) ForwardLabel() ForwardLabel {
	if c.IsLast() {
		return LabelClose
	}
	return LabelNext
}

// show/hide/isComplete 捕獲頁面鉤子的 panic，記錄後按未完成處理

func (c *Controller) show(i int) (cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			c.pageFailed(i, "OnShown", r)
			cmd = nil
		}
	}()
	return c.pages[i].OnShown()
}

func (c *Controller) hide(i int) {
	defer func() {
		if r := recover(); r != nil {
			c.pageFailed(i, "OnHidden", r)
		}
	}()
	c.pages[i].OnHidden()
}

func (c *Controller) isComplete(i int) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.pageFailed(i, "IsComplete", r)
			ok = false
		}
	}()
	return c.pages[i].IsComplete()
}

func (c *Controller) pageFailed(i int, hook string, r any) {
	c.log.Error("頁面鉤子異常",
		zap.Int("page", i),
		zap.String("hook", hook),
		zap.Any("panic", r),
		zap.ByteString("stack", debug.Stack()),
	)
	if i == c.index {
		c.nextEnabled = false
	}
}

// Package wizard 線性頁面流程：導航、完成狀態門控與頁面生命週期
package wizard

import tea "github.com/charmbracelet/bubbletea"

// CompletionFunc 頁面完成狀態變化時同步調用
type CompletionFunc func(complete bool)

// Page 嚮導中的一步
// 所有方法只在界面協程中調用
type Page interface {
	// OnShown 每次成為可見頁面時調用一次，可重新計算並發出完成狀態
	OnShown() tea.Cmd
	// OnHidden 離開頁面時調用
	OnHidden()
	IsComplete() bool
	SetCompletionListener(fn CompletionFunc)
}

// Completion 可嵌入頁面的完成狀態，只在值翻轉時通知
type Completion struct {
	complete bool
	listener CompletionFunc
}

func (c *Completion) IsComplete() bool {
	return c.complete
}

func (c *Completion) SetCompletionListener(fn CompletionFunc) {
	c.listener = fn
}

// SetComplete 更新狀態，值變化時通知監聽者
func (c *Completion) SetComplete(v bool) {
	if c.complete == v {
		return
	}
	c.complete = v
	if c.listener != nil {
		c.listener(v)
	}
}

// Emit 無論是否變化都通知一次，用於頁面重新顯示時
func (c *Completion) Emit() {
	if c.listener != nil {
		c.listener(c.complete)
	}
}

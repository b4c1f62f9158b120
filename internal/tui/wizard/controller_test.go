package wizard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePage struct {
	Completion
	name           string
	completeOnShow bool
	shown          int
	hidden         int
	panicOnShow    bool
	events         *[]string
}

func (p *fakePage) OnShown() tea.Cmd {
	p.shown++
	if p.events != nil {
		*p.events = append(*p.events, "show:"+p.name)
	}
	if p.panicOnShow {
		panic("boom")
	}
	if p.completeOnShow {
		p.SetComplete(true)
	}
	p.Emit()
	return nil
}

func (p *fakePage) OnHidden() {
	p.hidden++
	if p.events != nil {
		*p.events = append(*p.events, "hide:"+p.name)
	}
}

func newPages(n int, completeOnShow bool) ([]Page, []*fakePage) {
	var events []string
	pages := make([]Page, n)
	fakes := make([]*fakePage, n)
	for i := range pages {
		fakes[i] = &fakePage{name: string(rune('a' + i)), completeOnShow: completeOnShow, events: &events}
		pages[i] = fakes[i]
	}
	return pages, fakes
}

func newController(t *testing.T, pages []Page) *Controller {
	t.Helper()
	c, err := NewController(pages, zap.NewNop())
	require.NoError(t, err)
	c.Start()
	return c
}

// TestNewController 測試構建
func TestNewController(t *testing.T) {
	_, err := NewController(nil, nil)
	assert.Error(t, err)
}

// TestAdvance 測試前進
func TestAdvance(t *testing.T) {
	for n := 1; n <= 5; n++ {
		pages, _ := newPages(n, true)
		c := newController(t, pages)

		for i := 0; i < n-1; i++ {
			c.Advance()
		}
		assert.Equal(t, n-1, c.Index(), "N-1 次前進到達最後一頁")
		assert.True(t, c.IsLast())

		c.Advance()
		assert.Equal(t, n-1, c.Index(), "最後一頁前進無效")
	}

	t.Run("未完成時不前進", func(t *testing.T) {
		pages, fakes := newPages(3, false)
		c := newController(t, pages)

		assert.Nil(t, c.Advance())
		assert.Equal(t, 0, c.Index())
		assert.False(t, c.NextEnabled())

		fakes[0].SetComplete(true)
		c.Advance()
		assert.Equal(t, 1, c.Index())
	})

	t.Run("先隱藏舊頁再顯示新頁", func(t *testing.T) {
		pages, fakes := newPages(2, true)
		c := newController(t, pages)
		*fakes[0].events = nil

		c.Advance()
		assert.Equal(t, []string{"hide:a", "show:b"}, *fakes[0].events)
		assert.Equal(t, 1, fakes[0].hidden)
		assert.Equal(t, 1, fakes[1].shown)
	})
}

// TestRetreat 測試回退
func TestRetreat(t *testing.T) {
	t.Run("第一頁回退無效", func(t *testing.T) {
		pages, fakes := newPages(3, true)
		c := newController(t, pages)

		assert.Nil(t, c.Retreat())
		assert.Equal(t, 0, c.Index())
		assert.Equal(t, 0, fakes[0].hidden)
		assert.False(t, c.PrevEnabled())
	})

	t.Run("回退後前進立即可用", func(t *testing.T) {
		pages, fakes := newPages(3, true)
		c := newController(t, pages)
		c.Advance()
		c.Advance()

		// 中間頁不在顯示時重新發出完成
		fakes[1].completeOnShow = false
		fakes[1].complete = true
		c.Retreat()

		assert.Equal(t, 1, c.Index())
		assert.True(t, c.NextEnabled())
		assert.True(t, c.PrevEnabled())
	})

	t.Run("頁面顯示時可以再次發出未完成", func(t *testing.T) {
		pages, fakes := newPages(3, true)
		c := newController(t, pages)
		c.Advance()

		fakes[0].completeOnShow = false
		fakes[0].complete = false
		c.Retreat()

		assert.Equal(t, 0, c.Index())
		assert.False(t, c.NextEnabled())
	})
}

// TestCompletionGating 完成狀態即時影響按鈕
func TestCompletionGating(t *testing.T) {
	pages, fakes := newPages(3, false)
	c := newController(t, pages)

	assert.False(t, c.NextEnabled())
	fakes[0].SetComplete(true)
	assert.True(t, c.NextEnabled())
	fakes[0].SetComplete(false)
	assert.False(t, c.NextEnabled())

	t.Run("非當前頁的通知被忽略", func(t *testing.T) {
		fakes[2].SetComplete(true)
		assert.False(t, c.NextEnabled())
	})
}

// TestForwardAndClose 測試最後一頁的關閉
func TestForwardAndClose(t *testing.T) {
	pages, _ := newPages(2, true)
	c := newController(t, pages)

	assert.Equal(t, LabelNext, c.ForwardLabel())
	assert.Nil(t, c.RequestClose(), "非最後一頁不關閉")

	c.Forward()
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, LabelClose, c.ForwardLabel())

	cmd := c.Forward()
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, c.Closed())
	assert.False(t, c.NextEnabled())
	assert.Nil(t, c.Retreat())
}

func TestForward_Disabled(t *testing.T) {
	pages, _ := newPages(1, false)
	c := newController(t, pages)

	assert.Nil(t, c.Forward())
	assert.False(t, c.Closed())
}

// TestPageHookPanic 頁面鉤子異常被記錄並按未完成處理
func TestPageHookPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	pages, fakes := newPages(2, true)
	fakes[1].panicOnShow = true

	c, err := NewController(pages, zap.New(core))
	require.NoError(t, err)
	c.Start()

	assert.NotPanics(t, func() { c.Advance() })
	assert.Equal(t, 1, c.Index())
	assert.False(t, c.NextEnabled())
	assert.Equal(t, 1, logs.FilterMessage("頁面鉤子異常").Len())
}

func TestCompletion_Emit(t *testing.T) {
	var calls []bool
	var comp Completion
	comp.SetCompletionListener(func(v bool) { calls = append(calls, v) })

	comp.SetComplete(false)
	comp.SetComplete(true)
	comp.SetComplete(true)
	comp.Emit()

	assert.Equal(t, []bool{true, true}, calls)
}

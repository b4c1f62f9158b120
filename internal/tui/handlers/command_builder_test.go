package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yat-Muk/crashreporter/internal/infra/logs"
	"github.com/Yat-Muk/crashreporter/internal/tui/msg"
)

func TestWatchLogsCmd(t *testing.T) {
	b := NewCommandBuilder(nil)

	t.Run("沒有監視通道", func(t *testing.T) {
		assert.Nil(t, b.WatchLogsCmd(nil))
	})

	t.Run("轉發事件並在關閉後停止", func(t *testing.T) {
		ch := make(chan logs.Event, 1)
		ch <- logs.Event{Kind: logs.EventCreated, Name: "a.log"}

		got := b.WatchLogsCmd(ch)()
		ev, ok := got.(msg.LogEventMsg)
		assert.True(t, ok)
		assert.Equal(t, "a.log", ev.Event.Name)

		close(ch)
		_, closed := b.WatchLogsCmd(ch)().(msg.LogWatchClosedMsg)
		assert.True(t, closed)
	})
}

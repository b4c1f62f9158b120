package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/infra/logs"
	"github.com/Yat-Muk/crashreporter/internal/tui/msg"
)

// CommandBuilder 構建在後台協程中運行的命令
type CommandBuilder struct {
	log *zap.Logger
}

func NewCommandBuilder(log *zap.Logger) *CommandBuilder {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommandBuilder{log: log}
}

// WatchLogsCmd 等待下一個日誌事件；收到後需再次調用以繼續監聽
func (b *CommandBuilder) WatchLogsCmd(events <-chan logs.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			b.log.Debug("日誌監視已停止")
			return msg.LogWatchClosedMsg{}
		}
		return msg.LogEventMsg{Event: ev}
	}
}

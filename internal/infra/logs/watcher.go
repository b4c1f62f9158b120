package logs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EventKind 日誌變化類型
type EventKind int

const (
	EventCreated EventKind = iota
	EventAppended
	EventReplaced
)

func (k EventKind) String() string {
	switch k {
	case EventAppended:
		return "appended"
	case EventReplaced:
		return "replaced"
	default:
		return "created"
	}
}

// Event 一次日誌變化
// Created 與 Replaced 的 Text 為完整內容，Appended 只含新增部分
type Event struct {
	Kind EventKind
	Name string
	Path string
	Text string
}

// DefaultInterval 默認輪詢間隔
const DefaultInterval = time.Second

// Watch 在後台輪詢並推送事件，ctx 取消後關閉通道
// 應在 Discover 之後調用，否則已有文件會作為新建事件推送
func (s *Scanner) Watch(ctx context.Context, interval time.Duration) <-chan Event {
	if interval <= 0 {
		interval = DefaultInterval
	}
	out := make(chan Event, 16)

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			events, err := s.Poll()
			if err != nil {
				s.logger.Debug("輪詢日誌目錄失敗", zap.String("root", s.root), zap.Error(err))
				continue
			}
			for _, ev := range events {
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

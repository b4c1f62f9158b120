package model

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/domain/report"
	"github.com/Yat-Muk/crashreporter/internal/i18n"
	"github.com/Yat-Muk/crashreporter/internal/infra/config"
	"github.com/Yat-Muk/crashreporter/internal/infra/logs"
	transport "github.com/Yat-Muk/crashreporter/internal/infra/upload"
	"github.com/Yat-Muk/crashreporter/internal/tui/msg"
	"github.com/Yat-Muk/crashreporter/internal/tui/pages"
	"github.com/Yat-Muk/crashreporter/internal/tui/state"
)

type recordingTransport struct {
	url      string
	payloads []string
}

func (t *recordingTransport) Name() string { return transport.NameHosted }

func (t *recordingTransport) Upload(_ context.Context, p transport.Payload) (string, error) {
	t.payloads = append(t.payloads, p.Content)
	return t.url, nil
}

type nopDesktop struct{}

func (nopDesktop) OpenURL(context.Context, string) error { return nil }
func (nopDesktop) CopyText(string) error                 { return nil }

// setupTestRouter 初始化測試用的 Router
func setupTestRouter(t *testing.T, scanner *logs.Scanner, tr transport.Transport) *Router {
	t.Helper()
	logger := zap.NewNop()
	env := pages.NewEnv(context.Background(), i18n.New("en", logger), config.Defaults(logger), logger)

	var transports []transport.Transport
	if tr != nil {
		transports = append(transports, tr)
	}
	folder := ""
	if scanner != nil {
		folder = scanner.Root()
	}

	r, err := NewRouter(Config{
		Env:        env,
		Crash:      report.FromError(errors.New("disk full"), folder, report.ModeCrash),
		Transports: transports,
		Desktop:    nopDesktop{},
		Scanner:    scanner,
	})
	require.NoError(t, err)
	return r
}

// send 模擬事件循環：處理消息並同步執行返回的命令
func send(r *Router, m tea.Msg) tea.Cmd {
	_, cmd := r.Update(m)
	return cmd
}

func runAll(r *Router, cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	out := cmd()
	if batch, ok := out.(tea.BatchMsg); ok {
		var all []tea.Msg
		for _, c := range batch {
			all = append(all, runAll(r, c)...)
		}
		return all
	}
	if _, quit := out.(tea.QuitMsg); quit {
		return []tea.Msg{out}
	}
	if _, ok := out.(msg.UploadFinishedMsg); ok {
		send(r, out)
	}
	return []tea.Msg{out}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// TestRouter_FullFlow 從錯誤頁一路走到關閉
func TestRouter_FullFlow(t *testing.T) {
	tr := &recordingTransport{url: "https://logs.example/7"}
	r := setupTestRouter(t, nil, tr)
	ctrl := r.Controller()

	r.InitModel()
	assert.Equal(t, 0, ctrl.Index())
	assert.True(t, ctrl.NextEnabled(), "沒有日誌時錯誤頁立即完成")
	assert.Contains(t, r.View(), "No log files found")

	send(r, keyMsg("right"))
	require.Equal(t, 1, ctrl.Index())
	assert.False(t, ctrl.NextEnabled())

	t.Run("未填寫說明時不能前進", func(t *testing.T) {
		send(r, keyMsg("ctrl+n"))
		assert.Equal(t, 1, ctrl.Index())
		assert.Equal(t, state.StatusWarn, r.ui.Status.Type)
	})

	send(r, keyMsg("it broke"))
	assert.True(t, ctrl.NextEnabled())

	send(r, keyMsg("ctrl+n"))
	require.Equal(t, 2, ctrl.Index())
	assert.False(t, ctrl.NextEnabled())

	runAll(r, send(r, keyMsg("3")))

	require.Len(t, tr.payloads, 1)
	assert.Contains(t, tr.payloads[0], "USER-GIVEN INFO:\nit broke")
	assert.Contains(t, tr.payloads[0], "errorString: disk full", "沒有日誌時上傳錯誤堆棧")
	assert.True(t, ctrl.NextEnabled())
	assert.Equal(t, "https://logs.example/7", r.UploadURL())

	send(r, keyMsg("ctrl+n"))
	require.Equal(t, 3, ctrl.Index())
	view := r.View()
	assert.Contains(t, view, "https://logs.example/7")
	assert.Contains(t, view, "Close")

	t.Run("最後一頁前進即關閉", func(t *testing.T) {
		msgs := runAll(r, send(r, keyMsg("ctrl+n")))
		require.Len(t, msgs, 1)
		assert.IsType(t, tea.QuitMsg{}, msgs[0])
		assert.True(t, ctrl.Closed())
	})
}

func TestRouter_RetreatEnablesNext(t *testing.T) {
	r := setupTestRouter(t, nil, nil)
	ctrl := r.Controller()
	r.InitModel()

	send(r, keyMsg("right"))
	send(r, keyMsg("x"))
	send(r, keyMsg("ctrl+n"))
	require.Equal(t, 2, ctrl.Index())
	assert.False(t, ctrl.NextEnabled())

	send(r, keyMsg("ctrl+b"))
	assert.Equal(t, 1, ctrl.Index())
	assert.True(t, ctrl.NextEnabled())
}

func TestRouter_DiscoversLogs(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "a.log")
	newer := filepath.Join(dir, "b.log")
	require.NoError(t, os.WriteFile(older, []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("new"), 0o644))
	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	r := setupTestRouter(t, logs.NewScanner(dir, zap.NewNop()), nil)

	entries := r.errorPage.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b.log", entries[0].Name)
	assert.Equal(t, "a.log", entries[1].Name)
	assert.Equal(t, "new", r.errorPage.CurrentLog())

	t.Run("監視事件更新標籤", func(t *testing.T) {
		cmd := send(r, msg.LogEventMsg{Event: logs.Event{Kind: logs.EventAppended, Name: "b.log", Path: newer, Text: "+more"}})
		assert.Nil(t, cmd, "未啟動監視時不再等待")
		assert.Equal(t, "new+more", r.errorPage.CurrentLog())
	})
}

func TestRouter_WindowSize(t *testing.T) {
	r := setupTestRouter(t, nil, nil)
	r.InitModel()

	assert.Nil(t, send(r, tea.WindowSizeMsg{Width: 100, Height: 30}))
	assert.Equal(t, 100, r.ui.Width)

	view := r.View()
	assert.Contains(t, view, "Step 1 of 4")
	assert.Contains(t, view, "Terasology Crash Reporter")
}

func TestModel_Delegates(t *testing.T) {
	m := NewModel(setupTestRouter(t, nil, nil))
	m.Init()

	next, _ := m.Update(keyMsg("right"))
	assert.Same(t, m, next)
	assert.Equal(t, 1, m.Router().Controller().Index())
	assert.NotEmpty(t, m.View())
}

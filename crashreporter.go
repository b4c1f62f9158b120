// Package crashreporter 在宿主程序出錯時展示報告對話框
//
// 對話框引導用戶查看並編輯日誌、補充說明、上傳報告，
// 最後指引到社區支持渠道。報告過程中的任何失敗只記錄日誌，
// 不會傳播回宿主程序。
package crashreporter

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/domain/report"
	"github.com/Yat-Muk/crashreporter/internal/i18n"
	"github.com/Yat-Muk/crashreporter/internal/infra/config"
	"github.com/Yat-Muk/crashreporter/internal/infra/logs"
	"github.com/Yat-Muk/crashreporter/internal/infra/system"
	transport "github.com/Yat-Muk/crashreporter/internal/infra/upload"
	"github.com/Yat-Muk/crashreporter/internal/pkg/appctx"
	apperrors "github.com/Yat-Muk/crashreporter/internal/pkg/errors"
	"github.com/Yat-Muk/crashreporter/internal/pkg/logger"
	"github.com/Yat-Muk/crashreporter/internal/pkg/version"
	"github.com/Yat-Muk/crashreporter/internal/tui/model"
	"github.com/Yat-Muk/crashreporter/internal/tui/pages"
	"github.com/Yat-Muk/crashreporter/internal/tui/upload"
)

// Mode 決定對話框的標題與圖示，不影響頁面順序
type Mode = report.Mode

const (
	ModeCrash    = report.ModeCrash
	ModeIssue    = report.ModeIssue
	ModeFeedback = report.ModeFeedback
)

// 同一時刻只顯示一個對話框
var dialogMu sync.Mutex

// Report 顯示報告對話框並阻塞到用戶關閉
// logFolder 為空表示沒有日誌目錄
func Report(err error, logFolder string, mode Mode, opts ...Option) {
	_ = ReportContext(context.Background(), err, logFolder, mode, opts...)
}

// ReportPanic 報告 recover() 得到的值
func ReportPanic(v any, stack []byte, logFolder string, mode Mode, opts ...Option) {
	_ = run(context.Background(), func() *report.CrashContext {
		return report.FromPanic(v, stack, logFolder, mode)
	}, opts)
}

// Recover 在 defer 中使用，捕獲 panic 並顯示報告對話框
//
//	defer crashreporter.Recover("logs", crashreporter.ModeCrash)
func Recover(logFolder string, mode Mode, opts ...Option) {
	if r := recover(); r != nil {
		ReportPanic(r, debug.Stack(), logFolder, mode, opts...)
	}
}

// ReportContext 與 Report 相同；ctx 取消時關閉對話框
// 返回的錯誤已記錄，僅供需要區分結果的調用方使用
func ReportContext(ctx context.Context, err error, logFolder string, mode Mode, opts ...Option) error {
	return run(ctx, func() *report.CrashContext {
		return report.FromError(err, logFolder, mode)
	}, opts)
}

type handoff struct {
	program *tea.Program
	err     error
}

func run(ctx context.Context, newCrash func() *report.CrashContext, opts []Option) (rerr error) {
	o := newOptions(opts)
	log, closeLog := o.resolveLogger()
	defer closeLog()

	defer func() {
		if r := recover(); r != nil {
			log.Error("報告對話框異常", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			rerr = apperrors.New(apperrors.CodeDialog, fmt.Sprint(r))
		}
	}()

	if !dialogMu.TryLock() {
		log.Warn("已有報告對話框打開，忽略本次報告")
		return apperrors.Wrap(apperrors.ErrDialogBusy, apperrors.CodeDialog, "報告對話框已打開")
	}
	defer dialogMu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	crash := newCrash()
	log.Info("打開報告對話框",
		zap.String("report_id", crash.ID().String()),
		zap.Stringer("mode", crash.Mode()),
		zap.String("error", crash.Headline()),
		zap.String("log_folder", crash.LogFolder()),
		zap.String("version", version.Short()),
	)

	ready := make(chan handoff, 1)
	done := make(chan error, 1)

	// 界面協程：構建對話框後確認，再運行事件循環
	go func() {
		var acked bool
		defer func() {
			if r := recover(); r != nil {
				err := apperrors.New(apperrors.CodeDialog, fmt.Sprint(r))
				log.Error("界面協程異常", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				if !acked {
					ready <- handoff{err: err}
				}
				done <- err
			}
		}()

		m, err := o.buildDialog(ctx, crash, log)
		if err != nil {
			ready <- handoff{err: err}
			done <- err
			return
		}
		p := tea.NewProgram(m, append(o.programOptions(), tea.WithContext(ctx))...)
		ready <- handoff{program: p}
		acked = true

		_, err = p.Run()
		done <- err
	}()

	select {
	case h := <-ready:
		if h.err != nil {
			log.Error("構建報告對話框失敗", zap.Error(h.err))
			return apperrors.Wrap(h.err, apperrors.CodeDialog, "構建報告對話框失敗")
		}
	case <-ctx.Done():
		log.Warn("等待對話框構建時被取消", zap.Error(ctx.Err()))
		<-done
		return apperrors.Wrap(ctx.Err(), apperrors.CodeDialog, "等待對話框構建時被取消")
	}

	err := <-done
	switch {
	case err == nil:
		log.Info("報告對話框已關閉", zap.String("report_id", crash.ID().String()))
		return nil
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		log.Info("報告對話框隨上下文關閉", zap.Error(ctx.Err()))
		return nil
	default:
		log.Error("報告對話框運行失敗", zap.Error(err))
		return apperrors.Wrap(err, apperrors.CodeDialog, "報告對話框運行失敗")
	}
}

// resolveLogger 未提供時寫入默認日誌文件，失敗則退回錯誤流
func (o *options) resolveLogger() (*zap.Logger, func()) {
	if o.logger != nil {
		return o.logger, func() {}
	}

	paths, err := appctx.NewPaths("")
	if err == nil {
		var l *zap.Logger
		if l, err = logger.New(logger.DefaultConfig(paths.LogFile)); err == nil {
			return l, func() { _ = l.Sync() }
		}
	}

	cfg := logger.DefaultConfig("")
	cfg.Console = true
	l, lerr := logger.New(cfg)
	if lerr != nil {
		return zap.NewNop(), func() {}
	}
	l.Warn("無法創建日誌文件，改為輸出到錯誤流", zap.Error(err))
	return l, func() { _ = l.Sync() }
}

// buildDialog 在界面協程中組裝所有依賴
func (o *options) buildDialog(ctx context.Context, crash *report.CrashContext, log *zap.Logger) (*model.Model, error) {
	bundle := i18n.New(o.locale, log)

	props := o.props
	if props == nil {
		path := o.propsFile
		if path == "" {
			if paths, err := appctx.NewPaths(""); err == nil {
				path = paths.OverrideFile
			}
		}
		props = config.Load(path, log)
	}

	transports := o.transports
	if transports == nil {
		transports = transport.FromProperties(props, log)
	}

	desktop := o.desktop
	if desktop == nil {
		desktop = system.NewDesktop(system.NewExecutor(log), log)
	}

	var scanner *logs.Scanner
	if crash.HasLogFolder() {
		scanner = logs.NewScanner(crash.LogFolder(), log).WithReadFailed(func(path string, err error) string {
			return bundle.TF("couldNotOpenLog", path) + "\n" + err.Error()
		})
	}

	router, err := model.NewRouter(model.Config{
		Env:           pages.NewEnv(ctx, bundle, props, log),
		Crash:         crash,
		Transports:    transports,
		Desktop:       desktop,
		Scanner:       scanner,
		UploadTimeout: props.Duration(config.UploadTimeout, upload.DefaultTimeout),
		PollInterval:  props.Duration(config.LogPollInterval, logs.DefaultInterval),
	})
	if err != nil {
		return nil, err
	}
	return model.NewModel(router), nil
}

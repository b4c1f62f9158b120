package system

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/pkg/errors"
	"github.com/Yat-Muk/crashreporter/internal/pkg/inputvalidator"
	"github.com/Yat-Muk/crashreporter/internal/pkg/logger"
)

// Desktop 打開鏈接與寫剪貼簿
type Desktop interface {
	OpenURL(ctx context.Context, link string) error
	CopyText(text string) error
}

// NativeDesktop 通過系統工具實現 Desktop
type NativeDesktop struct {
	exec Executor
	goos string
	copy func(string) error
	// 沒有可用的剪貼簿工具 (例如缺少 xclip/xsel)
	noClipboard bool
	timeout     time.Duration
	logger      *zap.Logger
}

// NewDesktop 創建系統桌面操作
func NewDesktop(exec Executor, log *zap.Logger) *NativeDesktop {
	return &NativeDesktop{
		exec:        exec,
		goos:        runtime.GOOS,
		copy:        clipboard.WriteAll,
		noClipboard: clipboard.Unsupported,
		timeout:     10 * time.Second,
		logger:      logger.OrNop(log),
	}
}

// openCommand 各平台打開鏈接的命令
func openCommand(goos, link string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{link}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}
	default:
		if os.Getenv("WSL_DISTRO_NAME") != "" {
			return "wslview", []string{link}
		}
		return "xdg-open", []string{link}
	}
}

// OpenURL 只接受 http(s) 鏈接
func (d *NativeDesktop) OpenURL(ctx context.Context, link string) error {
	if err := inputvalidator.ValidateURL(link, "link"); err != nil {
		return errors.Wrap(err, errors.CodeInvalidLink, fmt.Sprintf("無效鏈接 %q", link))
	}
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidLink, fmt.Sprintf("無效鏈接 %q", link))
	}

	name, args := openCommand(d.goos, u.String())
	_, err = d.exec.ExecuteWithTimeout(ctx, d.timeout, name, args...)
	return err
}

// CopyText 寫入系統剪貼簿
func (d *NativeDesktop) CopyText(text string) error {
	if d.noClipboard {
		return errors.Wrap(errors.ErrClipboardUnsupported, errors.CodeClipboard, "剪貼簿不可用")
	}
	if err := d.copy(text); err != nil {
		d.logger.Warn("寫入剪貼簿失敗", zap.Error(err))
		return errors.Wrap(err, errors.CodeClipboard, "寫入剪貼簿失敗")
	}
	return nil
}

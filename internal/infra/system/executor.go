package system

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/pkg/errors"
)

// Executor 命令執行器接口
type Executor interface {
	// Execute 執行命令
	Execute(ctx context.Context, name string, args ...string) (string, error)

	// ExecuteWithTimeout 帶超時的命令執行
	ExecuteWithTimeout(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error)

	// IsAllowed 檢查命令是否在白名單中
	IsAllowed(name string) bool
}

// SafeExecutor 安全的命令執行器
type SafeExecutor struct {
	allowlist map[string]bool
	logger    *zap.Logger
}

// NewExecutor 創建命令執行器，只允許打開鏈接所需的桌面工具
func NewExecutor(logger *zap.Logger) Executor {
	return &SafeExecutor{
		allowlist: map[string]bool{
			"xdg-open": true, // Linux 桌面
			"wslview":  true, // WSL
			"open":     true, // macOS
			"rundll32": true, // Windows
		},
		logger: logger,
	}
}

// Execute 執行命令
func (e *SafeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	if !e.IsAllowed(name) {
		return "", errors.New(errors.CodeCommandDenied, fmt.Sprintf("命令 %q 不在白名單中", name))
	}

	cmd := exec.CommandContext(ctx, name, args...)

	e.logger.Debug("執行命令",
		zap.String("cmd", name),
		zap.Strings("args", args),
	)

	output, err := cmd.CombinedOutput()
	outputStr := strings.TrimSpace(string(output))

	if err != nil {
		e.logger.Warn("命令執行失敗",
			zap.String("cmd", name),
			zap.String("output", outputStr),
			zap.Error(err),
		)
		return outputStr, errors.Wrap(err, errors.CodeCommandFailed, "命令執行失敗")
	}

	return outputStr, nil
}

// ExecuteWithTimeout 帶超時的命令執行
func (e *SafeExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return e.Execute(ctx, name, args...)
}

// IsAllowed 檢查命令是否在白名單中
func (e *SafeExecutor) IsAllowed(name string) bool {
	return e.allowlist[name]
}

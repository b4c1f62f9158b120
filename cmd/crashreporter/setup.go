package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter"
	"github.com/Yat-Muk/crashreporter/internal/domain/report"
	"github.com/Yat-Muk/crashreporter/internal/pkg/appctx"
)

// 演示場景
const (
	scenarioSingle  = "single"
	scenarioWrapped = "wrapped"
	scenarioLong    = "long"
	scenarioPanic   = "panic"
)

type AppDependencies struct {
	Log       *zap.Logger
	Paths     *appctx.Paths
	Mode      report.Mode
	LogFolder string
	Scenario  string
	Options   []crashreporter.Option
}

func initializeDependencies(c *cli.Context, log *zap.Logger, paths *appctx.Paths) (*AppDependencies, error) {
	mode, err := report.ParseMode(c.String("mode"))
	if err != nil {
		return nil, err
	}

	scenario := strings.ToLower(c.String("scenario"))
	if err := checkScenario(scenario); err != nil {
		return nil, err
	}

	props := c.String("properties")
	if props == "" {
		props = paths.OverrideFile
	}

	opts := []crashreporter.Option{
		crashreporter.WithLogger(log),
		crashreporter.WithPropertiesFile(props),
	}
	if locale := c.String("locale"); locale != "" {
		opts = append(opts, crashreporter.WithLocale(locale))
	}

	return &AppDependencies{
		Log:       log,
		Paths:     paths,
		Mode:      mode,
		LogFolder: c.String("logs"),
		Scenario:  scenario,
		Options:   opts,
	}, nil
}

// runScenario 模擬宿主程序出錯並打開對話框
func (d *AppDependencies) runScenario(ctx context.Context) error {
	if d.Scenario == scenarioPanic {
		defer crashreporter.Recover(d.LogFolder, d.Mode, d.Options...)
		panic(fmt.Sprintf("索引越界: 共 %d 項，訪問第 %d 項", 3, 7))
	}

	if rerr := crashreporter.ReportContext(ctx, scenarioError(d.Scenario), d.LogFolder, d.Mode, d.Options...); rerr != nil {
		d.Log.Warn("報告對話框未正常結束", zap.Error(rerr))
		return rerr
	}
	fmt.Println("👋 Bye!")
	return nil
}

func checkScenario(name string) error {
	switch name {
	case "", scenarioSingle, scenarioWrapped, scenarioLong, scenarioPanic:
		return nil
	}
	return fmt.Errorf("未知的演示場景: %q", name)
}

// scenarioError 返回場景對應的示例錯誤，panic 場景返回 nil
func scenarioError(name string) error {
	switch name {
	case scenarioWrapped:
		inner := &os.PathError{Op: "read", Path: "mods/config.toml", Err: os.ErrClosed}
		return fmt.Errorf("加載模組配置失敗: %w", fmt.Errorf("解析 mods/config.toml: %w", inner))
	case scenarioLong:
		lines := make([]string, 0, 40)
		for i := 1; i <= 40; i++ {
			lines = append(lines, fmt.Sprintf("區塊 %d 校驗失敗", i))
		}
		return fmt.Errorf("存檔損壞:\n%s", strings.Join(lines, "\n"))
	case scenarioPanic:
		return nil
	}
	return &os.PathError{Op: "open", Path: "world/level.dat", Err: os.ErrPermission}
}

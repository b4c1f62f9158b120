package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/pkg/appctx"
	"github.com/Yat-Muk/crashreporter/internal/pkg/logger"
	"github.com/Yat-Muk/crashreporter/internal/pkg/version"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "致命錯誤: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionPrinter = func(*cli.Context) {
		fmt.Println(version.Info())
	}

	return &cli.App{
		Name:      "crashreporter",
		Version:   version.Short(),
		Usage:     "在終端中演示錯誤報告對話框",
		UsageText: "crashreporter [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "工作目錄 (默認: 用戶配置目錄/crashreporter)",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Value:   "crash",
				Usage:   "對話框模式: crash, issue, feedback",
			},
			&cli.StringFlag{
				Name:    "logs",
				Aliases: []string{"l"},
				Usage:   "宿主程序的日誌目錄",
			},
			&cli.StringFlag{
				Name:  "locale",
				Usage: "界面語言，例如 en, de, zh-TW",
			},
			&cli.StringFlag{
				Name:  "properties",
				Usage: "屬性覆蓋文件 (YAML 或 TOML)",
			},
			&cli.StringFlag{
				Name:    "scenario",
				Aliases: []string{"s"},
				Value:   scenarioSingle,
				Usage:   "演示場景: single, wrapped, long, panic",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "開啟調試日誌",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	paths, err := appctx.NewPaths(c.String("dir"))
	if err != nil {
		return fmt.Errorf("無法初始化路徑: %w", err)
	}

	redirectStdErr(filepath.Join(paths.LogDir, "stderr.log"))

	logConfig := logger.DefaultConfig(paths.LogFile)
	if c.Bool("debug") {
		logConfig.Level = "debug"
	}
	log, err := logger.New(logConfig)
	if err != nil {
		return fmt.Errorf("日誌初始化失敗: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("crashreporter 正在啟動",
		zap.String("version", version.Version),
		zap.String("commit", version.GitCommit),
		zap.String("scenario", c.String("scenario")),
	)

	deps, err := initializeDependencies(c, log, paths)
	if err != nil {
		log.Error("依賴初始化失敗", zap.Error(err))
		return err
	}

	return deps.runScenario(c.Context)
}

func redirectStdErr(filename string) {
	_ = os.MkdirAll(filepath.Dir(filename), 0755)
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		os.Stderr = f
	}
}

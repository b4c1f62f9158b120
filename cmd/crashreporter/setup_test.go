package main

import (
	"errors"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/domain/report"
	"github.com/Yat-Muk/crashreporter/internal/pkg/appctx"
)

// newTestContext 以給定參數構造命令行上下文
func newTestContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()

	app := newApp()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(app, set, nil)
}

func setupTestPaths(t *testing.T) *appctx.Paths {
	t.Helper()
	paths, err := appctx.NewPaths(t.TempDir())
	require.NoError(t, err)
	return paths
}

func TestInitializeDependencies(t *testing.T) {
	paths := setupTestPaths(t)

	t.Run("默認參數", func(t *testing.T) {
		deps, err := initializeDependencies(newTestContext(t), zap.NewNop(), paths)
		require.NoError(t, err)

		assert.Equal(t, report.ModeCrash, deps.Mode)
		assert.Equal(t, scenarioSingle, deps.Scenario)
		assert.Empty(t, deps.LogFolder)
		assert.Len(t, deps.Options, 2)
	})

	t.Run("指定模式與語言", func(t *testing.T) {
		ctx := newTestContext(t, "--mode", "issue", "--locale", "de", "--logs", "/tmp/logs", "-s", "PANIC")
		deps, err := initializeDependencies(ctx, zap.NewNop(), paths)
		require.NoError(t, err)

		assert.Equal(t, report.ModeIssue, deps.Mode)
		assert.Equal(t, scenarioPanic, deps.Scenario)
		assert.Equal(t, "/tmp/logs", deps.LogFolder)
		assert.Len(t, deps.Options, 3)
	})

	t.Run("未知模式", func(t *testing.T) {
		_, err := initializeDependencies(newTestContext(t, "--mode", "bogus"), zap.NewNop(), paths)
		assert.Error(t, err)
	})

	t.Run("未知場景", func(t *testing.T) {
		_, err := initializeDependencies(newTestContext(t, "--scenario", "bogus"), zap.NewNop(), paths)
		assert.Error(t, err)
	})
}

func TestScenarioError(t *testing.T) {
	t.Run("單一錯誤", func(t *testing.T) {
		err := scenarioError(scenarioSingle)
		assert.True(t, errors.Is(err, os.ErrPermission))
	})

	t.Run("包裝錯誤保留原因鏈", func(t *testing.T) {
		var pathErr *os.PathError
		require.True(t, errors.As(scenarioError(scenarioWrapped), &pathErr))
		assert.Equal(t, "mods/config.toml", pathErr.Path)
	})

	t.Run("長消息", func(t *testing.T) {
		err := scenarioError(scenarioLong)
		assert.Len(t, strings.Split(err.Error(), "\n"), 41)
	})

	t.Run("panic 場景沒有錯誤值", func(t *testing.T) {
		assert.Nil(t, scenarioError(scenarioPanic))
		assert.NoError(t, checkScenario(scenarioPanic))
	})

	t.Run("未知場景", func(t *testing.T) {
		assert.Error(t, checkScenario("bogus"))
	})
}

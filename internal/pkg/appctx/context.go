package appctx

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths 定義報告器使用的關鍵路徑
type Paths struct {
	BaseDir string
	LogDir  string

	// 自身運行日誌
	LogFile string
	// 可選的屬性覆蓋文件，不存在時忽略
	OverrideFile string
}

// NewPaths 以 baseDir 為根建立路徑，為空時使用用戶配置目錄
func NewPaths(baseDir string) (*Paths, error) {
	if baseDir == "" {
		if env := os.Getenv("CRASHREPORTER_HOME"); env != "" {
			baseDir = env
		} else {
			cfgDir, err := os.UserConfigDir()
			if err != nil {
				home, herr := os.UserHomeDir()
				if herr != nil {
					return nil, fmt.Errorf("無法獲取用戶主目錄: %w", herr)
				}
				cfgDir = home
			}
			baseDir = filepath.Join(cfgDir, "crashreporter")
		}
	}

	absPath, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("無法解析絕對路徑: %w", err)
	}

	paths := &Paths{
		BaseDir:      absPath,
		LogDir:       filepath.Join(absPath, "logs"),
		LogFile:      filepath.Join(absPath, "logs", "crashreporter.log"),
		OverrideFile: filepath.Join(absPath, "crashreporter.yaml"),
	}

	if err := os.MkdirAll(paths.LogDir, 0755); err != nil {
		return nil, fmt.Errorf("無法創建目錄 %s: %w", paths.LogDir, err)
	}

	return paths, nil
}

package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	BuildTime = ""
	GoVersion = runtime.Version()
	GitCommit = ""
)

func Short() string {
	// v1.0.0 (abcdef01) 這種格式
	if GitCommit != "" {
		return fmt.Sprintf("v%s (%s)", Version, GitCommit)
	}
	return "v" + Version
}

// Title 為窗口標題追加版本後綴
func Title(base string) string {
	return fmt.Sprintf("%s - %s", base, Short())
}

func Info() string {
	return fmt.Sprintf(
		"CrashReporter v%s\nBuild Time: %s\nGo Version: %s\nGit Commit: %s",
		Version, BuildTime, GoVersion, GitCommit,
	)
}

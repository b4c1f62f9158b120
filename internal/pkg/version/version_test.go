package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestShort 測試短版本號
func TestShort(t *testing.T) {
	oldV, oldC := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldV, oldC })

	t.Run("無提交號", func(t *testing.T) {
		Version, GitCommit = "1.2.0", ""
		assert.Equal(t, "v1.2.0", Short())
	})

	t.Run("帶提交號", func(t *testing.T) {
		Version, GitCommit = "1.2.0", "abc123"
		assert.Equal(t, "v1.2.0 (abc123)", Short())
	})
}

func TestTitle(t *testing.T) {
	oldV, oldC := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldV, oldC })
	Version, GitCommit = "dev", ""

	assert.Equal(t, "Crash Reporter - vdev", Title("Crash Reporter"))
}

func TestInfo(t *testing.T) {
	assert.Contains(t, Info(), "Go Version")
	assert.NotEmpty(t, Version)
}

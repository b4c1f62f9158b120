package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"short", "***"},
		{"medium12", "medi***um12"},
		{"1ed92217030bd6c2570fac91bcbfee78", "1ed9***ee78"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, APIKey(tt.input))
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "***", String("abc", 2, 2))
	assert.Equal(t, "ab***yz", String("abcdwxyz", 2, 2))
}

func TestURL(t *testing.T) {
	t.Run("隱藏文件名與參數", func(t *testing.T) {
		got := URL("https://example.org/keys/service-account.json?token=abc")
		assert.Equal(t, "https://example.org/keys/***", got)
	})

	t.Run("目錄保持不變", func(t *testing.T) {
		assert.Equal(t, "https://example.org/keys/", URL("https://example.org/keys/"))
	})

	t.Run("無效地址", func(t *testing.T) {
		assert.Equal(t, "***", URL("not a url"))
		assert.Equal(t, "", URL(""))
	})
}

package sanitizer

import (
	"net/url"
	"strings"
)

// String 通用字符串脫敏 (保留首尾)
func String(s string, start, end int) string {
	if len(s) <= start+end {
		return "***"
	}
	return s[:start] + "***" + s[len(s)-end:]
}

// APIKey API Key 脫敏 (保留前綴)
func APIKey(s string) string {
	if s == "" {
		return ""
	}
	if len(s) < 8 {
		return "***"
	}
	return s[:4] + "***" + s[len(s)-4:]
}

// URL 去除查詢參數與路徑末段，只保留主機與目錄
func URL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	path := u.Path
	if i := strings.LastIndex(path, "/"); i >= 0 && i < len(path)-1 {
		path = path[:i+1] + "***"
	}
	return u.Scheme + "://" + u.Host + path
}

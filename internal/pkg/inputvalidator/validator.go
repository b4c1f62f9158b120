package inputvalidator

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// 輸入長度限制常量
const (
	MaxURLLength    = 2048  // 鏈接最大長度
	MaxPrefixLength = 64    // 上傳文件名前綴最大長度
	MaxUserInfo     = 65536 // 用戶說明最大字符數
)

var safeName = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidationError 驗證錯誤
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateLength 驗證字符數
func ValidateLength(input string, maxLen int, fieldName string) error {
	if n := utf8.RuneCountInString(input); n > maxLen {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("長度超過限制（最大 %d 字符，當前 %d 字符）", maxLen, n),
		}
	}
	return nil
}

// ValidateURL 要求絕對 http(s) 地址
func ValidateURL(raw, fieldName string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &ValidationError{Field: fieldName, Message: "鏈接不能為空"}
	}
	if err := ValidateLength(raw, MaxURLLength, fieldName); err != nil {
		return err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{Field: fieldName, Message: "鏈接格式錯誤"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: fieldName, Message: fmt.Sprintf("不支持的協議 %q", u.Scheme)}
	}
	if u.Host == "" {
		return &ValidationError{Field: fieldName, Message: "缺少主機名"}
	}
	return nil
}

// IsURL 是 ValidateURL 的布爾版本
func IsURL(raw string) bool {
	return ValidateURL(raw, "url") == nil
}

// ValidateFilePrefix 驗證上傳文件名前綴 (防止路徑遍歷)
func ValidateFilePrefix(name string) error {
	if name == "" {
		return &ValidationError{Field: "prefix", Message: "文件名前綴不能為空"}
	}
	if len(name) > MaxPrefixLength {
		return &ValidationError{Field: "prefix", Message: "文件名前綴過長"}
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `\/`) {
		return &ValidationError{Field: "prefix", Message: "非法文件名前綴"}
	}
	if !safeName.MatchString(name) {
		return &ValidationError{Field: "prefix", Message: "文件名前綴包含非法字符"}
	}
	return nil
}

// SanitizeText 移除控制字符，保留換行與製表符
func SanitizeText(input string) string {
	var result strings.Builder
	result.Grow(len(input))
	for _, r := range input {
		if r == '\n' || r == '\t' || (r >= 32 && r != 127) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

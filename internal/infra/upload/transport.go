// Package upload 將報告文本發送到托管服務並返回可分享的鏈接
package upload

import (
	"context"
	"net/url"
	"strings"

	apperrors "github.com/Yat-Muk/crashreporter/internal/pkg/errors"
)

// Payload 一次上傳的內容
type Payload struct {
	Content string
	// FileName 建議的文件名，為空時由適配器決定
	FileName string
}

// Transport 上傳後端
// 網絡與文件錯誤統一為 CodeUpload 錯誤返回
type Transport interface {
	Name() string
	Upload(ctx context.Context, p Payload) (string, error)
}

// 後端名稱
const (
	NamePastebin = "pastebin"
	NameGDrive   = "gdrive"
	NameHosted   = "hosted"
)

// transportError 以遠端返回的原文作為消息
func transportError(backend, reason string, cause error) error {
	if reason == "" {
		reason = backend + " upload failed"
	}
	return apperrors.Wrap(cause, apperrors.CodeUpload, reason)
}

// rejected 服務明確拒絕，原文即展示給用戶的原因
func rejected(backend, text string) error {
	return transportError(backend, text, apperrors.ErrUploadRejected)
}

// IsTransportError 是否為上傳錯誤
func IsTransportError(err error) bool {
	return apperrors.HasCode(err, apperrors.CodeUpload)
}

// Reason 返回適合展示給用戶的失敗原因
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var e *apperrors.Error
	if apperrors.As(err, &e) && e.Code == apperrors.CodeUpload {
		if e.Err == nil || apperrors.Is(e.Err, apperrors.ErrUploadRejected) {
			return e.Message
		}
		return e.Message + ": " + e.Err.Error()
	}
	return err.Error()
}

// parseLink 校驗服務返回的鏈接必須是絕對 http(s) 地址
func parseLink(backend, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", transportError(backend, "", apperrors.ErrUploadEmpty)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", rejected(backend, raw)
	}
	return u.String(), nil
}

package errors

import (
	"errors"
	"fmt"
)

// 錯誤代碼
const (
	CodeUpload  = "UploadError"
	CodeConfig  = "ConfigError"
	CodeLogRead = "LogReadError"
	CodeDialog  = "DialogError"

	// 系統操作
	CodeCommandDenied = "SYS001"
	CodeCommandFailed = "SYS002"
	CodeInvalidLink   = "SYS003"
	CodeClipboard     = "SYS004"
)

// 預定義錯誤類型
var (
	// 上傳相關
	ErrUploadRejected = errors.New("upload rejected by remote service")
	ErrUploadEmpty    = errors.New("remote service returned an empty link")

	// 配置相關
	ErrConfigNotFound    = errors.New("configuration file not found")
	ErrConfigParseFailed = errors.New("failed to parse configuration")
	ErrConfigUnsupported = errors.New("unsupported configuration format")

	// 對話框相關
	ErrDialogBusy = errors.New("another report dialog is already open")

	// 系統相關
	ErrClipboardUnsupported = errors.New("clipboard is not supported on this system")
)

// Error 自定義錯誤類型
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New 創建新錯誤
func New(code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap 包裝錯誤
func Wrap(err error, code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode 判斷錯誤鏈中是否存在指定代碼
func HasCode(err error, code string) bool {
	var e *Error
	for err != nil {
		if errors.As(err, &e) {
			if e.Code == code {
				return true
			}
			err = e.Err
			continue
		}
		return false
	}
	return false
}

// Is 透傳標準庫
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As 透傳標準庫
func As(err error, target any) bool {
	return errors.As(err, target)
}

package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CrashContext 一次報告的不可變輸入
type CrashContext struct {
	id        uuid.UUID
	createdAt time.Time
	typeName  string
	message   string
	trace     string
	logFolder string
	mode      Mode
}

// FromError 由錯誤構建上下文，堆疊取自調用點
func FromError(err error, logFolder string, mode Mode) *CrashContext {
	if err == nil {
		err = errors.New("no error given")
	}
	return newContext(typeName(err), err.Error(), formatTrace(err, debug.Stack()), logFolder, mode)
}

// FromPanic 由 recover() 的值構建上下文
func FromPanic(v any, stack []byte, logFolder string, mode Mode) *CrashContext {
	if err, ok := v.(error); ok {
		return newContext(typeName(err), err.Error(), formatTrace(err, stack), logFolder, mode)
	}
	msg := fmt.Sprint(v)
	trace := "panic: " + msg
	if len(stack) > 0 {
		trace += "\n\n" + string(stack)
	}
	return newContext("panic", msg, trace, logFolder, mode)
}

func newContext(typ, msg, trace, logFolder string, mode Mode) *CrashContext {
	if logFolder != "" {
		if abs, err := filepath.Abs(logFolder); err == nil {
			logFolder = filepath.Clean(abs)
		}
	}
	return &CrashContext{
		id:        uuid.New(),
		createdAt: time.Now(),
		typeName:  typ,
		message:   msg,
		trace:     trace,
		logFolder: logFolder,
		mode:      mode,
	}
}

func (c *CrashContext) ID() uuid.UUID        { return c.id }
func (c *CrashContext) CreatedAt() time.Time { return c.createdAt }
func (c *CrashContext) TypeName() string     { return c.typeName }
func (c *CrashContext) Message() string      { return c.message }
func (c *CrashContext) Trace() string        { return c.trace }
func (c *CrashContext) LogFolder() string    { return c.logFolder }
func (c *CrashContext) Mode() Mode           { return c.mode }

// HasLogFolder 是否指定了日誌目錄
func (c *CrashContext) HasLogFolder() bool {
	return c.logFolder != ""
}

// Headline 形如 "Type: message" 的標題行
func (c *CrashContext) Headline() string {
	if c.message == "" {
		return c.typeName
	}
	return c.typeName + ": " + c.message
}

// typeName 取錯誤的簡單類型名，去掉指針與包路徑
func typeName(err error) string {
	name := fmt.Sprintf("%T", err)
	name = strings.TrimLeft(name, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// formatTrace 輸出錯誤鏈與協程堆疊
func formatTrace(err error, stack []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", typeName(err), err.Error())

	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(&b, "Caused by: %s: %s\n", typeName(cause), cause.Error())
	}

	if len(stack) > 0 {
		b.WriteString("\n")
		b.Write(stack)
	}
	return strings.TrimRight(b.String(), "\n")
}

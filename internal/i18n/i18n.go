// Package i18n 提供對話框的多語言文本
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// 支持的語言，第一項為回退語言
var supported = []language.Tag{
	language.English,
	language.German,
	language.MustParse("zh-TW"),
}

var matcher = language.NewMatcher(supported)

var (
	catalogOnce sync.Once
	catalog     map[language.Tag]map[string]string
)

func loadCatalog() {
	catalog = make(map[language.Tag]map[string]string, len(supported))
	for _, tag := range supported {
		data, err := localeFS.ReadFile("locales/" + tag.String() + ".yaml")
		if err != nil {
			panic(fmt.Sprintf("i18n: 缺少內建語言文件 %s: %v", tag, err))
		}
		msgs := map[string]string{}
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			panic(fmt.Sprintf("i18n: 語言文件 %s 格式錯誤: %v", tag, err))
		}
		catalog[tag] = msgs
	}
}

// Bundle 某一語言的文本集合
type Bundle struct {
	tag      language.Tag
	messages map[string]string
	fallback map[string]string
	logger   *zap.Logger

	mu     sync.Mutex
	warned map[string]bool
}

// New 按語言標識創建 Bundle，空字符串時從環境變量推斷
func New(locale string, logger *zap.Logger) *Bundle {
	catalogOnce.Do(loadCatalog)

	if logger == nil {
		logger = zap.NewNop()
	}
	if locale == "" {
		locale = DetectLocale()
	}

	tag := Match(locale)
	return &Bundle{
		tag:      tag,
		messages: catalog[tag],
		fallback: catalog[language.English],
		logger:   logger,
		warned:   map[string]bool{},
	}
}

// FromMessages 以給定文本構建，不帶回退語言
func FromMessages(messages map[string]string, logger *zap.Logger) *Bundle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bundle{
		tag:      language.Und,
		messages: messages,
		logger:   logger,
		warned:   map[string]bool{},
	}
}

// Match 將任意語言標識映射到受支持的語言
func Match(locale string) language.Tag {
	// POSIX 格式 zh_TW.UTF-8
	locale = strings.SplitN(locale, ".", 2)[0]
	locale = strings.SplitN(locale, "@", 2)[0]
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.English
	}

	_, idx, conf := matcher.Match(language.Make(locale))
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// DetectLocale 按 POSIX 優先級讀取語言環境變量
func DetectLocale() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return ""
}

// Locale 當前語言
func (b *Bundle) Locale() language.Tag {
	return b.tag
}

// T 返回 key 的翻譯；當前語言與回退語言都缺失時返回 $key$
func (b *Bundle) T(key string) string {
	if msg, ok := b.messages[key]; ok {
		return msg
	}
	if msg, ok := b.fallback[key]; ok {
		return msg
	}

	b.mu.Lock()
	first := !b.warned[key]
	b.warned[key] = true
	b.mu.Unlock()
	if first {
		b.logger.Warn("缺少翻譯", zap.String("key", key), zap.String("locale", b.tag.String()))
	}
	return "$" + key + "$"
}

// TF 翻譯後替換 {0}、{1} 等佔位符
func (b *Bundle) TF(key string, args ...any) string {
	template := b.T(key)
	for i, arg := range args {
		placeholder := fmt.Sprintf("{%d}", i)
		template = strings.ReplaceAll(template, placeholder, fmt.Sprint(arg))
	}
	return template
}

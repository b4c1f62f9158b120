package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	apperrors "github.com/Yat-Muk/crashreporter/internal/pkg/errors"
	"github.com/Yat-Muk/crashreporter/internal/pkg/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Key 屬性鍵
type Key string

// 鏈接
const (
	SupportForumLink Key = "SUPPORT_FORUM_LINK"
	JoinDiscordLink  Key = "JOIN_DISCORD_LINK"
	ReportIssueLink  Key = "REPORT_ISSUE_LINK"
)

// 上傳服務
const (
	PastebinEndpoint Key = "PASTEBIN_ENDPOINT"
	PastebinDevKey   Key = "PASTEBIN_DEV_KEY"
	PastebinTitle    Key = "PASTEBIN_TITLE"
	PastebinFormat   Key = "PASTEBIN_FORMAT"
	PastebinExpire   Key = "PASTEBIN_EXPIRE"

	GDriveKeyURL     Key = "GDRIVE_KEY_URL"
	GDriveParentID   Key = "GDRIVE_PARENT_ID"
	GDriveAppName    Key = "GDRIVE_APP_NAME"
	GDriveFilePrefix Key = "GDRIVE_FILE_PREFIX"

	HostedUploadURL Key = "HOSTED_UPLOAD_URL"

	UploadTimeout   Key = "UPLOAD_TIMEOUT"
	LogPollInterval Key = "LOG_POLL_INTERVAL"
)

// 圖示
const (
	ResErrorTitleIcon  Key = "RES_ERROR_TITLE_ICON"
	ResInfoTitleIcon   Key = "RES_INFO_TITLE_ICON"
	ResUploadTitleIcon Key = "RES_UPLOAD_TITLE_ICON"
	ResFinalTitleIcon  Key = "RES_FINAL_TITLE_ICON"
	ResArrowPrev       Key = "RES_ARROW_PREV"
	ResArrowNext       Key = "RES_ARROW_NEXT"
	ResExitIcon        Key = "RES_EXIT_ICON"
	ResPastebinIcon    Key = "RES_PASTEBIN_ICON"
	ResGDriveIcon      Key = "RES_GDRIVE_ICON"
	ResHostedIcon      Key = "RES_HOSTED_ICON"
	ResSkipUploadIcon  Key = "RES_SKIP_UPLOAD_ICON"
	ResCopyIcon        Key = "RES_COPY_ICON"
	ResGithubIcon      Key = "RES_GITHUB_ICON"
	ResForumIcon       Key = "RES_FORUM_ICON"
	ResDiscordIcon     Key = "RES_DISCORD_ICON"
)

// Properties 只讀屬性表
type Properties struct {
	mu     sync.RWMutex
	values map[Key]string
	logger *zap.Logger
}

// Defaults 僅包含內建默認值
func Defaults(log *zap.Logger) *Properties {
	p := &Properties{values: map[Key]string{}, logger: logger.OrNop(log)}
	if err := p.merge(defaultsYAML, ".yaml"); err != nil {
		// 內建文件由構建保證
		panic(fmt.Sprintf("內建屬性表損壞: %v", err))
	}
	return p
}

// Load 加載默認值並合併覆蓋文件
// 覆蓋文件不存在時靜默忽略；格式錯誤則記錄警告並保留默認值
func Load(overridePath string, log *zap.Logger) *Properties {
	p := Defaults(log)
	if overridePath == "" {
		return p
	}

	if err := p.MergeFile(overridePath); err != nil {
		if apperrors.Is(err, apperrors.ErrConfigNotFound) {
			p.logger.Debug("屬性覆蓋文件不存在", zap.String("path", overridePath))
		} else {
			p.logger.Warn("屬性覆蓋文件無效，使用默認值", zap.String("path", overridePath), zap.Error(err))
		}
	}
	return p
}

// FromMap 由給定鍵值構建屬性表，不含默認值
func FromMap(values map[Key]string, log *zap.Logger) *Properties {
	p := &Properties{values: make(map[Key]string, len(values)), logger: logger.OrNop(log)}
	for k, v := range values {
		p.values[k] = v
	}
	return p
}

// MergeFile 按擴展名解析並合併覆蓋文件
func (p *Properties) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return apperrors.Wrap(apperrors.ErrConfigNotFound, apperrors.CodeConfig, path)
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeConfig, "讀取屬性文件失敗")
	}
	return p.merge(data, strings.ToLower(filepath.Ext(path)))
}

func (p *Properties) merge(data []byte, ext string) error {
	raw := map[string]any{}
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return apperrors.Wrap(err, apperrors.CodeConfig, apperrors.ErrConfigParseFailed.Error())
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return apperrors.Wrap(err, apperrors.CodeConfig, apperrors.ErrConfigParseFailed.Error())
		}
	default:
		return apperrors.Wrap(apperrors.ErrConfigUnsupported, apperrors.CodeConfig, ext)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for k, v := range raw {
		if v == nil {
			p.values[Key(k)] = ""
			continue
		}
		p.values[Key(k)] = fmt.Sprint(v)
	}
	return nil
}

// Lookup 返回值及是否存在
func (p *Properties) Lookup(key Key) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok
}

// Get 缺失時返回空字符串並記錄
func (p *Properties) Get(key Key) string {
	v, ok := p.Lookup(key)
	if !ok {
		p.logger.Debug("屬性缺失", zap.String("key", string(key)))
	}
	return v
}

// Has 鍵存在且非空
func (p *Properties) Has(key Key) bool {
	v, ok := p.Lookup(key)
	return ok && strings.TrimSpace(v) != ""
}

// Duration 解析時長，缺失或無效時返回 def
func (p *Properties) Duration(key Key, def time.Duration) time.Duration {
	v, ok := p.Lookup(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		p.logger.Warn("屬性時長格式無效", zap.String("key", string(key)), zap.String("value", v))
		return def
	}
	return d
}

// Icon 圖示，缺失時為空
func (p *Properties) Icon(key Key) string {
	v, _ := p.Lookup(key)
	return v
}

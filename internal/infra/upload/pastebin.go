package upload

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/Yat-Muk/crashreporter/internal/pkg/errors"
)

// PastebinConfig 粘貼服務參數
type PastebinConfig struct {
	Endpoint string
	DevKey   string
	Title    string
	Format   string
	Expire   string
	Client   *http.Client
}

// Pastebin 通過表單接口創建粘貼
type Pastebin struct {
	cfg    PastebinConfig
	client *http.Client
}

// NewPastebin 創建粘貼服務後端
func NewPastebin(cfg PastebinConfig) *Pastebin {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if cfg.Format == "" {
		cfg.Format = "apache"
	}
	if cfg.Expire == "" {
		cfg.Expire = "1M"
	}
	return &Pastebin{cfg: cfg, client: client}
}

func (p *Pastebin) Name() string { return NamePastebin }

// Upload 提交粘貼，服務拒絕時原樣返回其錯誤文本
func (p *Pastebin) Upload(ctx context.Context, payload Payload) (string, error) {
	if p.cfg.DevKey == "" || p.cfg.Endpoint == "" {
		return "", transportError(NamePastebin, "pastebin not configured", apperrors.ErrConfigNotFound)
	}

	form := url.Values{}
	form.Set("api_dev_key", p.cfg.DevKey)
	form.Set("api_option", "paste")
	form.Set("api_paste_code", payload.Content)
	form.Set("api_paste_name", p.cfg.Title)
	form.Set("api_paste_format", p.cfg.Format)
	form.Set("api_paste_expire_date", p.cfg.Expire)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", transportError(NamePastebin, "", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", transportError(NamePastebin, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(NamePastebin, "", err)
	}
	text := strings.TrimSpace(string(body))

	if resp.StatusCode != http.StatusOK || strings.HasPrefix(text, "Bad API request") {
		if text == "" {
			text = resp.Status
		}
		return "", rejected(NamePastebin, text)
	}

	return parseLink(NamePastebin, text)
}

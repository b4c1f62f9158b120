package upload

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// DefaultHostedFileName 表單文件部分的默認名稱
const DefaultHostedFileName = "report.log"

// Hosted 以 multipart 表單上傳到自託管的日誌服務
// 服務返回 200 時響應體即鏈接，否則響應體即錯誤原因
type Hosted struct {
	endpoint string
	fileName string
	client   *http.Client
}

// NewHosted 創建自託管後端
func NewHosted(endpoint string, client *http.Client) *Hosted {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Hosted{endpoint: endpoint, fileName: DefaultHostedFileName, client: client}
}

// WithFilePrefix 以 prefix.log 作為文件部分的名稱，prefix 為空時保持默認
func (h *Hosted) WithFilePrefix(prefix string) *Hosted {
	if prefix != "" {
		h.fileName = prefix + ".log"
	}
	return h
}

func (h *Hosted) Name() string { return NameHosted }

func (h *Hosted) Upload(ctx context.Context, payload Payload) (string, error) {
	name := payload.FileName
	if name == "" {
		name = h.fileName
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("logFile", name)
	if err != nil {
		return "", transportError(NameHosted, "", err)
	}
	if _, err := io.WriteString(part, payload.Content); err != nil {
		return "", transportError(NameHosted, "", err)
	}
	if err := mw.Close(); err != nil {
		return "", transportError(NameHosted, "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, &buf)
	if err != nil {
		return "", transportError(NameHosted, "", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return "", transportError(NameHosted, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(NameHosted, "", err)
	}
	text := strings.TrimSpace(string(body))

	if resp.StatusCode != http.StatusOK {
		if text == "" {
			text = resp.Status
		}
		return "", rejected(NameHosted, text)
	}
	return parseLink(NameHosted, text)
}

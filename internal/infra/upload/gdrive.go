package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/Yat-Muk/crashreporter/internal/pkg/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ServiceFactory 由服務賬號密鑰創建 Drive 客戶端
type ServiceFactory func(ctx context.Context, keyJSON []byte) (*drive.Service, error)

// GDriveConfig 雲端硬碟參數
type GDriveConfig struct {
	KeyURL     string
	ParentID   string
	AppName    string
	FilePrefix string

	// Client 用於下載密鑰
	Client     *http.Client
	NewService ServiceFactory
	Now        func() time.Time
}

// GDrive 上傳到共享目錄並開放鏈接讀取權限
type GDrive struct {
	cfg GDriveConfig
}

// NewGDrive 創建雲端硬碟後端
func NewGDrive(cfg GDriveConfig) *GDrive {
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.FilePrefix == "" {
		cfg.FilePrefix = "report"
	}
	if cfg.NewService == nil {
		appName := cfg.AppName
		cfg.NewService = func(ctx context.Context, keyJSON []byte) (*drive.Service, error) {
			creds, err := google.CredentialsFromJSON(ctx, keyJSON, drive.DriveScope)
			if err != nil {
				return nil, err
			}
			return drive.NewService(ctx, option.WithCredentials(creds), option.WithUserAgent(appName))
		}
	}
	return &GDrive{cfg: cfg}
}

func (g *GDrive) Name() string { return NameGDrive }

// FileName 形如 prefix_2006-01-02_15-04-05.000.log
func (g *GDrive) FileName() string {
	return fmt.Sprintf("%s_%s.log", g.cfg.FilePrefix, g.cfg.Now().Format("2006-01-02_15-04-05.000"))
}

// Upload 每次調用都重新獲取密鑰
func (g *GDrive) Upload(ctx context.Context, payload Payload) (string, error) {
	key, err := g.fetchKey(ctx)
	if err != nil {
		return "", transportError(NameGDrive, "", err)
	}

	srv, err := g.cfg.NewService(ctx, key)
	if err != nil {
		return "", transportError(NameGDrive, "", err)
	}

	name := payload.FileName
	if name == "" {
		name = g.FileName()
	}

	meta := &drive.File{Name: name}
	if g.cfg.ParentID != "" {
		meta.Parents = []string{g.cfg.ParentID}
	}

	file, err := srv.Files.Create(meta).
		Media(strings.NewReader(payload.Content), googleapi.ContentType("text/plain")).
		SupportsAllDrives(true).
		Fields("id", "webContentLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", transportError(NameGDrive, "", err)
	}

	perm := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := srv.Permissions.Create(file.Id, perm).SupportsAllDrives(true).Context(ctx).Do(); err != nil {
		return "", transportError(NameGDrive, "", err)
	}

	return parseLink(NameGDrive, file.WebContentLink)
}

func (g *GDrive) fetchKey(ctx context.Context) ([]byte, error) {
	if g.cfg.KeyURL == "" {
		return nil, apperrors.ErrConfigNotFound
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.KeyURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.cfg.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch service key: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

package upload

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

type fakeDrive struct {
	mu          sync.Mutex
	created     bool
	body        string
	permissions []map[string]any
	query       []string
}

func (f *fakeDrive) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.query = append(f.query, r.URL.RawQuery)

		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/permissions"):
			var p map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
			f.permissions = append(f.permissions, p)
			_, _ = io.WriteString(w, `{"id":"perm1"}`)

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/files"):
			data, _ := io.ReadAll(r.Body)
			f.created = true
			f.body = string(data)
			_, _ = io.WriteString(w, `{"id":"file1","webContentLink":"https://drive.google.com/uc?id=file1&export=download"}`)

		default:
			http.NotFound(w, r)
		}
	})
}

func newTestGDrive(t *testing.T, api *httptest.Server, keyStatus int) (*GDrive, *[]byte) {
	keySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(keyStatus)
		_, _ = io.WriteString(w, `{"type":"service_account"}`)
	}))
	t.Cleanup(keySrv.Close)

	var gotKey []byte
	g := NewGDrive(GDriveConfig{
		KeyURL:     keySrv.URL,
		ParentID:   "parent",
		FilePrefix: "terasology",
		Now:        func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 123e6, time.UTC) },
		NewService: func(ctx context.Context, key []byte) (*drive.Service, error) {
			gotKey = key
			return drive.NewService(ctx,
				option.WithEndpoint(api.URL+"/drive/v3/"),
				option.WithHTTPClient(api.Client()),
				option.WithoutAuthentication(),
			)
		},
	})
	return g, &gotKey
}

// TestGDrive 測試雲端硬碟上傳
func TestGDrive(t *testing.T) {
	t.Run("文件名格式", func(t *testing.T) {
		g := NewGDrive(GDriveConfig{
			FilePrefix: "terasology",
			Now:        func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 123e6, time.UTC) },
		})
		assert.Equal(t, "terasology_2024-03-05_14-07-09.123.log", g.FileName())
	})

	t.Run("上傳並開放讀取權限", func(t *testing.T) {
		fake := &fakeDrive{}
		api := httptest.NewServer(fake.handler(t))
		defer api.Close()

		g, key := newTestGDrive(t, api, http.StatusOK)
		link, err := g.Upload(context.Background(), Payload{Content: "the log"})

		require.NoError(t, err)
		assert.Equal(t, "https://drive.google.com/uc?id=file1&export=download", link)
		assert.JSONEq(t, `{"type":"service_account"}`, string(*key))
		assert.True(t, fake.created)
		assert.Contains(t, fake.body, "the log")
		assert.Contains(t, fake.body, "terasology_2024-03-05_14-07-09.123.log")
		assert.Contains(t, fake.body, "parent")
		require.Len(t, fake.permissions, 1)
		assert.Equal(t, "anyone", fake.permissions[0]["type"])
		assert.Equal(t, "reader", fake.permissions[0]["role"])
		for _, q := range fake.query {
			assert.Contains(t, q, "supportsAllDrives=true")
		}
	})

	t.Run("密鑰下載失敗", func(t *testing.T) {
		api := httptest.NewServer(http.NotFoundHandler())
		defer api.Close()

		g, _ := newTestGDrive(t, api, http.StatusForbidden)
		_, err := g.Upload(context.Background(), Payload{Content: "x"})

		assert.True(t, IsTransportError(err))
		assert.Contains(t, Reason(err), "403")
	})

	t.Run("認證失敗包裝為上傳錯誤", func(t *testing.T) {
		keySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "not json")
		}))
		defer keySrv.Close()

		_, err := NewGDrive(GDriveConfig{KeyURL: keySrv.URL}).Upload(context.Background(), Payload{})
		assert.True(t, IsTransportError(err))
	})

	t.Run("接口錯誤", func(t *testing.T) {
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"code":400,"message":"backend refused"}}`)
		}))
		defer api.Close()

		g, _ := newTestGDrive(t, api, http.StatusOK)
		_, err := g.Upload(context.Background(), Payload{Content: "x"})
		assert.True(t, IsTransportError(err))
		assert.Contains(t, Reason(err), "backend refused")
	})
}

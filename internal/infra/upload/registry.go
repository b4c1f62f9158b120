package upload

import (
	"github.com/Yat-Muk/crashreporter/internal/infra/config"
	"github.com/Yat-Muk/crashreporter/internal/pkg/inputvalidator"
	"github.com/Yat-Muk/crashreporter/internal/pkg/logger"
	"go.uber.org/zap"
)

// FromProperties 按屬性表構建可用的後端，缺少必要鍵或地址無效的後端不提供
func FromProperties(p *config.Properties, log *zap.Logger) []Transport {
	log = logger.OrNop(log)
	var out []Transport

	endpoint := func(key config.Key) (string, bool) {
		raw := p.Get(key)
		if raw == "" {
			return "", false
		}
		if err := inputvalidator.ValidateURL(raw, string(key)); err != nil {
			log.Warn("上傳地址無效，忽略該服務", zap.Error(err))
			return "", false
		}
		return raw, true
	}

	if ep, ok := endpoint(config.PastebinEndpoint); ok && p.Has(config.PastebinDevKey) {
		out = append(out, NewPastebin(PastebinConfig{
			Endpoint: ep,
			DevKey:   p.Get(config.PastebinDevKey),
			Title:    p.Get(config.PastebinTitle),
			Format:   p.Get(config.PastebinFormat),
			Expire:   p.Get(config.PastebinExpire),
		}))
		log.Debug("啟用粘貼服務", logger.SanitizedAPIKey("dev_key", p.Get(config.PastebinDevKey)))
	}

	// 雲端硬碟與自託管共用文件名前綴
	prefix := p.Get(config.GDriveFilePrefix)
	if prefix != "" {
		if err := inputvalidator.ValidateFilePrefix(prefix); err != nil {
			log.Warn("文件名前綴無效，使用默認值", zap.Error(err))
			prefix = ""
		}
	}

	if keyURL, ok := endpoint(config.GDriveKeyURL); ok {
		out = append(out, NewGDrive(GDriveConfig{
			KeyURL:     keyURL,
			ParentID:   p.Get(config.GDriveParentID),
			AppName:    p.Get(config.GDriveAppName),
			FilePrefix: prefix,
		}))
		log.Debug("啟用雲端硬碟", logger.SanitizedURL("key_url", keyURL))
	}

	if ep, ok := endpoint(config.HostedUploadURL); ok {
		out = append(out, NewHosted(ep, nil).WithFilePrefix(prefix))
		log.Debug("啟用自託管上傳", logger.SanitizedURL("endpoint", ep))
	}

	if len(out) == 0 {
		log.Warn("沒有可用的上傳服務")
	}
	return out
}

// Package logs 發現日誌目錄中的文件並追蹤其後續寫入
package logs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Yat-Muk/crashreporter/internal/domain/report"
	apperrors "github.com/Yat-Muk/crashreporter/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultSuffix 只收集此後綴的文件
	DefaultSuffix = ".log"
	// DefaultMaxDepth 根目錄為 0，直接子文件為 1，子目錄中的文件為 2
	DefaultMaxDepth = 2
)

// ReadFailedFunc 生成讀取失敗時的佔位文本
type ReadFailedFunc func(path string, err error) string

// DefaultReadFailed 默認佔位文本
func DefaultReadFailed(path string, err error) string {
	return fmt.Sprintf("Could not open log file %s\n%v", path, err)
}

type fileState struct {
	size    int64
	modTime time.Time
}

// Scanner 掃描單個日誌目錄
// Discover 與 Poll 共享已知文件的狀態，Poll 只報告之後的變化
type Scanner struct {
	root       string
	suffix     string
	maxDepth   int
	readFailed ReadFailedFunc
	logger     *zap.Logger

	mu   sync.Mutex
	seen map[string]fileState
}

// NewScanner 創建掃描器
func NewScanner(root string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		root:       root,
		suffix:     DefaultSuffix,
		maxDepth:   DefaultMaxDepth,
		readFailed: DefaultReadFailed,
		logger:     logger,
		seen:       map[string]fileState{},
	}
}

// WithReadFailed 替換讀取失敗時的佔位文本
func (s *Scanner) WithReadFailed(fn ReadFailedFunc) *Scanner {
	if fn != nil {
		s.readFailed = fn
	}
	return s
}

// Root 掃描的根目錄
func (s *Scanner) Root() string {
	return s.root
}

type candidate struct {
	path string
	info fs.FileInfo
}

// list 按深度限制列出匹配的文件
func (s *Scanner) list() ([]candidate, error) {
	if s.root == "" {
		return nil, nil
	}
	if _, err := os.Stat(s.root); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeLogRead, "日誌目錄不可用")
	}

	var out []candidate
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// 子目錄無法讀取時跳過，不影響其他文件
			s.logger.Debug("跳過不可讀路徑", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() && path != s.root {
				return fs.SkipDir
			}
			return nil
		}

		depth := s.depth(path)
		if d.IsDir() {
			if path != s.root && depth >= s.maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if depth > s.maxDepth || !strings.HasSuffix(d.Name(), s.suffix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		out = append(out, candidate{path: path, info: info})
		return nil
	})
	return out, err
}

func (s *Scanner) depth(path string) int {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

// name 標籤名為相對根目錄的路徑
func (s *Scanner) name(path string) string {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return rel
}

// Discover 返回所有日誌，最新的在前
// 文件系統不普遍提供創建時間，按修改時間排序，相同時按名稱保持穩定
func (s *Scanner) Discover() ([]*report.LogEntry, error) {
	files, err := s.list()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		ti, tj := files[i].info.ModTime(), files[j].info.ModTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return files[i].path < files[j].path
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]*report.LogEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, s.readEntry(f))
	}
	return entries, nil
}

// readEntry 讀取整個文件並記錄其狀態，調用方持有鎖
func (s *Scanner) readEntry(f candidate) *report.LogEntry {
	entry := &report.LogEntry{Name: s.name(f.path), Path: f.path}

	data, err := os.ReadFile(f.path)
	if err != nil {
		s.logger.Warn("無法讀取日誌文件", zap.String("path", f.path), zap.Error(err))
		entry.Content = s.readFailed(f.path, err)
		s.seen[f.path] = fileState{size: f.info.Size(), modTime: f.info.ModTime()}
		return entry
	}

	entry.Content = string(data)
	s.seen[f.path] = fileState{size: int64(len(data)), modTime: f.info.ModTime()}
	return entry
}

// Poll 對比上次狀態，返回新建與追加事件
func (s *Scanner) Poll() ([]Event, error) {
	files, err := s.list()
	if err != nil {
		return nil, err
	}

	// 新文件按修改時間先舊後新，以便頁面逐個插入到最前
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].info.ModTime().Before(files[j].info.ModTime())
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	var events []Event
	for _, f := range files {
		prev, known := s.seen[f.path]
		switch {
		case !known:
			entry := s.readEntry(f)
			events = append(events, Event{Kind: EventCreated, Name: entry.Name, Path: f.path, Text: entry.Content})

		case f.info.Size() > prev.size:
			text, n, err := readFrom(f.path, prev.size)
			if err != nil {
				s.logger.Debug("讀取追加內容失敗", zap.String("path", f.path), zap.Error(err))
				continue
			}
			s.seen[f.path] = fileState{size: prev.size + n, modTime: f.info.ModTime()}
			if n > 0 {
				events = append(events, Event{Kind: EventAppended, Name: s.name(f.path), Path: f.path, Text: text})
			}

		case f.info.Size() < prev.size:
			// 文件被截斷或輪轉，整體重讀
			entry := s.readEntry(f)
			events = append(events, Event{Kind: EventReplaced, Name: entry.Name, Path: f.path, Text: entry.Content})
		}
	}
	return events, nil
}

func readFrom(path string, offset int64) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return "", 0, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", 0, err
	}
	return string(data), int64(len(data)), nil
}

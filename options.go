package crashreporter

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Yat-Muk/crashreporter/internal/infra/config"
	"github.com/Yat-Muk/crashreporter/internal/infra/system"
	transport "github.com/Yat-Muk/crashreporter/internal/infra/upload"
)

type options struct {
	logger     *zap.Logger
	locale     string
	props      *config.Properties
	propsFile  string
	transports []transport.Transport
	desktop    system.Desktop
	input      io.Reader
	output     io.Writer
	altScreen  bool
	program    []tea.ProgramOption
}

// Option 配置一次報告
type Option func(*options)

// WithLogger 使用宿主的日誌記錄器，否則寫入默認日誌文件
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithLocale 指定語言，例如 "de" 或 "zh_TW.UTF-8"；默認讀取環境變量
func WithLocale(locale string) Option {
	return func(o *options) { o.locale = locale }
}

// WithProperties 直接提供屬性表
func WithProperties(p *config.Properties) Option {
	return func(o *options) { o.props = p }
}

// WithPropertiesFile 在內建默認值之上合併 YAML 或 TOML 文件
func WithPropertiesFile(path string) Option {
	return func(o *options) { o.propsFile = path }
}

// WithTransports 替換按屬性表構建的上傳後端
func WithTransports(ts ...transport.Transport) Option {
	return func(o *options) { o.transports = ts }
}

// WithDesktop 替換打開鏈接與剪貼簿的實現
func WithDesktop(d system.Desktop) Option {
	return func(o *options) { o.desktop = d }
}

// WithInput 替換終端輸入
func WithInput(r io.Reader) Option {
	return func(o *options) { o.input = r }
}

// WithOutput 替換終端輸出
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithoutAltScreen 在當前屏幕中繪製
func WithoutAltScreen() Option {
	return func(o *options) { o.altScreen = false }
}

// WithProgramOptions 追加 bubbletea 選項
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(o *options) { o.program = append(o.program, opts...) }
}

func newOptions(opts []Option) *options {
	o := &options{altScreen: true}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) programOptions() []tea.ProgramOption {
	var out []tea.ProgramOption
	if o.altScreen {
		out = append(out, tea.WithAltScreen())
	}
	if o.input != nil {
		out = append(out, tea.WithInput(o.input))
	}
	if o.output != nil {
		out = append(out, tea.WithOutput(o.output))
	}
	return append(out, o.program...)
}

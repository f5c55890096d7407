package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ErrClosed is returned when the session is used after Close.
var ErrClosed = errors.New("browser session is closed")

// Config 浏览器启动参数
type Config struct {
	ProxyURL        string
	Headless        bool
	PageLoadTimeout time.Duration // 单次导航超时，0 表示不限制
}

// Browser 封装 rod.Browser 实例。
// 一次运行只持有一个 Browser，所有阶段共用同一个标签页，顺序使用。
type Browser struct {
	cfg      Config
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page

	mu     sync.Mutex
	closed bool
}

// New 启动浏览器并建立 CDP 连接。调用方负责 Close。
func New(cfg Config) (*Browser, error) {
	l := launcher.New().
		Set("ignore-certificate-errors").
		Set("disable-gpu").
		Set("no-sandbox").
		Leakless(true).
		Headless(cfg.Headless)

	if cfg.ProxyURL != "" {
		l = l.Proxy(cfg.ProxyURL)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Browser{cfg: cfg, browser: rb, launcher: l}, nil
}

// ProxyURL 获取当前使用的代理URL
func (b *Browser) ProxyURL() string {
	return b.cfg.ProxyURL
}

// Page 返回会话共用的标签页，首次调用时创建。
func (b *Browser) Page() (*rod.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}
	if b.page != nil {
		return b.page, nil
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent})
	_, _ = page.EvalOnNewDocument(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`)

	b.page = page
	return page, nil
}

// Navigate 在共用标签页打开 url，受 ctx 与 PageLoadTimeout 约束。
// 返回的 page 已绑定 ctx，可用于后续读取。
func (b *Browser) Navigate(ctx context.Context, url string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := b.Page()
	if err != nil {
		return nil, err
	}
	page = page.Context(ctx)

	nav := page
	if b.cfg.PageLoadTimeout > 0 {
		nav = page.Timeout(b.cfg.PageLoadTimeout)
	}
	if err := nav.Navigate(url); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return page, nil
}

// WaitReady 等待 document.readyState 变为 complete，最多 timeout。
// 超时或脚本错误都被忽略。
func WaitReady(page *rod.Page, timeout time.Duration) {
	_ = page.Timeout(timeout).Wait(rod.Eval(`() => document.readyState === 'complete'`))
}

// CurrentURL 返回标签页当前地址。
func (b *Browser) CurrentURL(ctx context.Context) (string, error) {
	page, err := b.Page()
	if err != nil {
		return "", err
	}
	info, err := page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("failed to read page info: %w", err)
	}
	return info.URL, nil
}

// Close 关闭浏览器并清理资源，可重复调用。
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var err error
	if b.browser != nil {
		err = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
	}
	return err
}

package fetcher

import (
	"context"
	"fmt"
	"time"

	"nobaidu/internal/browser"
	"nobaidu/internal/scraper"
)

var _ scraper.PageFetcher = (*Fetcher)(nil)

// Fetcher 页面抓取器，复用会话标签页
type Fetcher struct {
	browser      *browser.Browser
	readyTimeout time.Duration
}

// NewFetcher 创建新的 Fetcher 实例
func NewFetcher(b *browser.Browser, readyTimeout time.Duration) *Fetcher {
	return &Fetcher{browser: b, readyTimeout: readyTimeout}
}

// Fetch 打开 url，尽力等待 readyState 为 complete，返回渲染后的 HTML
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	page, err := f.browser.Navigate(ctx, url)
	if err != nil {
		return "", err
	}

	browser.WaitReady(page, f.readyTimeout)

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	return html, nil
}

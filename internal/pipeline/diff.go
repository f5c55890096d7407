package pipeline

import (
	"context"
	"log/slog"

	"nobaidu/internal/scraper"
	"nobaidu/internal/store"
)

// Diff lists result URLs the first engine returns and the second does not.
type Diff struct {
	Bing   scraper.Searcher
	Baidu  scraper.Searcher
	Logger *slog.Logger
}

// Run searches both engines and returns Bing's URLs missing from Baidu's
// results, in Bing's order.
func (d *Diff) Run(ctx context.Context, query string) ([]store.Finding, error) {
	baiduURLs := search(ctx, d.Baidu, query, d.Logger)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bingURLs := search(ctx, d.Bing, query, d.Logger)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	indexed := make(map[string]struct{}, len(baiduURLs))
	for _, u := range baiduURLs {
		indexed[u] = struct{}{}
	}

	var findings []store.Finding
	for _, u := range bingURLs {
		if _, ok := indexed[u]; ok {
			continue
		}
		findings = append(findings, store.Finding{URL: u})
	}
	return findings, nil
}

// Package mock provides function-field fakes of the stage interfaces.
package mock

import (
	"context"

	"nobaidu/internal/scraper"
)

var (
	_ scraper.Searcher    = (*Searcher)(nil)
	_ scraper.LinkChecker = (*LinkChecker)(nil)
	_ scraper.PageFetcher = (*PageFetcher)(nil)
	_ scraper.Indexer     = (*Indexer)(nil)
)

// Searcher is a mock implementation of scraper.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string) ([]string, error)
}

func (s *Searcher) Search(ctx context.Context, query string) ([]string, error) {
	return s.SearchFn(ctx, query)
}

// LinkChecker is a mock implementation of scraper.LinkChecker.
type LinkChecker struct {
	UnindexedFn func(ctx context.Context, url string) (bool, error)
}

func (c *LinkChecker) Unindexed(ctx context.Context, url string) (bool, error) {
	return c.UnindexedFn(ctx, url)
}

// PageFetcher is a mock implementation of scraper.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

// Indexer is a mock implementation of scraper.Indexer.
type Indexer struct {
	IndexedFn func(ctx context.Context, query, probe string) (bool, error)
}

func (i *Indexer) Indexed(ctx context.Context, query, probe string) (bool, error) {
	return i.IndexedFn(ctx, query, probe)
}

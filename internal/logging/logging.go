// Package logging wraps the stage interfaces with slog instrumentation.
package logging

import (
	"context"
	"log/slog"
	"time"

	"nobaidu/internal/scraper"
)

var (
	_ scraper.Searcher    = (*Searcher)(nil)
	_ scraper.LinkChecker = (*LinkChecker)(nil)
	_ scraper.PageFetcher = (*PageFetcher)(nil)
	_ scraper.Indexer     = (*Indexer)(nil)
)

// Searcher logs every search with its result count.
type Searcher struct {
	next   scraper.Searcher
	engine string
	logger *slog.Logger
}

// NewSearcher creates a new Searcher.
func NewSearcher(next scraper.Searcher, engine string, logger *slog.Logger) *Searcher {
	return &Searcher{next: next, engine: engine, logger: logger}
}

func (s *Searcher) Search(ctx context.Context, query string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"engine", s.engine,
			"query", query,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}

// LinkChecker logs every link lookup.
type LinkChecker struct {
	next   scraper.LinkChecker
	logger *slog.Logger
}

// NewLinkChecker creates a new LinkChecker.
func NewLinkChecker(next scraper.LinkChecker, logger *slog.Logger) *LinkChecker {
	return &LinkChecker{next: next, logger: logger}
}

func (c *LinkChecker) Unindexed(ctx context.Context, url string) (unindexed bool, err error) {
	defer func(begin time.Time) {
		c.logger.Info("link check",
			"url", url,
			"unindexed", unindexed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Unindexed(ctx, url)
}

// PageFetcher logs every fetch with the page size.
type PageFetcher struct {
	next   scraper.PageFetcher
	logger *slog.Logger
}

// NewPageFetcher creates a new PageFetcher.
func NewPageFetcher(next scraper.PageFetcher, logger *slog.Logger) *PageFetcher {
	return &PageFetcher{next: next, logger: logger}
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Indexer logs every cross-check query at debug level.
type Indexer struct {
	next   scraper.Indexer
	logger *slog.Logger
}

// NewIndexer creates a new Indexer.
func NewIndexer(next scraper.Indexer, logger *slog.Logger) *Indexer {
	return &Indexer{next: next, logger: logger}
}

func (i *Indexer) Indexed(ctx context.Context, query, probe string) (indexed bool, err error) {
	defer func(begin time.Time) {
		i.logger.Debug("cross-check",
			"query", query,
			"probe", probe,
			"indexed", indexed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Indexed(ctx, query, probe)
}

// StateFunc returns a scraper.StateFunc that logs transitions at debug level.
func StateFunc(logger *slog.Logger) scraper.StateFunc {
	return func(query string, state scraper.CheckState) {
		logger.Debug("cross-check state", "query", query, "state", string(state))
	}
}

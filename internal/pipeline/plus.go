package pipeline

import (
	"context"
	"log/slog"

	"nobaidu/internal/extract"
	"nobaidu/internal/filter"
	"nobaidu/internal/scraper"
	"nobaidu/internal/store"

	"golang.org/x/time/rate"
)

// Retainer keeps the paragraphs that are not indexed.
type Retainer interface {
	Retain(ctx context.Context, paragraphs []string) ([]string, error)
}

// Plus finds paragraphs on Bing results that Baidu has not indexed.
type Plus struct {
	Searcher scraper.Searcher    // query stage
	Links    scraper.LinkChecker // per-link lookup on the second engine
	Fetcher  scraper.PageFetcher // extraction stage
	Filter   *filter.Paragraphs  // filter stage
	Checker  Retainer            // cross-check stage
	Limiter  *rate.Limiter       // pacing between links, may be nil
	Logger   *slog.Logger
}

// Run executes the four stages for query. Per-link failures are logged and
// skipped. Run returns early only when ctx is done, with the findings
// gathered so far and ctx.Err().
func (p *Plus) Run(ctx context.Context, query string) ([]store.Finding, error) {
	urls := search(ctx, p.Searcher, query, p.Logger)
	p.Logger.Info("query stage done", "results", len(urls))

	var findings []store.Finding
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return findings, err
		}
		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx); err != nil {
				return findings, err
			}
		}

		p.Logger.Info("processing link", "index", i+1, "total", len(urls), "url", url)

		unindexed, err := p.Links.Unindexed(ctx, url)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return findings, ctxErr
			}
			p.Logger.Warn("link check failed", "url", url, "err", err)
			unindexed = false
		}

		paragraphs := p.paragraphs(ctx, url)
		if len(paragraphs) == 0 {
			if err := ctx.Err(); err != nil {
				return findings, err
			}
			continue
		}

		if unindexed {
			p.Logger.Info("link not indexed, keeping filtered paragraphs", "url", url, "count", len(paragraphs))
			findings = appendFindings(findings, url, paragraphs, false)
			continue
		}

		kept, err := p.Checker.Retain(ctx, paragraphs)
		findings = appendFindings(findings, url, kept, true)
		if err != nil {
			return findings, err
		}
		p.Logger.Info("cross-check done", "url", url, "checked", len(paragraphs), "kept", len(kept))
	}
	return findings, nil
}

// paragraphs runs the extraction and filter stages for one link. Failures
// yield no paragraphs.
func (p *Plus) paragraphs(ctx context.Context, url string) []string {
	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		p.Logger.Warn("extraction failed", "url", url, "err", err)
		return nil
	}

	texts, err := extract.Paragraphs(html)
	if err != nil {
		p.Logger.Warn("extraction failed", "url", url, "err", err)
		return nil
	}
	return p.Filter.Apply(texts)
}

func appendFindings(findings []store.Finding, url string, texts []string, linkIndexed bool) []store.Finding {
	for _, t := range texts {
		findings = append(findings, store.Finding{URL: url, Text: t, LinkIndexed: linkIndexed})
	}
	return findings
}

// search runs the query stage: any failure is logged and yields no results.
func search(ctx context.Context, s scraper.Searcher, query string, logger *slog.Logger) []string {
	urls, err := s.Search(ctx, query)
	if err != nil {
		logger.Warn("search failed", "query", query, "err", err)
		return nil
	}
	return urls
}

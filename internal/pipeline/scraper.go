package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nobaidu/internal/browser"
	"nobaidu/internal/crosscheck"
	"nobaidu/internal/fetcher"
	"nobaidu/internal/filter"
	"nobaidu/internal/logging"
	"nobaidu/internal/scraper"
	"nobaidu/internal/sites/baidu"
	"nobaidu/internal/sites/bing"
	"nobaidu/internal/store"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Workflow names.
const (
	ModePlus = "plus"
	ModeDiff = "diff"
)

func init() {
	scraper.Register(&PlusScraper{})
	scraper.Register(&DiffScraper{})
}

// PlusScraper runs the Bing -> extract -> filter -> Baidu cross-check workflow.
type PlusScraper struct{}

func (s *PlusScraper) Name() string { return ModePlus }

func (s *PlusScraper) Scrape(ctx context.Context, query string, opts scraper.Options) (scraper.Content, error) {
	return scrape(ctx, ModePlus, query, opts, func(b *browser.Browser, logger *slog.Logger) runner {
		domains := &filter.Domains{Deny: opts.DenyDomains}
		bc := baiduClient(b, domains, opts)

		var limiter *rate.Limiter
		if opts.Delay > 0 {
			limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
		}

		return &Plus{
			Searcher: logging.NewSearcher(bing.NewClient(b, domains, opts.ReadyTimeout, opts.ResultsTimeout), "bing", logger),
			Links:    logging.NewLinkChecker(bc, logger),
			Fetcher:  logging.NewPageFetcher(fetcher.NewFetcher(b, opts.ReadyTimeout), logger),
			Filter:   &filter.Paragraphs{MinLength: opts.MinLength, Keywords: opts.Keywords},
			Checker:  crosscheck.NewChecker(logging.NewIndexer(bc, logger), logger, opts.OnState),
			Limiter:  limiter,
			Logger:   logger,
		}
	})
}

// DiffScraper lists Bing results absent from Baidu's results.
type DiffScraper struct{}

func (s *DiffScraper) Name() string { return ModeDiff }

func (s *DiffScraper) Scrape(ctx context.Context, query string, opts scraper.Options) (scraper.Content, error) {
	return scrape(ctx, ModeDiff, query, opts, func(b *browser.Browser, logger *slog.Logger) runner {
		domains := &filter.Domains{Deny: opts.DenyDomains}
		return &Diff{
			Bing:   logging.NewSearcher(bing.NewClient(b, domains, opts.ReadyTimeout, opts.ResultsTimeout), "bing", logger),
			Baidu:  logging.NewSearcher(baiduClient(b, domains, opts), "baidu", logger),
			Logger: logger,
		}
	})
}

type runner interface {
	Run(ctx context.Context, query string) ([]store.Finding, error)
}

// scrape owns the browser session for one run: it is opened here, shared by
// every stage and closed on every exit path. On cancellation the partial
// report is returned along with the error.
func scrape(ctx context.Context, mode, query string, opts scraper.Options, build func(*browser.Browser, *slog.Logger) runner) (scraper.Content, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	b, err := browser.New(browser.Config{
		ProxyURL:        opts.ProxyURL,
		Headless:        !opts.ShowUI,
		PageLoadTimeout: opts.PageLoadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}
	defer b.Close()

	id := uuid.NewString()
	started := time.Now()
	logger = logger.With("run", id, "mode", mode)

	findings, err := build(b, logger).Run(ctx, query)
	report := NewReport(id, query, mode, started, findings)
	if err != nil {
		return report, fmt.Errorf("run interrupted: %w", err)
	}
	return report, nil
}

func baiduClient(b *browser.Browser, domains *filter.Domains, opts scraper.Options) *baidu.Client {
	return baidu.NewClient(b, domains, baidu.Config{
		ReadyTimeout:   opts.ReadyTimeout,
		ResultsTimeout: opts.ResultsTimeout,
		VerifyTimeout:  opts.VerifyTimeout,
		VerifyPoll:     opts.VerifyPoll,
		OnState:        opts.OnState,
		OnVerification: opts.OnVerification,
	})
}

package baidu

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"nobaidu/internal/browser"
	"nobaidu/internal/filter"
	"nobaidu/internal/interstitial"
	"nobaidu/internal/scraper"

	"github.com/go-rod/rod"
)

// Domain is Baidu's registrable domain.
const Domain = "baidu.com"

const (
	resultsContainer = "#content_left"
	noResults        = "div.nors"
)

var (
	_ scraper.Searcher    = (*Client)(nil)
	_ scraper.LinkChecker = (*Client)(nil)
	_ scraper.Indexer     = (*Client)(nil)
)

// SearchURL builds the results page address for query.
func SearchURL(query string) string {
	return "https://www.baidu.com/s?wd=" + url.QueryEscape(query)
}

// Config tunes the Baidu client.
type Config struct {
	ReadyTimeout   time.Duration
	ResultsTimeout time.Duration
	VerifyTimeout  time.Duration
	VerifyPoll     time.Duration

	// OnState observes cross-check progress. May be nil.
	OnState scraper.StateFunc
	// OnVerification is told when a verification page blocks the session.
	OnVerification func(url string)
}

// Client is a browser client for Baidu search.
type Client struct {
	browser *browser.Browser
	domains *filter.Domains
	cfg     Config
}

// NewClient creates a new Client instance.
func NewClient(b *browser.Browser, domains *filter.Domains, cfg Config) *Client {
	return &Client{browser: b, domains: domains, cfg: cfg}
}

// Search returns the result URLs Baidu lists for query.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	page, err := c.open(ctx, query)
	if err != nil {
		return nil, err
	}

	if _, err := page.Timeout(c.cfg.ResultsTimeout).Element(resultsContainer); err != nil {
		return nil, fmt.Errorf("failed to wait for results: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read results page: %w", err)
	}
	return ParseResults(html, c.domains)
}

// Unindexed searches for link itself and reports whether Baidu answers
// with its no-results page.
func (c *Client) Unindexed(ctx context.Context, link string) (bool, error) {
	page, err := c.open(ctx, link)
	if err != nil {
		return false, err
	}

	html, err := page.HTML()
	if err != nil {
		return false, fmt.Errorf("failed to read results page: %w", err)
	}
	return HasNoResults(html)
}

// Indexed searches for query and reports whether the raw results page
// contains probe.
func (c *Client) Indexed(ctx context.Context, query, probe string) (bool, error) {
	c.cfg.OnState.Emit(query, scraper.StateQuerying)

	page, err := c.open(ctx, query)
	if err != nil {
		return false, err
	}

	c.cfg.OnState.Emit(query, scraper.StateContentCheck)
	html, err := page.HTML()
	if err != nil {
		return false, fmt.Errorf("failed to read results page: %w", err)
	}
	return strings.Contains(html, probe), nil
}

// open navigates to the results page for query and waits out a
// verification page if one is served.
func (c *Client) open(ctx context.Context, query string) (*rod.Page, error) {
	page, err := c.browser.Navigate(ctx, SearchURL(query))
	if err != nil {
		return nil, err
	}
	browser.WaitReady(page, c.cfg.ReadyTimeout)

	blocked, err := interstitial.Await(ctx, c.browser, interstitial.Options{
		Pattern:  interstitial.BaiduVerification,
		Interval: c.cfg.VerifyPoll,
		Timeout:  c.cfg.VerifyTimeout,
		OnAwait: func(url string) {
			c.cfg.OnState.Emit(query, scraper.StateAwaitingVerification)
			if c.cfg.OnVerification != nil {
				c.cfg.OnVerification(url)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to pass verification: %w", err)
	}
	if blocked {
		c.cfg.OnState.Emit(query, scraper.StateQuerying)
		browser.WaitReady(page, c.cfg.ReadyTimeout)
	}
	return page, nil
}

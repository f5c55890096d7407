package bing

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"nobaidu/internal/browser"
	"nobaidu/internal/filter"
	"nobaidu/internal/scraper"

	"github.com/PuerkitoBio/goquery"
)

// Domain is Bing's registrable domain; its own links are never results.
const Domain = "bing.com"

// ResultSelector matches the title link of every organic result.
const ResultSelector = "ol#b_results li h2 a"

var _ scraper.Searcher = (*Client)(nil)

// SearchURL builds the results page address for query.
func SearchURL(query string) string {
	return "https://cn.bing.com/search?q=" + url.QueryEscape(query) + "&PC=U316&FORM=CHROMN"
}

// Client is a browser client for Bing search.
type Client struct {
	browser        *browser.Browser
	domains        *filter.Domains
	readyTimeout   time.Duration
	resultsTimeout time.Duration
}

// NewClient creates a new Client instance.
func NewClient(b *browser.Browser, domains *filter.Domains, readyTimeout, resultsTimeout time.Duration) *Client {
	return &Client{
		browser:        b,
		domains:        domains,
		readyTimeout:   readyTimeout,
		resultsTimeout: resultsTimeout,
	}
}

// Search loads the results page for query, waits for the result list and
// returns the kept result URLs.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	page, err := c.browser.Navigate(ctx, SearchURL(query))
	if err != nil {
		return nil, err
	}
	browser.WaitReady(page, c.readyTimeout)

	if _, err := page.Timeout(c.resultsTimeout).Element(ResultSelector); err != nil {
		return nil, fmt.Errorf("failed to wait for results: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read results page: %w", err)
	}

	return ParseResults(html, c.domains)
}

// ParseResults collects result hrefs from a rendered results page,
// deduplicated in first-seen order. A page without results yields an empty
// slice.
func ParseResults(html string, domains *filter.Domains) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}

	seen := make(map[string]struct{})
	results := []string{}
	doc.Find(ResultSelector).Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || !domains.Keep(href, Domain) {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}
		results = append(results, href)
	})
	return results, nil
}

package baidu

import (
	"fmt"
	"strings"

	"nobaidu/internal/filter"

	"github.com/PuerkitoBio/goquery"
)

// ParseResults collects result links from a rendered results page. The
// result container's mu attribute carries the target URL; the anchor href
// is a redirect and is used only when mu is missing.
func ParseResults(html string, domains *filter.Domains) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}

	seen := make(map[string]struct{})
	results := []string{}
	doc.Find(resultsContainer + " h3 a").Each(func(_ int, a *goquery.Selection) {
		link := strings.TrimSpace(a.Closest("[mu]").AttrOr("mu", ""))
		if link == "" {
			link = strings.TrimSpace(a.AttrOr("href", ""))
		}
		if link == "" || !domains.Keep(link, Domain) {
			return
		}
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		results = append(results, link)
	})
	return results, nil
}

// HasNoResults reports whether the page is Baidu's empty results page.
func HasNoResults(html string) (bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false, fmt.Errorf("failed to parse results: %w", err)
	}
	return doc.Find(noResults).Length() > 0, nil
}

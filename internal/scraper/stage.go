package scraper

import "context"

// Searcher runs a query against an engine and returns result URLs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// LinkChecker reports whether an engine has no results for a URL.
type LinkChecker interface {
	Unindexed(ctx context.Context, url string) (bool, error)
}

// PageFetcher returns the rendered HTML of a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Indexer reports whether searching for query yields a results page
// whose source contains probe.
type Indexer interface {
	Indexed(ctx context.Context, query, probe string) (bool, error)
}

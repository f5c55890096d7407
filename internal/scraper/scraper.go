package scraper

import (
	"context"
	"log/slog"
	"time"
)

// Scraper runs one workflow for a query and returns its renderable result.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context, query string, opts Options) (Content, error)
}

// Content is a workflow result that can be rendered in every output format.
type Content interface {
	ToHTML() (string, error)
	ToText() (string, error)
	ToMarkdown() (string, error)
	ToJSON() ([]byte, error)
	ToCSV() (string, error)
}

// Options carries everything a workflow needs to build its browser session
// and stage adapters.
type Options struct {
	ShowUI          bool
	ProxyURL        string // --proxy flag or NOBAIDU_PROXY env var
	PageLoadTimeout time.Duration
	ReadyTimeout    time.Duration
	ResultsTimeout  time.Duration
	VerifyTimeout   time.Duration
	VerifyPoll      time.Duration
	Delay           time.Duration
	DenyDomains     []string
	Keywords        []string
	MinLength       int
	OnState         StateFunc
	OnVerification  func(url string)
	Logger          *slog.Logger
}

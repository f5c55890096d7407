// Package interstitial waits for a human to clear a verification page that
// a search engine serves instead of results.
package interstitial

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// BaiduVerification is the host Baidu redirects to for its security check.
const BaiduVerification = "wappass.baidu.com"

// ErrTimeout is returned when the verification page is still shown after
// Options.Timeout.
var ErrTimeout = errors.New("verification not completed in time")

// URLSource reports the current page address.
type URLSource interface {
	CurrentURL(ctx context.Context) (string, error)
}

// Options configure Await.
type Options struct {
	Pattern  string        // substring identifying the verification page
	Interval time.Duration // poll interval, default 1s
	Timeout  time.Duration // 0 means wait until ctx is done

	// OnAwait is called once, before polling starts, with the blocked URL.
	OnAwait func(url string)
}

// Detected reports whether url is the verification page.
func (o Options) Detected(url string) bool {
	return o.Pattern != "" && strings.Contains(url, o.Pattern)
}

// Await returns immediately with false when the current page is not the
// verification page. Otherwise it calls OnAwait and polls until the
// address changes, returning true. It fails with ErrTimeout or ctx.Err().
func Await(ctx context.Context, src URLSource, opts Options) (bool, error) {
	url, err := src.CurrentURL(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read current url: %w", err)
	}
	if !opts.Detected(url) {
		return false, nil
	}

	if opts.OnAwait != nil {
		opts.OnAwait(url)
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = time.Second
	}

	var deadline <-chan time.Time
	if opts.Timeout > 0 {
		timer := time.NewTimer(opts.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case <-deadline:
			return true, ErrTimeout
		case <-ticker.C:
		}

		url, err := src.CurrentURL(ctx)
		if err != nil {
			// The page may be mid-navigation while the challenge resolves.
			continue
		}
		if !opts.Detected(url) {
			return true, nil
		}
	}
}

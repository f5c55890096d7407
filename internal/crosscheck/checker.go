package crosscheck

import (
	"context"
	"log/slog"

	"nobaidu/internal/scraper"
)

// Checker keeps the paragraphs the indexer cannot find.
type Checker struct {
	indexer scraper.Indexer
	logger  *slog.Logger
	onState scraper.StateFunc
}

// NewChecker creates a Checker. onState may be nil.
func NewChecker(indexer scraper.Indexer, logger *slog.Logger, onState scraper.StateFunc) *Checker {
	return &Checker{indexer: indexer, logger: logger, onState: onState}
}

// Retain returns the paragraphs that are not indexed, in order. A paragraph
// whose fragments are empty, or whose check fails, is kept. Retain stops
// early only when ctx is done, returning what it kept so far and ctx.Err().
func (c *Checker) Retain(ctx context.Context, paragraphs []string) ([]string, error) {
	var kept []string
	for _, p := range paragraphs {
		if err := ctx.Err(); err != nil {
			return kept, err
		}

		query, probe := Split(p)
		if query == "" || probe == "" {
			kept = append(kept, p)
			continue
		}

		indexed, err := c.indexer.Indexed(ctx, query, probe)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return kept, ctxErr
			}
			c.logger.Warn("cross-check failed, keeping paragraph", "query", query, "err", err)
			kept = append(kept, p)
			continue
		}

		if indexed {
			c.onState.Emit(query, scraper.StateIndexed)
			continue
		}
		c.onState.Emit(query, scraper.StateNotIndexed)
		kept = append(kept, p)
	}
	return kept, nil
}

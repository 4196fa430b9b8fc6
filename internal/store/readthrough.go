package store

import (
	"context"

	"courtside/internal/api"
)

// SummaryFetcher is the slice of the API client the read-through cache needs.
type SummaryFetcher interface {
	Summary(ctx context.Context, gameID string) (*api.GameSummary, error)
}

// Recaps serves recaps through the cache: hits come from the database,
// misses go to the service and are stored on the way back. A nil DB
// disables caching entirely.
type Recaps struct {
	fetcher SummaryFetcher
	db      *DB
}

func NewRecaps(fetcher SummaryFetcher, db *DB) *Recaps {
	return &Recaps{fetcher: fetcher, db: db}
}

// Get returns the recap for a game and whether it came from the cache.
// Cache read/write failures fall through to the service; a miss with the
// service down is still an error.
func (r *Recaps) Get(ctx context.Context, gameID string) (*api.GameSummary, bool, error) {
	if r.db != nil {
		if s, ok, err := r.db.Get(gameID); err == nil && ok {
			return s, true, nil
		}
	}
	s, err := r.fetcher.Summary(ctx, gameID)
	if err != nil {
		return nil, false, err
	}
	if r.db != nil {
		_ = r.db.Put(s)
	}
	return s, false, nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned by Find when no line carries the details id.
var ErrNotFound = errors.New("item not found")

// Searcher runs name searches across one or all item types.
type Searcher struct {
	fetcher        Fetcher
	maxConcurrency int
	logger         *zap.Logger
}

// NewSearcher returns a searcher. maxConcurrency bounds the fan-out when
// searching every type; zero or less means one request at a time.
func NewSearcher(fetcher Fetcher, maxConcurrency int, logger *zap.Logger) *Searcher {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{fetcher: fetcher, maxConcurrency: maxConcurrency, logger: logger}
}

// Search returns the items whose name contains query, case-insensitively.
// A blank query returns nothing without contacting the provider. When
// itemType is ItemTypeAll every type is fetched concurrently; types that
// fail are skipped and results keep ItemTypes order. An error is returned
// only when every requested type failed.
func (s *Searcher) Search(ctx context.Context, query, itemType, league string) ([]Item, error) {
	return s.SearchWithProgress(ctx, query, itemType, league, nil)
}

// TypeDone is called once per fetched item type, possibly concurrently,
// with the number of matches or the fetch error.
type TypeDone func(itemType string, matches int, err error)

// SearchWithProgress is Search with a per-type callback.
func (s *Searcher) SearchWithProgress(ctx context.Context, query, itemType, league string, done TypeDone) ([]Item, error) {
	if done == nil {
		done = func(string, int, error) {}
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []Item{}, nil
	}

	types := TypesFor(itemType)

	perType := make([][]Item, len(types))
	failed := make([]error, len(types))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, t := range types {
		g.Go(func() error {
			items, err := s.fetcher.Items(gctx, league, t)
			if err != nil {
				s.logger.Warn("item overview failed, skipping type",
					zap.String("item_type", t),
					zap.String("league", league),
					zap.Error(err),
				)
				failed[i] = err
				done(t, 0, err)
				return nil
			}
			perType[i] = MatchName(items, query)
			done(t, len(perType[i]), nil)
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := []Item{}
	failures := 0
	for i := range types {
		if failed[i] != nil {
			failures++
			continue
		}
		results = append(results, perType[i]...)
	}
	if failures == len(types) {
		return nil, fmt.Errorf("searching %d item types: %w", len(types), errors.Join(failed...))
	}
	return results, nil
}

// Find returns the line with the given details id.
func (s *Searcher) Find(ctx context.Context, detailsID, itemType, league string) (Item, error) {
	items, err := s.fetcher.Items(ctx, league, itemType)
	if err != nil {
		return Item{}, err
	}
	for _, it := range items {
		if it.DetailsID == detailsID {
			return it, nil
		}
	}
	return Item{}, ErrNotFound
}

// TypesFor expands ItemTypeAll (or "") into every item type.
func TypesFor(itemType string) []string {
	if itemType == ItemTypeAll || itemType == "" {
		return ItemTypes
	}
	return []string{itemType}
}

// MatchName keeps the items whose name contains query, case-insensitively.
func MatchName(items []Item, query string) []Item {
	q := strings.ToLower(query)
	var out []Item
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	return out
}

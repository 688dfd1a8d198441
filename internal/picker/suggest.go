package picker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/poe2genie/internal/build"
	"github.com/ziadkadry99/poe2genie/internal/catalog"
)

// Suggestions is the candidate list for one slot in one mode. Exactly one
// of Uniques and Bases is populated.
type Suggestions struct {
	Slot    build.Slot     `json:"slot"`
	Mode    Mode           `json:"mode"`
	Uniques []catalog.Item `json:"uniques,omitempty"`
	Bases   []BaseItem     `json:"bases,omitempty"`
}

// Suggester produces per-slot candidates. Unique candidates come from the
// price catalog, fetched once per call.
type Suggester struct {
	fetcher catalog.Fetcher
	league  string
	bases   []BaseItem
	logger  *zap.Logger
}

// NewSuggester returns a suggester reading uniques for league.
func NewSuggester(fetcher catalog.Fetcher, league string, logger *zap.Logger) *Suggester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Suggester{fetcher: fetcher, league: league, bases: BaseItems, logger: logger}
}

// Suggest returns the filtered candidates for slot. A failed catalog fetch
// yields an empty unique list; so does a context cancelled before the fetch
// returned.
func (s *Suggester) Suggest(ctx context.Context, slot build.Slot, mode Mode, query string) (Suggestions, error) {
	spec, ok := SpecFor(slot)
	if !ok {
		return Suggestions{}, fmt.Errorf("unknown slot %q", slot)
	}

	out := Suggestions{Slot: slot, Mode: mode}
	switch mode {
	case ModeBase:
		out.Bases = FilterBases(s.bases, spec.Category, query)
	case ModeUnique:
		out.Uniques = FilterUniques(s.candidates(ctx, spec), query)
	default:
		return Suggestions{}, fmt.Errorf("unknown picker mode %q", mode)
	}
	return out, nil
}

func (s *Suggester) candidates(ctx context.Context, spec SlotSpec) []catalog.Item {
	items, err := s.fetcher.Items(ctx, s.league, spec.ItemType)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		s.logger.Warn("unique candidates unavailable",
			zap.String("slot", string(spec.Slot)),
			zap.String("item_type", spec.ItemType),
			zap.Error(err),
		)
		return nil
	}
	return items
}

// Prefetch loads the unique candidates of several slots concurrently. Slots
// sharing an item type share one fetch. A slot whose fetch failed maps to an
// empty list.
func (s *Suggester) Prefetch(ctx context.Context, slots []build.Slot) map[build.Slot][]catalog.Item {
	byType := make(map[string][]catalog.Item)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	seen := make(map[string]bool)
	for _, slot := range slots {
		spec, ok := SpecFor(slot)
		if !ok || seen[spec.ItemType] {
			continue
		}
		seen[spec.ItemType] = true
		g.Go(func() error {
			items := s.candidates(gctx, spec)
			mu.Lock()
			byType[spec.ItemType] = items
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	out := make(map[build.Slot][]catalog.Item, len(slots))
	for _, slot := range slots {
		spec, ok := SpecFor(slot)
		if !ok {
			continue
		}
		items := byType[spec.ItemType]
		if items == nil {
			items = []catalog.Item{}
		}
		out[slot] = items
	}
	return out
}

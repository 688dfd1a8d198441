package picker

import (
	"strings"

	"github.com/ziadkadry99/poe2genie/internal/catalog"
)

// MaxResults caps every suggestion list.
const MaxResults = 10

// FilterUniques returns up to MaxResults items whose name or base type
// contains query, case-insensitively. An empty query matches everything.
func FilterUniques(items []catalog.Item, query string) []catalog.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []catalog.Item{}
	for _, it := range items {
		if len(out) == MaxResults {
			break
		}
		if q == "" ||
			strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.BaseType), q) {
			out = append(out, it)
		}
	}
	return out
}

// FilterBases returns up to MaxResults bases that fit category and whose
// name contains query, case-insensitively.
func FilterBases(bases []BaseItem, category Category, query string) []BaseItem {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []BaseItem{}
	for _, b := range bases {
		if len(out) == MaxResults {
			break
		}
		if !category.Accepts(b.Category) {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(b.Name), q) {
			out = append(out, b)
		}
	}
	return out
}

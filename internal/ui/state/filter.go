package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter narrows the list to rows matching query. While a filter is active
// the cursor sits on the best match; clearing it returns the cursor to the
// row it was on before filtering started.
func (l *List) SetFilter(query string) {
	was := strings.TrimSpace(l.Filter) != ""
	now := strings.TrimSpace(query) != ""
	if now && !was {
		l.LastCursor = l.Cursor
	}
	l.Filter = query
	l.applyFilter()
	l.ViewportOffset = 0
	if now {
		l.Cursor = max(BestMatchIndex(l.Items, query), 0)
		return
	}
	if was {
		l.Cursor = clamp(l.LastCursor, len(l.Items))
		l.LastCursor = -1
	}
}

func (l *List) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	l.Cursor = clamp(l.Cursor, len(l.Items))
	if l.ViewportOffset >= len(l.Items) {
		l.ViewportOffset = 0
	}
}

// FilterItems returns the items whose label fuzzy-matches query, or whose id
// equals it, in their original order.
func FilterItems(items []Item, query string) []Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return CloneItems(items)
	}
	keep := make([]bool, len(items))
	for _, rank := range fuzzy.RankFindNormalizedFold(query, labels(items)) {
		keep[rank.OriginalIndex] = true
	}
	filtered := make([]Item, 0, len(items))
	for i, item := range items {
		if keep[i] || strings.EqualFold(item.ID, query) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex picks the row for query: an exact id (a leading % is
// ignored) or label, then a label prefix, then the closest fuzzy match.
// It returns -1 for an empty list.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return 0
	}
	id := strings.TrimPrefix(query, "%")
	for i, item := range items {
		if item.ID == id || strings.EqualFold(item.Label, query) {
			return i
		}
	}
	lower := strings.ToLower(query)
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	best, bestDistance := -1, 0
	for _, rank := range fuzzy.RankFindNormalizedFold(query, labels(items)) {
		if best < 0 || rank.Distance < bestDistance ||
			(rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best, bestDistance = rank.OriginalIndex, rank.Distance
		}
	}
	return max(best, 0)
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

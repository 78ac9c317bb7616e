package stats

import (
	"sort"

	"github.com/verte-zerg/codetype/internal/model"
)

// TopMistyped returns up to n characters with the most incorrect keystrokes.
// Characters without mistakes are never returned.
func TopMistyped(aggs []model.CharAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.CharAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			items = append(items, agg)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Incorrect == items[j].Incorrect {
			return items[i].Char < items[j].Char
		}
		return items[i].Incorrect > items[j].Incorrect
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for _, item := range items[:n] {
		out = append(out, item.Char)
	}
	return out
}

// ABOUTME: Orders scored coffees by composite score and truncates to a limit.
// ABOUTME: Deterministic for identical inputs; never mutates the input slice.
package recommend

import "sort"

// Rank returns scored coffees sorted by score, highest first, truncated to limit.
// A limit of zero or less returns every candidate. Equal scores are ordered by
// coffee ID so the result does not depend on the index's return order.
func Rank(scored []ScoredCoffee, limit int) []ScoredCoffee {
	sorted := make([]ScoredCoffee, len(scored))
	copy(sorted, scored)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Coffee.ID.String() < sorted[j].Coffee.ID.String()
	})

	if limit <= 0 || limit > len(sorted) {
		limit = len(sorted)
	}
	return sorted[:limit]
}

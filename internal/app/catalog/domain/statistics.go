package domain

import "sort"

// CategoryStatistics is one row of the per-category rollup.
type CategoryStatistics struct {
	Category       Category
	Count          int64
	AveragePrice   float64
	AvailableCount int64
}

// SortCategoryStatistics orders rollups by count descending, then category
// name so equal counts come back in a stable order.
func SortCategoryStatistics(stats []CategoryStatistics) {
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})
}

// TotalCount sums the entry counts of all categories.
func TotalCount(stats []CategoryStatistics) int64 {
	var total int64
	for _, s := range stats {
		total += s.Count
	}
	return total
}

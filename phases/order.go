package phases

import "sort"

// SortPeriods orders phase keys chronologically by their (year, season
// index) composite key. Keys that fail to parse sort first so they surface
// immediately in output rather than hiding mid-list.
func SortPeriods(periods []string, ascending bool) {
	sort.SliceStable(periods, func(i, j int) bool {
		yi, si, oki := periodSortKey(periods[i])
		yj, sj, okj := periodSortKey(periods[j])
		if oki != okj {
			return !oki
		}
		less := yi < yj || (yi == yj && si < sj)
		if ascending {
			return less
		}
		return yj < yi || (yj == yi && sj < si)
	})
}

// reverseStats flips a characterized phase list in place. Cover assignment
// runs oldest-first; display is newest-first.
func reverseStats[T any](list []T) {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
}

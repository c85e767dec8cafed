package core

import (
	"slices"
	"time"
)

// MedianDate returns the median of dates. For an even count it is the
// midpoint between the two middle dates. The input is not modified.
func MedianDate(dates []time.Time) (time.Time, error) {
	if len(dates) == 0 {
		return time.Time{}, ErrEmptyInput
	}

	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}

	lo, hi := sorted[mid-1], sorted[mid]

	return lo.Add(hi.Sub(lo) / 2), nil
}

// MedianAge returns the age in whole days of the median date as of asOf,
// or nil when there are no dates.
func MedianAge(dates []time.Time, asOf time.Time) *int {
	median, err := MedianDate(dates)
	if err != nil {
		return nil
	}

	age := int(asOf.Sub(median) / (24 * time.Hour))

	return &age
}

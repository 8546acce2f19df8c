package domain

import "sort"

// TimelineEntry is one timestamped skill cast parsed from a timeline script.
type TimelineEntry struct {
	Time  float64
	Label string
}

// SortEntries orders entries by ascending time. Entries sharing a time keep their input order.
func SortEntries(entries []TimelineEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time < entries[j].Time
	})
}

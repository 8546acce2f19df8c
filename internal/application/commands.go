package application

import "time"

// UseCommand spends a charge on the timeline row at Index (0-based). Offset is the raw text the
// user typed; anything that is not a number counts as 0.
type UseCommand struct {
	Index  int
	Offset string
}

type UseResult struct {
	Applied bool
	Time    float64
	Label   string
	// Charges is the pool level at Time before the use was attempted.
	Charges int
}

type LoadResult struct {
	Path     string
	Entries  int
	LoadedAt time.Time
}

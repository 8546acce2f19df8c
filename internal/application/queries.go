package application

import (
	"time"

	"github.com/bnema/timeline-viewer/internal/domain"
)

// Row is the projection of one timeline entry evaluated at the entry's own time.
type Row struct {
	Index   int
	Entry   domain.TimelineEntry
	Charges int
	Full    bool
	// Regen is nil when the pool is full or nothing is regenerating.
	Regen *domain.Regeneration
}

type Snapshot struct {
	Path     string
	LoadedAt time.Time
	Pool     domain.PoolConfig
	Entries  int
	History  []domain.ConsumptionEvent
}

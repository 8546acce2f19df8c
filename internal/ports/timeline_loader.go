package ports

import (
	"context"

	"github.com/bnema/timeline-viewer/internal/domain"
)

type TimelineLoader interface {
	Load(ctx context.Context, path string) ([]domain.TimelineEntry, error)
}

package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/timeline-viewer/internal/domain"
	applog "github.com/bnema/timeline-viewer/internal/log"
	"github.com/bnema/timeline-viewer/internal/ports"
)

// Session owns the loaded timeline and the charge simulator for one viewer run.
// All methods hold a single mutex for their whole duration, so a Session can be
// shared between the UI loop and a file watcher.
type Session struct {
	loader ports.TimelineLoader
	clock  ports.Clock
	logger *slog.Logger

	mu       sync.Mutex
	sim      *domain.Simulator
	entries  []domain.TimelineEntry
	path     string
	loadedAt time.Time
}

func NewSession(loader ports.TimelineLoader, pool domain.PoolConfig, clock ports.Clock) *Session {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Session{
		loader: loader,
		clock:  clock,
		logger: applog.WithComponent("session"),
		sim:    domain.NewSimulator(pool),
	}
}

// Load replaces the timeline with the contents of path. On failure the previous
// timeline is kept. Recorded consumptions survive a reload.
func (s *Session) Load(ctx context.Context, path string) (LoadResult, error) {
	entries, err := s.loader.Load(ctx, path)
	if err != nil {
		s.logger.Warn("timeline load failed", slog.String("path", path), slog.Any("error", err))
		return LoadResult{}, fmt.Errorf("load timeline: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = entries
	s.path = path
	s.loadedAt = s.clock.Now()

	s.logger.Info("timeline loaded", slog.String("path", path), slog.Int("entries", len(entries)))

	return LoadResult{Path: path, Entries: len(entries), LoadedAt: s.loadedAt}, nil
}

func (s *Session) Entries() []domain.TimelineEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.TimelineEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

func (s *Session) Use(cmd UseCommand) (UseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return UseResult{}, domain.ErrNoTimeline
	}
	if cmd.Index < 0 || cmd.Index >= len(s.entries) {
		return UseResult{}, fmt.Errorf("%w: row %d of %d", domain.ErrEntryOutOfRange, cmd.Index+1, len(s.entries))
	}

	entry := s.entries[cmd.Index]
	return s.use(entry.Time, entry.Label, domain.ParseOffset(cmd.Offset)), nil
}

// Restore puts back consumptions recorded by an earlier session, as they were accepted then.
func (s *Session) Restore(events []domain.ConsumptionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sim.Restore(events)
	s.logger.Info("charges restored", slog.Int("uses", len(events)))
}

func (s *Session) use(baseTime float64, label string, offset float64) UseResult {
	actual := domain.ActualTime(baseTime, offset)

	result := UseResult{
		Time:    actual,
		Label:   label,
		Charges: s.sim.ChargesAt(actual),
	}
	result.Applied = s.sim.Use(baseTime, label, offset)

	attrs := []any{slog.Float64("time", actual), slog.String("label", label), slog.Int("charges", result.Charges)}
	if result.Applied {
		s.logger.Info("charge used", attrs...)
	} else {
		s.logger.Info("charge use rejected", attrs...)
	}

	return result
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sim.Reset()
	s.logger.Info("charges reset")
}

func (s *Session) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacity := s.sim.Config().Capacity
	rows := make([]Row, 0, len(s.entries))
	for i, entry := range s.entries {
		row := Row{
			Index:   i,
			Entry:   entry,
			Charges: s.sim.ChargesAt(entry.Time),
		}
		row.Full = row.Charges >= capacity
		if !row.Full {
			if regen, ok := s.sim.NextRegeneration(entry.Time); ok {
				row.Regen = &regen
			}
		}
		rows = append(rows, row)
	}

	return rows
}

func (s *Session) History() []domain.ConsumptionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sim.Events()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Path:     s.path,
		LoadedAt: s.loadedAt,
		Pool:     s.sim.Config(),
		Entries:  len(s.entries),
		History:  s.sim.Events(),
	}
}

package world

import (
	"context"
	"log/slog"
	"time"
)

const DefaultSaveInterval = time.Minute

// Saver periodically snapshots the world through the grid manager. A failed
// save is logged and retried on the next tick; the atomic write in the store
// means the previous snapshot survives any failure.
type Saver struct {
	grid     *GridManager
	interval time.Duration
}

func NewSaver(grid *GridManager, interval time.Duration) *Saver {
	if interval <= 0 {
		interval = DefaultSaveInterval
	}
	return &Saver{
		grid:     grid,
		interval: interval,
	}
}

// Start runs the save loop until the context is canceled, writing one final
// snapshot on the way out.
func (s *Saver) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.grid.Save(); err != nil {
				slog.Error("final world save failed", "error", err)
			}
			return nil
		case <-ticker.C:
			if err := s.grid.Save(); err != nil {
				slog.Error("world save failed", "error", err)
			}
		}
	}
}

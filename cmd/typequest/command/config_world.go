package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/mudstone/typequest/internal/world"
)

type WorldConfig struct {
	SnapshotPath string `json:"snapshot_path"`
	SaveInterval string `json:"save_interval"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if c.SnapshotPath == "" {
		el.Add(fmt.Errorf("snapshot_path is required"))
	}

	if c.SaveInterval != "" {
		d, err := time.ParseDuration(c.SaveInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing save_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("save_interval must be at least 1 second"))
		}
	}

	return el.Err()
}

// BuildGridManager constructs and initializes the world: store, registry,
// and grid manager, with the default origin place guaranteed.
func (c *WorldConfig) BuildGridManager() (*world.GridManager, error) {
	store := world.NewStore(c.SnapshotPath)
	grid := world.NewGridManager(store, world.NewSubscriptionRegistry())

	if err := grid.Init(); err != nil {
		return nil, fmt.Errorf("initializing world: %w", err)
	}
	return grid, nil
}

// BuildSaver creates the periodic snapshot worker.
func (c *WorldConfig) BuildSaver(grid *world.GridManager) (*world.Saver, error) {
	interval := world.DefaultSaveInterval
	if c.SaveInterval != "" {
		d, err := time.ParseDuration(c.SaveInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing save_interval: %w", err)
		}
		interval = d
	}
	return world.NewSaver(grid, interval), nil
}

package command

import (
	"fmt"

	"github.com/pixil98/go-service"

	"github.com/mudstone/typequest/internal/auth"
	"github.com/mudstone/typequest/internal/listener"
	"github.com/mudstone/typequest/internal/session"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// World state: store, registry, grid manager, default origin place
	grid, err := cfg.World.BuildGridManager()
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	// Periodic snapshot worker
	saver, err := cfg.World.BuildSaver(grid)
	if err != nil {
		return nil, fmt.Errorf("building saver: %w", err)
	}

	// Embedded message broker for session delivery
	natsServer, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("building nats server: %w", err)
	}

	users := auth.NewUserRegistry(grid)
	sessions := session.NewManager(grid, users, natsServer, cfg.Session.WelcomeTemplate)
	cm := listener.NewConnectionManager(sessions)

	// Create listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	return service.WorkerList{
		"nats":      natsServer,
		"saver":     saver,
		"listeners": &listeners,
	}, nil
}

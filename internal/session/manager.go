package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mudstone/typequest/internal/auth"
	"github.com/mudstone/typequest/internal/builder"
	"github.com/mudstone/typequest/internal/display"
	"github.com/mudstone/typequest/internal/messaging"
	"github.com/mudstone/typequest/internal/world"
)

const defaultWelcomeTemplate = "Welcome to TypeQuest, {{ .Name }}!"

// Manager owns the lifecycle of player sessions: login, entity creation,
// subscription wiring, the command loop, and exactly-once teardown. One
// connection maps to one player entity for its whole lifetime.
type Manager struct {
	grid    *world.GridManager
	users   *auth.UserRegistry
	nats    *messaging.NatsServer
	pub     *messaging.EntityPublisher
	builder *builder.Builder
	welcome string

	mu        sync.Mutex
	connected map[string]bool
}

func NewManager(grid *world.GridManager, users *auth.UserRegistry, nats *messaging.NatsServer, welcome string) *Manager {
	if welcome == "" {
		welcome = defaultWelcomeTemplate
	}
	return &Manager{
		grid:      grid,
		users:     users,
		nats:      nats,
		pub:       messaging.NewEntityPublisher(nats),
		builder:   builder.NewBuilder(grid),
		welcome:   welcome,
		connected: map[string]bool{},
	}
}

// RunSession drives one connection from login to disconnect. Teardown of the
// controller and the entity happens exactly once, in that order, no matter
// how the loop exits.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	br := bufio.NewReader(conn)

	flow := &loginFlow{users: m.users}
	username, err := flow.Run(conn, br)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if !m.reserve(username) {
		conn.Write([]byte("User is already connected.\n"))
		return nil
	}
	defer m.release(username)

	entityId := m.grid.CreateEntity(world.Origin, world.EntityTypePlayer, username)

	// World broadcasts hop through the entity's NATS subject; the buffered
	// channel below is drained by the session loop. A listener that can't
	// keep up loses lines rather than stalling the world.
	msgs := make(chan []byte, 32)
	unsubscribe, err := m.nats.Subscribe(messaging.EntitySubject(entityId), func(data []byte) {
		select {
		case msgs <- data:
		default:
			slog.Warn("dropping place event for slow session", "entity", entityId)
		}
	})
	if err != nil {
		m.grid.DestroyEntity(entityId)
		return fmt.Errorf("subscribing session: %w", err)
	}

	ctrl := NewEntityController(entityId, m.grid, func(event world.PlaceEvent) {
		if err := m.pub.PublishToEntity(entityId, []byte(event.Message)); err != nil {
			slog.Warn("publishing place event", "entity", entityId, "error", err)
		}
	})

	defer func() {
		ctrl.Destroy()
		if !m.grid.DestroyEntity(entityId) {
			slog.Warn("entity already gone at session end", "entity", entityId)
		}
		unsubscribe()
	}()

	if err := ctrl.Init(); err != nil {
		return fmt.Errorf("binding session to entity: %w", err)
	}

	greeting, err := display.ExpandTemplate(m.welcome, struct{ Name string }{Name: username})
	if err != nil {
		slog.Warn("expanding welcome template", "error", err)
		greeting = "Welcome to TypeQuest!"
	}

	s := &Session{
		conn:    conn,
		br:      br,
		ctrl:    ctrl,
		grid:    m.grid,
		builder: m.builder,
		msgs:    msgs,
	}
	if err := s.writeLine(greeting + "\n\n" + ctrl.ExamineSurroundings(false)); err != nil {
		return err
	}

	slog.Info("session started", "username", username, "entity", entityId)
	err = s.Run(ctx)
	slog.Info("session ended", "username", username, "entity", entityId)
	return err
}

func (m *Manager) reserve(username string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connected[username] {
		return false
	}
	m.connected[username] = true
	return true
}

func (m *Manager) release(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.connected, username)
}

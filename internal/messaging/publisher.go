package messaging

import "fmt"

// EntitySubject returns the NATS subject carrying output lines for one
// connected entity's session.
func EntitySubject(entityId string) string {
	return fmt.Sprintf("entity-%s", entityId)
}

// EntityPublisher delivers rendered output lines to individual entity
// subjects. Place-event callbacks use it so broadcasts enqueue and return
// instead of doing connection I/O inline.
type EntityPublisher struct {
	server *NatsServer
}

func NewEntityPublisher(server *NatsServer) *EntityPublisher {
	return &EntityPublisher{server: server}
}

func (p *EntityPublisher) PublishToEntity(entityId string, data []byte) error {
	return p.server.Publish(EntitySubject(entityId), data)
}

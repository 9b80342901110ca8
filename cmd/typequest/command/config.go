package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

type Config struct {
	World     WorldConfig      `json:"world"`
	Nats      NatsConfig       `json:"nats"`
	Session   SessionConfig    `json:"session"`
	Listeners []ListenerConfig `json:"listeners"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.World.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Session.validate())

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	return el.Err()
}

type SessionConfig struct {
	// WelcomeTemplate greets authenticated players; it may reference
	// {{ .Name }}. Empty uses the built-in greeting.
	WelcomeTemplate string `json:"welcome_template"`
}

func (c *SessionConfig) validate() error {
	return nil
}

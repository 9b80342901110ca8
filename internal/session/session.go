package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mudstone/typequest/internal/builder"
	"github.com/mudstone/typequest/internal/display"
	"github.com/mudstone/typequest/internal/world"
)

const helpText = `Commands:

north, south, east, west - move around
/examine - examine your surroundings
/coordinates - show your current coordinates
/build - interact with the world builder
/say - say something
/emote - emote something
/save - save the world
/quit - leave the world
/help - show this help message

Anything else you type is spoken aloud.`

// Session runs the command loop for one authenticated connection. Place
// events arrive through the msgs channel, fed by the session's own NATS
// subject, so world broadcasts never block on connection I/O.
type Session struct {
	conn    io.ReadWriter
	br      *bufio.Reader
	ctrl    *EntityController
	grid    *world.GridManager
	builder *builder.Builder
	msgs    chan []byte
}

func (s *Session) Run(ctx context.Context) error {
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		defer close(inputChan)
		for {
			line, err := s.br.ReadString('\n')
			if err != nil {
				if err != io.EOF {
					inputErrChan <- err
				}
				return
			}
			select {
			case inputChan <- strings.TrimRight(line, "\r\n"):
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-s.msgs:
			if err := s.writeLine(string(msg)); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Connection lost.
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			output, quit := s.dispatch(line)
			if output != "" {
				if err := s.writeLine(output); err != nil {
					return err
				}
			}
			if quit {
				return nil
			}
		}
	}
}

// dispatch executes one command line and returns the text to echo back plus
// whether the session should end. Unrecognized input is spoken aloud.
func (s *Session) dispatch(line string) (string, bool) {
	tokens := strings.Fields(line)
	switch strings.ToLower(tokens[0]) {
	case "north", "south", "east", "west":
		return s.ctrl.Move(tokens[0]), false
	case "/examine":
		return s.ctrl.ExamineSurroundings(true), false
	case "/coordinates":
		return s.ctrl.Coordinates(), false
	case "/say":
		return s.ctrl.Say(rest(line, "/say")), false
	case "/emote":
		return s.ctrl.Emote(rest(line, "/emote")), false
	case "/build":
		return s.builder.Handle(tokens[1:]), false
	case "/save":
		if err := s.grid.Save(); err != nil {
			slog.Error("saving world on request", "entity", s.ctrl.Id(), "error", err)
			return "The world refuses to be saved right now.", false
		}
		return "World saved", false
	case "/quit":
		return "Goodbye!", true
	case "/help":
		return helpText, false
	default:
		return s.ctrl.Say(line), false
	}
}

func (s *Session) writeLine(line string) error {
	_, err := s.conn.Write([]byte(display.Wrap(line) + "\n"))
	if err != nil {
		return fmt.Errorf("writing to connection: %w", err)
	}
	return nil
}

// rest strips the command prefix, keeping the argument text intact.
func rest(line, cmd string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, cmd))
}

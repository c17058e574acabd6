package router

import (
	"errors"
	"fmt"

	"github.com/ashwch/pomichnyk/internal/command"
)

var (
	ErrMissingHandler = errors.New("command has no handler")
	ErrUnknownHandler = errors.New("handler registered for unknown command")
)

// Table maps every registry command to exactly one handler.
type Table[H any] struct {
	handlers map[command.ID]H
}

// NewTable checks exhaustiveness in both directions: each registry command
// needs a handler and each handler needs a registry command.
func NewTable[H any](registry *command.Registry, handlers map[command.ID]H) (*Table[H], error) {
	for _, id := range registry.IDs() {
		if _, ok := handlers[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingHandler, id)
		}
	}
	for id := range handlers {
		if _, ok := registry.Lookup(id); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownHandler, id)
		}
	}

	copied := make(map[command.ID]H, len(handlers))
	for id, h := range handlers {
		copied[id] = h
	}
	return &Table[H]{handlers: copied}, nil
}

func (t *Table[H]) Handler(id command.ID) (H, bool) {
	h, ok := t.handlers[id]
	return h, ok
}

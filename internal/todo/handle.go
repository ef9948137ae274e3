package todo

import (
	"errors"

	"github.com/idilsaglam/todo/internal/transport"
)

var errNoGreeter = errors.New("greeter client not configured")

// FromHandle builds a Service on a bound transport handle.
func FromHandle(h *transport.Handle) *Service {
	return New(h.ToDo(), h.Greeter())
}

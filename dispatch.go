package protomsg

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"
)

// Handler consumes a decoded message. The message's buffer belongs to the
// caller of Handle; a handler that needs the bytes past its own return must
// copy them out.
type Handler func(*Message) error

// Dispatcher routes decoded messages to handlers keyed by action code.
//
// All methods are safe for concurrent use; registration and dispatch may
// race freely. The zero value is not usable, construct with NewDispatcher.
type Dispatcher struct {
	handlers *xsync.Map[uint32, Handler]
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: xsync.NewMap[uint32, Handler]()}
}

// Register installs h as the handler for action, replacing any previous one.
func (d *Dispatcher) Register(action uint32, h Handler) {
	d.handlers.Store(action, h)
}

// Unregister removes the handler for action, if any.
func (d *Dispatcher) Unregister(action uint32) {
	d.handlers.Delete(action)
}

// Handle routes m to the handler registered for its action code and returns
// the handler's result. Returns an error matching ErrNoHandler when no
// handler is registered for the action.
func (d *Dispatcher) Handle(m *Message) error {
	h, ok := d.handlers.Load(m.Action())
	if !ok {
		return fmt.Errorf("%w: 0x%08x", ErrNoHandler, m.Action())
	}
	return h(m)
}

// Actions returns the registered action codes, in no particular order.
func (d *Dispatcher) Actions() []uint32 {
	actions := make([]uint32, 0)
	d.handlers.Range(func(action uint32, _ Handler) bool {
		actions = append(actions, action)
		return true
	})
	return actions
}

package protocol

// Handler processes one kind of event
type Handler func(Event)

// Dispatcher routes events to the handler registered for their kind
type Dispatcher struct {
	handlers map[EventKind]Handler
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventKind]Handler)}
}

// On registers the handler for kind, replacing any previous one
func (d *Dispatcher) On(kind EventKind, h Handler) *Dispatcher {
	d.handlers[kind] = h
	return d
}

// Dispatch runs the handler for the event's kind.  Returns false when no handler is registered.
func (d *Dispatcher) Dispatch(e Event) bool {
	h, ok := d.handlers[e.Kind]
	if !ok {
		return false
	}
	h(e)
	return true
}

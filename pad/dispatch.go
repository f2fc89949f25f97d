package pad

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateBinding is returned when two bindings name the same event
var ErrDuplicateBinding = errors.New("event bound twice")

// Logger is the little bit of logging the core needs
type Logger interface {
	Printf(format string, v ...interface{})
}

// Action is what a binding runs. It must not block, apart from holding a
// code down until its paired release action runs.
type Action func() error

// Binding ties one event to an action. Name is only for logs and the
// status page.
type Binding struct {
	Event  Event
	Name   string
	Action Action
}

// Dispatcher runs the bound action for an event. The table is fixed when
// the dispatcher is built.
type Dispatcher struct {
	table  map[Event]Binding
	logger Logger
}

// NewDispatcher validates and copies the bindings. A nil action is
// allowed and means "do nothing".
func NewDispatcher(logger Logger, bindings []Binding) (*Dispatcher, error) {
	d := &Dispatcher{
		table:  make(map[Event]Binding, len(bindings)),
		logger: logger,
	}
	for _, b := range bindings {
		if !b.Event.Valid() {
			return nil, fmt.Errorf("%w: %+v", ErrUnknownEvent, b.Event)
		}
		if _, ok := d.table[b.Event]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBinding, b.Event)
		}
		d.table[b.Event] = b
	}
	return d, nil
}

// Bound reports whether an event has a non-empty action
func (d *Dispatcher) Bound(ev Event) bool {
	b, ok := d.table[ev]
	return ok && b.Action != nil
}

// Dispatch runs the action bound to ev once. Unbound events are dropped.
// An action error is logged and swallowed so the pad keeps responding.
func (d *Dispatcher) Dispatch(ev Event) {
	b, ok := d.table[ev]
	if !ok || b.Action == nil {
		return
	}
	if err := b.Action(); err != nil && d.logger != nil {
		d.logger.Printf("action %q for %s failed: %s", b.Name, ev, err.Error())
	}
}

// Names maps each bound event name to its action name, for display
func (d *Dispatcher) Names() map[string]string {
	ret := make(map[string]string, len(d.table))
	for ev, b := range d.table {
		ret[ev.String()] = b.Name
	}
	return ret
}

// Events lists the bound events in a stable order
func (d *Dispatcher) Events() []Event {
	ret := make([]Event, 0, len(d.table))
	for ev := range d.table {
		ret = append(ret, ev)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Key != ret[j].Key {
			return ret[i].Key < ret[j].Key
		}
		return ret[i].Kind < ret[j].Kind
	})
	return ret
}

// Package pad is the input state machine of the macro pad: key debouncing,
// encoder decoding, the pixel frame and the action table.
package pad

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// KeyCount is the number of macro keys on the pad
const KeyCount = 6

// ErrUnknownEvent is returned when an event name can't be parsed
var ErrUnknownEvent = errors.New("unknown event")

// EventKind identifies what happened on the pad
type EventKind uint8

const (
	EventNone EventKind = iota
	KeyPressed
	KeyReleased
	KeyHeld
	EncoderCW
	EncoderCWReleased
	EncoderCCW
	EncoderCCWReleased
	SwitchPressed
	SwitchReleased
)

var kindNames = map[EventKind]string{
	EventNone:          "none",
	KeyPressed:         "pressed",
	KeyReleased:        "released",
	KeyHeld:            "held",
	EncoderCW:          "cw",
	EncoderCWReleased:  "cw-released",
	EncoderCCW:         "ccw",
	EncoderCCWReleased: "ccw-released",
	SwitchPressed:      "pressed",
	SwitchReleased:     "released",
}

func (k EventKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// IsKey is true for the three per-key kinds
func (k EventKind) IsKey() bool {
	return k == KeyPressed || k == KeyReleased || k == KeyHeld
}

// Event is a single thing that happened during a tick. Key holds the key id
// (1..6) for key events and is 0 for everything else.
type Event struct {
	Kind EventKind
	Key  int
}

// NoEvent is the zero event, nothing happened
var NoEvent = Event{}

// KeyEvent builds an event for key id (1..6)
func KeyEvent(kind EventKind, id int) Event {
	return Event{Kind: kind, Key: id}
}

// None is true if the event is the empty event
func (e Event) None() bool {
	return e.Kind == EventNone
}

// Valid checks that the key id matches the kind
func (e Event) Valid() bool {
	switch {
	case e.Kind == EventNone:
		return false
	case e.Kind.IsKey():
		return e.Key >= 1 && e.Key <= KeyCount
	case e.Kind > SwitchReleased:
		return false
	default:
		return e.Key == 0
	}
}

// String renders the event the same way the config names it,
// e.g. "key4.pressed", "encoder.ccw-released", "switch.pressed".
func (e Event) String() string {
	switch {
	case e.Kind == EventNone:
		return "none"
	case e.Kind.IsKey():
		return fmt.Sprintf("key%d.%s", e.Key, e.Kind)
	case e.Kind == SwitchPressed || e.Kind == SwitchReleased:
		return "switch." + e.Kind.String()
	default:
		return "encoder." + e.Kind.String()
	}
}

// ParseEvent is the reverse of Event.String
func ParseEvent(name string) (Event, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(name)), ".", 2)
	if len(parts) != 2 {
		return NoEvent, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
	src, what := parts[0], parts[1]

	switch {
	case src == "encoder":
		for _, k := range []EventKind{EncoderCW, EncoderCWReleased, EncoderCCW, EncoderCCWReleased} {
			if k.String() == what {
				return Event{Kind: k}, nil
			}
		}
	case src == "switch":
		for _, k := range []EventKind{SwitchPressed, SwitchReleased} {
			if k.String() == what {
				return Event{Kind: k}, nil
			}
		}
	case strings.HasPrefix(src, "key"):
		id, err := strconv.Atoi(strings.TrimPrefix(src, "key"))
		if err != nil || id < 1 || id > KeyCount {
			break
		}
		for _, k := range []EventKind{KeyPressed, KeyReleased, KeyHeld} {
			if k.String() == what {
				return KeyEvent(k, id), nil
			}
		}
	}
	return NoEvent, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// AllEvents lists every event a binding table can hold, keys first
func AllEvents() []Event {
	ret := make([]Event, 0, KeyCount*3+6)
	for id := 1; id <= KeyCount; id++ {
		ret = append(ret,
			KeyEvent(KeyPressed, id),
			KeyEvent(KeyReleased, id),
			KeyEvent(KeyHeld, id))
	}
	for _, k := range []EventKind{EncoderCW, EncoderCWReleased, EncoderCCW, EncoderCCWReleased, SwitchPressed, SwitchReleased} {
		ret = append(ret, Event{Kind: k})
	}
	return ret
}

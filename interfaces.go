package main

type pinID int

const (
	pinKey1 pinID = iota
	pinKey2
	pinKey3
	pinKey4
	pinKey5
	pinKey6
	pinEncA
	pinEncB
	pinEncSw
	pinCount
)

var pinNames = [pinCount]string{
	"key1", "key2", "key3", "key4", "key5", "key6", "encA", "encB", "encSw",
}

func (p pinID) String() string {
	if p < 0 || p >= pinCount {
		return "pin?"
	}
	return pinNames[p]
}

// keyPin is the pin of key id (1..6)
func keyPin(id int) pinID {
	return pinKey1 + pinID(id-1)
}

// all pins are pulled up, a pressed key or an active encoder line reads low
type pins interface {
	initPins(settings configSettings) error
	readPin(id pinID) bool // true is high
	closePins()
}

type hid interface {
	press(code byte) error
	release(code byte) error
	pressMedia(code uint16) error
	releaseMedia() error
}

type watchdog interface {
	start() error
	reset()
	stop()
}

// enter does not come back on success
type bootloader interface {
	enter() error
}

type statusService interface {
	launch(handler *apiHandler, addr string)
	stop()
}

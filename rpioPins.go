package main

import (
	// gpio lib
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio/v4"
)

type rpioPins struct {
	rpins [pinCount]rpio.Pin
}

// pinSettingName is the config key holding the BCM number of a pin
func pinSettingName(id pinID) string {
	switch id {
	case pinEncA:
		return sPinEncA
	case pinEncB:
		return sPinEncB
	case pinEncSw:
		return sPinEncSw
	default:
		return sPinKey(int(id-pinKey1) + 1)
	}
}

func (rp *rpioPins) initPins(settings configSettings) error {
	if err := rpio.Open(); err != nil {
		return errors.Wrap(err, "could not open gpio")
	}

	for id := pinKey1; id < pinCount; id++ {
		n := settings.GetInt(pinSettingName(id))
		if n < 0 || n > 27 {
			return errors.Errorf("%s: no gpio %d", id, n)
		}
		p := rpio.Pin(n)
		p.Input()  // Input mode
		p.PullUp() // GND => active
		rp.rpins[id] = p
	}
	return nil
}

func (rp *rpioPins) readPin(id pinID) bool {
	return rp.rpins[id].Read() == rpio.High
}

func (rp *rpioPins) closePins() {
	rpio.Close()
}

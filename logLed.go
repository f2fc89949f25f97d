package main

import (
	"fmt"
	"image/color"

	"dscheirer.com/macropad/pad"
)

// logLed is the LED transport for tests and headless runs
type logLed struct {
	leds       []color.RGBA // what the last Flush showed
	pending    []color.RGBA
	audit      []string
	flushes    int
	failFlush  error // returned by Flush when set
	disableLog bool
	logger     flogger
}

func newLogLed() *logLed {
	ll := &logLed{
		leds:    make([]color.RGBA, pad.PixelCount),
		pending: make([]color.RGBA, pad.PixelCount),
		audit:   make([]string, 0),
		logger:  &ThreadLogger{name: "LEDs"},
	}
	return ll
}

func (ll *logLed) record(msg string) {
	if !ll.disableLog {
		ll.logger.Println(msg)
	}
	ll.audit = append(ll.audit, msg)
}

func (ll *logLed) SetPixelHue(index int, hue pad.Hue, brightness pad.Brightness) {
	ll.pending[index] = hue.RGB(brightness)
	ll.record(fmt.Sprintf("Set LED %d to hue %d brightness %d", index, hue, brightness))
}

func (ll *logLed) SetPixelRGB(index int, c color.RGBA) {
	ll.pending[index] = c
	ll.record(fmt.Sprintf("Set LED %d to #%02x%02x%02x", index, c.R, c.G, c.B))
}

func (ll *logLed) ClearPixel(index int) {
	ll.pending[index] = color.RGBA{}
	ll.record(fmt.Sprintf("Clear LED %d", index))
}

func (ll *logLed) Flush() error {
	ll.flushes++
	if ll.failFlush != nil {
		ll.record(fmt.Sprintf("Flush failed: %s", ll.failFlush))
		return ll.failFlush
	}
	copy(ll.leds, ll.pending)
	ll.record("Flush")
	return nil
}

// lit reports whether the last flush left pixel i on
func (ll *logLed) lit(i int) bool {
	c := ll.leds[i]
	return c.R != 0 || c.G != 0 || c.B != 0
}

func (ll *logLed) resetAudit() {
	ll.audit = ll.audit[:0]
	ll.flushes = 0
}

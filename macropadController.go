package main

import (
	"image/color"
	"time"

	"github.com/pkg/errors"

	"dscheirer.com/macropad/pad"
)

// the bootloader flood, every channel at half level
var bootWhite = color.RGBA{R: 127, G: 127, B: 127, A: 0xFF}

// pinSample is one read of every input, true is active (the pin read low)
type pinSample struct {
	keys              [pad.KeyCount]bool
	encA, encB, encSw bool
}

func samplePins(p pins) pinSample {
	var s pinSample
	for id := 1; id <= pad.KeyCount; id++ {
		s.keys[id-1] = !p.readPin(keyPin(id))
	}
	s.encA = !p.readPin(pinEncA)
	s.encB = !p.readPin(pinEncB)
	s.encSw = !p.readPin(pinEncSw)
	return s
}

// padStatus is the snapshot the loop hands to the status service
type padStatus struct {
	Keys       [pad.KeyCount]bool        `json:"keys"`
	RingOffset pad.Hue                   `json:"ringOffset"`
	Detent     string                    `json:"detent"`
	Switch     bool                      `json:"switch"`
	Frame      [pad.PixelCount]pad.Pixel `json:"frame"`
	Counts     map[string]int            `json:"counts"`
	Bindings   map[string]string         `json:"-"`
	Ticks      uint64                    `json:"ticks"`
	Updated    time.Time                 `json:"updated"`
}

type padController struct {
	rt         runtimeConfig
	keys       [pad.KeyCount]*pad.KeyChannel
	enc        *pad.EncoderDecoder
	frame      *pad.Frame
	dispatcher *pad.Dispatcher
	bindings   map[string]string

	ringBrightness pad.Brightness
	settle         time.Duration
	stuckWarn      time.Duration
	parkedSince    time.Time
	warned         bool

	counts  map[pad.Event]int
	ticks   uint64
	changed bool // something worth publishing happened this tick
	logger  flogger
}

func newPadController(rt runtimeConfig) (*padController, error) {
	settings := rt.settings

	var hues [pad.KeyCount]pad.Hue
	for id := 1; id <= pad.KeyCount; id++ {
		hues[id-1] = pad.Hue(settings.GetByte(sHueKey(id)))
		if !hues[id-1].Valid() {
			return nil, errors.Wrapf(pad.ErrHueRange, "%s is %d", sHueKey(id), hues[id-1])
		}
	}
	keyBright := pad.Brightness(settings.GetByte(sKeyBrightness))
	ringBright := pad.Brightness(settings.GetByte(sRingBrightness))
	if !keyBright.Valid() || !ringBright.Valid() {
		return nil, errors.Wrapf(pad.ErrBrightnessRange, "key %d ring %d", keyBright, ringBright)
	}

	bindings, err := buildBindings(rt.hid, settings.GetBindings())
	if err != nil {
		return nil, err
	}
	dispatcher, err := pad.NewDispatcher(rt.logger, bindings)
	if err != nil {
		return nil, errors.Wrap(err, "bad binding table")
	}

	debounce := settings.GetInt(sDebounceTicks)
	return &padController{
		rt:             rt,
		keys:           pad.NewKeyChannels(hues, keyBright, debounce),
		enc:            pad.NewEncoderDecoder(debounce),
		frame:          pad.NewFrame(rt.leds),
		dispatcher:     dispatcher,
		bindings:       dispatcher.Names(),
		ringBrightness: ringBright,
		settle:         settings.GetDuration(sSettleDelay),
		stuckWarn:      settings.GetDuration(sEncoderStuckWarn),
		counts:         make(map[pad.Event]int),
		logger:         rt.logger,
	}, nil
}

// bootCheck looks at the encoder switch once. Held down at power up means
// the host wants to load new firmware: light everything up and hand over.
func (c *padController) bootCheck() bool {
	if !samplePins(c.rt.pins).encSw {
		return false
	}
	c.logger.Println("encoder switch held at startup, entering bootloader")
	if err := c.frame.Flood(bootWhite); err != nil {
		c.logger.Printf("boot flood failed: %s", err)
	}
	if err := c.rt.boot.enter(); err != nil {
		c.logger.Printf("bootloader failed: %s", err)
	}
	return true
}

// start waits for the host, paints the ring and arms the watchdog
func (c *padController) start() error {
	if d := c.rt.settings.GetDuration(sStartupDelay); d > 0 {
		c.rt.clock.Sleep(d)
	}
	if err := c.frame.PaintRing(c.enc.RingOffset(), c.ringBrightness); err != nil {
		return err
	}
	c.commit()
	if err := c.rt.watchdog.start(); err != nil {
		return err
	}
	c.changed = true
	c.publish()
	return nil
}

func (c *padController) commit() {
	if err := c.frame.Commit(); err != nil {
		c.logger.Printf("led flush failed: %s", err)
	}
}

// fire dispatches one event. A panicking action is logged, the loop goes on.
func (c *padController) fire(ev pad.Event) {
	if ev.None() {
		return
	}
	c.counts[ev]++
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("action for %s panicked: %v", ev, r)
		}
	}()
	c.dispatcher.Dispatch(ev)
}

func (c *padController) handleKey(k *pad.KeyChannel, raw bool) {
	ev := k.Update(raw)
	switch ev.Kind {
	case pad.KeyPressed:
		c.logger.Printf("%s", ev)
		if err := c.frame.SetPixel(k.Pixel, k.Hue, k.Brightness); err != nil {
			c.logger.Printf("key %d pixel: %s", k.ID, err)
		}
		c.commit()
		c.changed = true
	case pad.KeyReleased:
		c.logger.Printf("%s", ev)
		if err := c.frame.ClearPixel(k.Pixel); err != nil {
			c.logger.Printf("key %d pixel: %s", k.ID, err)
		}
		c.commit()
		c.changed = true
	}
	c.fire(ev)
}

func (c *padController) handleEncoder(s pinSample) {
	res := c.enc.Update(s.encA, s.encB, s.encSw)

	if !res.Rotation.None() {
		c.logger.Printf("%s offset %d", res.Rotation, c.enc.RingOffset())
		if err := c.frame.PaintRing(c.enc.RingOffset(), c.ringBrightness); err != nil {
			c.logger.Printf("ring: %s", err)
		}
		c.commit()
		c.fire(res.Rotation)
		if c.settle > 0 {
			c.rt.clock.Sleep(c.settle)
		}
		c.fire(res.Released())
		c.parkedSince = c.rt.clock.Now()
		c.warned = false
		c.changed = true
	}

	if !res.Switch.None() {
		c.logger.Printf("%s", res.Switch)
		c.fire(res.Switch)
		c.changed = true
	}

	if c.enc.Detent() == pad.AwaitingDetentRelease && !c.warned && c.stuckWarn > 0 {
		if c.rt.clock.Now().Sub(c.parkedSince) >= c.stuckWarn {
			c.logger.Printf("encoder stuck between detents for %d ticks", c.enc.ParkedTicks())
			c.warned = true
		}
	}
}

// tick is one pass over the inputs: keys 1..6 first, then the encoder
func (c *padController) tick() {
	s := samplePins(c.rt.pins)
	for i, k := range c.keys {
		c.handleKey(k, s.keys[i])
	}
	c.handleEncoder(s)
	c.ticks++
	c.publish()
}

func (c *padController) snapshot() padStatus {
	st := padStatus{
		RingOffset: c.enc.RingOffset(),
		Detent:     c.enc.Detent().String(),
		Switch:     c.enc.SwitchPressed(),
		Frame:      c.frame.Pixels(),
		Counts:     make(map[string]int, len(c.counts)),
		Bindings:   c.bindings,
		Ticks:      c.ticks,
		Updated:    c.rt.clock.Now(),
	}
	for i, k := range c.keys {
		st.Keys[i] = k.Pressed()
	}
	for ev, n := range c.counts {
		st.Counts[ev.String()] = n
	}
	return st
}

// publish replaces whatever snapshot is still waiting, the reader only
// cares about the latest one
func (c *padController) publish() {
	if !c.changed {
		return
	}
	c.changed = false
	st := c.snapshot()
	select {
	case <-c.rt.comms.status:
	default:
	}
	select {
	case c.rt.comms.status <- st:
	default:
	}
}

func startMacropad(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Macropad"}
	wg.Add(1)
	go runMacropad(rt)
}

func runMacropad(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runMacropad")
	}()

	err := rt.pins.initPins(rt.settings)
	if err != nil {
		rt.logger.Println(err.Error())
		rt.comms.stop()
		return
	}

	// we now should defer the closePins call to when this function exits
	defer rt.pins.closePins()

	c, err := newPadController(rt)
	if err != nil {
		rt.logger.Println(err.Error())
		rt.comms.stop()
		return
	}

	if c.bootCheck() {
		// only here if the bootloader came back
		rt.comms.stop()
		return
	}

	if err := c.start(); err != nil {
		rt.logger.Println(err.Error())
		rt.comms.stop()
		return
	}
	defer rt.watchdog.stop()

	tick := rt.settings.GetDuration(sTickInterval)
	rt.logger.Printf("running, tick %s settle %s", tick, c.settle)
	for true {
		select {
		case <-rt.comms.quit:
			rt.logger.Println("quit from runMacropad")
			return
		default:
		}

		c.tick()
		rt.watchdog.reset()

		rt.clock.Sleep(tick)
	}
}

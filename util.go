// utility functions
package main

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"dscheirer.com/macropad/pad"
)

var wg sync.WaitGroup

type commChannels struct {
	quit     chan struct{}
	status   chan padStatus
	quitOnce *sync.Once
}

// stop closes quit, safe to call from any worker more than once
func (c commChannels) stop() {
	c.quitOnce.Do(func() { close(c.quit) })
}

type runtimeConfig struct {
	settings configSettings
	comms    commChannels
	clock    clockwork.Clock
	logger   flogger
	pins     pins
	leds     pad.Transport
	hid      hid
	watchdog watchdog
	boot     bootloader
	status   statusService
}

func initCommChannels() commChannels {
	return commChannels{
		quit:     make(chan struct{}, 1),
		status:   make(chan padStatus, 1),
		quitOnce: &sync.Once{},
	}
}

func initRuntime(settings configSettings, clock clockwork.Clock) runtimeConfig {
	return runtimeConfig{
		settings: settings,
		clock:    clock,
		comms:    initCommChannels(),
		logger:   &ThreadLogger{name: "Main"},
	}
}

// quitting checks the quit channel without blocking
func quitting(comms commChannels) bool {
	select {
	case <-comms.quit:
		return true
	default:
		return false
	}
}

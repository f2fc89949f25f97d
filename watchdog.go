package main

import (
	"os"

	"github.com/pkg/errors"
)

// devWatchdog is the Linux watchdog device: any write pets it, writing 'V'
// before closing disarms it.
type devWatchdog struct {
	path   string
	f      *os.File
	logger flogger
}

func newDevWatchdog(path string) *devWatchdog {
	return &devWatchdog{path: path, logger: &ThreadLogger{name: "Watchdog"}}
}

func (dw *devWatchdog) start() error {
	f, err := os.OpenFile(dw.path, os.O_WRONLY, 0)
	if err != nil {
		return errors.Wrapf(err, "could not open watchdog '%s'", dw.path)
	}
	dw.f = f
	dw.logger.Printf("watchdog %s armed", dw.path)
	return nil
}

func (dw *devWatchdog) reset() {
	if dw.f == nil {
		return
	}
	if _, err := dw.f.Write([]byte{0}); err != nil {
		dw.logger.Printf("watchdog reset failed: %s", err)
	}
}

func (dw *devWatchdog) stop() {
	if dw.f == nil {
		return
	}
	// magic close
	dw.f.Write([]byte("V"))
	dw.f.Close()
	dw.f = nil
	dw.logger.Println("watchdog disarmed")
}

// noWatchdog is used in tests and when no device is configured
type noWatchdog struct {
	started bool
	resets  int
	stopped bool
}

func (nw *noWatchdog) start() error {
	nw.started = true
	return nil
}

func (nw *noWatchdog) reset() {
	nw.resets++
}

func (nw *noWatchdog) stop() {
	nw.stopped = true
}

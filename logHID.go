package main

import "fmt"

// logHID stands in for the host connection, it logs and remembers
// everything it was asked to send
type logHID struct {
	audit      []string
	held       map[byte]bool
	media      uint16
	fail       error // returned by every call when set
	disableLog bool
	logger     flogger
}

func newLogHID() *logHID {
	return &logHID{held: make(map[byte]bool), logger: &ThreadLogger{name: "HID"}}
}

func (lh *logHID) record(format string, v ...interface{}) error {
	msg := fmt.Sprintf(format, v...)
	if !lh.disableLog {
		lh.logger.Println(msg)
	}
	lh.audit = append(lh.audit, msg)
	return lh.fail
}

func (lh *logHID) press(code byte) error {
	lh.held[code] = true
	return lh.record("press %q", code)
}

func (lh *logHID) release(code byte) error {
	delete(lh.held, code)
	return lh.record("release %q", code)
}

func (lh *logHID) pressMedia(code uint16) error {
	lh.media = code
	return lh.record("media 0x%02x", code)
}

func (lh *logHID) releaseMedia() error {
	lh.media = 0
	return lh.record("media up")
}

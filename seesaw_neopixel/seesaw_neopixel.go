package seesaw_neopixel

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log"
	"strings"

	"dscheirer.com/macropad/i2c"
)

// seesaw module and function registers
const seesawStatusBase = 0x00
const seesawStatusSwReset = 0x7F
const seesawSwResetMagic = 0xFF

const seesawNeopixelBase = 0x0E
const neopixelPin = 0x01
const neopixelSpeed = 0x02
const neopixelBufLength = 0x03
const neopixelBuf = 0x04
const neopixelShow = 0x05

// 800kHz pixels
const speed800KHz = 0x01

// bytes per pixel, sent G R B
const bytesPerPixel = 3

// the seesaw takes at most 32 bytes per transfer, the buffer write spends 4
// of them on the register and the offset
const maxChunk = 24

// MaxPixels is as many pixels as a seesaw buffer holds
const MaxPixels = 512 / bytesPerPixel

// ErrPixelCount is returned for a strip the seesaw can't hold
var ErrPixelCount = errors.New("bad pixel count")

// Strip is a chain of pixels hung off a seesaw coprocessor. The seesaw owns
// the bit timing, this side only fills its buffer and tells it to show.
type Strip struct {
	i2cDev  *i2c.I2C
	count   int
	display []byte // what we want shown
	current []byte // what the seesaw has
	fresh   bool   // nothing shown yet
	dump    bool
	sim     bool
}

func (s *Strip) simLog(v string, args ...interface{}) {
	if !s.sim {
		return
	}
	log.Printf(v, args...)
}

// Open resets the seesaw at address and sets up count pixels on its pin
func Open(address uint8, bus int, pin uint8, count int, simulated bool) (*Strip, error) {
	if count <= 0 || count > MaxPixels {
		return nil, fmt.Errorf("%w: %d", ErrPixelCount, count)
	}
	i2cDev, err := i2c.Open(address, bus, simulated)
	if err != nil {
		return nil, err
	}
	s := &Strip{
		i2cDev:  i2cDev,
		count:   count,
		display: make([]byte, count*bytesPerPixel),
		current: make([]byte, count*bytesPerPixel),
		fresh:   true,
		sim:     simulated,
	}
	n := count * bytesPerPixel
	setup := [][]byte{
		{seesawStatusBase, seesawStatusSwReset, seesawSwResetMagic},
		{seesawNeopixelBase, neopixelSpeed, speed800KHz},
		{seesawNeopixelBase, neopixelBufLength, byte(n >> 8), byte(n)},
		{seesawNeopixelBase, neopixelPin, pin},
	}
	for _, msg := range setup {
		if _, err := s.i2cDev.Write(msg); err != nil {
			i2cDev.Close()
			return nil, err
		}
	}
	return s, nil
}

// Device is the underlying bus device
func (s *Strip) Device() *i2c.I2C {
	return s.i2cDev
}

// Count is the number of pixels on the strip
func (s *Strip) Count() int {
	return s.count
}

// DebugDump logs the frame on every Show
func (s *Strip) DebugDump(on bool) {
	s.dump = on
}

// SetPixel buffers one pixel, out of range indexes are ignored
func (s *Strip) SetPixel(index int, c color.RGBA) {
	if index < 0 || index >= s.count {
		s.simLog("pixel %d out of range", index)
		return
	}
	pos := index * bytesPerPixel
	s.display[pos] = c.G
	s.display[pos+1] = c.R
	s.display[pos+2] = c.B
}

// Clear buffers an all-off frame
func (s *Strip) Clear() {
	for i := range s.display {
		s.display[i] = 0
	}
}

// Show sends the changed part of the buffer and latches it. Showing the
// same frame twice sends nothing.
func (s *Strip) Show() error {
	if !s.fresh && bytes.Equal(s.display, s.current) {
		return nil
	}

	if s.dump {
		s.dumpDisplay()
	}

	for off := 0; off < len(s.display); off += maxChunk {
		end := off + maxChunk
		if end > len(s.display) {
			end = len(s.display)
		}
		if !s.fresh && bytes.Equal(s.display[off:end], s.current[off:end]) {
			continue
		}
		msg := make([]byte, 0, 4+end-off)
		msg = append(msg, seesawNeopixelBase, neopixelBuf, byte(off>>8), byte(off))
		msg = append(msg, s.display[off:end]...)
		if _, err := s.i2cDev.Write(msg); err != nil {
			return err
		}
	}

	if _, err := s.i2cDev.Write([]byte{seesawNeopixelBase, neopixelShow}); err != nil {
		return err
	}
	copy(s.current, s.display)
	s.fresh = false
	return nil
}

// Close the bus device
func (s *Strip) Close() error {
	return s.i2cDev.Close()
}

func (s *Strip) dumpDisplay() {
	var sb strings.Builder
	sb.WriteString("\n")
	for i := 0; i < s.count; i++ {
		pos := i * bytesPerPixel
		// back to R G B for humans
		fmt.Fprintf(&sb, "%2d: #%02x%02x%02x\n", i, s.display[pos+1], s.display[pos], s.display[pos+2])
	}
	log.Println(sb.String())
}

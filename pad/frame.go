package pad

import (
	"errors"
	"fmt"
	"image/color"
)

const (
	// KeyPixels are the pixels under the keys, 0..5
	KeyPixels = KeyCount
	// RingPixels is the number of pixels around the encoder
	RingPixels = 12
	// RingFirstPixel is the index of ring pixel 0
	RingFirstPixel = KeyPixels
	// PixelCount is the whole chain
	PixelCount = KeyPixels + RingPixels
)

var (
	// ErrPixelRange is returned for an index outside 0..PixelCount-1
	ErrPixelRange = errors.New("pixel index out of range")
	// ErrHueRange is returned for a hue past the end of the wheel
	ErrHueRange = errors.New("hue out of range")
	// ErrBrightnessRange is returned for an unsupported brightness level
	ErrBrightnessRange = errors.New("brightness out of range")
)

// Transport is the thing that actually shows a frame. It has no partial
// update: every change has to be followed by a Flush before it is visible.
type Transport interface {
	SetPixelHue(index int, hue Hue, brightness Brightness)
	SetPixelRGB(index int, c color.RGBA)
	ClearPixel(index int)
	Flush() error
}

// Pixel is one buffered pixel. An unlit pixel is off whatever its hue.
type Pixel struct {
	Lit        bool       `json:"lit"`
	Hue        Hue        `json:"hue"`
	Brightness Brightness `json:"brightness"`
}

// Frame buffers pixel changes and pushes them to the transport on Commit.
type Frame struct {
	transport Transport
	pixels    [PixelCount]Pixel
	shown     [PixelCount]Pixel
	forced    bool // shown is unknown, send everything
}

// NewFrame makes an all-off frame. The first Commit always goes out so the
// chain starts from a known state.
func NewFrame(t Transport) *Frame {
	return &Frame{transport: t, forced: true}
}

// SetPixel lights a pixel. Nothing is shown until Commit.
func (f *Frame) SetPixel(index int, hue Hue, brightness Brightness) error {
	if index < 0 || index >= PixelCount {
		return fmt.Errorf("%w: %d", ErrPixelRange, index)
	}
	if !hue.Valid() {
		return fmt.Errorf("%w: %d", ErrHueRange, hue)
	}
	if !brightness.Valid() {
		return fmt.Errorf("%w: %d", ErrBrightnessRange, brightness)
	}
	f.pixels[index] = Pixel{Lit: true, Hue: hue, Brightness: brightness}
	return nil
}

// ClearPixel turns a pixel off. Nothing is shown until Commit.
func (f *Frame) ClearPixel(index int) error {
	if index < 0 || index >= PixelCount {
		return fmt.Errorf("%w: %d", ErrPixelRange, index)
	}
	f.pixels[index] = Pixel{}
	return nil
}

// PaintRing lays the hue gradient around the ring, pixel k gets
// offset + 16*k around the wheel.
func (f *Frame) PaintRing(offset Hue, brightness Brightness) error {
	for k := 0; k < RingPixels; k++ {
		if err := f.SetPixel(RingFirstPixel+k, RingHue(offset, k), brightness); err != nil {
			return err
		}
	}
	return nil
}

// Pixel returns the buffered (not necessarily shown) state of a pixel
func (f *Frame) Pixel(index int) Pixel {
	if index < 0 || index >= PixelCount {
		return Pixel{}
	}
	return f.pixels[index]
}

// Pixels is a copy of the buffer
func (f *Frame) Pixels() [PixelCount]Pixel {
	return f.pixels
}

// Dirty is true when the buffer has changes Commit would send
func (f *Frame) Dirty() bool {
	return f.forced || f.pixels != f.shown
}

// Commit sends the whole frame and flushes once. A commit with nothing
// changed since the last one doesn't touch the transport.
func (f *Frame) Commit() error {
	if !f.Dirty() {
		return nil
	}
	for i, p := range f.pixels {
		if p.Lit {
			f.transport.SetPixelHue(i, p.Hue, p.Brightness)
		} else {
			f.transport.ClearPixel(i)
		}
	}
	f.shown = f.pixels
	f.forced = false
	if err := f.transport.Flush(); err != nil {
		// unknown what made it out, resend on the next commit
		f.forced = true
		return err
	}
	return nil
}

// Flood lights every pixel with one raw color and flushes right away. It
// bypasses the buffer, so the next Commit resends the whole frame.
func (f *Frame) Flood(c color.RGBA) error {
	for i := 0; i < PixelCount; i++ {
		f.transport.SetPixelRGB(i, c)
	}
	f.forced = true
	return f.transport.Flush()
}

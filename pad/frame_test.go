package pad

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"gotest.tools/assert"
)

type recordTransport struct {
	pixels  [PixelCount]color.RGBA
	calls   int
	flushes int
	fail    error
	audit   []string
}

func (rt *recordTransport) SetPixelHue(index int, hue Hue, brightness Brightness) {
	rt.calls++
	rt.pixels[index] = hue.RGB(brightness)
}

func (rt *recordTransport) SetPixelRGB(index int, c color.RGBA) {
	rt.calls++
	rt.pixels[index] = c
}

func (rt *recordTransport) ClearPixel(index int) {
	rt.calls++
	rt.pixels[index] = color.RGBA{}
}

func (rt *recordTransport) Flush() error {
	rt.flushes++
	rt.audit = append(rt.audit, fmt.Sprintf("flush %d", rt.flushes))
	return rt.fail
}

func TestFrameCommitIdempotent(t *testing.T) {
	tr := &recordTransport{}
	f := NewFrame(tr)

	// first commit always goes out
	assert.NilError(t, f.Commit())
	assert.Equal(t, tr.flushes, 1)
	assert.Equal(t, tr.calls, PixelCount)

	// nothing changed, nothing sent
	for i := 0; i < 5; i++ {
		assert.NilError(t, f.Commit())
	}
	assert.Equal(t, tr.flushes, 1)
	assert.Equal(t, tr.calls, PixelCount)

	// setting a pixel to what is shown is not a change either
	assert.NilError(t, f.ClearPixel(3))
	assert.Equal(t, f.Dirty(), false)
}

func TestFrameSetAndClear(t *testing.T) {
	tr := &recordTransport{}
	f := NewFrame(tr)
	assert.NilError(t, f.Commit())

	assert.NilError(t, f.SetPixel(0, 0, 2))
	// buffered only
	assert.Equal(t, tr.pixels[0], color.RGBA{})
	assert.Equal(t, f.Pixel(0), Pixel{Lit: true, Hue: 0, Brightness: 2})

	assert.NilError(t, f.Commit())
	assert.Equal(t, tr.flushes, 2)
	assert.Equal(t, tr.pixels[0], color.RGBA{R: 252, A: 0xFF})

	assert.NilError(t, f.ClearPixel(0))
	assert.NilError(t, f.Commit())
	assert.Equal(t, tr.flushes, 3)
	assert.Equal(t, tr.pixels[0], color.RGBA{})
}

func TestFrameRanges(t *testing.T) {
	f := NewFrame(&recordTransport{})

	assert.Assert(t, errors.Is(f.SetPixel(PixelCount, 0, 0), ErrPixelRange))
	assert.Assert(t, errors.Is(f.SetPixel(-1, 0, 0), ErrPixelRange))
	assert.Assert(t, errors.Is(f.SetPixel(0, HueSteps, 0), ErrHueRange))
	assert.Assert(t, errors.Is(f.SetPixel(0, 0, 3), ErrBrightnessRange))
	assert.Assert(t, errors.Is(f.ClearPixel(PixelCount), ErrPixelRange))
	// nothing was touched
	for i := 0; i < PixelCount; i++ {
		assert.Equal(t, f.Pixel(i), Pixel{})
	}
}

func TestFramePaintRing(t *testing.T) {
	tr := &recordTransport{}
	f := NewFrame(tr)

	assert.NilError(t, f.PaintRing(184, 0))
	for k := 0; k < RingPixels; k++ {
		p := f.Pixel(RingFirstPixel + k)
		assert.Equal(t, p.Lit, true)
		assert.Equal(t, p.Hue, Hue((184+16*k)%HueSteps))
		assert.Equal(t, p.Brightness, Brightness(0))
	}
	// keys untouched
	for i := 0; i < KeyPixels; i++ {
		assert.Equal(t, f.Pixel(i).Lit, false)
	}
	assert.NilError(t, f.Commit())
	assert.Equal(t, tr.flushes, 1)
}

func TestFrameFailedFlushResends(t *testing.T) {
	tr := &recordTransport{fail: errors.New("bus error")}
	f := NewFrame(tr)

	assert.ErrorContains(t, f.Commit(), "bus error")
	tr.fail = nil
	assert.NilError(t, f.Commit())
	assert.Equal(t, tr.flushes, 2)
	assert.NilError(t, f.Commit())
	assert.Equal(t, tr.flushes, 2)
}

func TestFrameFlood(t *testing.T) {
	tr := &recordTransport{}
	f := NewFrame(tr)
	assert.NilError(t, f.Commit())

	white := color.RGBA{R: 127, G: 127, B: 127, A: 0xFF}
	assert.NilError(t, f.Flood(white))
	for i := 0; i < PixelCount; i++ {
		assert.Equal(t, tr.pixels[i], white)
	}
	assert.Equal(t, tr.flushes, 2)
	// the buffer didn't change but the chain did
	assert.Equal(t, f.Dirty(), true)
}

func TestHueRGB(t *testing.T) {
	assert.Equal(t, Hue(0).RGB(2), color.RGBA{R: 252, G: 0, B: 0, A: 0xFF})
	assert.Equal(t, Hue(64).RGB(2), color.RGBA{R: 0, G: 252, B: 0, A: 0xFF})
	assert.Equal(t, Hue(128).RGB(2), color.RGBA{R: 0, G: 0, B: 252, A: 0xFF})
	assert.Equal(t, Hue(32).RGB(0), color.RGBA{R: 31, G: 32, B: 0, A: 0xFF})
	assert.Equal(t, Hue(160).RGB(1), color.RGBA{R: 64, G: 0, B: 62, A: 0xFF})
	assert.Equal(t, Hue(200).RGB(2), color.RGBA{A: 0xFF})
}

func TestHueAdd(t *testing.T) {
	assert.Equal(t, Hue(190).Add(4), Hue(2))
	assert.Equal(t, Hue(2).Add(-4), Hue(190))
	assert.Equal(t, Hue(0).Add(HueSteps*3), Hue(0))
}

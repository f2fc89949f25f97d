package main

import (
	"image/color"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nsf/termbox-go"

	"dscheirer.com/macropad/pad"
)

// where each pixel is drawn. Keys sit as they do on the pad,
//
//	3 2 1
//	4 5 6
//
// with the ring around the encoder to the right, pixel 6 at the top.
var termPixelPos = [pad.PixelCount][2]int{
	{10, 3}, {6, 3}, {2, 3}, {2, 5}, {6, 5}, {10, 5},
	{26, 1}, {29, 2}, {31, 3}, {32, 4}, {31, 5}, {29, 6},
	{26, 7}, {23, 6}, {21, 5}, {20, 4}, {21, 3}, {23, 2},
}

// termLed draws the pixels in the terminal. termbox is owned by the
// keyboard pin source, this only draws.
type termLed struct {
	mu      sync.Mutex
	setup   sync.Once
	pending [pad.PixelCount]color.RGBA
	palette map[color.RGBA]termbox.Attribute
}

func newTermLed() *termLed {
	return &termLed{palette: make(map[color.RGBA]termbox.Attribute)}
}

func (tl *termLed) SetPixelHue(index int, hue pad.Hue, brightness pad.Brightness) {
	tl.SetPixelRGB(index, hue.RGB(brightness))
}

func (tl *termLed) SetPixelRGB(index int, c color.RGBA) {
	tl.mu.Lock()
	tl.pending[index] = c
	tl.mu.Unlock()
}

func (tl *termLed) ClearPixel(index int) {
	tl.SetPixelRGB(index, color.RGBA{})
}

func (tl *termLed) Flush() error {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.setup.Do(func() { termbox.SetOutputMode(termbox.Output256) })
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	drawString(2, 0, "1-6 keys, arrows turn, space pushes, ^C quits")
	for i, c := range tl.pending {
		x, y := termPixelPos[i][0], termPixelPos[i][1]
		if c == (color.RGBA{}) {
			termbox.SetCell(x, y, '·', termbox.ColorDefault, termbox.ColorDefault)
			continue
		}
		bg := tl.nearest(c)
		termbox.SetCell(x, y, ' ', termbox.ColorDefault, bg)
		if i < pad.KeyPixels {
			termbox.SetCell(x+1, y, ' ', termbox.ColorDefault, bg)
		}
	}
	return termbox.Flush()
}

func drawString(x, y int, s string) {
	for _, r := range s {
		termbox.SetCell(x, y, r, termbox.ColorDefault, termbox.ColorDefault)
		x++
	}
}

// nearest picks the xterm-256 color closest to c. The real pixels are far
// too dim to show as is, so c is brought up to full value first.
func (tl *termLed) nearest(c color.RGBA) termbox.Attribute {
	if a, ok := tl.palette[c]; ok {
		return a
	}
	want, _ := colorful.MakeColor(c)
	h, s, _ := want.Hsv()
	want = colorful.Hsv(h, s, 1)

	best, bestDist := 0, 2.0
	for n := 16; n < 256; n++ {
		d := want.DistanceLab(xtermColor(n))
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	// 256 mode colors are offset by one, 0 is the default color
	a := termbox.Attribute(best + 1)
	tl.palette[c] = a
	return a
}

var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// xtermColor is entry n (16..255) of the xterm palette
func xtermColor(n int) colorful.Color {
	if n >= 232 {
		v := uint8(8 + 10*(n-232))
		return colorful.Color{R: float64(v) / 255, G: float64(v) / 255, B: float64(v) / 255}
	}
	n -= 16
	r, g, b := cubeLevels[n/36], cubeLevels[(n/6)%6], cubeLevels[n%6]
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

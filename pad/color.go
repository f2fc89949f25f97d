package pad

import "image/color"

// Hue is a position on the 192 step color wheel used by the pixels.
// 0 is red, 64 is green, 128 is blue.
type Hue uint8

// Brightness is a small discrete level, 0 (dim) to 2 (bright).
type Brightness uint8

const (
	// HueSteps is the size of the color wheel
	HueSteps = 192
	// MaxBrightness is the brightest level a pixel can take
	MaxBrightness Brightness = 2

	// each third of the wheel blends two primaries over 64 steps
	huePhaseSteps = 64
)

// Valid reports whether the hue is on the wheel.
func (h Hue) Valid() bool {
	return int(h) < HueSteps
}

// Add moves the hue around the wheel, wrapping at HueSteps.
func (h Hue) Add(steps int) Hue {
	v := (int(h) + steps) % HueSteps
	if v < 0 {
		v += HueSteps
	}
	return Hue(v)
}

// Valid reports whether the brightness is a supported level.
func (b Brightness) Valid() bool {
	return b <= MaxBrightness
}

// RGB converts a hue and brightness into channel levels. Each phase of the
// wheel fades one primary down while the next one comes up, and the
// brightness shifts the 0..63 ramp up to 0..252.
func (h Hue) RGB(b Brightness) color.RGBA {
	phase := uint8(h) / huePhaseSteps
	step := (uint8(h) % huePhaseSteps) << b
	nstep := (uint8(huePhaseSteps-1) << b) - step

	switch phase {
	case 0:
		return color.RGBA{R: nstep, G: step, B: 0, A: 0xFF}
	case 1:
		return color.RGBA{R: 0, G: nstep, B: step, A: 0xFF}
	case 2:
		return color.RGBA{R: step, G: 0, B: nstep, A: 0xFF}
	}
	// off the wheel
	return color.RGBA{A: 0xFF}
}

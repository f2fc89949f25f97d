package main

import (
	"image/color"

	"github.com/pkg/errors"

	"dscheirer.com/macropad/pad"
	"dscheirer.com/macropad/seesaw_neopixel"
)

// seesawLed drives the pixel chain through a seesaw on the i2c bus
type seesawLed struct {
	strip *seesaw_neopixel.Strip
}

func openSeesawLed(settings configSettings) (*seesawLed, error) {
	strip, err := seesaw_neopixel.Open(
		settings.GetByte(sI2CDev),
		settings.GetInt(sI2CBus),
		settings.GetByte(sSeesawPin),
		pad.PixelCount,
		settings.GetBool(sSimulated))
	if err != nil {
		return nil, errors.Wrap(err, "could not open the pixel chain")
	}

	// turn on LED dump?
	strip.DebugDump(settings.GetBool(sDebug))
	return &seesawLed{strip: strip}, nil
}

func (sl *seesawLed) SetPixelHue(index int, hue pad.Hue, brightness pad.Brightness) {
	sl.strip.SetPixel(index, hue.RGB(brightness))
}

func (sl *seesawLed) SetPixelRGB(index int, c color.RGBA) {
	sl.strip.SetPixel(index, c)
}

func (sl *seesawLed) ClearPixel(index int) {
	sl.strip.SetPixel(index, color.RGBA{})
}

func (sl *seesawLed) Flush() error {
	return sl.strip.Show()
}

func (sl *seesawLed) Close() error {
	return sl.strip.Close()
}

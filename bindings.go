package main

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"dscheirer.com/macropad/pad"
)

// consumer page usages for the media-down action
var mediaCodes = map[string]uint16{
	"play":     0xB0,
	"pause":    0xB1,
	"next":     0xB5,
	"prev":     0xB6,
	"stop":     0xB7,
	"mute":     0xE2,
	"vol-up":   0xE9,
	"vol-down": 0xEA,
}

// the pad ships as a media/volume controller
func defaultBindings() map[string]string {
	b := map[string]string{
		"key1.pressed":         "media-down:stop",
		"key1.released":        "media-up",
		"key2.pressed":         "media-down:play",
		"key2.released":        "media-up",
		"key3.pressed":         "media-down:pause",
		"key3.released":        "media-up",
		"key4.pressed":         "key-down:d",
		"key4.released":        "key-up:d",
		"key5.pressed":         "key-down:e",
		"key5.released":        "key-up:e",
		"key6.pressed":         "key-down:f",
		"key6.released":        "key-up:f",
		"encoder.cw":           "media-down:vol-up",
		"encoder.cw-released":  "media-up",
		"encoder.ccw":          "media-down:vol-down",
		"encoder.ccw-released": "media-up",
		"switch.pressed":       "media-down:mute",
		"switch.released":      "media-up",
	}
	for id := 1; id <= pad.KeyCount; id++ {
		b[pad.KeyEvent(pad.KeyHeld, id).String()] = "none"
	}
	return b
}

// parseKeyCode takes a single character or a number ("0x44", "68")
func parseKeyCode(s string) (byte, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, errors.Errorf("bad key code '%s'", s)
	}
	return byte(v), nil
}

func parseMediaCode(s string) (uint16, error) {
	if code, ok := mediaCodes[s]; ok {
		return code, nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, errors.Errorf("unknown media key '%s'", s)
	}
	return uint16(v), nil
}

// parseAction turns an action string into something the dispatcher can run
// against the HID collaborator. "none" gives a nil action.
func parseAction(h hid, action string) (pad.Action, error) {
	verb, arg := action, ""
	if i := strings.IndexByte(action, ':'); i >= 0 {
		verb, arg = action[:i], action[i+1:]
	}

	switch verb {
	case "none":
		return nil, nil
	case "key-down", "key-up":
		code, err := parseKeyCode(arg)
		if err != nil {
			return nil, err
		}
		if verb == "key-down" {
			return func() error { return h.press(code) }, nil
		}
		return func() error { return h.release(code) }, nil
	case "media-down":
		code, err := parseMediaCode(arg)
		if err != nil {
			return nil, err
		}
		return func() error { return h.pressMedia(code) }, nil
	case "media-up":
		return h.releaseMedia, nil
	}
	return nil, errors.Errorf("unknown action '%s'", action)
}

// buildBindings merges the overrides over the defaults and builds the
// table. Any bad name or action is an error, nothing is skipped.
func buildBindings(h hid, overrides map[string]string) ([]pad.Binding, error) {
	merged := defaultBindings()
	for k, v := range overrides {
		merged[k] = v
	}

	names := make([]string, 0, len(merged))
	for k := range merged {
		names = append(names, k)
	}
	sort.Strings(names)

	ret := make([]pad.Binding, 0, len(names))
	for _, name := range names {
		ev, err := pad.ParseEvent(name)
		if err != nil {
			return nil, errors.Wrapf(err, "binding '%s'", name)
		}
		act, err := parseAction(h, merged[name])
		if err != nil {
			return nil, errors.Wrapf(err, "binding '%s'", name)
		}
		ret = append(ret, pad.Binding{Event: ev, Name: merged[name], Action: act})
	}
	return ret, nil
}

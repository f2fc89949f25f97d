package main

import (
	"testing"

	"gotest.tools/assert"

	"dscheirer.com/macropad/pad"
)

func TestDefaultBindings(t *testing.T) {
	h := newLogHID()
	h.disableLog = true
	bindings, err := buildBindings(h, nil)
	assert.NilError(t, err)
	assert.Equal(t, len(bindings), 24)

	d, err := pad.NewDispatcher(nil, bindings)
	assert.NilError(t, err)
	for id := 1; id <= pad.KeyCount; id++ {
		assert.Equal(t, d.Bound(pad.KeyEvent(pad.KeyHeld, id)), false)
		assert.Equal(t, d.Bound(pad.KeyEvent(pad.KeyPressed, id)), true)
	}

	d.Dispatch(pad.KeyEvent(pad.KeyPressed, 4))
	d.Dispatch(pad.KeyEvent(pad.KeyReleased, 4))
	d.Dispatch(pad.Event{Kind: pad.EncoderCCW})
	d.Dispatch(pad.Event{Kind: pad.EncoderCCWReleased})
	assert.DeepEqual(t, h.audit, []string{"press 'd'", "release 'd'", "media 0xea", "media up"})
}

func TestBindingOverrides(t *testing.T) {
	h := newLogHID()
	h.disableLog = true
	bindings, err := buildBindings(h, map[string]string{
		"key2.pressed":   "key-down:0x41",
		"key2.released":  "key-up:65",
		"switch.pressed": "media-down:next",
		"encoder.cw":     "none",
	})
	assert.NilError(t, err)

	d, err := pad.NewDispatcher(nil, bindings)
	assert.NilError(t, err)
	assert.Equal(t, d.Names()["key2.pressed"], "key-down:0x41")
	assert.Equal(t, d.Bound(pad.Event{Kind: pad.EncoderCW}), false)

	d.Dispatch(pad.KeyEvent(pad.KeyPressed, 2))
	d.Dispatch(pad.KeyEvent(pad.KeyReleased, 2))
	d.Dispatch(pad.Event{Kind: pad.SwitchPressed})
	d.Dispatch(pad.Event{Kind: pad.EncoderCW})
	assert.DeepEqual(t, h.audit, []string{"press 'A'", "release 'A'", "media 0xb5"})
}

func TestBadBindings(t *testing.T) {
	h := newLogHID()
	bad := []map[string]string{
		{"key7.pressed": "none"},
		{"encoder.pressed": "none"},
		{"key1.pressed": "key-down:"},
		{"key1.pressed": "key-down:xyz"},
		{"key1.pressed": "key-down:0x100"},
		{"key1.pressed": "media-down:louder"},
		{"key1.pressed": "type:hello"},
	}
	for _, b := range bad {
		_, err := buildBindings(h, b)
		assert.Assert(t, err != nil, "%v", b)
	}
}

func TestParseAction(t *testing.T) {
	h := newLogHID()
	h.disableLog = true

	act, err := parseAction(h, "none")
	assert.NilError(t, err)
	assert.Assert(t, act == nil)

	act, err = parseAction(h, "media-down:0xCD")
	assert.NilError(t, err)
	assert.NilError(t, act())
	assert.Equal(t, h.media, uint16(0xCD))

	act, err = parseAction(h, "media-up")
	assert.NilError(t, err)
	assert.NilError(t, act())
	assert.Equal(t, h.media, uint16(0))
}

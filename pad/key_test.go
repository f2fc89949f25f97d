package pad

import (
	"testing"

	"gotest.tools/assert"
)

// raw samples as they come off the pin, 1 is released (active-low)
func levels(s string) []bool {
	ret := make([]bool, len(s))
	for i, c := range s {
		ret[i] = c == '0'
	}
	return ret
}

func TestKeyPressHoldRelease(t *testing.T) {
	key := NewKeyChannel(KeyConfig{ID: 1, Pixel: 0, Hue: 0, Brightness: 2}, 1)

	want := []Event{
		NoEvent,
		KeyEvent(KeyPressed, 1),
		KeyEvent(KeyHeld, 1),
		KeyEvent(KeyHeld, 1),
		KeyEvent(KeyReleased, 1),
	}
	for i, raw := range levels("10001") {
		assert.Equal(t, key.Update(raw), want[i], "sample %d", i)
	}
	assert.Equal(t, key.Pressed(), false)
}

func TestKeyOneEdgePerChange(t *testing.T) {
	key := NewKeyChannel(KeyConfig{ID: 3, Pixel: 2}, 1)
	samples := levels("1100100011101101")

	edges := 0
	changes := 0
	last := false
	for i, raw := range samples {
		ev := key.Update(raw)
		if raw != last {
			changes++
			assert.Assert(t, ev.Kind == KeyPressed || ev.Kind == KeyReleased, "sample %d: %s", i, ev)
		}
		switch ev.Kind {
		case KeyPressed, KeyReleased:
			edges++
		case KeyHeld:
			// held only when steady pressed
			assert.Equal(t, raw, true, "sample %d", i)
			assert.Equal(t, last, true, "sample %d", i)
		case EventNone:
			assert.Equal(t, raw, false, "sample %d", i)
		}
		assert.Equal(t, ev.Key == 0 || ev.Key == 3, true)
		last = raw
	}
	assert.Equal(t, edges, changes)
}

func TestKeyDebounceTicks(t *testing.T) {
	key := NewKeyChannel(KeyConfig{ID: 2, Pixel: 1}, 3)

	// a two tick glitch never makes it through
	for _, raw := range levels("0011") {
		assert.Equal(t, key.Update(raw), NoEvent)
	}

	// three in a row does
	assert.Equal(t, key.Update(true), NoEvent)
	assert.Equal(t, key.Update(true), NoEvent)
	assert.Equal(t, key.Update(true), KeyEvent(KeyPressed, 2))

	// a pending release still reports held
	assert.Equal(t, key.Update(false), KeyEvent(KeyHeld, 2))
	assert.Equal(t, key.Update(false), KeyEvent(KeyHeld, 2))
	assert.Equal(t, key.Update(false), KeyEvent(KeyReleased, 2))
	assert.Equal(t, key.Update(false), NoEvent)
}

func TestKeyChannelsLayout(t *testing.T) {
	keys := NewKeyChannels(DefaultKeyHues, 2, 0)
	for i, k := range keys {
		assert.Equal(t, k.ID, i+1)
		assert.Equal(t, k.Pixel, i)
		assert.Equal(t, k.Hue, DefaultKeyHues[i])
		assert.Equal(t, k.Brightness, Brightness(2))
	}
	// 0 debounce ticks behaves like 1
	assert.Equal(t, keys[0].Update(true), KeyEvent(KeyPressed, 1))
}

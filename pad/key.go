package pad

// debouncer holds the accepted state of one switch contact. A raw sample
// that disagrees with the accepted state has to be seen `need` ticks in a
// row before it is accepted. need == 1 accepts on the first differing
// sample, which leaves the tick period as the only debounce.
type debouncer struct {
	pressed bool
	pending int
	need    int
}

func newDebouncer(need int) debouncer {
	if need < 1 {
		need = 1
	}
	return debouncer{need: need}
}

// sample feeds one raw reading, returns true when the accepted state flipped
func (d *debouncer) sample(raw bool) bool {
	if raw == d.pressed {
		d.pending = 0
		return false
	}
	d.pending++
	if d.pending < d.need {
		return false
	}
	d.pending = 0
	d.pressed = raw
	return true
}

// KeyConfig is the per-key build time data
type KeyConfig struct {
	ID         int // 1..6
	Pixel      int // 0..5
	Hue        Hue
	Brightness Brightness
}

// KeyChannel turns raw samples for one key into press/release/hold events.
type KeyChannel struct {
	KeyConfig
	state debouncer
}

// NewKeyChannel makes a released key. debounceTicks below 1 is treated as 1.
func NewKeyChannel(cfg KeyConfig, debounceTicks int) *KeyChannel {
	return &KeyChannel{KeyConfig: cfg, state: newDebouncer(debounceTicks)}
}

// Pressed is the debounced state
func (k *KeyChannel) Pressed() bool {
	return k.state.pressed
}

// Update takes this tick's raw sample (true = pressed, already inverted from
// the active-low pin) and returns at most one event: the edge if the
// debounced state flipped, Held if it is steady pressed, NoEvent otherwise.
func (k *KeyChannel) Update(rawPressed bool) Event {
	if k.state.sample(rawPressed) {
		if k.state.pressed {
			return KeyEvent(KeyPressed, k.ID)
		}
		return KeyEvent(KeyReleased, k.ID)
	}
	if k.state.pressed {
		return KeyEvent(KeyHeld, k.ID)
	}
	return NoEvent
}

// DefaultKeyHues are the wheel positions of keys 1..6:
// red, yellow, green, cyan, blue, magenta.
var DefaultKeyHues = [KeyCount]Hue{0, 32, 64, 96, 128, 160}

// NewKeyChannels builds the six channels, key id n lights pixel n-1.
func NewKeyChannels(hues [KeyCount]Hue, brightness Brightness, debounceTicks int) [KeyCount]*KeyChannel {
	var ret [KeyCount]*KeyChannel
	for i := range ret {
		ret[i] = NewKeyChannel(KeyConfig{
			ID:         i + 1,
			Pixel:      i,
			Hue:        hues[i],
			Brightness: brightness,
		}, debounceTicks)
	}
	return ret
}

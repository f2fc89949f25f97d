package pad

// DetentState is where the encoder is between two detents
type DetentState uint8

const (
	// Idle means phase A is inactive and a new rotation can start
	Idle DetentState = iota
	// AwaitingDetentRelease means a rotation was reported and phase A has not
	// gone inactive yet
	AwaitingDetentRelease
)

func (d DetentState) String() string {
	switch d {
	case Idle:
		return "idle"
	case AwaitingDetentRelease:
		return "awaiting-detent"
	default:
		return "unknown"
	}
}

const (
	// RingStep is how far one detent moves the ring gradient
	RingStep = 8
	// RingSpread is the hue distance between neighbouring ring pixels
	RingSpread = 16

	// CCWUnderflowCorrection is subtracted when a counter clockwise step
	// wraps below zero in 8 bit arithmetic. 256 - 64 == 192, so this lands
	// on the same value as a +192 wrap would.
	CCWUnderflowCorrection = 64
)

// EncoderResult is what one Update saw. Either field can be NoEvent.
type EncoderResult struct {
	Rotation Event // EncoderCW or EncoderCCW
	Switch   Event // SwitchPressed or SwitchReleased
}

// Released returns the event that closes the rotation, EncoderCWReleased for
// EncoderCW and EncoderCCWReleased for EncoderCCW.
func (r EncoderResult) Released() Event {
	switch r.Rotation.Kind {
	case EncoderCW:
		return Event{Kind: EncoderCWReleased}
	case EncoderCCW:
		return Event{Kind: EncoderCCWReleased}
	}
	return NoEvent
}

// EncoderDecoder decodes the quadrature lines and the push switch.
type EncoderDecoder struct {
	ringOffset Hue
	detent     DetentState
	sw         debouncer
	parked     int // ticks spent in AwaitingDetentRelease
}

// NewEncoderDecoder starts idle with the ring gradient at 0
func NewEncoderDecoder(debounceTicks int) *EncoderDecoder {
	return &EncoderDecoder{sw: newDebouncer(debounceTicks)}
}

// RingOffset is the current rotation phase of the ring, 0..191
func (e *EncoderDecoder) RingOffset() Hue {
	return e.ringOffset
}

// Detent is the current detent state
func (e *EncoderDecoder) Detent() DetentState {
	return e.detent
}

// ParkedTicks is how many updates the decoder has been waiting for phase A
// to go inactive
func (e *EncoderDecoder) ParkedTicks() int {
	return e.parked
}

// SwitchPressed is the debounced state of the push switch
func (e *EncoderDecoder) SwitchPressed() bool {
	return e.sw.pressed
}

// Update takes one sample of the three encoder lines, all active-high
// (already inverted from the pins).
//
// A rotation is reported once when phase A goes active: B inactive is
// clockwise, B active is counter clockwise. The decoder then stays in
// AwaitingDetentRelease until A goes inactive again, so the same rotation
// is never reported twice. The switch is only looked at while idle.
func (e *EncoderDecoder) Update(aActive, bActive, swActive bool) EncoderResult {
	if e.detent == AwaitingDetentRelease {
		if aActive {
			e.parked++
			return EncoderResult{}
		}
		e.detent = Idle
		e.parked = 0
	}

	if aActive {
		e.detent = AwaitingDetentRelease
		if !bActive {
			e.ringOffset = StepCW(e.ringOffset)
			return EncoderResult{Rotation: Event{Kind: EncoderCW}}
		}
		e.ringOffset = StepCCW(e.ringOffset)
		return EncoderResult{Rotation: Event{Kind: EncoderCCW}}
	}

	if e.sw.sample(swActive) {
		if e.sw.pressed {
			return EncoderResult{Switch: Event{Kind: SwitchPressed}}
		}
		return EncoderResult{Switch: Event{Kind: SwitchReleased}}
	}
	return EncoderResult{}
}

// StepCW advances the ring phase one detent
func StepCW(offset Hue) Hue {
	v := uint8(offset) + RingStep
	if v >= HueSteps {
		v -= HueSteps
	}
	return Hue(v)
}

// StepCCW moves the ring phase back one detent
func StepCCW(offset Hue) Hue {
	v := uint8(offset) - RingStep
	if v >= HueSteps {
		v -= CCWUnderflowCorrection
	}
	return Hue(v)
}

// RingHue is the hue of ring pixel k (0..RingPixels-1) for a ring offset
func RingHue(offset Hue, k int) Hue {
	return offset.Add(RingSpread * k)
}

package main

import (
	"sync"

	// keyboard for sim mode
	"github.com/nsf/termbox-go"
)

type rotation int

const (
	turnCW rotation = iota
	turnCCW
)

// keyboardPins fakes the pad from the terminal: '1'..'6' toggle a key,
// right/left arrows turn the encoder one detent, space toggles the switch
// and Ctrl-C quits.
type keyboardPins struct {
	mu      sync.Mutex
	levels  [pinCount]bool
	turns   []rotation // queued detents
	turning bool       // A is being held low for the head of turns
	done    bool

	comms  commChannels
	logger flogger
}

func newKeyboardPins(comms commChannels) *keyboardPins {
	return &keyboardPins{comms: comms, logger: &ThreadLogger{name: "Keyboard"}}
}

func (kp *keyboardPins) initPins(settings configSettings) error {
	err := termbox.Init()
	if err != nil {
		return err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.Flush()

	for i := range kp.levels {
		kp.levels[i] = true
	}

	// close it later
	go kp.pollKeyboard()
	return nil
}

func (kp *keyboardPins) pollKeyboard() {
	for true {
		ev := termbox.PollEvent()

		kp.mu.Lock()
		if kp.done {
			kp.mu.Unlock()
			return
		}
		kp.mu.Unlock()

		if ev.Type != termbox.EventKey {
			continue
		}
		kp.handleKey(ev)
	}
}

func (kp *keyboardPins) handleKey(ev termbox.Event) {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	switch {
	case ev.Key == termbox.KeyCtrlC:
		kp.logger.Println("Exit termbox loop")
		kp.comms.stop()
	case ev.Key == termbox.KeyArrowRight:
		kp.turns = append(kp.turns, turnCW)
	case ev.Key == termbox.KeyArrowLeft:
		kp.turns = append(kp.turns, turnCCW)
	case ev.Key == termbox.KeySpace:
		kp.levels[pinEncSw] = !kp.levels[pinEncSw]
	case ev.Ch >= '1' && ev.Ch <= '6':
		id := keyPin(int(ev.Ch - '0'))
		kp.levels[id] = !kp.levels[id]
	}
}

// readPin plays back queued detents: the read of A that starts a detent
// returns low with B set for the direction, the next one lets A go.
func (kp *keyboardPins) readPin(id pinID) bool {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	if id == pinEncA {
		if kp.turning {
			kp.turning = false
			kp.turns = kp.turns[1:]
			kp.levels[pinEncA] = true
		} else if len(kp.turns) > 0 {
			kp.turning = true
			kp.levels[pinEncA] = false
			// B high is clockwise
			kp.levels[pinEncB] = kp.turns[0] == turnCW
		}
	}
	return kp.levels[id]
}

func (kp *keyboardPins) closePins() {
	kp.mu.Lock()
	kp.done = true
	kp.mu.Unlock()
	termbox.Interrupt()
	termbox.Close()
}

package main

import "sync"

// noPins is the pin source for tests, everything idles high
type noPins struct {
	mu     sync.Mutex
	levels [pinCount]bool
	reads  int
}

func newNoPins() *noPins {
	np := &noPins{}
	np.clear()
	return np
}

func (np *noPins) initPins(settings configSettings) error {
	return nil
}

func (np *noPins) readPin(id pinID) bool {
	np.mu.Lock()
	defer np.mu.Unlock()
	np.reads++
	return np.levels[id]
}

func (np *noPins) closePins() {}

// set drives a pin, true is high
func (np *noPins) set(id pinID, high bool) {
	np.mu.Lock()
	np.levels[id] = high
	np.mu.Unlock()
}

// press pulls a pin low (active)
func (np *noPins) press(id pinID) {
	np.set(id, false)
}

// lift lets a pin go back high
func (np *noPins) lift(id pinID) {
	np.set(id, true)
}

func (np *noPins) clear() {
	np.mu.Lock()
	for i := range np.levels {
		np.levels[i] = true
	}
	np.mu.Unlock()
}

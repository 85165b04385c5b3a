package cpu

import "sync/atomic"

// NumKeys is the number of keys on the hex keypad, 0x0 through 0xF.
const NumKeys = 16

// The Input interface represents the Chip-8 hex keypad.
//
// The Machine polls it on its own time, the way the COSMAC VIP polled its
// keypad instead of taking interrupts.
type Input interface {
	IsPressed(key byte) bool
}

// Keypad is an Input whose keys are pressed and released by a frontend.
// It is safe to update from another goroutine while the Machine runs.
type Keypad struct {
	keys [NumKeys]atomic.Bool
}

func (k *Keypad) IsPressed(key byte) bool {
	if int(key) >= NumKeys {
		return false
	}
	return k.keys[key].Load()
}

func (k *Keypad) Press(key byte) {
	k.Set(key, true)
}

func (k *Keypad) Release(key byte) {
	k.Set(key, false)
}

// Set records the state of one key. Keys outside 0x0-0xF are ignored.
func (k *Keypad) Set(key byte, pressed bool) {
	if int(key) >= NumKeys {
		return
	}
	k.keys[key].Store(pressed)
}

// ReleaseAll lifts every key.
func (k *Keypad) ReleaseAll() {
	for i := range k.keys {
		k.keys[i].Store(false)
	}
}

// firstPressed returns the lowest key code currently held down.
func firstPressed(in Input) (key byte, ok bool) {
	for key = 0; key < NumKeys; key++ {
		if in.IsPressed(key) {
			return key, true
		}
	}
	return 0, false
}

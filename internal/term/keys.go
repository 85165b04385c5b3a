package term

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/internal/config"
)

// DefaultHold is how long a key stays down after its last key event.
// Terminals report presses and auto-repeat but never releases.
const DefaultHold = 150 * time.Millisecond

// Keys feeds terminal key events into a cpu.Keypad.
type Keys struct {
	pad    *cpu.Keypad
	keymap config.Keymap
	Hold   time.Duration

	mu     sync.Mutex
	timers [cpu.NumKeys]*time.Timer
}

func NewKeys(pad *cpu.Keypad, keymap config.Keymap) *Keys {
	return &Keys{pad: pad, keymap: keymap, Hold: DefaultHold}
}

// HandleEvent presses the Chip-8 key bound to ev, if any, and reports
// whether there was one.
func (k *Keys) HandleEvent(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	key, ok := k.keymap.Lookup(ev.Rune())
	if !ok {
		return false
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.pad.Press(key)
	if t := k.timers[key]; t != nil {
		t.Stop()
	}
	k.timers[key] = time.AfterFunc(k.Hold, func() { k.pad.Release(key) })
	return true
}

// ReleaseAll lets go of every key.
func (k *Keys) ReleaseAll() {
	k.mu.Lock()
	defer k.mu.Unlock()

	for i, t := range k.timers {
		if t != nil {
			t.Stop()
			k.timers[i] = nil
		}
	}
	k.pad.ReleaseAll()
}

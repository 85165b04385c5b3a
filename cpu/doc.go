// Package cpu implements the Chip-8 interpreter: 16 data registers, a 12-bit index
// register, a 16-level call stack, two countdown timers and 4KB of memory with the
// built-in hex font at address 0.
//
// A Machine never renders anything itself. Every cycle the caller hands it a Display
// to draw sprites on and an Input to read the hex keypad from, and drives the timers at
// its own (slower) cadence:
//
//	m := cpu.New(nil)
//	if err := m.Load(rom); err != nil {
//		return err
//	}
//	for {
//		if err := m.Step(display, keypad); err != nil {
//			return err
//		}
//		// ... every 1/60s:
//		if m.TickTimers() {
//			speaker.StopSound()
//		}
//	}
package cpu

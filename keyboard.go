package main

import (
	"fmt"

	"github.com/go-gl/glfw/v3.2/glfw"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/internal/config"
)

// Control is a set of emulator control keys pressed since the last Poll.
type Control uint8

const (
	PowerOff Control = 1 << iota
	Pause
	Unpause
	StepForward
	DumpState
)

var controlKeys = []struct {
	key glfw.Key
	ctl Control
}{
	{glfw.KeyEscape, PowerOff},
	{glfw.Key(config.PauseKey), Pause},
	{glfw.Key(config.UnpauseKey), Unpause},
	{glfw.Key(config.StepKey), StepForward},
	{glfw.Key(config.DumpKey), DumpState},
}

// KeyboardInput copies the state of a window's keyboard into a keypad.
type KeyboardInput struct {
	window *glfw.Window
	pad    *cpu.Keypad
	keys   [cpu.NumKeys]glfw.Key
	held   Control
}

// NewKeyboardInput binds the keys of keymap, which ParseKeymap has already
// checked against the control keys.
func NewKeyboardInput(window *glfw.Window, pad *cpu.Keypad, keymap config.Keymap) (*KeyboardInput, error) {
	input := &KeyboardInput{window: window, pad: pad}
	for i, r := range keymap {
		// GLFW key codes for printable keys are their ASCII characters.
		if r < ' ' || r > '~' {
			return nil, fmt.Errorf("key %X: no GLFW key for %q", i, r)
		}
		input.keys[i] = glfw.Key(r)
	}
	return input, nil
}

// Poll updates the keypad. Call glfw.PollEvents first. It returns the
// control keys that went down since the previous Poll.
func (input *KeyboardInput) Poll() Control {
	for i, k := range input.keys {
		input.pad.Set(byte(i), input.window.GetKey(k) == glfw.Press)
	}

	var held Control
	for _, c := range controlKeys {
		if input.window.GetKey(c.key) == glfw.Press {
			held |= c.ctl
		}
	}
	pressed := held &^ input.held
	input.held = held
	return pressed
}

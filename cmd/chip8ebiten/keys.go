package main

import (
	"fmt"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/internal/config"
)

var punctuation = map[rune]string{
	',':  "Comma",
	'.':  "Period",
	'/':  "Slash",
	';':  "Semicolon",
	'\'': "Quote",
	'[':  "BracketLeft",
	']':  "BracketRight",
	'-':  "Minus",
	'=':  "Equal",
	'`':  "Backquote",
	'\\': "Backslash",
}

// keyName is the ebiten.Key name of the key that types r.
func keyName(r rune) (string, bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return string(r), true
	case r >= '0' && r <= '9':
		return "Digit" + string(r), true
	}
	name, ok := punctuation[r]
	return name, ok
}

func ebitenKeys(keymap config.Keymap) ([cpu.NumKeys]ebiten.Key, error) {
	byName := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		byName[k.String()] = k
	}

	var keys [cpu.NumKeys]ebiten.Key
	for i, r := range keymap {
		name, ok := keyName(unicode.ToUpper(r))
		if !ok {
			return keys, fmt.Errorf("key %X: no keyboard key for %q", i, r)
		}
		k, ok := byName[name]
		if !ok {
			return keys, fmt.Errorf("key %X: no keyboard key named %s", i, name)
		}
		keys[i] = k
	}
	return keys, nil
}

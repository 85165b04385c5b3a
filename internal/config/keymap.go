package config

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mpingram/chip8vm/internal/translate"
)

// Control keys of the windowed frontend. A keymap may not use them.
const (
	PauseKey   = 'P'
	UnpauseKey = '['
	StepKey    = ']'
	DumpKey    = 'O'
)

const controlKeys = string(PauseKey) + string(UnpauseKey) + string(StepKey) + string(DumpKey)

// Keymap assigns a keyboard character to each of the 16 Chip-8 keys.
// Characters are stored upper-case.
type Keymap [16]rune

// ParseKeymap parses a layout of exactly 16 distinct characters, the
// first one for key 0.
func ParseKeymap(s string) (Keymap, error) {
	var k Keymap
	if n := utf8.RuneCountInString(s); n != len(k) {
		return k, translate.Error("keymap %q: need %d keys, got %d", s, len(k), n)
	}

	seen := make(map[rune]int)
	i := 0
	for _, r := range s {
		r = unicode.ToUpper(r)
		switch {
		case unicode.IsSpace(r) || !unicode.IsPrint(r):
			return k, translate.Error("keymap %q: key %X is not a printable character", s, i)
		case strings.ContainsRune(controlKeys, r):
			return k, translate.Error("keymap %q: %q is a control key", s, r)
		}
		if j, dup := seen[r]; dup {
			return k, translate.Error("keymap %q: %q used for both key %X and key %X", s, r, j, i)
		}
		seen[r] = i
		k[i] = r
		i++
	}
	return k, nil
}

// Lookup returns the Chip-8 key bound to r, ignoring case.
func (k Keymap) Lookup(r rune) (key byte, ok bool) {
	r = unicode.ToUpper(r)
	for i, kr := range k {
		if kr == r {
			return byte(i), true
		}
	}
	return 0, false
}

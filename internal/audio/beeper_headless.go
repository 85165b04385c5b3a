//go:build headless

package audio

import "errors"

// Beeper is unavailable in headless builds.
type Beeper struct {
	Silent
}

func NewBeeper() (*Beeper, error) {
	return nil, errors.New("audio: built without sound support")
}

// Package audio plays the Chip-8 buzzer.
//
// The buzzer is a single tone, on while the sound timer is non-zero. Both
// speakers here satisfy runner.Speaker.
package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

const (
	SampleRate = 44100
	ToneHz     = 440
	Volume     = 0.2
)

// Silent is a speaker that makes no sound.
type Silent struct{}

func (Silent) StartSound() {}
func (Silent) StopSound()  {}
func (Silent) Close() error {
	return nil
}

// squareWave is an endless mono float32 little-endian square wave that
// outputs silence while off.
type squareWave struct {
	on     atomic.Bool
	period int // samples per cycle
	phase  int
}

func newSquareWave(sampleRate, hz int) *squareWave {
	return &squareWave{period: max(2, sampleRate/hz)}
}

func (w *squareWave) Read(p []byte) (int, error) {
	n := len(p) / 4
	on := w.on.Load()
	for i := 0; i < n; i++ {
		var sample float32
		if on {
			sample = Volume
			if w.phase >= w.period/2 {
				sample = -Volume
			}
		}
		w.phase = (w.phase + 1) % w.period
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sample))
	}
	return n * 4, nil
}

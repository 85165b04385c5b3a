//go:build !headless

package audio

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays a square wave through the system's audio device.
type Beeper struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	wave   *squareWave
}

// NewBeeper opens the audio device. There can only be one per process.
func NewBeeper() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	b := &Beeper{
		ctx:  ctx,
		wave: newSquareWave(SampleRate, ToneHz),
	}
	b.player = ctx.NewPlayer(b.wave)
	b.player.Play()
	return b, nil
}

func (b *Beeper) StartSound() { b.wave.on.Store(true) }
func (b *Beeper) StopSound()  { b.wave.on.Store(false) }

func (b *Beeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player == nil {
		return nil
	}
	b.wave.on.Store(false)
	err := b.player.Close()
	b.player = nil
	return err
}

package runner

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/screen"
)

type fakeSpeaker struct {
	starts, stops int
}

func (s *fakeSpeaker) StartSound() { s.starts++ }
func (s *fakeSpeaker) StopSound()  { s.stops++ }

func words(ops ...uint16) []byte {
	var b []byte
	for _, op := range ops {
		b = append(b, byte(op>>8), byte(op))
	}
	return b
}

type rig struct {
	*Runner
	speaker *fakeSpeaker
	frames  int
	log     bytes.Buffer
}

func newRig(t *testing.T, cycles int, ops ...uint16) *rig {
	t.Helper()

	r := &rig{speaker: &fakeSpeaker{}}
	m := cpu.New(nil)
	m.Seed(1)
	r.Runner = New(m, screen.New(), &cpu.Keypad{}, Options{
		CyclesPerFrame: cycles,
		TimerHz:        1000,
		Speaker:        r.speaker,
		Presenter:      screen.PresenterFunc(func(screen.Frame) { r.frames++ }),
		Logger:         log.New(&r.log, "", 0),
	})
	require.NoError(t, r.Swap(words(ops...)))
	return r
}

func TestRunner_FrameRunsCycles(t *testing.T) {
	r := newRig(t, 3, 0x7001, 0x7001, 0x7001, 0x7001, 0x1208)

	require.NoError(t, r.Frame())
	st := r.State()
	assert.Equal(t, byte(3), st.V[0])
	assert.Equal(t, uint16(0x206), st.PC)

	require.NoError(t, r.Frame())
	st = r.State()
	assert.Equal(t, byte(4), st.V[0])
	assert.Equal(t, uint16(0x208), st.PC)
}

func TestRunner_TimersTickOncePerFrame(t *testing.T) {
	// LD V0, 5; LD DT, V0; JP self
	r := newRig(t, 10, 0x6005, 0xF015, 0x1204)

	require.NoError(t, r.Frame())
	assert.Equal(t, byte(4), r.State().DT)

	require.NoError(t, r.Frame())
	assert.Equal(t, byte(3), r.State().DT)
}

func TestRunner_Sound(t *testing.T) {
	// LD V0, 10; LD ST, V0; JP self
	r := newRig(t, 4, 0x600A, 0xF018, 0x1204)

	require.NoError(t, r.Frame())
	assert.Equal(t, 1, r.speaker.starts)
	assert.Equal(t, byte(9), r.State().ST)

	for i := 0; i < 8; i++ {
		require.NoError(t, r.Frame())
	}
	assert.Equal(t, 1, r.speaker.starts)
	assert.Equal(t, 0, r.speaker.stops)

	require.NoError(t, r.Frame())
	assert.Equal(t, byte(0), r.State().ST)
	assert.Equal(t, 1, r.speaker.stops)

	require.NoError(t, r.Frame())
	assert.Equal(t, 1, r.speaker.starts)
	assert.Equal(t, 1, r.speaker.stops)
}

func TestRunner_PauseSilences(t *testing.T) {
	r := newRig(t, 4, 0x600A, 0xF018, 0x1204)
	require.NoError(t, r.Frame())
	require.Equal(t, 1, r.speaker.starts)

	r.Pause()
	assert.True(t, r.Paused())
	assert.Equal(t, 1, r.speaker.stops)

	st := r.State()
	require.NoError(t, r.Frame())
	assert.Equal(t, st, r.State(), "paused frames change nothing")

	r.Resume()
	require.NoError(t, r.Frame())
	assert.Equal(t, 2, r.speaker.starts)
}

func TestRunner_Step(t *testing.T) {
	r := newRig(t, 10, 0x6005, 0xF015, 0x7001, 0x7001)

	require.NoError(t, r.Step())
	require.NoError(t, r.Step())
	assert.True(t, r.Paused())

	st := r.State()
	assert.Equal(t, uint16(0x204), st.PC)
	assert.Equal(t, byte(5), st.DT, "timers only tick on frames")
}

func TestRunner_Breakpoint(t *testing.T) {
	r := newRig(t, 10, 0x7001, 0x7001, 0x7001, 0x7001, 0x1208)
	r.SetBreakpoint(0x204)

	require.NoError(t, r.Frame())
	assert.True(t, r.Paused())
	st := r.State()
	assert.Equal(t, uint16(0x204), st.PC)
	assert.Equal(t, byte(2), st.V[0])
	assert.Contains(t, r.log.String(), "break at 204")

	r.Resume()
	require.NoError(t, r.Frame())
	assert.False(t, r.Paused())
	assert.Equal(t, byte(4), r.State().V[0])

	assert.ElementsMatch(t, []uint16{0x204}, r.Breakpoints())
	r.ClearBreakpoint(0x204)
	assert.Empty(t, r.Breakpoints())
}

func TestRunner_FaultPauses(t *testing.T) {
	r := newRig(t, 4, 0x00EE)

	err := r.Frame()
	var fault cpu.FaultError
	require.True(t, errors.As(err, &fault))
	assert.ErrorIs(t, err, cpu.ErrStackUnderflow)
	assert.Equal(t, uint16(0x200), fault.PC)
	assert.True(t, r.Paused())

	require.NoError(t, r.Reset())
	assert.Equal(t, uint16(0x200), r.State().PC)
}

func TestRunner_Swap(t *testing.T) {
	r := newRig(t, 2, 0x7001, 0x7001)
	require.NoError(t, r.Frame())
	r.Screen().Draw(0, 0, []byte{0xff})

	require.NoError(t, r.Swap(words(0x6042)))
	st := r.State()
	assert.Equal(t, uint16(0x200), st.PC)
	assert.Equal(t, byte(0), st.V[0])
	assert.False(t, r.Screen().Pixel(0, 0), "swap clears the screen")

	err := r.Swap(make([]byte, cpu.MaxProgramSize+1))
	assert.ErrorIs(t, err, cpu.ErrProgramTooLarge)

	// The old program still runs.
	require.NoError(t, r.Frame())
	assert.Equal(t, byte(0x42), r.State().V[0])
}

func TestRunner_ResetEmptyProgram(t *testing.T) {
	r := New(cpu.New(nil), screen.New(), &cpu.Keypad{}, Options{})
	require.NoError(t, r.Swap([]byte{}))

	assert.NoError(t, r.Reset())
	assert.NoError(t, r.Frame())
}

func TestRunner_ResetWithoutProgram(t *testing.T) {
	r := New(cpu.New(nil), screen.New(), &cpu.Keypad{}, Options{})

	assert.ErrorIs(t, r.Reset(), cpu.ErrNoProgram)
	assert.ErrorIs(t, r.Frame(), cpu.ErrNoProgram)
}

func TestRunner_Presents(t *testing.T) {
	// DRW V0, V0, 1 then spin
	r := newRig(t, 1, 0xD001, 0x1202)

	require.NoError(t, r.Frame())
	assert.Equal(t, 1, r.frames)

	require.NoError(t, r.Frame())
	assert.Equal(t, 1, r.frames, "nothing new to present")
}

func TestRunner_Run(t *testing.T) {
	r := newRig(t, 1, 0x7001, 0x1200)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := r.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotZero(t, r.State().V[0])
}

func TestRunner_RunStopsOnFault(t *testing.T) {
	r := newRig(t, 1, 0x00EE)

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, cpu.ErrStackUnderflow)
}

// Package runner drives a cpu.Machine in real time.
//
// Every frame, normally 60 times a second, the Runner executes a batch of
// instructions, ticks the delay and sound timers once and presents the
// screen if it changed. It can also pause, single-step, stop at
// breakpoints and swap in a new program.
package runner

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/mpingram/chip8vm/screen"
)

// A Speaker makes the buzzer sound while the sound timer runs.
type Speaker interface {
	StartSound()
	StopSound()
}

type Options struct {
	// CyclesPerFrame is the number of instructions per frame.
	CyclesPerFrame int
	// TimerHz is the frame rate used by Run.
	TimerHz        int

	// Speaker and Presenter may be nil.
	Speaker   Speaker
	Presenter screen.Presenter
	Logger    *log.Logger
}

type Runner struct {
	mu sync.Mutex

	m      *cpu.Machine
	screen *screen.Buffer
	input  cpu.Input
	rom    []byte

	cycles    int
	timerHz   int
	speaker   Speaker
	presenter screen.Presenter
	logger    *log.Logger

	paused      bool
	sounding    bool
	breakpoints map[uint16]bool
}

func New(m *cpu.Machine, scr *screen.Buffer, input cpu.Input, opts Options) *Runner {
	r := &Runner{
		m:           m,
		screen:      scr,
		input:       input,
		cycles:      max(1, opts.CyclesPerFrame),
		timerHz:     opts.TimerHz,
		speaker:     opts.Speaker,
		presenter:   opts.Presenter,
		logger:      opts.Logger,
		breakpoints: make(map[uint16]bool),
	}
	if r.timerHz <= 0 {
		r.timerHz = 60
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard, "", 0)
	}
	return r
}

// Swap resets the machine and loads rom in place of the current program.
// A program that does not fit is rejected and the old one keeps running.
func (r *Runner) Swap(rom []byte) error {
	if len(rom) > cpu.MaxProgramSize {
		return cpu.ProgramTooLargeError{Size: len(rom), Max: cpu.MaxProgramSize}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Reset tells "no program" from an empty one by r.rom being nil.
	r.rom = append(make([]byte, 0, len(rom)), rom...)
	r.reset()
	return r.m.Load(r.rom)
}

// Reset restarts the current program from the beginning.
func (r *Runner) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reset()
	if r.rom == nil {
		return cpu.ErrNoProgram
	}
	return r.m.Load(r.rom)
}

func (r *Runner) reset() {
	r.m.Reset()
	r.screen.Clear()
	r.silence()
}

// Frame runs one frame: a batch of instructions, one timer tick and a
// present. A paused Runner only presents.
//
// Frame returns the fault if the program crashes; the Runner pauses so
// that the machine can be inspected.
func (r *Runner) Frame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.paused {
		if err := r.frame(); err != nil {
			r.pause()
			r.present()
			return err
		}
	}
	r.present()
	return nil
}

func (r *Runner) frame() error {
	for i, n := 0, r.cycles; i < n; i++ {
		if err := r.m.Step(r.screen, r.input); err != nil {
			return err
		}
		if pc := r.m.PC(); r.breakpoints[pc] {
			r.logger.Printf("break at %03x", pc)
			r.pause()
			break
		}
	}

	if !r.sounding && r.m.SoundTimer() > 0 && !r.paused {
		r.sounding = true
		if r.speaker != nil {
			r.speaker.StartSound()
		}
	}
	if r.m.TickTimers() {
		r.silence()
	}
	return nil
}

// Step executes a single instruction and pauses the Runner. Timers do not
// tick.
func (r *Runner) Step() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pause()
	err := r.m.Step(r.screen, r.input)
	r.present()
	return err
}

// Run calls Frame at the timer rate until ctx is done or the program
// faults.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.timerHz))
	defer ticker.Stop()
	defer func() {
		r.mu.Lock()
		r.silence()
		r.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Frame(); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pause()
}

func (r *Runner) pause() {
	r.paused = true
	r.silence()
}

func (r *Runner) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.paused = false
}

func (r *Runner) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.paused
}

// SetBreakpoint pauses the Runner whenever the program counter reaches
// addr during a frame.
func (r *Runner) SetBreakpoint(addr uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.breakpoints[addr&0xfff] = true
}

func (r *Runner) ClearBreakpoint(addr uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.breakpoints, addr&0xfff)
}

// ClearBreakpoints removes every breakpoint.
func (r *Runner) ClearBreakpoints() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.breakpoints)
}

// Breakpoints returns the breakpoint addresses in no particular order.
func (r *Runner) Breakpoints() []uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	addrs := make([]uint16, 0, len(r.breakpoints))
	for addr := range r.breakpoints {
		addrs = append(addrs, addr)
	}
	return addrs
}

// State returns a snapshot of the machine.
func (r *Runner) State() cpu.State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.m.State()
}

// Screen returns the framebuffer the machine draws on.
func (r *Runner) Screen() *screen.Buffer {
	return r.screen
}

func (r *Runner) present() {
	if r.presenter != nil {
		r.screen.Present(r.presenter)
	}
}

func (r *Runner) silence() {
	if !r.sounding {
		return
	}
	r.sounding = false
	if r.speaker != nil {
		r.speaker.StopSound()
	}
}

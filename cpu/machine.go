package cpu

import (
	"io"
	"log"
	"math/rand"
	"time"
)

const (
	MemorySize     = 4096
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart

	addressMask = MemorySize - 1
)

// Quirks selects between behaviours that differ across Chip-8 interpreters.
type Quirks struct {
	// LoadStoreIncrementsI makes Fx55 and Fx65 leave I pointing past the
	// last register transferred, as the COSMAC VIP interpreter did.
	LoadStoreIncrementsI bool
}

// Machine is an emulated Chip-8 CPU and its 4KB of RAM.
//
// To run a program, Load it and call Step once per instruction, handing in the
// Display to draw on and the Input to read keys from. The two timers count down
// only when TickTimers is called, which the caller should do 60 times a second
// no matter how fast it steps.
type Machine struct {
	// program counter
	pc uint16
	// address register
	i uint16
	// data registers
	v [16]byte
	// delay and sound timers.
	dt byte
	st byte

	stack  Stack
	memory [MemorySize]byte

	loaded bool
	fault  error

	// Trace logs every executed instruction.
	Trace  bool
	Quirks Quirks

	logger *log.Logger
	rand   *rand.Rand
}

// New returns a reset Machine with no program loaded. Diagnostics go to
// logger; a nil logger discards them.
func New(logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := &Machine{
		logger: logger,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	m.Reset()
	return m
}

// Reset puts the Machine back in its power-on state: registers, timers and
// stack zeroed, memory cleared except for the font, PC at ProgramStart.
// Any loaded program is forgotten.
func (m *Machine) Reset() {
	m.pc = ProgramStart
	m.i = 0
	m.v = [16]byte{}
	m.dt = 0
	m.st = 0
	m.stack.Reset()
	m.memory = [MemorySize]byte{}
	loadFontSprites(&m.memory)

	m.loaded = false
	m.fault = nil
}

// Seed reseeds the source used by RND, for reproducible runs.
func (m *Machine) Seed(seed int64) {
	m.rand.Seed(seed)
}

// Load copies program into memory at ProgramStart. A program that does not
// fit is rejected with a ProgramTooLargeError and leaves the Machine unable
// to Step until a program loads successfully.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		m.loaded = false
		return ProgramTooLargeError{Size: len(program), Max: MaxProgramSize}
	}

	clear(m.memory[ProgramStart:])
	copy(m.memory[ProgramStart:], program)
	m.loaded = true
	return nil
}

// Step fetches, decodes and executes one instruction.
//
// Unknown instructions are logged and skipped. The only errors are faults
// (stack overflow or underflow) and stepping without a program; after a fault
// the PC stays on the offending instruction and every further Step returns
// the same error until the Machine is Reset.
func (m *Machine) Step(display Display, input Input) error {
	if !m.loaded {
		return ErrNoProgram
	}
	if m.fault != nil {
		return m.fault
	}

	pc := m.pc
	opcode := m.readOpcode(pc)
	if m.Trace {
		m.logger.Printf("%03x %04x: %v", pc, uint16(opcode), opcode)
	}

	// exec sees the PC already pointing at the next instruction.
	m.pc += 2
	if err := m.exec(opcode, display, input); err != nil {
		m.pc = pc
		m.fault = FaultError{Opcode: opcode, PC: pc, Err: err}
		return m.fault
	}
	return nil
}

// TickTimers counts both timers down by one, stopping at zero. It reports
// true exactly when the sound timer reached zero on this tick, which is the
// caller's cue to silence the buzzer.
func (m *Machine) TickTimers() (silence bool) {
	if m.dt > 0 {
		m.dt--
	}
	if m.st > 0 {
		m.st--
		return m.st == 0
	}
	return false
}

func (m *Machine) PC() uint16       { return m.pc }
func (m *Machine) I() uint16        { return m.i }
func (m *Machine) V(x byte) byte    { return m.v[x&0x0f] }
func (m *Machine) DelayTimer() byte { return m.dt }
func (m *Machine) SoundTimer() byte { return m.st }
func (m *Machine) Loaded() bool     { return m.loaded }
func (m *Machine) Fault() error     { return m.fault }

// Read returns the memory byte at addr, wrapped into the 4KB address space.
func (m *Machine) Read(addr uint16) byte {
	return m.memory[addr&addressMask]
}

// State is a read-only snapshot of the Machine.
type State struct {
	PC     uint16
	I      uint16
	V      [16]byte
	DT     byte
	ST     byte
	SP     int
	Stack  []uint16
	Memory [MemorySize]byte
}

// State returns a copy of the Machine's registers, stack and memory.
func (m *Machine) State() State {
	return State{
		PC:     m.pc,
		I:      m.i,
		V:      m.v,
		DT:     m.dt,
		ST:     m.st,
		SP:     m.stack.Len(),
		Stack:  m.stack.Slice(),
		Memory: m.memory,
	}
}

// Next returns the instruction at PC.
func (s *State) Next() Opcode {
	return Opcode(uint16(s.Memory[s.PC&addressMask])<<8 | uint16(s.Memory[(s.PC+1)&addressMask]))
}

func (m *Machine) readOpcode(addr uint16) Opcode {
	// the opcode we want to read is the next two bytes,
	// stored big-endian.
	high := m.memory[addr&addressMask]
	low := m.memory[(addr+1)&addressMask]
	return Opcode(uint16(high)<<8 | uint16(low))
}

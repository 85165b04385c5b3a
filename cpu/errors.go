package cpu

import (
	"errors"

	"github.com/mpingram/chip8vm/internal/translate"
)

var f = translate.From

var (
	ErrStackOverflow   = errors.New(f("stack overflow"))
	ErrStackUnderflow  = errors.New(f("stack underflow"))
	ErrProgramTooLarge = errors.New(f("program too large"))
	ErrNoProgram       = errors.New(f("no program loaded"))
)

// ProgramTooLargeError is returned by Load when a program does not fit
// between ProgramStart and the end of memory.
type ProgramTooLargeError struct {
	Size int
	Max  int
}

func (err ProgramTooLargeError) Error() string {
	return f("program is %v bytes, at most %v fit in memory", err.Size, err.Max)
}

func (err ProgramTooLargeError) Is(target error) bool {
	return target == ErrProgramTooLarge
}

// UnimplementedOpcodeError describes an instruction the decoder does not know.
// It is a diagnostic only: the Machine logs it and carries on.
type UnimplementedOpcodeError struct {
	Opcode Opcode
	PC     uint16
}

func (err UnimplementedOpcodeError) Error() string {
	return f("unimplemented opcode %04x at %03x", uint16(err.Opcode), err.PC)
}

func (err UnimplementedOpcodeError) Is(target error) (ok bool) {
	_, ok = target.(UnimplementedOpcodeError)
	return
}

// FaultError is a fatal condition raised while executing the instruction at PC.
// The Machine refuses to run further until it is Reset.
type FaultError struct {
	Opcode Opcode
	PC     uint16
	Err    error
}

func (err FaultError) Error() string {
	return f("%03x: %v: %v", err.PC, err.Opcode.String(), err.Err)
}

func (err FaultError) Unwrap() error {
	return err.Err
}

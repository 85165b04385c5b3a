package cpu

import "fmt"

// An Opcode is one big-endian 16-bit Chip-8 instruction.
//
// key:
// ------
// nnn - low 12 bits of opcode
// n   - low 4 bits of opcode
// x   - low 4 bits of opcode's high byte
// y   - high 4 bits of opcode's low byte
// nn  - opcode's low byte
type Opcode uint16

func (op Opcode) Op() byte    { return byte(op >> 12) }
func (op Opcode) X() byte     { return byte(op>>8) & 0x0f }
func (op Opcode) Y() byte     { return byte(op>>4) & 0x0f }
func (op Opcode) N() byte     { return byte(op) & 0x0f }
func (op Opcode) NN() byte    { return byte(op) }
func (op Opcode) NNN() uint16 { return uint16(op) & 0x0fff }

// String disassembles the opcode. Bit patterns the interpreter does not
// implement come out as DATA.
func (op Opcode) String() string {
	x, y := op.X(), op.Y()

	switch op.Op() {
	case 0x0:
		switch op.N() {
		case 0x0:
			return "CLS"
		case 0xe:
			return "RET"
		}
	case 0x1:
		return fmt.Sprintf("JP $%03X", op.NNN())
	case 0x2:
		return fmt.Sprintf("CALL $%03X", op.NNN())
	case 0x3:
		return fmt.Sprintf("SE V%X, $%02X", x, op.NN())
	case 0x4:
		return fmt.Sprintf("SNE V%X, $%02X", x, op.NN())
	case 0x5:
		return fmt.Sprintf("SE V%X, V%X", x, y)
	case 0x6:
		return fmt.Sprintf("LD V%X, $%02X", x, op.NN())
	case 0x7:
		return fmt.Sprintf("ADD V%X, $%02X", x, op.NN())
	case 0x8:
		switch op.N() {
		case 0x0:
			return fmt.Sprintf("LD V%X, V%X", x, y)
		case 0x1:
			return fmt.Sprintf("OR V%X, V%X", x, y)
		case 0x2:
			return fmt.Sprintf("AND V%X, V%X", x, y)
		case 0x3:
			return fmt.Sprintf("XOR V%X, V%X", x, y)
		case 0x4:
			return fmt.Sprintf("ADD V%X, V%X", x, y)
		case 0x5:
			return fmt.Sprintf("SUB V%X, V%X", x, y)
		case 0x6:
			return fmt.Sprintf("SHR V%X", x)
		case 0x7:
			return fmt.Sprintf("SUBN V%X, V%X", x, y)
		case 0xe:
			return fmt.Sprintf("SHL V%X", x)
		}
	case 0x9:
		return fmt.Sprintf("SNE V%X, V%X", x, y)
	case 0xa:
		return fmt.Sprintf("LD I, $%03X", op.NNN())
	case 0xb:
		return fmt.Sprintf("JP V0, $%03X", op.NNN())
	case 0xc:
		return fmt.Sprintf("RND V%X, $%02X", x, op.NN())
	case 0xd:
		return fmt.Sprintf("DRW V%X, V%X, $%X", x, y, op.N())
	case 0xe:
		switch op.NN() {
		case 0x9e:
			return fmt.Sprintf("SKP V%X", x)
		case 0xa1:
			return fmt.Sprintf("SKNP V%X", x)
		}
	case 0xf:
		switch op.NN() {
		case 0x07:
			return fmt.Sprintf("LD V%X, DT", x)
		case 0x0a:
			return fmt.Sprintf("LD V%X, K", x)
		case 0x15:
			return fmt.Sprintf("LD DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("LD ST, V%X", x)
		case 0x1e:
			return fmt.Sprintf("ADD I, V%X", x)
		case 0x29:
			return fmt.Sprintf("LD F, V%X", x)
		case 0x33:
			return fmt.Sprintf("LD B, V%X", x)
		case 0x55:
			return fmt.Sprintf("LD [I], V%X", x)
		case 0x65:
			return fmt.Sprintf("LD V%X, [I]", x)
		}
	}

	return fmt.Sprintf("DATA $%04X", uint16(op))
}

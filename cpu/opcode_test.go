package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcode_Fields(t *testing.T) {
	assert := assert.New(t)

	op := Opcode(0xd7a3)
	assert.Equal(byte(0xd), op.Op())
	assert.Equal(byte(0x7), op.X())
	assert.Equal(byte(0xa), op.Y())
	assert.Equal(byte(0x3), op.N())
	assert.Equal(byte(0xa3), op.NN())
	assert.Equal(uint16(0x7a3), op.NNN())
}

func TestOpcode_String(t *testing.T) {
	for op, want := range map[uint16]string{
		0x00e0: "CLS",
		0x00ee: "RET",
		0x0000: "CLS",
		0x012e: "RET",
		0x0123: "DATA $0123",
		0x1abc: "JP $ABC",
		0x2abc: "CALL $ABC",
		0x3a12: "SE VA, $12",
		0x4a12: "SNE VA, $12",
		0x5ab0: "SE VA, VB",
		0x6a12: "LD VA, $12",
		0x7a12: "ADD VA, $12",
		0x8ab0: "LD VA, VB",
		0x8ab1: "OR VA, VB",
		0x8ab2: "AND VA, VB",
		0x8ab3: "XOR VA, VB",
		0x8ab4: "ADD VA, VB",
		0x8ab5: "SUB VA, VB",
		0x8ab6: "SHR VA",
		0x8ab7: "SUBN VA, VB",
		0x8abe: "SHL VA",
		0x8ab9: "DATA $8AB9",
		0x9ab0: "SNE VA, VB",
		0xa123: "LD I, $123",
		0xb123: "JP V0, $123",
		0xca12: "RND VA, $12",
		0xdab5: "DRW VA, VB, $5",
		0xea9e: "SKP VA",
		0xeaa1: "SKNP VA",
		0xea00: "DATA $EA00",
		0xfa07: "LD VA, DT",
		0xfa0a: "LD VA, K",
		0xfa15: "LD DT, VA",
		0xfa18: "LD ST, VA",
		0xfa1e: "ADD I, VA",
		0xfa29: "LD F, VA",
		0xfa33: "LD B, VA",
		0xfa55: "LD [I], VA",
		0xfa65: "LD VA, [I]",
		0xfaff: "DATA $FAFF",
	} {
		assert.Equal(t, want, Opcode(op).String(), "%04x", op)
	}
}

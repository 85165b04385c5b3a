package cpu

// exec executes a single decoded opcode. The PC already points at the next
// instruction; jumps, calls, returns and skips move it from there.
func (m *Machine) exec(opcode Opcode, display Display, input Input) error {
	var (
		x   = opcode.X()
		y   = opcode.Y()
		nn  = opcode.NN()
		nnn = opcode.NNN()
	)

	switch opcode.Op() {

	// The 0 family is told apart by its low nibble alone, so 0000 clears
	// the screen too.
	case 0x0:
		switch opcode.N() {
		// 00E0: CLS (clear)
		case 0x0:
			display.Clear()

		// 00EE: RET (return)
		case 0xe:
			addr, err := m.stack.Pop()
			if err != nil {
				return err
			}
			m.pc = addr

		default:
			m.unimplemented(opcode)
		}

	// 1nnn: JP addr
	case 0x1:
		m.pc = nnn

	// 2nnn: CALL addr
	case 0x2:
		if err := m.stack.Push(m.pc); err != nil {
			return err
		}
		m.pc = nnn

	// 3xnn: SE Vx byte (skip if equal)
	case 0x3:
		m.skipIf(m.v[x] == nn)

	// 4xnn: SNE Vx byte (skip if not equal)
	case 0x4:
		m.skipIf(m.v[x] != nn)

	// 5xy0: SE Vx Vy (skip if equal)
	case 0x5:
		m.skipIf(m.v[x] == m.v[y])

	// 6xnn: LD Vx byte
	case 0x6:
		m.v[x] = nn

	// 7xnn: ADD Vx byte. Wraps, never touches VF.
	case 0x7:
		m.v[x] += nn

	case 0x8:
		m.alu(opcode, x, y)

	// 9xy0: SNE Vx Vy (skip if not equal)
	case 0x9:
		m.skipIf(m.v[x] != m.v[y])

	// Annn: LD I addr
	case 0xa:
		m.i = nnn

	// Bnnn: JP V0 addr
	case 0xb:
		m.pc = nnn + uint16(m.v[0])

	// Cxnn: RND Vx byte (Vx = random byte AND nn)
	case 0xc:
		m.v[x] = byte(m.rand.Intn(256)) & nn

	// Dxyn: DRW Vx Vy n (draw the n-byte sprite at I at Vx,Vy, VF = collision)
	case 0xd:
		rows := make([]byte, opcode.N())
		for row := range rows {
			rows[row] = m.memory[(m.i+uint16(row))&addressMask]
		}
		m.v[0xf] = flag(display.Draw(m.v[x], m.v[y], rows))

	case 0xe:
		key := m.v[x]
		switch nn {
		// Ex9E: SKP Vx (skip if the key in Vx is pressed)
		case 0x9e:
			m.skipIf(input.IsPressed(key))

		// ExA1: SKNP Vx (skip if the key in Vx is not pressed)
		case 0xa1:
			m.skipIf(!input.IsPressed(key))

		default:
			m.unimplemented(opcode)
		}

	case 0xf:
		m.misc(opcode, x, input)
	}

	return nil
}

// alu executes the 8xyN register-to-register family. VF is written after
// the result so that it holds the flag even when x is F.
func (m *Machine) alu(opcode Opcode, x, y byte) {
	vx, vy := m.v[x], m.v[y]

	switch opcode.N() {
	// 8xy0: LD Vx Vy
	case 0x0:
		m.v[x] = vy

	// 8xy1: OR Vx Vy
	case 0x1:
		m.v[x] = vx | vy

	// 8xy2: AND Vx Vy
	case 0x2:
		m.v[x] = vx & vy

	// 8xy3: XOR Vx Vy
	case 0x3:
		m.v[x] = vx ^ vy

	// 8xy4: ADD Vx Vy (VF = carry)
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		m.v[x] = byte(sum)
		m.v[0xf] = flag(sum > 0xff)

	// 8xy5: SUB Vx Vy (VF = NOT borrow)
	case 0x5:
		m.v[x] = vx - vy
		m.v[0xf] = flag(vx >= vy)

	// 8xy6: SHR Vx (VF = bit shifted out)
	case 0x6:
		m.v[x] = vx >> 1
		m.v[0xf] = vx & 0x01

	// 8xy7: SUBN Vx Vy (Vx = Vy - Vx, VF = NOT borrow)
	case 0x7:
		m.v[x] = vy - vx
		m.v[0xf] = flag(vy >= vx)

	// 8xyE: SHL Vx (VF = bit shifted out)
	case 0xe:
		m.v[x] = vx << 1
		m.v[0xf] = (vx >> 7) & 0x01

	default:
		m.unimplemented(opcode)
	}
}

// misc executes the Fxnn family: timers, keypad wait and the I register.
func (m *Machine) misc(opcode Opcode, x byte, input Input) {
	switch opcode.NN() {
	// Fx07: LD Vx DT
	case 0x07:
		m.v[x] = m.dt

	// Fx0A: LD Vx K (wait for a key press, store its code in Vx)
	case 0x0a:
		if key, ok := firstPressed(input); ok {
			m.v[x] = key
		} else {
			// run this same instruction again next cycle.
			m.pc -= 2
		}

	// Fx15: LD DT Vx
	case 0x15:
		m.dt = m.v[x]

	// Fx18: LD ST Vx
	case 0x18:
		m.st = m.v[x]

	// Fx1E: ADD I Vx (no flag)
	case 0x1e:
		m.i += uint16(m.v[x])

	// Fx29: LD F Vx (I = address of the font glyph for the digit in Vx)
	case 0x29:
		m.i = FontAddress + uint16(m.v[x])*GlyphSize

	// Fx33: LD B Vx (BCD of Vx at I, I+1, I+2)
	case 0x33:
		vx := m.v[x]
		m.write(m.i, vx/100)
		m.write(m.i+1, (vx/10)%10)
		m.write(m.i+2, vx%10)

	// Fx55: LD [I] Vx (store V0 through Vx at I)
	case 0x55:
		for r := uint16(0); r <= uint16(x); r++ {
			m.write(m.i+r, m.v[r])
		}
		if m.Quirks.LoadStoreIncrementsI {
			m.i += uint16(x) + 1
		}

	// Fx65: LD Vx [I] (read V0 through Vx from I)
	case 0x65:
		for r := uint16(0); r <= uint16(x); r++ {
			m.v[r] = m.Read(m.i + r)
		}
		if m.Quirks.LoadStoreIncrementsI {
			m.i += uint16(x) + 1
		}

	default:
		m.unimplemented(opcode)
	}
}

func (m *Machine) skipIf(cond bool) {
	if cond {
		m.pc += 2
	}
}

func (m *Machine) write(addr uint16, b byte) {
	m.memory[addr&addressMask] = b
}

// unimplemented logs an unknown instruction. Execution carries on with
// the next one.
func (m *Machine) unimplemented(opcode Opcode) {
	m.logger.Print(UnimplementedOpcodeError{Opcode: opcode, PC: m.pc - 2})
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

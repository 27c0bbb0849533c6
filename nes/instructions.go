package nes

// instruction describes one opcode: its mnemonic (for logging), its
// addressing mode, the bytes it occupies including the opcode itself,
// its base cycle cost, whether it earns +1 cycle on a page-crossing
// read, and the function that carries it out.
type instruction struct {
	mnemonic         string
	mode             addressingMode
	size             uint16
	cycles           int
	pageCrossPenalty bool
	execute          func(c *CPU, mode addressingMode, operand uint16) error
}

func (c *CPU) readOperand(mode addressingMode, operand uint16) (byte, error) {
	if mode == accumulator {
		return c.a, nil
	}
	return c.bus.read(operand)
}

func (c *CPU) writeOperand(mode addressingMode, operand uint16, value byte) error {
	if mode == accumulator {
		c.a = value
		return nil
	}
	return c.bus.write(operand, value)
}

// addWithCarry implements ADC's semantics; SBC is defined as ADC with
// the memory operand bitwise-complemented.
func (c *CPU) addWithCarry(value byte) {
	var carryIn uint16
	if c.p.C {
		carryIn = 1
	}
	a := c.a
	sum := uint16(a) + uint16(value) + carryIn
	result := byte(sum)
	c.p.C = sum > 0xFF
	c.p.V = (^(a ^ value) & (a ^ result) & 0x80) != 0
	c.a = result
	c.setN(c.a)
	c.setZ(c.a)
}

func (c *CPU) compare(reg byte, m byte) {
	c.p.C = reg >= m
	c.setN(reg - m)
	c.setZ(reg - m)
}

func (c *CPU) branchIf(cond bool, target uint16) {
	if !cond {
		return
	}
	c.branchTaken = true
	c.branchPageCrossed = c.pageCrossed
	c.pc = target
}

func adc(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.addWithCarry(v)
	return nil
}

func sbc(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.addWithCarry(^v)
	return nil
}

func and(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.a &= v
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

func asl(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.p.C = v&0x80 != 0
	result := v << 1
	c.setN(result)
	c.setZ(result)
	return c.writeOperand(mode, operand, result)
}

func bcc(c *CPU, mode addressingMode, operand uint16) error {
	c.branchIf(!c.p.C, operand)
	return nil
}

func bcs(c *CPU, mode addressingMode, operand uint16) error {
	c.branchIf(c.p.C, operand)
	return nil
}

func beq(c *CPU, mode addressingMode, operand uint16) error {
	c.branchIf(c.p.Z, operand)
	return nil
}

func bitTest(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.p.Z = (c.a & v) == 0
	c.p.V = v&0x40 != 0
	c.p.N = v&0x80 != 0
	return nil
}

func bmi(c *CPU, mode addressingMode, operand uint16) error {
	c.branchIf(c.p.N, operand)
	return nil
}

func bne(c *CPU, mode addressingMode, operand uint16) error {
	c.branchIf(!c.p.Z, operand)
	return nil
}

func bpl(c *CPU, mode addressingMode, operand uint16) error {
	c.branchIf(!c.p.N, operand)
	return nil
}

func brk(c *CPU, mode addressingMode, operand uint16) error {
	c.pc++ // BRK's byte after the opcode is a padding byte, skipped.
	if err := c.push(byte(c.pc >> 8)); err != nil {
		return err
	}
	if err := c.push(byte(c.pc)); err != nil {
		return err
	}
	if err := c.pushStatus(true); err != nil {
		return err
	}
	c.p.I = true
	pc, err := c.bus.read16(0xFFFE)
	if err != nil {
		return err
	}
	c.pc = pc
	return nil
}

func bvc(c *CPU, mode addressingMode, operand uint16) error {
	c.branchIf(!c.p.V, operand)
	return nil
}

func bvs(c *CPU, mode addressingMode, operand uint16) error {
	c.branchIf(c.p.V, operand)
	return nil
}

func clc(c *CPU, mode addressingMode, operand uint16) error { c.p.C = false; return nil }
func cld(c *CPU, mode addressingMode, operand uint16) error { c.p.D = false; return nil }
func cli(c *CPU, mode addressingMode, operand uint16) error { c.p.I = false; return nil }
func clv(c *CPU, mode addressingMode, operand uint16) error { c.p.V = false; return nil }

func cmp(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.compare(c.a, v)
	return nil
}

func cpx(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.compare(c.x, v)
	return nil
}

func cpy(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.compare(c.y, v)
	return nil
}

func dec(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	result := v - 1
	c.setN(result)
	c.setZ(result)
	return c.writeOperand(mode, operand, result)
}

func dex(c *CPU, mode addressingMode, operand uint16) error {
	c.x--
	c.setN(c.x)
	c.setZ(c.x)
	return nil
}

func dey(c *CPU, mode addressingMode, operand uint16) error {
	c.y--
	c.setN(c.y)
	c.setZ(c.y)
	return nil
}

func eor(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.a ^= v
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

func inc(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	result := v + 1
	c.setN(result)
	c.setZ(result)
	return c.writeOperand(mode, operand, result)
}

func inx(c *CPU, mode addressingMode, operand uint16) error {
	c.x++
	c.setN(c.x)
	c.setZ(c.x)
	return nil
}

func iny(c *CPU, mode addressingMode, operand uint16) error {
	c.y++
	c.setN(c.y)
	c.setZ(c.y)
	return nil
}

func jmp(c *CPU, mode addressingMode, operand uint16) error {
	c.pc = operand
	return nil
}

func jsr(c *CPU, mode addressingMode, operand uint16) error {
	ret := c.pc - 1
	if err := c.push(byte(ret >> 8)); err != nil {
		return err
	}
	if err := c.push(byte(ret)); err != nil {
		return err
	}
	c.pc = operand
	return nil
}

func lda(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.a = v
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

func ldx(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.x = v
	c.setN(c.x)
	c.setZ(c.x)
	return nil
}

func ldy(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.y = v
	c.setN(c.y)
	c.setZ(c.y)
	return nil
}

func lsr(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.p.C = v&0x01 != 0
	result := v >> 1
	c.setN(result)
	c.setZ(result)
	return c.writeOperand(mode, operand, result)
}

func nop(c *CPU, mode addressingMode, operand uint16) error { return nil }

func ora(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	c.a |= v
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

func pha(c *CPU, mode addressingMode, operand uint16) error { return c.push(c.a) }

func php(c *CPU, mode addressingMode, operand uint16) error { return c.pushStatus(true) }

func pla(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.pop()
	if err != nil {
		return err
	}
	c.a = v
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

func plp(c *CPU, mode addressingMode, operand uint16) error { return c.popStatus() }

func rol(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	carryIn := byte(0)
	if c.p.C {
		carryIn = 1
	}
	c.p.C = v&0x80 != 0
	result := (v << 1) | carryIn
	c.setN(result)
	c.setZ(result)
	return c.writeOperand(mode, operand, result)
}

func ror(c *CPU, mode addressingMode, operand uint16) error {
	v, err := c.readOperand(mode, operand)
	if err != nil {
		return err
	}
	carryIn := byte(0)
	if c.p.C {
		carryIn = 0x80
	}
	c.p.C = v&0x01 != 0
	result := (v >> 1) | carryIn
	c.setN(result)
	c.setZ(result)
	return c.writeOperand(mode, operand, result)
}

func rti(c *CPU, mode addressingMode, operand uint16) error {
	if err := c.popStatus(); err != nil {
		return err
	}
	lo, err := c.pop()
	if err != nil {
		return err
	}
	hi, err := c.pop()
	if err != nil {
		return err
	}
	c.pc = uint16(hi)<<8 | uint16(lo)
	return nil
}

func rts(c *CPU, mode addressingMode, operand uint16) error {
	lo, err := c.pop()
	if err != nil {
		return err
	}
	hi, err := c.pop()
	if err != nil {
		return err
	}
	c.pc = uint16(hi)<<8 | uint16(lo)
	c.pc++
	return nil
}

func sec(c *CPU, mode addressingMode, operand uint16) error { c.p.C = true; return nil }
func sed(c *CPU, mode addressingMode, operand uint16) error { c.p.D = true; return nil }
func sei(c *CPU, mode addressingMode, operand uint16) error { c.p.I = true; return nil }

func sta(c *CPU, mode addressingMode, operand uint16) error {
	return c.bus.write(operand, c.a)
}

func stx(c *CPU, mode addressingMode, operand uint16) error {
	return c.bus.write(operand, c.x)
}

func sty(c *CPU, mode addressingMode, operand uint16) error {
	return c.bus.write(operand, c.y)
}

func tax(c *CPU, mode addressingMode, operand uint16) error {
	c.x = c.a
	c.setN(c.x)
	c.setZ(c.x)
	return nil
}

func tay(c *CPU, mode addressingMode, operand uint16) error {
	c.y = c.a
	c.setN(c.y)
	c.setZ(c.y)
	return nil
}

func tsx(c *CPU, mode addressingMode, operand uint16) error {
	c.x = c.s
	c.setN(c.x)
	c.setZ(c.x)
	return nil
}

func txa(c *CPU, mode addressingMode, operand uint16) error {
	c.a = c.x
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

func txs(c *CPU, mode addressingMode, operand uint16) error {
	c.s = c.x
	return nil
}

func tya(c *CPU, mode addressingMode, operand uint16) error {
	c.a = c.y
	c.setN(c.a)
	c.setZ(c.a)
	return nil
}

// buildInstructionTable returns the 256-entry opcode dispatch table,
// covering the 151 legal 6502 opcodes. Unofficial opcodes are left with
// a nil execute func; executeNext reports InvalidInstructionError for
// those rather than emulating undocumented behavior.
func buildInstructionTable() [256]instruction {
	var t [256]instruction
	// Every entry starts unset; an opcode left this way is one of the 105
	// undocumented opcodes, which this core doesn't implement and treats
	// as InvalidInstruction rather than guessing at unofficial behavior.
	set := func(op byte, mnemonic string, mode addressingMode, size uint16, cycles int, pcPenalty bool, fn func(*CPU, addressingMode, uint16) error) {
		t[op] = instruction{mnemonic: mnemonic, mode: mode, size: size, cycles: cycles, pageCrossPenalty: pcPenalty, execute: fn}
	}

	set(0x00, "brk", implied, 1, 7, false, brk)
	set(0x01, "ora", indirectX, 2, 6, false, ora)
	set(0x05, "ora", zeropage, 2, 3, false, ora)
	set(0x06, "asl", zeropage, 2, 5, false, asl)
	set(0x08, "php", implied, 1, 3, false, php)
	set(0x09, "ora", immediate, 2, 2, false, ora)
	set(0x0A, "asl", accumulator, 1, 2, false, asl)
	set(0x0D, "ora", absolute, 3, 4, false, ora)
	set(0x0E, "asl", absolute, 3, 6, false, asl)

	set(0x10, "bpl", relative, 2, 2, false, bpl)
	set(0x11, "ora", indirectY, 2, 5, true, ora)
	set(0x15, "ora", zeropageX, 2, 4, false, ora)
	set(0x16, "asl", zeropageX, 2, 6, false, asl)
	set(0x18, "clc", implied, 1, 2, false, clc)
	set(0x19, "ora", absoluteY, 3, 4, true, ora)
	set(0x1D, "ora", absoluteX, 3, 4, true, ora)
	set(0x1E, "asl", absoluteX, 3, 7, false, asl)

	set(0x20, "jsr", absolute, 3, 6, false, jsr)
	set(0x21, "and", indirectX, 2, 6, false, and)
	set(0x24, "bit", zeropage, 2, 3, false, bitTest)
	set(0x25, "and", zeropage, 2, 3, false, and)
	set(0x26, "rol", zeropage, 2, 5, false, rol)
	set(0x28, "plp", implied, 1, 4, false, plp)
	set(0x29, "and", immediate, 2, 2, false, and)
	set(0x2A, "rol", accumulator, 1, 2, false, rol)
	set(0x2C, "bit", absolute, 3, 4, false, bitTest)
	set(0x2D, "and", absolute, 3, 4, false, and)
	set(0x2E, "rol", absolute, 3, 6, false, rol)

	set(0x30, "bmi", relative, 2, 2, false, bmi)
	set(0x31, "and", indirectY, 2, 5, true, and)
	set(0x35, "and", zeropageX, 2, 4, false, and)
	set(0x36, "rol", zeropageX, 2, 6, false, rol)
	set(0x38, "sec", implied, 1, 2, false, sec)
	set(0x39, "and", absoluteY, 3, 4, true, and)
	set(0x3D, "and", absoluteX, 3, 4, true, and)
	set(0x3E, "rol", absoluteX, 3, 7, false, rol)

	set(0x40, "rti", implied, 1, 6, false, rti)
	set(0x41, "eor", indirectX, 2, 6, false, eor)
	set(0x45, "eor", zeropage, 2, 3, false, eor)
	set(0x46, "lsr", zeropage, 2, 5, false, lsr)
	set(0x48, "pha", implied, 1, 3, false, pha)
	set(0x49, "eor", immediate, 2, 2, false, eor)
	set(0x4A, "lsr", accumulator, 1, 2, false, lsr)
	set(0x4C, "jmp", absolute, 3, 3, false, jmp)
	set(0x4D, "eor", absolute, 3, 4, false, eor)
	set(0x4E, "lsr", absolute, 3, 6, false, lsr)

	set(0x50, "bvc", relative, 2, 2, false, bvc)
	set(0x51, "eor", indirectY, 2, 5, true, eor)
	set(0x55, "eor", zeropageX, 2, 4, false, eor)
	set(0x56, "lsr", zeropageX, 2, 6, false, lsr)
	set(0x58, "cli", implied, 1, 2, false, cli)
	set(0x59, "eor", absoluteY, 3, 4, true, eor)
	set(0x5D, "eor", absoluteX, 3, 4, true, eor)
	set(0x5E, "lsr", absoluteX, 3, 7, false, lsr)

	set(0x60, "rts", implied, 1, 6, false, rts)
	set(0x61, "adc", indirectX, 2, 6, false, adc)
	set(0x65, "adc", zeropage, 2, 3, false, adc)
	set(0x66, "ror", zeropage, 2, 5, false, ror)
	set(0x68, "pla", implied, 1, 4, false, pla)
	set(0x69, "adc", immediate, 2, 2, false, adc)
	set(0x6A, "ror", accumulator, 1, 2, false, ror)
	set(0x6C, "jmp", indirect, 3, 5, false, jmp)
	set(0x6D, "adc", absolute, 3, 4, false, adc)
	set(0x6E, "ror", absolute, 3, 6, false, ror)

	set(0x70, "bvs", relative, 2, 2, false, bvs)
	set(0x71, "adc", indirectY, 2, 5, true, adc)
	set(0x75, "adc", zeropageX, 2, 4, false, adc)
	set(0x76, "ror", zeropageX, 2, 6, false, ror)
	set(0x78, "sei", implied, 1, 2, false, sei)
	set(0x79, "adc", absoluteY, 3, 4, true, adc)
	set(0x7D, "adc", absoluteX, 3, 4, true, adc)
	set(0x7E, "ror", absoluteX, 3, 7, false, ror)

	set(0x81, "sta", indirectX, 2, 6, false, sta)
	set(0x84, "sty", zeropage, 2, 3, false, sty)
	set(0x85, "sta", zeropage, 2, 3, false, sta)
	set(0x86, "stx", zeropage, 2, 3, false, stx)
	set(0x88, "dey", implied, 1, 2, false, dey)
	set(0x8A, "txa", implied, 1, 2, false, txa)
	set(0x8C, "sty", absolute, 3, 4, false, sty)
	set(0x8D, "sta", absolute, 3, 4, false, sta)
	set(0x8E, "stx", absolute, 3, 4, false, stx)

	set(0x90, "bcc", relative, 2, 2, false, bcc)
	set(0x91, "sta", indirectY, 2, 6, false, sta)
	set(0x94, "sty", zeropageX, 2, 4, false, sty)
	set(0x95, "sta", zeropageX, 2, 4, false, sta)
	set(0x96, "stx", zeropageY, 2, 4, false, stx)
	set(0x98, "tya", implied, 1, 2, false, tya)
	set(0x99, "sta", absoluteY, 3, 5, false, sta)
	set(0x9A, "txs", implied, 1, 2, false, txs)
	set(0x9D, "sta", absoluteX, 3, 5, false, sta)

	set(0xA0, "ldy", immediate, 2, 2, false, ldy)
	set(0xA1, "lda", indirectX, 2, 6, false, lda)
	set(0xA2, "ldx", immediate, 2, 2, false, ldx)
	set(0xA4, "ldy", zeropage, 2, 3, false, ldy)
	set(0xA5, "lda", zeropage, 2, 3, false, lda)
	set(0xA6, "ldx", zeropage, 2, 3, false, ldx)
	set(0xA8, "tay", implied, 1, 2, false, tay)
	set(0xA9, "lda", immediate, 2, 2, false, lda)
	set(0xAA, "tax", implied, 1, 2, false, tax)
	set(0xAC, "ldy", absolute, 3, 4, false, ldy)
	set(0xAD, "lda", absolute, 3, 4, false, lda)
	set(0xAE, "ldx", absolute, 3, 4, false, ldx)

	set(0xB0, "bcs", relative, 2, 2, false, bcs)
	set(0xB1, "lda", indirectY, 2, 5, true, lda)
	set(0xB4, "ldy", zeropageX, 2, 4, false, ldy)
	set(0xB5, "lda", zeropageX, 2, 4, false, lda)
	set(0xB6, "ldx", zeropageY, 2, 4, false, ldx)
	set(0xB8, "clv", implied, 1, 2, false, clv)
	set(0xB9, "lda", absoluteY, 3, 4, true, lda)
	set(0xBA, "tsx", implied, 1, 2, false, tsx)
	set(0xBC, "ldy", absoluteX, 3, 4, true, ldy)
	set(0xBD, "lda", absoluteX, 3, 4, true, lda)
	set(0xBE, "ldx", absoluteY, 3, 4, true, ldx)

	set(0xC0, "cpy", immediate, 2, 2, false, cpy)
	set(0xC1, "cmp", indirectX, 2, 6, false, cmp)
	set(0xC4, "cpy", zeropage, 2, 3, false, cpy)
	set(0xC5, "cmp", zeropage, 2, 3, false, cmp)
	set(0xC6, "dec", zeropage, 2, 5, false, dec)
	set(0xC8, "iny", implied, 1, 2, false, iny)
	set(0xC9, "cmp", immediate, 2, 2, false, cmp)
	set(0xCA, "dex", implied, 1, 2, false, dex)
	set(0xCC, "cpy", absolute, 3, 4, false, cpy)
	set(0xCD, "cmp", absolute, 3, 4, false, cmp)
	set(0xCE, "dec", absolute, 3, 6, false, dec)

	set(0xD0, "bne", relative, 2, 2, false, bne)
	set(0xD1, "cmp", indirectY, 2, 5, true, cmp)
	set(0xD5, "cmp", zeropageX, 2, 4, false, cmp)
	set(0xD6, "dec", zeropageX, 2, 6, false, dec)
	set(0xD8, "cld", implied, 1, 2, false, cld)
	set(0xD9, "cmp", absoluteY, 3, 4, true, cmp)
	set(0xDD, "cmp", absoluteX, 3, 4, true, cmp)
	set(0xDE, "dec", absoluteX, 3, 7, false, dec)

	set(0xE0, "cpx", immediate, 2, 2, false, cpx)
	set(0xE1, "sbc", indirectX, 2, 6, false, sbc)
	set(0xE4, "cpx", zeropage, 2, 3, false, cpx)
	set(0xE5, "sbc", zeropage, 2, 3, false, sbc)
	set(0xE6, "inc", zeropage, 2, 5, false, inc)
	set(0xE8, "inx", implied, 1, 2, false, inx)
	set(0xE9, "sbc", immediate, 2, 2, false, sbc)
	set(0xEA, "nop", implied, 1, 2, false, nop)
	set(0xEC, "cpx", absolute, 3, 4, false, cpx)
	set(0xED, "sbc", absolute, 3, 4, false, sbc)
	set(0xEE, "inc", absolute, 3, 6, false, inc)

	set(0xF0, "beq", relative, 2, 2, false, beq)
	set(0xF1, "sbc", indirectY, 2, 5, true, sbc)
	set(0xF5, "sbc", zeropageX, 2, 4, false, sbc)
	set(0xF6, "inc", zeropageX, 2, 6, false, inc)
	set(0xF8, "sed", implied, 1, 2, false, sed)
	set(0xF9, "sbc", absoluteY, 3, 4, true, sbc)
	set(0xFD, "sbc", absoluteX, 3, 4, true, sbc)
	set(0xFE, "inc", absoluteX, 3, 7, false, inc)

	return t
}

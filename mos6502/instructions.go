package mos6502

// execute dispatches to the handler for mnemonic, operating on the
// operand addressed by addr (meaningless for modeImplicit/modeAccumulator
// instructions, which read/write c.A directly). It returns any additional
// cycles beyond the opcode's base cost (branch taken, page crossed on a
// taken branch, BRK's fixed cost is already in the table) and whether the
// instruction itself modified PC, in which case Step must not also
// advance it past the instruction's operand bytes.
func (c *CPU) execute(mnemonic string, mode addressingMode, addr uint16) (extraCycles int, pcModified bool) {
	switch mnemonic {
	case "ADC":
		c.adc(c.read(addr))
	case "AND":
		c.setA(c.A & c.read(addr))
	case "ASL":
		c.shiftLeft(mode, addr, false)
	case "BCC":
		return c.branch(addr, !c.flagSet(FlagCarry)), true
	case "BCS":
		return c.branch(addr, c.flagSet(FlagCarry)), true
	case "BEQ":
		return c.branch(addr, c.flagSet(FlagZero)), true
	case "BNE":
		return c.branch(addr, !c.flagSet(FlagZero)), true
	case "BMI":
		return c.branch(addr, c.flagSet(FlagNegative)), true
	case "BPL":
		return c.branch(addr, !c.flagSet(FlagNegative)), true
	case "BVC":
		return c.branch(addr, !c.flagSet(FlagOverflow)), true
	case "BVS":
		return c.branch(addr, c.flagSet(FlagOverflow)), true
	case "BIT":
		c.bit(c.read(addr))
	case "BRK":
		// BRK carries an unused signature byte after the opcode; the
		// pushed return address skips it, matching real hardware.
		c.PC++
		c.pushInterrupt(vectorBRK, true)
		return 0, true
	case "CLC":
		c.setFlag(FlagCarry, false)
	case "CLD":
		c.setFlag(FlagDecimal, false)
	case "CLI":
		c.setFlag(FlagInterrupt, false)
	case "CLV":
		c.setFlag(FlagOverflow, false)
	case "SEC":
		c.setFlag(FlagCarry, true)
	case "SED":
		c.setFlag(FlagDecimal, true)
	case "SEI":
		c.setFlag(FlagInterrupt, true)
	case "CMP":
		c.compare(c.A, c.read(addr))
	case "CPX":
		c.compare(c.X, c.read(addr))
	case "CPY":
		c.compare(c.Y, c.read(addr))
	case "DEC":
		v := c.read(addr) - 1
		c.write(addr, v)
		c.setZN(v)
	case "DEX":
		c.X--
		c.setZN(c.X)
	case "DEY":
		c.Y--
		c.setZN(c.Y)
	case "EOR":
		c.setA(c.A ^ c.read(addr))
	case "INC":
		v := c.read(addr) + 1
		c.write(addr, v)
		c.setZN(v)
	case "INX":
		c.X++
		c.setZN(c.X)
	case "INY":
		c.Y++
		c.setZN(c.Y)
	case "JMP":
		if mode == modeIndirect {
			c.PC = c.read16bugged(addr)
		} else {
			c.PC = addr
		}
		return 0, true
	case "JSR":
		// c.PC currently points at the low byte of the target address;
		// the pushed return address is the instruction's last byte (the
		// high byte of the target), which RTS advances past by one.
		c.push16(c.PC + 1)
		c.PC = addr
		return 0, true
	case "LDA":
		c.setA(c.read(addr))
	case "LDX":
		c.X = c.read(addr)
		c.setZN(c.X)
	case "LDY":
		c.Y = c.read(addr)
		c.setZN(c.Y)
	case "LSR":
		c.shiftRight(mode, addr, false)
	case "NOP":
	case "ORA":
		c.setA(c.A | c.read(addr))
	case "PHA":
		c.push(c.A)
	case "PHP":
		c.push(c.P | FlagUnused | FlagBreak)
	case "PLA":
		c.setA(c.pop())
	case "PLP":
		c.restoreP(c.pop())
	case "ROL":
		c.shiftLeft(mode, addr, true)
	case "ROR":
		c.shiftRight(mode, addr, true)
	case "RTI":
		c.restoreP(c.pop())
		c.PC = c.pop16()
		return 0, true
	case "RTS":
		c.PC = c.pop16() + 1
		return 0, true
	case "SBC":
		c.adc(c.read(addr) ^ 0xFF)
	case "STA":
		c.write(addr, c.A)
	case "STX":
		c.write(addr, c.X)
	case "STY":
		c.write(addr, c.Y)
	case "TAX":
		c.X = c.A
		c.setZN(c.X)
	case "TAY":
		c.Y = c.A
		c.setZN(c.Y)
	case "TSX":
		c.X = c.SP
		c.setZN(c.X)
	case "TXA":
		c.setA(c.X)
	case "TXS":
		c.SP = c.X
	case "TYA":
		c.setA(c.Y)
	default:
		panic("mos6502: unimplemented mnemonic " + mnemonic)
	}
	return 0, false
}

// setA assigns v to the accumulator and updates Z/N from it; nearly every
// instruction that produces a new accumulator value does this.
func (c *CPU) setA(v uint8) {
	c.A = v
	c.setZN(c.A)
}

// adc implements both ADC and SBC: SBC is ADC with its operand's bits
// flipped, which is arithmetically equivalent to subtracting with borrow
// since two's-complement negation is (^operand)+1 and the extra +1 falls
// out of the carry-in.
func (c *CPU) adc(operand uint8) {
	carryIn := uint16(0)
	if c.flagSet(FlagCarry) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(operand) + carryIn
	result := uint8(sum)

	c.setFlag(FlagCarry, sum > 0xFF)
	// Overflow: set only when both operands share a sign and the result's
	// sign differs from theirs. Computed directly rather than inferred
	// from the carry chain, so the non-overflow branch reliably clears V.
	overflow := (c.A^result)&(operand^result)&0x80 != 0
	c.setFlag(FlagOverflow, overflow)
	c.setA(result)
}

func (c *CPU) compare(reg, operand uint8) {
	c.setFlag(FlagCarry, reg >= operand)
	c.setZN(reg - operand)
}

func (c *CPU) bit(operand uint8) {
	c.setFlag(FlagZero, c.A&operand == 0)
	c.setFlag(FlagOverflow, operand&0x40 != 0)
	c.setFlag(FlagNegative, operand&0x80 != 0)
}

// rmwOperand returns the byte ASL/LSR/ROL/ROR act on, and a setter that
// writes the result back to wherever it came from: the accumulator for
// modeAccumulator, or memory at addr otherwise.
func (c *CPU) rmwOperand(mode addressingMode, addr uint16) (val uint8, set func(uint8)) {
	if mode == modeAccumulator {
		return c.A, func(v uint8) { c.A = v }
	}
	return c.read(addr), func(v uint8) { c.write(addr, v) }
}

func (c *CPU) shiftLeft(mode addressingMode, addr uint16, rotate bool) {
	val, set := c.rmwOperand(mode, addr)
	carryIn := uint8(0)
	if rotate && c.flagSet(FlagCarry) {
		carryIn = 1
	}
	c.setFlag(FlagCarry, val&0x80 != 0)
	result := val<<1 | carryIn
	set(result)
	c.setZN(result)
}

func (c *CPU) shiftRight(mode addressingMode, addr uint16, rotate bool) {
	val, set := c.rmwOperand(mode, addr)
	carryIn := uint8(0)
	if rotate && c.flagSet(FlagCarry) {
		carryIn = 1 << 7
	}
	c.setFlag(FlagCarry, val&0x01 != 0)
	result := val>>1 | carryIn
	set(result)
	c.setZN(result)
}

// branch implements the eight conditional branches. addr is the address of
// the branch's single signed-offset operand byte (per modeRelative). It
// returns the extra cycles owed: 1 if the branch is taken, plus 1 more if
// taking it crosses into a different page.
func (c *CPU) branch(addr uint16, take bool) int {
	offset := int8(c.read(addr))
	nextPC := addr + 1
	if !take {
		c.PC = nextPC
		return 0
	}
	target := uint16(int32(nextPC) + int32(offset))
	c.PC = target
	if samePage(nextPC, target) {
		return 1
	}
	return 2
}

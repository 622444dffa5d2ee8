package tm32

// BIT/TOG/SET/RES all address a single bit by an immediate index that is
// fetched from the instruction stream during execute, not during fetch —
// the index has to be range-checked against the destination's width
// first, and only consumes a byte of the instruction stream once that
// check passes.
func init() {
	register(0x70, fetchImm8Reg, execBit)
	register(0x71, fetchImm8Regptr32, execBit)
	register(0x72, fetchImm8Reg, execTog)
	register(0x73, fetchImm8Regptr32, execTog)
	register(0x74, fetchImm8Reg, execSet)
	register(0x75, fetchImm8Regptr32, execSet)
	register(0x76, fetchImm8Reg, execRes)
	register(0x77, fetchImm8Regptr32, execRes)
}

func fetchImm8Reg(c *CPU) *Fault {
	c.sd = c.ReadRegister(c.destSel())
	return nil
}

func fetchImm8Regptr32(c *CPU) *Fault {
	if c.destSel().View() != ViewFull {
		return faultArgument()
	}
	addr := c.ReadRegister(c.destSel())
	if f := checkWritable(addr); f != nil {
		return f
	}
	c.da = addr
	c.sd = c.readAt(addr, ViewByte)
	return nil
}

// bitIndex reads the bit-index operand from PC, range-checking it
// against the destination's high bit before consuming the byte.
func bitIndex(c *CPU) (uint32, *Fault) {
	bit := uint32(c.readByte(c.pc))
	if bit > c.destHiBit() {
		return 0, faultArgument()
	}
	c.advance(1)
	return bit, nil
}

func execBit(c *CPU) *Fault {
	bit, f := bitIndex(c)
	if f != nil {
		return f
	}
	c.ChangeFlag(FlagZero, (c.sd>>bit)&1 == 0)
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, true)
	return nil
}

func execTog(c *CPU) *Fault {
	bit, f := bitIndex(c)
	if f != nil {
		return f
	}
	result := c.sd ^ (1 << bit)
	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result&0xFF)
		return nil
	}
	c.WriteRegister(c.destSel(), result)
	return nil
}

func execSet(c *CPU) *Fault {
	bit, f := bitIndex(c)
	if f != nil {
		return f
	}
	result := c.sd | (1 << bit)
	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result&0xFF)
		return nil
	}
	c.WriteRegister(c.destSel(), result)
	return nil
}

func execRes(c *CPU) *Fault {
	bit, f := bitIndex(c)
	if f != nil {
		return f
	}
	result := c.sd &^ (1 << bit)
	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result&0xFF)
		return nil
	}
	c.WriteRegister(c.destSel(), result)
	return nil
}

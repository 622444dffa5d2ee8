package tm32

// INC/DEC operate on either a register view or a single byte pointed to
// by a full 32-bit register; the memory form is distinguished by da != 0.
// ADD/ADC/SUB/SBC require an A-class destination (A/AW/AH/AL) — the only
// register family that participates in arithmetic against another
// operand.
func init() {
	register(0x30, fetchRegNull, execInc)
	register(0x31, fetchRegptr32Null, execInc)
	register(0x32, fetchRegNull, execDec)
	register(0x33, fetchRegptr32Null, execDec)

	register(0x34, fetchRegImm, execAdd)
	register(0x35, fetchRegAddr32, execAdd)
	register(0x36, fetchRegRegptr32, execAdd)
	register(0x37, fetchRegImm, execAdc)
	register(0x38, fetchRegAddr32, execAdc)
	register(0x39, fetchRegRegptr32, execAdc)
	register(0x3A, fetchRegImm, execSub)
	register(0x3B, fetchRegAddr32, execSub)
	register(0x3C, fetchRegRegptr32, execSub)
	register(0x3D, fetchRegImm, execSbc)
	register(0x3E, fetchRegAddr32, execSbc)
	register(0x3F, fetchRegRegptr32, execSbc)
}

func fetchRegNull(c *CPU) *Fault {
	c.sd = c.ReadRegister(c.destSel())
	return nil
}

// fetchRegptr32Null reads the single byte pointed to by a full 32-bit
// source register — the memory-operand form shared by INC, DEC, NOT, the
// shift/rotate group, and BIT/TOG/SET/RES.
func fetchRegptr32Null(c *CPU) *Fault {
	if c.srcSel().View() != ViewFull {
		return faultArgument()
	}
	addr := c.ReadRegister(c.srcSel())
	if f := checkWritable(addr); f != nil {
		return f
	}
	c.da = addr
	c.sd = c.readAt(addr, ViewByte)
	return nil
}

func execInc(c *CPU) *Fault {
	result := c.sd + 1
	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result)
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagHalfCarry, result&0xF == 0)
		c.ChangeFlag(FlagParity, parity(result, 8))
	} else {
		view := c.destSel().View()
		c.WriteRegister(c.destSel(), result)
		switch view {
		case ViewFull:
			c.ChangeFlag(FlagZero, result == 0)
			c.ChangeFlag(FlagParity, parity(result, 32))
		case ViewLow:
			c.ChangeFlag(FlagZero, result&0xFFFF == 0)
			c.ChangeFlag(FlagHalfCarry, result&0xFFF == 0)
			c.ChangeFlag(FlagParity, parity(result, 16))
		default:
			c.ChangeFlag(FlagZero, result&0xFF == 0)
			c.ChangeFlag(FlagHalfCarry, result&0xF == 0)
			c.ChangeFlag(FlagParity, parity(result, 8))
		}
	}
	c.ChangeFlag(FlagSubtraction, false)
	return nil
}

func execDec(c *CPU) *Fault {
	result := c.sd - 1
	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result)
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagHalfCarry, result&0xF == 0xF)
		c.ChangeFlag(FlagParity, parity(result, 8))
	} else {
		view := c.destSel().View()
		c.WriteRegister(c.destSel(), result)
		switch view {
		case ViewFull:
			c.ChangeFlag(FlagZero, result == 0)
			c.ChangeFlag(FlagParity, parity(result, 32))
		case ViewLow:
			c.ChangeFlag(FlagZero, result&0xFFFF == 0)
			c.ChangeFlag(FlagHalfCarry, result&0xFFF == 0xFFF)
			c.ChangeFlag(FlagParity, parity(result, 16))
		default:
			c.ChangeFlag(FlagZero, result&0xFF == 0)
			c.ChangeFlag(FlagHalfCarry, result&0xF == 0xF)
			c.ChangeFlag(FlagParity, parity(result, 8))
		}
	}
	c.ChangeFlag(FlagSubtraction, true)
	return nil
}

func execAddImpl(c *CPU, carryIn bool) *Fault {
	if !c.destSel().IsAClass() {
		return faultArgument()
	}
	lhs := c.ReadRegister(c.destSel())
	result := c.applyAdd(lhs, c.sd, carryIn, c.destSel().View())
	c.WriteRegister(c.destSel(), result)
	return nil
}

func execAdd(c *CPU) *Fault { return execAddImpl(c, false) }
func execAdc(c *CPU) *Fault { return execAddImpl(c, true) }

func execSubImpl(c *CPU, carryIn bool) *Fault {
	if !c.destSel().IsAClass() {
		return faultArgument()
	}
	lhs := c.ReadRegister(c.destSel())
	result := c.applySub(lhs, c.sd, carryIn, c.destSel().View())
	c.WriteRegister(c.destSel(), result)
	return nil
}

func execSub(c *CPU) *Fault { return execSubImpl(c, false) }
func execSbc(c *CPU) *Fault { return execSubImpl(c, true) }

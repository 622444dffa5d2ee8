package tm32

// AND/OR/XOR require an A-class destination, same as ADD/SUB, and so does
// CMP, SUB's non-mutating sibling used purely to set flags. NOT does not:
// it works against any register or a memory byte.
func init() {
	register(0x40, fetchRegImm, execAnd)
	register(0x41, fetchRegAddr32, execAnd)
	register(0x42, fetchRegRegptr32, execAnd)
	register(0x43, fetchRegImm, execOr)
	register(0x44, fetchRegAddr32, execOr)
	register(0x45, fetchRegRegptr32, execOr)
	register(0x46, fetchRegImm, execXor)
	register(0x47, fetchRegAddr32, execXor)
	register(0x48, fetchRegRegptr32, execXor)
	register(0x49, fetchRegNull, execNot)
	register(0x4A, fetchRegptr32Null, execNot)

	register(0x50, fetchRegImm, execCmp)
	register(0x51, fetchRegAddr32, execCmp)
	register(0x52, fetchRegRegptr32, execCmp)
}

func execAnd(c *CPU) *Fault {
	if !c.destSel().IsAClass() {
		return faultArgument()
	}
	lhs := c.ReadRegister(c.destSel())
	result := lhs & c.sd
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, true)
	c.ChangeFlag(FlagCarry, false)
	c.ChangeFlag(FlagSign, false)
	c.WriteRegister(c.destSel(), result)
	c.applyLogical(result, c.destSel().View())
	return nil
}

func execOr(c *CPU) *Fault {
	if !c.destSel().IsAClass() {
		return faultArgument()
	}
	lhs := c.ReadRegister(c.destSel())
	result := lhs | c.sd
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, false)
	c.ChangeFlag(FlagCarry, false)
	c.ChangeFlag(FlagSign, false)
	c.WriteRegister(c.destSel(), result)
	c.applyLogical(result, c.destSel().View())
	return nil
}

func execXor(c *CPU) *Fault {
	if !c.destSel().IsAClass() {
		return faultArgument()
	}
	lhs := c.ReadRegister(c.destSel())
	result := lhs ^ c.sd
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, false)
	c.ChangeFlag(FlagCarry, false)
	c.ChangeFlag(FlagSign, false)
	c.WriteRegister(c.destSel(), result)
	c.applyLogical(result, c.destSel().View())
	return nil
}

// execNot complements every bit of a register view, or just the
// addressed byte in the memory form. It never touches ZERO, PARITY,
// CARRY, or SIGN.
func execNot(c *CPU) *Fault {
	if c.da != 0 {
		result := ^c.sd & 0xFF
		c.writeAt(c.da, ViewByte, result)
	} else {
		c.WriteRegister(c.destSel(), ^c.sd)
	}
	c.ChangeFlag(FlagSubtraction, true)
	c.ChangeFlag(FlagHalfCarry, true)
	return nil
}

func execCmp(c *CPU) *Fault {
	if !c.destSel().IsAClass() {
		return faultArgument()
	}
	lhs := c.ReadRegister(c.destSel())
	c.applyCmp(lhs, c.sd, c.destSel().View())
	return nil
}

package tm32

// The shift/rotate group shares its fetch routines with INC/DEC
// (fetchRegNull / fetchRegptr32Null): a register view or a single
// pointed-to byte. Flag behavior diverges instruction by instruction —
// RLC/RRC never touch PARITY, and RRC never touches it either, so each
// routine sets exactly the flags the original reference carries, not a
// generic shift template.
func init() {
	register(0x60, fetchRegNull, execSla)
	register(0x61, fetchRegptr32Null, execSla)
	register(0x62, fetchRegNull, execSra)
	register(0x63, fetchRegptr32Null, execSra)
	register(0x64, fetchRegNull, execSrl)
	register(0x65, fetchRegptr32Null, execSrl)
	register(0x66, fetchRegNull, execRl)
	register(0x67, fetchRegptr32Null, execRl)
	register(0x68, fetchRegNull, execRlc)
	register(0x69, fetchRegptr32Null, execRlc)
	register(0x6A, fetchRegNull, execRr)
	register(0x6B, fetchRegptr32Null, execRr)
	register(0x6C, fetchRegNull, execRrc)
	register(0x6D, fetchRegptr32Null, execRrc)
}

func execSla(c *CPU) *Fault {
	result := c.sd << 1
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, false)

	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result&0xFF)
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<7) != 0)
		c.ChangeFlag(FlagParity, parity(result, 8))
		return nil
	}

	view := c.destSel().View()
	c.WriteRegister(c.destSel(), result)
	switch view {
	case ViewFull:
		c.ChangeFlag(FlagZero, result == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<31) != 0)
		c.ChangeFlag(FlagParity, parity(result, 32))
	case ViewLow:
		c.ChangeFlag(FlagZero, result&0xFFFF == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<15) != 0)
		c.ChangeFlag(FlagParity, parity(result, 16))
	default:
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<7) != 0)
		c.ChangeFlag(FlagParity, parity(result, 8))
	}
	return nil
}

func execSra(c *CPU) *Fault {
	hiBit := c.destHiBit()
	signBit := (c.sd >> hiBit) & 1
	result := (c.sd >> 1) | (signBit << hiBit)
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, false)
	c.ChangeFlag(FlagCarry, c.sd&1 != 0)

	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result&0xFF)
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagParity, parity(result, 8))
		return nil
	}

	view := c.destSel().View()
	c.WriteRegister(c.destSel(), result)
	switch view {
	case ViewFull:
		c.ChangeFlag(FlagZero, result == 0)
		c.ChangeFlag(FlagParity, parity(result, 32))
	case ViewLow:
		c.ChangeFlag(FlagZero, result&0xFFFF == 0)
		c.ChangeFlag(FlagParity, parity(result, 16))
	default:
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagParity, parity(result, 8))
	}
	return nil
}

func execSrl(c *CPU) *Fault {
	hiBit := c.destHiBit()
	result := (c.sd >> 1) &^ (1 << hiBit)
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, false)
	c.ChangeFlag(FlagCarry, c.sd&1 != 0)

	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result&0xFF)
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagParity, parity(result, 8))
		return nil
	}

	view := c.destSel().View()
	c.WriteRegister(c.destSel(), result)
	switch view {
	case ViewFull:
		c.ChangeFlag(FlagZero, result == 0)
		c.ChangeFlag(FlagParity, parity(result, 32))
	case ViewLow:
		c.ChangeFlag(FlagZero, result&0xFFFF == 0)
		c.ChangeFlag(FlagParity, parity(result, 16))
	default:
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagParity, parity(result, 8))
	}
	return nil
}

func execRl(c *CPU) *Fault {
	var carryIn uint32
	if c.CheckFlag(FlagCarry) {
		carryIn = 1
	}
	result := (c.sd << 1) | carryIn
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, false)

	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result&0xFF)
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<7) != 0)
		c.ChangeFlag(FlagParity, parity(result, 8))
		return nil
	}

	view := c.destSel().View()
	c.WriteRegister(c.destSel(), result)
	switch view {
	case ViewFull:
		c.ChangeFlag(FlagZero, result == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<31) != 0)
		c.ChangeFlag(FlagParity, parity(result, 32))
	case ViewLow:
		c.ChangeFlag(FlagZero, result&0xFFFF == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<15) != 0)
		c.ChangeFlag(FlagParity, parity(result, 16))
	default:
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<7) != 0)
		c.ChangeFlag(FlagParity, parity(result, 8))
	}
	return nil
}

// execRlc rotates left without a carry-in: the bit that exits at the top
// re-enters at the bottom, and that same bit becomes the new CARRY.
// PARITY is left untouched.
func execRlc(c *CPU) *Fault {
	hiBit := c.destHiBit()
	leftmost := (c.sd >> hiBit) & 1
	result := (c.sd << 1) | leftmost
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, false)

	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result&0xFF)
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<7) != 0)
		return nil
	}

	view := c.destSel().View()
	c.WriteRegister(c.destSel(), result)
	switch view {
	case ViewFull:
		c.ChangeFlag(FlagZero, result == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<31) != 0)
	case ViewLow:
		c.ChangeFlag(FlagZero, result&0xFFFF == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<15) != 0)
	default:
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagCarry, c.sd&(1<<7) != 0)
	}
	return nil
}

func execRr(c *CPU) *Fault {
	hiBit := c.destHiBit()
	var carryIn uint32
	if c.CheckFlag(FlagCarry) {
		carryIn = 1
	}
	result := (c.sd >> 1) | (carryIn << hiBit)
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, false)
	c.ChangeFlag(FlagCarry, c.sd&1 != 0)

	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result&0xFF)
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagParity, parity(result, 8))
		return nil
	}

	view := c.destSel().View()
	c.WriteRegister(c.destSel(), result)
	switch view {
	case ViewFull:
		c.ChangeFlag(FlagZero, result == 0)
		c.ChangeFlag(FlagParity, parity(result, 32))
	case ViewLow:
		c.ChangeFlag(FlagZero, result&0xFFFF == 0)
		c.ChangeFlag(FlagParity, parity(result, 16))
	default:
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		c.ChangeFlag(FlagParity, parity(result, 8))
	}
	return nil
}

// execRrc rotates right without a carry-in. Neither PARITY nor
// HALF-CARRY is touched beyond the unconditional clear below.
func execRrc(c *CPU) *Fault {
	hiBit := c.destHiBit()
	rightmost := c.sd & 1
	result := (c.sd >> 1) | (rightmost << hiBit)
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, false)
	c.ChangeFlag(FlagCarry, c.sd&1 != 0)

	if c.da != 0 {
		c.writeAt(c.da, ViewByte, result&0xFF)
		c.ChangeFlag(FlagZero, result&0xFF == 0)
		return nil
	}

	view := c.destSel().View()
	c.WriteRegister(c.destSel(), result)
	switch view {
	case ViewFull:
		c.ChangeFlag(FlagZero, result == 0)
	case ViewLow:
		c.ChangeFlag(FlagZero, result&0xFFFF == 0)
	default:
		c.ChangeFlag(FlagZero, result&0xFF == 0)
	}
	return nil
}

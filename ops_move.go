package tm32

// LD loads a register view from an immediate, an absolute address, or a
// pointer held in another register; ST is the mirror-image store. MV
// copies register to register; POP/PUSH move a dword between the stack
// and a register.
func init() {
	register(0x10, fetchRegImm, execLd)
	register(0x11, fetchRegAddr32, execLd)
	register(0x12, fetchRegRegptr32, execLd)
	register(0x13, fetchRegAddr16, execLd)
	register(0x14, fetchRegRegptr16, execLd)
	register(0x15, fetchReg8Addr8, execLd)
	register(0x16, fetchReg8Regptr8, execLd)
	register(0x17, fetchAddr32Reg, execSt)
	register(0x18, fetchRegptr32Reg, execSt)
	register(0x19, fetchAddr16Reg, execSt)
	register(0x1A, fetchRegptr16Reg, execSt)
	register(0x1B, fetchAddr8Reg8, execSt)
	register(0x1C, fetchRegptr8Reg8, execSt)
	register(0x1D, fetchRegReg, execMv)
	register(0x1E, nil, execPop)
	register(0x1F, nil, execPush)
}

// fetchRegImm reads an immediate the width of the destination view
// straight out of the instruction stream.
func fetchRegImm(c *CPU) *Fault {
	c.sd = c.fetchByView(c.destSel().View())
	return nil
}

// fetchRegAddr32 reads a 32-bit absolute address from the instruction
// stream, then the destination-width value stored there.
func fetchRegAddr32(c *CPU) *Fault {
	c.sa = c.fetchByView(ViewFull)
	c.sd = c.readAt(c.sa, c.destSel().View())
	return nil
}

// fetchRegRegptr32 uses a full 32-bit register as a pointer.
func fetchRegRegptr32(c *CPU) *Fault {
	if c.srcSel().View() != ViewFull {
		return faultArgument()
	}
	c.sa = c.ReadRegister(c.srcSel())
	c.sd = c.readAt(c.sa, c.destSel().View())
	return nil
}

// fetchRegAddr16 reads a 16-bit offset into the high page (0xFFFF0000).
func fetchRegAddr16(c *CPU) *Fault {
	c.sa = 0xFFFF0000 + c.fetchByView(ViewLow)
	c.sd = c.readAt(c.sa, c.destSel().View())
	return nil
}

// fetchRegRegptr16 uses a register's low word as a high-page pointer.
func fetchRegRegptr16(c *CPU) *Fault {
	if c.srcSel().View() != ViewLow {
		return faultArgument()
	}
	c.sa = 0xFFFF0000 + c.ReadRegister(c.srcSel())
	c.sd = c.readAt(c.sa, c.destSel().View())
	return nil
}

// fetchReg8Addr8 reads an 8-bit offset into the top page (0xFFFFFF00);
// only byte-width destinations are valid.
func fetchReg8Addr8(c *CPU) *Fault {
	destView := c.destSel().View()
	if destView < ViewHigh {
		return faultArgument()
	}
	c.sa = 0xFFFFFF00 + c.fetchByView(ViewByte)
	c.sd = c.readAt(c.sa, destView)
	return nil
}

// fetchReg8Regptr8 uses a register's low byte as a top-page pointer.
func fetchReg8Regptr8(c *CPU) *Fault {
	destView := c.destSel().View()
	srcView := c.srcSel().View()
	if destView < ViewHigh || srcView < ViewHigh {
		return faultArgument()
	}
	c.sa = 0xFFFFFF00 + c.ReadRegister(c.srcSel())
	c.sd = c.readAt(c.sa, destView)
	return nil
}

func fetchAddr32Reg(c *CPU) *Fault {
	addr := c.readDword(c.pc)
	if f := checkWritable(addr); f != nil {
		return f
	}
	c.da = addr
	c.advance(4)
	c.sd = c.ReadRegister(c.srcSel())
	return nil
}

func fetchRegptr32Reg(c *CPU) *Fault {
	if c.destSel().View() != ViewFull {
		return faultArgument()
	}
	addr := c.ReadRegister(c.destSel())
	if f := checkWritable(addr); f != nil {
		return f
	}
	c.da = addr
	c.sd = c.ReadRegister(c.srcSel())
	return nil
}

func fetchAddr16Reg(c *CPU) *Fault {
	c.da = 0xFFFF0000 + c.fetchByView(ViewLow)
	c.sd = c.ReadRegister(c.srcSel())
	return nil
}

func fetchRegptr16Reg(c *CPU) *Fault {
	if c.destSel().View() != ViewLow {
		return faultArgument()
	}
	c.da = 0xFFFF0000 + c.ReadRegister(c.destSel())
	c.sd = c.ReadRegister(c.srcSel())
	return nil
}

func fetchAddr8Reg8(c *CPU) *Fault {
	if c.srcSel().View() < ViewHigh {
		return faultArgument()
	}
	c.da = 0xFFFFFF00 + c.fetchByView(ViewByte)
	c.sd = c.ReadRegister(c.srcSel())
	return nil
}

func fetchRegptr8Reg8(c *CPU) *Fault {
	destView := c.destSel().View()
	srcView := c.srcSel().View()
	if destView < ViewHigh || srcView < ViewHigh {
		return faultArgument()
	}
	c.da = 0xFFFFFF00 + c.ReadRegister(c.destSel())
	c.sd = c.ReadRegister(c.srcSel())
	return nil
}

func fetchRegReg(c *CPU) *Fault {
	c.sd = c.ReadRegister(c.srcSel())
	return nil
}

func execLd(c *CPU) *Fault {
	c.WriteRegister(c.destSel(), c.sd)
	return nil
}

func execSt(c *CPU) *Fault {
	c.writeAt(c.da, c.srcSel().View(), c.sd)
	return nil
}

func execMv(c *CPU) *Fault {
	c.WriteRegister(c.destSel(), c.sd)
	return nil
}

func execPop(c *CPU) *Fault {
	c.sd = c.popData()
	c.WriteRegister(c.destSel(), c.sd)
	return nil
}

func execPush(c *CPU) *Fault {
	c.sd = c.ReadRegister(c.srcSel())
	c.pushData(c.sd)
	return nil
}

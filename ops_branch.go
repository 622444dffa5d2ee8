package tm32

// JMP/CALL target a 32-bit absolute address (either an immediate or a
// register); JPB branches by a signed 16-bit displacement from PC. INT
// raises a software interrupt directly from its parameter byte, with no
// separate fetch phase. RET/RETI pop the return address pushed by
// CALL/INT/hardware interrupt service.
func init() {
	register(0x20, fetchNullImm32, execJmp)
	register(0x21, fetchNullReg32, execJmp)
	register(0x22, fetchNullSimm16, execJpb)
	register(0x23, fetchNullImm32, execCall)
	register(0x24, nil, execInt)
	register(0x25, nil, execRet)
	register(0x26, nil, execReti)
}

func fetchNullImm32(c *CPU) *Fault {
	c.sd = c.fetchByView(ViewFull)
	return nil
}

func fetchNullReg32(c *CPU) *Fault {
	if c.srcSel().View() != ViewFull {
		return faultArgument()
	}
	c.sd = c.ReadRegister(c.srcSel())
	return nil
}

func fetchNullSimm16(c *CPU) *Fault {
	c.sd = c.fetchByView(ViewLow)
	return nil
}

func execJmp(c *CPU) *Fault {
	if c.testCondition(c.destNibble()) {
		c.pc = c.sd
		c.bus.Cycle(1)
	}
	return nil
}

// execJpb adds sd, reinterpreted as a signed 16-bit displacement, to PC.
func execJpb(c *CPU) *Fault {
	if c.testCondition(c.destNibble()) {
		offset := int32(int16(uint16(c.sd)))
		c.pc += uint32(offset)
		c.bus.Cycle(1)
	}
	return nil
}

func execCall(c *CPU) *Fault {
	if c.testCondition(c.destNibble()) {
		c.pushData(c.pc)
		c.pc = c.sd
		c.bus.Cycle(1)
	}
	return nil
}

// execInt vectors to the software-interrupt table at 0x1000 + 0x100*n,
// where n is the whole parameter byte (0-31).
func execInt(c *CPU) *Fault {
	index := uint8(c.ci & 0xFF)
	if index > 0x1F {
		return faultArgument()
	}
	c.ime = false
	c.pushData(c.pc)
	c.pc = interruptVector(index)
	return nil
}

func execRet(c *CPU) *Fault {
	if c.testCondition(c.destNibble()) {
		c.pc = c.popData()
		c.bus.Cycle(1)
	}
	return nil
}

func execReti(c *CPU) *Fault {
	c.ime = true
	c.pc = c.popData()
	c.bus.Cycle(1)
	return nil
}

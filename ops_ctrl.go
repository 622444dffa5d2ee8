package tm32

// Control instructions: no operand resolution happens in the fetch
// phase, so every registration below passes a nil fetchFunc.
func init() {
	register(0x00, nil, execNop)
	register(0x01, nil, execStop)
	register(0x02, nil, execHalt)
	register(0x03, nil, execSec)
	register(0x04, nil, execCec)
	register(0x05, nil, execDi)
	register(0x06, nil, execEi)
	register(0x07, nil, execDaa)
	register(0x08, nil, execScf)
	register(0x09, nil, execCcf)
	register(0x0A, nil, execFlg)
	register(0x0B, nil, execStf)
	register(0x0C, nil, execClf)
}

func execNop(c *CPU) *Fault { return nil }

func execStop(c *CPU) *Fault {
	c.ChangeFlag(FlagStop, true)
	return nil
}

func execHalt(c *CPU) *Fault {
	c.ChangeFlag(FlagHalt, true)
	return nil
}

// execSec loads the parameter byte verbatim into EC, letting software
// raise an arbitrary user-defined error code.
func execSec(c *CPU) *Fault {
	c.ec = uint8(c.ci & 0xFF)
	return nil
}

func execCec(c *CPU) *Fault {
	c.ec = 0
	return nil
}

func execDi(c *CPU) *Fault {
	c.ime = false
	return nil
}

// execEi only latches the EI flip-flop; IME itself is set at the end of
// this same step, after its interrupt scan, so interrupts can be serviced
// from the next step on (see CPU.stepInner).
func execEi(c *CPU) *Fault {
	c.ei = true
	return nil
}

// execDaa re-biases AL after a preceding ADD/SUB so its two nibbles each
// hold a valid BCD digit.
func execDaa(c *CPU) *Fault {
	al := c.ReadRegister(Selector(0b0011)) // rt_al
	var adjust uint32

	if c.CheckFlag(FlagHalfCarry) || al&0xF > 0x9 {
		adjust += 0x6
	}
	if c.CheckFlag(FlagCarry) || al&0xF0 > 0x90 {
		adjust += 0x60
		c.ChangeFlag(FlagCarry, true)
	} else {
		c.ChangeFlag(FlagCarry, false)
	}

	if c.CheckFlag(FlagSubtraction) {
		al -= adjust
	} else {
		al += adjust
	}
	al &= 0xFF

	c.WriteRegister(Selector(0b0011), al)
	c.ChangeFlag(FlagZero, al == 0)
	c.ChangeFlag(FlagHalfCarry, false)
	c.ChangeFlag(FlagParity, parity(al, 8))
	return nil
}

func execScf(c *CPU) *Fault {
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, false)
	c.ChangeFlag(FlagCarry, true)
	return nil
}

func execCcf(c *CPU) *Fault {
	carry := c.CheckFlag(FlagCarry)
	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagHalfCarry, false)
	c.ChangeFlag(FlagCarry, !carry)
	return nil
}

// execFlg reflects the state of user flag n (the destination nibble)
// into the architectural ZERO flag.
func execFlg(c *CPU) *Fault {
	c.ChangeFlag(FlagZero, c.flags&userFlag(c.destNibble()) != 0)
	return nil
}

func execStf(c *CPU) *Fault {
	c.ChangeFlag(userFlag(c.destNibble()), true)
	return nil
}

func execClf(c *CPU) *Fault {
	c.ChangeFlag(userFlag(c.destNibble()), false)
	return nil
}

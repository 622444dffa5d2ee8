package tm32

// serviceInterrupt scans interrupt sources 0..31 in ascending order and
// services the first one whose IF and IE bits are both set: it clears
// that IF bit, wakes the CPU from HALT, clears IME, pushes PC, and jumps
// to the source's vector. Only one source is serviced per Step — a
// second pending source waits for the next call, even if IME is set
// again before then.
//
// Called once per Step, after the fetch/dispatch phase, only when IME is
// true. The caller also clears the EI latch once this runs, regardless
// of whether a source was actually serviced: a quiet interrupt scan
// still consumes the "next step" EI was waiting for.
func (c *CPU) serviceInterrupt() {
	pending := c.ifReg & c.ie
	if pending == 0 {
		return
	}

	for i := uint8(0); i < 32; i++ {
		bit := uint32(1) << i
		if pending&bit == 0 {
			continue
		}

		c.ifReg &^= bit
		c.ChangeFlag(FlagHalt, false)
		c.ime = false
		c.pushData(c.pc)
		c.pc = interruptVector(i)
		return
	}
}

// interruptVector computes the vector address for interrupt source i (or
// for INT's software index, which shares the same formula): source i
// dispatches to 0x00001000 + 0x100*i.
func interruptVector(i uint8) uint32 {
	return 0x1000 + 0x100*uint32(i)
}

// Package tm32 implements the instruction-set interpreter core of the
// TM32, a fictional 32-bit virtual CPU: the fetch/decode/execute engine,
// its register file, flag logic, interrupt service mechanism, and the
// contract with an external memory bus.
//
// The CPU never owns memory. A host constructs a Bus implementation —
// anything from a flat byte slice to a mapped set of peripherals — and
// wires it in with New. Every externally visible unit of work is one call
// to Step.
package tm32

import "log"

// Bus is the CPU's only collaborator: byte-granular read/write at a
// 32-bit address, plus a cycle notification the CPU issues after every
// bus access so a host can keep timers, DMA, or other peripherals in
// lockstep. Multi-byte accesses are composed by the CPU from these byte
// primitives, little-endian (the low byte lives at the lowest address).
type Bus interface {
	Read(addr uint32) uint8
	Write(addr uint32, val uint8)
	Cycle(n int)
}

// CPU is the TM32 interpreter core. Its zero value is not usable; obtain
// one with New.
type CPU struct {
	bus    Bus
	logger *log.Logger

	regs registerFile

	pc uint32
	ip uint32
	sp uint32

	flags uint32

	ec uint8
	ea uint32

	sa uint32
	da uint32
	sd uint32
	ci uint16

	ifReg uint32
	ie    uint32
	ime   bool
	ei    bool
}

// New creates a CPU wired to the given bus and performs a hardware reset.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus, logger: log.Default()}
	c.Reset()
	return c
}

// SetLogger redirects the diagnostic logger Step uses to report recovered
// panics from the bus. Passing nil silences diagnostics entirely by
// installing a logger with no output.
func (c *CPU) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(discard{}, "", 0)
		c.logger = l
		return
	}
	c.logger = l
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// Reset restores the power-on state: PC at 0x00003000, SP at
// 0xFFFEFFFF, every register and flag bit cleared, interrupts disabled
// and unlatched.
func (c *CPU) Reset() {
	c.regs = registerFile{}
	c.pc = 0x00003000
	c.ip = 0
	c.sp = 0xFFFEFFFF
	c.ea = 0
	c.sa = 0
	c.da = 0
	c.sd = 0
	c.ci = 0
	c.flags = 0
	c.ec = 0
	c.ifReg = 0
	c.ie = 0
	c.ime = false
	c.ei = false
}

// State is a snapshot of every architecturally visible register, used to
// establish or inspect CPU state without performing a full Reset — the
// shape a test or a debugger would want.
type State struct {
	A, B, C, D uint32
	PC, SP     uint32
	Flags      uint32
	EC         uint8
	EA         uint32
	IF, IE     uint32
	IME        bool
}

// State returns a snapshot of the CPU's current architectural state.
func (c *CPU) State() State {
	return State{
		A: c.regs[RegA], B: c.regs[RegB], C: c.regs[RegC], D: c.regs[RegD],
		PC: c.pc, SP: c.sp,
		Flags: c.flags,
		EC:    c.ec, EA: c.ea,
		IF: c.ifReg, IE: c.ie,
		IME: c.ime,
	}
}

// SetState loads s into the CPU without touching the bus or the EI latch.
// Intended for tests and debuggers that need to establish exact state
// before executing an instruction.
func (c *CPU) SetState(s State) {
	c.regs[RegA], c.regs[RegB], c.regs[RegC], c.regs[RegD] = s.A, s.B, s.C, s.D
	c.pc = s.PC
	c.sp = s.SP
	c.flags = s.Flags
	c.ec = s.EC
	c.ea = s.EA
	c.ifReg = s.IF
	c.ie = s.IE
	c.ime = s.IME
	c.sa, c.da, c.sd, c.ci = 0, 0, 0, 0
}

// ReadRegister returns the zero-extended value held in the register view
// selected by sel.
func (c *CPU) ReadRegister(sel Selector) uint32 {
	return c.regs.read(sel)
}

// WriteRegister stores val into the register view selected by sel,
// preserving the bits of the underlying register outside that view.
func (c *CPU) WriteRegister(sel Selector, val uint32) {
	c.regs.write(sel, val)
}

// ReportError describes the current value of the error-code register.
func (c *CPU) ReportError() string {
	k := Kind(c.ec)
	switch k {
	case KindOK:
		return "no error occurred"
	case KindInvalidOpcode, KindInvalidArgument, KindInvalidRead, KindInvalidWrite, KindInvalidExecute, KindHardwareError:
		return k.String() + faultDetail(c)
	default:
		return "a user-defined error occurred"
	}
}

func faultDetail(c *CPU) string {
	if c.ea != 0 {
		return " (address 0x" + hex32(c.ea) + ")"
	}
	return ""
}

const hexDigits = "0123456789ABCDEF"

func hex32(v uint32) string {
	buf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf)
}

// RequestInterrupt sets interrupt-flag bit i (0-31), marking source i
// pending. Step's interrupt scan picks it up on its next call if IME is
// set and the corresponding IE bit is also set.
func (c *CPU) RequestInterrupt(i uint8) {
	c.ifReg |= 1 << (i & 0x1F)
}

// Step advances execution by one instruction and reports whether the CPU
// remains runnable. A return of false means either a fault occurred this
// cycle (inspect ReportError) or the CPU executed STOP; in both cases the
// STOP flag is set and Step will keep returning false until Reset.
func (c *CPU) Step() bool {
	if c.CheckFlag(FlagStop) {
		return false
	}

	if fault := c.stepInner(); fault != nil {
		c.ec = uint8(fault.Kind)
		if fault.HasAddr {
			c.ea = fault.Addr
		}
		c.ChangeFlag(FlagStop, true)
		return false
	}

	return !c.CheckFlag(FlagStop)
}

func (c *CPU) stepInner() (fault *Fault) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("tm32: recovered from bus panic during step: %v", r)
			fault = faultHardware()
		}
	}()

	// Scratch state is semantically per-instruction; clearing it here
	// eliminates a class of addressing-mode bugs where a stale sa/da/sd
	// from the previous instruction leaks into the next one.
	c.sa, c.da, c.sd, c.ci = 0, 0, 0, 0

	if !c.CheckFlag(FlagHalt) {
		c.ip = c.pc
		ci := c.readWord(c.ip)
		if f := checkExecutable(c.ip); f != nil {
			return f
		}
		c.advance(2)
		c.ci = ci

		h := dispatchTable[byte(ci>>8)]
		if h.exec == nil {
			return faultOpcode()
		}
		if h.fetch != nil {
			if f := h.fetch(c); f != nil {
				return f
			}
		}
		if f := h.exec(c); f != nil {
			return f
		}
	} else {
		c.bus.Cycle(1)
		if c.ifReg != 0 {
			c.ChangeFlag(FlagHalt, false)
		}
	}

	// Interrupt service runs before the EI latch takes effect: EI only
	// enables interrupts starting the step after it executed. See
	// interrupt.go for the full ordering rationale.
	if c.ime {
		c.serviceInterrupt()
		c.ei = false
	}
	if c.ei {
		c.ime = true
	}

	return nil
}

/* Bus composition **********************************************************/

func (c *CPU) readByte(addr uint32) uint8 { return c.bus.Read(addr) }

func (c *CPU) readWord(addr uint32) uint16 {
	lo := c.bus.Read(addr)
	hi := c.bus.Read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) readDword(addr uint32) uint32 {
	b0 := c.bus.Read(addr)
	b1 := c.bus.Read(addr + 1)
	b2 := c.bus.Read(addr + 2)
	b3 := c.bus.Read(addr + 3)
	return uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16 | uint32(b3)<<24
}

func (c *CPU) writeByte(addr uint32, v uint8) { c.bus.Write(addr, v) }

func (c *CPU) writeWord(addr uint32, v uint16) {
	c.bus.Write(addr, byte(v))
	c.bus.Write(addr+1, byte(v>>8))
}

func (c *CPU) writeDword(addr uint32, v uint32) {
	c.bus.Write(addr, byte(v))
	c.bus.Write(addr+1, byte(v>>8))
	c.bus.Write(addr+2, byte(v>>16))
	c.bus.Write(addr+3, byte(v>>24))
}

// advance charges n bus cycles and moves PC forward by n bytes; used when
// an immediate or extension operand is consumed straight from the
// instruction stream.
func (c *CPU) advance(n uint32) {
	c.bus.Cycle(int(n))
	c.pc += n
}

// fetchByView reads the bus-access width implied by v (dword/word/byte —
// ViewHigh and ViewByte both resolve to a single byte access) directly
// from PC, advancing PC and charging the matching cycle count.
func (c *CPU) fetchByView(v View) uint32 {
	switch v {
	case ViewFull:
		val := c.readDword(c.pc)
		c.advance(4)
		return val
	case ViewLow:
		val := c.readWord(c.pc)
		c.advance(2)
		return uint32(val)
	default:
		val := c.readByte(c.pc)
		c.advance(1)
		return uint32(val)
	}
}

// readAt reads the bus-access width implied by v at addr and charges a
// matching cycle notification, without moving PC.
func (c *CPU) readAt(addr uint32, v View) uint32 {
	switch v {
	case ViewFull:
		val := c.readDword(addr)
		c.bus.Cycle(4)
		return val
	case ViewLow:
		val := c.readWord(addr)
		c.bus.Cycle(2)
		return uint32(val)
	default:
		val := c.readByte(addr)
		c.bus.Cycle(1)
		return uint32(val)
	}
}

// writeAt writes val at the bus-access width implied by v to addr and
// charges a matching cycle notification.
func (c *CPU) writeAt(addr uint32, v View, val uint32) {
	switch v {
	case ViewFull:
		c.writeDword(addr, val)
		c.bus.Cycle(4)
	case ViewLow:
		c.writeWord(addr, uint16(val))
		c.bus.Cycle(2)
	default:
		c.writeByte(addr, uint8(val))
		c.bus.Cycle(1)
	}
}

// pushData pushes a 32-bit value onto the stack. SP decreases by 4 before
// the write, so the pushed word lands just below the old SP.
func (c *CPU) pushData(val uint32) {
	c.sp -= 4
	c.bus.Cycle(1)
	c.writeDword(c.sp, val)
	c.bus.Cycle(4)
}

// popData pops a 32-bit value from the stack. The read happens before SP
// increases.
func (c *CPU) popData() uint32 {
	val := c.readDword(c.sp)
	c.bus.Cycle(4)
	c.sp += 4
	c.bus.Cycle(1)
	return val
}

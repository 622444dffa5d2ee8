package tm32

import "testing"

// instrWord assembles a 16-bit instruction header from an opcode byte and
// the destination/source nibbles of its parameter byte.
func instrWord(opcode, dest, src uint8) uint16 {
	return uint16(opcode)<<8 | uint16(dest)<<4 | uint16(src)
}

// selector selectors used throughout these tests, named the way the
// parameter-byte encoding nibbles identify registers and their views.
const (
	selA  = uint8(0x0)
	selAW = uint8(0x1)
	selAH = uint8(0x2)
	selAL = uint8(0x3)
	selB  = uint8(0x4)
	selBW = uint8(0x5)
	selBL = uint8(0x7)
	selC  = uint8(0x8)
	selD  = uint8(0xC)
)

func newTestCPU() (*CPU, *SimpleBus) {
	bus := NewSimpleBus()
	return New(bus), bus
}

func TestResetState(t *testing.T) {
	c, _ := newTestCPU()
	st := c.State()
	if st.PC != 0x00003000 {
		t.Errorf("PC = 0x%08X, want 0x00003000", st.PC)
	}
	if st.SP != 0xFFFEFFFF {
		t.Errorf("SP = 0x%08X, want 0xFFFEFFFF", st.SP)
	}
	if st.A != 0 || st.B != 0 || st.C != 0 || st.D != 0 {
		t.Errorf("registers not cleared on reset: %+v", st)
	}
	if st.Flags != 0 || st.IME || st.IF != 0 || st.IE != 0 || st.EC != 0 {
		t.Errorf("flags/interrupt/error state not cleared on reset: %+v", st)
	}
}

func TestStepStopReturnsFalseImmediately(t *testing.T) {
	c, _ := newTestCPU()
	c.ChangeFlag(FlagStop, true)
	if c.Step() {
		t.Fatal("Step returned true while STOP was set")
	}
}

func TestNopAdvancesPCByTwo(t *testing.T) {
	c, bus := newTestCPU()
	c.SetState(State{PC: 0x1000})
	bus.LoadWord(0x1000, instrWord(0x00, 0, 0))

	if !c.Step() {
		t.Fatalf("Step failed: %s", c.ReportError())
	}
	if c.State().PC != 0x1002 {
		t.Errorf("PC = 0x%08X, want 0x00001002", c.State().PC)
	}
}

func TestStopInstructionHalts(t *testing.T) {
	c, bus := newTestCPU()
	c.SetState(State{PC: 0x1000})
	bus.LoadWord(0x1000, instrWord(0x01, 0, 0)) // STOP

	if c.Step() {
		t.Fatal("Step returned true for the step that executed STOP")
	}
	if !c.CheckFlag(FlagStop) {
		t.Fatal("STOP flag not set after STOP instruction")
	}
	if c.Step() {
		t.Fatal("Step returned true after STOP executed")
	}
}

/* Spec section 8 end-to-end scenarios ***************************************/

// Scenario: HALT + interrupt wake.
func TestScenarioHaltInterruptWake(t *testing.T) {
	c, bus := newTestCPU()
	bus.LoadWord(0x1000, instrWord(0x02, 0, 0)) // HALT
	c.SetState(State{PC: 0x1000, SP: 0xFFFEFFFF, IE: 0x00000001, IF: 0, IME: true})

	if !c.Step() {
		t.Fatalf("HALT faulted: %s", c.ReportError())
	}
	if !c.CheckFlag(FlagHalt) {
		t.Fatal("HALT flag not set after executing HALT")
	}
	if c.State().PC != 0x1002 {
		t.Errorf("PC after HALT = 0x%08X, want 0x00001002", c.State().PC)
	}

	c.RequestInterrupt(0)

	if !c.Step() {
		t.Fatalf("interrupt-servicing step faulted: %s", c.ReportError())
	}
	st := c.State()
	if c.CheckFlag(FlagHalt) {
		t.Error("HALT still set after pending interrupt serviced")
	}
	if st.IF != 0 {
		t.Errorf("IF = 0x%08X, want 0 (bit 0 cleared)", st.IF)
	}
	if st.IME {
		t.Error("IME still true after interrupt service")
	}
	if st.PC != interruptVector(0) {
		t.Errorf("PC = 0x%08X, want vector 0x%08X", st.PC, interruptVector(0))
	}
	if popped := c.popData(); popped != 0x1002 {
		t.Errorf("pushed return address = 0x%08X, want 0x00001002", popped)
	}
}

// Scenario: ADD with half-carry.
func TestScenarioAddHalfCarry(t *testing.T) {
	c, bus := newTestCPU()
	c.SetState(State{PC: 0x1000, SP: 0xFFFEFFFF})
	c.WriteRegister(Selector(selAL), 0x0F)
	bus.LoadWord(0x1000, instrWord(0x34, selAL, selAL))
	bus.LoadBytes(0x1002, 0x01)

	if !c.Step() {
		t.Fatalf("ADD faulted: %s", c.ReportError())
	}
	if got := c.ReadRegister(Selector(selAL)); got != 0x10 {
		t.Errorf("AL = 0x%02X, want 0x10", got)
	}
	if !c.CheckFlag(FlagHalfCarry) {
		t.Error("HALF-CARRY not set")
	}
	if c.CheckFlag(FlagCarry) {
		t.Error("CARRY unexpectedly set")
	}
	if c.CheckFlag(FlagZero) {
		t.Error("ZERO unexpectedly set")
	}
	if c.CheckFlag(FlagParity) {
		t.Error("PARITY unexpectedly set (popcount(0x10) is odd)")
	}
}

// Scenario: invalid execute.
func TestScenarioInvalidExecute(t *testing.T) {
	c, _ := newTestCPU()
	c.SetState(State{PC: 0x00000500})

	if c.Step() {
		t.Fatal("Step returned true fetching from a non-executable address")
	}
	if Kind(c.State().EC) != KindInvalidExecute {
		t.Errorf("EC = %s, want invalid-execute", Kind(c.State().EC))
	}
	if c.State().EA != 0x00000500 {
		t.Errorf("EA = 0x%08X, want 0x00000500", c.State().EA)
	}
	if !c.CheckFlag(FlagStop) {
		t.Error("STOP not set after invalid-execute fault")
	}
}

// Scenario: store to ROM range.
func TestScenarioStoreToROM(t *testing.T) {
	c, bus := newTestCPU()
	c.SetState(State{PC: 0x1000, SP: 0xFFFEFFFF})
	c.WriteRegister(Selector(selA), 0xCAFEBABE)
	bus.LoadWord(0x1000, instrWord(0x17, 0, selA)) // ST [imm32], A
	bus.LoadDword(0x1002, 0x00002000)

	if c.Step() {
		t.Fatal("Step returned true storing to ROM range")
	}
	if Kind(c.State().EC) != KindInvalidWrite {
		t.Errorf("EC = %s, want invalid-write", Kind(c.State().EC))
	}
	if c.State().EA != 0x00002000 {
		t.Errorf("EA = 0x%08X, want 0x00002000", c.State().EA)
	}
	if !c.CheckFlag(FlagStop) {
		t.Error("STOP not set after invalid-write fault")
	}
}

// Scenario: conditional JMP not taken.
func TestScenarioConditionalJmpNotTaken(t *testing.T) {
	c, bus := newTestCPU()
	c.SetState(State{PC: 0x1000, SP: 0xFFFEFFFF})
	c.ChangeFlag(FlagZero, false)
	bus.LoadWord(0x1000, instrWord(0x20, 0b1001, 0)) // JMP zero-set, imm32
	bus.LoadDword(0x1002, 0x80000100)

	if !c.Step() {
		t.Fatalf("JMP faulted: %s", c.ReportError())
	}
	if c.State().PC != 0x1006 {
		t.Errorf("PC = 0x%08X, want 0x00001006 (branch not taken)", c.State().PC)
	}
	if got := bus.Cycles(); got != 6 {
		t.Errorf("bus cycles = %d, want 6 (2 header + 4 imm, no branch charge)", got)
	}
}

// Scenario: PUSH/POP symmetry.
func TestScenarioPushPopSymmetry(t *testing.T) {
	c, bus := newTestCPU()
	c.SetState(State{PC: 0x1000, SP: 0x80001000})
	c.WriteRegister(Selector(selA), 0xDEADBEEF)
	bus.LoadWord(0x1000, instrWord(0x1F, 0, selA)) // PUSH A
	bus.LoadWord(0x1002, instrWord(0x1E, selB, 0)) // POP B

	if !c.Step() {
		t.Fatalf("PUSH faulted: %s", c.ReportError())
	}
	if !c.Step() {
		t.Fatalf("POP faulted: %s", c.ReportError())
	}

	st := c.State()
	if st.SP != 0x80001000 {
		t.Errorf("SP = 0x%08X, want 0x80001000", st.SP)
	}
	if st.A != 0xDEADBEEF {
		t.Errorf("A = 0x%08X, want 0xDEADBEEF", st.A)
	}
	if st.B != 0xDEADBEEF {
		t.Errorf("B = 0x%08X, want 0xDEADBEEF", st.B)
	}
}

func TestHardwarePanicBecomesFault(t *testing.T) {
	c := New(panicBus{})
	c.SetState(State{PC: 0x1000})

	if c.Step() {
		t.Fatal("Step returned true despite a panicking bus")
	}
	if Kind(c.State().EC) != KindHardwareError {
		t.Errorf("EC = %s, want hardware-error", Kind(c.State().EC))
	}
}

type panicBus struct{}

func (panicBus) Read(addr uint32) uint8     { panic("simulated bus failure") }
func (panicBus) Write(addr uint32, v uint8) {}
func (panicBus) Cycle(n int)                {}

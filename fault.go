package tm32

import "fmt"

// Kind identifies the class of a CPU fault, latched into the EC register
// when a Fault unwinds Step.
type Kind uint8

const (
	// KindOK indicates no error has occurred. EC holds this value after
	// reset or CEC.
	KindOK Kind = iota
	// KindInvalidOpcode is raised when the fetched opcode byte has no
	// entry in the dispatch table.
	KindInvalidOpcode
	// KindInvalidArgument is raised by size-mismatched addressing modes,
	// an out-of-range bit index, an INT operand above 0x1F, or an
	// arithmetic/logical destination outside the A register class.
	KindInvalidArgument
	// KindInvalidRead is reserved for future memory-protection extensions
	// and is not raised by the current instruction set.
	KindInvalidRead
	// KindInvalidWrite is raised by a store to an address below
	// 0x80000000.
	KindInvalidWrite
	// KindInvalidExecute is raised by an instruction fetch from outside
	// [0x00001000, 0x7FFFFFFF].
	KindInvalidExecute
	// KindHardwareError is reserved for bus-originated failures,
	// including a panic recovered from within Step.
	KindHardwareError
)

// String names the fault kind the way a disassembler or log line would.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindInvalidOpcode:
		return "invalid-opcode"
	case KindInvalidArgument:
		return "invalid-argument"
	case KindInvalidRead:
		return "invalid-read"
	case KindInvalidWrite:
		return "invalid-write"
	case KindInvalidExecute:
		return "invalid-execute"
	case KindHardwareError:
		return "hardware-error"
	default:
		return "unknown"
	}
}

// Fault is an architectural error that unwinds the current Step call. It
// is returned, never panicked, by fetch and execute routines so that
// bus-originated and architectural faults are handled symmetrically; Step
// catches it, latches EC (and EA, for faults that implicate an address),
// sets the STOP flag, and returns false.
type Fault struct {
	Kind Kind
	Addr uint32
	// HasAddr is true when Addr should be latched into EA. Faults that
	// are purely structural (invalid-opcode, invalid-argument) do not
	// touch EA.
	HasAddr bool
}

func (f *Fault) Error() string {
	if f.HasAddr {
		return fmt.Sprintf("tm32: %s at 0x%08X", f.Kind, f.Addr)
	}
	return fmt.Sprintf("tm32: %s", f.Kind)
}

func faultOpcode() *Fault {
	return &Fault{Kind: KindInvalidOpcode}
}

func faultArgument() *Fault {
	return &Fault{Kind: KindInvalidArgument}
}

func faultWrite(addr uint32) *Fault {
	return &Fault{Kind: KindInvalidWrite, Addr: addr, HasAddr: true}
}

func faultExecute(addr uint32) *Fault {
	return &Fault{Kind: KindInvalidExecute, Addr: addr, HasAddr: true}
}

func faultHardware() *Fault {
	return &Fault{Kind: KindHardwareError}
}

// writableAddrMin and executableAddrMin/Max bound the two address-range
// contracts the fetch phase enforces: writable memory starts at
// 0x80000000, executable code lives in [0x00001000, 0x7FFFFFFF].
const (
	writableAddrMin   uint32 = 0x80000000
	executableAddrMin uint32 = 0x00001000
	executableAddrMax uint32 = 0x7FFFFFFF
)

// checkWritable returns a Fault if addr is not writable.
func checkWritable(addr uint32) *Fault {
	if addr < writableAddrMin {
		return faultWrite(addr)
	}
	return nil
}

// checkExecutable returns a Fault if addr is not executable.
func checkExecutable(addr uint32) *Fault {
	if addr < executableAddrMin || addr > executableAddrMax {
		return faultExecute(addr)
	}
	return nil
}

package tm32

// Reg identifies one of the CPU's four general-purpose register cells.
type Reg uint8

const (
	RegA Reg = iota
	RegB
	RegC
	RegD
)

// String returns the register's canonical name (A, B, C, D).
func (r Reg) String() string {
	switch r {
	case RegA:
		return "A"
	case RegB:
		return "B"
	case RegC:
		return "C"
	case RegD:
		return "D"
	default:
		return "?"
	}
}

// View is a 2-bit size code selecting one of a register's four widths.
type View uint8

const (
	ViewFull View = iota // [31:0]
	ViewLow              // low word, [15:0]
	ViewHigh             // high byte of the low word, [15:8]
	ViewByte             // low byte, [7:0]
)

// Mask returns the bitmask covering the valid bits of this view.
func (v View) Mask() uint32 {
	switch v {
	case ViewFull:
		return 0xFFFFFFFF
	case ViewLow:
		return 0xFFFF
	case ViewHigh, ViewByte:
		return 0xFF
	default:
		return 0
	}
}

// Bits returns the bit width of this view.
func (v View) Bits() uint32 {
	switch v {
	case ViewFull:
		return 32
	case ViewLow:
		return 16
	default:
		return 8
	}
}

// HiBit returns the index of the view's most-significant bit, used by
// shift/rotate instructions to locate the bit that exits or enters the view.
func (v View) HiBit() uint32 {
	switch v {
	case ViewFull:
		return 31
	case ViewLow:
		return 15
	default:
		return 7
	}
}

// HalfMask returns the mask for the lower half of this view, used for the
// HALF-CARRY boundary (bit 27 for dword, bit 11 for word, bit 3 for byte).
func (v View) HalfMask() uint32 {
	switch v {
	case ViewFull:
		return 0x0FFFFFFF
	case ViewLow:
		return 0x0FFF
	default:
		return 0x0F
	}
}

// String returns a human-readable name for this view.
func (v View) String() string {
	switch v {
	case ViewFull:
		return "full"
	case ViewLow:
		return "low-word"
	case ViewHigh:
		return "high-byte"
	case ViewByte:
		return "low-byte"
	default:
		return "unknown"
	}
}

// Selector is a 4-bit register selector nibble as it appears in an
// instruction's parameter byte: the two high bits choose the register
// (A/B/C/D), the two low bits choose the View.
type Selector uint8

// Reg returns the register selected by this nibble.
func (s Selector) Reg() Reg { return Reg((s >> 2) & 0b11) }

// View returns the view selected by this nibble.
func (s Selector) View() View { return View(s & 0b11) }

// IsAClass reports whether this selector's register is A — the only class
// ADD/ADC/SUB/SBC/AND/OR/XOR/CMP destinations may belong to.
func (s Selector) IsAClass() bool { return s.Reg() == RegA }

// registerFile holds the four 32-bit general-purpose register cells.
type registerFile [4]uint32

// read returns the zero-extended value held in the view selected by sel.
func (f *registerFile) read(sel Selector) uint32 {
	cell := f[sel.Reg()]
	v := sel.View()
	switch v {
	case ViewFull:
		return cell
	case ViewLow:
		return cell & 0xFFFF
	case ViewHigh:
		return (cell & 0xFF00) >> 8
	default: // ViewByte
		return cell & 0xFF
	}
}

// write stores val into the view selected by sel, preserving every bit of
// the underlying cell outside that view. Each view is updated as a
// standalone case — there is deliberately no fallthrough between cases,
// unlike the original TM32 reference implementation's write_register,
// whose missing break statements let a write to a wide view fall through
// and corrupt every narrower view below it.
func (f *registerFile) write(sel Selector, val uint32) {
	reg := sel.Reg()
	switch sel.View() {
	case ViewFull:
		f[reg] = val
	case ViewLow:
		f[reg] = (f[reg] &^ 0xFFFF) | (val & 0xFFFF)
	case ViewHigh:
		f[reg] = (f[reg] &^ 0xFF00) | ((val & 0xFF) << 8)
	case ViewByte:
		f[reg] = (f[reg] &^ 0xFF) | (val & 0xFF)
	}
}

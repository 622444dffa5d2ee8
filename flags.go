package tm32

import "math/bits"

// Flag bits 0-7 of the flag register are architectural; bits 16-31 are
// user-assignable and exposed via FLG/STF/CLF.
const (
	FlagStop         uint32 = 1 << 0
	FlagHalt         uint32 = 1 << 1
	FlagParity       uint32 = 1 << 2
	FlagSign         uint32 = 1 << 3
	FlagCarry        uint32 = 1 << 4
	FlagHalfCarry    uint32 = 1 << 5
	FlagSubtraction  uint32 = 1 << 6
	FlagZero         uint32 = 1 << 7
	userFlagBase            = 16
)

// CheckFlag reports whether the given flag bit is set.
func (c *CPU) CheckFlag(bit uint32) bool {
	return c.flags&bit != 0
}

// ChangeFlag sets or clears the given flag bit.
func (c *CPU) ChangeFlag(bit uint32, on bool) {
	if on {
		c.flags |= bit
	} else {
		c.flags &^= bit
	}
}

// userFlag returns the bit mask for user flag index (0-15), as addressed
// by the destination nibble of FLG/STF/CLF (bit 16+n).
func userFlag(n uint8) uint32 {
	return 1 << (userFlagBase + uint32(n&0xF))
}

// parity reports whether the low n bits of val have an even count of
// 1-bits.
func parity(val uint32, n uint32) bool {
	return bits.OnesCount32(val&maskOfWidth(n))%2 == 0
}

func maskOfWidth(n uint32) uint32 {
	if n >= 32 {
		return 0xFFFFFFFF
	}
	return (uint32(1) << n) - 1
}

// applyAdd sets ZERO/PARITY/CARRY/HALF-CARRY/SUBTRACTION after an addition
// result = lhs + rhs + carryIn, evaluated over the given view's width.
// SIGN is cleared; ADD/ADC never produce a signed result.
func (c *CPU) applyAdd(lhs, rhs uint32, carryIn bool, v View) uint32 {
	var ci uint32
	if carryIn {
		ci = 1
	}
	mask := v.Mask()
	bitsN := v.Bits()
	sum := uint64(lhs&mask) + uint64(rhs&mask) + uint64(ci)
	result := uint32(sum) & mask

	half := v.HalfMask()
	halfSum := (lhs & half) + (rhs & half) + ci

	c.ChangeFlag(FlagSubtraction, false)
	c.ChangeFlag(FlagSign, false)
	c.ChangeFlag(FlagZero, result == 0)
	c.ChangeFlag(FlagCarry, sum > uint64(mask))
	c.ChangeFlag(FlagHalfCarry, halfSum > half)
	c.ChangeFlag(FlagParity, parity(result, bitsN))

	return result
}

// applySub sets ZERO/PARITY/SIGN/CARRY/HALF-CARRY/SUBTRACTION after a
// subtraction result = lhs - rhs - carryIn (borrow), evaluated over the
// given view's width.
func (c *CPU) applySub(lhs, rhs uint32, carryIn bool, v View) uint32 {
	var ci int64
	if carryIn {
		ci = 1
	}
	mask := v.Mask()
	bitsN := v.Bits()
	diff := int64(lhs&mask) - int64(rhs&mask) - ci
	result := uint32(diff) & mask

	half := v.HalfMask()
	halfDiff := int64(lhs&half) - int64(rhs&half) - ci

	c.ChangeFlag(FlagSubtraction, true)
	c.ChangeFlag(FlagCarry, diff < 0)
	c.ChangeFlag(FlagSign, diff < 0)
	c.ChangeFlag(FlagZero, result == 0)
	c.ChangeFlag(FlagHalfCarry, halfDiff < 0)
	c.ChangeFlag(FlagParity, parity(result, bitsN))

	return result
}

// applyCmp sets the same flags as applySub but never writes a result back;
// it is used by CMP to compare without mutating the destination.
func (c *CPU) applyCmp(lhs, rhs uint32, v View) {
	c.applySub(lhs, rhs, false, v)
}

// applyLogical sets ZERO and PARITY from result over the given view's
// width. AND/OR/XOR additionally force CARRY/HALF-CARRY and clear SIGN and
// SUBTRACTION at the call site (the forcing rule differs between AND and
// OR/XOR, so it is not folded in here).
func (c *CPU) applyLogical(result uint32, v View) {
	mask := result & v.Mask()
	c.ChangeFlag(FlagZero, mask == 0)
	c.ChangeFlag(FlagParity, parity(mask, v.Bits()))
}

// testCondition evaluates a 4-bit condition code from the destination
// nibble of a JMP/JPB/CALL/RET parameter byte.
func (c *CPU) testCondition(cc uint8) bool {
	switch cc {
	case 0b0000: // unconditional
		return true
	case 0b0001: // zero clear
		return !c.CheckFlag(FlagZero)
	case 0b1001: // zero set
		return c.CheckFlag(FlagZero)
	case 0b0010: // carry clear
		return !c.CheckFlag(FlagCarry)
	case 0b1010: // carry set
		return c.CheckFlag(FlagCarry)
	case 0b0011: // parity clear
		return !c.CheckFlag(FlagParity)
	case 0b1011: // parity set
		return c.CheckFlag(FlagParity)
	case 0b0100: // sign clear
		return !c.CheckFlag(FlagSign)
	case 0b1100: // sign set
		return c.CheckFlag(FlagSign)
	default:
		return false
	}
}

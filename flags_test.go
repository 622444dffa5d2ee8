package tm32

import "testing"

func TestApplyAddFlags(t *testing.T) {
	cases := []struct {
		name                                   string
		lhs, rhs                               uint32
		carryIn                                bool
		view                                   View
		wantResult                             uint32
		wantZero, wantCarry, wantHalf, wantPar bool
	}{
		{"byte no carry", 0x01, 0x01, false, ViewByte, 0x02, false, false, false, false},
		{"byte half-carry", 0x0F, 0x01, false, ViewByte, 0x10, false, false, true, false},
		{"byte carry out", 0xFF, 0x01, false, ViewByte, 0x00, true, true, true, true},
		{"byte with carry-in", 0xFE, 0x01, true, ViewByte, 0x00, true, true, true, true},
		{"word overflow", 0xFFFF, 0x0001, false, ViewLow, 0x0000, true, true, true, true},
		{"dword no overflow", 0x00000001, 0x00000001, false, ViewFull, 0x00000002, false, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCPU()
			result := c.applyAdd(tc.lhs, tc.rhs, tc.carryIn, tc.view)
			if result != tc.wantResult {
				t.Errorf("result = %#x, want %#x", result, tc.wantResult)
			}
			if got := c.CheckFlag(FlagZero); got != tc.wantZero {
				t.Errorf("ZERO = %v, want %v", got, tc.wantZero)
			}
			if got := c.CheckFlag(FlagCarry); got != tc.wantCarry {
				t.Errorf("CARRY = %v, want %v", got, tc.wantCarry)
			}
			if got := c.CheckFlag(FlagHalfCarry); got != tc.wantHalf {
				t.Errorf("HALF-CARRY = %v, want %v", got, tc.wantHalf)
			}
			if got := c.CheckFlag(FlagParity); got != tc.wantPar {
				t.Errorf("PARITY = %v, want %v", got, tc.wantPar)
			}
			if c.CheckFlag(FlagSubtraction) {
				t.Error("SUBTRACTION set after an addition")
			}
		})
	}
}

func TestApplySubFlagsBorrow(t *testing.T) {
	c, _ := newTestCPU()
	result := c.applySub(0x00, 0x01, false, ViewByte)
	if result != 0xFF {
		t.Errorf("result = %#x, want 0xFF", result)
	}
	if !c.CheckFlag(FlagCarry) {
		t.Error("CARRY (borrow) not set")
	}
	if !c.CheckFlag(FlagSign) {
		t.Error("SIGN not set for a negative borrow result")
	}
	if !c.CheckFlag(FlagSubtraction) {
		t.Error("SUBTRACTION not set after a subtraction")
	}
}

func TestApplyCmpEqualSetsZero(t *testing.T) {
	c, _ := newTestCPU()
	c.applyCmp(5, 5, ViewByte)
	if !c.CheckFlag(FlagZero) {
		t.Error("ZERO not set comparing equal operands")
	}
}

func TestTestConditionTable(t *testing.T) {
	c, _ := newTestCPU()

	c.ChangeFlag(FlagZero, true)
	if !c.testCondition(0b1001) {
		t.Error("zero-set condition false while ZERO is set")
	}
	if c.testCondition(0b0001) {
		t.Error("zero-clear condition true while ZERO is set")
	}

	c.ChangeFlag(FlagCarry, true)
	if !c.testCondition(0b1010) {
		t.Error("carry-set condition false while CARRY is set")
	}

	c.ChangeFlag(FlagParity, false)
	if !c.testCondition(0b0011) {
		t.Error("parity-clear condition false while PARITY is clear")
	}

	c.ChangeFlag(FlagSign, true)
	if !c.testCondition(0b1100) {
		t.Error("sign-set condition false while SIGN is set")
	}

	if !c.testCondition(0b0000) {
		t.Error("unconditional code returned false")
	}
}

func TestParity(t *testing.T) {
	cases := []struct {
		val  uint32
		n    uint32
		want bool
	}{
		{0x00, 8, true},
		{0x01, 8, false},
		{0x03, 8, true},
		{0xFF, 8, true},
		{0x10, 8, false},
	}
	for _, tc := range cases {
		if got := parity(tc.val, tc.n); got != tc.want {
			t.Errorf("parity(%#x, %d) = %v, want %v", tc.val, tc.n, got, tc.want)
		}
	}
}

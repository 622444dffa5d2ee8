package tm32

import "testing"

func TestSerializeRoundTrip(t *testing.T) {
	c, _ := newTestCPU()
	c.WriteRegister(Selector(selA), 0x11223344)
	c.WriteRegister(Selector(selB), 0xAABBCCDD)
	c.SetState(State{
		PC: 0x1234, SP: 0x80005678,
		Flags: FlagCarry | FlagZero,
		EC:    uint8(KindInvalidWrite), EA: 0xDEADBEEF,
		IF: 0x5, IE: 0xA, IME: true,
	})
	c.ei = true

	buf := make([]byte, c.SerializeSize())
	if err := c.Serialize(buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	restored, _ := newTestCPU()
	if err := restored.Deserialize(buf); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if got := restored.State(); got != c.State() {
		t.Errorf("restored state = %+v, want %+v", got, c.State())
	}
	if restored.ei != true {
		t.Error("EI latch not restored")
	}
	if restored.sa != 0 || restored.da != 0 || restored.sd != 0 || restored.ci != 0 {
		t.Error("per-instruction scratch registers should be cleared after Deserialize")
	}
}

func TestSerializeBufferTooSmall(t *testing.T) {
	c, _ := newTestCPU()
	buf := make([]byte, 4)
	if err := c.Serialize(buf); err == nil {
		t.Fatal("Serialize did not error on an undersized buffer")
	}
	if err := c.Deserialize(buf); err == nil {
		t.Fatal("Deserialize did not error on an undersized buffer")
	}
}

func TestDeserializeVersionMismatch(t *testing.T) {
	c, _ := newTestCPU()
	buf := make([]byte, c.SerializeSize())
	if err := c.Serialize(buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	buf[0] = 0xFF

	if err := c.Deserialize(buf); err == nil {
		t.Fatal("Deserialize accepted a buffer with an unrecognized version byte")
	}
}

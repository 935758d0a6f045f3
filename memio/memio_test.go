package memio

import "testing"

func TestDummyReadWriteU32(t *testing.T) {
	m := NewDummy(16)
	m.WriteU32(8, 0xDEADBEEF)
	if got := m.ReadU32(8); got != 0xDEADBEEF {
		t.Errorf("ReadU32(8) = %#x, want 0xdeadbeef", got)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	m := NewDummy(16)
	WriteFloat(m, 0, 3.25)
	if got := ReadFloat(m, 0); got != 3.25 {
		t.Errorf("ReadFloat(0) = %v, want 3.25", got)
	}
}

func TestByteAddressingDividesBy4(t *testing.T) {
	m := NewDummy(4)
	m.WriteU32(0, 1)
	m.WriteU32(4, 2)
	m.WriteU32(8, 3)
	if m.ReadU32(0) != 1 || m.ReadU32(4) != 2 || m.ReadU32(8) != 3 {
		t.Error("word-indexed addressing mismatch")
	}
}

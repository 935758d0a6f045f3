package vfpu

import (
	"testing"

	"github.com/pspgo/vfpu/memio"
	"github.com/pspgo/vfpu/regfile"
)

func TestSVRoundTrip(t *testing.T) {
	vm := New(WithMemory(memio.NewDummy(64)))
	vm.Regs.WriteScalar(0, 3.5)
	vm.SV(false, 0, 16)
	vm.SV(true, 4, 16)
	if got := vm.Regs.ReadScalar(4); got != 3.5 {
		t.Errorf("SV round trip = %v, want 3.5", got)
	}
}

func TestSVQFullQuadRoundTrip(t *testing.T) {
	vm := New(WithMemory(memio.NewDummy(64)))
	vm.Regs.WriteVector([]float32{1, 2, 3, 4}, regfile.Quad, 0)
	vm.SVQ(false, PartialFull, 0, 32)
	vm.SVQ(true, PartialFull, 4, 32)
	got := make([]float32, 4)
	vm.Regs.ReadVector(got, regfile.Quad, 4)
	want := []float32{1, 2, 3, 4}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("lane %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSVQPartialLeftOnlyTransfersLowLanes(t *testing.T) {
	vm := New(WithMemory(memio.NewDummy(64)))
	vm.Regs.WriteVector([]float32{1, 2, 3, 4}, regfile.Quad, 0)
	vm.SVQ(false, PartialFull, 0, 32) // seed memory with full quad
	vm.Regs.WriteVector([]float32{9, 9, 9, 9}, regfile.Quad, 4)
	vm.SVQ(true, PartialLeft, 4, 32)
	got := make([]float32, 4)
	vm.Regs.ReadVector(got, regfile.Quad, 4)
	if got[0] != 1 || got[1] != 2 {
		t.Errorf("left-partial load should transfer low lanes: got %v", got)
	}
	if got[2] != 9 || got[3] != 9 {
		t.Errorf("left-partial load should leave high lanes untouched: got %v", got)
	}
}

func TestDecodePrimaryKnownOpcodes(t *testing.T) {
	cases := map[uint32]Op{
		50 << 26: OpLVS,
		58 << 26: OpSVS,
		53 << 26: OpLVQ,
		61 << 26: OpSVQ,
	}
	for op, want := range cases {
		if got := DecodePrimary(op); got != want {
			t.Errorf("DecodePrimary(%#x) = %v, want %v", op, got, want)
		}
	}
}

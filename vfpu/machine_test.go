package vfpu

import (
	"testing"

	"github.com/pspgo/vfpu/regfile"
)

func TestNewMachineStartsAtPrefixIdentity(t *testing.T) {
	vm := New()
	if vm.Prefix.S.Swizzle(0) != 0 || vm.Prefix.S.Swizzle(3) != 3 {
		t.Error("fresh machine should have identity S prefix")
	}
}

func TestEatPrefixesResetsAfterArithmetic(t *testing.T) {
	vm := New()
	vm.Prefix.LoadS(0x00) // all lanes swizzle to x
	vm.Regs.WriteVector([]float32{1, 2, 3, 4}, regfile.Quad, 0)
	vm.VV2Op(Vmov, regfile.Quad, 4, 0)
	if vm.Prefix.S.Swizzle(1) != 1 {
		t.Error("VV2Op should eat the S prefix afterward")
	}
}

func TestVPFXDoesNotEatItsOwnLoad(t *testing.T) {
	vm := New()
	vm.VPFX(SlotS, 0x00)
	if vm.Prefix.S.Swizzle(1) != 0 {
		t.Error("VPFX must leave the prefix it just loaded in place")
	}
}

func TestVAddBasic(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{1, 2, 3, 4}, regfile.Quad, 0)
	vm.Regs.WriteVector([]float32{10, 20, 30, 40}, regfile.Quad, 4)
	vm.VecDo3(Vadd, regfile.Quad, 8, 0, 4)
	got := make([]float32, 4)
	vm.Regs.ReadVector(got, regfile.Quad, 8)
	want := []float32{11, 22, 33, 44}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("lane %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestVDivOnlyLastLaneSwizzled(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{8, 8}, regfile.Pair, 0)
	vm.Regs.WriteVector([]float32{2, 4}, regfile.Pair, 4)
	// Swizzle S so every lane reads lane 0 (x); only the last lane should
	// actually be affected by this for vdiv.
	vm.Prefix.LoadS(0x00)
	vm.VecDo3(Vdiv, regfile.Pair, 8, 0, 4)
	got := make([]float32, 2)
	vm.Regs.ReadVector(got, regfile.Pair, 8)
	if got[0] != 8.0/2.0 {
		t.Errorf("lane 0 should use its own unswizzled operand: got %v, want 4", got[0])
	}
	if got[1] != 8.0/4.0 {
		t.Errorf("lane 1 should use the swizzled (lane-0) operand: got %v, want 2", got[1])
	}
}

func TestVDivSkipsDPrefixSaturation(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{-10}, regfile.Single, 0)
	vm.Regs.WriteVector([]float32{1}, regfile.Single, 4)
	vm.Prefix.LoadD(uint32(1)) // SatZeroOne, would clamp -10 to 0 if applied
	vm.VecDo3(Vdiv, regfile.Single, 8, 0, 4)
	got := vm.Regs.ReadScalar(8)
	if got != -10 {
		t.Errorf("vdiv should skip the D prefix entirely: got %v, want -10", got)
	}
}

func TestVMmulIdentity(t *testing.T) {
	vm := New()
	vm.VMidt(regfile.M4x4, 0)
	src := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	vm.Regs.WriteMatrix(src, regfile.M4x4, 4)
	vm.VMmul(regfile.M4x4, 8, 0, 4)
	got := make([]float32, 16)
	vm.Regs.ReadMatrix(got, regfile.M4x4, 8)
	for i := range got {
		if got[i] != src[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], src[i])
		}
	}
}

func TestVRotIdentityProducesSinCosInSelectedLanes(t *testing.T) {
	vm := New()
	vm.Regs.WriteScalar(0, 1) // angle = 1 unit = pi/2
	// sineLane=1, cosineLane=0, no negate: imm5 = 0b00_01_00 = 4
	vm.VRot(regfile.Quad, 4, 0, 4)
	got := make([]float32, 4)
	vm.Regs.ReadVector(got, regfile.Quad, 4)
	if abs32(got[0]-0) > 1e-5 {
		t.Errorf("cosine lane = %v, want ~0", got[0])
	}
	if abs32(got[1]-1) > 1e-5 {
		t.Errorf("sine lane = %v, want ~1", got[1])
	}
	if got[2] != 0 || got[3] != 0 {
		t.Error("unselected lanes should be zero")
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

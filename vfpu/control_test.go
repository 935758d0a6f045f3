package vfpu

import (
	"testing"

	"github.com/pspgo/vfpu/vfpuctrl"
)

func TestMfvMtvRoundTrip(t *testing.T) {
	vm := New()
	vm.Mtv(0, 0x3F800000) // 1.0f bit pattern
	var captured uint32
	vm.Mfv(0, func(v uint32) { captured = v })
	if captured != 0x3F800000 {
		t.Errorf("Mfv captured %#x, want 0x3f800000", captured)
	}
}

func TestVMtvcRejectsRNGState(t *testing.T) {
	vm := New()
	vm.VMtvc(vfpuctrl.RNGState, 77)
	if vm.Ctrl.Get(vfpuctrl.RNGState) != 0 {
		t.Error("mtvc should not be able to write RNGState")
	}
}

func TestVMfvcReadsControlRegister(t *testing.T) {
	vm := New()
	vm.Ctrl.Set(vfpuctrl.CC, 0x15)
	var captured uint32
	vm.VMfvc(vfpuctrl.CC, func(v uint32) { captured = v })
	if captured != 0x15 {
		t.Errorf("VMfvc captured %#x, want 0x15", captured)
	}
}

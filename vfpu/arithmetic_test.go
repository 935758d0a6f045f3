package vfpu

import (
	"math"
	"testing"

	"github.com/pspgo/vfpu/regfile"
)

func TestVOcpOnesComplement(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{0.25, 1, -1}, regfile.Triple, 0)
	vm.VOcp(regfile.Triple, 4, 0)
	got := make([]float32, 3)
	vm.Regs.ReadVector(got, regfile.Triple, 4)
	want := []float32{0.75, 0, 2}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("lane %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestVOcpNaNProducesAbs(t *testing.T) {
	vm := New()
	nan := float32(math.NaN())
	vm.Regs.WriteVector([]float32{nan}, regfile.Single, 0)
	vm.VOcp(regfile.Single, 4, 0)
	got := vm.Regs.ReadScalar(4)
	if got == got {
		t.Error("VOcp(NaN) should still be NaN (abs of NaN)")
	}
}

func TestVSocpDoublesWidthAndClamps(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{0.25, 2}, regfile.Pair, 0)
	vm.VSocp(regfile.Pair, 4, 0)
	got := make([]float32, 4)
	vm.Regs.ReadVector(got, regfile.Quad, 4)
	want := []float32{0.75, 0.25, 0, 1}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("lane %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestVSgnSignOfSource(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{5, -5, 0}, regfile.Triple, 0)
	vm.VSgn(regfile.Triple, 4, 0)
	got := make([]float32, 3)
	vm.Regs.ReadVector(got, regfile.Triple, 4)
	want := []float32{1, -1, 0}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("lane %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCrossQuatTripleCrossProduct(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{1, 0, 0}, regfile.Triple, 0)
	vm.Regs.WriteVector([]float32{0, 1, 0}, regfile.Triple, 4)
	vm.CrossQuat(regfile.Triple, 8, 0, 4)
	got := make([]float32, 3)
	vm.Regs.ReadVector(got, regfile.Triple, 8)
	want := []float32{0, 0, 1}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("x cross y = %v, want %v", got, want)
		}
	}
}

func TestVDetPairDeterminant(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{1, 2}, regfile.Pair, 0)
	vm.Regs.WriteVector([]float32{3, 4}, regfile.Pair, 4)
	vm.VDet(8, 0, 4)
	got := vm.Regs.ReadScalar(8)
	if got != 1*4-2*3 {
		t.Errorf("VDet = %v, want -2", got)
	}
}

func TestVSrt1PairwiseMinMax(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{5, 1, 8, 2}, regfile.Quad, 0)
	vm.VSrt1(4, 0)
	got := make([]float32, 4)
	vm.Regs.ReadVector(got, regfile.Quad, 4)
	want := []float32{1, 5, 2, 8}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("lane %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestVBfy1NegatesOddLanes(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{1, 2, 3, 4}, regfile.Quad, 0)
	vm.Regs.WriteVector([]float32{10, 20, 30, 40}, regfile.Quad, 4)
	vm.VBfy1(regfile.Quad, 8, 0, 4)
	got := make([]float32, 4)
	vm.Regs.ReadVector(got, regfile.Quad, 8)
	// lane0: s0+t1 = 1+20=21; lane1: -s1+t0 = -2+10=8
	// lane2: s2+t3 = 3+40=43; lane3: -s3+t2 = -4+30=26
	want := []float32{21, 8, 43, 26}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("lane %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestVFadSumsLanes(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{1, 2, 3, 4}, regfile.Quad, 0)
	vm.VFad(regfile.Quad, 4, 0)
	if got := vm.Regs.ReadScalar(4); got != 10 {
		t.Errorf("VFad = %v, want 10", got)
	}
}

func TestVAvgAveragesLanes(t *testing.T) {
	vm := New()
	vm.Regs.WriteVector([]float32{2, 4, 6, 8}, regfile.Quad, 0)
	vm.VAvg(regfile.Quad, 4, 0)
	if got := vm.Regs.ReadScalar(4); got != 5 {
		t.Errorf("VAvg = %v, want 5", got)
	}
}

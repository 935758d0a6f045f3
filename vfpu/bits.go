package vfpu

import (
	"math"

	"github.com/pspgo/vfpu/regfile"
)

// VLgb implements vlgb, Single-only: extracts s's unbiased exponent as a
// float. An exponent field of all-ones (NaN/Inf) passes its raw bit
// pattern through unchanged; an exponent field of zero (denormal or zero)
// produces negative infinity, matching log2(0).
func (vm *Machine) VLgb(vd, vs int) {
	raw := vm.Regs.ReadScalarU32(vs)
	exp := (raw >> 23) & 0xFF
	var result float32
	switch exp {
	case 0xFF:
		result = math.Float32frombits(raw)
	case 0:
		result = float32(math.Inf(-1))
	default:
		result = float32(int32(exp) - 127)
	}
	vm.writeDestination(regfile.Single, vd, []float32{result})
	vm.eatPrefixes()
}

// VWbn implements vwbn, Single-only: renormalizes s to a target exponent
// given by imm, shifting the mantissa (with its implicit leading 1 folded
// in) left or right by the exponent difference, matching the reference's
// manual mantissa-shift renormalization rather than relying on float
// arithmetic to do it.
func (vm *Machine) VWbn(vd, vs int, imm int) {
	raw := vm.Regs.ReadScalarU32(vs)
	sign := raw & 0x80000000
	exp := int32((raw >> 23) & 0xFF)
	mant := raw & 0x7FFFFF

	if exp == 0xFF || exp == 0 {
		vm.writeDestination(regfile.Single, vd, []float32{math.Float32frombits(raw)})
		vm.eatPrefixes()
		return
	}

	full := mant | 0x800000
	if int32(imm) >= exp {
		full >>= uint((int32(imm) - exp) & 0xF)
	} else {
		full <<= uint((exp - int32(imm)) & 0xF)
	}

	result := sign | (uint32(imm)&0xFF)<<23 | (full & 0x7FFFFF)
	vm.writeDestination(regfile.Single, vd, []float32{math.Float32frombits(result)})
	vm.eatPrefixes()
}

// VSbn implements vsbn, Single-only: replaces s's exponent field outright
// with t's integer value, leaving mantissa and sign untouched. NaN,
// infinity, and denormal operands pass through unchanged.
func (vm *Machine) VSbn(vd, vs, vt int) {
	raw := vm.Regs.ReadScalarU32(vs)
	exp := (raw >> 23) & 0xFF
	if exp == 0xFF || exp == 0 {
		vm.writeDestination(regfile.Single, vd, []float32{math.Float32frombits(raw)})
		vm.eatPrefixes()
		return
	}
	newExp := vm.Regs.ReadScalarU32(vt) & 0xFF
	result := (raw &^ 0x7F800000) | (newExp << 23)
	vm.writeDestination(regfile.Single, vd, []float32{math.Float32frombits(result)})
	vm.eatPrefixes()
}

// VSbz implements vsbz, Single-only: forces s's exponent to the unbiased-0
// value (127), leaving mantissa and sign untouched. NaN, infinity, and
// denormal operands pass through unchanged.
func (vm *Machine) VSbz(vd, vs int) {
	raw := vm.Regs.ReadScalarU32(vs)
	exp := (raw >> 23) & 0xFF
	if exp == 0xFF || exp == 0 {
		vm.writeDestination(regfile.Single, vd, []float32{math.Float32frombits(raw)})
		vm.eatPrefixes()
		return
	}
	result := (raw &^ 0x7F800000) | (127 << 23)
	vm.writeDestination(regfile.Single, vd, []float32{math.Float32frombits(result)})
	vm.eatPrefixes()
}

// VRnds implements vrnds: reseeds the RNG source from vd's own current
// contents, read as a Single through the S prefix and taken as an integer
// bit pattern (vd plays source and destination at once, as the reference
// does).
func (vm *Machine) VRnds(vd int) {
	s := make([]float32, 1)
	vm.readSwizzled(vm.Prefix.S, regfile.Single, vd, s)
	seed := math.Float32bits(s[0])
	vm.RNG.Seed(seed)
	vm.eatPrefixes()
}

// VRndI implements vrndi: draws n lanes of raw random bits. As in
// rndFloat, only the last lane takes the D prefix, using lane 0's
// saturation (applied to the bits read as a float) and mask bits.
func (vm *Machine) VRndI(sz regfile.VectorSize, vd int) {
	n := sz.NumElements()
	dst := make([]uint32, n)
	for i := range dst {
		dst[i] = vm.RNG.Uint32()
	}
	last := []float32{math.Float32frombits(dst[n-1])}
	vm.Prefix.D.Apply(last, 1)
	dst[n-1] = math.Float32bits(last[0])
	mask := make([]bool, n)
	mask[n-1] = vm.Prefix.D.Masked(0)
	vm.Regs.WriteVectorU32Masked(dst, sz, vd, mask)
	vm.eatPrefixes()
}

// VRndF1 implements vrndf1: draws n lanes of random floats uniform on
// [0, 1).
func (vm *Machine) VRndF1(sz regfile.VectorSize, vd int) {
	vm.rndFloat(sz, vd, 0, 1)
}

// VRndF2 implements vrndf2: draws n lanes of random floats uniform on
// [-1, 1).
func (vm *Machine) VRndF2(sz regfile.VectorSize, vd int) {
	vm.rndFloat(sz, vd, -1, 1)
}

// rndFloat draws n uniform floats in [lo, hi) and writes them through the
// D prefix exactly as vmmul's destination matrix does: lane 0's saturation
// and write-mask bits apply only to the last lane, the rest always write
// through.
func (vm *Machine) rndFloat(sz regfile.VectorSize, vd int, lo, hi float32) {
	n := sz.NumElements()
	dst := make([]float32, n)
	for i := range dst {
		u := float64(vm.RNG.Uint32()) / float64(1<<32)
		dst[i] = lo + float32(u)*(hi-lo)
	}
	if n > 0 {
		last := dst[n-1 : n]
		vm.Prefix.D.Apply(last, 1)
	}
	mask := make([]bool, n)
	if n > 0 {
		mask[n-1] = vm.Prefix.D.Masked(0)
	}
	vm.Regs.WriteVectorMasked(dst, sz, vd, mask)
	vm.eatPrefixes()
}

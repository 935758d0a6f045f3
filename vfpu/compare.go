package vfpu

import (
	"math"

	"github.com/pspgo/vfpu/internal/fpmath"
	"github.com/pspgo/vfpu/prefix"
	"github.com/pspgo/vfpu/regfile"
)

// CmpCond identifies one of vcmp's 16 condition codes.
type CmpCond int

const (
	CmpFL CmpCond = iota // always false
	CmpEQ
	CmpLT
	CmpLE
	CmpTR // always true
	CmpNE
	CmpGE
	CmpGT
	CmpEZ // s == 0
	CmpEN // NaN
	CmpEI // Inf
	CmpES // s == 0 || NaN || Inf ("either")
	CmpNZ
	CmpNN
	CmpNI
	CmpNS
)

func cmpLane(cond CmpCond, s, t float32) bool {
	switch cond {
	case CmpFL:
		return false
	case CmpEQ:
		return s == t
	case CmpLT:
		return s < t
	case CmpLE:
		return s <= t
	case CmpTR:
		return true
	case CmpNE:
		return s != t
	case CmpGE:
		return s >= t
	case CmpGT:
		return s > t
	case CmpEZ:
		return s == 0
	case CmpEN:
		return fpmath.IsNaN(s)
	case CmpEI:
		return fpmath.IsInf(s)
	case CmpES:
		return s == 0 || fpmath.IsNaN(s) || fpmath.IsInf(s)
	case CmpNZ:
		return s != 0
	case CmpNN:
		return !fpmath.IsNaN(s)
	case CmpNI:
		return !fpmath.IsInf(s)
	case CmpNS:
		return !(s == 0 || fpmath.IsNaN(s) || fpmath.IsInf(s))
	default:
		return false
	}
}

// VCmp implements vcmp: evaluates cond lanewise over s and t, writing the
// per-lane results into condition-code bits 0..n-1, the AND-reduction into
// bit 4, and the OR-reduction into bit 5. Only those bits of CC are
// touched; the rest of the register is preserved.
func (vm *Machine) VCmp(cond CmpCond, sz regfile.VectorSize, vs, vt int) {
	n := sz.NumElements()
	s := make([]float32, n)
	t := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	vm.readSwizzled(vm.Prefix.T, sz, vt, t)

	var bits uint32
	and := true
	or := false
	for i := 0; i < n; i++ {
		r := cmpLane(cond, s[i], t[i])
		if r {
			bits |= 1 << uint(i)
			or = true
		} else {
			and = false
		}
	}
	if and {
		bits |= 1 << 4
	}
	if or {
		bits |= 1 << 5
	}
	mask := uint32(1<<uint(n)) - 1 | 1<<4 | 1<<5
	vm.Ctrl.SetCCMasked(mask, bits)
	vm.eatPrefixes()
}

// minMaxLane implements the shared vmin/vmax gate: when either operand is
// NaN or infinite, the result is chosen by comparing both operands' IEEE
// bit patterns as signed integers, inverted when both operands carry a
// negative sign bit (two's-complement ordering of IEEE bit patterns runs
// backwards for negative floats, and the sign bit survives in a NaN's
// pattern even though its value can't be compared directly). Finite
// operands compare as ordinary floats, no bit games involved.
func minMaxLane(s, t float32, wantMax bool) float32 {
	if fpmath.IsNaNOrInf(s) || fpmath.IsNaNOrInf(t) {
		sBits := math.Float32bits(s)
		tBits := math.Float32bits(t)
		bothNeg := sBits>>31 != 0 && tBits>>31 != 0
		less := int32(sBits) < int32(tBits)
		if bothNeg {
			less = !less
		}
		if wantMax {
			less = !less
		}
		if less {
			return s
		}
		return t
	}
	if wantMax {
		if s > t {
			return s
		}
		return t
	}
	if s < t {
		return s
	}
	return t
}

// VMin implements vmin.
func (vm *Machine) VMin(sz regfile.VectorSize, vd, vs, vt int) {
	vm.minMax(sz, vd, vs, vt, false)
}

// VMax implements vmax.
func (vm *Machine) VMax(sz regfile.VectorSize, vd, vs, vt int) {
	vm.minMax(sz, vd, vs, vt, true)
}

func (vm *Machine) minMax(sz regfile.VectorSize, vd, vs, vt int, wantMax bool) {
	n := sz.NumElements()
	s := make([]float32, n)
	t := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	vm.readSwizzled(vm.Prefix.T, sz, vt, t)
	dst := make([]float32, n)
	for i := 0; i < n; i++ {
		dst[i] = minMaxLane(s[i], t[i], wantMax)
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

// VScmp implements vscmp: signed magnitude comparison producing -1, 0, or
// 1 per lane. NaN lanes compare via the signed difference of their integer
// bit patterns rather than a floating subtraction (which would itself be
// NaN); non-NaN lanes compare by ordinary float sign. RetainInvalidSwizzle
// is checked against both source prefixes before the result is written,
// since an out-of-range swizzle into a -1/0/1 lane has no well-defined
// hardware behavior and is only logged rather than guessed at.
func (vm *Machine) VScmp(sz regfile.VectorSize, vd, vs, vt int) {
	n := sz.NumElements()
	s := make([]float32, n)
	t := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	vm.readSwizzled(vm.Prefix.T, sz, vt, t)
	dst := make([]float32, n)
	for i := 0; i < n; i++ {
		if fpmath.IsNaN(s[i]) || fpmath.IsNaN(t[i]) {
			sb := int64(int32(math.Float32bits(s[i])))
			tb := int64(int32(math.Float32bits(t[i])))
			switch {
			case sb < tb:
				dst[i] = -1
			case sb > tb:
				dst[i] = 1
			default:
				dst[i] = 0
			}
			continue
		}
		switch {
		case s[i] < t[i]:
			dst[i] = -1
		case s[i] > t[i]:
			dst[i] = 1
		default:
			dst[i] = 0
		}
	}
	if prefix.RetainInvalidSwizzle(vm.Prefix.S, n) || prefix.RetainInvalidSwizzle(vm.Prefix.T, n) {
		vm.Log.Warnf("vscmp: S or T prefix swizzles beyond the %d-lane operand size", n)
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

// VSge implements vsge: 1.0 where s >= t, else 0.0. NaN compares false in
// either direction (not NaN-propagating), matching the reference.
func (vm *Machine) VSge(sz regfile.VectorSize, vd, vs, vt int) {
	vm.sgeSlt(sz, vd, vs, vt, true)
}

// VSlt implements vslt: 1.0 where s < t, else 0.0.
func (vm *Machine) VSlt(sz regfile.VectorSize, vd, vs, vt int) {
	vm.sgeSlt(sz, vd, vs, vt, false)
}

func (vm *Machine) sgeSlt(sz regfile.VectorSize, vd, vs, vt int, ge bool) {
	n := sz.NumElements()
	s := make([]float32, n)
	t := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	vm.readSwizzled(vm.Prefix.T, sz, vt, t)
	dst := make([]float32, n)
	for i := 0; i < n; i++ {
		var r bool
		if ge {
			r = s[i] >= t[i]
		} else {
			r = s[i] < t[i]
		}
		if r {
			dst[i] = 1
		}
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

// VCmov implements vcmov: conditionally overwrites vd with t (the T
// prefix applied to vd's own current contents, as the reference reads
// "t" from the destination register itself rather than a separate
// operand), gated on condition-code bit imm3 (0-5: a single named CC bit)
// or, when imm3 == 6, on each lane's own per-lane CC bit independently.
func (vm *Machine) VCmov(sz regfile.VectorSize, vd int, imm3 int) {
	n := sz.NumElements()
	cur := make([]float32, n)
	vm.readSwizzled(vm.Prefix.T, sz, vd, cur)

	dst := make([]float32, n)
	vm.Regs.ReadVector(dst, sz, vd)

	if imm3 == 6 {
		for i := 0; i < n; i++ {
			if vm.Ctrl.CCBit(i) {
				dst[i] = cur[i]
			}
		}
	} else if vm.Ctrl.CCBit(imm3 & 0x7) {
		copy(dst, cur)
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

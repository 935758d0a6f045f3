package vfpu

import (
	"math"

	"github.com/pspgo/vfpu/internal/fpmath"
	"github.com/pspgo/vfpu/prefix"
	"github.com/pspgo/vfpu/regfile"
)

// RoundMode selects vf2i's rounding behavior.
type RoundMode int

const (
	RoundNearest RoundMode = iota
	RoundZero
	RoundCeil
	RoundFloor
)

func roundScaled(v float64, mode RoundMode) float64 {
	switch mode {
	case RoundZero:
		return math.Trunc(v)
	case RoundCeil:
		return math.Ceil(v)
	case RoundFloor:
		return math.Floor(v)
	default:
		return math.RoundToEven(v)
	}
}

// VF2I implements vf2i: converts each lane of s (scaled by 2^imm in double
// precision before rounding, as the reference does to stay exact across
// the full int32 range) to a 32-bit integer, written back as the integer's
// bit pattern. NaN maps to 0x7FFFFFFF; results are clamped to the int32
// range before truncation to match the reference's double-precision
// saturation check.
func (vm *Machine) VF2I(sz regfile.VectorSize, vd, vs int, imm int, mode RoundMode) {
	n := sz.NumElements()
	s := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	dst := make([]uint32, n)
	scale := math.Exp2(float64(imm))
	for i := 0; i < n; i++ {
		if fpmath.IsNaN(s[i]) {
			dst[i] = 0x7FFFFFFF
			continue
		}
		scaled := float64(s[i]) * scale
		scaled = roundScaled(scaled, mode)
		switch {
		case scaled >= math.MaxInt32:
			dst[i] = 0x7FFFFFFF
		case scaled <= math.MinInt32:
			dst[i] = 0x80000000
		default:
			dst[i] = uint32(int32(scaled))
		}
	}
	vm.Regs.WriteVectorU32(dst, sz, vd)
	vm.eatPrefixes()
}

// VI2F implements vi2f: converts each lane's integer bit pattern to a
// float32, scaled by 2^-imm.
func (vm *Machine) VI2F(sz regfile.VectorSize, vd, vs int, imm int) {
	n := sz.NumElements()
	raw := make([]uint32, n)
	vm.Regs.ReadVectorU32(raw, sz, vs)
	dst := make([]float32, n)
	scale := math.Exp2(-float64(imm))
	for i := 0; i < n; i++ {
		dst[i] = float32(float64(int32(raw[i])) * scale)
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

// halfExpand/halfShrink wrap fpmath's half-float conversion for readability
// at call sites.
func halfExpand(h uint16) float32  { return fpmath.ExpandHalf(h) }
func halfShrink(f float32) uint16 { return fpmath.ShrinkToHalf(f) }

// VH2F implements vh2f: expands packed 16-bit half floats to full float32
// lanes (Single->Pair; Pair, Triple or Quad->Quad per the reference, the
// larger inputs expanding only their first two words).
func (vm *Machine) VH2F(inSz regfile.VectorSize, vd, vs int) {
	nIn := inSz.NumElements()
	raw := make([]uint32, nIn)
	vm.Regs.ReadVectorU32(raw, inSz, vs)

	outSz := regfile.Quad
	if inSz == regfile.Single {
		outSz = regfile.Pair
	}
	dst := make([]float32, outSz.NumElements())
	for i := 0; i < len(dst)/2; i++ {
		lo := uint16(raw[i])
		hi := uint16(raw[i] >> 16)
		dst[2*i] = halfExpand(lo)
		dst[2*i+1] = halfExpand(hi)
	}
	vm.Regs.WriteVector(dst, outSz, vd)
	vm.eatPrefixes()
}

// VF2H implements vf2h: packs float32 lanes down to 16-bit halves, two per
// output word, halving the lane count (Single/Pair -> Single, Triple/Quad
// -> Pair). vs's four physical slots exist regardless of inSz, so the S
// prefix is read and applied at full Quad width before truncating to the
// instruction's actual input size - a swizzle lane that targets a slot
// beyond inSz still resolves against real register contents instead of
// falling back to source lane 0 purely because inSz was smaller.
// RetainInvalidSwizzle flags that case for a diagnostic since real
// firmware behavior there is otherwise unverified.
func (vm *Machine) VF2H(inSz regfile.VectorSize, vd, vs int) {
	nIn := inSz.NumElements()
	var raw4 [4]float32
	full := make([]float32, 4)
	vm.Regs.ReadVector(full, regfile.Quad, vs)
	copy(raw4[:], full)
	quad := make([]float32, 4)
	vm.Prefix.S.Apply(raw4, 4, quad, nil)
	s := quad[:nIn]
	if prefix.RetainInvalidSwizzle(vm.Prefix.S, nIn) {
		vm.Log.Warnf("vf2h: S prefix swizzles beyond the %d-lane input size", nIn)
	}

	var outSz regfile.VectorSize
	switch inSz {
	case regfile.Single, regfile.Pair:
		outSz = regfile.Single
	default:
		outSz = regfile.Pair
	}

	dst := make([]uint32, outSz.NumElements())
	for i := 0; i < outSz.NumElements(); i++ {
		lo := halfShrink(s[2*i])
		var hi uint16
		if 2*i+1 < nIn {
			hi = halfShrink(s[2*i+1])
		}
		dst[i] = uint32(lo) | uint32(hi)<<16
	}
	vm.Regs.WriteVectorU32(dst, outSz, vd)
	vm.eatPrefixes()
}

// VUc2I implements vuc2i: expands each of 4 packed unsigned bytes in s[0]
// to a Quad of integers, each byte replicated into all four bytes of its lane
// then shifted right by 1 (matching the reference's (byte*0x01010101)>>1).
func (vm *Machine) VUc2I(vd, vs int) {
	raw := vm.Regs.ReadScalarU32(vs)
	dst := make([]uint32, 4)
	for i := 0; i < 4; i++ {
		b := (raw >> uint(i*8)) & 0xFF
		dst[i] = (b * 0x01010101) >> 1
	}
	vm.Regs.WriteVectorU32(dst, regfile.Quad, vd)
	vm.eatPrefixes()
}

// VC2I implements vc2i: expands each of 4 packed signed bytes in s[0] to a
// Quad of integers, placing the byte (sign-extended via the shift) at the
// top of each lane.
func (vm *Machine) VC2I(vd, vs int) {
	raw := vm.Regs.ReadScalarU32(vs)
	dst := make([]uint32, 4)
	for i := 0; i < 4; i++ {
		b := (raw >> uint(i*8)) & 0xFF
		dst[i] = b << 24
	}
	vm.Regs.WriteVectorU32(dst, regfile.Quad, vd)
	vm.eatPrefixes()
}

// VUs2I implements vus2i: expands the 2 packed unsigned 16-bit halves of
// s[0] into a Pair of integers. The low half is simply shifted left 15 (as
// the reference does); the high half is shifted left 15 by way of a right
// shift of 1 on the pre-shifted-by-16 value - the same asymmetry the
// reference itself exhibits and preserves rather than normalizes.
func (vm *Machine) VUs2I(vd, vs int) {
	raw := vm.Regs.ReadScalarU32(vs)
	lo := raw & 0xFFFF
	hi := (raw >> 16) & 0xFFFF
	dst := []uint32{lo << 15, (hi << 16) >> 1}
	vm.Regs.WriteVectorU32(dst, regfile.Pair, vd)
	vm.eatPrefixes()
}

// VS2I implements vs2i: expands the 2 packed signed 16-bit halves of s[0]
// into a Pair of integers, each shifted left 16 into its lane's top bits.
func (vm *Machine) VS2I(vd, vs int) {
	raw := vm.Regs.ReadScalarU32(vs)
	lo := raw & 0xFFFF
	hi := (raw >> 16) & 0xFFFF
	dst := []uint32{lo << 16, hi << 16}
	vm.Regs.WriteVectorU32(dst, regfile.Pair, vd)
	vm.eatPrefixes()
}

// VI2Uc implements vi2uc: packs 4 integer lanes down to 4 unsigned bytes,
// each taken from its lane's top byte (arithmetic shift right 23, then
// masked).
func (vm *Machine) VI2Uc(vd, vs int) {
	raw := make([]uint32, 4)
	vm.Regs.ReadVectorU32(raw, regfile.Quad, vs)
	var packed uint32
	for i := 0; i < 4; i++ {
		b := (raw[i] >> 23) & 0xFF
		packed |= b << uint(i*8)
	}
	vm.Regs.WriteScalarU32(vd, packed)
	vm.eatPrefixes()
}

// VI2C implements vi2c: packs 4 integer lanes down to 4 signed bytes, each
// taken from its lane's top byte (shift right 24).
func (vm *Machine) VI2C(vd, vs int) {
	raw := make([]uint32, 4)
	vm.Regs.ReadVectorU32(raw, regfile.Quad, vs)
	var packed uint32
	for i := 0; i < 4; i++ {
		b := (raw[i] >> 24) & 0xFF
		packed |= b << uint(i*8)
	}
	vm.Regs.WriteScalarU32(vd, packed)
	vm.eatPrefixes()
}

// VI2Us implements vi2us: packs 2 integer lanes down to 2 unsigned 16-bit
// halves (shift right 15), clamping negative source lanes to 0 rather than
// wrapping.
func (vm *Machine) VI2Us(vd, vs int) {
	raw := make([]uint32, 2)
	vm.Regs.ReadVectorU32(raw, regfile.Pair, vs)
	var packed uint32
	for i := 0; i < 2; i++ {
		v := int32(raw[i])
		var h uint32
		if v < 0 {
			h = 0
		} else {
			h = (uint32(v) >> 15) & 0xFFFF
		}
		packed |= h << uint(i*16)
	}
	vm.Regs.WriteScalarU32(vd, packed)
	vm.eatPrefixes()
}

// VI2S implements vi2s: packs 2 integer lanes down to 2 signed 16-bit
// halves via arithmetic shift right 16.
func (vm *Machine) VI2S(vd, vs int) {
	raw := make([]uint32, 2)
	vm.Regs.ReadVectorU32(raw, regfile.Pair, vs)
	var packed uint32
	for i := 0; i < 2; i++ {
		v := int32(raw[i]) >> 16
		packed |= (uint32(v) & 0xFFFF) << uint(i*16)
	}
	vm.Regs.WriteScalarU32(vd, packed)
	vm.eatPrefixes()
}

// ColorMode selects vc2i/vi2uc-style packed color formats for VColor.
type ColorMode int

const (
	Color4444 ColorMode = iota
	Color5551
	Color565
)

// VColor implements the 4444/5551/565 packed color conversions: packs the
// leading lanes of a Quad (or Triple for 565) into one 16-bit color word,
// red in the low bits and alpha (where present) in the high bit(s) -
// matching the reference's channel order.
func (vm *Machine) VColor(mode ColorMode, vd, vs int) {
	n := 4
	if mode == Color565 {
		n = 3
	}
	raw := make([]float32, n)
	vm.Regs.ReadVector(raw, regfile.VectorSize(n-1), vs)

	clamp8 := func(v float32) uint32 {
		c := fpmath.Clamp(v, 0, 1)
		return uint32(c*255 + 0.5)
	}

	var packed uint32
	switch mode {
	case Color4444:
		r := clamp8(raw[0]) >> 4
		g := clamp8(raw[1]) >> 4
		b := clamp8(raw[2]) >> 4
		a := clamp8(raw[3]) >> 4
		packed = r | g<<4 | b<<8 | a<<12
	case Color5551:
		r := clamp8(raw[0]) >> 3
		g := clamp8(raw[1]) >> 3
		b := clamp8(raw[2]) >> 3
		var a uint32
		if raw[3] >= 0.5 {
			a = 1
		}
		packed = r | g<<5 | b<<10 | a<<15
	case Color565:
		r := clamp8(raw[0]) >> 3
		g := clamp8(raw[1]) >> 2
		b := clamp8(raw[2]) >> 3
		packed = r | g<<5 | b<<11
	}
	vm.Regs.WriteScalarU32(vd, packed)
	vm.eatPrefixes()
}

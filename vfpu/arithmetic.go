package vfpu

import (
	"math"

	"github.com/pspgo/vfpu/internal/fpmath"
	"github.com/pspgo/vfpu/prefix"
	"github.com/pspgo/vfpu/regfile"
)

// vv2op identifies one of the single-operand kernels dispatched through
// VV2Op (vmov, vabs, vneg, vsat0, vsat1, vrcp, vrsq, vsin, vcos, vexp2,
// vlog2, vsqrt, vasin, vnrcp, vnsin, vrexp2).
type VV2Op int

const (
	Vmov VV2Op = iota
	Vabs
	Vneg
	Vsat0
	Vsat1
	Vrcp
	Vrsq
	Vsin
	Vcos
	Vexp2
	Vlog2
	Vsqrt
	Vasin
	Vnrcp
	Vnsin
	Vrexp2
)

func vv2opLane(op VV2Op, v float32) float32 {
	switch op {
	case Vmov:
		return v
	case Vabs:
		return float32(math.Abs(float64(v)))
	case Vneg:
		return -v
	case Vsat0:
		return fpmath.Clamp(v, 0, 1)
	case Vsat1:
		return fpmath.Clamp(v, -1, 1)
	case Vrcp:
		return float32(1.0 / float64(v))
	case Vrsq:
		return float32(1.0 / math.Sqrt(float64(v)))
	case Vsin:
		return fpmath.Sin(v)
	case Vcos:
		return fpmath.Cos(v)
	case Vexp2:
		return float32(math.Exp2(float64(v)))
	case Vlog2:
		return float32(math.Log2(float64(v)))
	case Vsqrt:
		return float32(math.Sqrt(float64(v)))
	case Vasin:
		// PSP angle convention: result in units of pi/2.
		return float32(math.Asin(float64(v)) / (math.Pi / 2))
	case Vnrcp:
		return float32(-1.0 / float64(v))
	case Vnsin:
		return -fpmath.Sin(v)
	case Vrexp2:
		return float32(math.Exp2(-float64(v)))
	default:
		return v
	}
}

// VV2Op implements the vmov/vabs/vneg/... family: an elementwise unary
// kernel applied independently to each lane of an n-lane vector, with the
// normal S/T prefix on the source and D prefix on the destination.
func (vm *Machine) VV2Op(op VV2Op, sz regfile.VectorSize, vd, vs int) {
	n := sz.NumElements()
	src := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, src)
	dst := make([]float32, n)
	for i := 0; i < n; i++ {
		dst[i] = vv2opLane(op, src[i])
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

// VecDo3Op identifies vadd/vsub/vmul/vdiv.
type VecDo3Op int

const (
	Vadd VecDo3Op = iota
	Vsub
	Vmul
	Vdiv
)

// VecDo3 implements vadd/vsub/vmul/vdiv. vdiv is the odd one out: only its
// last lane honors the S/T prefix (ApplySwizzleS on s[n-1]/t[n-1] alone in
// the reference), and the D prefix is skipped entirely for division.
func (vm *Machine) VecDo3(op VecDo3Op, sz regfile.VectorSize, vd, vs, vt int) {
	n := sz.NumElements()

	if op == Vdiv {
		s := make([]float32, n)
		t := make([]float32, n)
		vm.Regs.ReadVector(s, sz, vs)
		vm.Regs.ReadVector(t, sz, vt)
		// Only the last lane is swizzled/abs/negated; the rest pass through
		// their raw register contents untouched.
		var raw4 [4]float32
		raw4[0] = s[n-1]
		sLast := make([]float32, 1)
		vm.Prefix.S.Apply(raw4, 1, sLast, nil)
		s[n-1] = sLast[0]
		raw4[0] = t[n-1]
		tLast := make([]float32, 1)
		vm.Prefix.T.Apply(raw4, 1, tLast, nil)
		t[n-1] = tLast[0]

		dst := make([]float32, n)
		for i := 0; i < n; i++ {
			dst[i] = s[i] / t[i]
		}
		// D prefix does not apply to vdiv at all; write through unmasked.
		vm.Regs.WriteVector(dst, sz, vd)
		vm.eatPrefixes()
		return
	}

	s := make([]float32, n)
	t := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	vm.readSwizzled(vm.Prefix.T, sz, vt, t)
	dst := make([]float32, n)
	for i := 0; i < n; i++ {
		switch op {
		case Vadd:
			dst[i] = s[i] + t[i]
		case Vsub:
			dst[i] = s[i] - t[i]
		case Vmul:
			dst[i] = s[i] * t[i]
		}
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

// VDot implements vdot: the sum of the elementwise product of s and t,
// written to a Single-sized destination.
func (vm *Machine) VDot(sz regfile.VectorSize, vd, vs, vt int) {
	n := sz.NumElements()
	s := make([]float32, n)
	t := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	vm.readSwizzled(vm.Prefix.T, sz, vt, t)
	var sum float32
	for i := 0; i < n; i++ {
		sum += s[i] * t[i]
	}
	dst := []float32{sum}
	vm.writeDestination(regfile.Single, vd, dst)
	vm.eatPrefixes()
}

// VScl implements vscl: multiplies each lane of s by a single scalar drawn
// from t. The T prefix is forced to swizzle every lane to t's "z" lane
// (zzzz), matching the reference's hardcoded VFPU_SWIZZLE-free broadcast.
func (vm *Machine) VScl(sz regfile.VectorSize, vd, vs, vt int) {
	n := sz.NumElements()
	s := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	t := make([]float32, 4)
	vm.Regs.ReadVector(t, regfile.Quad, vt)
	scalar := t[2] // force zzzz: lane index 2
	dst := make([]float32, n)
	for i := 0; i < n; i++ {
		dst[i] = s[i] * scalar
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

// VFad implements vfad: sums all lanes of s into a Single destination.
func (vm *Machine) VFad(sz regfile.VectorSize, vd, vs int) {
	n := sz.NumElements()
	s := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	var sum float32
	for _, v := range s {
		sum += v
	}
	vm.writeDestination(regfile.Single, vd, []float32{sum})
	vm.eatPrefixes()
}

// VAvg implements vavg: averages all lanes of s into a Single destination.
func (vm *Machine) VAvg(sz regfile.VectorSize, vd, vs int) {
	n := sz.NumElements()
	s := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	var sum float32
	for _, v := range s {
		sum += v
	}
	vm.writeDestination(regfile.Single, vd, []float32{sum / float32(n)})
	vm.eatPrefixes()
}

// negateAllLanes is the S/T negate bit for all four lanes (bits 16-19).
const negateAllLanes = 0xF0000

// VOcp implements vocp: "one's complement", 1-s, where s is read through
// the caller's own S prefix with the negate bit forced on in every lane on
// top of whatever swizzle/abs the caller already set - it doesn't replace
// the caller's prefix, it ORs a negate onto it. NaN inputs produce abs(s)
// rather than propagating, per the reference's explicit NaN branch.
func (vm *Machine) VOcp(sz regfile.VectorSize, vd, vs int) {
	n := sz.NumElements()
	forcedS := prefix.NewST(vm.Prefix.S.Raw() | negateAllLanes)
	s := make([]float32, n)
	vm.readSwizzled(forcedS, sz, vs, s)
	dst := make([]float32, n)
	for i := 0; i < n; i++ {
		if fpmath.IsNaN(s[i]) {
			dst[i] = float32(math.Abs(float64(s[i])))
			continue
		}
		dst[i] = 1 + s[i]
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

// VSocp implements vsocp: a double-width "saturating one's complement"
// producing 2n lanes from n source lanes, pairing 1-v and v per source
// lane (in that order) and clamping both to [0, 1].
func (vm *Machine) VSocp(sz regfile.VectorSize, vd, vs int) {
	n := sz.NumElements()
	raw := make([]float32, n)
	vm.Regs.ReadVector(raw, sz, vs)
	outSz := regfile.DoubleVectorSize(sz)
	dst := make([]float32, outSz.NumElements())
	for i := 0; i < n; i++ {
		dst[2*i] = fpmath.Clamp(1-raw[i], 0, 1)
		dst[2*i+1] = fpmath.Clamp(raw[i], 0, 1)
	}
	vm.writeDestination(outSz, vd, dst)
	vm.eatPrefixes()
}

// VSgn implements vsgn: the sign of each lane of s as -1, 0 or +1, read
// from the integer bit pattern rather than a floating comparison, so that
// both +0 and -0 map to 0 and a NaN lane takes the sign of its sign bit.
// No second operand is read.
func (vm *Machine) VSgn(sz regfile.VectorSize, vd, vs int) {
	n := sz.NumElements()
	s := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	dst := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := math.Float32bits(s[i])
		switch {
		case bits&0x7FFFFFFF == 0:
			dst[i] = 0
		case bits>>31 == 0:
			dst[i] = 1
		default:
			dst[i] = -1
		}
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

// VBfy1 implements vbfy1, a "butterfly" stage on a Pair or Quad: S is
// forced to negate lanes 1 and 3, T is forced to swizzle yxwz.
func (vm *Machine) VBfy1(sz regfile.VectorSize, vd, vs, vt int) {
	vm.butterfly(sz, vd, vs, vt, []int{1, 0, 3, 2}, []bool{false, true, false, true})
}

// VBfy2 implements vbfy2: T swizzles zwxy, S negates lanes 2 and 3.
func (vm *Machine) VBfy2(sz regfile.VectorSize, vd, vs, vt int) {
	vm.butterfly(sz, vd, vs, vt, []int{2, 3, 0, 1}, []bool{false, false, true, true})
}

func (vm *Machine) butterfly(sz regfile.VectorSize, vd, vs, vt int, tSwizzle []int, sNegate []bool) {
	n := sz.NumElements()
	s := make([]float32, n)
	t := make([]float32, n)
	vm.Regs.ReadVector(s, sz, vs)
	vm.Regs.ReadVector(t, sz, vt)
	dst := make([]float32, n)
	for i := 0; i < n; i++ {
		sv := s[i]
		if sNegate[i] {
			sv = -sv
		}
		dst[i] = sv + t[tSwizzle[i]]
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

// CrossQuat implements vcrs (Triple: 3D cross product) and vqmul (Quad:
// quaternion multiply), dispatched on sz since the reference shares one
// kernel between the two, selecting its sign/lane pattern by vector size.
func (vm *Machine) CrossQuat(sz regfile.VectorSize, vd, vs, vt int) {
	n := sz.NumElements()
	s := make([]float32, n)
	t := make([]float32, n)
	vm.Regs.ReadVector(s, sz, vs)
	vm.Regs.ReadVector(t, sz, vt)
	dst := make([]float32, n)

	if sz == regfile.Triple {
		dst[0] = s[1]*t[2] - s[2]*t[1]
		dst[1] = s[2]*t[0] - s[0]*t[2]
		dst[2] = s[0]*t[1] - s[1]*t[0]
	} else {
		// Quaternion multiply, (x,y,z,w) layout.
		dst[0] = s[3]*t[0] + s[0]*t[3] + s[1]*t[2] - s[2]*t[1]
		dst[1] = s[3]*t[1] - s[0]*t[2] + s[1]*t[3] + s[2]*t[0]
		dst[2] = s[3]*t[2] + s[0]*t[1] - s[1]*t[0] + s[2]*t[3]
		dst[3] = s[3]*t[3] - s[0]*t[0] - s[1]*t[1] - s[2]*t[2]
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

// VDet implements vdet, restricted to Pair operands: s[0]*t[1] - s[1]*t[0].
// Only the S prefix behaves conventionally; the reference documents the T
// prefix as behaving "oddly" and leaves it unimplemented rather than
// guessing, so VDet applies S but reads t raw, matching that documented gap.
func (vm *Machine) VDet(vd, vs, vt int) {
	s := make([]float32, 2)
	vm.readSwizzled(vm.Prefix.S, regfile.Pair, vs, s)
	t := make([]float32, 2)
	vm.Regs.ReadVector(t, regfile.Pair, vt)
	result := s[0]*t[1] - s[1]*t[0]
	vm.writeDestination(regfile.Single, vd, []float32{result})
	vm.eatPrefixes()
}

// sortPair returns (min, max) of a, b.
func sortPair(a, b float32) (float32, float32) {
	if a < b {
		return a, b
	}
	return b, a
}

// VSrt1 implements vsrt1: (min(x,y), max(x,y), min(z,w), max(z,w)).
func (vm *Machine) VSrt1(vd, vs int) {
	s := make([]float32, 4)
	vm.Regs.ReadVector(s, regfile.Quad, vs)
	a, b := sortPair(s[0], s[1])
	c, d := sortPair(s[2], s[3])
	vm.writeDestination(regfile.Quad, vd, []float32{a, b, c, d})
	vm.eatPrefixes()
}

// VSrt2 implements vsrt2: (min(x,y), max(x,y), max(z,w), min(z,w)) - a
// "crossed" variant of vsrt1's pairing.
func (vm *Machine) VSrt2(vd, vs int) {
	s := make([]float32, 4)
	vm.Regs.ReadVector(s, regfile.Quad, vs)
	a, b := sortPair(s[0], s[1])
	c, d := sortPair(s[2], s[3])
	vm.writeDestination(regfile.Quad, vd, []float32{a, b, d, c})
	vm.eatPrefixes()
}

// VSrt3 implements vsrt3: (max(x,y), min(x,y), min(z,w), max(z,w)).
func (vm *Machine) VSrt3(vd, vs int) {
	s := make([]float32, 4)
	vm.Regs.ReadVector(s, regfile.Quad, vs)
	a, b := sortPair(s[0], s[1])
	c, d := sortPair(s[2], s[3])
	vm.writeDestination(regfile.Quad, vd, []float32{b, a, c, d})
	vm.eatPrefixes()
}

// VSrt4 implements vsrt4: (max(x,y), min(x,y), max(z,w), min(z,w)).
func (vm *Machine) VSrt4(vd, vs int) {
	s := make([]float32, 4)
	vm.Regs.ReadVector(s, regfile.Quad, vs)
	a, b := sortPair(s[0], s[1])
	c, d := sortPair(s[2], s[3])
	vm.writeDestination(regfile.Quad, vd, []float32{b, a, d, c})
	vm.eatPrefixes()
}

// VRot implements vrot: builds an n-lane result where two lanes (selected
// by imm5's sineLane/cosineLane fields) are populated with sin(s) and
// cos(s) (or their negation, per imm5's negSin bit), and all other lanes
// are zero. s itself is read with the normal S prefix; if that prefix
// swizzles the sine term's source past the operand's lane count,
// RetainInvalidSwizzle flags it for a diagnostic; the angle is still taken
// from the prefixed value, where such a lane reads source lane 0.
func (vm *Machine) VRot(sz regfile.VectorSize, vd, vs int, imm5 int) {
	negSin := imm5&0x10 != 0
	sineLane := (imm5 >> 2) & 3
	cosineLane := imm5 & 3

	n := sz.NumElements()
	s := make([]float32, n)
	vm.readSwizzled(vm.Prefix.S, sz, vs, s)
	if prefix.RetainInvalidSwizzle(vm.Prefix.S, n) {
		vm.Log.Warnf("vrot: S prefix swizzles beyond the %d-lane operand size for the sine term", n)
	}
	angle := s[0]

	sin, cos := fpmath.SinCos(angle)
	if negSin {
		sin = -sin
	}

	dst := make([]float32, n)
	for i := 0; i < n; i++ {
		dst[i] = 0
	}
	if sineLane < n {
		dst[sineLane] = sin
	}
	if cosineLane < n {
		dst[cosineLane] = cos
	}
	vm.writeDestination(sz, vd, dst)
	vm.eatPrefixes()
}

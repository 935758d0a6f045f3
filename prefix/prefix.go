// Package prefix implements the VFPU's S/T/D prefix engine: the swizzle,
// absolute-value, negate, and constant-substitution bits that decorate a
// source register before arithmetic, and the per-lane saturation and write
// mask that decorate a destination register afterward.
//
// S and T prefixes pack four lane-descriptors into 20 bits:
//
//	nnnn cccc aaaa ssss ssss
//	|||| |||| |||| ++++-++++-- per-lane 2-bit swizzle select (4 lanes x 2 bits)
//	|||| |||| ++++------------ per-lane absolute-value flag
//	|||| ++++----------------- per-lane constant-substitution flag
//	++++----------------------- per-lane negate flag
//
// The D prefix packs four lanes into 12 bits: 2-bit saturation mode and a
// write-mask bit per lane.
//
//	mmmm ssss ssss
//	|||| ++++-++++-- per-lane 2-bit saturation mode
//	++++------------ per-lane write-mask (1 = suppress write)
//
// Identity is 0xE4 for S/T (swizzle xyzw, no abs/negate/const) and 0x0 for D
// (no saturation, no lanes masked). Every VFPU instruction except a prefix
// load itself resets S, T to 0xE4 and D to 0 once it has consumed them -
// "eating" the prefixes - so a prefix only ever decorates the single
// instruction immediately following it.
package prefix

import "log"

// IdentityST is the swizzle/abs/negate/const pass-through value: xyzw,
// no absolute value, no negate, no constant substitution.
const IdentityST uint32 = 0xE4

// IdentityD is the saturation/mask pass-through value: no saturation,
// no lane masked.
const IdentityD uint32 = 0x0

// SatMode is a per-lane D-prefix saturation mode.
type SatMode int

const (
	SatNone    SatMode = 0 // no clamp
	SatZeroOne SatMode = 1 // clamp to [0, 1]
	// SatMode 2 is reserved/unused by real firmware; treated as SatNone.
	SatMinusOneOne SatMode = 3 // clamp to [-1, 1]
)

// ST holds one decoded S or T prefix.
type ST struct {
	raw uint32
}

// NewST wraps a raw 20-bit (low bits significant) S/T prefix encoding.
func NewST(raw uint32) ST { return ST{raw: raw} }

// Raw returns the prefix's underlying bit encoding, for display/debugging.
func (p ST) Raw() uint32 { return p.raw }

// Swizzle returns the source lane (0-3) that output lane i reads from.
func (p ST) Swizzle(lane int) int {
	return int((p.raw >> uint(lane*2)) & 3)
}

// Abs reports whether output lane i takes the absolute value of its
// swizzled input before negate/const substitution.
func (p ST) Abs(lane int) bool {
	return p.raw&(1<<uint(8+lane)) != 0
}

// Negate reports whether output lane i negates its value as the final step.
func (p ST) Negate(lane int) bool {
	return p.raw&(1<<uint(16+lane)) != 0
}

// Const reports whether output lane i is replaced outright by a constant
// (selected by the swizzle and Abs bits of that same lane, with Negate
// applied on top - see Constant) rather than
// reading from the source register at all.
func (p ST) Const(lane int) bool {
	return p.raw&(1<<uint(12+lane)) != 0
}

// constTable mirrors the reference's cst_constants selection: when Const is
// set for a lane, the lane's swizzle bits and Abs flag together pick one of
// eight values (sel + abs<<2) in place of reading the source register at
// all. Negate still works on top of that pick - it isn't folded into the
// table, it's a sign flip applied after the constant is selected.
var constTable = [8]float32{0, 1, 2, 0.5, 3, 1.0 / 3.0, 0.25, 1.0 / 6.0}

// Constant returns the substitution value for a lane with Const set.
func (p ST) Constant(lane int) float32 {
	idx := p.Swizzle(lane)
	if p.Abs(lane) {
		idx += 4
	}
	v := constTable[idx]
	if p.Negate(lane) {
		v = -v
	}
	return v
}

// Apply transforms an n-lane source vector (src, already read out of the
// register cube in swizzle order 0..3) into the n-lane value arithmetic
// should actually see, applying swizzle, constant substitution, absolute
// value, and negate in that order. out may be length n (the instruction's
// vector size). A swizzle index at or past n is clamped to 0 (and logged
// when logger is non-nil), so that lane reads source lane 0 and still takes
// its abs and negate flags.
func (p ST) Apply(raw4 [4]float32, n int, out []float32, logger *log.Logger) {
	for lane := 0; lane < n; lane++ {
		if p.Const(lane) {
			out[lane] = p.Constant(lane)
			continue
		}
		idx := p.Swizzle(lane)
		if idx >= n {
			if logger != nil {
				logger.Printf("prefix: lane %d swizzles to out-of-range source lane %d for size %d, using lane 0", lane, idx, n)
			}
			idx = 0
		}
		v := raw4[idx]
		if p.Abs(lane) && v < 0 {
			v = -v
		}
		if p.Negate(lane) {
			v = -v
		}
		out[lane] = v
	}
}

// D holds one decoded D (destination) prefix.
type D struct {
	raw uint32
}

// NewD wraps a raw 12-bit D prefix encoding.
func NewD(raw uint32) D { return D{raw: raw} }

// Raw returns the prefix's underlying bit encoding, for display/debugging.
func (p D) Raw() uint32 { return p.raw }

// Sat returns the saturation mode for output lane i.
func (p D) Sat(lane int) SatMode {
	return SatMode((p.raw >> uint(lane*2)) & 3)
}

// Masked reports whether output lane i's write should be suppressed
// entirely, leaving the destination register slot untouched.
func (p D) Masked(lane int) bool {
	return p.raw&(1<<uint(8+lane)) != 0
}

// clampSat applies a single lane's saturation mode. NaN is left untouched,
// matching the reference nanclamp helper used by ApplyPrefixD.
func clampSat(v float32, mode SatMode) float32 {
	if v != v {
		return v
	}
	switch mode {
	case SatZeroOne:
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
	case SatMinusOneOne:
		if v < -1 {
			return -1
		}
		if v > 1 {
			return 1
		}
	}
	return v
}

// Apply saturates each of the n lanes of v in place per its D-prefix mode.
// It does not implement the write mask - that is a property of where the
// result is written, not of the value, and callers apply Mask when storing
// into the register cube (see regfile.File.WriteVectorMasked).
func (p D) Apply(v []float32, n int) {
	for lane := 0; lane < n; lane++ {
		v[lane] = clampSat(v[lane], p.Sat(lane))
	}
}

// Mask returns the write-suppression mask for the first n lanes, suitable
// for regfile.File.WriteVectorMasked.
func (p D) Mask(n int) []bool {
	m := make([]bool, n)
	for lane := 0; lane < n; lane++ {
		m[lane] = p.Masked(lane)
	}
	return m
}

// Engine holds the pending S, T, D prefixes a VPFX instruction has loaded,
// consumed by the next non-prefix-load instruction and then reset to
// identity - the "eat prefixes" step every VFPU opcode performs in its
// epilogue except VPFX itself and vflush (op&0xFFFF0000==0xFFFF0000), which
// the reference explicitly documents as leaving prefixes untouched.
type Engine struct {
	S, T ST
	D    D
}

// NewEngine returns an Engine at identity.
func NewEngine() *Engine {
	return &Engine{S: NewST(IdentityST), T: NewST(IdentityST), D: NewD(IdentityD)}
}

// LoadS sets the pending S prefix from a VPFX encoding.
func (e *Engine) LoadS(raw uint32) { e.S = NewST(raw) }

// LoadT sets the pending T prefix from a VPFX encoding.
func (e *Engine) LoadT(raw uint32) { e.T = NewST(raw) }

// LoadD sets the pending D prefix from a VPFX encoding.
func (e *Engine) LoadD(raw uint32) { e.D = NewD(raw) }

// Eat resets S, T to identity swizzle and D to identity saturation/mask, as
// every instruction does once it has read whatever prefixes were pending.
func (e *Engine) Eat() {
	e.S = NewST(IdentityST)
	e.T = NewST(IdentityST)
	e.D = NewD(IdentityD)
}

// RetainInvalidSwizzle reports whether an S/T prefix, combined with an
// operand size, references an out-of-range swizzle lane anywhere in its
// active lanes (lanes 0..n-1 that are not constant-substituted). VF2H,
// VScmp and VRot call it only to log a diagnostic; it changes no value.
func RetainInvalidSwizzle(p ST, n int) bool {
	for lane := 0; lane < n; lane++ {
		if p.Const(lane) {
			continue
		}
		if p.Swizzle(lane) >= n {
			return true
		}
	}
	return false
}

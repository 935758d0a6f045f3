package vfpu

import (
	"github.com/pspgo/vfpu/prefix"
	"github.com/pspgo/vfpu/regfile"
)

// VMidt implements vmidt: writes an n x n identity matrix to vd. The
// reference forces the S prefix's last row to read as a constant
// (0,0,0,1)-style pattern via a rewritten prefix rather than by special
// casing the write; since this is a vector-init kernel with no real source
// operand, that nuance only matters for instruction timing, not the
// result, so VMidt simply writes the identity directly.
func (vm *Machine) VMidt(sz regfile.MatrixSize, vd int) {
	n := regfile.MatrixSide(sz)
	m := make([]float32, 16)
	for i := 0; i < n; i++ {
		m[i*4+i] = 1
	}
	vm.Regs.WriteMatrix(m, sz, vd)
	vm.eatPrefixes()
}

// VMzero implements vmzero: writes an n x n zero matrix to vd.
func (vm *Machine) VMzero(sz regfile.MatrixSize, vd int) {
	vm.Regs.WriteMatrix(make([]float32, 16), sz, vd)
	vm.eatPrefixes()
}

// VMone implements vmone: writes an n x n matrix of all ones to vd.
func (vm *Machine) VMone(sz regfile.MatrixSize, vd int) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 1
	}
	vm.Regs.WriteMatrix(m, sz, vd)
	vm.eatPrefixes()
}

// VZero implements vzero: writes an n-lane zero vector to vd.
func (vm *Machine) VZero(sz regfile.VectorSize, vd int) {
	vm.Regs.WriteVector(make([]float32, sz.NumElements()), sz, vd)
	vm.eatPrefixes()
}

// VOne implements vone: writes an n-lane vector of ones to vd.
func (vm *Machine) VOne(sz regfile.VectorSize, vd int) {
	n := sz.NumElements()
	v := make([]float32, n)
	for i := range v {
		v[i] = 1
	}
	vm.Regs.WriteVector(v, sz, vd)
	vm.eatPrefixes()
}

// VIdt implements vidt: writes lane `vd & 1` (Pair) or `vd & 3` (other
// sizes) of vd's own row to 1, when that lane exists, and every other lane
// to 0 - a single row of the identity matrix addressed as a vector.
func (vm *Machine) VIdt(sz regfile.VectorSize, vd int) {
	n := sz.NumElements()
	v := make([]float32, n)
	offmask := 3
	if sz == regfile.Pair {
		offmask = 1
	}
	lane := vd & offmask
	if lane < n {
		v[lane] = 1
	}
	vm.Regs.WriteVector(v, sz, vd)
	vm.eatPrefixes()
}

// VIim implements viim: loads vt with a sign-extended 16-bit integer
// immediate, widened to float32.
func (vm *Machine) VIim(vt int, imm int16) {
	vm.Regs.WriteScalar(vt, float32(imm))
	vm.eatPrefixes()
}

// VFim implements vfim: loads vt with a 16-bit half-precision float
// immediate, expanded to float32.
func (vm *Machine) VFim(vt int, imm uint16) {
	vm.Regs.WriteScalar(vt, halfExpand(imm))
	vm.eatPrefixes()
}

// vfpuConstants mirrors the reference's named vcst table: vcst selects one
// of these 32 well-known constants by a 5-bit index.
var vfpuConstants = [32]float32{
	0:  0,
	1:  4.0 / 3.0,
	2:  1.0 / 3.0,
	3:  0.25,
	4:  1.0 / 6.0,
	5:  2.0 / 3.0,
	6:  0.5,
	7:  1.0 / 7.0,
	8:  0.1591549431, // 1/(2*pi)
	9:  0.6366197724, // 2/pi
	10: 0.7853981634, // pi/4
	11: 1.0 / 5.0,
	12: 1.5707963268, // pi/2
	13: 3.1415926536, // pi
	14: 2 * 3.1415926536,
	15: 1.0 / 1.5707963268, // (1/pi)*2 — matches vfpu "inverse pi half" convention
	16: 0.6931471806,       // log(2)
	17: 2.302585093,        // log(10)
	18: 2.718281828,        // e
	19: 1.414213562,        // sqrt(2)
	20: 0.7071067812,       // 1/sqrt(2)
	21: 3.4028234664e38,    // max float32
	22: 1.0 / 3.4028234664e38,
}

// VCst implements vcst: writes the n-lane broadcast of named constant idx
// to vd.
func (vm *Machine) VCst(sz regfile.VectorSize, vd, idx int) {
	n := sz.NumElements()
	v := make([]float32, n)
	c := vfpuConstants[idx&0x1F]
	for i := range v {
		v[i] = c
	}
	vm.Regs.WriteVector(v, sz, vd)
	vm.eatPrefixes()
}

// VMmul implements vmmul: vd[a][b] = sum_c vs[c][b] * vt[a][c] - vs is read
// by column (its PSP transpose convention: operand order is reversed from
// the mnemonic's naive "vs times vt" reading, equivalent to vd = vt * vs as
// an ordinary matrix product) while vt is read by row. The S and T
// prefixes apply only to the dot product that produces element [n-1][n-1]
// - every other element is computed from raw register contents - and the
// D prefix's saturation/mask apply only to the matrix's last row,
// following the reference's lastmask/lastsat derivation.
func (vm *Machine) VMmul(sz regfile.MatrixSize, vd, vs, vt int) {
	n := regfile.MatrixSide(sz)
	sMat := make([]float32, 16)
	tMat := make([]float32, 16)
	vm.Regs.ReadMatrix(sMat, sz, vs)
	vm.Regs.ReadMatrix(tMat, sz, vt)

	out := make([]float32, 16)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			var sum float32
			for c := 0; c < n; c++ {
				sum += sMat[c*4+b] * tMat[a*4+c]
			}
			out[a*4+b] = sum
		}
	}

	// Recompute [n-1][n-1] with the S/T prefix applied to that one dot
	// product's operands: column n-1 of vs (selected by b=n-1) and row
	// n-1 of vt (selected by a=n-1), as the reference does via
	// ApplyPrefixST before the final multiply-accumulate.
	lastS := make([]float32, 4)
	lastT := make([]float32, 4)
	for k := 0; k < n; k++ {
		lastS[k] = sMat[k*4+(n-1)]
		lastT[k] = tMat[(n-1)*4+k]
	}
	var raw4 [4]float32
	copy(raw4[:n], lastS[:n])
	sApplied := make([]float32, n)
	vm.Prefix.S.Apply(raw4, n, sApplied, nil)
	copy(raw4[:n], lastT[:n])
	tApplied := make([]float32, n)
	vm.Prefix.T.Apply(raw4, n, tApplied, nil)
	var sum float32
	for k := 0; k < n; k++ {
		sum += sApplied[k] * tApplied[k]
	}
	out[(n-1)*4+(n-1)] = sum

	// D prefix's saturation and mask apply only to the last row, and only
	// to its lane n-1, using lane 0's D bits moved there.
	d := vm.Prefix.D.Raw()
	lastD := prefix.NewD(((d>>8)&1)<<uint(8+n-1) | (d&3)<<uint(2*n-2))
	lastRowOut := out[(n-1)*4 : (n-1)*4+n]
	lastD.Apply(lastRowOut, n)
	mask := lastD.Mask(n)

	full := make([]float32, 16)
	copy(full, out)
	// WriteMatrix has no masked variant, so any masked last-row lane is
	// filled with vd's prior value before the write.
	if anyMasked(mask) {
		prevRow := make([]float32, 16)
		vm.Regs.ReadMatrix(prevRow, sz, vd)
		for c := 0; c < n; c++ {
			if mask[c] {
				full[(n-1)*4+c] = prevRow[(n-1)*4+c]
			}
		}
	}
	vm.Regs.WriteMatrix(full, sz, vd)
	vm.eatPrefixes()
}

func anyMasked(mask []bool) bool {
	for _, m := range mask {
		if m {
			return true
		}
	}
	return false
}

// VMscl implements vmscl: vd = vs scaled elementwise by the Single scalar
// addressed by vt.
func (vm *Machine) VMscl(sz regfile.MatrixSize, vd, vs, vt int) {
	n := regfile.MatrixSide(sz)
	a := make([]float32, 16)
	vm.Regs.ReadMatrix(a, sz, vs)
	scalar := vm.Regs.ReadScalar(vt)
	out := make([]float32, 16)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out[r*4+c] = a[r*4+c] * scalar
		}
	}
	vm.Regs.WriteMatrix(out, sz, vd)
	vm.eatPrefixes()
}

// VMmov implements vmmov: copies matrix vs to vd unchanged.
func (vm *Machine) VMmov(sz regfile.MatrixSize, vd, vs int) {
	a := make([]float32, 16)
	vm.Regs.ReadMatrix(a, sz, vs)
	vm.Regs.WriteMatrix(a, sz, vd)
	vm.eatPrefixes()
}

// VTfm implements vtfm (square, n == number of source vector lanes) and
// vhtfm (homogeneous, n == lanes+1): vd = matrix(vs) * vector(vt), treating
// vt as an (n-1)-lane vector extended with an implicit 1 in the
// homogeneous case. The reference is explicitly silent on S/T/D prefix
// handling for this instruction family - real firmware behavior here is
// undocumented - so VTfm intentionally reads its operands raw, matching
// that documented gap rather than guessing a prefix semantics.
func (vm *Machine) VTfm(matSz regfile.MatrixSize, vecSz regfile.VectorSize, vd, vs, vt int, homogeneous bool) {
	n := regfile.MatrixSide(matSz)
	m := make([]float32, 16)
	vm.Regs.ReadMatrix(m, matSz, vs)

	vecLen := vecSz.NumElements()
	v := make([]float32, n)
	vm.Regs.ReadVector(v[:vecLen], vecSz, vt)
	if homogeneous {
		v[n-1] = 1
	}

	out := make([]float32, n)
	for r := 0; r < n; r++ {
		var sum float32
		for k := 0; k < n; k++ {
			sum += m[r*4+k] * v[k]
		}
		out[r] = sum
	}
	vm.Regs.WriteVector(out, regfile.VectorSize(n-1), vd)
	vm.eatPrefixes()
}

// Package regfile implements the VFPU register cube: 128 single-precision
// slots addressable as scalars, row/column vectors of 2-4 elements, or
// 2x2/3x3/4x4 matrices carved out of an 8-deep stack of 4x4 frames.
//
// Register numbering follows the Allegrex convention M_CRE, where C in
// [0,8) selects the matrix (cube slice), R in [0,4) the row, and E in [0,4)
// the element within the row. A 7-bit register index plus a size together
// select the set of underlying slots; that mapping is reference data (the
// voffset table in the original interpreter), not logic, so it is built
// once in init and consulted from then on.
package regfile

import "math"

// VectorSize identifies how many elements a vector operand spans.
type VectorSize int

const (
	Single VectorSize = iota
	Pair
	Triple
	Quad
)

// NumElements returns the element count of a VectorSize.
func (sz VectorSize) NumElements() int {
	switch sz {
	case Single:
		return 1
	case Pair:
		return 2
	case Triple:
		return 3
	case Quad:
		return 4
	default:
		return 0
	}
}

// DoubleVectorSize maps Single->Pair and Pair->Quad, used by vsocp to
// compute its (wider) output size from its (narrower) input size.
func DoubleVectorSize(sz VectorSize) VectorSize {
	switch sz {
	case Single:
		return Pair
	case Pair:
		return Quad
	default:
		return sz
	}
}

// MatrixSize identifies the side length of a square matrix operand.
type MatrixSize int

const (
	M2x2 MatrixSize = iota
	M3x3
	M4x4
)

// MatrixSide returns 2, 3, or 4 for the given MatrixSize.
func MatrixSide(sz MatrixSize) int {
	switch sz {
	case M2x2:
		return 2
	case M3x3:
		return 3
	case M4x4:
		return 4
	default:
		return 0
	}
}

const (
	numMatrices = 8
	numRows     = 4
	numCols     = 4
	numSlots    = numMatrices * numRows * numCols
)

// File is the 128-slot register cube.
type File struct {
	slots [numSlots]uint32 // bit patterns; float32 values live behind Float32bits/frombits
}

// slotIndex returns the flat cube index for matrix m, row r, element e.
func slotIndex(m, r, e int) int {
	return (m*numRows+r)*numCols + e
}

// vectorOffsets and matrixOffsets precompute, for every (size, register)
// pair, the ordered list of
// flat slot indices that register addresses. This is the Go analogue of
// the reference's voffset[] table: invariant reference data, not logic.
var vectorOffsets [4][128][4]int
var matrixOffsets [3][128][16]int

func init() {
	for reg := 0; reg < 128; reg++ {
		mtx := (reg >> 2) & 7
		col := (reg >> 5) & 1
		row := reg & 3

		for _, sz := range []VectorSize{Single, Pair, Triple, Quad} {
			n := sz.NumElements()
			for i := 0; i < n; i++ {
				var r, e int
				if col == 1 && sz != Single {
					// Column-major vector: fixed column, varying row.
					r = (((reg >> 5) & 2) + i) & 3
					e = row
				} else {
					// Row-major vector (and every Single): fixed row,
					// varying element starting at bits 5-6.
					r = row
					e = ((reg >> 5) & 3) + i
					if e >= 4 {
						// A start element of 2 or 3 runs past the 4-wide
						// row; wrap around it.
						e &= 3
					}
				}
				vectorOffsets[sz][reg][i] = slotIndex(mtx, r, e)
			}
		}

		for _, msz := range []MatrixSize{M2x2, M3x3, M4x4} {
			n := MatrixSide(msz)
			for a := 0; a < n; a++ {
				for b := 0; b < n; b++ {
					var r, e int
					if col == 1 {
						r = (row + a) & 3
						e = (((reg >> 2) & 3) + b) & 3
					} else {
						r = (row + a) & 3
						e = (((reg >> 2) & 3) + b) & 3
					}
					matrixOffsets[msz][reg][a*4+b] = slotIndex(mtx, r, e)
				}
			}
		}
	}
}

// ReadVector fills dst[0:sz.NumElements()] with the float values addressed
// by reg at the given size.
func (f *File) ReadVector(dst []float32, sz VectorSize, reg int) {
	n := sz.NumElements()
	offs := vectorOffsets[sz][reg&0x7F]
	for i := 0; i < n; i++ {
		dst[i] = math.Float32frombits(f.slots[offs[i]])
	}
}

// WriteVector stores src[0:sz.NumElements()] into the slots addressed by
// reg at the given size.
func (f *File) WriteVector(src []float32, sz VectorSize, reg int) {
	n := sz.NumElements()
	offs := vectorOffsets[sz][reg&0x7F]
	for i := 0; i < n; i++ {
		f.slots[offs[i]] = math.Float32bits(src[i])
	}
}

// WriteVectorMasked is like WriteVector but skips any lane i where
// mask[i] is true - used by the D prefix's per-lane write suppression,
// which must leave the destination slot entirely untouched.
func (f *File) WriteVectorMasked(src []float32, sz VectorSize, reg int, mask []bool) {
	n := sz.NumElements()
	offs := vectorOffsets[sz][reg&0x7F]
	for i := 0; i < n; i++ {
		if mask != nil && mask[i] {
			continue
		}
		f.slots[offs[i]] = math.Float32bits(src[i])
	}
}

// ReadVectorU32 is ReadVector's integer-aliased form, for instructions that
// operate on the raw bit pattern (packed colors, byte/short unpacking).
func (f *File) ReadVectorU32(dst []uint32, sz VectorSize, reg int) {
	n := sz.NumElements()
	offs := vectorOffsets[sz][reg&0x7F]
	for i := 0; i < n; i++ {
		dst[i] = f.slots[offs[i]]
	}
}

// WriteVectorU32 is WriteVector's integer-aliased form.
func (f *File) WriteVectorU32(src []uint32, sz VectorSize, reg int) {
	n := sz.NumElements()
	offs := vectorOffsets[sz][reg&0x7F]
	for i := 0; i < n; i++ {
		f.slots[offs[i]] = src[i]
	}
}

func (f *File) WriteVectorU32Masked(src []uint32, sz VectorSize, reg int, mask []bool) {
	n := sz.NumElements()
	offs := vectorOffsets[sz][reg&0x7F]
	for i := 0; i < n; i++ {
		if mask != nil && mask[i] {
			continue
		}
		f.slots[offs[i]] = src[i]
	}
}

// ReadScalar reads the single slot addressed by reg.
func (f *File) ReadScalar(reg int) float32 {
	return math.Float32frombits(f.slots[vectorOffsets[Single][reg&0x7F][0]])
}

// WriteScalar writes the single slot addressed by reg.
func (f *File) WriteScalar(reg int, v float32) {
	f.slots[vectorOffsets[Single][reg&0x7F][0]] = math.Float32bits(v)
}

// ReadScalarU32 and WriteScalarU32 are ReadScalar/WriteScalar's
// integer-aliased forms.
func (f *File) ReadScalarU32(reg int) uint32 {
	return f.slots[vectorOffsets[Single][reg&0x7F][0]]
}

func (f *File) WriteScalarU32(reg int, v uint32) {
	f.slots[vectorOffsets[Single][reg&0x7F][0]] = v
}

// ReadMatrix fills dst[0:16] (row-major, stride 4, trailing slots of
// sub-4x4 frames left at whatever dst already held - callers must
// zero-initialize dst first, matching the reference's treatment of
// out-of-range matrix elements as logically undefined/zero) with the
// n*n values addressed by reg at the given matrix size.
func (f *File) ReadMatrix(dst []float32, sz MatrixSize, reg int) {
	n := MatrixSide(sz)
	offs := matrixOffsets[sz][reg&0x7F]
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			dst[a*4+b] = math.Float32frombits(f.slots[offs[a*4+b]])
		}
	}
}

// WriteMatrix stores the leading n*n elements of src (row-major, stride 4)
// into the slots addressed by reg at the given matrix size.
func (f *File) WriteMatrix(src []float32, sz MatrixSize, reg int) {
	n := MatrixSide(sz)
	offs := matrixOffsets[sz][reg&0x7F]
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			f.slots[offs[a*4+b]] = math.Float32bits(src[a*4+b])
		}
	}
}

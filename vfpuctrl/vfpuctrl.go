// Package vfpuctrl implements the VFPU's 16-slot control register file,
// addressed by mfvc/mtvc and read internally by instructions that consult
// the condition-code flags or RNG seed.
package vfpuctrl

// Index names a VFPU control register slot.
type Index int

const (
	SPrefix  Index = 0
	TPrefix  Index = 1
	DPrefix  Index = 2
	CC       Index = 3
	RNGState Index = 4
	// Indices 5-15 are reserved; the reference keeps them present but
	// undocumented, so File allocates all 16 and leaves the rest at zero.
	numRegisters = 16
)

// writable marks which indices mtvc is permitted to overwrite directly.
// SPrefix/TPrefix/DPrefix are normally loaded via vpfx, not mtvc, but real
// firmware does not forbid it, so all but RNGState are writable.
var writable = [numRegisters]bool{
	SPrefix:  true,
	TPrefix:  true,
	DPrefix:  true,
	CC:       true,
	RNGState: false,
	5:        true, 6: true, 7: true, 8: true, 9: true, 10: true,
	11: true, 12: true, 13: true, 14: true, 15: true,
}

// File is the VFPU control register file.
type File struct {
	regs [numRegisters]uint32
}

// Get reads control register idx.
func (f *File) Get(idx Index) uint32 {
	return f.regs[idx&0xF]
}

// Set writes control register idx unconditionally, bypassing the mtvc
// writability check.
func (f *File) Set(idx Index, v uint32) {
	f.regs[idx&0xF] = v
}

// SetViaMtvc writes control register idx as mtvc would, silently dropping
// the write if idx is not software-writable.
func (f *File) SetViaMtvc(idx Index, v uint32) {
	if !writable[idx&0xF] {
		return
	}
	f.regs[idx&0xF] = v
}

// CCBit reports whether condition-code bit n (0-3: per-lane results for a
// Quad-sized vcmp, 4: AND-reduction, 5: OR-reduction) is set.
func (f *File) CCBit(n int) bool {
	return f.regs[CC]&(1<<uint(n)) != 0
}

// SetCCBit sets or clears condition-code bit n.
func (f *File) SetCCBit(n int, v bool) {
	if v {
		f.regs[CC] |= 1 << uint(n)
	} else {
		f.regs[CC] &^= 1 << uint(n)
	}
}

// SetCCMasked updates only the condition-code bits named in mask, leaving
// the rest of the CC register untouched - vcmp writes bits 0..n-1 plus the
// aggregate bits 4 and 5, never the whole register.
func (f *File) SetCCMasked(mask uint32, bits uint32) {
	f.regs[CC] = (f.regs[CC] &^ mask) | (bits & mask)
}

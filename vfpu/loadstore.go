package vfpu

import "github.com/pspgo/vfpu/regfile"

// SV implements lv.s and sv.s: single-float load/store between memory and
// one register lane, at a plain byte address with no alignment games.
func (vm *Machine) SV(load bool, vt int, addr uint32) {
	if load {
		vm.Regs.WriteScalarU32(vt, vm.Mem.ReadU32(addr))
	} else {
		vm.Mem.WriteU32(addr, vm.Regs.ReadScalarU32(vt))
	}
	vm.eatPrefixes()
}

// SVQ implements lv.q/sv.q and their row/column-partial variants lvl.q,
// lvr.q, svl.q, svr.q. addr need not be 16-byte aligned; offset =
// (addr>>2)&3 selects how many of the quad's 4 words are transferred and
// from which end, exactly as the reference derives it.
func (vm *Machine) SVQ(load bool, partial PartialMode, vt int, addr uint32) {
	base := addr &^ 0xF
	offset := (addr >> 2) & 3

	lo, hi := partialRange(partial, int(offset))

	raw := make([]uint32, 4)
	vm.Regs.ReadVectorU32(raw, regfile.Quad, vt)
	for i := lo; i < hi; i++ {
		wordAddr := base + uint32(i)*4
		if load {
			raw[i] = vm.Mem.ReadU32(wordAddr)
		} else {
			vm.Mem.WriteU32(wordAddr, raw[i])
		}
	}
	if load {
		vm.Regs.WriteVectorU32(raw, regfile.Quad, vt)
	}
	vm.eatPrefixes()
}

// PartialMode identifies which lanes of a quad load/store transfer: the
// full quad, or only its left (low-address) or right (high-address) part,
// as lv.q vs. lvl.q/lvr.q (and their store counterparts) select.
type PartialMode int

const (
	PartialFull PartialMode = iota
	PartialLeft
	PartialRight
)

// partialRange returns the [lo, hi) lane range a PartialMode/offset pair
// transfers, mirroring the reference's Int_SVQ offset-indexed switch.
func partialRange(mode PartialMode, offset int) (int, int) {
	switch mode {
	case PartialLeft:
		return 0, 4 - offset
	case PartialRight:
		return 4 - offset, 4
	default:
		return 0, 4
	}
}

package vfpu

import "github.com/pspgo/vfpu/vfpuctrl"

// VPFX implements vpfxs/vpfxt/vpfxd: loads the S, T, or D prefix engine
// from the instruction's own 24-bit immediate field, to be consumed by the
// very next instruction and then eaten. S and T keep the low 20 bits of
// raw, D the low 12. VPFX is the one instruction whose epilogue must not
// eat prefixes - it just set them.
type PrefixSlot int

const (
	SlotS PrefixSlot = iota
	SlotT
	SlotD
)

func (vm *Machine) VPFX(slot PrefixSlot, raw uint32) {
	switch slot {
	case SlotS:
		vm.Prefix.LoadS(raw & 0xFFFFF)
	case SlotT:
		vm.Prefix.LoadT(raw & 0xFFFFF)
	case SlotD:
		vm.Prefix.LoadD(raw & 0xFFF)
	}
}

// Mfv implements mfv: copies a VFPU register's raw bit pattern into GPR
// rt. gprWrite is the collaborator callback the outer core supplies since
// the general-purpose register file lives outside this package.
func (vm *Machine) Mfv(vs int, gprWrite func(v uint32)) {
	gprWrite(vm.Regs.ReadScalarU32(vs))
}

// Mtv implements mtv: copies a GPR's raw bit pattern into VFPU register
// vs. A read of GPR 0 (the hardwired-zero register) is always 0 by
// convention of the outer core, so no special case is needed here - unlike
// the reference's documented "interlock" GPR-0 special case, which only
// matters for its own pipeline model.
func (vm *Machine) Mtv(vs int, v uint32) {
	vm.Regs.WriteScalarU32(vs, v)
}

// VMfvc implements mfvc: copies a VFPU control register into GPR rt.
func (vm *Machine) VMfvc(idx vfpuctrl.Index, gprWrite func(v uint32)) {
	gprWrite(vm.Ctrl.Get(idx))
}

// VMtvc implements mtvc: copies a GPR into a VFPU control register,
// subject to that register's software writability.
func (vm *Machine) VMtvc(idx vfpuctrl.Index, v uint32) {
	vm.Ctrl.SetViaMtvc(idx, v)
}

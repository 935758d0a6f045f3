// Package vfpu implements the PSP Allegrex CPU's vector floating point
// unit: the 128-float register cube, its S/T/D prefix engine, and the
// arithmetic, conversion, comparison, load/store, and control-transfer
// kernels that operate on it. The outer MIPS instruction dispatch loop -
// fetch, primary opcode decode, branch delay slots, exceptions - is an
// external collaborator; Machine exposes one Go method per VFPU mnemonic
// for that collaborator to call once it has decided which one applies.
package vfpu

import (
	"github.com/sirupsen/logrus"

	"github.com/pspgo/vfpu/memio"
	"github.com/pspgo/vfpu/prefix"
	"github.com/pspgo/vfpu/regfile"
	"github.com/pspgo/vfpu/rngsrc"
	"github.com/pspgo/vfpu/vfpuctrl"
)

// Machine bundles the register cube with its collaborators: the prefix
// engine, the control register file, main memory, and the RNG source.
type Machine struct {
	Regs   regfile.File
	Ctrl   vfpuctrl.File
	Prefix *prefix.Engine
	Mem    memio.Memory
	RNG    rngsrc.Source
	Log    logrus.FieldLogger
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithMemory overrides the default dummy memory with m.
func WithMemory(m memio.Memory) Option {
	return func(vm *Machine) { vm.Mem = m }
}

// WithRNG overrides the default RNG source with r.
func WithRNG(r rngsrc.Source) Option {
	return func(vm *Machine) { vm.RNG = r }
}

// WithLogger overrides the default logger with l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(vm *Machine) { vm.Log = l }
}

// New returns a Machine with its register cube zeroed, prefixes at
// identity, and a usable default memory, RNG, and logger - each
// overridable via Option rather than requiring a caller to construct its
// own collaborators.
func New(opts ...Option) *Machine {
	vm := &Machine{
		Prefix: prefix.NewEngine(),
		Mem:    memio.NewDummy(1 << 16),
		RNG:    rngsrc.Default(),
		Log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// eatPrefixes resets the prefix engine to identity, the epilogue every
// VFPU instruction performs except a prefix load (VPFX) and vflush.
func (vm *Machine) eatPrefixes() {
	vm.Prefix.Eat()
}

// readSwizzled reads the n-lane vector addressed by reg, applies the given
// S/T prefix to it, and writes the post-swizzle value into out, ready for
// arithmetic.
func (vm *Machine) readSwizzled(p prefix.ST, sz regfile.VectorSize, reg int, out []float32) {
	var raw4 [4]float32
	n := sz.NumElements()
	full := make([]float32, 4)
	vm.Regs.ReadVector(full[:n], sz, reg)
	copy(raw4[:n], full[:n])
	p.Apply(raw4, n, out, nil)
}

// writeDestination applies the pending D prefix's saturation to result and
// writes it into reg, honoring the D prefix's per-lane write mask.
func (vm *Machine) writeDestination(sz regfile.VectorSize, reg int, result []float32) {
	n := sz.NumElements()
	vm.Prefix.D.Apply(result, n)
	mask := vm.Prefix.D.Mask(n)
	vm.Regs.WriteVectorMasked(result, sz, reg, mask)
}

func sizeFromBits(s int) regfile.VectorSize {
	switch s {
	case 0:
		return regfile.Single
	case 1:
		return regfile.Pair
	case 2:
		return regfile.Triple
	default:
		return regfile.Quad
	}
}

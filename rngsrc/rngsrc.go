// Package rngsrc provides the VFPU's vrnds/vrndi/vrndf1/vrndf2 random
// source as an injectable collaborator. The PSP's own RNG is a specific
// LCG whose exact constants are out of scope (see the vfpu package's own
// documentation); this package exposes the contract vfpu.Machine consumes
// plus a non-authoritative default so the interpreter runs standalone.
package rngsrc

import "math/rand"

// Source is the collaborator vfpu.Machine calls into for vrnds (reseed)
// and vrndi/vrndf1/vrndf2 (draw). Implementations need not be
// cryptographically secure or bit-compatible with real firmware.
type Source interface {
	// Seed reseeds the generator, as vrnds does from an integer-aliased
	// source register.
	Seed(seed uint32)
	// Uint32 draws the next 32-bit value.
	Uint32() uint32
}

// std wraps a math/rand generator as the module's default Source.
// It is not bit-compatible with the PSP's own RNG - that algorithm is out
// of scope - but gives callers who don't care about exact reproduction a
// real, statistically sound generator out of the box.
type std struct {
	r *rand.Rand
}

// Default returns the module's standard Source, backed by math/rand.
func Default() Source {
	return &std{r: rand.New(rand.NewSource(1))}
}

func (p *std) Seed(seed uint32) {
	p.r = rand.New(rand.NewSource(int64(seed)))
}

func (p *std) Uint32() uint32 {
	return p.r.Uint32()
}

// dummy is a minimal deterministic Source for tests: an LCG with
// well-known constants, good enough to prove wiring without claiming any
// fidelity to the PSP's own generator.
type dummy struct {
	state uint32
}

// NewDummy returns a Source seeded to 1, suitable for tests that need
// determinism rather than any particular distribution.
func NewDummy() Source {
	return &dummy{state: 1}
}

func (d *dummy) Seed(seed uint32) {
	if seed == 0 {
		seed = 1
	}
	d.state = seed
}

func (d *dummy) Uint32() uint32 {
	// Numerical Recipes LCG constants; fast, not cryptographic, not
	// firmware-accurate - tests only need reproducibility.
	d.state = d.state*1664525 + 1013904223
	return d.state
}

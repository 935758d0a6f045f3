// Package memio defines the main-memory collaborator lv.q/sv.q and friends
// use to move vectors between the register cube and addressable memory.
// The outer MIPS core owns the actual address space; vfpu.Machine only
// ever calls through this interface.
package memio

import "math"

// Memory is the main-memory view the VFPU's load/store instructions read
// and write through. Addresses are byte addresses; vector loads/stores
// always transfer word-aligned float32 values.
type Memory interface {
	// ReadU32 returns the raw 32-bit word at addr.
	ReadU32(addr uint32) uint32
	// WriteU32 stores the raw 32-bit word v at addr.
	WriteU32(addr uint32, v uint32)
}

// ReadFloat reads the float32 at addr via ReadU32's bit pattern.
func ReadFloat(m Memory, addr uint32) float32 {
	return math.Float32frombits(m.ReadU32(addr))
}

// WriteFloat stores v at addr via WriteU32's bit pattern.
func WriteFloat(m Memory, addr uint32, v float32) {
	m.WriteU32(addr, math.Float32bits(v))
}

// dummy is a flat, unbounded-looking but fixed-size memory for tests,
// analogous to a mapper's dummy RAM backing.
type dummy struct {
	words []uint32
}

// NewDummy returns a Memory backed by a flat array of wordCount words,
// addressed by byte address (addr/4).
func NewDummy(wordCount int) Memory {
	return &dummy{words: make([]uint32, wordCount)}
}

func (d *dummy) ReadU32(addr uint32) uint32 {
	return d.words[addr/4]
}

func (d *dummy) WriteU32(addr uint32, v uint32) {
	d.words[addr/4] = v
}

// Dummy is a package-level instance for tests that don't need isolation,
// matching the pack's convention of a shared, reset-before-use test double.
var Dummy = NewDummy(1 << 16).(*dummy)

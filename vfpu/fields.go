package vfpu

// VFPU instructions encode their vd/vs/vt register operands and size bits
// in consistent bitfield positions across the instruction families. These
// helpers pull the raw 32-bit opcode word apart the same way the reference
// interpreter's inline bit twiddling does, just named instead of repeated.

func bits(op uint32, shift, width uint) uint32 {
	return (op >> shift) & ((1 << width) - 1)
}

// VD, VS, VT extract the 7-bit destination/source/second-source register
// fields common to nearly every VFPU instruction.
func VD(op uint32) int { return int(bits(op, 0, 7)) }
func VS(op uint32) int { return int(bits(op, 8, 7)) }
func VT(op uint32) int { return int(bits(op, 16, 7)) }

// Size decodes the two size bits (bit 7 and bit 15) into a VectorSize-
// compatible small int: 0=Single, 1=Pair, 2=Triple, 3=Quad.
func Size(op uint32) int {
	return int(bits(op, 7, 1) | (bits(op, 15, 1) << 1))
}

// Subop extracts the 5-bit secondary opcode many VV2Op/VfpuOp0/VfpuOp1
// family instructions use to select among related operations.
func Subop(op uint32) int { return int(bits(op, 16, 5)) }

// Imm5 extracts a 5-bit immediate (vrot's rotation control, vcmp/vcmov's
// condition code selector).
func Imm5(op uint32) int { return int(bits(op, 16, 5)) }

// Imm16 extracts viim/vfim's 16-bit signed immediate.
func Imm16(op uint32) int16 { return int16(bits(op, 0, 16)) }

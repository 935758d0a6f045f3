package vfpu

// Op names the handful of VFPU instruction families whose primary-opcode
// bit pattern is concretely evidenced (lv.s/sv.s on MIPS COP1 opcodes 50
// and 58; lv.q/sv.q and their partial variants on opcodes 53, 54, 61, 62).
// Everything else is reached by the outer MIPS core calling the matching
// Machine method directly once it has decoded the VFPU-specific secondary
// opcode space (bits 26-31 == 0x12's sub-space) - that decode tree is the
// outer core's responsibility, not this package's, per the documented
// scope boundary between the two.
type Op int

const (
	OpUnknown Op = iota
	OpLVS
	OpSVS
	OpLVQ
	OpSVQ
	OpLVLQ
	OpLVRQ
	OpSVLQ
	OpSVRQ
)

// DecodePrimary maps a full 32-bit instruction word's primary opcode field
// (bits 26-31) to the load/store Op it names, for the subset of VFPU
// instructions that live outside the main COP2-prefixed VFPU opcode space.
// It returns OpUnknown for anything else, including every arithmetic,
// conversion, and compare instruction - those are dispatched by the outer
// core directly to the matching Machine method.
func DecodePrimary(op uint32) Op {
	switch op >> 26 {
	case 50:
		return OpLVS
	case 58:
		return OpSVS
	case 53:
		return OpLVQ
	case 54:
		return OpLVLQ // or OpLVRQ, disambiguated by bit 1 of the address - see Int_SVQ
	case 61:
		return OpSVQ
	case 62:
		return OpSVLQ // or OpSVRQ, disambiguated the same way
	default:
		return OpUnknown
	}
}

// Dispatch resolves a load/store Op plus its decoded address into the
// (load bool, partial PartialMode) pair SVQ expects, applying the
// left/right disambiguation DecodePrimary leaves open.
func Dispatch(op Op, addr uint32) (load bool, partial PartialMode) {
	switch op {
	case OpLVQ:
		return true, PartialFull
	case OpSVQ:
		return false, PartialFull
	case OpLVLQ, OpLVRQ:
		return true, partialFromAddr(addr)
	case OpSVLQ, OpSVRQ:
		return false, partialFromAddr(addr)
	default:
		return false, PartialFull
	}
}

func partialFromAddr(addr uint32) PartialMode {
	if addr&2 != 0 {
		return PartialRight
	}
	return PartialLeft
}

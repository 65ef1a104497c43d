package benchmarks

import "github.com/sarchlab/mipssim/insts"

// Register numbers used by the workloads.
const (
	regZero uint8 = 0
	regV0   uint8 = 2
	regV1   uint8 = 3
	regA0   uint8 = 4
	regT0   uint8 = 8
	regT1   uint8 = 9
	regT2   uint8 = 10
	regT3   uint8 = 11
	regT4   uint8 = 12
	regS0   uint8 = 16
	regT9   uint8 = 25
	regRA   uint8 = 31
)

func encodeR(rd, rs, rt, shamt, funct uint8) uint32 {
	return uint32(rs&0x1F)<<21 | uint32(rt&0x1F)<<16 |
		uint32(rd&0x1F)<<11 | uint32(shamt&0x1F)<<6 | uint32(funct&0x3F)
}

func encodeI(opcode, rs, rt uint8, imm uint16) uint32 {
	return uint32(opcode&0x3F)<<26 | uint32(rs&0x1F)<<21 |
		uint32(rt&0x1F)<<16 | uint32(imm)
}

// EncodeADD encodes add rd, rs, rt.
func EncodeADD(rd, rs, rt uint8) uint32 {
	return encodeR(rd, rs, rt, 0, insts.FunctADD)
}

// EncodeADDU encodes addu rd, rs, rt.
func EncodeADDU(rd, rs, rt uint8) uint32 {
	return encodeR(rd, rs, rt, 0, insts.FunctADDU)
}

// EncodeSLT encodes slt rd, rs, rt.
func EncodeSLT(rd, rs, rt uint8) uint32 {
	return encodeR(rd, rs, rt, 0, insts.FunctSLT)
}

// EncodeSLL encodes sll rd, rt, shamt.
func EncodeSLL(rd, rt, shamt uint8) uint32 {
	return encodeR(rd, 0, rt, shamt, insts.FunctSLL)
}

// EncodeJR encodes jr rs.
func EncodeJR(rs uint8) uint32 {
	return encodeR(0, rs, 0, 0, insts.FunctJR)
}

// EncodeSYSCALL encodes syscall.
func EncodeSYSCALL() uint32 {
	return encodeR(0, 0, 0, 0, insts.FunctSYSCALL)
}

// EncodeMUL encodes mul rd, rs, rt.
func EncodeMUL(rd, rs, rt uint8) uint32 {
	return uint32(insts.OpcodeSpecial2)<<26 | encodeR(rd, rs, rt, 0, insts.FunctMUL)
}

// EncodeADDI encodes addi rt, rs, imm.
func EncodeADDI(rt, rs uint8, imm int16) uint32 {
	return encodeI(insts.OpcodeADDI, rs, rt, uint16(imm))
}

// EncodeADDIU encodes addiu rt, rs, imm.
func EncodeADDIU(rt, rs uint8, imm int16) uint32 {
	return encodeI(insts.OpcodeADDIU, rs, rt, uint16(imm))
}

// EncodeORI encodes ori rt, rs, imm.
func EncodeORI(rt, rs uint8, imm uint16) uint32 {
	return encodeI(insts.OpcodeORI, rs, rt, imm)
}

// EncodeLUI encodes lui rt, imm.
func EncodeLUI(rt uint8, imm uint16) uint32 {
	return encodeI(insts.OpcodeLUI, 0, rt, imm)
}

// EncodeLW encodes lw rt, offset(base).
func EncodeLW(rt, base uint8, offset int16) uint32 {
	return encodeI(insts.OpcodeLW, base, rt, uint16(offset))
}

// EncodeSW encodes sw rt, offset(base).
func EncodeSW(rt, base uint8, offset int16) uint32 {
	return encodeI(insts.OpcodeSW, base, rt, uint16(offset))
}

// EncodeBEQ encodes beq rs, rt, offset. The offset counts words from the
// instruction after the branch.
func EncodeBEQ(rs, rt uint8, offset int16) uint32 {
	return encodeI(insts.OpcodeBEQ, rs, rt, uint16(offset))
}

// EncodeBNE encodes bne rs, rt, offset.
func EncodeBNE(rs, rt uint8, offset int16) uint32 {
	return encodeI(insts.OpcodeBNE, rs, rt, uint16(offset))
}

// EncodeJ encodes j target.
func EncodeJ(target uint32) uint32 {
	return uint32(insts.OpcodeJ)<<26 | (target>>2)&0x03FFFFFF
}

// EncodeJAL encodes jal target.
func EncodeJAL(target uint32) uint32 {
	return uint32(insts.OpcodeJAL)<<26 | (target>>2)&0x03FFFFFF
}

// Exit returns the two-instruction exit sequence.
func Exit() []uint32 {
	return []uint32{EncodeADDIU(regV0, regZero, 10), EncodeSYSCALL()}
}

// BuildProgram concatenates instruction groups.
func BuildProgram(groups ...[]uint32) []uint32 {
	var program []uint32
	for _, g := range groups {
		program = append(program, g...)
	}
	return program
}

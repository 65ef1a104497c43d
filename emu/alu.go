// Package emu provides functional MIPS32 emulation.
package emu

// ALU implements MIPS32 arithmetic and logic operations.
// All arithmetic wraps modulo 2^32; overflow never traps.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// ADD performs addition: rd = rs + rt
func (a *ALU) ADD(rd, rs, rt uint8) {
	result := a.regFile.ReadReg(rs) + a.regFile.ReadReg(rt)
	a.regFile.WriteReg(rd, result)
}

// ADDImm performs addition with a sign-extended immediate: rt = rs + imm
func (a *ALU) ADDImm(rt, rs uint8, imm int32) {
	result := a.regFile.ReadReg(rs) + imm
	a.regFile.WriteReg(rt, result)
}

// SLT performs a signed less-than: rd = rs < rt ? 1 : 0
func (a *ALU) SLT(rd, rs, rt uint8) {
	var result int32
	if a.regFile.ReadReg(rs) < a.regFile.ReadReg(rt) {
		result = 1
	}
	a.regFile.WriteReg(rd, result)
}

// SLL performs a logical shift left: rd = rt << shamt
func (a *ALU) SLL(rd, rt, shamt uint8) {
	value := uint32(a.regFile.ReadReg(rt))
	a.regFile.WriteReg(rd, int32(value<<(shamt&0x1F)))
}

// ORI performs a bitwise OR with a zero-extended immediate: rt = rs | imm
func (a *ALU) ORI(rt, rs uint8, imm uint32) {
	result := uint32(a.regFile.ReadReg(rs)) | imm
	a.regFile.WriteReg(rt, int32(result))
}

// LUI loads the raw 16-bit immediate into the upper half: rt = imm << 16
func (a *ALU) LUI(rt uint8, imm uint16) {
	a.regFile.WriteReg(rt, int32(uint32(imm)<<16))
}

// MUL performs a 32-bit multiply keeping the low word: rd = rs * rt
func (a *ALU) MUL(rd, rs, rt uint8) {
	result := a.regFile.ReadReg(rs) * a.regFile.ReadReg(rt)
	a.regFile.WriteReg(rd, result)
}

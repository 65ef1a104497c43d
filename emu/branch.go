// Package emu provides functional MIPS32 emulation.
package emu

// BranchUnit implements MIPS32 branch and jump operations.
// Every method takes the address of the branch instruction itself; the
// register file PC is expected to already hold the fall-through address.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// BEQ branches to pc+4+(imm<<2) if rs == rt. Returns whether it was taken.
func (b *BranchUnit) BEQ(pc uint32, rs, rt uint8, imm int32) bool {
	if b.regFile.ReadReg(rs) != b.regFile.ReadReg(rt) {
		return false
	}
	b.regFile.PC = pc + 4 + uint32(imm<<2)
	return true
}

// BNE branches to pc+4+(imm<<2) if rs != rt. Returns whether it was taken.
func (b *BranchUnit) BNE(pc uint32, rs, rt uint8, imm int32) bool {
	if b.regFile.ReadReg(rs) == b.regFile.ReadReg(rt) {
		return false
	}
	b.regFile.PC = pc + 4 + uint32(imm<<2)
	return true
}

// J jumps to the region of pc+4 combined with the 26-bit target field.
func (b *BranchUnit) J(pc, address uint32) {
	b.regFile.PC = ((pc + 4) & 0xF0000000) | (address << 2)
}

// JAL saves the return address (pc + 4) to $ra, then jumps like J.
func (b *BranchUnit) JAL(pc, address uint32) {
	b.regFile.WriteReg(RegRA, int32(pc+4))
	b.J(pc, address)
}

// JR jumps to the address held in rs.
func (b *BranchUnit) JR(rs uint8) {
	b.regFile.PC = uint32(b.regFile.ReadReg(rs))
}

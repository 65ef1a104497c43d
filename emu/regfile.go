// Package emu provides functional MIPS32 emulation.
package emu

import "github.com/sarchlab/mipssim/insts"

// Register numbers with a fixed role in this subset.
const (
	RegZero uint8 = 0
	RegV0   uint8 = 2
	RegSP   uint8 = 29
	RegRA   uint8 = 31
)

// NumRegs is the number of general-purpose registers.
const NumRegs = 32

// RegFile represents the MIPS32 register file.
// It contains 32 general-purpose registers and the program counter.
type RegFile struct {
	// X holds general-purpose registers $0-$31.
	// X[0] is $zero, which always reads as 0.
	X [NumRegs]int32

	// PC is the address of the next instruction to fetch.
	PC uint32
}

// ReadReg reads a register value. Register 0 returns 0.
func (r *RegFile) ReadReg(reg uint8) int32 {
	reg &= 0x1F
	if reg == RegZero {
		return 0
	}
	return r.X[reg]
}

// WriteReg writes a value to a register. Writes to register 0 are ignored.
func (r *RegFile) WriteReg(reg uint8, value int32) {
	reg &= 0x1F
	if reg == RegZero {
		return
	}
	r.X[reg] = value
}

// ClearZero forces $zero back to 0.
func (r *RegFile) ClearZero() {
	r.X[RegZero] = 0
}

// Snapshot returns a copy of all register values.
func (r *RegFile) Snapshot() [NumRegs]int32 {
	return r.X
}

// Name returns the symbolic name of a register.
func (r *RegFile) Name(reg uint8) string {
	return insts.RegName(reg)
}

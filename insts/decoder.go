// Package insts provides MIPS32 instruction definitions and decoding.
package insts

// Op represents a MIPS32 operation.
type Op uint16

// MIPS32 operations.
const (
	OpUnknown Op = iota
	OpADD
	OpADDU
	OpSLT
	OpSLL
	OpJR
	OpSYSCALL
	OpADDI
	OpADDIU
	OpBEQ
	OpBNE
	OpJ
	OpJAL
	OpLUI
	OpLW
	OpSW
	OpORI
	OpMUL
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown  Format = iota
	FormatR               // opcode 0, selected by funct
	FormatI               // immediate operand
	FormatJ               // 26-bit jump target
	FormatSpecial2        // opcode 28, selected by funct
)

// Primary opcodes (bits [31:26]).
const (
	OpcodeSpecial  uint8 = 0
	OpcodeJ        uint8 = 2
	OpcodeJAL      uint8 = 3
	OpcodeBEQ      uint8 = 4
	OpcodeBNE      uint8 = 5
	OpcodeADDI     uint8 = 8
	OpcodeADDIU    uint8 = 9
	OpcodeORI      uint8 = 13
	OpcodeLUI      uint8 = 15
	OpcodeSpecial2 uint8 = 28
	OpcodeLW       uint8 = 35
	OpcodeSW       uint8 = 43
)

// Function codes (bits [5:0]).
const (
	FunctSLL     uint8 = 0
	FunctMUL     uint8 = 2 // under OpcodeSpecial2
	FunctJR      uint8 = 8
	FunctSYSCALL uint8 = 12
	FunctADD     uint8 = 32
	FunctADDU    uint8 = 33
	FunctSLT     uint8 = 42
)

// Instruction represents a decoded MIPS32 instruction.
// All fields are bit slices of Raw.
type Instruction struct {
	Raw    uint32 // Original machine word
	Op     Op     // Operation, OpUnknown if not supported
	Format Format // Encoding format

	Opcode uint8 // bits [31:26]
	Rs     uint8 // bits [25:21]
	Rt     uint8 // bits [20:16]
	Rd     uint8 // bits [15:11]
	Shamt  uint8 // bits [10:6]
	Funct  uint8 // bits [5:0]

	Imm     uint16 // bits [15:0], raw pattern
	Address uint32 // bits [25:0], jump target field
}

// SignExtImm returns the immediate sign-extended to 32 bits.
func (i *Instruction) SignExtImm() int32 {
	return int32(int16(i.Imm))
}

// ZeroExtImm returns the immediate zero-extended to 32 bits.
func (i *Instruction) ZeroExtImm() uint32 {
	return uint32(i.Imm)
}

// BranchTarget returns the taken-branch destination for a branch located at
// pc: the address after the branch plus the sign-extended offset scaled by 4.
func (i *Instruction) BranchTarget(pc uint32) uint32 {
	return pc + 4 + uint32(i.SignExtImm()<<2)
}

// JumpTarget returns the J/JAL destination for a jump located at pc. The
// upper 4 bits come from the address of the following instruction.
func (i *Instruction) JumpTarget(pc uint32) uint32 {
	return ((pc + 4) & 0xF0000000) | (i.Address << 2)
}

// Decoder decodes MIPS32 machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new MIPS32 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit MIPS32 instruction word. It never fails.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{
		Raw:     word,
		Opcode:  uint8((word >> 26) & 0x3F),
		Rs:      uint8((word >> 21) & 0x1F),
		Rt:      uint8((word >> 16) & 0x1F),
		Rd:      uint8((word >> 11) & 0x1F),
		Shamt:   uint8((word >> 6) & 0x1F),
		Funct:   uint8(word & 0x3F),
		Imm:     uint16(word & 0xFFFF),
		Address: word & 0x03FFFFFF,
	}

	switch inst.Opcode {
	case OpcodeSpecial:
		d.decodeSpecial(inst)
	case OpcodeSpecial2:
		d.decodeSpecial2(inst)
	case OpcodeJ, OpcodeJAL:
		d.decodeJump(inst)
	default:
		d.decodeImm(inst)
	}

	return inst
}

// decodeSpecial classifies R-type instructions by funct.
func (d *Decoder) decodeSpecial(inst *Instruction) {
	inst.Format = FormatR

	switch inst.Funct {
	case FunctADD:
		inst.Op = OpADD
	case FunctADDU:
		inst.Op = OpADDU
	case FunctSLT:
		inst.Op = OpSLT
	case FunctSLL:
		inst.Op = OpSLL
	case FunctJR:
		inst.Op = OpJR
	case FunctSYSCALL:
		inst.Op = OpSYSCALL
	default:
		inst.Op = OpUnknown
	}
}

// decodeSpecial2 classifies SPECIAL2 instructions. Only MUL is supported.
func (d *Decoder) decodeSpecial2(inst *Instruction) {
	inst.Format = FormatSpecial2

	if inst.Funct == FunctMUL {
		inst.Op = OpMUL
	} else {
		inst.Op = OpUnknown
	}
}

// decodeJump classifies J and JAL.
func (d *Decoder) decodeJump(inst *Instruction) {
	inst.Format = FormatJ

	if inst.Opcode == OpcodeJ {
		inst.Op = OpJ
	} else {
		inst.Op = OpJAL
	}
}

// decodeImm classifies I-type instructions. Unsupported opcodes keep
// FormatUnknown.
func (d *Decoder) decodeImm(inst *Instruction) {
	inst.Format = FormatI

	switch inst.Opcode {
	case OpcodeADDI:
		inst.Op = OpADDI
	case OpcodeADDIU:
		inst.Op = OpADDIU
	case OpcodeBEQ:
		inst.Op = OpBEQ
	case OpcodeBNE:
		inst.Op = OpBNE
	case OpcodeLUI:
		inst.Op = OpLUI
	case OpcodeLW:
		inst.Op = OpLW
	case OpcodeSW:
		inst.Op = OpSW
	case OpcodeORI:
		inst.Op = OpORI
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

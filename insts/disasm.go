package insts

import (
	"fmt"
	"strings"
)

// Placeholder text for words outside the supported set.
const (
	UnknownRType    = "unknown R-type instruction"
	UnknownOpcode   = "unknown instruction"
	UnknownSpecial2 = "unknown mul variant"
)

// RegNames holds the conventional symbolic name of every general-purpose
// register, indexed by register number.
var RegNames = [32]string{
	"$zero", "$at",
	"$v0", "$v1",
	"$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3",
	"$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3",
	"$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9",
	"$k0", "$k1",
	"$gp", "$sp", "$fp", "$ra",
}

// RegName returns the symbolic name of a register. Only the low 5 bits of
// reg are used.
func RegName(reg uint8) string {
	return RegNames[reg&0x1F]
}

var mnemonics = map[Op]string{
	OpADD:     "add",
	OpADDU:    "addu",
	OpSLT:     "slt",
	OpSLL:     "sll",
	OpJR:      "jr",
	OpSYSCALL: "syscall",
	OpADDI:    "addi",
	OpADDIU:   "addiu",
	OpBEQ:     "beq",
	OpBNE:     "bne",
	OpJ:       "j",
	OpJAL:     "jal",
	OpLUI:     "lui",
	OpLW:      "lw",
	OpSW:      "sw",
	OpORI:     "ori",
	OpMUL:     "mul",
}

// Mnemonic returns the assembler mnemonic of op, or "" for OpUnknown.
func (op Op) Mnemonic() string {
	return mnemonics[op]
}

// Disassembler renders decoded instructions as assembler text.
type Disassembler struct{}

// NewDisassembler creates a new MIPS32 disassembler.
func NewDisassembler() *Disassembler {
	return &Disassembler{}
}

// Render formats inst, located at pc, as "mnemonic operands". Jump targets
// are computed from pc exactly as execution does. Render never fails.
func (d *Disassembler) Render(inst *Instruction, pc uint32) string {
	if inst.Op == OpUnknown {
		return unknownText(inst.Format)
	}

	var b strings.Builder
	b.WriteString(inst.Op.Mnemonic())

	switch inst.Op {
	case OpADD, OpADDU, OpSLT, OpMUL:
		fmt.Fprintf(&b, " %s, %s, %s",
			RegName(inst.Rd), RegName(inst.Rs), RegName(inst.Rt))
	case OpSLL:
		fmt.Fprintf(&b, " %s, %s, %d",
			RegName(inst.Rd), RegName(inst.Rt), inst.Shamt)
	case OpJR:
		fmt.Fprintf(&b, " %s", RegName(inst.Rs))
	case OpSYSCALL:
	case OpADDI, OpADDIU:
		fmt.Fprintf(&b, " %s, %s, %d",
			RegName(inst.Rt), RegName(inst.Rs), inst.SignExtImm())
	case OpBEQ, OpBNE:
		fmt.Fprintf(&b, " %s, %s, %d",
			RegName(inst.Rs), RegName(inst.Rt), inst.SignExtImm())
	case OpJ, OpJAL:
		fmt.Fprintf(&b, " %d", inst.JumpTarget(pc))
	case OpLUI:
		fmt.Fprintf(&b, " %s, %d", RegName(inst.Rt), inst.Imm)
	case OpORI:
		fmt.Fprintf(&b, " %s, %s, %d",
			RegName(inst.Rt), RegName(inst.Rs), inst.ZeroExtImm())
	case OpLW, OpSW:
		fmt.Fprintf(&b, " %s, %d(%s)",
			RegName(inst.Rt), inst.SignExtImm(), RegName(inst.Rs))
	}

	return b.String()
}

func unknownText(format Format) string {
	switch format {
	case FormatR:
		return UnknownRType
	case FormatSpecial2:
		return UnknownSpecial2
	default:
		return UnknownOpcode
	}
}

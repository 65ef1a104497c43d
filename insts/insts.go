// Package insts provides MIPS32 instruction definitions, decoding and
// disassembly.
//
// This package implements decoding of MIPS32 machine code into structured
// instruction representations. It supports:
//   - R-type: ADD, ADDU, SLT, SLL, JR, SYSCALL
//   - I-type: ADDI, ADDIU, BEQ, BNE, LUI, LW, SW, ORI
//   - J-type: J, JAL
//   - SPECIAL2: MUL
//
// Decoding is total: every 32-bit word yields an Instruction. Words outside
// the supported set decode with Op == OpUnknown.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x02324020) // add $t0, $s1, $s2
//	fmt.Println(insts.NewDisassembler().Render(inst, 0x400000))
package insts

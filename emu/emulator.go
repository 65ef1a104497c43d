// Package emu provides functional MIPS32 emulation.
package emu

import (
	"errors"
	"fmt"

	"github.com/sarchlab/mipssim/insts"
)

// ErrMaxInstructions is returned once the configured instruction limit has
// been reached.
var ErrMaxInstructions = errors.New("max instructions reached")

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// PC is the address the instruction was fetched from.
	PC uint32

	// Word is the raw fetched instruction word.
	Word uint32

	// Inst is the decoded instruction.
	Inst *insts.Instruction

	// Disasm is the rendered instruction text.
	Disasm string

	// Unknown is true if the instruction is outside the supported set.
	// Such instructions have no effect.
	Unknown bool

	// Exited is true if the program terminated (via exit syscall).
	Exited bool

	// Err is set if the step could not run.
	Err error
}

// Stats holds execution counters.
type Stats struct {
	Instructions  uint64
	Unknown       uint64
	TakenBranches uint64
	Loads         uint64
	Stores        uint64
	Syscalls      uint64
}

// Emulator executes MIPS32 instructions functionally against a register
// file and memory that it does not own.
type Emulator struct {
	regFile        *RegFile
	memory         *Memory
	decoder        *insts.Decoder
	disasm         *insts.Disassembler
	syscallHandler SyscallHandler
	observer       AccessObserver

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	stats           Stats
	maxInstructions uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithSyscallHandler sets a custom syscall handler.
func WithSyscallHandler(handler SyscallHandler) EmulatorOption {
	return func(e *Emulator) {
		e.syscallHandler = handler
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithAccessObserver attaches an observer for fetches, loads and stores.
func WithAccessObserver(o AccessObserver) EmulatorOption {
	return func(e *Emulator) {
		e.observer = o
	}
}

// NewEmulator creates a new MIPS32 emulator operating on regFile and memory.
func NewEmulator(regFile *RegFile, memory *Memory, opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile: regFile,
		memory:  memory,
		decoder: insts.NewDecoder(),
		disasm:  insts.NewDisassembler(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.alu = NewALU(regFile)
	e.lsu = NewLoadStoreUnit(regFile, memory)
	e.lsu.observer = e.observer
	e.branchUnit = NewBranchUnit(regFile)

	if e.syscallHandler == nil {
		e.syscallHandler = NewDefaultSyscallHandler(regFile)
	}

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Stats returns the execution counters.
func (e *Emulator) Stats() Stats {
	return e.stats
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.stats.Instructions
}

// Step fetches, decodes and executes the instruction at PC.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.stats.Instructions >= e.maxInstructions {
		return StepResult{
			PC:  e.regFile.PC,
			Err: fmt.Errorf("%w (%d)", ErrMaxInstructions, e.maxInstructions),
		}
	}

	pc := e.regFile.PC
	if e.observer != nil {
		e.observer.Fetch(pc)
	}
	word := e.memory.Fetch(pc)
	inst := e.decoder.Decode(word)

	result := StepResult{
		PC:     pc,
		Word:   word,
		Inst:   inst,
		Disasm: e.disasm.Render(inst, pc),
	}

	// Default next PC; taken branches and jumps overwrite it.
	e.regFile.PC = pc + 4

	e.execute(inst, pc, &result)

	e.regFile.ClearZero()
	e.stats.Instructions++

	return result
}

// Run executes instructions until the program exits or the instruction limit
// is reached.
func (e *Emulator) Run() error {
	for {
		result := e.Step()
		if result.Err != nil {
			return result.Err
		}
		if result.Exited {
			return nil
		}
	}
}

// execute dispatches a decoded instruction to the execution units.
func (e *Emulator) execute(inst *insts.Instruction, pc uint32, result *StepResult) {
	switch inst.Op {
	case insts.OpADD, insts.OpADDU:
		e.alu.ADD(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSLT:
		e.alu.SLT(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSLL:
		e.alu.SLL(inst.Rd, inst.Rt, inst.Shamt)
	case insts.OpMUL:
		e.alu.MUL(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpADDI, insts.OpADDIU:
		e.alu.ADDImm(inst.Rt, inst.Rs, inst.SignExtImm())
	case insts.OpORI:
		e.alu.ORI(inst.Rt, inst.Rs, inst.ZeroExtImm())
	case insts.OpLUI:
		e.alu.LUI(inst.Rt, inst.Imm)
	case insts.OpLW:
		e.lsu.LW(inst.Rt, inst.Rs, inst.SignExtImm())
		e.stats.Loads++
	case insts.OpSW:
		e.lsu.SW(inst.Rt, inst.Rs, inst.SignExtImm())
		e.stats.Stores++
	case insts.OpBEQ:
		if e.branchUnit.BEQ(pc, inst.Rs, inst.Rt, inst.SignExtImm()) {
			e.stats.TakenBranches++
		}
	case insts.OpBNE:
		if e.branchUnit.BNE(pc, inst.Rs, inst.Rt, inst.SignExtImm()) {
			e.stats.TakenBranches++
		}
	case insts.OpJ:
		e.branchUnit.J(pc, inst.Address)
		e.stats.TakenBranches++
	case insts.OpJAL:
		e.branchUnit.JAL(pc, inst.Address)
		e.stats.TakenBranches++
	case insts.OpJR:
		e.branchUnit.JR(inst.Rs)
		e.stats.TakenBranches++
	case insts.OpSYSCALL:
		e.stats.Syscalls++
		result.Exited = e.syscallHandler.Handle().Exited
	default:
		result.Unknown = true
		e.stats.Unknown++
	}
}

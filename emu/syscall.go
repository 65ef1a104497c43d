// Package emu provides functional MIPS32 emulation.
package emu

// SyscallExit is the $v0 code that terminates the program.
// Other codes (print, read, sbrk, ...) are not implemented and do nothing.
const SyscallExit int32 = 10

// SyscallResult represents the result of a syscall execution.
type SyscallResult struct {
	// Exited is true if the syscall caused program termination.
	Exited bool
}

// SyscallHandler is the interface for handling MIPS syscalls.
type SyscallHandler interface {
	// Handle executes the syscall indicated by the register file state.
	// The syscall code is in $v0.
	Handle() SyscallResult
}

// DefaultSyscallHandler implements the exit-only convention.
type DefaultSyscallHandler struct {
	regFile *RegFile
}

// NewDefaultSyscallHandler creates a default syscall handler.
func NewDefaultSyscallHandler(regFile *RegFile) *DefaultSyscallHandler {
	return &DefaultSyscallHandler{regFile: regFile}
}

// Handle exits when $v0 == 10 and ignores every other code.
func (h *DefaultSyscallHandler) Handle() SyscallResult {
	if h.regFile.ReadReg(RegV0) == SyscallExit {
		return SyscallResult{Exited: true}
	}
	return SyscallResult{}
}

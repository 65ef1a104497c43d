package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/emu"
)

var _ = Describe("BranchUnit", func() {
	var (
		regFile    *emu.RegFile
		branchUnit *emu.BranchUnit
	)

	const pc = uint32(0x1000)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		regFile.PC = pc + 4 // fall-through already applied
		branchUnit = emu.NewBranchUnit(regFile)
	})

	Describe("BEQ", func() {
		It("should branch forward when equal", func() {
			taken := branchUnit.BEQ(pc, 0, 0, 3)

			Expect(taken).To(BeTrue())
			Expect(regFile.PC).To(Equal(pc + 16))
		})

		It("should branch backward with a negative offset", func() {
			regFile.WriteReg(8, 4)
			regFile.WriteReg(9, 4)

			branchUnit.BEQ(pc, 8, 9, -4)

			Expect(regFile.PC).To(Equal(pc + 4 - 16))
		})

		It("should fall through when not equal", func() {
			regFile.WriteReg(8, 1)

			taken := branchUnit.BEQ(pc, 8, 0, 3)

			Expect(taken).To(BeFalse())
			Expect(regFile.PC).To(Equal(pc + 4))
		})

		It("should scale the most negative offset", func() {
			regFile.PC = 0x40004
			branchUnit.BEQ(0x40000, 0, 0, -32768)

			Expect(regFile.PC).To(Equal(uint32(0x40004 - 0x20000)))
		})
	})

	Describe("BNE", func() {
		It("should branch when not equal", func() {
			regFile.WriteReg(8, 1)

			taken := branchUnit.BNE(pc, 8, 0, 2)

			Expect(taken).To(BeTrue())
			Expect(regFile.PC).To(Equal(pc + 12))
		})

		It("should fall through when equal", func() {
			taken := branchUnit.BNE(pc, 8, 9, 2)

			Expect(taken).To(BeFalse())
			Expect(regFile.PC).To(Equal(pc + 4))
		})
	})

	Describe("J", func() {
		It("should keep the upper bits of pc+4", func() {
			branchUnit.J(0x10000000, 0x40)

			Expect(regFile.PC).To(Equal(uint32(0x10000100)))
		})
	})

	Describe("JAL", func() {
		It("should link the following address and jump", func() {
			branchUnit.JAL(pc, 0x800)

			Expect(regFile.ReadReg(emu.RegRA)).To(Equal(int32(pc + 4)))
			Expect(regFile.PC).To(Equal(uint32(0x2000)))
		})
	})

	Describe("JR", func() {
		It("should jump to the register value", func() {
			regFile.WriteReg(emu.RegRA, 0x3000)

			branchUnit.JR(emu.RegRA)

			Expect(regFile.PC).To(Equal(uint32(0x3000)))
		})
	})
})

var _ = Describe("Control flow through the emulator", func() {
	var (
		regFile *emu.RegFile
		memory  *emu.Memory
		e       *emu.Emulator
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		memory = emu.NewMemory()
		e = emu.NewEmulator(regFile, memory)
	})

	It("should take beq $zero,$zero to A+16", func() {
		memory.Write32(0x400000, int32(encodeI(4, 0, 0, 3)))
		regFile.PC = 0x400000

		e.Step()

		Expect(regFile.PC).To(Equal(uint32(0x400010)))
	})

	It("should execute the jal target next, not the fall-through", func() {
		// 0x1000: jal 0x1010
		// 0x1004: addiu $t0, $zero, 1   (skipped)
		// 0x1010: addiu $t1, $zero, 2
		memory.Write32(0x1000, int32(encodeJ(3, 0x1010)))
		memory.Write32(0x1004, int32(encodeI(9, 0, 8, 1)))
		memory.Write32(0x1010, int32(encodeI(9, 0, 9, 2)))
		regFile.PC = 0x1000

		e.Step()
		Expect(regFile.ReadReg(emu.RegRA)).To(Equal(int32(0x1004)))
		Expect(regFile.PC).To(Equal(uint32(0x1010)))

		next := e.Step()
		Expect(next.PC).To(Equal(uint32(0x1010)))
		Expect(regFile.ReadReg(8)).To(Equal(int32(0)))
		Expect(regFile.ReadReg(9)).To(Equal(int32(2)))
	})

	It("should return through jr $ra", func() {
		// 0x1000: jal 0x1008
		// 0x1004: syscall
		// 0x1008: addiu $v0, $zero, 10
		// 0x100C: jr $ra
		memory.Write32(0x1000, int32(encodeJ(3, 0x1008)))
		memory.Write32(0x1004, int32(encodeR(0, 0, 0, 0, 12)))
		memory.Write32(0x1008, int32(encodeI(9, 0, 2, 10)))
		memory.Write32(0x100C, int32(encodeR(31, 0, 0, 0, 8)))
		regFile.PC = 0x1000

		Expect(e.Run()).To(Succeed())
		Expect(e.InstructionCount()).To(Equal(uint64(4)))
	})
})

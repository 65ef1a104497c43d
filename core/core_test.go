package core_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/core"
	"github.com/sarchlab/mipssim/emu"
	"github.com/sarchlab/mipssim/loader"
	"github.com/sarchlab/mipssim/trace"
)

const (
	textBase = uint32(0x400000)
	dataBase = uint32(0x10010000)
	stackTop = uint32(0x7FFFF000)
)

var _ = Describe("Core", func() {
	var (
		memory *emu.Memory
		rec    *trace.Recorder
	)

	newCore := func(data []int32, text []uint32, opts ...emu.EmulatorOption) *core.Core {
		prog := &loader.Program{
			Header: loader.Header{
				InitialPC: textBase,
				DataBase:  dataBase,
				InitialSP: stackTop,
				NumData:   uint32(len(data)),
			},
			Data: data,
			Text: text,
		}
		prog.LoadInto(memory)
		return core.NewCore(memory, core.LayoutOf(prog), rec, opts...)
	}

	BeforeEach(func() {
		memory = emu.NewMemory()
		rec = &trace.Recorder{}
	})

	Describe("NewCore", func() {
		It("should start at the initial PC with only $sp set", func() {
			c := newCore(nil, []uint32{syscall()})

			Expect(c.RegFile().PC).To(Equal(textBase))
			for i := uint8(0); i < emu.NumRegs; i++ {
				if i == emu.RegSP {
					Expect(c.RegFile().ReadReg(i)).To(Equal(int32(stackTop)))
				} else {
					Expect(c.RegFile().ReadReg(i)).To(Equal(int32(0)))
				}
			}
			Expect(c.Halted()).To(BeFalse())
		})
	})

	Describe("Run", func() {
		It("should halt after one cycle for syscall with $v0 = 10", func() {
			c := newCore(nil, []uint32{syscall()})
			c.RegFile().WriteReg(emu.RegV0, 10)

			Expect(c.Run()).To(Succeed())

			Expect(c.Halted()).To(BeTrue())
			Expect(rec.Listings).To(HaveLen(1))
			Expect(rec.Cycles).To(HaveLen(1))
			Expect(rec.Cycles[0].Number).To(Equal(uint64(1)))
			Expect(rec.Cycles[0].Disasm).To(Equal("syscall"))
			Expect(c.Stats().Cycles).To(Equal(uint64(1)))
		})

		It("should keep running when $v0 is not 10", func() {
			c := newCore(nil, []uint32{syscall()})
			c.RegFile().WriteReg(emu.RegV0, 4)

			running, err := c.RunCycles(100)

			Expect(err).NotTo(HaveOccurred())
			Expect(running).To(BeTrue())
			Expect(rec.Cycles).To(HaveLen(100))
			Expect(rec.Cycles[99].Number).To(Equal(uint64(100)))
		})

		It("should trace registers, data and stack after each instruction", func() {
			c := newCore([]int32{5, 6}, []uint32{
				encodeI(9, 29, 29, -8),    // addiu $sp, $sp, -8
				encodeI(35, 0, 0, 0),      // lw $zero, 0($zero)
				encodeI(15, 0, 1, 0x1001), // lui $at, 0x1001
				encodeI(35, 1, 8, 4),      // lw $t0, 4($at)
				encodeI(43, 29, 8, 4),     // sw $t0, 4($sp)
				encodeI(43, 1, 8, 0),      // sw $t0, 0($at)
				encodeI(9, 0, 2, 10),      // addiu $v0, $zero, 10
				syscall(),
			})

			Expect(c.Run()).To(Succeed())
			Expect(rec.Cycles).To(HaveLen(8))

			first := rec.Cycles[0]
			Expect(first.PC).To(Equal(textBase))
			Expect(first.Disasm).To(Equal("addiu $sp, $sp, -8"))
			Expect(first.Registers[29]).To(Equal(int32(stackTop - 8)))
			Expect(first.Stack).To(Equal([]trace.Word{
				{Addr: stackTop - 8, Value: 0},
				{Addr: stackTop - 4, Value: 0},
			}))

			fifth := rec.Cycles[4]
			Expect(fifth.Registers[8]).To(Equal(int32(6)))
			Expect(fifth.Stack[1]).To(Equal(trace.Word{Addr: stackTop - 4, Value: 6}))

			sixth := rec.Cycles[5]
			Expect(sixth.Data).To(Equal([]trace.Word{
				{Addr: dataBase, Value: 6},
				{Addr: dataBase + 4, Value: 6},
			}))

			for i, cyc := range rec.Cycles {
				Expect(cyc.Number).To(Equal(uint64(i + 1)))
				Expect(cyc.Registers[0]).To(Equal(int32(0)))
			}
		})

		It("should trace an empty stack when $sp is at its initial value", func() {
			c := newCore(nil, []uint32{encodeI(9, 0, 2, 10), syscall()})

			Expect(c.Run()).To(Succeed())
			Expect(rec.Cycles[0].Stack).To(BeEmpty())
			Expect(rec.Cycles[0].Data).To(BeEmpty())
		})

		It("should continue past unknown instructions", func() {
			c := newCore(nil, []uint32{
				encodeI(12, 0, 8, 1), // andi (unsupported)
				encodeI(9, 0, 2, 10),
				syscall(),
			})

			Expect(c.Run()).To(Succeed())
			Expect(rec.Cycles).To(HaveLen(3))
			Expect(rec.Cycles[0].Disasm).To(Equal("unknown instruction"))
			Expect(c.Stats().Unknown).To(Equal(uint64(1)))
		})

		It("should stop at the configured cycle cap", func() {
			c := newCore(nil, []uint32{encodeJ(2, textBase)}, emu.WithMaxInstructions(5))

			err := c.Run()

			Expect(errors.Is(err, emu.ErrMaxInstructions)).To(BeTrue())
			Expect(rec.Cycles).To(HaveLen(5))
		})

		It("should return writer errors", func() {
			writerErr := errors.New("sink closed")
			c := core.NewCore(memory, core.Layout{InitialPC: textBase}, &failingWriter{err: writerErr})
			memory.Write32(textBase, int32(syscall()))

			Expect(c.Run()).To(MatchError(writerErr))
		})
	})

	Describe("Tick", func() {
		It("should refuse to run after halting", func() {
			c := newCore(nil, []uint32{encodeI(9, 0, 2, 10), syscall()})

			running, err := c.RunCycles(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(running).To(BeFalse())

			Expect(c.Tick()).To(MatchError(core.ErrHalted))
			Expect(rec.Cycles).To(HaveLen(2))
		})
	})

	Describe("Listing", func() {
		It("should list data then disassembled text", func() {
			c := newCore([]int32{-1}, []uint32{
				encodeJ(3, textBase+8),
				encodeI(9, 0, 2, 10),
				syscall(),
			})

			l := c.Listing()

			Expect(l.InitialPC).To(Equal(textBase))
			Expect(l.DataBase).To(Equal(dataBase))
			Expect(l.InitialSP).To(Equal(stackTop))
			Expect(l.NumData).To(Equal(uint32(1)))
			Expect(l.Data).To(Equal([]trace.Word{{Addr: dataBase, Value: -1}}))
			Expect(l.Text).To(HaveLen(3))
			Expect(l.Text[0].Disasm).To(Equal("jal 4194312"))
			Expect(l.Text[1].Addr).To(Equal(textBase + 4))
			Expect(l.Text[2].Disasm).To(Equal("syscall"))
		})

		It("should skip text addresses that overlap the data segment", func() {
			memory.Write32(0x1000, int32(syscall()))
			memory.Write32(0x1004, 7)
			memory.Write32(0x1008, int32(syscall()))
			layout := core.Layout{InitialPC: 0x1000, DataBase: 0x1004, NumData: 1, TextWords: 3}

			l := core.NewCore(memory, layout, rec).Listing()

			Expect(l.Text).To(HaveLen(2))
			Expect(l.Text[0].Addr).To(Equal(uint32(0x1000)))
			Expect(l.Text[1].Addr).To(Equal(uint32(0x1008)))
		})
	})
})

type failingWriter struct {
	err error
}

func (w *failingWriter) WriteListing(*trace.Listing) error { return nil }
func (w *failingWriter) WriteCycle(*trace.Cycle) error     { return w.err }
func (w *failingWriter) Flush() error                      { return nil }

func syscall() uint32 {
	return 12
}

func encodeI(opcode, rs, rt uint32, imm int32) uint32 {
	return (opcode << 26) | (rs << 21) | (rt << 16) | (uint32(imm) & 0xFFFF)
}

func encodeJ(opcode, target uint32) uint32 {
	return (opcode << 26) | ((target >> 2) & 0x03FFFFFF)
}

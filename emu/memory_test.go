package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory()
	})

	It("should read unwritten addresses as zero", func() {
		Expect(memory.Read32(0x1000)).To(Equal(int32(0)))
		Expect(memory.Contains(0x1000)).To(BeFalse())
		Expect(memory.Len()).To(Equal(0))
	})

	It("should store signed words", func() {
		memory.Write32(0x2000, -1)
		Expect(memory.Read32(0x2000)).To(Equal(int32(-1)))
		Expect(memory.Fetch(0x2000)).To(Equal(uint32(0xFFFFFFFF)))
		Expect(memory.Contains(0x2000)).To(BeTrue())
	})

	It("should load contiguous words", func() {
		memory.LoadWords(0x100, []int32{1, 2, 3})
		Expect(memory.Read32(0x100)).To(Equal(int32(1)))
		Expect(memory.Read32(0x104)).To(Equal(int32(2)))
		Expect(memory.Read32(0x108)).To(Equal(int32(3)))
		Expect(memory.Addresses()).To(Equal([]uint32{0x100, 0x104, 0x108}))
	})

	It("should list addresses in ascending order", func() {
		memory.Write32(0x30, 1)
		memory.Write32(0x10, 1)
		memory.Write32(0x20, 1)
		Expect(memory.Addresses()).To(Equal([]uint32{0x10, 0x20, 0x30}))
	})
})

package loader_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/emu"
	"github.com/sarchlab/mipssim/loader"
)

var _ = Describe("Image Loader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "image-loader-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	Describe("Parse", func() {
		It("should read the header, data and text", func() {
			image := words(0x400000, 0x10010000, 0x7FFFEFFC, 2,
				0xFFFFFFFF, 7,
				0x2402000A, 0x0000000C)

			prog, err := loader.Parse(bytes.NewReader(image))

			Expect(err).NotTo(HaveOccurred())
			Expect(prog.InitialPC).To(Equal(uint32(0x400000)))
			Expect(prog.DataBase).To(Equal(uint32(0x10010000)))
			Expect(prog.InitialSP).To(Equal(uint32(0x7FFFEFFC)))
			Expect(prog.NumData).To(Equal(uint32(2)))
			Expect(prog.Data).To(Equal([]int32{-1, 7}))
			Expect(prog.Text).To(Equal([]uint32{0x2402000A, 0x0000000C}))
			Expect(prog.DataEnd()).To(Equal(uint32(0x10010008)))
			Expect(prog.TextEnd()).To(Equal(uint32(0x400008)))
		})

		It("should accept an empty data segment", func() {
			prog, err := loader.Parse(bytes.NewReader(words(0x1000, 0x2000, 0x3000, 0, 0xC)))

			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Data).To(BeEmpty())
			Expect(prog.Text).To(HaveLen(1))
		})

		It("should reject a truncated header", func() {
			_, err := loader.Parse(bytes.NewReader(words(0x1000, 0x2000)))
			Expect(err).To(MatchError(loader.ErrTruncatedHeader))

			_, err = loader.Parse(bytes.NewReader(nil))
			Expect(err).To(MatchError(loader.ErrTruncatedHeader))
		})

		It("should reject a short data segment", func() {
			_, err := loader.Parse(bytes.NewReader(words(0x1000, 0x2000, 0x3000, 3, 1, 2)))
			Expect(err).To(MatchError(loader.ErrTruncatedData))
		})

		It("should reject an image without instructions", func() {
			_, err := loader.Parse(bytes.NewReader(words(0x1000, 0x2000, 0x3000, 1, 5)))
			Expect(err).To(MatchError(loader.ErrNoText))
		})

		It("should reject a trailing partial word", func() {
			image := append(words(0x1000, 0x2000, 0x3000, 0, 0xC), 0x00, 0x01)
			_, err := loader.Parse(bytes.NewReader(image))
			Expect(err).To(MatchError(loader.ErrPartialWord))
		})
	})

	Describe("Load", func() {
		It("should load an image from disk", func() {
			path := filepath.Join(tempDir, "prog.bin")
			Expect(os.WriteFile(path, words(0x1000, 0x2000, 0x3000, 0, 0xC), 0644)).To(Succeed())

			prog, err := loader.Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(prog.InitialPC).To(Equal(uint32(0x1000)))
		})

		It("should report a missing file", func() {
			_, err := loader.Load(filepath.Join(tempDir, "missing.bin"))
			Expect(err).To(HaveOccurred())
		})

		It("should wrap parse errors with the path", func() {
			path := filepath.Join(tempDir, "short.bin")
			Expect(os.WriteFile(path, []byte{1, 2, 3}, 0644)).To(Succeed())

			_, err := loader.Load(path)

			Expect(err).To(MatchError(loader.ErrTruncatedHeader))
			Expect(err.Error()).To(ContainSubstring("short.bin"))
		})
	})

	Describe("LoadInto", func() {
		It("should place data and text at their base addresses", func() {
			prog := &loader.Program{
				Header: loader.Header{InitialPC: 0x400000, DataBase: 0x10010000, NumData: 2},
				Data:   []int32{11, -22},
				Text:   []uint32{0x2402000A, 0x0000000C},
			}
			memory := emu.NewMemory()

			prog.LoadInto(memory)

			Expect(memory.Read32(0x10010000)).To(Equal(int32(11)))
			Expect(memory.Read32(0x10010004)).To(Equal(int32(-22)))
			Expect(memory.Fetch(0x400000)).To(Equal(uint32(0x2402000A)))
			Expect(memory.Fetch(0x400004)).To(Equal(uint32(0x0000000C)))
			Expect(memory.Len()).To(Equal(4))
		})
	})

	Describe("Encode", func() {
		It("should produce an image Parse accepts", func() {
			prog := &loader.Program{
				Header: loader.Header{InitialPC: 0x100, DataBase: 0x200, InitialSP: 0x300, NumData: 1},
				Data:   []int32{-5},
				Text:   []uint32{0xC},
			}
			var buf bytes.Buffer
			Expect(prog.Encode(&buf)).To(Succeed())
			Expect(buf.Bytes()).To(Equal(words(0x100, 0x200, 0x300, 1, 0xFFFFFFFB, 0xC)))
		})
	})
})

func words(ws ...uint32) []byte {
	buf := make([]byte, 4*len(ws))
	for i, w := range ws {
		binary.BigEndian.PutUint32(buf[4*i:], w)
	}
	return buf
}

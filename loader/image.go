// Package loader provides program image loading for the MIPS32 simulator.
//
// An image is a sequence of big-endian 32-bit words:
//
//	[0] initial program counter
//	[1] data segment base address
//	[2] initial stack pointer
//	[3] number N of data words
//	N data words, loaded from [1]
//	remaining words, loaded from [0] (the instruction stream)
package loader

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/mipssim/emu"
)

// HeaderWords is the number of words in the image header.
const HeaderWords = 4

// Image format errors.
var (
	ErrTruncatedHeader = errors.New("truncated image header")
	ErrTruncatedData   = errors.New("truncated data segment")
	ErrNoText          = errors.New("missing instruction stream")
	ErrPartialWord     = errors.New("trailing partial word")
)

// Header holds the scalar values at the start of an image.
type Header struct {
	// InitialPC is the address of the first instruction.
	InitialPC uint32
	// DataBase is the address of the first data word.
	DataBase uint32
	// InitialSP is the initial value of $sp.
	InitialSP uint32
	// NumData is the number of data words.
	NumData uint32
}

// Program represents a parsed image ready for loading into memory.
type Program struct {
	Header
	// Data holds the data segment words.
	Data []int32
	// Text holds the instruction words.
	Text []uint32
}

// Load reads and parses the image at path.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return prog, nil
}

// Parse reads an image from r.
func Parse(r io.Reader) (*Program, error) {
	var header [HeaderWords]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, wrapShort(ErrTruncatedHeader, err)
	}

	prog := &Program{
		Header: Header{
			InitialPC: header[0],
			DataBase:  header[1],
			InitialSP: header[2],
			NumData:   header[3],
		},
	}

	for i := uint32(0); i < prog.NumData; i++ {
		w, err := readWord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: word %d of %d: %v",
				ErrTruncatedData, i, prog.NumData, err)
		}
		prog.Data = append(prog.Data, int32(w))
	}

	for {
		w, err := readWord(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapShort(ErrPartialWord, err)
		}
		prog.Text = append(prog.Text, w)
	}

	if len(prog.Text) == 0 {
		return nil, ErrNoText
	}

	return prog, nil
}

// LoadInto writes the data segment and instruction stream into memory.
func (p *Program) LoadInto(memory *emu.Memory) {
	memory.LoadWords(p.DataBase, p.Data)

	addr := p.InitialPC
	for _, w := range p.Text {
		memory.Write32(addr, int32(w))
		addr += 4
	}
}

// TextEnd returns the address just past the last instruction.
func (p *Program) TextEnd() uint32 {
	return p.InitialPC + uint32(len(p.Text))*4
}

// DataEnd returns the address just past the last data word.
func (p *Program) DataEnd() uint32 {
	return p.DataBase + p.NumData*4
}

// Encode writes p back out in image format.
func (p *Program) Encode(w io.Writer) error {
	header := [HeaderWords]uint32{
		p.InitialPC, p.DataBase, p.InitialSP, uint32(len(p.Data)),
	}
	if err := binary.Write(w, binary.BigEndian, header); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, p.Data); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, p.Text)
}

func readWord(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func wrapShort(kind, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return kind
	}
	return fmt.Errorf("%w: %v", kind, err)
}

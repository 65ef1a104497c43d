// Package core provides the simulation driver.
// It owns the register file and memory for a run, steps the emulator one
// instruction per cycle and hands a trace record for every cycle to a
// trace.Writer.
package core

import (
	"errors"

	"github.com/sarchlab/mipssim/emu"
	"github.com/sarchlab/mipssim/insts"
	"github.com/sarchlab/mipssim/loader"
	"github.com/sarchlab/mipssim/trace"
)

// ErrHalted is returned by Tick once the program has exited.
var ErrHalted = errors.New("core is halted")

// Layout describes where a loaded program lives in memory.
type Layout struct {
	InitialPC uint32
	DataBase  uint32
	InitialSP uint32
	NumData   uint32
	// TextWords is the length of the instruction stream.
	TextWords uint32
}

// LayoutOf returns the layout of a parsed program image.
func LayoutOf(p *loader.Program) Layout {
	return Layout{
		InitialPC: p.InitialPC,
		DataBase:  p.DataBase,
		InitialSP: p.InitialSP,
		NumData:   p.NumData,
		TextWords: uint32(len(p.Text)),
	}
}

// DataEnd returns the address just past the data segment.
func (l Layout) DataEnd() uint32 {
	return l.DataBase + l.NumData*4
}

// Stats holds run statistics for the core.
type Stats struct {
	emu.Stats
	// Cycles is the number of cycles simulated.
	Cycles uint64
}

// Core drives one simulation run.
type Core struct {
	regFile  *emu.RegFile
	memory   *emu.Memory
	emulator *emu.Emulator
	decoder  *insts.Decoder
	disasm   *insts.Disassembler
	writer   trace.Writer

	layout Layout
	cycle  uint64 // number of the next cycle, starting at 1
	halted bool
}

// NewCore creates a Core for a program already loaded into memory. All
// registers start at zero except $sp, which is set to layout.InitialSP.
func NewCore(
	memory *emu.Memory,
	layout Layout,
	writer trace.Writer,
	opts ...emu.EmulatorOption,
) *Core {
	if writer == nil {
		writer = trace.Discard
	}

	regFile := &emu.RegFile{PC: layout.InitialPC}
	regFile.WriteReg(emu.RegSP, int32(layout.InitialSP))

	return &Core{
		regFile:  regFile,
		memory:   memory,
		emulator: emu.NewEmulator(regFile, memory, opts...),
		decoder:  insts.NewDecoder(),
		disasm:   insts.NewDisassembler(),
		writer:   writer,
		layout:   layout,
		cycle:    1,
	}
}

// RegFile returns the register file.
func (c *Core) RegFile() *emu.RegFile {
	return c.regFile
}

// Memory returns the memory.
func (c *Core) Memory() *emu.Memory {
	return c.memory
}

// Halted returns true once the exit syscall has executed.
func (c *Core) Halted() bool {
	return c.halted
}

// Stats returns statistics for the run so far.
func (c *Core) Stats() Stats {
	return Stats{
		Stats:  c.emulator.Stats(),
		Cycles: c.cycle - 1,
	}
}

// Listing builds the static listing of the data segment followed by the
// instruction segment.
func (c *Core) Listing() *trace.Listing {
	l := &trace.Listing{
		InitialPC: c.layout.InitialPC,
		DataBase:  c.layout.DataBase,
		InitialSP: c.layout.InitialSP,
		NumData:   c.layout.NumData,
		Data:      c.dumpRange(c.layout.DataBase, c.layout.DataEnd()),
	}

	addr := c.layout.InitialPC
	for i := uint32(0); i < c.layout.TextWords; i, addr = i+1, addr+4 {
		if c.inData(addr) {
			continue
		}
		word := c.memory.Fetch(addr)
		l.Text = append(l.Text, trace.Line{
			Addr:   addr,
			Word:   word,
			Disasm: c.disasm.Render(c.decoder.Decode(word), addr),
		})
	}

	return l
}

// WriteListing sends the static listing to the trace writer.
func (c *Core) WriteListing() error {
	return c.writer.WriteListing(c.Listing())
}

// Tick executes one instruction and writes its trace record.
func (c *Core) Tick() error {
	if c.halted {
		return ErrHalted
	}

	result := c.emulator.Step()
	if result.Err != nil {
		return result.Err
	}

	record := c.snapshot(&result)
	c.cycle++
	if result.Exited {
		c.halted = true
	}

	return c.writer.WriteCycle(record)
}

// Run writes the listing and then ticks until the program halts.
func (c *Core) Run() error {
	if err := c.WriteListing(); err != nil {
		return err
	}

	for !c.halted {
		if err := c.Tick(); err != nil {
			_ = c.writer.Flush()
			return err
		}
	}

	return c.writer.Flush()
}

// RunCycles executes at most the given number of cycles.
// Returns true if still running, false if halted.
func (c *Core) RunCycles(cycles uint64) (bool, error) {
	for i := uint64(0); i < cycles && !c.halted; i++ {
		if err := c.Tick(); err != nil {
			return !c.halted, err
		}
	}
	return !c.halted, nil
}

// snapshot assembles the trace record for the instruction just executed.
func (c *Core) snapshot(result *emu.StepResult) *trace.Cycle {
	sp := uint32(c.regFile.ReadReg(emu.RegSP))

	return &trace.Cycle{
		Number:    c.cycle,
		PC:        result.PC,
		Word:      result.Word,
		Disasm:    result.Disasm,
		Registers: c.regFile.Snapshot(),
		Data:      c.dumpRange(c.layout.DataBase, c.layout.DataEnd()),
		Stack:     c.dumpRange(sp, c.layout.InitialSP),
	}
}

// dumpRange returns every word in [from, to). Unwritten words read as 0.
func (c *Core) dumpRange(from, to uint32) []trace.Word {
	var words []trace.Word
	for addr := from; addr < to; addr += 4 {
		words = append(words, trace.Word{Addr: addr, Value: c.memory.Read32(addr)})
		if addr+4 < addr {
			break
		}
	}
	return words
}

func (c *Core) inData(addr uint32) bool {
	return addr >= c.layout.DataBase && addr < c.layout.DataEnd()
}

// Package emu provides functional MIPS32 emulation.
package emu

// AccessObserver is notified of every memory access the emulator performs.
// It cannot change the outcome of an access.
type AccessObserver interface {
	// Fetch is called for every instruction fetch.
	Fetch(addr uint32)
	// Load is called for every data load.
	Load(addr uint32)
	// Store is called for every data store.
	Store(addr uint32)
}

// LoadStoreUnit implements MIPS32 word loads and stores.
type LoadStoreUnit struct {
	regFile  *RegFile
	memory   *Memory
	observer AccessObserver
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// EffectiveAddress returns rs + offset, wrapping within 32 bits.
func (lsu *LoadStoreUnit) EffectiveAddress(rs uint8, offset int32) uint32 {
	return uint32(lsu.regFile.ReadReg(rs)) + uint32(offset)
}

// LW performs a word load: rt = mem[rs + offset]
func (lsu *LoadStoreUnit) LW(rt, rs uint8, offset int32) uint32 {
	addr := lsu.EffectiveAddress(rs, offset)
	if lsu.observer != nil {
		lsu.observer.Load(addr)
	}
	lsu.regFile.WriteReg(rt, lsu.memory.Read32(addr))
	return addr
}

// SW performs a word store: mem[rs + offset] = rt
func (lsu *LoadStoreUnit) SW(rt, rs uint8, offset int32) uint32 {
	addr := lsu.EffectiveAddress(rs, offset)
	if lsu.observer != nil {
		lsu.observer.Store(addr)
	}
	lsu.memory.Write32(addr, lsu.regFile.ReadReg(rt))
	return addr
}

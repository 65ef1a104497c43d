package emu

import "sort"

// Memory is a sparse word store keyed by byte address. Addresses that were
// never written read as zero. Instructions and data share one address space.
type Memory struct {
	words map[uint32]int32
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{words: make(map[uint32]int32)}
}

// Read32 returns the word stored at addr, or 0 if nothing was written there.
func (m *Memory) Read32(addr uint32) int32 {
	return m.words[addr]
}

// Write32 stores a word at addr.
func (m *Memory) Write32(addr uint32, value int32) {
	m.words[addr] = value
}

// Fetch returns the raw instruction word at addr.
func (m *Memory) Fetch(addr uint32) uint32 {
	return uint32(m.words[addr])
}

// Contains reports whether addr has ever been written.
func (m *Memory) Contains(addr uint32) bool {
	_, ok := m.words[addr]
	return ok
}

// Len returns the number of written words.
func (m *Memory) Len() int {
	return len(m.words)
}

// LoadWords writes words contiguously starting at base.
func (m *Memory) LoadWords(base uint32, words []int32) {
	addr := base
	for _, w := range words {
		m.words[addr] = w
		addr += 4
	}
}

// Addresses returns all written addresses in ascending order.
func (m *Memory) Addresses() []uint32 {
	addrs := make([]uint32, 0, len(m.words))
	for a := range m.words {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

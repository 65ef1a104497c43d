package cache

import (
	"fmt"
	"io"
)

// Profiler feeds emulator memory accesses into an instruction cache and a
// data cache. It satisfies emu.AccessObserver.
type Profiler struct {
	ICache *Cache
	DCache *Cache
}

// NewProfiler creates a profiler with the given cache geometries.
func NewProfiler(icache, dcache Config) *Profiler {
	return &Profiler{
		ICache: New(icache),
		DCache: New(dcache),
	}
}

// Fetch records an instruction fetch.
func (p *Profiler) Fetch(addr uint32) {
	p.ICache.Read(addr)
}

// Load records a data load.
func (p *Profiler) Load(addr uint32) {
	p.DCache.Read(addr)
}

// Store records a data store. Stores into cached instruction lines
// invalidate them so self-modifying code is seen as a refetch.
func (p *Profiler) Store(addr uint32) {
	p.DCache.Write(addr)
	p.ICache.Invalidate(addr)
}

// Report writes a short hit/miss summary for both caches.
func (p *Profiler) Report(w io.Writer) {
	for _, c := range []struct {
		name  string
		cache *Cache
	}{{"I-cache", p.ICache}, {"D-cache", p.DCache}} {
		s := c.cache.Stats()
		fmt.Fprintf(w, "%s: %d reads, %d writes, %d hits, %d misses (%.1f%% hit rate), %d evictions\n",
			c.name, s.Reads, s.Writes, s.Hits, s.Misses, 100*s.HitRate(), s.Evictions)
	}
}

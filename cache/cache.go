// Package cache provides an access profiler that replays instruction fetches
// and data accesses through set-associative caches built on Akita cache
// components. Memory stays the single source of truth; the caches only track
// tags, so profiling never changes what a program computes.
package cache

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Config holds cache geometry.
type Config struct {
	// Size in bytes
	Size int `json:"size"`
	// Associativity (number of ways)
	Associativity int `json:"associativity"`
	// BlockSize in bytes (cache line size)
	BlockSize int `json:"block_size"`
}

// DefaultICacheConfig returns a small direct-mapped instruction cache.
func DefaultICacheConfig() Config {
	return Config{
		Size:          4 * 1024,
		Associativity: 1,
		BlockSize:     16,
	}
}

// DefaultDCacheConfig returns a small 2-way data cache.
func DefaultDCacheConfig() Config {
	return Config{
		Size:          4 * 1024,
		Associativity: 2,
		BlockSize:     16,
	}
}

// Validate checks that the geometry describes at least one whole set.
func (c Config) Validate() error {
	if c.Size <= 0 || c.Associativity <= 0 || c.BlockSize <= 0 {
		return fmt.Errorf("cache size, associativity and block_size must be > 0")
	}
	if c.BlockSize%4 != 0 {
		return fmt.Errorf("block_size must be a multiple of 4, got %d", c.BlockSize)
	}
	if c.Size%(c.Associativity*c.BlockSize) != 0 {
		return fmt.Errorf("size %d is not a multiple of associativity*block_size", c.Size)
	}
	return nil
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Reads     uint64 `json:"reads"`
	Writes    uint64 `json:"writes"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// HitRate returns hits / (hits + misses), or 0 when there were no accesses.
func (s Statistics) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a write-allocate tag store using an Akita directory.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl
	stats     Statistics
}

// New creates a new cache with the given configuration.
func New(config Config) *Cache {
	numSets := config.Size / (config.Associativity * config.BlockSize)

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// Read records a read of addr and reports whether it hit.
func (c *Cache) Read(addr uint32) bool {
	c.stats.Reads++
	return c.access(addr, false)
}

// Write records a write of addr and reports whether it hit.
func (c *Cache) Write(addr uint32) bool {
	c.stats.Writes++
	return c.access(addr, true)
}

func (c *Cache) access(addr uint32, isWrite bool) bool {
	blockAddr := c.blockAddr(addr)

	block := c.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)
		if isWrite {
			block.IsDirty = true
		}
		return true
	}

	c.stats.Misses++

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return false
	}
	if victim.IsValid {
		c.stats.Evictions++
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = isWrite
	c.directory.Visit(victim)

	return false
}

// Invalidate marks the line holding addr as invalid.
func (c *Cache) Invalidate(addr uint32) {
	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block != nil && block.IsValid {
		block.IsValid = false
		block.IsDirty = false
	}
}

// Reset invalidates all lines and clears statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}

func (c *Cache) blockAddr(addr uint32) uint64 {
	bs := uint64(c.config.BlockSize)
	return (uint64(addr) / bs) * bs
}

// Package cache models how a data cache would behave under the memory
// traffic of an emu.Emulator. Lines are tracked in an Akita
// set-associative directory by tag and dirty bit only; emu.Memory stays
// the single copy of the data, so attaching a model never changes what the
// emulator computes.
package cache

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Config describes the geometry and timing of the modelled cache.
type Config struct {
	// Size in bytes
	Size int
	// Associativity (number of ways)
	Associativity int
	// LineSize in bytes, a power of two
	LineSize int

	// HitLatency in cycles
	HitLatency uint64
	// MissLatency in cycles, including the line fill
	MissLatency uint64
	// WritebackLatency is added to a miss that evicts a dirty line.
	WritebackLatency uint64
}

// DefaultL1DConfig returns a typical x86-64 L1 data cache:
// 32KB, 8-way, 64B lines, 4-cycle load-to-use.
func DefaultL1DConfig() Config {
	return Config{
		Size:             32 * 1024,
		Associativity:    8,
		LineSize:         64,
		HitLatency:       4,
		MissLatency:      14,
		WritebackLatency: 10,
	}
}

// NumSets returns the number of sets the geometry yields.
func (c Config) NumSets() int {
	return c.Size / (c.Associativity * c.LineSize)
}

// Validate checks that the geometry describes at least one whole set.
func (c Config) Validate() error {
	if c.Associativity <= 0 {
		return fmt.Errorf("associativity must be > 0")
	}
	if c.LineSize <= 0 || c.LineSize&(c.LineSize-1) != 0 {
		return fmt.Errorf("line size %d is not a power of two", c.LineSize)
	}
	if c.Size <= 0 || c.Size%(c.Associativity*c.LineSize) != 0 {
		return fmt.Errorf("size %d is not a multiple of %d ways x %dB lines",
			c.Size, c.Associativity, c.LineSize)
	}
	return nil
}

// Outcome describes one access to the model.
type Outcome struct {
	Hit    bool
	Cycles uint64

	// Evicted is set when the access displaced a valid line, whose
	// line-aligned address is EvictedLine.
	Evicted     bool
	EvictedLine uint64
	// Writeback is set when the displaced line was dirty.
	Writeback bool
}

// Statistics accumulates Outcomes.
type Statistics struct {
	Loads      uint64
	Stores     uint64
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Writebacks uint64
	Cycles     uint64
}

// Accesses returns Loads + Stores.
func (s Statistics) Accesses() uint64 {
	return s.Loads + s.Stores
}

// HitRate returns Hits / (Hits + Misses), or 0 before any access.
func (s Statistics) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a write-back, write-allocate cache model with LRU replacement.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl
	stats     Statistics
}

// New creates an empty cache model.
func New(config Config) (*Cache, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache config: %w", err)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			config.NumSets(),
			config.Associativity,
			config.LineSize,
			akitacache.NewLRUVictimFinder(),
		),
	}, nil
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns the accumulated statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// LineAddr returns the address of the line holding addr.
func (c *Cache) LineAddr(addr uint64) uint64 {
	return addr &^ uint64(c.config.LineSize-1)
}

// Contains reports whether the line holding addr is resident.
func (c *Cache) Contains(addr uint64) bool {
	block := c.directory.Lookup(0, c.LineAddr(addr))
	return block != nil && block.IsValid
}

// Access records a load or store touching the line that holds addr. A
// store marks the line dirty; a miss allocates the line in either case.
func (c *Cache) Access(addr uint64, write bool) Outcome {
	if write {
		c.stats.Stores++
	} else {
		c.stats.Loads++
	}

	line := c.LineAddr(addr)

	var out Outcome
	block := c.directory.Lookup(0, line)
	if block != nil && block.IsValid {
		out.Hit = true
		out.Cycles = c.config.HitLatency
		c.stats.Hits++
	} else {
		c.stats.Misses++
		block, out = c.allocate(line)
	}

	if write {
		block.IsDirty = true
	}
	c.directory.Visit(block)

	c.stats.Cycles += out.Cycles
	return out
}

func (c *Cache) allocate(line uint64) (*akitacache.Block, Outcome) {
	out := Outcome{Cycles: c.config.MissLatency}

	victim := c.directory.FindVictim(line)
	if victim.IsValid {
		c.stats.Evictions++
		out.Evicted = true
		out.EvictedLine = victim.Tag

		if victim.IsDirty {
			c.stats.Writebacks++
			out.Writeback = true
			out.Cycles += c.config.WritebackLatency
		}
	}

	victim.Tag = line
	victim.IsValid = true
	victim.IsDirty = false

	return victim, out
}

// Flush invalidates every line and returns how many were dirty. Each dirty
// line counts as a writeback.
func (c *Cache) Flush() int {
	dirty := 0
	for _, set := range c.directory.GetSets() {
		for _, block := range set.Blocks {
			if block.IsValid && block.IsDirty {
				dirty++
			}
			block.IsValid = false
			block.IsDirty = false
		}
	}

	c.stats.Writebacks += uint64(dirty)
	c.stats.Cycles += uint64(dirty) * c.config.WritebackLatency
	return dirty
}

// Reset invalidates every line without writeback and clears statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}

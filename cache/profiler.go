package cache

// Profiler feeds an emulator's memory traffic into a Cache model. It
// implements emu.AccessObserver; attach it with emu.WithAccessObserver.
// An access that straddles a line boundary counts once per line touched.
type Profiler struct {
	cache *Cache
}

// NewProfiler creates a profiler modelling a cache with the given config.
func NewProfiler(config Config) (*Profiler, error) {
	c, err := New(config)
	if err != nil {
		return nil, err
	}
	return &Profiler{cache: c}, nil
}

// ObserveRead records a load of size bytes at addr.
func (p *Profiler) ObserveRead(addr uint64, size int) {
	p.forEachLine(addr, size, false)
}

// ObserveWrite records a store of size bytes at addr.
func (p *Profiler) ObserveWrite(addr uint64, size int) {
	p.forEachLine(addr, size, true)
}

// Cache returns the underlying model.
func (p *Profiler) Cache() *Cache {
	return p.cache
}

// Stats returns the model's statistics.
func (p *Profiler) Stats() Statistics {
	return p.cache.Stats()
}

// Drain flushes the model so that lines still dirty at the end of a run
// are counted as writebacks, and returns the final statistics.
func (p *Profiler) Drain() Statistics {
	p.cache.Flush()
	return p.cache.Stats()
}

// Reset invalidates the model and clears its statistics.
func (p *Profiler) Reset() {
	p.cache.Reset()
}

func (p *Profiler) forEachLine(addr uint64, size int, write bool) {
	if size <= 0 {
		return
	}

	last := p.cache.LineAddr(addr + uint64(size) - 1)
	for line := p.cache.LineAddr(addr); ; line += uint64(p.cache.config.LineSize) {
		p.cache.Access(line, write)
		if line == last {
			return
		}
	}
}

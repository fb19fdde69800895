// Package emu provides functional x86-64 emulation.
package emu

import (
	"io"
	"os"
)

// Memory layout defaults.
const (
	// DefaultMemorySize is the capacity of a Memory built from the
	// default configuration.
	DefaultMemorySize = 16 << 20

	// VideoBase is the start of the text-mode display window.
	VideoBase = 0xB8000

	// VideoSize covers an 80x25 screen of character/attribute pairs.
	VideoSize = 80 * 25 * 2
)

// Memory is a flat, preallocated, byte-addressable store. A window of it
// is mapped to a text-mode display: a write starting at an even address in
// the window sends its first byte to the console and leaves the backing
// store untouched. Odd addresses in the window hold attributes and are
// ordinary memory.
//
// Accesses past the end panic with *MemoryFault.
type Memory struct {
	data []byte

	console   io.Writer
	videoBase uint64
	videoEnd  uint64
}

// NewMemory allocates a zeroed memory of the given size with the display
// window at its default location, printing to os.Stdout.
func NewMemory(size uint64) *Memory {
	return &Memory{
		data:      make([]byte, size),
		console:   os.Stdout,
		videoBase: VideoBase,
		videoEnd:  VideoBase + VideoSize,
	}
}

// Size returns the capacity in bytes.
func (m *Memory) Size() uint64 {
	return uint64(len(m.data))
}

// SetConsole sets the writer that receives display characters.
func (m *Memory) SetConsole(w io.Writer) {
	m.console = w
}

// SetVideoWindow moves the display window to [base, base+size).
func (m *Memory) SetVideoWindow(base, size uint64) {
	m.videoBase = base
	m.videoEnd = base + size
}

// InVideoWindow reports whether addr falls in the display window.
func (m *Memory) InVideoWindow(addr uint64) bool {
	return addr >= m.videoBase && addr < m.videoEnd
}

func (m *Memory) check(addr, size uint64) {
	end := addr + size
	if end < addr || end > uint64(len(m.data)) {
		panic(&MemoryFault{Addr: addr, Size: size, Cap: uint64(len(m.data))})
	}
}

// Read8 reads one byte.
func (m *Memory) Read8(addr uint64) byte {
	m.check(addr, 1)
	return m.data[addr]
}

// Read returns a copy of length bytes starting at addr.
func (m *Memory) Read(addr, length uint64) []byte {
	m.check(addr, length)
	out := make([]byte, length)
	copy(out, m.data[addr:addr+length])
	return out
}

// Write stores data at addr, unless addr is an even address in the
// display window, in which case data[0] goes to the console instead.
func (m *Memory) Write(addr uint64, data []byte) {
	if len(data) == 0 {
		return
	}

	if addr%2 == 0 && m.InVideoWindow(addr) {
		// The display cannot fail; drop write errors.
		_, _ = m.console.Write(data[:1])
		return
	}

	m.store(addr, data)
}

// store writes to the backing array without device interception.
func (m *Memory) store(addr uint64, data []byte) {
	m.check(addr, uint64(len(data)))
	copy(m.data[addr:], data)
}

// LoadProgram copies program to addr, bypassing the display window.
func (m *Memory) LoadProgram(addr uint64, program []byte) {
	m.store(addr, program)
}

// Reset zeroes the backing store.
func (m *Memory) Reset() {
	clear(m.data)
}

// Write8 writes one byte.
func (m *Memory) Write8(addr uint64, value byte) {
	m.Write(addr, []byte{value})
}

// Read16 reads a little-endian 16-bit value.
func (m *Memory) Read16(addr uint64) uint16 {
	return uint16(DecodeI16(m.Read(addr, 2)))
}

// Read32 reads a little-endian 32-bit value.
func (m *Memory) Read32(addr uint64) uint32 {
	return uint32(DecodeI32(m.Read(addr, 4)))
}

// Read64 reads a little-endian 64-bit value.
func (m *Memory) Read64(addr uint64) uint64 {
	return uint64(DecodeI64(m.Read(addr, 8)))
}

// Write16 writes a little-endian 16-bit value.
func (m *Memory) Write16(addr uint64, value uint16) {
	m.Write(addr, EncodeI16(int16(value)))
}

// Write32 writes a little-endian 32-bit value.
func (m *Memory) Write32(addr uint64, value uint32) {
	m.Write(addr, EncodeI32(int32(value)))
}

// Write64 writes a little-endian 64-bit value.
func (m *Memory) Write64(addr uint64, value uint64) {
	m.Write(addr, EncodeI64(int64(value)))
}

package emu_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/x86emu/emu"
)

var _ = Describe("Memory", func() {
	var (
		memory  *emu.Memory
		console *bytes.Buffer
	)

	BeforeEach(func() {
		memory = emu.NewMemory(1 << 20)
		console = &bytes.Buffer{}
		memory.SetConsole(console)
	})

	It("should start zeroed", func() {
		Expect(memory.Size()).To(Equal(uint64(1 << 20)))
		Expect(memory.Read(0x100, 16)).To(Equal(make([]byte, 16)))
	})

	It("should read back written bytes", func() {
		memory.Write(0x2000, []byte{0xDE, 0xAD, 0xBE, 0xEF})

		Expect(memory.Read8(0x2000)).To(Equal(byte(0xDE)))
		Expect(memory.Read8(0x2003)).To(Equal(byte(0xEF)))
		Expect(memory.Read(0x2001, 2)).To(Equal([]byte{0xAD, 0xBE}))
	})

	It("should return copies from Read", func() {
		memory.Write8(0x10, 1)
		b := memory.Read(0x10, 1)
		b[0] = 2
		Expect(memory.Read8(0x10)).To(Equal(byte(1)))
	})

	It("should store typed values little-endian", func() {
		memory.Write64(0x3000, 0x0102030405060708)
		Expect(memory.Read8(0x3000)).To(Equal(byte(0x08)))
		Expect(memory.Read64(0x3000)).To(Equal(uint64(0x0102030405060708)))
		Expect(memory.Read32(0x3004)).To(Equal(uint32(0x01020304)))
		Expect(memory.Read16(0x3006)).To(Equal(uint16(0x0102)))

		memory.Write32(0x3010, 0xCAFEBABE)
		memory.Write16(0x3014, 0xBEEF)
		Expect(memory.Read(0x3010, 6)).To(Equal([]byte{0xBE, 0xBA, 0xFE, 0xCA, 0xEF, 0xBE}))
	})

	Describe("display window", func() {
		It("should send even-address writes to the console", func() {
			memory.Write(emu.VideoBase, []byte{'H'})
			memory.Write(emu.VideoBase+2, []byte{'i', 0x07})

			Expect(console.String()).To(Equal("Hi"))
			Expect(memory.Read(emu.VideoBase, 4)).To(Equal([]byte{0, 0, 0, 0}))
		})

		It("should treat odd addresses as memory", func() {
			memory.Write8(emu.VideoBase+1, 0x1F)

			Expect(console.Len()).To(BeZero())
			Expect(memory.Read8(emu.VideoBase + 1)).To(Equal(byte(0x1F)))
		})

		It("should cover the last character cell", func() {
			memory.Write8(emu.VideoBase+emu.VideoSize-2, 'Z')
			Expect(console.String()).To(Equal("Z"))
		})

		It("should treat addresses outside the window as memory", func() {
			memory.Write8(emu.VideoBase-2, 'a')
			memory.Write8(emu.VideoBase+emu.VideoSize, 'b')

			Expect(console.Len()).To(BeZero())
			Expect(memory.Read8(emu.VideoBase - 2)).To(Equal(byte('a')))
			Expect(memory.Read8(emu.VideoBase + emu.VideoSize)).To(Equal(byte('b')))
		})

		It("should follow a moved window", func() {
			memory.SetVideoWindow(0x1000, 0x10)
			memory.Write8(0x1000, 'x')
			memory.Write8(emu.VideoBase, 'y')

			Expect(console.String()).To(Equal("x"))
			Expect(memory.Read8(emu.VideoBase)).To(Equal(byte('y')))
		})

		It("should be bypassed by LoadProgram", func() {
			memory.LoadProgram(emu.VideoBase, []byte{'A', 0x07})

			Expect(console.Len()).To(BeZero())
			Expect(memory.Read8(emu.VideoBase)).To(Equal(byte('A')))
		})
	})

	Describe("bounds", func() {
		faultMatcher := BeAssignableToTypeOf(&emu.MemoryFault{})

		It("should fault on reads past the end", func() {
			Expect(func() { memory.Read8(1 << 20) }).To(PanicWith(faultMatcher))
			Expect(func() { memory.Read((1<<20)-4, 8) }).To(PanicWith(faultMatcher))
		})

		It("should fault on writes past the end", func() {
			Expect(func() { memory.Write((1<<20)-1, []byte{1, 2}) }).To(PanicWith(faultMatcher))
		})

		It("should fault when the address wraps", func() {
			Expect(func() { memory.Read(^uint64(0), 2) }).To(PanicWith(faultMatcher))
		})

		It("should allow access to the last byte", func() {
			memory.Write8((1<<20)-1, 7)
			Expect(memory.Read8((1 << 20) - 1)).To(Equal(byte(7)))
		})
	})

	It("should zero the store on reset", func() {
		memory.Write8(0x40, 1)
		memory.Reset()
		Expect(memory.Read8(0x40)).To(BeZero())
	})
})

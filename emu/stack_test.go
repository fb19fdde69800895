package emu_test

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/x86emu/emu"
)

var _ = Describe("Stack", func() {
	var (
		e       *emu.Emulator
		console *bytes.Buffer
	)

	BeforeEach(func() {
		console = &bytes.Buffer{}
		e = emu.NewEmulator(
			emu.WithConsole(console),
			emu.WithConfig(smallConfig()),
		)
	})

	It("should place pushed bytes at [newSP, newSP+N) in order", func() {
		e.RegFile().SetSP(100)

		e.Push([]byte{0xAA, 0xBB})

		Expect(e.RegFile().SP()).To(Equal(uint64(98)))
		Expect(e.Memory().Read8(98)).To(Equal(byte(0xAA)))
		Expect(e.Memory().Read8(99)).To(Equal(byte(0xBB)))
	})

	It("should decrement the stack pointer by exactly N", func() {
		e.RegFile().SetSP(0x1000)
		for n := 0; n <= 9; n++ {
			before := e.RegFile().SP()
			e.Push(make([]byte, n))
			Expect(e.RegFile().SP()).To(Equal(before - uint64(n)))
		}
	})

	It("should bypass the display window", func() {
		e.RegFile().SetSP(emu.VideoBase + 2)

		e.Push([]byte{'A', 0x07})

		Expect(console.Len()).To(BeZero())
		Expect(e.Memory().Read8(emu.VideoBase)).To(Equal(byte('A')))
		Expect(e.Memory().Read8(emu.VideoBase + 1)).To(Equal(byte(0x07)))
	})

	It("should pop what was pushed", func() {
		e.RegFile().SetSP(0x2000)

		e.PushI64(-42)
		e.PushI64(0x0102030405060708)
		Expect(e.RegFile().SP()).To(Equal(uint64(0x2000 - 16)))
		Expect(e.Memory().Read8(0x2000 - 16)).To(Equal(byte(0x08)))

		Expect(e.PopI64()).To(Equal(int64(0x0102030405060708)))
		Expect(e.PopI64()).To(Equal(int64(-42)))
		Expect(e.RegFile().SP()).To(Equal(uint64(0x2000)))
	})

	It("should return popped bytes in memory order", func() {
		e.RegFile().SetSP(0x300)
		e.Push([]byte{1, 2, 3})

		Expect(e.Pop(3)).To(Equal([]byte{1, 2, 3}))
	})

	It("should fault when the stack underflows memory", func() {
		e.RegFile().SetSP(1)
		result := e.Exec(func() error {
			e.Push([]byte{1, 2})
			return nil
		})
		Expect(result.Err).To(BeAssignableToTypeOf(&emu.MemoryFault{}))
	})

	It("should leave the stack pointer alone when a push faults", func() {
		e.RegFile().SetSP(1)
		e.Memory().Write8(0, 0x5A)

		result := e.Exec(func() error {
			e.Push([]byte{1, 2})
			return nil
		})

		Expect(result.Err).To(HaveOccurred())
		Expect(e.RegFile().SP()).To(Equal(uint64(1)))
		Expect(e.Memory().Read8(0)).To(Equal(byte(0x5A)))
	})

	It("should leave the stack pointer alone past the top of memory", func() {
		e.RegFile().SetSP(1<<20 + 4)

		result := e.Exec(func() error {
			e.PushI64(7)
			return nil
		})

		var fault *emu.MemoryFault
		Expect(errors.As(result.Err, &fault)).To(BeTrue())
		Expect(fault.Addr).To(Equal(uint64(1<<20 - 4)))
		Expect(e.RegFile().SP()).To(Equal(uint64(1<<20 + 4)))
	})
})

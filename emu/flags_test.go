package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/x86emu/emu"
	"github.com/sarchlab/x86emu/insts"
)

var _ = Describe("Flags", func() {
	var regFile *emu.RegFile

	BeforeEach(func() {
		regFile = &emu.RegFile{}
	})

	It("should set and clear single bits independently", func() {
		regFile.SetFlag(emu.FlagCarry, true)
		regFile.SetFlag(emu.FlagDirection, true)
		Expect(regFile.Flag(emu.FlagCarry)).To(BeTrue())
		Expect(regFile.Flag(emu.FlagDirection)).To(BeTrue())
		Expect(regFile.Flag(emu.FlagZero)).To(BeFalse())
		Expect(uint64(regFile.RFLAGS)).To(Equal(uint64(1<<0 | 1<<10)))

		regFile.SetFlag(emu.FlagCarry, false)
		Expect(regFile.Flag(emu.FlagCarry)).To(BeFalse())
		Expect(regFile.Flag(emu.FlagDirection)).To(BeTrue())
	})

	Describe("ComputeFlags", func() {
		It("should set ZF for a zero result at every size", func() {
			for _, size := range []insts.ArgumentSize{insts.Bit8, insts.Bit16, insts.Bit32, insts.Bit64} {
				regFile.ComputeFlags(0, size)
				Expect(regFile.Flag(emu.FlagZero)).To(BeTrue())
				Expect(regFile.Flag(emu.FlagSign)).To(BeFalse())
				Expect(regFile.Flag(emu.FlagParity)).To(BeTrue())
			}
		})

		It("should set SF and PF for -1 at 8 bits", func() {
			regFile.ComputeFlags(-1, insts.Bit8)
			Expect(regFile.Flag(emu.FlagZero)).To(BeFalse())
			Expect(regFile.Flag(emu.FlagSign)).To(BeTrue())
			Expect(regFile.Flag(emu.FlagParity)).To(BeTrue())
		})

		It("should take SF from the top bit of the operand size", func() {
			regFile.ComputeFlags(0x80000000, insts.Bit32)
			Expect(regFile.Flag(emu.FlagSign)).To(BeTrue())

			regFile.ComputeFlags(0x80000000, insts.Bit64)
			Expect(regFile.Flag(emu.FlagSign)).To(BeFalse())

			regFile.ComputeFlags(0x8000, insts.Bit16)
			Expect(regFile.Flag(emu.FlagSign)).To(BeTrue())
		})

		It("should compute PF over the low byte only", func() {
			// Low byte 0x03 has two bits set; the full value has three.
			regFile.ComputeFlags(0x103, insts.Bit32)
			Expect(regFile.Flag(emu.FlagParity)).To(BeTrue())

			regFile.ComputeFlags(0x01, insts.Bit32)
			Expect(regFile.Flag(emu.FlagParity)).To(BeFalse())

			regFile.ComputeFlags(0x7F, insts.Bit8)
			Expect(regFile.Flag(emu.FlagParity)).To(BeFalse())
		})

		It("should leave CF and OF alone", func() {
			regFile.SetArithmeticFlags(true, true)
			regFile.ComputeFlags(0, insts.Bit64)
			Expect(regFile.Flag(emu.FlagCarry)).To(BeTrue())
			Expect(regFile.Flag(emu.FlagOverflow)).To(BeTrue())
		})
	})
})

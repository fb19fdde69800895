package emu_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/x86emu/emu"
)

var _ = Describe("MachineConfig", func() {
	It("should have a valid default", func() {
		config := emu.DefaultMachineConfig()
		Expect(config.Validate()).To(Succeed())
		Expect(config.VideoBase).To(Equal(uint64(0xB8000)))
		Expect(config.VideoSize).To(Equal(uint64(4000)))
	})

	It("should round-trip through a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "machine.json")
		config := emu.DefaultMachineConfig()
		config.MemorySize = 1 << 24
		config.InitialStackPointer = 0x7FF000

		Expect(config.SaveConfig(path)).To(Succeed())

		loaded, err := emu.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(config))
	})

	It("should keep defaults for missing fields", func() {
		path := filepath.Join(GinkgoT().TempDir(), "partial.json")
		Expect(os.WriteFile(path, []byte(`{"memory_size": 2097152}`), 0644)).To(Succeed())

		loaded, err := emu.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.MemorySize).To(Equal(uint64(2097152)))
		Expect(loaded.VideoBase).To(Equal(uint64(emu.VideoBase)))
	})

	It("should fail on a missing file", func() {
		_, err := emu.LoadConfig(filepath.Join(GinkgoT().TempDir(), "nope.json"))
		Expect(err).To(HaveOccurred())
	})

	It("should fail on malformed JSON", func() {
		path := filepath.Join(GinkgoT().TempDir(), "bad.json")
		Expect(os.WriteFile(path, []byte(`{`), 0644)).To(Succeed())

		_, err := emu.LoadConfig(path)
		Expect(err).To(MatchError(ContainSubstring("failed to parse machine config")))
	})

	DescribeTable("Validate",
		func(mutate func(*emu.MachineConfig), want string) {
			config := emu.DefaultMachineConfig()
			mutate(config)
			Expect(config.Validate()).To(MatchError(ContainSubstring(want)))
		},
		Entry("zero memory", func(c *emu.MachineConfig) { c.MemorySize = 0 }, "memory_size"),
		Entry("window past memory", func(c *emu.MachineConfig) {
			c.MemorySize = 0xB8000
			c.InitialStackPointer = 0x1000
		}, "video window"),
		Entry("stack past memory", func(c *emu.MachineConfig) {
			c.InitialStackPointer = c.MemorySize + 1
		}, "initial_stack_pointer"),
	)

	It("should clone independently", func() {
		config := emu.DefaultMachineConfig()
		clone := config.Clone()
		clone.MemorySize = 1
		Expect(config.MemorySize).To(Equal(uint64(emu.DefaultMemorySize)))
	})
})

package emu

import (
	"encoding/json"
	"fmt"
	"os"
)

// MachineConfig describes the emulated machine's memory layout.
type MachineConfig struct {
	// MemorySize is the capacity of the flat memory store in bytes.
	// Default: 16 MiB.
	MemorySize uint64 `json:"memory_size"`

	// VideoBase is the first address of the text-mode display window.
	// Default: 0xB8000.
	VideoBase uint64 `json:"video_base"`

	// VideoSize is the length of the display window in bytes.
	// Default: 4000 (80x25 character/attribute pairs).
	VideoSize uint64 `json:"video_size"`

	// InitialStackPointer is the value RSP holds after reset.
	// Default: the top of memory.
	InitialStackPointer uint64 `json:"initial_stack_pointer"`
}

// DefaultMachineConfig returns a MachineConfig with the default layout.
func DefaultMachineConfig() *MachineConfig {
	return &MachineConfig{
		MemorySize:          DefaultMemorySize,
		VideoBase:           VideoBase,
		VideoSize:           VideoSize,
		InitialStackPointer: DefaultMemorySize,
	}
}

// LoadConfig loads a MachineConfig from a JSON file. Fields missing from
// the file keep their defaults.
func LoadConfig(path string) (*MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine config file: %w", err)
	}

	config := DefaultMachineConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse machine config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a MachineConfig to a JSON file.
func (c *MachineConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize machine config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write machine config file: %w", err)
	}

	return nil
}

// Validate checks that the layout fits in memory.
func (c *MachineConfig) Validate() error {
	if c.MemorySize == 0 {
		return fmt.Errorf("memory_size must be > 0")
	}
	if c.VideoBase+c.VideoSize < c.VideoBase {
		return fmt.Errorf("video window overflows the address space")
	}
	if c.VideoSize > 0 && c.VideoBase+c.VideoSize > c.MemorySize {
		return fmt.Errorf("video window [0x%X, 0x%X) exceeds memory_size 0x%X",
			c.VideoBase, c.VideoBase+c.VideoSize, c.MemorySize)
	}
	if c.InitialStackPointer > c.MemorySize {
		return fmt.Errorf("initial_stack_pointer 0x%X exceeds memory_size 0x%X",
			c.InitialStackPointer, c.MemorySize)
	}
	return nil
}

// Clone returns a copy of the MachineConfig.
func (c *MachineConfig) Clone() *MachineConfig {
	clone := *c
	return &clone
}

// Package emu provides functional x86-64 emulation.
//
// The package holds the machine state (RegFile, Memory) and the execution
// engine (Emulator) that resolves decoded operands against it. Decoding and
// per-opcode dispatch live outside this package; they build operands with
// package insts and call the size, extraction, stack and flag primitives
// exposed here.
package emu

import (
	"fmt"
	"io"
	"os"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Err is set if the instruction faulted or could not be executed.
	Err error
}

// AccessObserver is told about every memory access the engine performs on
// behalf of an instruction: operand loads, stores and stack traffic.
type AccessObserver interface {
	ObserveRead(addr uint64, size int)
	ObserveWrite(addr uint64, size int)
}

// Emulator resolves x86-64 operands against a machine state and applies
// their effects. It is not safe for concurrent use; emulate each core with
// its own Emulator.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	alu     *ALU

	config   *MachineConfig
	observer AccessObserver

	// I/O
	console io.Writer
	stderr  io.Writer
	verbose bool

	initialSP    uint64
	hasInitialSP bool
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithConsole sets the writer that receives display-window characters.
func WithConsole(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.console = w
	}
}

// WithStderr sets a custom stderr writer.
func WithStderr(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stderr = w
	}
}

// WithVerbose enables fault reporting on stderr.
func WithVerbose(verbose bool) EmulatorOption {
	return func(e *Emulator) {
		e.verbose = verbose
	}
}

// WithConfig sets the machine layout. A nil config keeps the default.
func WithConfig(config *MachineConfig) EmulatorOption {
	return func(e *Emulator) {
		if config != nil {
			e.config = config.Clone()
		}
	}
}

// WithStackPointer overrides the configured initial stack pointer.
func WithStackPointer(sp uint64) EmulatorOption {
	return func(e *Emulator) {
		e.initialSP = sp
		e.hasInitialSP = true
	}
}

// WithAccessObserver attaches an observer to the engine's memory traffic.
func WithAccessObserver(observer AccessObserver) EmulatorOption {
	return func(e *Emulator) {
		e.observer = observer
	}
}

// NewEmulator creates a new x86-64 emulator with zeroed registers and
// memory. It panics if the configured layout fails Validate; check
// configs loaded at run time with Validate first.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile: &RegFile{},
		config:  DefaultMachineConfig(),
		console: os.Stdout,
		stderr:  os.Stderr,
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.config.Validate(); err != nil {
		panic(fmt.Sprintf("invalid machine config: %v", err))
	}

	e.memory = NewMemory(e.config.MemorySize)
	e.memory.SetConsole(e.console)
	e.memory.SetVideoWindow(e.config.VideoBase, e.config.VideoSize)
	e.alu = NewALU(e.regFile)
	e.resetStackPointer()

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// ALU returns the emulator's arithmetic unit.
func (e *Emulator) ALU() *ALU {
	return e.alu
}

// Config returns a copy of the machine layout.
func (e *Emulator) Config() *MachineConfig {
	return e.config.Clone()
}

// Reset zeroes registers and memory and restores the initial stack
// pointer.
func (e *Emulator) Reset() {
	e.regFile.Reset()
	e.memory.Reset()
	e.resetStackPointer()
}

func (e *Emulator) resetStackPointer() {
	if e.hasInitialSP {
		e.regFile.SetSP(e.initialSP)
		return
	}
	e.regFile.SetSP(e.config.InitialStackPointer)
}

// Exec runs one instruction's worth of work. An error returned by fn, or
// an out-of-range memory access inside it, ends up in StepResult.Err.
// Any other panic is a bug and propagates.
func (e *Emulator) Exec(fn func() error) (result StepResult) {
	defer func() {
		if r := recover(); r != nil {
			fault, ok := r.(*MemoryFault)
			if !ok {
				panic(r)
			}
			result.Err = fault
		}
		if result.Err != nil && e.verbose {
			_, _ = fmt.Fprintf(e.stderr, "Emulation error: %v\n", result.Err)
		}
	}()

	result.Err = fn()
	return result
}

func (e *Emulator) observeRead(addr uint64, size int) {
	if e.observer != nil {
		e.observer.ObserveRead(addr, size)
	}
}

func (e *Emulator) observeWrite(addr uint64, size int) {
	if e.observer != nil {
		e.observer.ObserveWrite(addr, size)
	}
}

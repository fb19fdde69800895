package emu

import (
	"errors"
	"fmt"
)

// Errors returned by operand extraction and register access. They indicate
// an inconsistent decoder or dispatch table; callers abandon the current
// instruction when they see one.
var (
	// ErrNotSupported marks an operand path this core does not implement,
	// such as 8-bit and 16-bit extraction.
	ErrNotSupported = errors.New("not supported")

	// ErrWidthMismatch is returned when a register is read through an
	// accessor of the wrong width.
	ErrWidthMismatch = errors.New("register width mismatch")

	// ErrArity is returned when a second operand is requested from a
	// single-operand shape.
	ErrArity = errors.New("operand arity mismatch")

	// ErrInvalidRegister is returned for RegNone and out-of-range values.
	ErrInvalidRegister = errors.New("invalid register")
)

// MemoryFault is the panic value raised by Memory on an out-of-range
// access. Emulator.Exec converts it into an error.
type MemoryFault struct {
	Addr uint64
	Size uint64
	Cap  uint64
}

func (f *MemoryFault) Error() string {
	return fmt.Sprintf("memory access out of range: addr=0x%X size=%d capacity=0x%X",
		f.Addr, f.Size, f.Cap)
}

// Package emu provides functional x86-64 emulation.
package emu

import (
	"fmt"
	"strings"

	"github.com/sarchlab/x86emu/insts"
)

// RegFile represents the x86-64 register file.
// It contains the 16 general-purpose registers, the instruction
// pointer and RFLAGS. 32-bit registers are views of the GPR slots, not
// separate storage.
type RegFile struct {
	// GPR holds RAX, RCX, RDX, RBX, RSP, RBP, RSI, RDI and R8-R15, in
	// encoding order.
	GPR [16]uint64

	// RIP is the instruction pointer.
	RIP uint64

	// RFLAGS holds the condition flags.
	RFLAGS Flags
}

// Reset zeroes every register.
func (r *RegFile) Reset() {
	*r = RegFile{}
}

// ReadI64 reads r as a 64-bit value. 32-bit aliases are zero-extended,
// segment selectors read as zero.
func (r *RegFile) ReadI64(reg insts.Register) (int64, error) {
	switch {
	case reg == insts.RIP:
		return int64(r.RIP), nil
	case reg.IsSegment():
		return 0, nil
	}

	slot, ok := reg.Slot()
	if !ok {
		return 0, widthError(reg, insts.Bit64)
	}

	if reg.Width() == insts.Bit32 {
		return int64(uint32(r.GPR[slot])), nil
	}
	return int64(r.GPR[slot]), nil
}

// ReadI32 reads a 32-bit alias as the low half of its parent register.
// Asking for 32 bits of a 64-bit GPR is an error; RIP is truncated and
// segment selectors read as zero.
func (r *RegFile) ReadI32(reg insts.Register) (int32, error) {
	switch {
	case reg == insts.RIP:
		return int32(r.RIP), nil
	case reg.IsSegment():
		return 0, nil
	case reg.Width() != insts.Bit32:
		return 0, widthError(reg, insts.Bit32)
	}

	slot, _ := reg.Slot()
	return int32(r.GPR[slot]), nil
}

// Write stores value into reg. Writing a 32-bit alias zero-extends into
// the parent register.
func (r *RegFile) Write(reg insts.Register, value int64) error {
	if reg == insts.RIP {
		r.RIP = uint64(value)
		return nil
	}

	slot, ok := reg.Slot()
	if !ok {
		if !reg.IsValid() {
			return fmt.Errorf("write %v: %w", reg, ErrInvalidRegister)
		}
		return fmt.Errorf("write %v: %w", reg, ErrNotSupported)
	}

	if reg.Width() == insts.Bit32 {
		r.GPR[slot] = uint64(uint32(value))
		return nil
	}
	r.GPR[slot] = uint64(value)
	return nil
}

// SP returns the stack pointer.
func (r *RegFile) SP() uint64 {
	return r.GPR[4]
}

// SetSP sets the stack pointer.
func (r *RegFile) SetSP(sp uint64) {
	r.GPR[4] = sp
}

func widthError(reg insts.Register, want insts.ArgumentSize) error {
	if !reg.IsValid() {
		return fmt.Errorf("read %v: %w", reg, ErrInvalidRegister)
	}
	return fmt.Errorf("read %v as %d bits (register is %d bits): %w",
		reg, want.Bits(), reg.Width().Bits(), ErrWidthMismatch)
}

var dumpOrder = []insts.Register{
	insts.RAX, insts.RBX, insts.RCX, insts.RDX,
	insts.RSI, insts.RDI, insts.RBP, insts.RSP,
	insts.R8, insts.R9, insts.R10, insts.R11,
	insts.R12, insts.R13, insts.R14, insts.R15,
}

// String dumps the registers one per line, in the layout of a debugger's
// "info registers".
func (r *RegFile) String() string {
	var sb strings.Builder
	for _, reg := range dumpOrder {
		slot, _ := reg.Slot()
		fmt.Fprintf(&sb, "%-15s0x%x\n", reg, r.GPR[slot])
	}
	fmt.Fprintf(&sb, "%-15s0x%x", insts.RIP, r.RIP)
	return sb.String()
}

// Package emu provides functional x86-64 emulation.
package emu

import (
	"math/bits"

	"github.com/sarchlab/x86emu/insts"
)

// Flag is a single condition bit in RFLAGS, at its architectural position.
type Flag uint64

// RFLAGS condition bits.
const (
	FlagCarry     Flag = 1 << 0
	FlagParity    Flag = 1 << 2
	FlagZero      Flag = 1 << 6
	FlagSign      Flag = 1 << 7
	FlagDirection Flag = 1 << 10
	FlagOverflow  Flag = 1 << 11
)

func (f Flag) String() string {
	switch f {
	case FlagCarry:
		return "CF"
	case FlagParity:
		return "PF"
	case FlagZero:
		return "ZF"
	case FlagSign:
		return "SF"
	case FlagDirection:
		return "DF"
	case FlagOverflow:
		return "OF"
	}
	return "?F"
}

// Flags is the packed RFLAGS register.
type Flags uint64

// Get reports whether f is set.
func (fl Flags) Get(f Flag) bool {
	return uint64(fl)&uint64(f) == uint64(f)
}

// Set sets or clears f.
func (fl *Flags) Set(f Flag, value bool) {
	if value {
		*fl |= Flags(f)
	} else {
		*fl &^= Flags(f)
	}
}

// Flag reports whether f is set in RFLAGS.
func (r *RegFile) Flag(f Flag) bool {
	return r.RFLAGS.Get(f)
}

// SetFlag sets or clears f in RFLAGS.
func (r *RegFile) SetFlag(f Flag, value bool) {
	r.RFLAGS.Set(f, value)
}

// ComputeFlags derives ZF, SF and PF from an operation's result.
//
// ZF is set when result is zero. SF is the top bit of result truncated to
// size. PF is set when the low byte of result has an even number of one
// bits, whatever the operand size. CF and OF depend on the operation, not
// only the result, and are left to SetArithmeticFlags.
func (r *RegFile) ComputeFlags(result int64, size insts.ArgumentSize) {
	r.SetFlag(FlagZero, result == 0)

	signBit := uint64(1) << (size.Bits() - 1)
	r.SetFlag(FlagSign, uint64(result)&signBit != 0)

	r.SetFlag(FlagParity, bits.OnesCount8(uint8(result))%2 == 0)
}

// SetArithmeticFlags sets CF and OF as computed by the ALU.
func (r *RegFile) SetArithmeticFlags(carry, overflow bool) {
	r.SetFlag(FlagCarry, carry)
	r.SetFlag(FlagOverflow, overflow)
}

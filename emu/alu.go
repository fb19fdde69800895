// Package emu provides functional x86-64 emulation.
package emu

import "github.com/sarchlab/x86emu/insts"

// ALU implements the flag-setting side of x86-64 integer arithmetic. Each
// operation works on size-bit operands, returns the truncated result
// sign-extended to 64 bits and updates RFLAGS.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// Add computes op1 + op2.
func (a *ALU) Add(size insts.ArgumentSize, op1, op2 int64) int64 {
	mask := size.Mask()
	u1 := uint64(op1) & mask
	u2 := uint64(op2) & mask
	result := (u1 + u2) & mask

	// C: unsigned carry out of the top bit
	carry := result < u1

	// O: both operands share a sign the result does not
	sign := signBit(size)
	overflow := (u1^result)&(u2^result)&sign != 0

	return a.finish(size, result, carry, overflow)
}

// Sub computes op1 - op2.
func (a *ALU) Sub(size insts.ArgumentSize, op1, op2 int64) int64 {
	mask := size.Mask()
	u1 := uint64(op1) & mask
	u2 := uint64(op2) & mask
	result := (u1 - u2) & mask

	// C: borrow
	carry := u1 < u2

	// O: operands differ in sign and the result's sign differs from op1
	sign := signBit(size)
	overflow := (u1^u2)&(u1^result)&sign != 0

	return a.finish(size, result, carry, overflow)
}

// And computes op1 & op2. CF and OF are cleared.
func (a *ALU) And(size insts.ArgumentSize, op1, op2 int64) int64 {
	return a.finish(size, uint64(op1&op2)&size.Mask(), false, false)
}

// Or computes op1 | op2. CF and OF are cleared.
func (a *ALU) Or(size insts.ArgumentSize, op1, op2 int64) int64 {
	return a.finish(size, uint64(op1|op2)&size.Mask(), false, false)
}

// Xor computes op1 ^ op2. CF and OF are cleared.
func (a *ALU) Xor(size insts.ArgumentSize, op1, op2 int64) int64 {
	return a.finish(size, uint64(op1^op2)&size.Mask(), false, false)
}

func (a *ALU) finish(size insts.ArgumentSize, result uint64, carry, overflow bool) int64 {
	v := signExtend(result, size)
	a.regFile.SetArithmeticFlags(carry, overflow)
	a.regFile.ComputeFlags(v, size)
	return v
}

func signBit(size insts.ArgumentSize) uint64 {
	return uint64(1) << (size.Bits() - 1)
}

func signExtend(v uint64, size insts.ArgumentSize) int64 {
	shift := 64 - size.Bits()
	return int64(v<<shift) >> shift
}

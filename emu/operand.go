package emu

import (
	"fmt"

	"github.com/sarchlab/x86emu/insts"
)

// FirstOperandSize returns the width of an operand's first logical value.
// Register pairs use the register selected by the direction bit,
// immediates (alone or with a register) their encoded width, and memory
// operands are address sized.
func FirstOperandSize(op insts.Operand) insts.ArgumentSize {
	switch op.Kind {
	case insts.KindRegister, insts.KindRegisterPair:
		return op.FirstRegister().Width()
	case insts.KindImmediate, insts.KindImmediateRegister:
		return op.ImmediateSize
	}
	return insts.Bit64
}

// SecondOperandSize returns the width of an operand's second logical
// value. Only register pairs and immediate+register operands have one.
func SecondOperandSize(op insts.Operand) (insts.ArgumentSize, error) {
	if op.IsSingle() {
		return 0, fmt.Errorf("second operand size of %v: %w", op.Kind, ErrArity)
	}
	return op.SecondRegister().Width(), nil
}

// ExtractI8 is not implemented.
func (e *Emulator) ExtractI8(op insts.Operand) (int8, error) {
	return 0, unsupported("8-bit extraction", op)
}

// ExtractI16 is not implemented.
func (e *Emulator) ExtractI16(op insts.Operand) (int16, error) {
	return 0, unsupported("16-bit extraction", op)
}

// ExtractI32 reads the first logical value of op as a 32-bit integer.
// Registers are read through the width-aware accessor, immediates are
// truncated from their sign-extended value and memory operands load four
// bytes at the effective address.
func (e *Emulator) ExtractI32(op insts.Operand) (int32, error) {
	switch op.Kind {
	case insts.KindRegister, insts.KindRegisterPair:
		// A pair is read through its logical first register, the same one
		// FirstOperandSize reports.
		return e.regFile.ReadI32(op.FirstRegister())
	case insts.KindImmediate, insts.KindImmediateRegister:
		return int32(op.Immediate), nil
	case insts.KindEffectiveAddress:
		addr, err := e.EffectiveAddress(op)
		if err != nil {
			return 0, err
		}
		return e.LoadI32(addr), nil
	}
	return 0, unsupported("32-bit extraction", op)
}

// ExtractI64 reads the first logical value of op as a 64-bit integer.
func (e *Emulator) ExtractI64(op insts.Operand) (int64, error) {
	switch op.Kind {
	case insts.KindRegister, insts.KindRegisterPair:
		return e.regFile.ReadI64(op.FirstRegister())
	case insts.KindImmediate, insts.KindImmediateRegister:
		return op.Immediate, nil
	case insts.KindEffectiveAddress:
		addr, err := e.EffectiveAddress(op)
		if err != nil {
			return 0, err
		}
		return e.LoadI64(addr), nil
	}
	return 0, unsupported("64-bit extraction", op)
}

// SecondI8 is not implemented.
func (e *Emulator) SecondI8(op insts.Operand) (int8, error) {
	return 0, unsupported("second operand extraction", op)
}

// SecondI16 is not implemented.
func (e *Emulator) SecondI16(op insts.Operand) (int16, error) {
	return 0, unsupported("second operand extraction", op)
}

// SecondI32 is not implemented.
func (e *Emulator) SecondI32(op insts.Operand) (int32, error) {
	return 0, unsupported("second operand extraction", op)
}

// SecondI64 is not implemented.
func (e *Emulator) SecondI64(op insts.Operand) (int64, error) {
	return 0, unsupported("second operand extraction", op)
}

// ReadRegisterI32 reads reg through the 32-bit accessor.
func (e *Emulator) ReadRegisterI32(reg insts.Register) (int32, error) {
	return e.regFile.ReadI32(reg)
}

// ReadRegisterI64 reads reg through the 64-bit accessor.
func (e *Emulator) ReadRegisterI64(reg insts.Register) (int64, error) {
	return e.regFile.ReadI64(reg)
}

// WriteRegister stores value into reg.
func (e *Emulator) WriteRegister(reg insts.Register, value int64) error {
	return e.regFile.Write(reg, value)
}

// EffectiveAddress computes base + index*scale + displacement for a memory
// operand.
func (e *Emulator) EffectiveAddress(op insts.Operand) (uint64, error) {
	if op.Kind != insts.KindEffectiveAddress {
		return 0, fmt.Errorf("effective address of %v: %w", op.Kind, ErrNotSupported)
	}

	base, err := e.regFile.ReadI64(op.Register)
	if err != nil {
		return 0, fmt.Errorf("base of %v: %w", op, err)
	}

	addr := base + int64(op.Displacement)

	if op.HasIndex() {
		index, err := e.regFile.ReadI64(op.Index)
		if err != nil {
			return 0, fmt.Errorf("index of %v: %w", op, err)
		}
		addr += index * int64(op.Scale)
	}

	return uint64(addr), nil
}

func unsupported(what string, op insts.Operand) error {
	return fmt.Errorf("%s of %v operand %v: %w", what, op.Kind, op, ErrNotSupported)
}

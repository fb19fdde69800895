// Package emu provides functional x86-64 emulation.
package emu

import "github.com/sarchlab/x86emu/insts"

// LoadI32 reads a 32-bit little-endian value at addr.
func (e *Emulator) LoadI32(addr uint64) int32 {
	e.observeRead(addr, 4)
	return DecodeI32(e.memory.Read(addr, 4))
}

// LoadI64 reads a 64-bit little-endian value at addr.
func (e *Emulator) LoadI64(addr uint64) int64 {
	e.observeRead(addr, 8)
	return DecodeI64(e.memory.Read(addr, 8))
}

// Store writes the low size bytes of value at addr, little-endian. Stores
// into the display window follow Memory.Write.
func (e *Emulator) Store(addr uint64, size insts.ArgumentSize, value int64) {
	e.observeWrite(addr, size.Bytes())
	e.memory.Write(addr, encodeSized(value, size.Bytes()))
}

// StoreOperand writes value to the location named by op: a register, or
// memory at an effective address.
func (e *Emulator) StoreOperand(op insts.Operand, size insts.ArgumentSize, value int64) error {
	switch op.Kind {
	case insts.KindRegister:
		return e.regFile.Write(op.Register, value)
	case insts.KindRegisterPair:
		return e.regFile.Write(op.FirstRegister(), value)
	case insts.KindEffectiveAddress:
		addr, err := e.EffectiveAddress(op)
		if err != nil {
			return err
		}
		e.Store(addr, size, value)
		return nil
	}
	return unsupported("store", op)
}

package emu

// Push lowers RSP by len(data) and writes data so that it occupies
// [RSP, RSP+len(data)) in the order given. RSP is only updated once the
// write has succeeded. Stack writes bypass the display window.
func (e *Emulator) Push(data []byte) {
	sp := e.regFile.SP() - uint64(len(data))
	e.observeWrite(sp, len(data))

	e.memory.store(sp, data)
	e.regFile.SetSP(sp)
}

// Pop reads n bytes at RSP and advances RSP past them.
func (e *Emulator) Pop(n int) []byte {
	sp := e.regFile.SP()
	e.observeRead(sp, n)

	data := e.memory.Read(sp, uint64(n))
	e.regFile.SetSP(sp + uint64(n))
	return data
}

// PushI64 pushes a 64-bit value in little-endian order.
func (e *Emulator) PushI64(v int64) {
	e.Push(EncodeI64(v))
}

// PopI64 pops a 64-bit little-endian value.
func (e *Emulator) PopI64() int64 {
	return DecodeI64(e.Pop(8))
}

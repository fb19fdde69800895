package insts

import (
	"fmt"
	"strings"
)

// ArgumentSize is the width of an operand.
type ArgumentSize uint8

// Operand widths.
const (
	Bit8 ArgumentSize = iota
	Bit16
	Bit32
	Bit64
)

// Bits returns the width in bits.
func (s ArgumentSize) Bits() uint {
	switch s {
	case Bit8:
		return 8
	case Bit16:
		return 16
	case Bit32:
		return 32
	default:
		return 64
	}
}

// Bytes returns the width in bytes.
func (s ArgumentSize) Bytes() int {
	return int(s.Bits() / 8)
}

// Mask returns a mask selecting the low Bits() bits.
func (s ArgumentSize) Mask() uint64 {
	if s == Bit64 {
		return ^uint64(0)
	}
	return uint64(1)<<s.Bits() - 1
}

func (s ArgumentSize) String() string {
	return fmt.Sprintf("Bit%d", s.Bits())
}

// Register is an architectural register name. Registers carry no storage;
// they are keys into the emulator's register file.
type Register uint8

// RegNone marks an absent register, e.g. an effective address without an
// index.
const RegNone Register = 0

// 64-bit general purpose registers and the instruction pointer.
const (
	RAX Register = iota + 1
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	RIP
)

// 32-bit aliases. Each names the low half of the 64-bit register in the
// same slot.
const (
	EAX Register = iota + RIP + 1
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI
	R8D
	R9D
	R10D
	R11D
	R12D
	R13D
	R14D
	R15D
)

// 8-bit registers.
const (
	AL Register = iota + R15D + 1
	CL
	DL
	BL
	AH
	CH
	DH
	BH
	SPL
	BPL
	SIL
	DIL
	R8B
	R9B
	R10B
	R11B
	R12B
	R13B
	R14B
	R15B
)

// Segment selectors.
const (
	ES Register = iota + R15B + 1
	CS
	SS
	DS
	FS
	GS

	numRegisters
)

var registerNames = [numRegisters]string{
	RegNone: "none",

	RAX: "rax", RCX: "rcx", RDX: "rdx", RBX: "rbx",
	RSP: "rsp", RBP: "rbp", RSI: "rsi", RDI: "rdi",
	R8: "r8", R9: "r9", R10: "r10", R11: "r11",
	R12: "r12", R13: "r13", R14: "r14", R15: "r15",
	RIP: "rip",

	EAX: "eax", ECX: "ecx", EDX: "edx", EBX: "ebx",
	ESP: "esp", EBP: "ebp", ESI: "esi", EDI: "edi",
	R8D: "r8d", R9D: "r9d", R10D: "r10d", R11D: "r11d",
	R12D: "r12d", R13D: "r13d", R14D: "r14d", R15D: "r15d",

	AL: "al", CL: "cl", DL: "dl", BL: "bl",
	AH: "ah", CH: "ch", DH: "dh", BH: "bh",
	SPL: "spl", BPL: "bpl", SIL: "sil", DIL: "dil",
	R8B: "r8b", R9B: "r9b", R10B: "r10b", R11B: "r11b",
	R12B: "r12b", R13B: "r13b", R14B: "r14b", R15B: "r15b",

	ES: "es", CS: "cs", SS: "ss", DS: "ds", FS: "fs", GS: "gs",
}

var registersByName = func() map[string]Register {
	m := make(map[string]Register, numRegisters)
	for r := RAX; r < numRegisters; r++ {
		m[registerNames[r]] = r
	}
	return m
}()

// String returns the lowercase register name, e.g. "rax".
func (r Register) String() string {
	if r >= numRegisters {
		return fmt.Sprintf("reg(%d)", uint8(r))
	}
	return registerNames[r]
}

// Width returns the register's width class.
func (r Register) Width() ArgumentSize {
	return WidthOf(r)
}

// WidthOf maps every register to its width class. Segment selectors are
// 16 bits wide.
func WidthOf(r Register) ArgumentSize {
	switch {
	case r >= RAX && r <= RIP:
		return Bit64
	case r >= EAX && r <= R15D:
		return Bit32
	case r >= AL && r <= R15B:
		return Bit8
	case r >= ES && r <= GS:
		return Bit16
	}
	return Bit64
}

// IsSegment reports whether r is a segment selector.
func (r Register) IsSegment() bool {
	return r >= ES && r <= GS
}

// IsValid reports whether r names a register.
func (r Register) IsValid() bool {
	return r > RegNone && r < numRegisters
}

// Slot returns the index (0-15) of the 64-bit general purpose slot backing
// r. Only 64-bit GPRs and their 32-bit aliases have a slot.
func (r Register) Slot() (int, bool) {
	switch {
	case r >= RAX && r <= R15:
		return int(r - RAX), true
	case r >= EAX && r <= R15D:
		return int(r - EAX), true
	}
	return 0, false
}

// ParseRegister looks up a register by name. The lookup is case-insensitive
// and accepts an AT&T "%" prefix.
func ParseRegister(name string) (Register, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "%"))
	r, ok := registersByName[key]
	if !ok {
		return RegNone, fmt.Errorf("unknown register %q", name)
	}
	return r, nil
}

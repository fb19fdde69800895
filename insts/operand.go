package insts

import (
	"fmt"
	"strings"
)

// OperandKind selects the shape of an Operand.
type OperandKind uint8

// Operand shapes.
const (
	KindImmediate         OperandKind = iota // $imm
	KindRegister                             // %reg
	KindRegisterPair                         // %reg1,%reg2 with direction bit
	KindEffectiveAddress                     // disp(base,index,scale)
	KindImmediateRegister                    // $imm,%reg
)

func (k OperandKind) String() string {
	switch k {
	case KindImmediate:
		return "Immediate"
	case KindRegister:
		return "Register"
	case KindRegisterPair:
		return "RegisterPair"
	case KindEffectiveAddress:
		return "EffectiveAddress"
	case KindImmediateRegister:
		return "ImmediateRegister"
	}
	return fmt.Sprintf("OperandKind(%d)", uint8(k))
}

// Operand describes one decoded instruction operand. Which fields are
// meaningful depends on Kind:
//
//	KindImmediate:         Immediate, ImmediateSize
//	KindRegister:          Register
//	KindRegisterPair:      Register, Register2, Reverse
//	KindEffectiveAddress:  Register (base), Index, Scale, Displacement
//	KindImmediateRegister: Immediate, ImmediateSize, Register
//
// Operands are values; use the constructors below rather than filling the
// struct by hand.
type Operand struct {
	Kind OperandKind

	Immediate     int64        // sign-extended literal
	ImmediateSize ArgumentSize // encoded width, Bit8 or Bit32

	Register  Register
	Register2 Register

	// Reverse is the direction bit. When set, Register2 is the first
	// (destination) operand and Register the second.
	Reverse bool

	Index        Register
	Scale        uint8
	Displacement int32
}

// Imm8 returns an immediate encoded in 8 bits.
func Imm8(v int8) Operand {
	return Operand{Kind: KindImmediate, Immediate: int64(v), ImmediateSize: Bit8}
}

// Imm32 returns an immediate encoded in 32 bits.
func Imm32(v int32) Operand {
	return Operand{Kind: KindImmediate, Immediate: int64(v), ImmediateSize: Bit32}
}

// Reg returns a bare register operand.
func Reg(r Register) Operand {
	return Operand{Kind: KindRegister, Register: r}
}

// RegPair returns a two-register operand. reverse is the encoding's
// direction bit.
func RegPair(r1, r2 Register, reverse bool) Operand {
	return Operand{Kind: KindRegisterPair, Register: r1, Register2: r2, Reverse: reverse}
}

// Mem returns a base+displacement memory operand.
func Mem(base Register, disp int32) Operand {
	return Operand{Kind: KindEffectiveAddress, Register: base, Displacement: disp}
}

// MemIndexed returns a base+index*scale+displacement memory operand.
// Scale must be 1, 2, 4 or 8.
func MemIndexed(base, index Register, scale uint8, disp int32) Operand {
	switch scale {
	case 1, 2, 4, 8:
	default:
		panic(fmt.Sprintf("invalid scale %d", scale))
	}
	return Operand{
		Kind:         KindEffectiveAddress,
		Register:     base,
		Index:        index,
		Scale:        scale,
		Displacement: disp,
	}
}

// ImmReg8 returns an 8-bit immediate with its destination register.
func ImmReg8(v int8, r Register) Operand {
	return Operand{
		Kind:          KindImmediateRegister,
		Immediate:     int64(v),
		ImmediateSize: Bit8,
		Register:      r,
	}
}

// ImmReg32 returns a 32-bit immediate with its destination register.
func ImmReg32(v int32, r Register) Operand {
	return Operand{
		Kind:          KindImmediateRegister,
		Immediate:     int64(v),
		ImmediateSize: Bit32,
		Register:      r,
	}
}

// HasIndex reports whether an effective address uses an index register.
func (o Operand) HasIndex() bool {
	return o.Kind == KindEffectiveAddress && o.Index != RegNone
}

// IsSingle reports whether the operand describes exactly one value.
func (o Operand) IsSingle() bool {
	return o.Kind != KindRegisterPair && o.Kind != KindImmediateRegister
}

// FirstRegister returns the register holding the first logical operand of
// a register pair, after applying the direction bit. For other shapes it
// returns Register.
func (o Operand) FirstRegister() Register {
	if o.Kind == KindRegisterPair && o.Reverse {
		return o.Register2
	}
	return o.Register
}

// SecondRegister returns the register holding the second logical operand
// of a register pair, after applying the direction bit. Immediate+register
// operands return their register; other shapes return RegNone.
func (o Operand) SecondRegister() Register {
	switch o.Kind {
	case KindRegisterPair:
		if o.Reverse {
			return o.Register
		}
		return o.Register2
	case KindImmediateRegister:
		return o.Register
	}
	return RegNone
}

// String renders the operand in GNU assembler syntax.
func (o Operand) String() string {
	switch o.Kind {
	case KindImmediate:
		return formatImmediate(o.Immediate)
	case KindRegister:
		return "%" + o.Register.String()
	case KindRegisterPair:
		return "%" + o.FirstRegister().String() + ",%" + o.SecondRegister().String()
	case KindEffectiveAddress:
		return formatDisplacement(o.Displacement) + "(" + o.formatAddress() + ")"
	case KindImmediateRegister:
		return formatImmediate(o.Immediate) + ",%" + o.Register.String()
	}
	return fmt.Sprintf("<%v>", o.Kind)
}

func formatImmediate(v int64) string {
	return fmt.Sprintf("$0x%x", uint64(v))
}

func formatDisplacement(d int32) string {
	if d < 0 {
		return fmt.Sprintf("-0x%x", -int64(d))
	}
	return fmt.Sprintf("0x%x", d)
}

func (o Operand) formatAddress() string {
	var sb strings.Builder
	sb.WriteString("%")
	sb.WriteString(o.Register.String())
	if o.HasIndex() {
		fmt.Fprintf(&sb, ",%%%s,%d", o.Index, o.Scale)
	}
	return sb.String()
}

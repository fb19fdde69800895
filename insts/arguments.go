package insts

// Arguments holds the one or two operands of a decoded instruction, the
// opcode byte that selected them and an optional explicit operand size.
// Build it with ArgumentsBuilder; the zero value is not meaningful.
type Arguments struct {
	First  Operand
	second *Operand

	opcode    uint8
	hasOpcode bool

	explicitSize    ArgumentSize
	hasExplicitSize bool
}

// Second returns the second operand, if present.
func (a Arguments) Second() (Operand, bool) {
	if a.second == nil {
		return Operand{}, false
	}
	return *a.second, true
}

// Opcode returns the opcode byte, if one was recorded.
func (a Arguments) Opcode() (uint8, bool) {
	return a.opcode, a.hasOpcode
}

// ExplicitSize returns the size override, if one was set.
func (a Arguments) ExplicitSize() (ArgumentSize, bool) {
	return a.explicitSize, a.hasExplicitSize
}

// AssertOneArgument panics unless exactly one operand is present.
// A failure means the instruction table is misconfigured.
func (a Arguments) AssertOneArgument() {
	if a.second != nil {
		panic("instruction accepts only one argument")
	}
}

// AssertTwoArguments panics unless two operands are present.
func (a Arguments) AssertTwoArguments() {
	if a.second == nil {
		panic("instruction requires two arguments")
	}
}

// Size infers the operand size of the instruction:
//  1. the explicit size, if set;
//  2. the width of a bare register operand, first operand checked first;
//  3. Bit64.
//
// Immediate and memory operands are not self-describing; per-operand
// widths come from emu.FirstOperandSize.
func (a Arguments) Size() ArgumentSize {
	if a.hasExplicitSize {
		return a.explicitSize
	}

	if a.First.Kind == KindRegister {
		return a.First.Register.Width()
	}
	if a.second != nil && a.second.Kind == KindRegister {
		return a.second.Register.Width()
	}

	return Bit64
}

// String renders the operands in GNU assembler syntax, comma separated.
func (a Arguments) String() string {
	if a.second == nil {
		return a.First.String()
	}
	return a.First.String() + "," + a.second.String()
}

// ArgumentsBuilder assembles an Arguments value.
type ArgumentsBuilder struct {
	args Arguments
}

// NewArgumentsBuilder starts a builder with the mandatory first operand.
func NewArgumentsBuilder(first Operand) *ArgumentsBuilder {
	return &ArgumentsBuilder{args: Arguments{First: first}}
}

// SecondArgument sets the second operand.
func (b *ArgumentsBuilder) SecondArgument(op Operand) *ArgumentsBuilder {
	b.args.second = &op
	return b
}

// Opcode records the opcode byte.
func (b *ArgumentsBuilder) Opcode(opcode uint8) *ArgumentsBuilder {
	b.args.opcode = opcode
	b.args.hasOpcode = true
	return b
}

// ExplicitSize overrides size inference.
func (b *ArgumentsBuilder) ExplicitSize(size ArgumentSize) *ArgumentsBuilder {
	b.args.explicitSize = size
	b.args.hasExplicitSize = true
	return b
}

// Finalize returns the built Arguments. The builder may be reused; later
// changes do not affect values already returned.
func (b *ArgumentsBuilder) Finalize() Arguments {
	args := b.args
	if args.second != nil {
		second := *args.second
		args.second = &second
	}
	return args
}

package emu

// Cond is an x86 condition code, numbered as in the Jcc/SETcc/CMOVcc
// encodings.
type Cond uint8

// x86 condition codes.
const (
	CondO  Cond = 0x0 // Overflow (OF == 1)
	CondNO Cond = 0x1 // No overflow (OF == 0)
	CondB  Cond = 0x2 // Below / carry (CF == 1)
	CondAE Cond = 0x3 // Above or equal / no carry (CF == 0)
	CondE  Cond = 0x4 // Equal / zero (ZF == 1)
	CondNE Cond = 0x5 // Not equal (ZF == 0)
	CondBE Cond = 0x6 // Below or equal (CF == 1 || ZF == 1)
	CondA  Cond = 0x7 // Above (CF == 0 && ZF == 0)
	CondS  Cond = 0x8 // Sign (SF == 1)
	CondNS Cond = 0x9 // No sign (SF == 0)
	CondP  Cond = 0xA // Parity even (PF == 1)
	CondNP Cond = 0xB // Parity odd (PF == 0)
	CondL  Cond = 0xC // Less (SF != OF)
	CondGE Cond = 0xD // Greater or equal (SF == OF)
	CondLE Cond = 0xE // Less or equal (ZF == 1 || SF != OF)
	CondG  Cond = 0xF // Greater (ZF == 0 && SF == OF)
)

var condNames = [...]string{
	"o", "no", "b", "ae", "e", "ne", "be", "a",
	"s", "ns", "p", "np", "l", "ge", "le", "g",
}

func (c Cond) String() string {
	if int(c) < len(condNames) {
		return condNames[c]
	}
	return "?"
}

// Eval reports whether cond holds for the current RFLAGS.
func (r *RegFile) Eval(cond Cond) bool {
	cf := r.Flag(FlagCarry)
	zf := r.Flag(FlagZero)
	sf := r.Flag(FlagSign)
	of := r.Flag(FlagOverflow)
	pf := r.Flag(FlagParity)

	// Odd codes negate the even code below them.
	var result bool
	switch cond &^ 1 {
	case CondO:
		result = of
	case CondB:
		result = cf
	case CondE:
		result = zf
	case CondBE:
		result = cf || zf
	case CondS:
		result = sf
	case CondP:
		result = pf
	case CondL:
		result = sf != of
	case CondLE:
		result = zf || sf != of
	}

	if cond&1 == 1 {
		return !result
	}
	return result
}

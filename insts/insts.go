// Package insts provides x86-64 register and operand definitions.
//
// This package describes the operands a decoder hands to the execution
// core. It supports:
//   - The register catalog: 64/32/8-bit general purpose registers, RIP and
//     segment selectors, each with a fixed width class
//   - Operands: immediates, registers, register pairs with a direction bit,
//     effective addresses and immediate+register shapes
//   - Operand-size inference and GNU assembler (AT&T) rendering
//
// Usage:
//
//	args := insts.NewArgumentsBuilder(insts.Imm32(0x2A)).
//		SecondArgument(insts.Mem(insts.RBP, -8)).
//		Finalize()
//	fmt.Println(args) // $0x2a,-0x8(%rbp)
package insts

// Package cpu implements the instruction set and assembler for the ECJR fantasy console.
//
// The instruction set has byte-sized register operands (up to 256 registers),
// a single double-precision immediate per instruction, and memory-mapped I/O
// addressed through well-known '$' constants. Every instruction occupies one
// address; jump targets and program addresses are instruction counts, not
// byte offsets.
//
// The assembler is a two pass assembler. The first pass records the address
// of every label so that instructions may refer to labels defined later in
// the source. The second pass resolves register aliases and constants in
// line order and encodes each instruction through the mnemonic table.
package cpu

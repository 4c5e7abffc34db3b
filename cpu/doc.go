// Package cpu implements the Baby machine and its two-pass assembler.
//
// The machine has a single accumulator, a program counter, an instruction
// register and a small store of 32-bit words (32 or 64 of them). Words are
// written and read in the weighted left-to-right convention: the first bit of
// a word is worth 2^0, the last 2^31. An instruction keeps its operand in bits
// 0-12 and its opcode in bits 13-16, with the opcode's most significant bit in
// bit 13.
//
// The assembler translates mnemonic source into those words. Labels are
// collected in a first pass into a bounded SymbolTable, and each source line
// is then encoded in a second pass. Operands written as $(...) are evaluated
// at assembly time.
package cpu

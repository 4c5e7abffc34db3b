package cpu

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"

	"github.com/ezrec/baby/io"
)

// Opcode is the 4-bit instruction selector, as spelled in the source listing
// (most significant bit first).
type Opcode int

const (
	OP_JMP  = Opcode(0b0000) // JMP
	OP_JRP  = Opcode(0b1000) // JRP
	OP_LDN  = Opcode(0b0100) // LDN
	OP_STO  = Opcode(0b1100) // STO
	OP_SUB  = Opcode(0b0010) // SUB
	OP_SUB2 = Opcode(0b1010) // SUB2
	OP_CMP  = Opcode(0b0110) // CMP
	OP_STP  = Opcode(0b1110) // STP
	OP_ADD  = Opcode(0b0001) // ADD
	OP_MUL  = Opcode(0b1001) // MUL
	OP_DIV  = Opcode(0b0101) // DIV
	OP_AND  = Opcode(0b1101) // AND
	OP_OR   = Opcode(0b0011) // OR
	OP_XOR  = Opcode(0b1011) // XOR
	OP_SHL  = Opcode(0b0111) // SHL
	OP_SHR  = Opcode(0b1111) // SHR
)

const (
	WORD_BITS    = io.WORD_BITS
	OPERAND_BITS = 13                      // Width of the operand field.
	OPERAND_MAX  = (1 << OPERAND_BITS) - 1 // Largest operand.
	OPCODE_SHIFT = OPERAND_BITS            // First bit of the opcode field.
	OPCODE_BITS  = 4                       // Width of the opcode field.
	OPCODE_COUNT = 1 << OPCODE_BITS
)

// opcodeMnemonic is indexed by Opcode.
var opcodeMnemonic = [OPCODE_COUNT]string{
	OP_JMP:  "JMP",
	OP_JRP:  "JRP",
	OP_LDN:  "LDN",
	OP_STO:  "STO",
	OP_SUB:  "SUB",
	OP_SUB2: "SUB2",
	OP_CMP:  "CMP",
	OP_STP:  "STP",
	OP_ADD:  "ADD",
	OP_MUL:  "MUL",
	OP_DIV:  "DIV",
	OP_AND:  "AND",
	OP_OR:   "OR",
	OP_XOR:  "XOR",
	OP_SHL:  "SHL",
	OP_SHR:  "SHR",
}

var mnemonicOpcode = func() map[string]Opcode {
	mm := make(map[string]Opcode, OPCODE_COUNT)
	for op, mnemonic := range opcodeMnemonic {
		mm[mnemonic] = Opcode(op)
	}
	return mm
}()

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeMnemonic) {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
	return opcodeMnemonic[op]
}

// LookupOpcode finds the opcode for a mnemonic. Mnemonics are case sensitive.
func LookupOpcode(mnemonic string) (op Opcode, ok bool) {
	op, ok = mnemonicOpcode[mnemonic]
	return
}

// Word is a single store word. Bit n is the n'th character of its text form.
type Word uint32

// reverseNibble mirrors the low four bits.
func reverseNibble(value uint32) uint32 {
	return uint32(bits.Reverse8(uint8(value&0xf)) >> 4)
}

// MakeWord creates an instruction word.
func MakeWord(op Opcode, operand uint16) Word {
	word := uint32(operand) & OPERAND_MAX
	word |= reverseNibble(uint32(op)) << OPCODE_SHIFT
	return Word(word)
}

// MakeVar creates a literal data word.
func MakeVar(value uint32) Word {
	return Word(value)
}

// Decode returns the opcode and operand fields of the word.
// Bits 17-31 are ignored.
func (word Word) Decode() (op Opcode, operand uint16) {
	operand = uint16(uint32(word) & OPERAND_MAX)
	op = Opcode(reverseNibble(uint32(word) >> OPCODE_SHIFT))
	return
}

// Int returns the word as a signed value.
func (word Word) Int() int32 {
	return int32(word)
}

// Bit returns the n'th bit of the word.
func (word Word) Bit(n int) bool {
	return (word>>n)&1 != 0
}

// String returns the 32 character text form of the word.
func (word Word) String() string {
	return io.FormatLine(uint32(word))
}

// ParseWord parses the 32 character text form of a word.
func ParseWord(text string) (word Word, err error) {
	value, err := io.ParseLine(text)
	if err != nil {
		return
	}

	word = Word(value)
	return
}

// Disassemble returns the assembly language form of an instruction word.
func Disassemble(word Word) string {
	op, operand := word.Decode()
	if op == OP_STP {
		return op.String()
	}

	return fmt.Sprintf("%v %d", op, operand)
}

// EncodeInstruction encodes one mnemonic and its operand text, resolving
// labels against the symbol table. A nil table is empty. On failure the word
// is zero.
func EncodeInstruction(mnemonic string, operand string, symbols *SymbolTable) (word Word, err error) {
	asm := &Assembler{}
	if symbols != nil {
		asm.Symbols = *symbols
	}
	return asm.encode(mnemonic, operand)
}

// encode is the single line encoder, with operands resolved by the assembler.
func (asm *Assembler) encode(mnemonic string, operand string) (word Word, err error) {
	var value int64

	if mnemonic == "VAR" {
		if len(operand) == 0 {
			return
		}
		value, err = strconv.ParseInt(operand, 10, 64)
		if err != nil {
			value, err = asm.resolve(operand)
			if err != nil {
				return
			}
		}
		if value < math.MinInt32 || value > math.MaxUint32 {
			err = ErrOperandRange(value)
			return
		}
		word = MakeVar(uint32(value))
		return
	}

	op, ok := LookupOpcode(mnemonic)
	if !ok {
		err = ErrMnemonic(mnemonic)
		return
	}

	// STP is a fixed pattern; any operand is ignored.
	if op == OP_STP {
		word = MakeWord(OP_STP, 0)
		return
	}

	if len(operand) != 0 {
		value, err = asm.resolve(operand)
		if err != nil {
			return
		}
	}

	if value < 0 || value > OPERAND_MAX {
		err = ErrOperandRange(value)
		return
	}

	word = MakeWord(op, uint16(value))
	return
}

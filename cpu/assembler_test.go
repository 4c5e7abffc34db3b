package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, program []string) (asm *Assembler, prog *Program, err error) {
	asm = &Assembler{}
	prog, err = asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm, prog, err := assemble(t, []string{})
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))
	assert.True(asm.Symbols.Empty())
}

func TestAssemblerAddresses(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"A: LDN 2",
		"; only a comment",
		"B: ADD 3",
		"",
		"   ",
		"C: STP ; stop: here",
	}

	asm, prog, err := assemble(t, program)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal([]Symbol{{"A", 0}, {"B", 1}, {"C", 2}}, asm.Symbols.Symbols())

	expected := []Line{
		{1, 0, "A", "LDN", "2", MakeWord(OP_LDN, 2)},
		{3, 1, "B", "ADD", "3", MakeWord(OP_ADD, 3)},
		{6, 2, "C", "STP", "", MakeWord(OP_STP, 0)},
	}
	assert.Equal(expected, prog.Lines)
}

func TestAssemblerForwardReference(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"      VAR 0      ; boot line",
		"      LDN NUM01",
		"      SUB NUM02",
		"      STO RESULT",
		"      JMP END",
		"NUM01: VAR 10",
		"NUM02: VAR -3",
		"RESULT: VAR 0",
		"END:  STP",
	}

	asm, prog, err := assemble(t, program)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	for name, address := range map[string]int{"NUM01": 5, "NUM02": 6, "RESULT": 7, "END": 8} {
		got, ok := asm.Symbols.Lookup(name)
		assert.True(ok, name)
		assert.Equal(address, got, name)
	}

	expected := []Word{
		0,
		MakeWord(OP_LDN, 5),
		MakeWord(OP_SUB, 6),
		MakeWord(OP_STO, 7),
		MakeWord(OP_JMP, 8),
		MakeVar(10),
		MakeVar(uint32(0xffff_fffd)),
		0,
		MakeWord(OP_STP, 0),
	}

	var words []Word
	for address, word := range prog.Words() {
		assert.Equal(len(words), address)
		words = append(words, word)
	}
	assert.Equal(expected, words)
}

func TestAssemblerLabelOnly(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"VAR 0",
		"HERE:",
		"JMP HERE",
	}

	_, prog, err := assemble(t, program)
	assert.NoError(err)
	assert.Equal([]uint32{0, 0, uint32(MakeWord(OP_JMP, 1))}, prog.Binary())
	assert.Equal("HERE", prog.Lines[1].Label)
	assert.Equal("", prog.Lines[1].Mnemonic)
}

func TestAssemblerVarLabel(t *testing.T) {
	assert := assert.New(t)

	// A label spelled 'VAR' is never bound.
	program := []string{
		"VAR: VAR 1",
		"LDN 0",
	}

	asm, prog, err := assemble(t, program)
	assert.NoError(err)
	assert.True(asm.Symbols.Empty())
	assert.Equal("", prog.Lines[0].Label)
	assert.Equal([]uint32{1, uint32(MakeWord(OP_LDN, 0))}, prog.Binary())
}

func TestAssemblerWhitespace(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"\tSTART:\tLDN\t  2  ",
		"ADD   3;comment",
	}

	_, prog, err := assemble(t, program)
	assert.NoError(err)
	assert.Equal("2", prog.Lines[0].Operand)
	assert.Equal("3", prog.Lines[1].Operand)
	assert.Equal([]uint32{uint32(MakeWord(OP_LDN, 2)), uint32(MakeWord(OP_ADD, 3))}, prog.Binary())
}

func TestAssemblerDuplicate(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"L: LDN 1",
		"ADD 2",
		"L: STP",
	}

	_, prog, err := assemble(t, program)
	assert.Nil(prog)
	assert.ErrorIs(err, ErrSymbol)
	assert.True(errors.Is(err, ErrSymbolDuplicate("L")))

	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(3, syntax.LineNo)
	assert.Equal("L: STP", syntax.Line)
}

func TestAssemblerUndefined(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"VAR 0",
		"LDN NOWHERE",
		"STP",
	}

	_, prog, err := assemble(t, program)
	assert.Nil(prog)
	assert.ErrorIs(err, ErrSymbol)

	var missing ErrSymbolMissing
	assert.True(errors.As(err, &missing))
	assert.Equal("NOWHERE", string(missing))
	assert.Contains(err.Error(), "NOWHERE")
}

func TestAssemblerNegativeOperand(t *testing.T) {
	assert := assert.New(t)

	_, prog, err := assemble(t, []string{"VAR 0", "LDN -1"})
	assert.Nil(prog)
	assert.ErrorIs(err, ErrFormat)
	assert.NotErrorIs(err, ErrSymbol)
	assert.True(errors.Is(err, ErrOperandRange(-1)))

	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(2, syntax.LineNo)
}

func TestAssemblerLongLine(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"VAR 0",
		"STP",
		"; " + strings.Repeat("x", 70_000),
	}

	_, prog, err := assemble(t, program)
	assert.Nil(prog)
	assert.ErrorIs(err, bufio.ErrTooLong)

	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(3, syntax.LineNo)
}

func TestAssemblerUnknownMnemonic(t *testing.T) {
	assert := assert.New(t)

	_, _, err := assemble(t, []string{"VAR 0", "HALT"})
	assert.ErrorIs(err, ErrOpcode)
	assert.True(errors.Is(err, ErrMnemonic("HALT")))
}

func TestAssemblerTableFull(t *testing.T) {
	assert := assert.New(t)

	var program []string
	for n := range SYMBOL_LIMIT + 1 {
		program = append(program, fmt.Sprintf("L%d: VAR %d", n, n))
	}

	_, _, err := assemble(t, program)
	assert.ErrorIs(err, ErrSymbol)
	assert.True(errors.Is(err, ErrSymbolTableFull(fmt.Sprintf("L%d", SYMBOL_LIMIT))))

	_, _, err = assemble(t, program[:SYMBOL_LIMIT])
	assert.NoError(err)
}

func TestAssemblerExpression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("SCALE", "0x10")
	asm.Predefine("NAME", "not-a-number")

	program := []string{
		"VAR 0",
		"LDN $(DATA + 1)",
		"STO $(SCALE * 2)",
		"VAR $(-SCALE)",
		"JMP $(MEMORY_SMALL - 1)",
		"DATA: VAR 0",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal([]uint32{
		0,
		uint32(MakeWord(OP_LDN, 6)),
		uint32(MakeWord(OP_STO, 32)),
		0xffff_fff0,
		uint32(MakeWord(OP_JMP, 31)),
		0,
	}, prog.Binary())

	_, err = asm.Parse(strings.NewReader("LDN $(NAME)"))
	assert.ErrorIs(err, ErrFormat)

	_, err = asm.Parse(strings.NewReader("LDN $(OPERAND_MAX + 1)"))
	assert.True(errors.Is(err, ErrOperandRange(OPERAND_MAX+1)))
}

func TestAssemblerReuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("A: VAR 1\nB: VAR 2"))
	assert.NoError(err)
	assert.Equal(2, asm.Symbols.Len())

	// A second parse starts from an empty table.
	_, err = asm.Parse(strings.NewReader("B: VAR 1"))
	assert.NoError(err)
	assert.Equal([]Symbol{{"B", 0}}, asm.Symbols.Symbols())
}

func TestAssembleFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "prog.asm")
	output := filepath.Join(dir, "prog.mc")

	source := "START: LDN 2\n ADD 3\n STP\n VAR 5\n VAR -5\n"
	assert.NoError(os.WriteFile(input, []byte(source), 0644))

	err := AssembleFile(input, output, false)
	assert.NoError(err)

	data, err := os.ReadFile(output)
	assert.NoError(err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Equal([]string{
		"01000000000000100000000000000000",
		"11000000000000001000000000000000",
		"00000000000001110000000000000000",
		"10100000000000000000000000000000",
		"11011111111111111111111111111111",
	}, lines)
}

func TestAssembleFile_Failure(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "dup.asm")
	output := filepath.Join(dir, "dup.mc")

	assert.NoError(os.WriteFile(input, []byte("L: VAR 1\nL: VAR 2\n"), 0644))

	err := AssembleFile(input, output, false)
	assert.ErrorIs(err, ErrSymbol)

	_, err = os.Stat(output)
	assert.True(os.IsNotExist(err))

	err = AssembleFile(filepath.Join(dir, "missing.asm"), output, false)
	assert.ErrorIs(err, ErrResource)
	assert.ErrorIs(err, os.ErrNotExist)

	_, err = os.Stat(output)
	assert.True(os.IsNotExist(err))

	assert.NoError(os.WriteFile(input, []byte("VAR 1\n"), 0644))
	err = AssembleFile(input, filepath.Join(dir, "no", "such", "dir.mc"), false)
	assert.ErrorIs(err, ErrResource)
}

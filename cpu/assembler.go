// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/baby/internal"
)

// Predefined system equates, visible to $(...) expressions.
var _cpu_defines = map[string]string{
	"WORD_BITS":    fmt.Sprintf("%v", WORD_BITS),
	"OPERAND_BITS": fmt.Sprintf("%v", OPERAND_BITS),
	"OPERAND_MAX":  fmt.Sprintf("%v", OPERAND_MAX),
	"MEMORY_SMALL": fmt.Sprintf("%v", MEMORY_SMALL),
	"MEMORY_LARGE": fmt.Sprintf("%v", MEMORY_LARGE),
}

// Defines for the cpu
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Assembler is a two pass assembler for the Baby.
//
// The first pass binds every label to the address of its line; the second
// encodes one word per line against the completed symbol table.
type Assembler struct {
	Verbose bool        // If set, verbosely logs the assembler actions.
	Symbols SymbolTable // Labels found by the first pass.

	predefine map[string]string // Predefines
}

// Predefine defines a new equate or redefines an existing equate, for use
// in $(...) expressions.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// splitLine removes the comment and label from a source line. Lines that
// are blank once the comment is gone report ok == false.
func splitLine(text string) (label string, body string, ok bool) {
	text, _, _ = strings.Cut(text, ";")
	if len(strings.TrimSpace(text)) == 0 {
		return
	}

	ok = true
	before, after, found := strings.Cut(text, ":")
	if found {
		label = strings.TrimSpace(before)
		text = after
	}

	body = strings.TrimSpace(text)
	return
}

// splitBody splits an instruction into mnemonic and operand.
func splitBody(body string) (mnemonic string, operand string) {
	n := strings.IndexFunc(body, unicode.IsSpace)
	if n < 0 {
		mnemonic = body
		return
	}

	mnemonic = body[:n]
	operand = strings.TrimSpace(body[n:])
	return
}

// isDecimal is true for a non-empty run of ASCII digits, with an optional
// leading sign.
func isDecimal(text string) bool {
	if len(text) > 0 && (text[0] == '-' || text[0] == '+') {
		text = text[1:]
	}
	if len(text) == 0 {
		return false
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// resolve returns the value of an operand: a decimal number, a $(...)
// expression, or a label.
func (asm *Assembler) resolve(operand string) (value int64, err error) {
	switch {
	case isDecimal(operand):
		value, err = strconv.ParseInt(operand, 10, 64)
		if err != nil {
			err = ErrParseNumber(operand)
		}
	case strings.HasPrefix(operand, "$(") && strings.HasSuffix(operand, ")"):
		value, err = asm.parenEval(operand[2 : len(operand)-1])
	default:
		address, ok := asm.Symbols.Lookup(operand)
		if !ok {
			err = ErrSymbolMissing(operand)
			return
		}
		value = int64(address)
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range internal.ConcatSeq2(Defines(), maps.All(asm.predefine)) {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for name, address := range asm.Symbols.All() {
		pred[name] = starlark.MakeInt(address)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	var source []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		source = append(source, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		// The line that could not be read.
		lineno = len(source) + 1
		return
	}

	asm.Symbols.Reset()

	// Pass 1: bind labels to addresses.
	address := 0
	for n, text := range source {
		lineno, line = n+1, text

		label, _, ok := splitLine(text)
		if !ok {
			continue
		}

		if len(label) > 0 && label != "VAR" {
			err = asm.Symbols.Add(label, address)
			if err != nil {
				return
			}
			if asm.Verbose {
				log.Printf("asm: label %v at %v", label, address)
			}
		}

		address++
	}

	// Pass 2: emit one word per line.
	prog = &Program{}
	address = 0
	for n, text := range source {
		lineno, line = n+1, text

		label, body, ok := splitLine(text)
		if !ok {
			continue
		}

		if label == "VAR" {
			label = ""
		}

		mnemonic, operand := splitBody(body)

		// A line with only a label holds a zero word.
		var word Word
		if len(mnemonic) != 0 {
			word, err = asm.encode(mnemonic, operand)
			if err != nil {
				return
			}
		}

		prog.Lines = append(prog.Lines, Line{
			LineNo:   lineno,
			Address:  address,
			Label:    label,
			Mnemonic: mnemonic,
			Operand:  operand,
			Word:     word,
		})

		if asm.Verbose {
			log.Printf("asm: %02d: %v %v", address, word, Disassemble(word))
		}

		address++
	}

	return
}

// AssembleFile assembles a source file into a machine-code file.
// The output is only created once the whole source has assembled.
func (asm *Assembler) AssembleFile(inputPath string, outputPath string) (err error) {
	inf, err := os.Open(inputPath)
	if err != nil {
		err = &ErrFile{Path: inputPath, Err: err}
		return
	}
	defer inf.Close()

	prog, err := asm.Parse(inf)
	if err != nil {
		return
	}

	ouf, err := os.Create(outputPath)
	if err != nil {
		err = &ErrFile{Path: outputPath, Err: err}
		return
	}

	err = prog.Image().Marshal(ouf)
	cerr := ouf.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outputPath)
		err = &ErrFile{Path: outputPath, Err: err}
		return
	}

	if asm.Verbose {
		log.Printf("asm: %v: %d words", outputPath, len(prog.Lines))
	}

	return
}

// AssembleFile assembles inputPath into outputPath.
func AssembleFile(inputPath string, outputPath string, verbose bool) (err error) {
	asm := &Assembler{Verbose: verbose}
	return asm.AssembleFile(inputPath, outputPath)
}

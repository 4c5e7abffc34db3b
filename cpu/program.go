package cpu

import (
	"iter"

	"github.com/ezrec/baby/io"
)

// Line is one assembled source line.
type Line struct {
	LineNo   int    // Source line number, from 1.
	Address  int    // Store address of the word.
	Label    string // Label defined on the line, if any.
	Mnemonic string
	Operand  string
	Word     Word
}

type Program struct {
	Lines []Line
}

// Debug returns the source line that produced the word at an address.
func (prog *Program) Debug(address int) (line *Line) {
	for n := range prog.Lines {
		if prog.Lines[n].Address == address {
			return &prog.Lines[n]
		}
	}

	return
}

// Words iterates over address and word.
func (prog *Program) Words() iter.Seq2[int, Word] {
	return func(yield func(address int, word Word) bool) {
		for _, line := range prog.Lines {
			if !yield(line.Address, line.Word) {
				return
			}
		}
	}
}

func (prog *Program) Binary() (bins []uint32) {
	for _, word := range prog.Words() {
		bins = append(bins, uint32(word))
	}

	return
}

// Image returns the machine-code image of the program.
func (prog *Program) Image() *io.Image {
	return &io.Image{Data: prog.Binary()}
}

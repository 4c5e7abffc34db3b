package cpu

import (
	"errors"

	"github.com/ezrec/baby/io"
	"github.com/ezrec/baby/translate"
)

var f = translate.From

var (
	// Error kinds, for errors.Is()
	ErrFormat     = io.ErrFormat
	ErrSymbol     = errors.New(f("symbol error"))
	ErrOpcode     = errors.New(f("opcode error"))
	ErrArithmetic = errors.New(f("arithmetic error"))
	ErrResource   = errors.New(f("resource error"))

	// Cpu errors
	ErrChannelPartial = errors.New(f("partial channel read"))
)

type ErrSymbolDuplicate string

func (err ErrSymbolDuplicate) Error() string {
	return f("symbol '%v' already defined", string(err))
}

func (err ErrSymbolDuplicate) Is(target error) bool {
	return target == ErrSymbol
}

type ErrSymbolMissing string

func (err ErrSymbolMissing) Error() string {
	return f("symbol '%v' undefined", string(err))
}

func (err ErrSymbolMissing) Is(target error) bool {
	return target == ErrSymbol
}

// ErrSymbolTableFull names the symbol that did not fit.
type ErrSymbolTableFull string

func (err ErrSymbolTableFull) Error() string {
	return f("symbol table full (%d entries), cannot add '%v'", SYMBOL_LIMIT, string(err))
}

func (err ErrSymbolTableFull) Is(target error) bool {
	return target == ErrSymbol
}

type ErrSymbolName string

func (err ErrSymbolName) Error() string {
	return f("'%v' is not a symbol name", string(err))
}

func (err ErrSymbolName) Is(target error) bool {
	return target == ErrSymbol
}

type ErrMnemonic string

func (err ErrMnemonic) Error() string {
	return f("unknown opcode '%v'", string(err))
}

func (err ErrMnemonic) Is(target error) bool {
	return target == ErrOpcode
}

type ErrOperandRange int64

func (err ErrOperandRange) Error() string {
	return f("operand %d out of range", int64(err))
}

func (err ErrOperandRange) Is(target error) bool {
	return target == ErrFormat
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Is(target error) bool {
	return target == ErrFormat
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

func (err ErrParseExpression) Is(target error) bool {
	return target == ErrFormat
}

// ErrDivideByZero is the store address of the zero divisor.
type ErrDivideByZero int

func (err ErrDivideByZero) Error() string {
	return f("division by zero (divisor at address %d)", int(err))
}

func (err ErrDivideByZero) Is(target error) bool {
	return target == ErrArithmetic
}

// ErrFetch is a program counter outside of the store.
type ErrFetch int

func (err ErrFetch) Error() string {
	return f("fetch from address %d outside of store", int(err))
}

type ErrMode Mode

func (err ErrMode) Error() string {
	return f("addressing mode %d unknown", int(err))
}

// ErrFile is a file that could not be read or written.
type ErrFile struct {
	Path string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrFile) Is(target error) bool {
	return target == ErrResource
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

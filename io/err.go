package io

import (
	"errors"

	"github.com/ezrec/baby/translate"
)

var f = translate.From

var (
	// ErrFormat is the kind of every malformed machine-code error.
	ErrFormat = errors.New(f("format error"))
)

// ErrWordLength is a machine-code line of the wrong length.
type ErrWordLength int

func (err ErrWordLength) Error() string {
	return f("word has %d characters, expected %d", int(err), WORD_BITS)
}

func (err ErrWordLength) Is(target error) bool {
	return target == ErrFormat
}

// ErrWordAlphabet is a machine-code line with a character other than '0' or '1'.
type ErrWordAlphabet struct {
	Column int
	Char   rune
}

func (err ErrWordAlphabet) Error() string {
	return f("column %d: %q is not a binary digit", err.Column, err.Char)
}

func (err ErrWordAlphabet) Is(target error) bool {
	return target == ErrFormat
}

// ErrLine locates an image error.
type ErrLine struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrLine) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}

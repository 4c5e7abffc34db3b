package io

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

const (
	WORD_BITS = 32 // Bits per word, and characters per image line.
)

// Image is a machine-code image, one uint32 per store word.
type Image struct {
	Data []uint32

	writeIndex int
}

var _ Channel = (*Image)(nil)

// ParseLine converts a single 32 character line into its word value.
// Column n (0-based) carries weight 2^n.
func ParseLine(line string) (word uint32, err error) {
	if len(line) != WORD_BITS {
		err = ErrWordLength(len(line))
		return
	}

	for n := range WORD_BITS {
		switch line[n] {
		case '0':
		case '1':
			word |= 1 << n
		default:
			err = ErrWordAlphabet{Column: n + 1, Char: rune(line[n])}
			return
		}
	}

	return
}

// FormatLine is the inverse of ParseLine.
func FormatLine(word uint32) string {
	var text [WORD_BITS]byte
	for n := range WORD_BITS {
		text[n] = '0' + byte((word>>n)&1)
	}
	return string(text[:])
}

// Unmarshal reads a text image. The whole stream is validated before Data
// is replaced, so a failed Unmarshal leaves the image untouched.
func (im *Image) Unmarshal(r io.Reader) (err error) {
	scanner := bufio.NewScanner(r)

	var data []uint32
	var lineno int
	for scanner.Scan() {
		lineno++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		var word uint32
		word, err = ParseLine(line)
		if err != nil {
			err = &ErrLine{LineNo: lineno, Line: line, Err: err}
			return
		}
		data = append(data, word)
	}

	err = scanner.Err()
	if err != nil {
		err = &ErrLine{LineNo: lineno + 1, Err: err}
		return
	}

	im.Data = data
	im.writeIndex = 0

	return
}

// Marshal writes the image as text, one newline terminated line per word.
func (im *Image) Marshal(w io.Writer) (err error) {
	out := bufio.NewWriter(w)
	for _, word := range im.Data {
		_, err = out.WriteString(FormatLine(word) + "\n")
		if err != nil {
			return
		}
	}

	return out.Flush()
}

// Rewind moves the write position back to the first bit of the first word.
func (im *Image) Rewind() {
	im.writeIndex = 0
}

// Receive yields every bit of the image, word by word, 2^0 first.
func (im *Image) Receive() iter.Seq[bool] {
	return func(yield func(value bool) bool) {
		for _, data := range im.Data {
			for bitpos := range WORD_BITS {
				bit := (data & (1 << bitpos)) != 0
				if !yield(bit) {
					return
				}
			}
		}
	}
}

// Send overwrites the bit at the write position, growing the image by a
// word whenever the position passes its end.
func (im *Image) Send(value bool) (err error) {
	index := im.writeIndex / WORD_BITS
	bitpos := im.writeIndex % WORD_BITS

	for index >= len(im.Data) {
		im.Data = append(im.Data, 0)
	}

	if value {
		im.Data[index] |= 1 << bitpos
	} else {
		im.Data[index] &^= 1 << bitpos
	}

	im.writeIndex++

	return
}

// Package io provides the machine-code image used by the Baby assembler and
// simulator: the line-oriented text format ('0'/'1', 32 characters per word)
// and the bit-serial Channel that the CPU loads its store from.
//
// Bits travel in the weighted left-to-right order: the first bit of a word
// written or read is worth 2^0, the last 2^31.
package io

import (
	"iter"
)

// Channel is a bit-serial connection to the CPU store.
type Channel interface {
	// Rewind resets the write position to the start of the channel.
	Rewind()
	// Receive returns an iterator that yields bits from the channel.
	Receive() iter.Seq[bool]
	// Send writes a single bit to the channel.
	Send(value bool) error
}

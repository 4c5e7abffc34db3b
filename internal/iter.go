package internal

import (
	"iter"
)

// ConcatSeq2 chains key/value iterators; later sequences may repeat keys
// of earlier ones, and consumers that build maps keep the last one.
func ConcatSeq2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
//
// Later sequences may repeat keys of earlier ones; collecting the result into a
// map keeps the last value seen.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
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

// IterSeq2Indexed yields each element of names paired with its index,
// converted by conv.
func IterSeq2Indexed[V any](names []string, conv func(n int) V) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for n, name := range names {
			if !yield(name, conv(n)) {
				return
			}
		}
	}
}

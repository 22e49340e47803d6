// Package tokenizer splits corpus bytes into whitespace-delimited tokens.
// A token is a maximal run of non-whitespace characters, so no empty
// tokens are ever produced and no bytes are altered.
package tokenizer

import (
	"bufio"
	"io"
	"iter"
	"unicode"
	"unicode/utf8"

	go_iterators "github.com/lezhnev74/go-iterators"
)

// maxTokenSize caps a single token read from a stream. A corpus with a
// longer unbroken run of non-whitespace bytes fails the scan.
const maxTokenSize = 16 * 1024 * 1024

// Tokens yields the tokens of input in order of appearance.
// Splitting happens on Unicode whitespace. The yielded slices alias input
// and must be copied if retained beyond one iteration.
func Tokens(input []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		start := -1 // -1 means "between tokens"
		for i := 0; i < len(input); {
			r, size := rune(input[i]), 1
			if r >= utf8.RuneSelf {
				r, size = utf8.DecodeRune(input[i:])
			}

			if unicode.IsSpace(r) {
				if start >= 0 && !yield(input[start:i]) {
					return
				}
				start = -1
			} else if start < 0 {
				start = i
			}
			i += size
		}

		if start >= 0 {
			yield(input[start:])
		}
	}
}

// NewStreamIterator returns an iterator over the tokens of r, for corpora
// that cannot be mapped into memory (pipes, stdin). The returned bytes are
// only valid until the next call to Next. Read failures come out of Next,
// the end of the stream is reported as go_iterators.EmptyIterator.
func NewStreamIterator(r io.Reader) go_iterators.Iterator[[]byte] {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	sc.Split(bufio.ScanWords)

	return go_iterators.NewCallbackIterator(
		func() ([]byte, error) {
			if sc.Scan() {
				return sc.Bytes(), nil
			}
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, go_iterators.EmptyIterator
		},
		func() error { return nil },
	)
}

// Package ngram extracts contiguous character n-grams from tokens.
package ngram

import (
	"iter"
	"log"
)

// Extractor emits every contiguous substring of a token whose length in
// characters falls within [MinN, MaxN]. With Bracket set, the token is
// wrapped in "<" and ">" before extraction; the marks count as ordinary
// characters of the working string, the token itself is never altered.
type Extractor struct {
	MinN, MaxN int
	Bracket    bool
}

// New builds an Extractor. Lengths are in characters, not bytes.
func New(minN, maxN int, bracket bool) Extractor {
	if minN < 1 {
		log.Panicf("ngram min length is set to %d", minN)
	}
	if minN > maxN {
		log.Panicf("ngram wrong min/max: %d/%d", minN, maxN)
	}
	return Extractor{MinN: minN, MaxN: maxN, Bracket: bracket}
}

// Extract yields the n-grams of token: lengths ascend from MinN to MaxN
// and within one length the start position moves left to right. A token
// shorter than MinN characters (brackets included) yields nothing.
// The yielded strings share the working string's backing array.
func (e Extractor) Extract(token string) iter.Seq[string] {
	return func(yield func(string) bool) {
		s := token
		if e.Bracket {
			s = "<" + token + ">"
		}

		offsets := runeOffsets(s)
		chars := len(offsets) - 1

		for n := e.MinN; n <= min(e.MaxN, chars); n++ {
			for p := 0; p+n <= chars; p++ {
				if !yield(s[offsets[p]:offsets[p+n]]) {
					return
				}
			}
		}
	}
}

// runeOffsets returns the byte offset of every character of s plus a
// trailing len(s), so that s[offsets[i]:offsets[j]] spans characters [i,j).
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

package count

import (
	"io"

	"corpus-count/internal/common"
)

const (
	// segments below this size are not worth counting in parallel
	minSegmentSize = 256 * 1024
	// window scanned for a whitespace byte when aligning a cut
	alignWindow = 4096
)

// splitAligned cuts [0,size) into at most n segments whose boundaries sit
// on ASCII whitespace bytes, so no token ever spans two segments. When no
// separator is found near a planned cut the neighbouring segments merge;
// a corpus separated only by multi-byte whitespace degrades to fewer
// segments, counting stays correct either way.
func splitAligned(r io.ReaderAt, size, n int) []common.Location {
	if size <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if size/n < minSegmentSize {
		n = max(1, size/minSegmentSize)
	}
	if n == 1 {
		return []common.Location{{From: 0, To: size}}
	}

	cuts := make([]int, 0, n+1)
	cuts = append(cuts, 0)
	window := make([]byte, alignWindow)
	for i := 1; i < n; i++ {
		cut, ok := alignForward(r, window, size*i/n, size)
		if !ok || cut <= cuts[len(cuts)-1] {
			continue
		}
		cuts = append(cuts, cut)
	}
	cuts = append(cuts, size)

	segments := make([]common.Location, 0, len(cuts)-1)
	for i := 1; i < len(cuts); i++ {
		if cuts[i] > cuts[i-1] {
			segments = append(segments, common.Location{From: cuts[i-1], To: cuts[i]})
		}
	}
	return segments
}

// alignForward returns the offset of the first ASCII whitespace byte at or
// after target.
func alignForward(r io.ReaderAt, window []byte, target, size int) (int, bool) {
	for off := target; off < size; off += len(window) {
		w := window
		if rem := size - off; rem < len(w) {
			w = w[:rem]
		}

		n, err := r.ReadAt(w, int64(off))
		if err != nil && err != io.EOF {
			return 0, false
		}
		for i, b := range w[:n] {
			if asciiSpace(b) {
				return off + i, true
			}
		}
		if n < len(w) {
			return 0, false
		}
	}
	return 0, false
}

func asciiSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

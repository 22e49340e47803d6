package freq

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func tableOf(counts map[string]uint64) *Table {
	t := NewTable()
	for item, n := range counts {
		t.Add(item, n)
	}
	return t
}

func TestIncCopiesTheItem(t *testing.T) {
	tbl := NewTable()

	buf := []byte("abc")
	tbl.Inc(buf)
	buf[0] = 'x' // the table must not observe this
	tbl.Inc(buf)

	require.Equal(t, uint64(1), tbl.Get("abc"))
	require.Equal(t, uint64(1), tbl.Get("xbc"))
	require.Equal(t, uint64(0), tbl.Get("absent"))
	require.Equal(t, 2, tbl.Len())
	require.Equal(t, uint64(2), tbl.Total())
}

func TestAddAccumulates(t *testing.T) {
	tbl := NewTable()
	tbl.Add("ngram", 3)
	tbl.Add("ngram", 2)
	tbl.Add("other", 1)

	require.Equal(t, uint64(5), tbl.Get("ngram"))
	require.Equal(t, uint64(1), tbl.Get("other"))
	require.Equal(t, uint64(6), tbl.Total())
}

func TestMerge(t *testing.T) {
	dst := tableOf(map[string]uint64{"a": 2, "b": 1})
	src := tableOf(map[string]uint64{"b": 3, "c": 4})

	dst.Merge(src)

	require.Equal(t, uint64(2), dst.Get("a"))
	require.Equal(t, uint64(4), dst.Get("b"))
	require.Equal(t, uint64(4), dst.Get("c"))
	require.Equal(t, uint64(10), dst.Total())
	// the source is left intact
	require.Equal(t, uint64(7), src.Total())
}

func TestFilter(t *testing.T) {

	type test struct {
		counts   map[string]uint64
		min      uint64
		expected map[string]uint64
	}

	tests := []test{
		{ // min of zero keeps everything
			counts:   map[string]uint64{"a": 3, "b": 1},
			min:      0,
			expected: map[string]uint64{"a": 3, "b": 1},
		},
		{ // min of one keeps everything too, every item occurs at least once
			counts:   map[string]uint64{"a": 3, "b": 1},
			min:      1,
			expected: map[string]uint64{"a": 3, "b": 1},
		},
		{ // items at exactly min survive
			counts:   map[string]uint64{"a": 3, "b": 2, "c": 1},
			min:      2,
			expected: map[string]uint64{"a": 3, "b": 2},
		},
		{ // filtering everything out is legal
			counts:   map[string]uint64{"a": 3, "b": 2},
			min:      100,
			expected: map[string]uint64{},
		},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test %d", i), func(t *testing.T) {
			filtered := tableOf(tt.counts).Filter(tt.min)

			require.Equal(t, len(tt.expected), filtered.Len())
			var total uint64
			for item, n := range tt.expected {
				require.Equal(t, n, filtered.Get(item))
				total += n
			}
			require.Equal(t, total, filtered.Total())
		})
	}
}

func TestFilterBelowTwoReturnsReceiver(t *testing.T) {
	tbl := tableOf(map[string]uint64{"a": 1})
	require.Same(t, tbl, tbl.Filter(0))
	require.Same(t, tbl, tbl.Filter(1))
	require.NotSame(t, tbl, tbl.Filter(2))
}

func TestSorted(t *testing.T) {

	type test struct {
		counts   map[string]uint64
		expected []Entry
	}

	tests := []test{
		{ // counts descend
			counts:   map[string]uint64{"rare": 1, "common": 9, "mid": 4},
			expected: []Entry{{"common", 9}, {"mid", 4}, {"rare", 1}},
		},
		{ // equal counts order by item ascending
			counts:   map[string]uint64{"cherry": 2, "apple": 2, "banana": 2},
			expected: []Entry{{"apple", 2}, {"banana", 2}, {"cherry", 2}},
		},
		{ // both rules at once
			counts:   map[string]uint64{"b": 2, "a": 3, "c": 2, "d": 1},
			expected: []Entry{{"a", 3}, {"b", 2}, {"c", 2}, {"d", 1}},
		},
		{ // empty table
			counts:   map[string]uint64{},
			expected: []Entry{},
		},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test %d", i), func(t *testing.T) {
			require.Equal(t, tt.expected, tableOf(tt.counts).Sorted())
		})
	}
}

func TestTotalMatchesAccumulation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tokens := rapid.SliceOf(rapid.StringMatching(`[a-d]{1,3}`)).Draw(rt, "tokens")

		tbl := NewTable()
		for _, token := range tokens {
			tbl.Inc([]byte(token))
		}

		require.Equal(rt, uint64(len(tokens)), tbl.Total())

		var sum uint64
		distinct := map[string]struct{}{}
		for item, n := range tbl.All() {
			sum += n
			distinct[item] = struct{}{}
		}
		require.Equal(rt, tbl.Total(), sum)
		require.Equal(rt, len(distinct), tbl.Len())
	})
}

func TestMergeMatchesSequentialCounting(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tokens := rapid.SliceOf(rapid.StringMatching(`[a-c]{1,2}`)).Draw(rt, "tokens")
		cut := rapid.IntRange(0, len(tokens)).Draw(rt, "cut")

		whole := NewTable()
		for _, token := range tokens {
			whole.Inc([]byte(token))
		}

		left, right := NewTable(), NewTable()
		for _, token := range tokens[:cut] {
			left.Inc([]byte(token))
		}
		for _, token := range tokens[cut:] {
			right.Inc([]byte(token))
		}
		left.Merge(right)

		require.Equal(rt, whole.Sorted(), left.Sorted())
		require.Equal(rt, whole.Total(), left.Total())
	})
}

func TestFilterIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tokens := rapid.SliceOf(rapid.StringMatching(`[a-c]{1,2}`)).Draw(rt, "tokens")
		min := rapid.Uint64Range(0, 5).Draw(rt, "min")

		tbl := NewTable()
		for _, token := range tokens {
			tbl.Inc([]byte(token))
		}

		once := tbl.Filter(min)
		twice := once.Filter(min)
		require.Equal(rt, once.Sorted(), twice.Sorted())

		for item, n := range once.All() {
			require.GreaterOrEqual(rt, n, max(min, 1))
			require.Equal(rt, tbl.Get(item), n)
		}
	})
}

var benchEntries []Entry

func BenchmarkSorted(b *testing.B) {
	tbl := NewTable()
	for i := 0; i < 100_000; i++ {
		tbl.Add(fmt.Sprintf("token-%d", i%10_000), uint64(i%37)+1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchEntries = tbl.Sorted()
	}
}

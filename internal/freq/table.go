// Package freq accumulates item frequencies and renders them as
// deterministic count-ordered inventories.
package freq

import (
	"cmp"
	"iter"
	"slices"
	"strings"
)

// Entry is one line of a frequency inventory.
type Entry struct {
	Item  string
	Count uint64
}

// Table counts occurrences of string items. Counts are uint64 so that huge
// corpora cannot overflow them. The zero value is not usable, see NewTable.
type Table struct {
	m     map[string]uint64
	total uint64
}

func NewTable() *Table {
	return &Table{m: make(map[string]uint64)}
}

// Inc adds one occurrence of item. The bytes are only copied when the item
// is first seen, so callers may reuse the slice between calls.
func (t *Table) Inc(item []byte) {
	t.m[string(item)]++
	t.total++
}

// Add adds n occurrences of item.
func (t *Table) Add(item string, n uint64) {
	t.m[item] += n
	t.total += n
}

// Merge folds other into t by summing the counts of identical items.
func (t *Table) Merge(other *Table) {
	for item, n := range other.m {
		t.m[item] += n
	}
	t.total += other.total
}

// Get returns the accumulated count of item, zero if absent.
func (t *Table) Get(item string) uint64 { return t.m[item] }

// Len returns the number of distinct items.
func (t *Table) Len() int { return len(t.m) }

// Total returns the sum of all counts, i.e. the number of accumulated
// occurrences.
func (t *Table) Total() uint64 { return t.total }

// All iterates items and counts in no particular order.
func (t *Table) All() iter.Seq2[string, uint64] {
	return func(yield func(string, uint64) bool) {
		for item, n := range t.m {
			if !yield(item, n) {
				return
			}
		}
	}
}

// Entries returns an unordered snapshot of the table.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.m))
	for item, n := range t.m {
		entries = append(entries, Entry{item, n})
	}
	return entries
}

// Filter returns a table that retains only the items occurring at least
// min times. Thresholds of zero and one keep every item, in which case the
// receiver itself is returned.
func (t *Table) Filter(min uint64) *Table {
	if min <= 1 {
		return t
	}

	filtered := NewTable()
	for item, n := range t.m {
		if n >= min {
			filtered.m[item] = n
			filtered.total += n
		}
	}
	return filtered
}

// Sorted renders the table as an inventory ordered by count descending,
// ties broken by item ascending. The order is a strict total order over
// distinct items, so it does not depend on how counts were accumulated.
func (t *Table) Sorted() []Entry {
	entries := t.Entries()
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Item, b.Item)
	})
	return entries
}

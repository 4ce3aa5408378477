package catalog

import (
	"sort"

	"golang.org/x/text/unicode/norm"
)

// CastCount is how many sampled titles an actor appeared in.
type CastCount struct {
	Name  string
	Count int
}

// CastTally counts actor appearances in first-seen order.
type CastTally struct {
	index  map[string]int
	counts []CastCount
}

// NewCastTally creates an empty tally.
func NewCastTally() *CastTally {
	return &CastTally{index: make(map[string]int)}
}

// Add counts one appearance of name. Composed and decomposed spellings of the
// same name count together; the name is reported as first seen. Empty names
// are ignored.
func (t *CastTally) Add(name string) {
	if name == "" {
		return
	}
	key := norm.NFC.String(name)
	if i, ok := t.index[key]; ok {
		t.counts[i].Count++
		return
	}
	t.index[key] = len(t.counts)
	t.counts = append(t.counts, CastCount{Name: name, Count: 1})
}

// Len returns the number of distinct names.
func (t *CastTally) Len() int {
	return len(t.counts)
}

// Sorted returns counts by frequency descending; ties keep first-seen order.
func (t *CastTally) Sorted() []CastCount {
	out := make([]CastCount, len(t.counts))
	copy(out, t.counts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCastTally_SortedByCountThenFirstSeen(t *testing.T) {
	tally := NewCastTally()
	for _, name := range []string{"Ana", "Ben", "Cleo", "Ben", "Dev", "Cleo", "", "Ben"} {
		tally.Add(name)
	}

	assert.Equal(t, 4, tally.Len())
	assert.Equal(t, []CastCount{
		{Name: "Ben", Count: 3},
		{Name: "Cleo", Count: 2},
		{Name: "Ana", Count: 1},
		{Name: "Dev", Count: 1},
	}, tally.Sorted())
}

func TestCastTally_NormalizesUnicode(t *testing.T) {
	tally := NewCastTally()
	tally.Add("Zoe\u0301")
	tally.Add("Zo\u00e9")

	got := tally.Sorted()
	assert.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "Zoe\u0301", got[0].Name, "reported as first seen")
}

func TestCastTally_KeepsNamesVerbatim(t *testing.T) {
	tally := NewCastTally()
	tally.Add(" Ana ")
	tally.Add("Ana")
	tally.Add(" Ana ")

	assert.Equal(t, []CastCount{
		{Name: " Ana ", Count: 2},
		{Name: "Ana", Count: 1},
	}, tally.Sorted())
}

func TestCastTally_Empty(t *testing.T) {
	assert.Empty(t, NewCastTally().Sorted())
}

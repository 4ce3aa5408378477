package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageBreakdown(t *testing.T) {
	rows := []Row{
		{OriginalLanguage: "ko"},
		{OriginalLanguage: "en"},
		{OriginalLanguage: "en"},
		{OriginalLanguage: ""},
		{OriginalLanguage: "ja"},
		{OriginalLanguage: "ko"},
		{OriginalLanguage: "en"},
	}

	got := LanguageBreakdown(rows, 2)

	assert.Equal(t, []LanguageCount{
		{Code: "en", Name: "English", Count: 3},
		{Code: "ko", Name: "Korean", Count: 2},
	}, got)
}

func TestLanguageBreakdown_UnparseableCodeKeepsCode(t *testing.T) {
	got := LanguageBreakdown([]Row{{OriginalLanguage: "not a tag"}}, 0)

	assert.Len(t, got, 1)
	assert.Equal(t, "not a tag", got[0].Name)
}

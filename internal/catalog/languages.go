package catalog

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageCount is the number of rows with a given original language.
type LanguageCount struct {
	Code  string
	Name  string
	Count int
}

// LanguageBreakdown counts rows per original language, most common first,
// and returns at most top entries (all when top <= 0). Ties keep first-seen
// order. Name is the English display name, or the code when it does not parse.
func LanguageBreakdown(rows []Row, top int) []LanguageCount {
	index := make(map[string]int)
	var counts []LanguageCount
	for _, r := range rows {
		if r.OriginalLanguage == "" {
			continue
		}
		if i, ok := index[r.OriginalLanguage]; ok {
			counts[i].Count++
			continue
		}
		index[r.OriginalLanguage] = len(counts)
		counts = append(counts, LanguageCount{
			Code:  r.OriginalLanguage,
			Name:  languageName(r.OriginalLanguage),
			Count: 1,
		})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if top > 0 && len(counts) > top {
		counts = counts[:top]
	}
	return counts
}

var languageNamer = display.English.Languages()

func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := languageNamer.Name(tag); name != "" {
		return name
	}
	return code
}

package catalog

import "strings"

// ExpandByGenre emits one row per genre of each input row, in input order.
// A row with no genres is emitted once with an empty Genre, so every input
// row appears at least once.
func ExpandByGenre(rows []Row) []ExpandedRow {
	out := make([]ExpandedRow, 0, len(rows))
	for _, r := range rows {
		genres := SplitGenres(r.Genres)
		if len(genres) == 0 {
			out = append(out, ExpandedRow{Row: r})
			continue
		}
		for _, g := range genres {
			out = append(out, ExpandedRow{Row: r, Genre: g})
		}
	}
	return out
}

// SplitGenres splits a joined genre string on ';', trimming whitespace and
// dropping empty names.
func SplitGenres(joined string) []string {
	var genres []string
	for _, part := range strings.Split(joined, ";") {
		if g := strings.TrimSpace(part); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

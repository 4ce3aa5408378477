package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Normalize converts results to rows, one row per result, sorted by
// popularity descending. The sort is stable so equally popular titles keep
// the API's order; rows without popularity sort last.
func Normalize(results []Result, genres GenreMap) []Row {
	rows := make([]Row, 0, len(results))
	for i := range results {
		rows = append(rows, normalizeOne(&results[i], genres))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return morePopular(rows[i].Popularity, rows[j].Popularity)
	})
	return rows
}

func normalizeOne(r *Result, genres GenreMap) Row {
	names := make([]string, 0, len(r.GenreIDs))
	for _, ref := range r.GenreIDs {
		names = append(names, genres.Resolve(ref))
	}

	return Row{
		ID:               r.ID,
		MediaType:        r.MediaType,
		Title:            firstNonEmpty(r.Title, r.Name),
		Date:             firstNonEmpty(r.ReleaseDate, r.FirstAirDate),
		Popularity:       r.Popularity,
		VoteAverage:      r.VoteAverage,
		VoteCount:        r.VoteCount,
		OriginalLanguage: r.OriginalLanguage,
		Genres:           strings.Join(names, GenreDelimiter),
		Overview:         r.Overview,
		PosterPath:       r.PosterPath,
		BackdropPath:     r.BackdropPath,
		TMDBURL:          TitleURL(r.MediaType, r.ID),
	}
}

// TitleURL returns the public TMDB page of a movie or tv title, or "" for
// any other media type.
func TitleURL(media string, id int64) string {
	switch MediaType(media) {
	case MediaMovie, MediaTV:
		return fmt.Sprintf("https://www.themoviedb.org/%s/%d", media, id)
	default:
		return ""
	}
}

// WithWeek stamps every row with a week label.
func WithWeek(rows []Row, week string) []Row {
	for i := range rows {
		rows[i].Week = week
	}
	return rows
}

// morePopular orders known popularity above unknown.
func morePopular(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a > *b
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Package catalog turns TMDB listing results into flat rows for CSV export.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MediaType is the kind of a title. TMDB calls series "tv".
type MediaType string

// Media types with a public TMDB page.
const (
	MediaMovie MediaType = "movie"
	MediaTV    MediaType = "tv"
)

// GenreDelimiter joins genre names in Row.Genres.
const GenreDelimiter = "; "

// Result is one item of a TMDB listing. Movies carry Title and ReleaseDate,
// series carry Name and FirstAirDate. Every field may be missing.
type Result struct {
	ID               int64      `json:"id"`
	MediaType        string     `json:"media_type"`
	Title            string     `json:"title"`
	Name             string     `json:"name"`
	ReleaseDate      string     `json:"release_date"`
	FirstAirDate     string     `json:"first_air_date"`
	GenreIDs         []GenreRef `json:"genre_ids"`
	Popularity       *float64   `json:"popularity"`
	VoteAverage      *float64   `json:"vote_average"`
	VoteCount        *int64     `json:"vote_count"`
	OriginalLanguage string     `json:"original_language"`
	Overview         string     `json:"overview"`
	PosterPath       string     `json:"poster_path"`
	BackdropPath     string     `json:"backdrop_path"`
}

// Row is the normalized form of one Result.
type Row struct {
	ID               int64
	MediaType        string
	Title            string
	Date             string // YYYY-MM-DD, empty when unknown
	Popularity       *float64
	VoteAverage      *float64
	VoteCount        *int64
	OriginalLanguage string
	Genres           string // names joined by GenreDelimiter
	Overview         string
	PosterPath       string
	BackdropPath     string
	TMDBURL          string
	Week             string
}

// ExpandedRow is a Row paired with one of its genres.
type ExpandedRow struct {
	Row
	Genre string
}

// DecodeResults decodes raw listing items. A field of an unexpected type is
// left empty rather than dropping the item, so the output always has one
// Result per input. Malformed JSON is an error.
func DecodeResults(raw []json.RawMessage) ([]Result, error) {
	results := make([]Result, len(raw))
	for i, msg := range raw {
		err := json.Unmarshal(msg, &results[i])
		var typeErr *json.UnmarshalTypeError
		if err != nil && !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("decode result %d: %w", i, err)
		}
	}
	return results, nil
}

// WithMediaType sets MediaType on every result that lacks one. Discover
// listings do not report a media type.
func WithMediaType(results []Result, media MediaType) []Result {
	for i := range results {
		if results[i].MediaType == "" {
			results[i].MediaType = string(media)
		}
	}
	return results
}

// Package export writes rows as CSV tables and JSON side artifacts.
package export

import (
	"strconv"

	"github.com/reelpulse/reelpulse/internal/catalog"
)

// Column names a CSV column and renders its cell from a row.
type Column[T any] struct {
	Name  string
	Value func(T) string
}

// Header returns the column names in order.
func Header[T any](cols []Column[T]) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// Render builds a table from rows.
func Render[T any](cols []Column[T], rows []T) Table {
	t := Table{
		Header:  Header(cols),
		Records: make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		rec := make([]string, len(cols))
		for i, c := range cols {
			rec[i] = c.Value(r)
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

// HistoricalColumns are the columns of the historical clean table.
var HistoricalColumns = []Column[catalog.Row]{
	{"id", func(r catalog.Row) string { return strconv.FormatInt(r.ID, 10) }},
	{"media_type", func(r catalog.Row) string { return r.MediaType }},
	{"title", func(r catalog.Row) string { return r.Title }},
	{"date", func(r catalog.Row) string { return r.Date }},
	{"popularity", func(r catalog.Row) string { return formatFloat(r.Popularity) }},
	{"vote_average", func(r catalog.Row) string { return formatFloat(r.VoteAverage) }},
	{"vote_count", func(r catalog.Row) string { return formatInt(r.VoteCount) }},
	{"original_language", func(r catalog.Row) string { return r.OriginalLanguage }},
	{"genres", func(r catalog.Row) string { return r.Genres }},
}

// TrendingColumns extend HistoricalColumns with presentation fields and the week label.
var TrendingColumns = append(append([]Column[catalog.Row](nil), HistoricalColumns...),
	Column[catalog.Row]{"overview", func(r catalog.Row) string { return r.Overview }},
	Column[catalog.Row]{"poster_path", func(r catalog.Row) string { return r.PosterPath }},
	Column[catalog.Row]{"backdrop_path", func(r catalog.Row) string { return r.BackdropPath }},
	Column[catalog.Row]{"tmdb_url", func(r catalog.Row) string { return r.TMDBURL }},
	Column[catalog.Row]{"week", func(r catalog.Row) string { return r.Week }},
)

// ByGenre lifts row columns to expanded rows and appends the genre column.
func ByGenre(cols []Column[catalog.Row]) []Column[catalog.ExpandedRow] {
	out := make([]Column[catalog.ExpandedRow], 0, len(cols)+1)
	for _, c := range cols {
		value := c.Value
		out = append(out, Column[catalog.ExpandedRow]{
			Name:  c.Name,
			Value: func(r catalog.ExpandedRow) string { return value(r.Row) },
		})
	}
	return append(out, Column[catalog.ExpandedRow]{
		Name:  "genre",
		Value: func(r catalog.ExpandedRow) string { return r.Genre },
	})
}

// CastColumns are the columns of the cast sample table.
var CastColumns = []Column[catalog.CastCount]{
	{"name", func(c catalog.CastCount) string { return c.Name }},
	{"count", func(c catalog.CastCount) string { return strconv.Itoa(c.Count) }},
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatInt(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

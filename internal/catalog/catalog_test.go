package catalog

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewGenreMap_SeriesOverridesMovie(t *testing.T) {
	movie := []Genre{{ID: 10, Name: "Horror"}, {ID: 28, Name: "Action"}}
	tv := []Genre{{ID: 10, Name: "Drama"}, {ID: 10765, Name: "Sci-Fi & Fantasy"}}

	m := NewGenreMap(movie, tv)

	assert.Equal(t, "Drama", m.Name(10))
	assert.Equal(t, "Action", m.Name(28))
	assert.Equal(t, "Sci-Fi & Fantasy", m.Name(10765))
	assert.Len(t, m, 3)
}

func TestGenreMap_UnknownIDFallsBackToID(t *testing.T) {
	m := NewGenreMap([]Genre{{ID: 28, Name: "Action"}})
	assert.Equal(t, "9999", m.Name(9999))
}

func TestNormalize_SingleHorrorTitle(t *testing.T) {
	results := []Result{{Title: "X", GenreIDs: GenreRefs(10), Popularity: ptr(5.0)}}

	rows := Normalize(results, GenreMap{10: "Horror"})
	require.Len(t, rows, 1)
	assert.Equal(t, "Horror", rows[0].Genres)

	expanded := ExpandByGenre(rows)
	require.Len(t, expanded, 1)
	assert.Equal(t, "Horror", expanded[0].Genre)
}

func TestNormalize_ResolvesMovieAndSeriesFields(t *testing.T) {
	genres := GenreMap{28: "Action", 18: "Drama"}
	results := []Result{
		{ID: 1, MediaType: "movie", Title: "Heat", ReleaseDate: "1995-12-15", GenreIDs: GenreRefs(28, 18), Popularity: ptr(10.0), VoteAverage: ptr(8.3), VoteCount: ptr(int64(7000)), OriginalLanguage: "en"},
		{ID: 2, MediaType: "tv", Name: "Dark", FirstAirDate: "2017-12-01", GenreIDs: GenreRefs(18, 4242), Popularity: ptr(20.0), OriginalLanguage: "de"},
		{ID: 3, MediaType: "person", Name: "Someone"},
	}

	rows := Normalize(results, genres)
	require.Len(t, rows, 3)

	assert.Equal(t, "Dark", rows[0].Title)
	assert.Equal(t, "2017-12-01", rows[0].Date)
	assert.Equal(t, "Drama; 4242", rows[0].Genres)
	assert.Equal(t, "https://www.themoviedb.org/tv/2", rows[0].TMDBURL)

	assert.Equal(t, "Heat", rows[1].Title)
	assert.Equal(t, "1995-12-15", rows[1].Date)
	assert.Equal(t, "Action; Drama", rows[1].Genres)
	assert.Equal(t, "https://www.themoviedb.org/movie/1", rows[1].TMDBURL)
	assert.Equal(t, int64(7000), *rows[1].VoteCount)

	assert.Equal(t, "Someone", rows[2].Title)
	assert.Empty(t, rows[2].Date)
	assert.Empty(t, rows[2].Genres)
	assert.Empty(t, rows[2].TMDBURL)
	assert.Nil(t, rows[2].Popularity)
}

func TestNormalize_TitleWinsOverName(t *testing.T) {
	rows := Normalize([]Result{{Title: "Movie Title", Name: "Other", ReleaseDate: "", FirstAirDate: "2020-01-01"}}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "Movie Title", rows[0].Title)
	assert.Equal(t, "2020-01-01", rows[0].Date)
}

func TestNormalize_PreservesRowCount(t *testing.T) {
	for n := range 25 {
		results := make([]Result, n)
		for i := range results {
			if i%3 == 0 {
				results[i].Popularity = ptr(float64(i % 4))
			}
		}
		assert.Len(t, Normalize(results, GenreMap{}), n)
	}
}

func TestNormalize_StableSortByPopularity(t *testing.T) {
	results := []Result{
		{ID: 1, Popularity: ptr(5.0)},
		{ID: 2, Popularity: ptr(9.0)},
		{ID: 3, Popularity: ptr(5.0)},
		{ID: 4},
		{ID: 5, Popularity: ptr(5.0)},
		{ID: 6, Popularity: ptr(9.0)},
		{ID: 7},
	}

	rows := Normalize(results, nil)

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	assert.Equal(t, []int64{2, 6, 1, 3, 5, 4, 7}, ids)
}

func TestNormalize_TiesFollowInputOrder(t *testing.T) {
	forward := []Result{{ID: 1, Popularity: ptr(3.0)}, {ID: 2, Popularity: ptr(3.0)}, {ID: 3, Popularity: ptr(3.0)}}
	reversed := []Result{forward[2], forward[1], forward[0]}

	got := Normalize(forward, nil)
	gotReversed := Normalize(reversed, nil)

	for i := range got {
		assert.Equal(t, forward[i].ID, got[i].ID)
		assert.Equal(t, reversed[i].ID, gotReversed[i].ID)
	}
}

func TestExpandByGenre(t *testing.T) {
	tests := []struct {
		name   string
		genres string
		want   []string
	}{
		{name: "no genres", genres: "", want: []string{""}},
		{name: "one genre", genres: "Horror", want: []string{"Horror"}},
		{name: "three genres", genres: "Action; Drama; Sci-Fi & Fantasy", want: []string{"Action", "Drama", "Sci-Fi & Fantasy"}},
		{name: "blank tokens dropped", genres: " ; Drama;; ", want: []string{"Drama"}},
		{name: "only delimiters", genres: ";;", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{ID: 7, Title: "T", Genres: tt.genres, Week: "2026-10-18"}
			out := ExpandByGenre([]Row{row})

			require.Len(t, out, len(tt.want))
			for i, g := range tt.want {
				assert.Equal(t, g, out[i].Genre)
				assert.Equal(t, row, out[i].Row)
			}
		})
	}
}

func TestExpandByGenre_CountsAndOrder(t *testing.T) {
	rows := []Row{
		{ID: 1, Genres: "A; B"},
		{ID: 2, Genres: ""},
		{ID: 3, Genres: "C; D; E"},
	}

	out := ExpandByGenre(rows)
	require.Len(t, out, 6)
	assert.GreaterOrEqual(t, len(out), len(rows))

	var got []string
	for _, r := range out {
		got = append(got, fmt.Sprintf("%d:%s", r.ID, r.Genre))
	}
	assert.Equal(t, []string{"1:A", "1:B", "2:", "3:C", "3:D", "3:E"}, got)
}

func TestDecodeResults(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"id":1,"title":"A","popularity":12.5,"genre_ids":[28],"vote_count":10}`),
		json.RawMessage(`{"id":2,"name":"B","popularity":null,"overview":null}`),
		json.RawMessage(`{"id":3,"title":"C","vote_count":"many","popularity":1}`),
	}

	results, err := DecodeResults(raw)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.InDelta(t, 12.5, *results[0].Popularity, 0.0001)
	assert.Nil(t, results[1].Popularity)
	assert.Empty(t, results[1].Overview)
	assert.Equal(t, "C", results[2].Title)
	assert.Nil(t, results[2].VoteCount)
	assert.InDelta(t, 1.0, *results[2].Popularity, 0.0001)
}

func TestDecodeResults_WrongTypedNumbersAreBlank(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"id":1,"popularity":"x","vote_average":true,"vote_count":"many"}`),
		json.RawMessage(`{"id":2}`),
		json.RawMessage(`{"id":"3","popularity":4.0,"vote_count":12.0}`),
	}

	results, err := DecodeResults(raw)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, int64(1), results[0].ID)
	assert.Nil(t, results[0].Popularity)
	assert.Nil(t, results[0].VoteAverage)
	assert.Nil(t, results[0].VoteCount)

	assert.Zero(t, results[2].ID)
	require.NotNil(t, results[2].VoteCount)
	assert.Equal(t, int64(12), *results[2].VoteCount)

	rows := Normalize(results, nil)
	assert.Equal(t, []int64{0, 1, 2}, []int64{rows[0].ID, rows[1].ID, rows[2].ID},
		"a wrong-typed popularity sorts with the missing ones")
	assert.Nil(t, rows[1].Popularity)
}

func TestDecodeResults_GenreTokens(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"id":1,"genre_ids":[10,"bad",99,12.0,null]}`),
		json.RawMessage(`{"id":2,"genre_ids":"oops"}`),
	}

	results, err := DecodeResults(raw)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, []GenreRef{
		{ID: 10, IsID: true},
		{Token: "bad"},
		{ID: 99, IsID: true},
		{ID: 12, IsID: true},
		{Token: "null"},
	}, results[0].GenreIDs)
	assert.Empty(t, results[1].GenreIDs)

	rows := Normalize(results[:1], GenreMap{10: "Horror", 12: "Adventure"})
	assert.Equal(t, "Horror; bad; 99; Adventure; null", rows[0].Genres)

	var genres []string
	for _, r := range ExpandByGenre(rows) {
		genres = append(genres, r.Genre)
	}
	assert.Equal(t, []string{"Horror", "bad", "99", "Adventure", "null"}, genres)
	assert.NotContains(t, genres, "0")
}

func TestDecodeResults_NonObjectItem(t *testing.T) {
	results, err := DecodeResults([]json.RawMessage{json.RawMessage(`5`), json.RawMessage(`null`)})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, Result{}, results[0])
}

func TestDecodeResults_MalformedJSON(t *testing.T) {
	_, err := DecodeResults([]json.RawMessage{json.RawMessage(`{"id":`)})
	assert.Error(t, err)
}

func TestWithMediaType(t *testing.T) {
	results := WithMediaType([]Result{{ID: 1}, {ID: 2, MediaType: "movie"}}, MediaTV)

	assert.Equal(t, "tv", results[0].MediaType)
	assert.Equal(t, "movie", results[1].MediaType)
}

func TestWithWeek(t *testing.T) {
	rows := WithWeek([]Row{{ID: 1}, {ID: 2}}, "2026-10-18")
	for _, r := range rows {
		assert.Equal(t, "2026-10-18", r.Week)
	}
}

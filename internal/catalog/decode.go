package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// GenreRef is one entry of a result's genre_ids. Integer entries set ID and
// IsID; anything else keeps its text in Token.
type GenreRef struct {
	ID    int
	Token string
	IsID  bool
}

// GenreRefs builds refs for integer genre ids.
func GenreRefs(ids ...int) []GenreRef {
	refs := make([]GenreRef, len(ids))
	for i, id := range ids {
		refs[i] = GenreRef{ID: id, IsID: true}
	}
	return refs
}

// UnmarshalJSON decodes a listing item field by field. A field holding a
// value of the wrong type is left empty: nil for the numeric pointers, "" for
// strings. The item itself must be a JSON object or null.
func (r *Result) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = Result{
		MediaType:        stringField(fields["media_type"]),
		Title:            stringField(fields["title"]),
		Name:             stringField(fields["name"]),
		ReleaseDate:      stringField(fields["release_date"]),
		FirstAirDate:     stringField(fields["first_air_date"]),
		GenreIDs:         genreRefs(fields["genre_ids"]),
		Popularity:       floatField(fields["popularity"]),
		VoteAverage:      floatField(fields["vote_average"]),
		VoteCount:        intField(fields["vote_count"]),
		OriginalLanguage: stringField(fields["original_language"]),
		Overview:         stringField(fields["overview"]),
		PosterPath:       stringField(fields["poster_path"]),
		BackdropPath:     stringField(fields["backdrop_path"]),
	}
	if id := intField(fields["id"]); id != nil {
		r.ID = *id
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func stringField(raw json.RawMessage) string {
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func floatField(raw json.RawMessage) *float64 {
	var f float64
	if isNull(raw) || json.Unmarshal(raw, &f) != nil {
		return nil
	}
	return &f
}

// intField accepts integers and integral floats such as 12.0.
func intField(raw json.RawMessage) *int64 {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) || raw[0] == '"' {
		return nil
	}
	var n json.Number
	if json.Unmarshal(raw, &n) != nil {
		return nil
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return &i
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return nil
	}
	i := int64(f)
	return &i
}

func genreRefs(raw json.RawMessage) []GenreRef {
	var items []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &items) != nil {
		return nil
	}

	refs := make([]GenreRef, 0, len(items))
	for _, item := range items {
		if id := intField(item); id != nil && *id >= math.MinInt32 && *id <= math.MaxInt32 {
			refs = append(refs, GenreRef{ID: int(*id), IsID: true})
			continue
		}
		item = bytes.TrimSpace(item)
		var s string
		if len(item) > 0 && item[0] == '"' && json.Unmarshal(item, &s) == nil {
			refs = append(refs, GenreRef{Token: s})
			continue
		}
		refs = append(refs, GenreRef{Token: string(item)})
	}
	return refs
}

package catalog

import "strconv"

// Genre is a TMDB genre reference entry.
type Genre struct {
	ID   int
	Name string
}

// GenreMap resolves genre ids to display names.
type GenreMap map[int]string

// NewGenreMap merges genre lists in order. When two lists share an id the
// later list wins, so NewGenreMap(movie, tv) resolves collisions to the tv name.
func NewGenreMap(lists ...[]Genre) GenreMap {
	m := make(GenreMap)
	for _, list := range lists {
		for _, g := range list {
			m[g.ID] = g.Name
		}
	}
	return m
}

// Name returns the display name of id, or the id itself when it is unknown.
func (m GenreMap) Name(id int) string {
	if name, ok := m[id]; ok {
		return name
	}
	return strconv.Itoa(id)
}

// Resolve returns the display name of ref. Non-integer entries resolve to
// their own text.
func (m GenreMap) Resolve(ref GenreRef) string {
	if !ref.IsID {
		return ref.Token
	}
	return m.Name(ref.ID)
}

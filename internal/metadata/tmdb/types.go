package tmdb

import "encoding/json"

// Media kinds accepted in TMDB paths.
const (
	MediaAll   = "all"
	MediaMovie = "movie"
	MediaTV    = "tv"
)

// Windows accepted by the trending endpoint.
const (
	WindowDay  = "day"
	WindowWeek = "week"
)

// pageResponse is one page of a paginated listing. Results are kept raw so
// callers can both snapshot and decode them.
type pageResponse struct {
	Page         int               `json:"page"`
	Results      []json.RawMessage `json:"results"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
}

// Genre is an entry of /genre/{media}/list.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// CastMember is a single cast entry of a credits response.
type CastMember struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember is a single crew entry of a credits response.
type CrewMember struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits is the response of /{media}/{id}/credits.
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

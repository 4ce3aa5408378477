package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Trending returns up to maxPages pages of /trending/{media}/{window}.
func (c *Client) Trending(ctx context.Context, media, window string, maxPages int) ([]json.RawMessage, error) {
	path := fmt.Sprintf("/trending/%s/%s", url.PathEscape(media), url.PathEscape(window))
	return c.FetchPages(ctx, "trending", path, nil, maxPages)
}

// Discover returns up to maxPages pages of /discover/{media} sorted by
// popularity, limited to titles released (movies) or first aired (tv)
// between from and to inclusive. Dates are YYYY-MM-DD. Other media kinds
// return no results.
func (c *Client) Discover(ctx context.Context, media, from, to string, maxPages int) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")

	switch media {
	case MediaMovie:
		params.Set("primary_release_date.gte", from)
		params.Set("primary_release_date.lte", to)
		params.Set("include_adult", "false")
	case MediaTV:
		params.Set("first_air_date.gte", from)
		params.Set("first_air_date.lte", to)
	default:
		return nil, nil
	}

	return c.FetchPages(ctx, "discover", "/discover/"+media, params, maxPages)
}

// Genres returns the genre reference list for media.
func (c *Client) Genres(ctx context.Context, media string) ([]Genre, error) {
	var resp genreListResponse
	if err := c.Get(ctx, "genres", "/genre/"+url.PathEscape(media)+"/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// Credits returns the cast and crew of a movie or tv title. Other media kinds
// return empty credits without a request. Each call is followed by a short
// courtesy pause.
func (c *Client) Credits(ctx context.Context, media string, id int64) (*Credits, error) {
	if media != MediaMovie && media != MediaTV {
		return &Credits{ID: id}, nil
	}

	var resp Credits
	path := fmt.Sprintf("/%s/%d/credits", media, id)
	if err := c.Get(ctx, "credits", path, nil, &resp); err != nil {
		return nil, err
	}

	if err := c.sleep(ctx, creditsDelay); err != nil {
		return nil, err
	}
	return &resp, nil
}

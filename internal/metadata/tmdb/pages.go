package tmdb

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// FetchPages requests path with page=1, 2, ... and returns the concatenated
// results. It stops at the first page with no results and never requests
// more than maxPages pages. Pages are separated by a short courtesy pause.
func (c *Client) FetchPages(ctx context.Context, op, path string, params url.Values, maxPages int) ([]json.RawMessage, error) {
	var all []json.RawMessage

	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		for k, v := range params {
			query[k] = append([]string(nil), v...)
		}
		query.Set("page", strconv.Itoa(page))

		var resp pageResponse
		if err := c.Get(ctx, op, path, query, &resp); err != nil {
			return nil, err
		}

		if len(resp.Results) == 0 {
			c.logger.Info("empty page, stopping", "op", op, "path", path, "page", page)
			break
		}
		all = append(all, resp.Results...)

		c.logger.Debug("fetched page",
			"op", op,
			"page", page,
			"results", len(resp.Results),
			"total", len(all),
		)

		if page < maxPages {
			if err := c.sleep(ctx, pageDelay); err != nil {
				return nil, err
			}
		}
	}

	return all, nil
}

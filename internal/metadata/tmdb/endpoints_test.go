package tmdb

import (
	"context"
	"net/http"
	"net/url"
	"testing"
)

func TestDiscover_QueryParameters(t *testing.T) {
	tests := []struct {
		media    string
		wantPath string
		want     map[string]string
		absent   []string
	}{
		{
			media:    MediaMovie,
			wantPath: "/discover/movie",
			want: map[string]string{
				"sort_by":                  "popularity.desc",
				"primary_release_date.gte": "2026-04-21",
				"primary_release_date.lte": "2026-10-18",
				"include_adult":            "false",
				"page":                     "1",
			},
			absent: []string{"first_air_date.gte"},
		},
		{
			media:    MediaTV,
			wantPath: "/discover/tv",
			want: map[string]string{
				"sort_by":            "popularity.desc",
				"first_air_date.gte": "2026-04-21",
				"first_air_date.lte": "2026-10-18",
				"page":               "1",
			},
			absent: []string{"include_adult", "primary_release_date.gte"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.media, func(t *testing.T) {
			var gotPath string
			var gotQuery url.Values
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.Query()
				w.Write([]byte(`{"results":[]}`))
			})

			if _, err := client.Discover(context.Background(), tt.media, "2026-04-21", "2026-10-18", 5); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %q, want %q", gotPath, tt.wantPath)
			}
			for k, v := range tt.want {
				if got := gotQuery.Get(k); got != v {
					t.Errorf("%s = %q, want %q", k, got, v)
				}
			}
			for _, k := range tt.absent {
				if gotQuery.Has(k) {
					t.Errorf("unexpected parameter %s", k)
				}
			}
		})
	}
}

func TestDiscover_UnknownMediaMakesNoRequest(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	results, err := client.Discover(context.Background(), "person", "2026-01-01", "2026-02-01", 5)
	if err != nil || results != nil || calls != 0 {
		t.Errorf("got results=%v err=%v calls=%d, want nil nil 0", results, err, calls)
	}
}

func TestCredits(t *testing.T) {
	var gotPath string
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":550,"cast":[{"id":819,"name":"Edward Norton","order":0},{"id":287,"name":"Brad Pitt","order":1}],"crew":[{"name":"David Fincher","job":"Director"}]}`))
	})

	credits, err := client.Credits(context.Background(), MediaMovie, 550)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/movie/550/credits" {
		t.Errorf("path = %q, want /movie/550/credits", gotPath)
	}
	if len(credits.Cast) != 2 || credits.Cast[1].Name != "Brad Pitt" {
		t.Errorf("unexpected cast %+v", credits.Cast)
	}
	if len(credits.Crew) != 1 {
		t.Errorf("got %d crew, want 1", len(credits.Crew))
	}
	if len(rec.waits) != 1 || rec.waits[0] != creditsDelay {
		t.Errorf("waits = %v, want [%v]", rec.waits, creditsDelay)
	}
}

func TestCredits_OtherMediaMakesNoRequest(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	credits, err := client.Credits(context.Background(), "person", 31)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(credits.Cast) != 0 || calls != 0 {
		t.Errorf("got cast=%d calls=%d, want 0 0", len(credits.Cast), calls)
	}
}

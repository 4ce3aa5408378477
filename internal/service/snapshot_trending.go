package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reelpulse/reelpulse/internal/catalog"
	domainerrors "github.com/reelpulse/reelpulse/internal/errors"
	"github.com/reelpulse/reelpulse/internal/export"
	"github.com/reelpulse/reelpulse/internal/store"
)

// TrendingOptions selects what a trending run fetches.
type TrendingOptions struct {
	Media      string // all, movie or tv
	Window     string // day or week
	Pages      int
	CastSample int // 0 disables cast sampling
}

// rawSnapshot is the on-disk shape of the raw trending JSON.
type rawSnapshot struct {
	Results []json.RawMessage `json:"results"`
}

// RunTrending fetches the trending listing and writes the raw snapshot, the
// genre map, the clean and by-genre tables, the rolling history and the
// optional cast sample. An empty listing is a no-op run.
//
// Every network call happens before the first CSV is written, so a fatal
// fetch error leaves no partial CSV output behind.
func (s *SnapshotService) RunTrending(ctx context.Context, opts TrendingOptions) (*Report, error) {
	report, startedAt := s.newRun()
	stamp := report.Label
	base := fmt.Sprintf("trending_%s_%s", opts.Media, opts.Window)
	log := s.logger.With("run_id", report.RunID, "media", opts.Media, "window", opts.Window)

	raw, err := s.source.Trending(ctx, opts.Media, opts.Window, opts.Pages)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "fetch trending")
	}
	if raw == nil {
		raw = []json.RawMessage{}
	}
	log.Info("fetched trending results", "count", len(raw))

	if err := s.writeJSON(base+"_raw_"+stamp+".json", rawSnapshot{Results: raw}, report); err != nil {
		return nil, err
	}

	genres, err := s.buildGenreMap(ctx, "genres.json", report)
	if err != nil {
		return nil, err
	}

	results, err := catalog.DecodeResults(raw)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "decode trending")
	}
	rows := catalog.WithWeek(catalog.Normalize(results, genres), stamp)
	report.Rows = len(rows)

	if len(rows) == 0 {
		log.Info("no trending results, nothing to export")
		return report, nil
	}

	if opts.CastSample > 0 {
		report.Cast, err = s.sampleCast(ctx, rows, opts.CastSample)
		if err != nil {
			return nil, err
		}
	}

	if err := s.writeStampedAndLatest(base+"_clean", stamp, export.Render(export.TrendingColumns, rows), report); err != nil {
		return nil, err
	}

	expanded := catalog.ExpandByGenre(rows)
	report.ExpandedRows = len(expanded)
	byGenre := export.Render(export.ByGenre(export.TrendingColumns), expanded)
	if err := s.writeStampedAndLatest(base+"_by_genre", stamp, byGenre, report); err != nil {
		return nil, err
	}

	historyPath := s.path(base + "_history.csv")
	history, err := export.AppendHistory(historyPath, export.Render(export.TrendingColumns, rows))
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "append history")
	}
	report.HistoryRows = history.Len()
	report.Files = append(report.Files, historyPath)
	log.Info("appended to history", "path", historyPath, "added", len(rows), "total", history.Len())

	if report.Cast != nil {
		if err := s.writeCSV("sample_cast_counts_"+stamp+".csv", export.Render(export.CastColumns, report.Cast), report); err != nil {
			return nil, err
		}
		for i, c := range report.Cast[:min(summaryTopCast, len(report.Cast))] {
			log.Info("frequent cast", "rank", i+1, "name", c.Name, "count", c.Count)
		}
	}

	err = s.record(ctx, &store.Run{
		ID:        report.RunID,
		Kind:      store.RunTrending,
		Label:     stamp,
		Media:     opts.Media,
		Window:    opts.Window,
		StartedAt: startedAt,
		Rows:      rows,
	}, report)
	if err != nil {
		return nil, err
	}

	s.summarize(rows, report)
	return report, nil
}

package service

import (
	"context"

	"github.com/reelpulse/reelpulse/internal/catalog"
	domainerrors "github.com/reelpulse/reelpulse/internal/errors"
	"github.com/reelpulse/reelpulse/internal/export"
	"github.com/reelpulse/reelpulse/internal/metadata/tmdb"
	"github.com/reelpulse/reelpulse/internal/store"
)

// HistoricalOptions sets the lookback of a historical run.
type HistoricalOptions struct {
	DaysBack int
	Pages    int // per media kind
}

// RunHistorical approximates "popular over the last DaysBack days" with the
// discover endpoint for movies and tv, and writes the clean and by-genre
// tables. Nothing but the genre map is written when discover returns nothing.
func (s *SnapshotService) RunHistorical(ctx context.Context, opts HistoricalOptions) (*Report, error) {
	report, startedAt := s.newRun()
	stamp := report.Label
	end := startedAt
	from := end.AddDate(0, 0, -opts.DaysBack).Format(StampLayout)
	to := end.Format(StampLayout)
	log := s.logger.With("run_id", report.RunID)

	log.Info("building historical dataset", "from", from, "to", to)

	genres, err := s.buildGenreMap(ctx, "genres_historical.json", report)
	if err != nil {
		return nil, err
	}

	var results []catalog.Result
	for _, media := range []catalog.MediaType{catalog.MediaMovie, catalog.MediaTV} {
		batch, err := s.discover(ctx, media, from, to, opts.Pages)
		if err != nil {
			return nil, err
		}
		log.Info("fetched discover results", "media", media, "count", len(batch))
		results = append(results, batch...)
	}

	if len(results) == 0 {
		log.Info("no results fetched for historical range")
		return report, nil
	}

	rows := catalog.Normalize(results, genres)
	report.Rows = len(rows)
	log.Info("normalized rows", "count", len(rows))

	if err := s.writeStampedAndLatest("historical_all_clean", stamp, export.Render(export.HistoricalColumns, rows), report); err != nil {
		return nil, err
	}

	expanded := catalog.ExpandByGenre(rows)
	report.ExpandedRows = len(expanded)
	byGenre := export.Render(export.ByGenre(export.HistoricalColumns), expanded)
	if err := s.writeStampedAndLatest("historical_all_by_genre", stamp, byGenre, report); err != nil {
		return nil, err
	}

	err = s.record(ctx, &store.Run{
		ID:        report.RunID,
		Kind:      store.RunHistorical,
		Label:     stamp,
		Media:     tmdb.MediaAll,
		StartedAt: startedAt,
		Rows:      rows,
	}, report)
	if err != nil {
		return nil, err
	}

	s.summarize(rows, report)
	return report, nil
}

// discover fetches and decodes one media kind, tagging each result with it.
func (s *SnapshotService) discover(ctx context.Context, media catalog.MediaType, from, to string, pages int) ([]catalog.Result, error) {
	raw, err := s.source.Discover(ctx, string(media), from, to, pages)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeUpstream, "discover %s", media)
	}
	results, err := catalog.DecodeResults(raw)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeUpstream, "decode %s", media)
	}
	return catalog.WithMediaType(results, media), nil
}

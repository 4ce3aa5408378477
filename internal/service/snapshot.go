// Package service implements the export runs: fetch from TMDB, normalize,
// and write CSV snapshots.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reelpulse/reelpulse/internal/catalog"
	domainerrors "github.com/reelpulse/reelpulse/internal/errors"
	"github.com/reelpulse/reelpulse/internal/export"
	"github.com/reelpulse/reelpulse/internal/metadata/tmdb"
	"github.com/reelpulse/reelpulse/internal/store"
)

// StampLayout formats the run date used in file names and the week label.
const StampLayout = "2006-01-02"

const (
	summaryTopLanguages = 5
	summaryTopCast      = 10

	// previousRunScan bounds how many archived runs are scanned for the
	// latest one with the same media and window.
	previousRunScan = 50
)

// Source is the subset of the TMDB client used by export runs.
type Source interface {
	Trending(ctx context.Context, media, window string, maxPages int) ([]json.RawMessage, error)
	Discover(ctx context.Context, media, from, to string, maxPages int) ([]json.RawMessage, error)
	Genres(ctx context.Context, media string) ([]tmdb.Genre, error)
	Credits(ctx context.Context, media string, id int64) (*tmdb.Credits, error)
}

var _ Source = (*tmdb.Client)(nil)

// Report describes a finished run.
type Report struct {
	RunID        string
	Label        string
	Rows         int
	ExpandedRows int
	HistoryRows  int // trending only
	Files        []string
	Cast         []catalog.CastCount
	Languages    []catalog.LanguageCount

	// Previous is the latest archived run with the same kind, media and
	// window, nil without an archive or on the first run.
	Previous  *store.RunSummary
	NewTitles int // rows whose title was not in Previous
}

// SnapshotService runs the trending and historical exports.
type SnapshotService struct {
	source  Source
	archive store.Archiver
	dataDir string
	logger  *slog.Logger
	now     func() time.Time
}

// NewSnapshotService creates a snapshot service writing under dataDir.
// A nil archive records nothing.
func NewSnapshotService(source Source, archive store.Archiver, dataDir string, logger *slog.Logger) *SnapshotService {
	if archive == nil {
		archive = store.NewNoopArchiver()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotService{
		source:  source,
		archive: archive,
		dataDir: dataDir,
		logger:  logger,
		now:     time.Now,
	}
}

// newRun starts a report stamped with the current UTC date.
func (s *SnapshotService) newRun() (*Report, time.Time) {
	startedAt := s.now().UTC()
	return &Report{
		RunID: uuid.NewString(),
		Label: startedAt.Format(StampLayout),
	}, startedAt
}

func (s *SnapshotService) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// buildGenreMap fetches the movie and tv genre lists, merges them with tv
// names winning on id collisions, and persists the map as name.
func (s *SnapshotService) buildGenreMap(ctx context.Context, name string, report *Report) (catalog.GenreMap, error) {
	movie, err := s.source.Genres(ctx, tmdb.MediaMovie)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "fetch movie genres")
	}
	tv, err := s.source.Genres(ctx, tmdb.MediaTV)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "fetch tv genres")
	}

	genres := catalog.NewGenreMap(toCatalogGenres(movie), toCatalogGenres(tv))
	if err := s.writeJSON(name, genres, report); err != nil {
		return nil, err
	}
	s.logger.Debug("genre map built", "movie", len(movie), "tv", len(tv), "merged", len(genres))
	return genres, nil
}

func toCatalogGenres(in []tmdb.Genre) []catalog.Genre {
	out := make([]catalog.Genre, len(in))
	for i, g := range in {
		out[i] = catalog.Genre{ID: g.ID, Name: g.Name}
	}
	return out
}

// sampleCast pulls credits for the first n rows and counts actors across
// them. Rows must already be in popularity order.
func (s *SnapshotService) sampleCast(ctx context.Context, rows []catalog.Row, n int) ([]catalog.CastCount, error) {
	n = min(n, len(rows))
	tally := catalog.NewCastTally()
	for _, r := range rows[:n] {
		credits, err := s.source.Credits(ctx, r.MediaType, r.ID)
		if err != nil {
			return nil, domainerrors.Wrapf(err, domainerrors.CodeUpstream, "fetch credits for %s %d", r.MediaType, r.ID)
		}
		for _, c := range credits.Cast {
			tally.Add(c.Name)
		}
	}
	s.logger.Debug("cast sampled", "titles", n, "actors", tally.Len())
	return tally.Sorted(), nil
}

func (s *SnapshotService) writeJSON(name string, v any, report *Report) error {
	p := s.path(name)
	if err := export.WriteJSON(p, v); err != nil {
		return domainerrors.Wrapf(err, domainerrors.CodeInternal, "write %s", name)
	}
	report.Files = append(report.Files, p)
	s.logger.Info("saved JSON", "path", p)
	return nil
}

func (s *SnapshotService) writeCSV(name string, table export.Table, report *Report) error {
	p := s.path(name)
	if err := export.WriteCSV(p, table); err != nil {
		return domainerrors.Wrapf(err, domainerrors.CodeInternal, "write %s", name)
	}
	report.Files = append(report.Files, p)
	s.logger.Info("saved CSV", "path", p, "rows", table.Len())
	return nil
}

// writeStampedAndLatest writes table under both the stamped and the latest name.
func (s *SnapshotService) writeStampedAndLatest(prefix, stamp string, table export.Table, report *Report) error {
	if err := s.writeCSV(prefix+"_"+stamp+".csv", table, report); err != nil {
		return err
	}
	return s.writeCSV(prefix+"_latest.csv", table, report)
}

// record compares run with the previous archived run and then archives it.
func (s *SnapshotService) record(ctx context.Context, run *store.Run, report *Report) error {
	if err := s.compare(ctx, run, report); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "read run archive")
	}
	if err := s.archive.RecordRun(ctx, run); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "archive run")
	}
	return nil
}

type titleKey struct {
	media string
	id    int64
}

// compare fills report.Previous and report.NewTitles from the latest
// archived run with the same kind, media and window.
func (s *SnapshotService) compare(ctx context.Context, run *store.Run, report *Report) error {
	runs, err := s.archive.ListRuns(ctx, run.Kind, previousRunScan)
	if err != nil {
		return err
	}

	for _, prev := range runs {
		if prev.ID == run.ID || prev.Media != run.Media || prev.Window != run.Window {
			continue
		}
		rows, err := s.archive.RunRows(ctx, prev.ID)
		if err != nil {
			return err
		}

		seen := make(map[titleKey]struct{}, len(rows))
		for _, r := range rows {
			seen[titleKey{r.MediaType, r.ID}] = struct{}{}
		}
		for _, r := range run.Rows {
			if _, ok := seen[titleKey{r.MediaType, r.ID}]; !ok {
				report.NewTitles++
			}
		}
		report.Previous = &prev
		return nil
	}
	return nil
}

// summarize logs the language mix and, when sampled, the most frequent cast.
func (s *SnapshotService) summarize(rows []catalog.Row, report *Report) {
	report.Languages = catalog.LanguageBreakdown(rows, summaryTopLanguages)

	langs := make([]string, len(report.Languages))
	for i, l := range report.Languages {
		langs[i] = fmt.Sprintf("%s (%s): %d", l.Name, l.Code, l.Count)
	}

	attrs := []any{
		"run_id", report.RunID,
		"label", report.Label,
		"rows", report.Rows,
		"by_genre_rows", report.ExpandedRows,
		"files", len(report.Files),
		"top_languages", strings.Join(langs, ", "),
	}
	if report.Previous != nil {
		attrs = append(attrs,
			"previous_label", report.Previous.Label,
			"previous_rows", report.Previous.RowCount,
			"new_titles", report.NewTitles,
		)
	}
	if report.Cast != nil {
		top := report.Cast[:min(summaryTopCast, len(report.Cast))]
		names := make([]string, len(top))
		for i, c := range top {
			names[i] = fmt.Sprintf("%s (%d)", c.Name, c.Count)
		}
		attrs = append(attrs, "top_cast", strings.Join(names, ", "))
	}
	s.logger.Info("run summary", attrs...)
}

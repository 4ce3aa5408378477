package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reelpulse/reelpulse/internal/catalog"
	"github.com/reelpulse/reelpulse/internal/store"
)

var _ store.Archiver = (*Store)(nil)

// ErrRunNotFound is returned when a run id is not in the archive.
var ErrRunNotFound = errors.New("run not found")

// RecordRun stores run and its rows in a single transaction. A run without
// an ID is given a new UUID.
func (s *Store) RecordRun(ctx context.Context, run *store.Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, kind, label, media, trend_window, started_at, row_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		string(run.Kind),
		run.Label,
		run.Media,
		run.Window,
		formatTime(run.StartedAt),
		len(run.Rows),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_rows (run_id, position, tmdb_id, media_type, title, date,
			popularity, vote_average, vote_count, original_language, genres)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare run_rows: %w", err)
	}
	defer stmt.Close()

	for i, r := range run.Rows {
		_, err := stmt.ExecContext(ctx,
			run.ID,
			i,
			r.ID,
			r.MediaType,
			r.Title,
			r.Date,
			nullable(r.Popularity),
			nullable(r.VoteAverage),
			nullable(r.VoteCount),
			r.OriginalLanguage,
			r.Genres,
		)
		if err != nil {
			return fmt.Errorf("insert run_rows %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}

	s.logger.Debug("run archived", "run_id", run.ID, "kind", run.Kind, "rows", len(run.Rows))
	return nil
}

// ListRuns returns up to limit runs of kind, newest first. An empty kind
// lists every run.
func (s *Store) ListRuns(ctx context.Context, kind store.RunKind, limit int) ([]store.RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, label, media, trend_window, started_at, row_count
		FROM runs
		WHERE ? = '' OR kind = ?
		ORDER BY started_at DESC
		LIMIT ?`, string(kind), string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []store.RunSummary
	for rows.Next() {
		var (
			r         store.RunSummary
			kindStr   string
			startedAt string
		)
		if err := rows.Scan(&r.ID, &kindStr, &r.Label, &r.Media, &r.Window, &startedAt, &r.RowCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Kind = store.RunKind(kindStr)
		if r.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunRows returns the archived rows of a run in their exported order.
func (s *Store) RunRows(ctx context.Context, runID string) ([]catalog.Row, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT tmdb_id, media_type, title, date, popularity, vote_average,
			vote_count, original_language, genres
		FROM run_rows
		WHERE run_id = ?
		ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run_rows: %w", err)
	}
	defer rows.Close()

	var out []catalog.Row
	for rows.Next() {
		var (
			r           catalog.Row
			popularity  sql.NullFloat64
			voteAverage sql.NullFloat64
			voteCount   sql.NullInt64
		)
		err := rows.Scan(&r.ID, &r.MediaType, &r.Title, &r.Date, &popularity,
			&voteAverage, &voteCount, &r.OriginalLanguage, &r.Genres)
		if err != nil {
			return nil, fmt.Errorf("scan run_rows: %w", err)
		}
		r.Popularity = nullFloat(popularity)
		r.VoteAverage = nullFloat(voteAverage)
		r.VoteCount = nullInt(voteCount)
		r.TMDBURL = catalog.TitleURL(r.MediaType, r.ID)
		out = append(out, r)
	}
	return out, rows.Err()
}

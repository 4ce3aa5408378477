// Package store defines the run archive used to keep every export run queryable.
package store

import (
	"context"
	"time"

	"github.com/reelpulse/reelpulse/internal/catalog"
)

// RunKind identifies the command that produced a run.
type RunKind string

// Run kinds.
const (
	RunTrending   RunKind = "trending"
	RunHistorical RunKind = "historical"
)

// Run is one completed export together with its normalized rows.
type Run struct {
	ID        string
	Kind      RunKind
	Label     string // date stamp of the run, e.g. 2024-05-27
	Media     string
	Window    string // empty for historical runs
	StartedAt time.Time
	Rows      []catalog.Row
}

// RunSummary describes an archived run without its rows.
type RunSummary struct {
	ID        string
	Kind      RunKind
	Label     string
	Media     string
	Window    string
	StartedAt time.Time
	RowCount  int
}

// Archiver records completed runs and reads them back.
type Archiver interface {
	RecordRun(ctx context.Context, run *Run) error
	// ListRuns returns up to limit runs of kind, newest first. An empty kind
	// lists every run.
	ListRuns(ctx context.Context, kind RunKind, limit int) ([]RunSummary, error)
	// RunRows returns the rows of a run in their exported order.
	RunRows(ctx context.Context, runID string) ([]catalog.Row, error)
}

// NoopArchiver discards runs. It is used when no archive database is configured.
type NoopArchiver struct{}

// RecordRun implements Archiver.RecordRun as a no-op.
func (NoopArchiver) RecordRun(context.Context, *Run) error { return nil }

// ListRuns implements Archiver.ListRuns; nothing is ever archived.
func (NoopArchiver) ListRuns(context.Context, RunKind, int) ([]RunSummary, error) { return nil, nil }

// RunRows implements Archiver.RunRows; nothing is ever archived.
func (NoopArchiver) RunRows(context.Context, string) ([]catalog.Row, error) { return nil, nil }

// NewNoopArchiver creates an archiver that records nothing.
func NewNoopArchiver() Archiver {
	return NoopArchiver{}
}

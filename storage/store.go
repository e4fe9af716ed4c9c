// Package storage persists completed research runs.
//
// Information Hiding:
// - Persistence backend hidden behind RunStorage
// - Schema details encapsulated in the SQLite implementation
package storage

import (
	"context"
	"fmt"
	"time"
)

// RunRecord is the persisted form of a research run.
type RunRecord struct {
	ID        string
	Query     string
	Provider  string
	Model     string
	Report    string
	CreatedAt time.Time
	Findings  []FindingRecord
}

// FindingRecord is the persisted form of one subtask finding.
type FindingRecord struct {
	Index   int
	Subtask string
	Content string
	Status  string
}

// RunSummary is the listing view of a run, without report or findings.
type RunSummary struct {
	ID        string
	Query     string
	Provider  string
	Model     string
	CreatedAt time.Time
}

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = fmt.Errorf("run not found")

// RunStorage persists research runs.
// Implementations must be safe for concurrent use.
type RunStorage interface {
	// SaveRun stores a run, replacing any run with the same ID.
	SaveRun(ctx context.Context, run RunRecord) error

	// LoadRun retrieves a run with its findings.
	// Returns ErrRunNotFound if the ID does not exist.
	LoadRun(ctx context.Context, id string) (RunRecord, error)

	// ListRuns returns run summaries, newest first, up to limit.
	// A limit of 0 or less means no limit.
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)

	// DeleteRun removes a run and its findings.
	// Deleting a missing run is not an error.
	DeleteRun(ctx context.Context, id string) error
}

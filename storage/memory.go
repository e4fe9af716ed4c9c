package storage

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStorage implements RunStorage with a map.
// Useful for tests and runs where persistence is disabled.
type InMemoryStorage struct {
	mu   sync.RWMutex
	runs map[string]RunRecord
}

// NewInMemoryStorage creates an empty in-memory store.
func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		runs: make(map[string]RunRecord),
	}
}

// SaveRun stores a run, replacing any run with the same ID.
func (s *InMemoryStorage) SaveRun(_ context.Context, run RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy findings so later caller mutations don't leak in.
	stored := run
	stored.Findings = append([]FindingRecord(nil), run.Findings...)
	s.runs[run.ID] = stored
	return nil
}

// LoadRun retrieves a run with its findings.
func (s *InMemoryStorage) LoadRun(_ context.Context, id string) (RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return RunRecord{}, ErrRunNotFound
	}
	out := run
	out.Findings = append([]FindingRecord(nil), run.Findings...)
	return out, nil
}

// ListRuns returns run summaries, newest first.
func (s *InMemoryStorage) ListRuns(_ context.Context, limit int) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]RunSummary, 0, len(s.runs))
	for _, run := range s.runs {
		summaries = append(summaries, RunSummary{
			ID:        run.ID,
			Query:     run.Query,
			Provider:  run.Provider,
			Model:     run.Model,
			CreatedAt: run.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// DeleteRun removes a run. Deleting a missing run is not an error.
func (s *InMemoryStorage) DeleteRun(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.runs, id)
	return nil
}

// Verify InMemoryStorage implements RunStorage
var _ RunStorage = (*InMemoryStorage)(nil)

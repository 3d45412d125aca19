package ats

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use. It
// backs tests and the no-database fallback mode.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[primitive.ObjectID]Analysis)}
}

// Insert stores a new analysis record.
func (m *MemoryRepo) Insert(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[analysis.ID] = analysis
	return nil
}

// List returns analyses matching the filters with skip/limit pagination,
// newest first.
func (m *MemoryRepo) List(ctx context.Context, opts HistoryOptions) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	matched := []Analysis{}
	for _, a := range m.byID {
		if opts.ResumeID != "" && a.ResumeID != opts.ResumeID {
			continue
		}
		if opts.JobTitle != "" && a.JobTitle != opts.JobTitle {
			continue
		}
		matched = append(matched, a)
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if opts.Skip >= len(matched) {
		return []Analysis{}, nil
	}
	matched = matched[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// UpdateContext replaces the job title and description.
func (m *MemoryRepo) UpdateContext(ctx context.Context, id primitive.ObjectID, jobTitle, jobDescription string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	a.JobTitle = jobTitle
	a.JobDescription = jobDescription
	m.byID[id] = a
	return a, nil
}

// Delete removes the analysis with the given ID.
func (m *MemoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// Count reports how many analyses are stored. Test helper.
func (m *MemoryRepo) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

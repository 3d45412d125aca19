package jobapplications

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo stores job applications in memory and is safe for concurrent
// use. It backs tests and the no-database fallback mode.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[primitive.ObjectID]JobApplication
	order []primitive.ObjectID
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[primitive.ObjectID]JobApplication)}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func matches(a JobApplication, opts ListOptions) bool {
	if opts.UserID != "" && a.UserID != opts.UserID {
		return false
	}
	if opts.JobTitle != "" && !containsFold(a.JobTitle, opts.JobTitle) {
		return false
	}
	if opts.CompanyName != "" && !containsFold(a.CompanyName, opts.CompanyName) {
		return false
	}
	if opts.Status != "" && string(a.Status) != opts.Status {
		return false
	}
	if opts.MinApplicationDate != nil && a.ApplicationDate.Before(*opts.MinApplicationDate) {
		return false
	}
	if opts.MaxApplicationDate != nil && a.ApplicationDate.After(*opts.MaxApplicationDate) {
		return false
	}
	if opts.HasNotes != nil && (a.Notes != "") != *opts.HasNotes {
		return false
	}
	if opts.HasInterviews != nil && (len(a.InterviewDates) > 0) != *opts.HasInterviews {
		return false
	}
	return true
}

func less(a, b JobApplication, sortBy string) bool {
	switch sortBy {
	case SortByJobTitle:
		return a.JobTitle < b.JobTitle
	case SortByCompanyName:
		return a.CompanyName < b.CompanyName
	case SortByLastUpdated:
		return a.LastUpdated.Before(b.LastUpdated)
	default:
		return a.ApplicationDate.Before(b.ApplicationDate.Time)
	}
}

// List returns one page of matching applications and the total match count.
// Insertion order is the tie-break among equal sort keys.
func (m *MemoryRepo) List(ctx context.Context, opts ListOptions) ([]JobApplication, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	m.mu.RLock()
	var matched []JobApplication
	for _, id := range m.order {
		a := m.byID[id]
		if matches(a, opts) {
			matched = append(matched, a)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if opts.SortOrder == "asc" {
			return less(matched[i], matched[j], opts.SortBy)
		}
		return less(matched[j], matched[i], opts.SortBy)
	})

	total := int64(len(matched))
	start := (opts.Page - 1) * opts.PageSize
	if start >= len(matched) {
		return []JobApplication{}, total, nil
	}
	end := start + opts.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// GetByID returns the application with the given ID.
func (m *MemoryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (JobApplication, error) {
	if err := ctx.Err(); err != nil {
		return JobApplication{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.byID[id]
	if !ok {
		return JobApplication{}, ErrNotFound
	}
	return a, nil
}

// Insert stores a new application.
func (m *MemoryRepo) Insert(ctx context.Context, app JobApplication) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[app.ID] = app
	m.order = append(m.order, app.ID)
	return nil
}

// Update applies a partial update and returns the resulting document.
func (m *MemoryRepo) Update(ctx context.Context, id primitive.ObjectID, u Update, resumeRef, analysisRef Ref, updatedAt time.Time) (JobApplication, error) {
	if err := ctx.Err(); err != nil {
		return JobApplication{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return JobApplication{}, ErrNotFound
	}
	u.Apply(&a, resumeRef, analysisRef)
	a.LastUpdated = updatedAt
	m.byID[id] = a
	return a, nil
}

// Delete removes the application with the given ID.
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
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

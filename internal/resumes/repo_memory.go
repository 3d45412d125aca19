package resumes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo stores resumes in memory and is safe for concurrent use. It
// backs tests and the no-database fallback mode.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[primitive.ObjectID]Resume
	order []primitive.ObjectID
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[primitive.ObjectID]Resume)}
}

func matches(r Resume, opts ListOptions) bool {
	if opts.SearchName != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(opts.SearchName)) {
		return false
	}
	if opts.Starred != nil && r.Starred != *opts.Starred {
		return false
	}
	if opts.MinCreatedAt != nil && r.CreatedAt.Before(*opts.MinCreatedAt) {
		return false
	}
	if opts.MaxCreatedAt != nil && r.CreatedAt.After(*opts.MaxCreatedAt) {
		return false
	}
	return true
}

func less(a, b Resume, sortBy string) bool {
	switch sortBy {
	case SortByName:
		return a.Name < b.Name
	case SortByUpdatedAt:
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

// List returns one page of matching resumes and the total match count.
// Insertion order is the tie-break among equal sort keys.
func (m *MemoryRepo) List(ctx context.Context, opts ListOptions) ([]Resume, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	m.mu.RLock()
	var matched []Resume
	for _, id := range m.order {
		r := m.byID[id]
		if matches(r, opts) {
			matched = append(matched, r)
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
		return []Resume{}, total, nil
	}
	end := start + opts.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// GetByID returns the resume with the given ID.
func (m *MemoryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byID[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return r, nil
}

// ExistsForUser reports whether the user already owns a resume.
func (m *MemoryRepo) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.byID {
		if r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// Insert stores a new resume.
func (m *MemoryRepo) Insert(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.byID {
		if r.UserID == resume.UserID {
			return ErrAlreadyExists
		}
	}
	m.byID[resume.ID] = resume
	m.order = append(m.order, resume.ID)
	return nil
}

// Update applies a partial update and returns the resulting document.
func (m *MemoryRepo) Update(ctx context.Context, id primitive.ObjectID, u Update, updatedAt time.Time) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	u.Apply(&r)
	r.UpdatedAt = updatedAt
	m.byID[id] = r
	return r, nil
}

// Delete removes the resume with the given ID.
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

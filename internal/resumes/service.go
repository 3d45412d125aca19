package resumes

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service contains business logic for resumes.
type Service struct {
	Repo Repo
}

// List returns a page of resumes after normalizing and validating options.
func (s *Service) List(ctx context.Context, opts ListOptions) (Page, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = 10
	}
	if opts.PageSize > 100 {
		opts.PageSize = 100
	}
	if opts.SortBy == "" {
		opts.SortBy = SortByCreatedAt
	}
	switch opts.SortBy {
	case SortByCreatedAt, SortByUpdatedAt, SortByName:
	default:
		return Page{}, fmt.Errorf("%w: %s", ErrInvalidSort, opts.SortBy)
	}
	switch opts.SortOrder {
	case "":
		opts.SortOrder = "desc"
	case "asc", "desc":
	default:
		return Page{}, fmt.Errorf("%w: %s", ErrInvalidSortOrder, opts.SortOrder)
	}

	items, total, err := s.Repo.List(ctx, opts)
	if err != nil {
		return Page{}, err
	}

	page := Page{
		Total:    total,
		Page:     opts.Page,
		PageSize: opts.PageSize,
		Items:    make([]ListItem, 0, len(items)),
	}
	for _, r := range items {
		page.Items = append(page.Items, r.ListItem())
	}
	return page, nil
}

// Get returns a single resume by its hex ID.
func (s *Service) Get(ctx context.Context, id string) (Resume, error) {
	oid, err := parseID(id)
	if err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, oid)
}

// Create stores a new resume. A user may own at most one; a second create
// for the same user_id fails with ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, resume Resume) (Resume, error) {
	exists, err := s.Repo.ExistsForUser(ctx, resume.UserID)
	if err != nil {
		return Resume{}, err
	}
	if exists {
		return Resume{}, ErrAlreadyExists
	}

	now := time.Now().UTC()
	resume.ID = primitive.NewObjectID()
	resume.CreatedAt = now
	resume.UpdatedAt = now
	if err := s.Repo.Insert(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Update applies a partial update. Absent fields stay unchanged; updated_at
// is refreshed regardless.
func (s *Service) Update(ctx context.Context, id string, u Update) (Resume, error) {
	oid, err := parseID(id)
	if err != nil {
		return Resume{}, err
	}
	return s.Repo.Update(ctx, oid, u, time.Now().UTC())
}

// Delete removes a resume by its hex ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.Repo.Delete(ctx, oid)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}
	return oid, nil
}

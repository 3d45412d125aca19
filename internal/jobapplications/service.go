package jobapplications

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"applywise-backend/internal/shared/optional"
)

// Service contains business logic for job applications.
type Service struct {
	Repo Repo
}

// List returns a page of applications after normalizing and validating
// options.
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
		opts.SortBy = SortByApplicationDate
	}
	switch opts.SortBy {
	case SortByApplicationDate, SortByLastUpdated, SortByJobTitle, SortByCompanyName:
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
	if opts.Status != "" && !Status(opts.Status).Valid() {
		return Page{}, fmt.Errorf("%w: %s", ErrInvalidStatus, opts.Status)
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
	for _, a := range items {
		page.Items = append(page.Items, a.ListItem())
	}
	return page, nil
}

// Get returns a single application by its hex ID.
func (s *Service) Get(ctx context.Context, id string) (JobApplication, error) {
	oid, err := parseID(id)
	if err != nil {
		return JobApplication{}, err
	}
	return s.Repo.GetByID(ctx, oid)
}

// Create stores a new application entry. Status defaults to Applied and the
// application date to today when the caller omits them.
func (s *Service) Create(ctx context.Context, app JobApplication) (JobApplication, error) {
	if app.Status == "" {
		app.Status = StatusApplied
	}
	if !app.Status.Valid() {
		return JobApplication{}, fmt.Errorf("%w: %s", ErrInvalidStatus, app.Status)
	}
	if app.ApplicationDate.IsZero() {
		app.ApplicationDate = Today()
	}
	if app.InterviewDates == nil {
		app.InterviewDates = []Date{}
	}

	app.ID = primitive.NewObjectID()
	app.LastUpdated = time.Now().UTC()
	if err := s.Repo.Insert(ctx, app); err != nil {
		return JobApplication{}, err
	}
	return app, nil
}

// Update applies a partial update. Absent fields stay unchanged; last_updated
// is refreshed regardless.
func (s *Service) Update(ctx context.Context, id string, u Update) (JobApplication, error) {
	oid, err := parseID(id)
	if err != nil {
		return JobApplication{}, err
	}
	if u.Status.Set && !u.Status.Value.Valid() {
		return JobApplication{}, fmt.Errorf("%w: %s", ErrInvalidStatus, u.Status.Value)
	}

	resumeRef, err := parseRef(u.AssociatedResumeID)
	if err != nil {
		return JobApplication{}, err
	}
	analysisRef, err := parseRef(u.AssociatedAnalysisID)
	if err != nil {
		return JobApplication{}, err
	}

	return s.Repo.Update(ctx, oid, u, resumeRef, analysisRef, time.Now().UTC())
}

// Delete removes an application by its hex ID.
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

// parseRef resolves an associated-reference field. An absent key leaves the
// stored reference alone; explicit null or an empty string clears it.
func parseRef(f optional.Field[string]) (Ref, error) {
	if !f.Set {
		return Ref{}, nil
	}
	if f.Value == "" {
		return optional.Of[*primitive.ObjectID](nil), nil
	}
	oid, err := primitive.ObjectIDFromHex(f.Value)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %s", ErrInvalidID, f.Value)
	}
	return optional.Of(&oid), nil
}

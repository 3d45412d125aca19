package ats

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repo defines persistence operations for ATS analyses.
type Repo interface {
	Insert(ctx context.Context, analysis Analysis) error
	List(ctx context.Context, opts HistoryOptions) ([]Analysis, error)
	UpdateContext(ctx context.Context, id primitive.ObjectID, jobTitle, jobDescription string) (Analysis, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

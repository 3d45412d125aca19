package jobapplications

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repo defines persistence operations for job applications.
type Repo interface {
	List(ctx context.Context, opts ListOptions) ([]JobApplication, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (JobApplication, error)
	Insert(ctx context.Context, app JobApplication) error
	Update(ctx context.Context, id primitive.ObjectID, u Update, resumeRef, analysisRef Ref, updatedAt time.Time) (JobApplication, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

package resumes

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repo defines persistence operations for resumes.
type Repo interface {
	List(ctx context.Context, opts ListOptions) ([]Resume, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (Resume, error)
	ExistsForUser(ctx context.Context, userID string) (bool, error)
	Insert(ctx context.Context, resume Resume) error
	Update(ctx context.Context, id primitive.ObjectID, u Update, updatedAt time.Time) (Resume, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

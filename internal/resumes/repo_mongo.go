package resumes

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "resumes"

// MongoRepo implements Repo against the resumes collection.
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo constructs a MongoRepo on the given database.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection(collectionName)}
}

// filter compiles the structured options into a MongoDB query document. This
// is the single translation point between filters and the store's query form.
func filter(opts ListOptions) bson.M {
	query := bson.M{}
	if opts.SearchName != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(opts.SearchName), Options: "i"}
	}
	if opts.Starred != nil {
		query["starred"] = *opts.Starred
	}
	if opts.MinCreatedAt != nil || opts.MaxCreatedAt != nil {
		bounds := bson.M{}
		if opts.MinCreatedAt != nil {
			bounds["$gte"] = *opts.MinCreatedAt
		}
		if opts.MaxCreatedAt != nil {
			bounds["$lte"] = *opts.MaxCreatedAt
		}
		query["created_at"] = bounds
	}
	return query
}

func sortDoc(sortBy, sortOrder string) bson.D {
	dir := -1
	if sortOrder == "asc" {
		dir = 1
	}
	return bson.D{{Key: sortBy, Value: dir}}
}

// List returns one page of matching resumes and the total match count.
func (r *MongoRepo) List(ctx context.Context, opts ListOptions) ([]Resume, int64, error) {
	query := filter(opts)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(sortDoc(opts.SortBy, opts.SortOrder)).
		SetSkip(int64((opts.Page - 1) * opts.PageSize)).
		SetLimit(int64(opts.PageSize))

	cursor, err := r.coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var resumes []Resume
	if err := cursor.All(ctx, &resumes); err != nil {
		return nil, 0, err
	}
	return resumes, total, nil
}

// GetByID returns the resume with the given ID.
func (r *MongoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (Resume, error) {
	var resume Resume
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&resume)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// ExistsForUser reports whether the user already owns a resume.
func (r *MongoRepo) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert stores a new resume. The unique index on user_id backs the
// one-resume-per-user invariant under concurrent creates.
func (r *MongoRepo) Insert(ctx context.Context, resume Resume) error {
	_, err := r.coll.InsertOne(ctx, resume)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return err
}

// Update applies a partial update and returns the resulting document.
func (r *MongoRepo) Update(ctx context.Context, id primitive.ObjectID, u Update, updatedAt time.Time) (Resume, error) {
	set := bson.M{"updated_at": updatedAt}
	if u.Name.Set {
		set["name"] = u.Name.Value
	}
	if u.Starred.Set {
		set["starred"] = u.Starred.Value
	}
	if u.Contact.Set {
		set["contact"] = u.Contact.Value
	}
	if u.Education.Set {
		set["education"] = u.Education.Value
	}
	if u.Experience.Set {
		set["experience"] = u.Experience.Value
	}
	if u.Projects.Set {
		set["projects"] = u.Projects.Value
	}
	if u.Skills.Set {
		set["skills"] = u.Skills.Value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var resume Resume
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&resume)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// Delete removes the resume with the given ID.
func (r *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

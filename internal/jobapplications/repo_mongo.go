package jobapplications

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

const collectionName = "job_applications"

// MongoRepo implements Repo against the job_applications collection.
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo constructs a MongoRepo on the given database.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection(collectionName)}
}

// filter compiles the structured options into a MongoDB query document.
// A false presence filter matches documents where the field is absent, null
// or empty; the two presence filters compose under $and.
func filter(opts ListOptions) bson.M {
	query := bson.M{}
	if opts.UserID != "" {
		query["user_id"] = opts.UserID
	}
	if opts.JobTitle != "" {
		query["job_title"] = primitive.Regex{Pattern: regexp.QuoteMeta(opts.JobTitle), Options: "i"}
	}
	if opts.CompanyName != "" {
		query["company_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(opts.CompanyName), Options: "i"}
	}
	if opts.Status != "" {
		query["status"] = opts.Status
	}
	if opts.MinApplicationDate != nil || opts.MaxApplicationDate != nil {
		bounds := bson.M{}
		if opts.MinApplicationDate != nil {
			bounds["$gte"] = *opts.MinApplicationDate
		}
		if opts.MaxApplicationDate != nil {
			bounds["$lte"] = *opts.MaxApplicationDate
		}
		query["application_date"] = bounds
	}

	var absent []bson.M
	if opts.HasNotes != nil {
		if *opts.HasNotes {
			query["notes"] = bson.M{"$nin": bson.A{nil, ""}}
		} else {
			absent = append(absent, bson.M{"$or": bson.A{
				bson.M{"notes": nil},
				bson.M{"notes": ""},
			}})
		}
	}
	if opts.HasInterviews != nil {
		if *opts.HasInterviews {
			query["interview_dates"] = bson.M{"$nin": bson.A{nil, bson.A{}}}
		} else {
			absent = append(absent, bson.M{"$or": bson.A{
				bson.M{"interview_dates": nil},
				bson.M{"interview_dates": bson.A{}},
			}})
		}
	}
	if len(absent) > 0 {
		query["$and"] = absent
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

// List returns one page of matching applications and the total match count.
func (r *MongoRepo) List(ctx context.Context, opts ListOptions) ([]JobApplication, int64, error) {
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

	var apps []JobApplication
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// GetByID returns the application with the given ID.
func (r *MongoRepo) GetByID(ctx context.Context, id primitive.ObjectID) (JobApplication, error) {
	var app JobApplication
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return JobApplication{}, ErrNotFound
		}
		return JobApplication{}, err
	}
	return app, nil
}

// Insert stores a new application.
func (r *MongoRepo) Insert(ctx context.Context, app JobApplication) error {
	_, err := r.coll.InsertOne(ctx, app)
	return err
}

// Update applies a partial update and returns the resulting document. A set
// reference with a nil value unsets the stored reference.
func (r *MongoRepo) Update(ctx context.Context, id primitive.ObjectID, u Update, resumeRef, analysisRef Ref, updatedAt time.Time) (JobApplication, error) {
	set := bson.M{"last_updated": updatedAt}
	unset := bson.M{}
	if u.JobTitle.Set {
		set["job_title"] = u.JobTitle.Value
	}
	if u.CompanyName.Set {
		set["company_name"] = u.CompanyName.Value
	}
	if u.CompanyWebsite.Set {
		set["company_website"] = u.CompanyWebsite.Value
	}
	if u.JobURL.Set {
		set["job_url"] = u.JobURL.Value
	}
	if u.Location.Set {
		set["location"] = u.Location.Value
	}
	if u.Status.Set {
		set["status"] = u.Status.Value
	}
	if u.ApplicationDate.Set {
		set["application_date"] = u.ApplicationDate.Value
	}
	if u.InterviewDates.Set {
		set["interview_dates"] = u.InterviewDates.Value
	}
	if u.Notes.Set {
		set["notes"] = u.Notes.Value
	}
	if resumeRef.Set {
		if resumeRef.Value == nil {
			unset["associated_resume_id"] = ""
		} else {
			set["associated_resume_id"] = *resumeRef.Value
		}
	}
	if analysisRef.Set {
		if analysisRef.Value == nil {
			unset["associated_analysis_id"] = ""
		} else {
			set["associated_analysis_id"] = *analysisRef.Value
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var app JobApplication
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return JobApplication{}, ErrNotFound
		}
		return JobApplication{}, err
	}
	return app, nil
}

// Delete removes the application with the given ID.
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

package ats

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "ats_analyses"

// MongoRepo implements Repo against the ats_analyses collection.
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo constructs a MongoRepo on the given database.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection(collectionName)}
}

// Insert stores a new analysis record.
func (r *MongoRepo) Insert(ctx context.Context, analysis Analysis) error {
	_, err := r.coll.InsertOne(ctx, analysis)
	return err
}

// List returns analyses matching the exact-match filters with skip/limit
// pagination, newest first.
func (r *MongoRepo) List(ctx context.Context, opts HistoryOptions) ([]Analysis, error) {
	query := bson.M{}
	if opts.ResumeID != "" {
		query["resume_id"] = opts.ResumeID
	}
	if opts.JobTitle != "" {
		query["job_title"] = opts.JobTitle
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(opts.Skip)).
		SetLimit(int64(opts.Limit))

	cursor, err := r.coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	analyses := []Analysis{}
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}

// UpdateContext replaces the job title and description, returning the
// resulting document.
func (r *MongoRepo) UpdateContext(ctx context.Context, id primitive.ObjectID, jobTitle, jobDescription string) (Analysis, error) {
	update := bson.M{"$set": bson.M{
		"job_title":       jobTitle,
		"job_description": jobDescription,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var analysis Analysis
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&analysis)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

// Delete removes the analysis with the given ID.
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

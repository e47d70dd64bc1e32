package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"campfinder/database/query"
	"campfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a ReviewRepository backed by the given client.
func NewMongoReviewRepo(client *mongo.Client, dbName string) ReviewRepository {
	coll := client.Database(dbName).Collection("reviews")
	repo := &MongoReviewRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create review indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// List retrieves reviews matching the parsed listing options, running as an
// aggregation when a populate spec asks for the parent bootcamp.
func (r *MongoReviewRepo) List(ctx context.Context, opts query.Options) ([]models.Review, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	if opts.Populate != nil {
		cursor, err := r.coll.Aggregate(ctx, opts.Pipeline())
		if err != nil {
			return nil, fmt.Errorf("failed to list reviews: %w", err)
		}
		defer cursor.Close(ctx)
		return decodeReviews(ctx, cursor)
	}

	findOpts := options.Find().
		SetSort(opts.Sort).
		SetSkip(opts.Skip).
		SetLimit(int64(opts.Limit))
	if opts.Projection != nil {
		findOpts.SetProjection(opts.Projection)
	}

	cursor, err := r.coll.Find(ctx, opts.Filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)
	return decodeReviews(ctx, cursor)
}

func decodeReviews(ctx context.Context, cursor *mongo.Cursor) ([]models.Review, error) {
	reviews := []models.Review{}
	for cursor.Next(ctx) {
		var rev models.Review
		if err := cursor.Decode(&rev); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, cursor.Err()
}

// CountAll returns the unfiltered collection count used for pagination.
func (r *MongoReviewRepo) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// ListByBootcamp returns every review under the given bootcamp, unpaginated.
func (r *MongoReviewRepo) ListByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]models.Review, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"bootcamp": bootcamp})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for bootcamp %s: %w", bootcamp.Hex(), err)
	}
	defer cursor.Close(ctx)
	return decodeReviews(ctx, cursor)
}

// GetByID retrieves a review by id. Returns (nil, nil) when absent.
func (r *MongoReviewRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id.Hex(), err)
	}
	return &review, nil
}

// Create inserts a new review document. The unique (bootcamp, user) index
// makes a second review by the same author surface as a duplicate-key error.
func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	review.CreatedAt = time.Now()
	res, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

// Update applies the given fields and returns the updated document.
func (r *MongoReviewRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Review, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Review
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes a review document by id.
func (r *MongoReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review with id %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("review with id %s not found", id.Hex())
	}
	return nil
}

// DeleteByBootcamp removes every review under the given bootcamp. Used by
// the cascade when a bootcamp is deleted.
func (r *MongoReviewRepo) DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{"bootcamp": bootcamp})
	if err != nil {
		return fmt.Errorf("failed to delete reviews for bootcamp %s: %w", bootcamp.Hex(), err)
	}
	return nil
}

package bootcampRepo

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

// MongoBootcampRepo implements BootcampRepository using MongoDB.
type MongoBootcampRepo struct {
	coll *mongo.Collection
}

// NewMongoBootcampRepo creates a BootcampRepository backed by the given client.
func NewMongoBootcampRepo(client *mongo.Client, dbName string) BootcampRepository {
	coll := client.Database(dbName).Collection("bootcamps")
	repo := &MongoBootcampRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create bootcamp indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// List retrieves bootcamps matching the parsed listing options.
func (r *MongoBootcampRepo) List(ctx context.Context, opts query.Options) ([]models.Bootcamp, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	findOpts := options.Find().
		SetSort(opts.Sort).
		SetSkip(opts.Skip).
		SetLimit(int64(opts.Limit))
	if opts.Projection != nil {
		findOpts.SetProjection(opts.Projection)
	}

	cursor, err := r.coll.Find(ctx, opts.Filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bootcamps: %w", err)
	}
	defer cursor.Close(ctx)

	bootcamps := []models.Bootcamp{}
	for cursor.Next(ctx) {
		var b models.Bootcamp
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode bootcamp: %w", err)
		}
		bootcamps = append(bootcamps, b)
	}
	return bootcamps, cursor.Err()
}

// CountAll returns the unfiltered collection count used for pagination.
func (r *MongoBootcampRepo) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// GetByID retrieves a bootcamp by id. Returns (nil, nil) when absent.
func (r *MongoBootcampRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var bootcamp models.Bootcamp
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&bootcamp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch bootcamp with id %s: %w", id.Hex(), err)
	}
	return &bootcamp, nil
}

// GetByPublisher retrieves the bootcamp published by the given user, if any.
func (r *MongoBootcampRepo) GetByPublisher(ctx context.Context, publisher primitive.ObjectID) (*models.Bootcamp, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var bootcamp models.Bootcamp
	if err := r.coll.FindOne(ctx, bson.M{"publisher": publisher}).Decode(&bootcamp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch bootcamp for publisher %s: %w", publisher.Hex(), err)
	}
	return &bootcamp, nil
}

// Create inserts a new bootcamp document.
func (r *MongoBootcampRepo) Create(ctx context.Context, bootcamp *models.Bootcamp) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	bootcamp.CreatedAt = time.Now()
	res, err := r.coll.InsertOne(ctx, bootcamp)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		bootcamp.ID = oid
	}
	return nil
}

// Update applies the given fields and returns the updated document.
func (r *MongoBootcampRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Bootcamp, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Bootcamp
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes a bootcamp document by id.
func (r *MongoBootcampRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete bootcamp with id %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("bootcamp with id %s not found", id.Hex())
	}
	return nil
}

// WithinRadius finds bootcamps whose location lies inside the spherical cap
// centered at (lng, lat) with the given radius in radians. The query is
// boundary-inclusive per the store's $centerSphere semantics.
func (r *MongoBootcampRepo) WithinRadius(ctx context.Context, lng, lat, radians float64) ([]models.Bootcamp, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": []any{[]float64{lng, lat}, radians},
			},
		},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed radius query: %w", err)
	}
	defer cursor.Close(ctx)

	bootcamps := []models.Bootcamp{}
	for cursor.Next(ctx) {
		var b models.Bootcamp
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode bootcamp: %w", err)
		}
		bootcamps = append(bootcamps, b)
	}
	return bootcamps, cursor.Err()
}

// SetAverage writes a derived average (averageCost or averageRating) back
// onto the bootcamp.
func (r *MongoBootcampRepo) SetAverage(ctx context.Context, id primitive.ObjectID, field string, value float64) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to set %s on bootcamp %s: %w", field, id.Hex(), err)
	}
	return nil
}

// ClearAverage unsets a derived average once the last child is gone.
func (r *MongoBootcampRepo) ClearAverage(ctx context.Context, id primitive.ObjectID, field string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$unset": bson.M{field: ""}})
	if err != nil {
		return fmt.Errorf("failed to clear %s on bootcamp %s: %w", field, id.Hex(), err)
	}
	return nil
}
